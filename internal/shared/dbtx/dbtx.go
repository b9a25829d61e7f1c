package dbtx

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Conn returns a gorm handle bound to ctx. When tx is set, statements run on
// that transaction so gorm repositories share the service's *sql.Tx.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	conn := db.WithContext(ctx)
	if tx != nil {
		conn.Statement.ConnPool = tx
	}
	return conn
}
