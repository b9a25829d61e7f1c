package dbtx_test

import (
	"context"
	"regexp"
	"testing"

	"go-worktrack/internal/shared/dbtx"
	"go-worktrack/internal/shared/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestConn_RunsOnTransaction(t *testing.T) {
	gormDB, sqlDB, mock := testdb.New(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE counters SET last_value = 0")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	tx, err := sqlDB.BeginTx(ctx, nil)
	assert.NoError(t, err)

	res := dbtx.Conn(ctx, gormDB, tx).Exec("UPDATE counters SET last_value = 0")
	assert.NoError(t, res.Error)
	assert.Equal(t, int64(1), res.RowsAffected)
	assert.NoError(t, tx.Rollback())
}

func TestConn_WithoutTransaction(t *testing.T) {
	gormDB, _, mock := testdb.New(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM counters")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, dbtx.Conn(context.Background(), gormDB, nil).Exec("DELETE FROM counters").Error)
}
