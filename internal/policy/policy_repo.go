package policy

import (
	"context"
	"database/sql"

	"go-worktrack/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=policy_repo.go -destination=mock/policy_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, p *Policy) error
	ExistsByName(ctx context.Context, name string) (bool, error)
	FindAll(ctx context.Context) ([]Policy, error)
	FindByID(ctx context.Context, id int64) (*Policy, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, p *Policy) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var n int64
	err := r.conn(ctx).Model(&Policy{}).Where("LOWER(name) = LOWER(?)", name).Count(&n).Error
	return n > 0, err
}

func (r *repository) FindAll(ctx context.Context) ([]Policy, error) {
	var policies []Policy
	err := r.conn(ctx).Order("uploaded_at DESC").Order("id DESC").Find(&policies).Error
	return policies, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Policy, error) {
	var p Policy
	if err := r.conn(ctx).Where("id = ?", id).Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.conn(ctx).Delete(&Policy{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
