package career

import (
	"context"
	"database/sql"
	"time"

	"go-worktrack/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=career_repo.go -destination=mock/career_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, c *Career) error
	Update(ctx context.Context, c *Career) error
	FindAll(ctx context.Context) ([]Career, error)
	FindByID(ctx context.Context, id int64) (*Career, error)
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

func (r *repository) Create(ctx context.Context, c *Career) error {
	return r.conn(ctx).Create(c).Error
}

func (r *repository) Update(ctx context.Context, c *Career) error {
	res := r.conn(ctx).
		Model(&Career{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"title":       c.Title,
			"experience":  c.Experience,
			"salary":      c.Salary,
			"location":    c.Location,
			"description": c.Description,
			"banner_path": c.BannerPath,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindAll(ctx context.Context) ([]Career, error) {
	var careers []Career
	err := r.conn(ctx).Order("created_at DESC").Order("id DESC").Find(&careers).Error
	return careers, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Career, error) {
	var c Career
	if err := r.conn(ctx).Where("id = ?", id).Take(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.conn(ctx).Delete(&Career{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
