package project

import (
	"context"
	"database/sql"

	"go-worktrack/internal/shared/dbtx"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Project) error
	FindAll(ctx context.Context) ([]Project, error)
	FindByID(ctx context.Context, id int64) (*Project, error)
	FindTasks(ctx context.Context, projectID int64) ([]ProjectTask, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id int64) error
	CountTasks(ctx context.Context, id int64) (int64, error)
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

func (r *repository) Create(ctx context.Context, p *Project) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Project, error) {
	var projects []Project
	err := r.conn(ctx).Order("created_at DESC").Order("id DESC").Find(&projects).Error
	return projects, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Project, error) {
	var p Project
	if err := r.conn(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindTasks(ctx context.Context, projectID int64) ([]ProjectTask, error) {
	var tasks []ProjectTask
	err := r.conn(ctx).
		Table("tasks t").
		Select(`t.id, t.description, t.employee_id, t.priority, t.status, t.start_date, t.end_date,
			e.first_name, e.last_name`).
		Joins("JOIN employees e ON e.id = t.employee_id").
		Where("t.project_id = ?", projectID).
		Order("t.created_at DESC").
		Scan(&tasks).Error
	return tasks, err
}

func (r *repository) Update(ctx context.Context, p *Project) error {
	return r.conn(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.conn(ctx).Delete(&Project{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountTasks(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.conn(ctx).Table("tasks").Where("project_id = ?", id).Count(&n).Error
	return n, err
}
