package task

import (
	"context"
	"database/sql"
	"time"

	"go-worktrack/internal/shared/dbtx"
	"go-worktrack/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const taskRowColumns = `t.id, t.project_id, p.name AS project_name, t.employee_id, e.first_name, e.last_name,
	t.description, t.priority, t.status, t.start_date, t.end_date`

//go:generate mockgen -source=task_repo.go -destination=mock/task_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Task) error
	Update(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id int64) (*Task, error)
	LockByID(ctx context.Context, id int64) (*Task, error)
	FindAll(ctx context.Context, filter ListFilter) ([]TaskRow, int64, error)
	FindByEmployee(ctx context.Context, employeeID int64, status string) ([]TaskRow, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
	MarkCompleted(ctx context.Context, id int64, endDate time.Time) error

	CountDetailsSince(ctx context.Context, taskID, employeeID int64, since time.Time) (int64, error)
	CreateDetail(ctx context.Context, d *Detail) error
	FindOwnedDetail(ctx context.Context, detailID, employeeID int64) (*Detail, error)
	UpdateDetail(ctx context.Context, d *Detail) error
	FindDetails(ctx context.Context, taskID int64) ([]DetailRow, error)
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

func (r *repository) Create(ctx context.Context, t *Task) error {
	return r.conn(ctx).Create(t).Error
}

func (r *repository) Update(ctx context.Context, t *Task) error {
	return r.conn(ctx).Save(t).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Task, error) {
	var t Task
	if err := r.conn(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// LockByID reads the task with FOR UPDATE so concurrent detail writes serialize.
func (r *repository) LockByID(ctx context.Context, id int64) (*Task, error) {
	var t Task
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Table("tasks t").
		Joins("JOIN projects p ON p.id = t.project_id").
		Joins("JOIN employees e ON e.id = t.employee_id")
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]TaskRow, int64, error) {
	q := r.joined(ctx)
	if filter.ProjectID > 0 {
		q = q.Where("t.project_id = ?", filter.ProjectID)
	}
	if filter.EmployeeID > 0 {
		q = q.Where("t.employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("t.status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []TaskRow
	err := q.Select(taskRowColumns).
		Order("t.created_at DESC").Order("t.id DESC").
		Scopes(scope.Paginate(filter.Page, filter.PageSize)).
		Scan(&rows).Error
	return rows, total, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID int64, status string) ([]TaskRow, error) {
	q := r.joined(ctx).Where("t.employee_id = ?", employeeID)
	if status != "" {
		q = q.Where("t.status = ?", status)
	}

	var rows []TaskRow
	err := q.Select(taskRowColumns).
		Order("t.priority DESC").Order("t.start_date").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	if err := r.conn(ctx).Where("task_id = ?", id).Delete(&Detail{}).Error; err != nil {
		return err
	}
	res := r.conn(ctx).Delete(&Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) DeleteAll(ctx context.Context) (int64, error) {
	if err := r.conn(ctx).Exec("DELETE FROM task_details").Error; err != nil {
		return 0, err
	}
	res := r.conn(ctx).Exec("DELETE FROM tasks")
	return res.RowsAffected, res.Error
}

func (r *repository) MarkCompleted(ctx context.Context, id int64, endDate time.Time) error {
	return r.conn(ctx).
		Model(&Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     StatusCompleted,
			"end_date":   endDate,
			"updated_at": gorm.Expr("now()"),
		}).Error
}

func (r *repository) CountDetailsSince(ctx context.Context, taskID, employeeID int64, since time.Time) (int64, error) {
	var n int64
	err := r.conn(ctx).
		Model(&Detail{}).
		Where("task_id = ? AND employee_id = ? AND inserted_at >= ?", taskID, employeeID, since).
		Count(&n).Error
	return n, err
}

func (r *repository) CreateDetail(ctx context.Context, d *Detail) error {
	return r.conn(ctx).Create(d).Error
}

func (r *repository) FindOwnedDetail(ctx context.Context, detailID, employeeID int64) (*Detail, error) {
	var d Detail
	err := r.conn(ctx).
		Table("task_details td").
		Select("td.*").
		Joins("JOIN tasks t ON t.id = td.task_id").
		Where("td.id = ? AND t.employee_id = ?", detailID, employeeID).
		Take(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) UpdateDetail(ctx context.Context, d *Detail) error {
	return r.conn(ctx).
		Model(&Detail{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"description": d.Description,
			"status":      d.Status,
			"inserted_at": d.InsertedAt,
		}).Error
}

func (r *repository) FindDetails(ctx context.Context, taskID int64) ([]DetailRow, error) {
	var rows []DetailRow
	err := r.conn(ctx).
		Table("task_details td").
		Select("td.id, td.task_id, td.employee_id, e.first_name, e.last_name, td.description, td.status, td.inserted_at").
		Joins("LEFT JOIN employees e ON e.id = td.employee_id").
		Where("td.task_id = ?", taskID).
		Order("td.inserted_at DESC").
		Scan(&rows).Error
	return rows, err
}
