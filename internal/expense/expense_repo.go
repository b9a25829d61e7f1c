package expense

import (
	"context"
	"database/sql"
	"strings"

	"go-worktrack/internal/shared/dbtx"
	"go-worktrack/internal/shared/scope"

	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"inserted_date": "ex.inserted_at",
	"employee":      "e.first_name",
	"expense_type":  "et.name",
	"status":        "ex.status",
	"expense_date":  "ex.expense_date",
	"amount":        "ex.amount",
}

// orderClause resolves a sort key and direction. Unknown keys fall back to newest first.
func orderClause(sortBy, sortDir string) string {
	col, ok := sortColumns[sortBy]
	if !ok {
		return "ex.inserted_at DESC"
	}
	if strings.EqualFold(sortDir, "asc") {
		return col + " ASC"
	}
	return col + " DESC"
}

//go:generate mockgen -source=expense_repo.go -destination=mock/expense_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateType(ctx context.Context, et *ExpenseType) error
	UpdateType(ctx context.Context, et *ExpenseType) error
	FindTypes(ctx context.Context) ([]ExpenseType, error)
	DeleteType(ctx context.Context, id int64) error
	DeleteAllTypes(ctx context.Context) (int64, error)

	Create(ctx context.Context, e *Expense) error
	FindAll(ctx context.Context, filter ListFilter) ([]ExpenseRow, int64, error)
	FindByID(ctx context.Context, id int64) (*ExpenseRow, error)
	Decide(ctx context.Context, id int64, d Decision) (int64, error)
	FindOwned(ctx context.Context, id, employeeID int64) (*Expense, error)
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

func (r *repository) CreateType(ctx context.Context, et *ExpenseType) error {
	return r.conn(ctx).Create(et).Error
}

func (r *repository) UpdateType(ctx context.Context, et *ExpenseType) error {
	res := r.conn(ctx).Model(&ExpenseType{}).Where("id = ?", et.ID).Update("name", et.Name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindTypes(ctx context.Context) ([]ExpenseType, error) {
	var types []ExpenseType
	err := r.conn(ctx).Order("name ASC").Find(&types).Error
	return types, err
}

func (r *repository) DeleteType(ctx context.Context, id int64) error {
	res := r.conn(ctx).Delete(&ExpenseType{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) DeleteAllTypes(ctx context.Context) (int64, error) {
	res := r.conn(ctx).Exec("DELETE FROM expense_types")
	return res.RowsAffected, res.Error
}

func (r *repository) Create(ctx context.Context, e *Expense) error {
	return r.conn(ctx).Create(e).Error
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Table("expenses ex").
		Joins("JOIN employees e ON e.id = ex.employee_id").
		Joins("LEFT JOIN expense_types et ON et.id = ex.expense_type_id").
		Joins("LEFT JOIN employees ap ON ap.id = ex.approved_by")
}

const rowColumns = `ex.*, COALESCE(et.name, '') AS expense_type_name, e.first_name, e.last_name,
	COALESCE(ap.first_name, '') AS approver_first_name, COALESCE(ap.last_name, '') AS approver_last_name`

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]ExpenseRow, int64, error) {
	q := r.joined(ctx)
	if filter.EmployeeID > 0 {
		q = q.Where("ex.employee_id = ?", filter.EmployeeID)
	}
	if filter.ExpenseTypeID > 0 {
		q = q.Where("ex.expense_type_id = ?", filter.ExpenseTypeID)
	}
	if filter.Status != "" {
		q = q.Where("ex.status = ?", filter.Status)
	}
	if filter.FromDate != nil {
		q = q.Where("ex.inserted_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		q = q.Where("ex.inserted_at < ?", filter.ToDate.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Select(rowColumns).
		Order(orderClause(filter.SortBy, filter.SortDir)).
		Order("ex.id DESC")
	if filter.PageSize > 0 {
		q = q.Scopes(scope.Paginate(filter.Page, filter.PageSize))
	}

	var rows []ExpenseRow
	err := q.Scan(&rows).Error
	return rows, total, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*ExpenseRow, error) {
	var row ExpenseRow
	err := r.joined(ctx).Select(rowColumns).Where("ex.id = ?", id).Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Decide moves a pending expense to a terminal status. Zero affected rows means
// the expense is absent or already decided.
func (r *repository) Decide(ctx context.Context, id int64, d Decision) (int64, error) {
	updates := map[string]interface{}{
		"status":            d.Status,
		"manager_id":        d.ManagerID,
		"approver_comments": d.Comments,
	}
	if d.ApprovedAt != nil {
		updates["approved_by"] = d.ManagerID
		updates["approved_at"] = *d.ApprovedAt
	}
	res := r.conn(ctx).
		Model(&Expense{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *repository) FindOwned(ctx context.Context, id, employeeID int64) (*Expense, error) {
	var e Expense
	err := r.conn(ctx).Scopes(scope.OwnedBy(employeeID)).Where("id = ?", id).Take(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.conn(ctx).Delete(&Expense{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
