package leave

import (
	"context"
	"database/sql"
	"strings"

	"go-worktrack/internal/shared/dbtx"
	"go-worktrack/internal/shared/scope"

	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"inserted_date": "lr.inserted_at",
	"employee":      "e.first_name",
	"leave_type":    "lt.name",
	"status":        "lr.status",
	"start_date":    "lr.start_date",
	"end_date":      "lr.end_date",
}

// orderClause resolves a sort key and direction. Unknown keys fall back to newest first.
func orderClause(sortBy, sortDir string) string {
	col, ok := sortColumns[sortBy]
	if !ok {
		return "lr.inserted_at DESC"
	}
	if strings.EqualFold(sortDir, "asc") {
		return col + " ASC"
	}
	return col + " DESC"
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateType(ctx context.Context, lt *LeaveType) error
	UpdateType(ctx context.Context, lt *LeaveType) error
	FindTypes(ctx context.Context) ([]LeaveType, error)
	DeleteType(ctx context.Context, id int64) error
	DeleteAllTypes(ctx context.Context) (int64, error)

	Create(ctx context.Context, l *LeaveRequest) error
	FindAll(ctx context.Context, filter ListFilter) ([]LeaveRow, int64, error)
	FindByID(ctx context.Context, id int64) (*LeaveRow, error)
	Decide(ctx context.Context, id int64, status string, managerID int64, comments string) (int64, error)
	DeleteOwned(ctx context.Context, id, employeeID int64) (int64, error)
	Summary(ctx context.Context, filter SummaryFilter) ([]SummaryRow, error)
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

func (r *repository) CreateType(ctx context.Context, lt *LeaveType) error {
	return r.conn(ctx).Create(lt).Error
}

func (r *repository) UpdateType(ctx context.Context, lt *LeaveType) error {
	res := r.conn(ctx).Model(&LeaveType{}).Where("id = ?", lt.ID).Update("name", lt.Name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindTypes(ctx context.Context) ([]LeaveType, error) {
	var types []LeaveType
	err := r.conn(ctx).Order("name").Find(&types).Error
	return types, err
}

func (r *repository) DeleteType(ctx context.Context, id int64) error {
	res := r.conn(ctx).Delete(&LeaveType{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) DeleteAllTypes(ctx context.Context) (int64, error) {
	res := r.conn(ctx).Exec("DELETE FROM leave_types")
	return res.RowsAffected, res.Error
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Table("leave_requests lr").
		Joins("JOIN employees e ON e.id = lr.employee_id").
		Joins("LEFT JOIN leave_types lt ON lt.id = lr.leave_type_id")
}

const rowColumns = `lr.*, COALESCE(lt.name, '') AS leave_type_name, e.first_name, e.last_name`

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]LeaveRow, int64, error) {
	q := r.joined(ctx)
	if filter.EmployeeID > 0 {
		q = q.Where("lr.employee_id = ?", filter.EmployeeID)
	}
	if filter.LeaveTypeID > 0 {
		q = q.Where("lr.leave_type_id = ?", filter.LeaveTypeID)
	}
	if filter.Status != "" {
		q = q.Where("lr.status = ?", filter.Status)
	}
	if filter.FromDate != nil {
		q = q.Where("lr.start_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		q = q.Where("lr.end_date <= ?", *filter.ToDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []LeaveRow
	err := q.Select(rowColumns).
		Order(orderClause(filter.SortBy, filter.SortDir)).
		Order("lr.id DESC").
		Scopes(scope.Paginate(filter.Page, filter.PageSize)).
		Scan(&rows).Error
	return rows, total, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*LeaveRow, error) {
	var row LeaveRow
	err := r.joined(ctx).Select(rowColumns).Where("lr.id = ?", id).Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Decide moves a pending request to a terminal status. Zero affected rows means
// the request is absent or already decided.
func (r *repository) Decide(ctx context.Context, id int64, status string, managerID int64, comments string) (int64, error) {
	res := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"manager_id": managerID,
			"comments":   comments,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteOwned(ctx context.Context, id, employeeID int64) (int64, error) {
	res := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&LeaveRequest{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) Summary(ctx context.Context, filter SummaryFilter) ([]SummaryRow, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.FromDate != nil {
		conds = append(conds, "lr.start_date >= ?")
		args = append(args, *filter.FromDate)
	}
	if filter.ToDate != nil {
		conds = append(conds, "lr.end_date <= ?")
		args = append(args, *filter.ToDate)
	}
	if filter.LeaveTypeID > 0 {
		conds = append(conds, "lr.leave_type_id = ?")
		args = append(args, filter.LeaveTypeID)
	}

	on := "lr.employee_id = e.id"
	if len(conds) > 0 {
		on += " AND " + strings.Join(conds, " AND ")
	}

	query := `
		SELECT e.id AS employee_id, e.first_name, e.last_name,
			COALESCE(SUM(lr.end_date - lr.start_date + 1), 0) AS total_days
		FROM employees e
		LEFT JOIN leave_requests lr ON ` + on + `
		GROUP BY e.id, e.first_name, e.last_name
		ORDER BY e.first_name, e.last_name`

	var rows []SummaryRow
	err := r.conn(ctx).Raw(query, args...).Scan(&rows).Error
	return rows, err
}
