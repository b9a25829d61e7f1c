package employee

import (
	"context"
	"database/sql"
	"strings"

	"go-worktrack/internal/shared/dbtx"
	"go-worktrack/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var sortColumns = map[string]string{
	"name":       "first_name, last_name",
	"email":      "email",
	"status":     "status",
	"emp_type":   "emp_type",
	"created_at": "created_at",
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindOptions(ctx context.Context) ([]Option, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id int64) error
	CountTasks(ctx context.Context, id int64) (int64, error)
	CountActiveAllocations(ctx context.Context, id int64) (int64, error)
	FindInvoicePaths(ctx context.Context, id int64) ([]string, error)
	CountAdmins(ctx context.Context) (int64, error)
	// DeleteNonAdminWithoutTasks removes every non-admin employee that has no
	// task work and holds no asset, returning the invoice files their
	// cascaded expenses referenced.
	DeleteNonAdminWithoutTasks(ctx context.Context) (int64, []string, error)
	FindProfile(ctx context.Context, employeeID int64) (*Profile, error)
	UpsertProfile(ctx context.Context, profile *Profile) error
	UpdateEmergencyOnce(ctx context.Context, employeeID int64, name, number, relation string) (int64, error)
	FindCelebrationSources(ctx context.Context) ([]CelebrationSource, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Employee, int64, error) {
	q := r.conn(ctx).Model(&Employee{})
	if term := strings.TrimSpace(filter.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(first_name || ' ' || last_name) LIKE ? OR LOWER(email) LIKE ? OR phone_no LIKE ?", like, like, like)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.EmpType != "" {
		q = q.Where("emp_type = ?", filter.EmpType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := sortColumns[filter.SortBy]
	if !ok {
		order = "first_name, last_name"
	}
	if strings.EqualFold(filter.SortDir, "desc") {
		order = strings.ReplaceAll(order, ",", " DESC,") + " DESC"
	}

	var empls []Employee
	err := q.Order(order).Order("id").
		Scopes(scope.Paginate(filter.Page, filter.PageSize)).
		Find(&empls).Error
	return empls, total, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Employee, error) {
	var empl Employee
	if err := r.conn(ctx).First(&empl, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindOptions(ctx context.Context) ([]Option, error) {
	var opts []Option
	err := r.conn(ctx).
		Model(&Employee{}).
		Select("id, first_name, last_name").
		Where("status = ?", StatusActive).
		Order("first_name, last_name").
		Scan(&opts).Error
	return opts, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.conn(ctx).Delete(&Employee{}, "id = ?", id)
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
	err := r.conn(ctx).Table("tasks").Where("employee_id = ?", id).Count(&n).Error
	return n, err
}

func (r *repository) CountActiveAllocations(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.conn(ctx).Table("asset_allocations").
		Where("employee_id = ? AND status = ?", id, allocationAllocated).
		Count(&n).Error
	return n, err
}

func (r *repository) FindInvoicePaths(ctx context.Context, id int64) ([]string, error) {
	var paths []string
	err := r.conn(ctx).Table("expenses").
		Where("employee_id = ? AND invoice_path <> ''", id).
		Pluck("invoice_path", &paths).Error
	return paths, err
}

func (r *repository) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := r.conn(ctx).Model(&Employee{}).Where("emp_type = ?", TypeAdmin).Count(&n).Error
	return n, err
}

// removableEmployee matches employees a bulk delete may remove.
const removableEmployee = `e.emp_type <> ?
	AND NOT EXISTS (SELECT 1 FROM tasks t WHERE t.employee_id = e.id)
	AND NOT EXISTS (SELECT 1 FROM task_details d WHERE d.employee_id = e.id)
	AND NOT EXISTS (SELECT 1 FROM asset_allocations a WHERE a.employee_id = e.id AND a.status = ?)`

func (r *repository) DeleteNonAdminWithoutTasks(ctx context.Context) (int64, []string, error) {
	var paths []string
	err := r.conn(ctx).Raw(`
		SELECT x.invoice_path FROM expenses x
		JOIN employees e ON e.id = x.employee_id
		WHERE x.invoice_path <> '' AND `+removableEmployee,
		TypeAdmin, allocationAllocated,
	).Scan(&paths).Error
	if err != nil {
		return 0, nil, err
	}

	res := r.conn(ctx).Exec(`DELETE FROM employees e WHERE `+removableEmployee, TypeAdmin, allocationAllocated)
	if res.Error != nil {
		return 0, nil, res.Error
	}
	return res.RowsAffected, paths, nil
}

func (r *repository) FindProfile(ctx context.Context, employeeID int64) (*Profile, error) {
	var p Profile
	if err := r.conn(ctx).First(&p, "employee_id = ?", employeeID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) UpsertProfile(ctx context.Context, profile *Profile) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"uan", "pan", "aadhaar", "bank_name", "branch", "account_no", "ifsc",
				"designation", "emergency_contact_name", "emergency_contact_no",
				"emergency_relation", "reporting_manager_id", "date_of_joining",
				"programming_languages", "frameworks", "updated_at",
			}),
		}).
		Create(profile).Error
}

// UpdateEmergencyOnce writes the employee's own emergency contact only while the
// self-service flag is still unset; it reports the number of rows changed.
func (r *repository) UpdateEmergencyOnce(ctx context.Context, employeeID int64, name, number, relation string) (int64, error) {
	conn := r.conn(ctx)
	if err := conn.Exec(
		`INSERT INTO employee_profiles (employee_id) VALUES (?) ON CONFLICT (employee_id) DO NOTHING`,
		employeeID,
	).Error; err != nil {
		return 0, err
	}

	res := conn.Model(&Profile{}).
		Where("employee_id = ? AND emergency_updated_by_employee = ?", employeeID, false).
		Updates(map[string]any{
			"emergency_contact_name":        name,
			"emergency_contact_no":          number,
			"emergency_relation":            relation,
			"emergency_updated_by_employee": true,
			"updated_at":                    gorm.Expr("now()"),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) FindCelebrationSources(ctx context.Context) ([]CelebrationSource, error) {
	var rows []CelebrationSource
	err := r.conn(ctx).
		Table("employees e").
		Select("e.id, e.first_name, e.last_name, e.dob, p.date_of_joining").
		Joins("LEFT JOIN employee_profiles p ON p.employee_id = e.id").
		Where("e.status = ?", StatusActive).
		Where("e.dob IS NOT NULL OR p.date_of_joining IS NOT NULL").
		Scan(&rows).Error
	return rows, err
}
