package asset

import (
	"context"
	"database/sql"
	"time"

	"go-worktrack/internal/shared/dbtx"
	"go-worktrack/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=asset_repo.go -destination=mock/asset_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, a *Asset) error
	Update(ctx context.Context, a *Asset) error
	FindAll(ctx context.Context, filter ListFilter) ([]Asset, int64, error)
	FindByID(ctx context.Context, id int64) (*Asset, error)
	Delete(ctx context.Context, id int64) error
	MarkAllocated(ctx context.Context, id int64) (int64, error)
	MarkAvailable(ctx context.Context, id int64) error

	CreateAllocation(ctx context.Context, a *Allocation) error
	FindAllocation(ctx context.Context, id int64) (*Allocation, error)
	LockAllocation(ctx context.Context, id int64) (*Allocation, error)
	CloseAllocation(ctx context.Context, id int64, returned time.Time) (int64, error)
	FindAllocations(ctx context.Context, filter AllocationFilter) ([]AllocationRow, error)

	CreateIssue(ctx context.Context, i *Issue) error
	FindIssue(ctx context.Context, id int64) (*Issue, error)
	FindIssues(ctx context.Context, allocationIDs []int64, status string) ([]Issue, error)
	ResolveIssue(ctx context.Context, id int64, resolution string, resolvedBy int64, at time.Time) (int64, error)
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

func (r *repository) Create(ctx context.Context, a *Asset) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Asset) error {
	res := r.conn(ctx).
		Model(&Asset{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"item_name":   a.ItemName,
			"model":       a.Model,
			"price":       a.Price,
			"description": a.Description,
			"updated_at":  a.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Asset, int64, error) {
	q := r.conn(ctx).Model(&Asset{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("item_name ILIKE ? OR model ILIKE ? OR asset_tag ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assets []Asset
	err := q.Order("id DESC").
		Scopes(scope.Paginate(filter.Page, filter.PageSize)).
		Find(&assets).Error
	return assets, total, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Asset, error) {
	var a Asset
	if err := r.conn(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res := r.conn(ctx).Delete(&Asset{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllocated flips an available asset to allocated. Zero affected rows
// means the asset is absent or already allocated.
func (r *repository) MarkAllocated(ctx context.Context, id int64) (int64, error) {
	res := r.conn(ctx).
		Model(&Asset{}).
		Where("id = ? AND status = ?", id, StatusAvailable).
		Updates(map[string]interface{}{"status": StatusAllocated, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

func (r *repository) MarkAvailable(ctx context.Context, id int64) error {
	return r.conn(ctx).
		Model(&Asset{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": StatusAvailable, "updated_at": time.Now()}).Error
}

func (r *repository) CreateAllocation(ctx context.Context, a *Allocation) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindAllocation(ctx context.Context, id int64) (*Allocation, error) {
	var a Allocation
	if err := r.conn(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) LockAllocation(ctx context.Context, id int64) (*Allocation, error) {
	var a Allocation
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) CloseAllocation(ctx context.Context, id int64, returned time.Time) (int64, error) {
	res := r.conn(ctx).
		Model(&Allocation{}).
		Where("id = ? AND status = ?", id, AllocationActive).
		Updates(map[string]interface{}{"status": AllocationReturned, "returned_date": returned})
	return res.RowsAffected, res.Error
}

func (r *repository) FindAllocations(ctx context.Context, filter AllocationFilter) ([]AllocationRow, error) {
	q := r.conn(ctx).
		Table("asset_allocations aa").
		Select("aa.*, a.asset_tag, a.item_name, a.model, e.first_name, e.last_name").
		Joins("JOIN assets a ON a.id = aa.asset_id").
		Joins("JOIN employees e ON e.id = aa.employee_id")
	if filter.EmployeeID > 0 {
		q = q.Where("aa.employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("aa.status = ?", filter.Status)
	}

	var rows []AllocationRow
	err := q.Order("aa.allocate_date DESC").Order("aa.id DESC").Scan(&rows).Error
	return rows, err
}

func (r *repository) CreateIssue(ctx context.Context, i *Issue) error {
	return r.conn(ctx).Create(i).Error
}

func (r *repository) FindIssue(ctx context.Context, id int64) (*Issue, error) {
	var i Issue
	if err := r.conn(ctx).First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

// FindIssues returns issues of the given allocations, oldest first. An empty
// status matches every issue.
func (r *repository) FindIssues(ctx context.Context, allocationIDs []int64, status string) ([]Issue, error) {
	if len(allocationIDs) == 0 {
		return nil, nil
	}
	q := r.conn(ctx).Where("allocation_id IN ?", allocationIDs)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var issues []Issue
	err := q.Order("reported_at ASC").Order("id ASC").Find(&issues).Error
	return issues, err
}

func (r *repository) ResolveIssue(ctx context.Context, id int64, resolution string, resolvedBy int64, at time.Time) (int64, error) {
	res := r.conn(ctx).
		Model(&Issue{}).
		Where("id = ? AND status = ?", id, IssueOpen).
		Updates(map[string]interface{}{
			"status":      IssueResolved,
			"resolution":  resolution,
			"resolved_by": resolvedBy,
			"resolved_at": at,
		})
	return res.RowsAffected, res.Error
}
