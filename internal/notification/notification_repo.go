package notification

import (
	"context"
	"time"

	"go-worktrack/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	// Create inserts n unless a row for the same event exists. It reports
	// whether a row was written.
	Create(ctx context.Context, n *Notification) (bool, error)
	FindOwn(ctx context.Context, employeeID int64, page, pageSize int) ([]Notification, int64, error)
	MarkRead(ctx context.Context, id, employeeID int64, at time.Time) (int64, error)
	ExistsOwned(ctx context.Context, id, employeeID int64) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(n)
	return res.RowsAffected > 0, res.Error
}

// FindOwn lists unread notifications first, newest first within each group.
func (r *repository) FindOwn(ctx context.Context, employeeID int64, page, pageSize int) ([]Notification, int64, error) {
	q := r.db.WithContext(ctx).Model(&Notification{}).Scopes(scope.OwnedBy(employeeID))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Notification
	err := q.Order("read_at IS NULL DESC").
		Order("created_at DESC").
		Order("id DESC").
		Scopes(scope.Paginate(page, pageSize)).
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) MarkRead(ctx context.Context, id, employeeID int64, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND employee_id = ? AND read_at IS NULL", id, employeeID).
		Update("read_at", at)
	return res.RowsAffected, res.Error
}

func (r *repository) ExistsOwned(ctx context.Context, id, employeeID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Scopes(scope.OwnedBy(employeeID)).
		Where("id = ?", id).
		Count(&n).Error
	return n > 0, err
}
