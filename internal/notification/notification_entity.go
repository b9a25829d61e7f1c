package notification

import "time"

type Notification struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	EmployeeID  int64      `gorm:"column:employee_id"`
	EventID     string     `gorm:"column:event_id"`
	Kind        string     `gorm:"column:kind"`
	ReferenceID int64      `gorm:"column:reference_id"`
	Message     string     `gorm:"column:message"`
	ReadAt      *time.Time `gorm:"column:read_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
