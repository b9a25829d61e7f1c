package task

import "time"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"

	DetailIncomplete = "incomplete"
	DetailComplete   = "complete"
)

type Task struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	ProjectID   int64      `gorm:"column:project_id"`
	EmployeeID  int64      `gorm:"column:employee_id"`
	Description string     `gorm:"column:description"`
	Priority    string     `gorm:"column:priority"`
	Status      string     `gorm:"column:status"`
	StartDate   time.Time  `gorm:"column:start_date"`
	EndDate     *time.Time `gorm:"column:end_date"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

type Detail struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	TaskID      int64     `gorm:"column:task_id"`
	EmployeeID  int64     `gorm:"column:employee_id"`
	Description string    `gorm:"column:description"`
	Status      string    `gorm:"column:status"`
	InsertedAt  time.Time `gorm:"column:inserted_at"`
}

func (Detail) TableName() string {
	return "task_details"
}

// TaskRow is a task joined with its project and assignee names.
type TaskRow struct {
	ID          int64
	ProjectID   int64
	ProjectName string
	EmployeeID  int64
	FirstName   string
	LastName    string
	Description string
	Priority    string
	Status      string
	StartDate   time.Time
	EndDate     *time.Time
}

// DetailRow is a progress update joined with its author's name.
type DetailRow struct {
	ID          int64
	TaskID      int64
	EmployeeID  int64
	FirstName   string
	LastName    string
	Description string
	Status      string
	InsertedAt  time.Time
}

type ListFilter struct {
	ProjectID  int64
	EmployeeID int64
	Status     string
	Page       int
	PageSize   int
}
