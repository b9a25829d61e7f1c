package project

import "time"

type Project struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	Name        string     `gorm:"column:name"`
	Priority    string     `gorm:"column:priority"`
	Description string     `gorm:"column:description"`
	Status      string     `gorm:"column:status"`
	StartDate   time.Time  `gorm:"column:start_date"`
	EndDate     *time.Time `gorm:"column:end_date"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectTask is a task row joined with its assignee's name.
type ProjectTask struct {
	ID          int64
	Description string
	EmployeeID  int64
	Priority    string
	Status      string
	StartDate   time.Time
	EndDate     *time.Time
	FirstName   string
	LastName    string
}
