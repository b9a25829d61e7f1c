package leave

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	maxDescriptionLen = 500
	maxCommentsLen    = 200
)

type LeaveType struct {
	ID   int64  `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name" json:"name"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}

type LeaveRequest struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	LeaveTypeID int64     `gorm:"column:leave_type_id"`
	EmployeeID  int64     `gorm:"column:employee_id"`
	StartDate   time.Time `gorm:"column:start_date"`
	EndDate     time.Time `gorm:"column:end_date"`
	Description string    `gorm:"column:description"`
	ManagerID   *int64    `gorm:"column:manager_id"`
	Comments    string    `gorm:"column:comments"`
	Status      string    `gorm:"column:status"`
	InsertedAt  time.Time `gorm:"column:inserted_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// LeaveRow is a request joined with its type and employee names.
// LeaveTypeName is empty when the type was deleted.
type LeaveRow struct {
	LeaveRequest
	LeaveTypeName string `gorm:"column:leave_type_name"`
	FirstName     string `gorm:"column:first_name"`
	LastName      string `gorm:"column:last_name"`
}

type SummaryRow struct {
	EmployeeID int64  `gorm:"column:employee_id"`
	FirstName  string `gorm:"column:first_name"`
	LastName   string `gorm:"column:last_name"`
	TotalDays  int64  `gorm:"column:total_days"`
}

type ListFilter struct {
	EmployeeID  int64
	LeaveTypeID int64
	Status      string
	FromDate    *time.Time
	ToDate      *time.Time
	SortBy      string
	SortDir     string
	Page        int
	PageSize    int
}

type SummaryFilter struct {
	FromDate    *time.Time
	ToDate      *time.Time
	LeaveTypeID int64
}
