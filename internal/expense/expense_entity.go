package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	maxDescriptionLen = 500
	maxCommentsLen    = 200
)

type ExpenseType struct {
	ID   int64  `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name" json:"name"`
}

func (ExpenseType) TableName() string {
	return "expense_types"
}

type Expense struct {
	ID               int64           `gorm:"column:id;primaryKey"`
	ExpenseTypeID    int64           `gorm:"column:expense_type_id"`
	EmployeeID       int64           `gorm:"column:employee_id"`
	Description      string          `gorm:"column:description"`
	Amount           decimal.Decimal `gorm:"column:amount;type:numeric(12,2)"`
	ExpenseDate      time.Time       `gorm:"column:expense_date"`
	InvoicePath      string          `gorm:"column:invoice_path"`
	Status           string          `gorm:"column:status"`
	ApproverComments string          `gorm:"column:approver_comments"`
	ManagerID        *int64          `gorm:"column:manager_id"`
	ApprovedBy       *int64          `gorm:"column:approved_by"`
	ApprovedAt       *time.Time      `gorm:"column:approved_at"`
	FinalComments    string          `gorm:"column:final_comments"`
	GivenByID        *int64          `gorm:"column:given_by_id"`
	InsertedAt       time.Time       `gorm:"column:inserted_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

// ExpenseRow joins an expense with its type, owner and approver names.
type ExpenseRow struct {
	Expense
	ExpenseTypeName   string `gorm:"column:expense_type_name"`
	FirstName         string `gorm:"column:first_name"`
	LastName          string `gorm:"column:last_name"`
	ApproverFirstName string `gorm:"column:approver_first_name"`
	ApproverLastName  string `gorm:"column:approver_last_name"`
}

// ListFilter selects expenses. FromDate and ToDate bound the submission date.
// A zero PageSize returns every match.
type ListFilter struct {
	EmployeeID    int64
	ExpenseTypeID int64
	Status        string
	FromDate      *time.Time
	ToDate        *time.Time
	SortBy        string
	SortDir       string
	Page          int
	PageSize      int
}

// Decision is applied to a pending expense only.
type Decision struct {
	Status     string
	ManagerID  int64
	Comments   string
	ApprovedAt *time.Time
}
