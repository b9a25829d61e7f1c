package asset

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusAvailable = "Available"
	StatusAllocated = "Allocated"

	AllocationActive   = "Allocated"
	AllocationReturned = "Returned"

	IssueOpen     = "Open"
	IssueResolved = "Resolved"

	tagFormat = "AST-%06d"
)

type Asset struct {
	ID          int64           `gorm:"column:id;primaryKey"`
	AssetTag    string          `gorm:"column:asset_tag"`
	ItemName    string          `gorm:"column:item_name"`
	Model       string          `gorm:"column:model"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	Description string          `gorm:"column:description"`
	Status      string          `gorm:"column:status"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}

type Allocation struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	AssetID      int64      `gorm:"column:asset_id"`
	EmployeeID   int64      `gorm:"column:employee_id"`
	AllocateDate time.Time  `gorm:"column:allocate_date"`
	ReturnedDate *time.Time `gorm:"column:returned_date"`
	Status       string     `gorm:"column:status"`
	AllocatedBy  *int64     `gorm:"column:allocated_by"`
	Description  string     `gorm:"column:description"`
}

func (Allocation) TableName() string {
	return "asset_allocations"
}

type Issue struct {
	ID           int64      `gorm:"column:id;primaryKey"`
	AllocationID int64      `gorm:"column:allocation_id"`
	EmployeeID   int64      `gorm:"column:employee_id"`
	Issue        string     `gorm:"column:issue"`
	Status       string     `gorm:"column:status"`
	ReportedAt   time.Time  `gorm:"column:reported_at"`
	Resolution   string     `gorm:"column:resolution"`
	ResolvedAt   *time.Time `gorm:"column:resolved_at"`
	ResolvedBy   *int64     `gorm:"column:resolved_by"`
}

func (Issue) TableName() string {
	return "asset_issues"
}

// AllocationRow is an allocation joined with its asset and holder.
type AllocationRow struct {
	Allocation
	AssetTag  string `gorm:"column:asset_tag"`
	ItemName  string `gorm:"column:item_name"`
	Model     string `gorm:"column:model"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
}

type ListFilter struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// AllocationFilter selects allocations. Zero fields match everything.
type AllocationFilter struct {
	EmployeeID int64
	Status     string
}
