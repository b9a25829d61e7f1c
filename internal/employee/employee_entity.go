package employee

import (
	"strings"
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	TypeAdmin    = "admin"
	TypeEmployee = "emp"

	// asset_allocations.status of an asset still held.
	allocationAllocated = "Allocated"
)

type Employee struct {
	ID           int64      `gorm:"primaryKey"`
	FirstName    string     `gorm:"column:first_name"`
	LastName     string     `gorm:"column:last_name"`
	Gender       string     `gorm:"column:gender"`
	DOB          *time.Time `gorm:"column:dob"`
	Address      string     `gorm:"column:address"`
	PhoneNo      string     `gorm:"column:phone_no"`
	Email        string     `gorm:"column:email"`
	PasswordHash string     `gorm:"column:password_hash"`
	Status       string     `gorm:"column:status"`
	EmpType      string     `gorm:"column:emp_type"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

type Profile struct {
	EmployeeID                 int64      `gorm:"column:employee_id;primaryKey"`
	UAN                        string     `gorm:"column:uan"`
	PAN                        string     `gorm:"column:pan"`
	Aadhaar                    string     `gorm:"column:aadhaar"`
	BankName                   string     `gorm:"column:bank_name"`
	Branch                     string     `gorm:"column:branch"`
	AccountNo                  string     `gorm:"column:account_no"`
	IFSC                       string     `gorm:"column:ifsc"`
	Designation                string     `gorm:"column:designation"`
	EmergencyContactName       string     `gorm:"column:emergency_contact_name"`
	EmergencyContactNo         string     `gorm:"column:emergency_contact_no"`
	EmergencyRelation          string     `gorm:"column:emergency_relation"`
	EmergencyUpdatedByEmployee bool       `gorm:"column:emergency_updated_by_employee"`
	ReportingManagerID         *int64     `gorm:"column:reporting_manager_id"`
	DateOfJoining              *time.Time `gorm:"column:date_of_joining"`
	ProgrammingLanguages       string     `gorm:"column:programming_languages"`
	Frameworks                 string     `gorm:"column:frameworks"`
	UpdatedAt                  time.Time
}

func (Profile) TableName() string { return "employee_profiles" }

// Option is the picker projection of an active employee.
type Option struct {
	ID        int64  `gorm:"column:id"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
}

// CelebrationSource carries the dates celebrations are computed from.
type CelebrationSource struct {
	ID            int64      `gorm:"column:id"`
	FirstName     string     `gorm:"column:first_name"`
	LastName      string     `gorm:"column:last_name"`
	DOB           *time.Time `gorm:"column:dob"`
	DateOfJoining *time.Time `gorm:"column:date_of_joining"`
}

type ListFilter struct {
	Query    string
	Status   string
	EmpType  string
	SortBy   string
	SortDir  string
	Page     int
	PageSize int
}
