package auth

import "time"

// Credential is the login view of an employees row.
type Credential struct {
	ID           int64  `gorm:"primaryKey"`
	FirstName    string
	LastName     string
	Email        string
	PhoneNo      string
	PasswordHash string
	Status       string
	EmpType      string
}

func (Credential) TableName() string { return "employees" }

// Session is what the Redis session store keeps per login.
type Session struct {
	ID         string    `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}
