package employee

type CreateEmployeeRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Gender    string `json:"gender" binding:"omitempty,oneof=male female other"`
	DOB       string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	Address   string `json:"address" binding:"max=500"`
	PhoneNo   string `json:"phone_no" binding:"required,max=20"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	Status    string `json:"status" binding:"omitempty,oneof=active inactive"`
	EmpType   string `json:"emp_type" binding:"omitempty,oneof=admin emp"`
}

// UpdateEmployeeRequest keeps the stored password hash when Password is empty.
type UpdateEmployeeRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Gender    string `json:"gender" binding:"omitempty,oneof=male female other"`
	DOB       string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	Address   string `json:"address" binding:"max=500"`
	PhoneNo   string `json:"phone_no" binding:"required,max=20"`
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"omitempty,min=6,max=72"`
	Status    string `json:"status" binding:"required,oneof=active inactive"`
	EmpType   string `json:"emp_type" binding:"required,oneof=admin emp"`
}

type EmployeeResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Gender    string `json:"gender"`
	DOB       string `json:"dob,omitempty"`
	Address   string `json:"address"`
	PhoneNo   string `json:"phone_no"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	EmpType   string `json:"emp_type"`
}

type OptionResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

type UpsertProfileRequest struct {
	UAN                  string `json:"uan" binding:"max=20"`
	PAN                  string `json:"pan" binding:"max=20"`
	Aadhaar              string `json:"aadhaar" binding:"max=20"`
	BankName             string `json:"bank_name" binding:"max=100"`
	Branch               string `json:"branch" binding:"max=100"`
	AccountNo            string `json:"account_no" binding:"max=30"`
	IFSC                 string `json:"ifsc" binding:"max=20"`
	Designation          string `json:"designation" binding:"max=100"`
	EmergencyContactName string `json:"emergency_contact_name" binding:"max=100"`
	EmergencyContactNo   string `json:"emergency_contact_no" binding:"max=20"`
	EmergencyRelation    string `json:"emergency_relation" binding:"max=50"`
	ReportingManagerID   *int64 `json:"reporting_manager_id" binding:"omitempty,gt=0"`
	DateOfJoining        string `json:"date_of_joining" binding:"omitempty,datetime=2006-01-02"`
	ProgrammingLanguages string `json:"programming_languages"`
	Frameworks           string `json:"frameworks"`
}

type EmergencyContactRequest struct {
	Name     string `json:"emergency_contact_name" binding:"required,max=100"`
	Number   string `json:"emergency_contact_no" binding:"required,max=20"`
	Relation string `json:"emergency_relation" binding:"required,max=50"`
}

type ProfileResponse struct {
	EmployeeID                 int64  `json:"employee_id"`
	FullName                   string `json:"full_name"`
	UAN                        string `json:"uan"`
	PAN                        string `json:"pan"`
	Aadhaar                    string `json:"aadhaar"`
	BankName                   string `json:"bank_name"`
	Branch                     string `json:"branch"`
	AccountNo                  string `json:"account_no"`
	IFSC                       string `json:"ifsc"`
	Designation                string `json:"designation"`
	EmergencyContactName       string `json:"emergency_contact_name"`
	EmergencyContactNo         string `json:"emergency_contact_no"`
	EmergencyRelation          string `json:"emergency_relation"`
	EmergencyUpdatedByEmployee bool   `json:"emergency_updated_by_employee"`
	ReportingManagerID         *int64 `json:"reporting_manager_id"`
	DateOfJoining              string `json:"date_of_joining,omitempty"`
	ProgrammingLanguages       string `json:"programming_languages"`
	Frameworks                 string `json:"frameworks"`
}

type CelebrationResponse struct {
	EmployeeID     int64  `json:"employee_id"`
	FullName       string `json:"full_name"`
	Kind           string `json:"kind"`
	Date           string `json:"date"`
	DaysUntil      int    `json:"days_until"`
	YearsCompleted int    `json:"years_completed"`
}

type AdminSeed struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}
