package leave

type LeaveTypeRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

type SubmitLeaveRequest struct {
	LeaveTypeID int64  `json:"leave_type_id" binding:"required,gt=0"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Description string `json:"description"`
	ManagerID   *int64 `json:"manager_id" binding:"omitempty,gt=0"`
}

type DecideRequest struct {
	Status   string `json:"status" binding:"required,oneof=approved rejected"`
	Comments string `json:"comments"`
}

// ListQuery carries the raw list query parameters before date parsing.
type ListQuery struct {
	EmployeeID  int64  `form:"employee_id"`
	LeaveTypeID int64  `form:"leave_type_id"`
	Status      string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	FromDate    string `form:"from_date"`
	ToDate      string `form:"to_date"`
	SortBy      string `form:"sort_by"`
	SortDir     string `form:"sort_dir"`
}

type SummaryQuery struct {
	FromDate    string `form:"from_date"`
	ToDate      string `form:"to_date"`
	LeaveTypeID int64  `form:"leave_type_id"`
}

type LeaveResponse struct {
	ID           int64  `json:"id"`
	LeaveTypeID  int64  `json:"leave_type_id"`
	LeaveType    string `json:"leave_type"`
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Days         int    `json:"days"`
	Description  string `json:"description"`
	ManagerID    *int64 `json:"manager_id,omitempty"`
	Comments     string `json:"comments"`
	Status       string `json:"status"`
	InsertedAt   string `json:"inserted_at"`
}

type SummaryResponse struct {
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	TotalDays    int64  `json:"total_days"`
}
