package task

type TaskRequest struct {
	ProjectID   int64  `json:"project_id" binding:"required,gt=0"`
	EmployeeID  int64  `json:"employee_id" binding:"required,gt=0"`
	Description string `json:"description" binding:"required,max=2000"`
	Priority    string `json:"priority" binding:"required,max=20"`
	Status      string `json:"status" binding:"omitempty,max=20"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date"`
}

type DetailRequest struct {
	Description string `json:"description" binding:"required,max=2000"`
	Status      string `json:"status" binding:"required,oneof=incomplete complete"`
}

type TaskResponse struct {
	ID           int64  `json:"id"`
	ProjectID    int64  `json:"project_id"`
	ProjectName  string `json:"project_name,omitempty"`
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Description  string `json:"description"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date,omitempty"`
}

type DetailResponse struct {
	ID           int64  `json:"id"`
	TaskID       int64  `json:"task_id"`
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Description  string `json:"description"`
	Status       string `json:"status"`
	InsertedAt   string `json:"inserted_at"`
}
