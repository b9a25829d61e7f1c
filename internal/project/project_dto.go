package project

type ProjectRequest struct {
	Name        string `json:"name" binding:"required,max=150"`
	Priority    string `json:"priority" binding:"required,max=20"`
	Description string `json:"description" binding:"max=2000"`
	Status      string `json:"status" binding:"required,max=20"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date"`
}

type ProjectResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type ProjectTaskResponse struct {
	ID           int64  `json:"id"`
	Description  string `json:"description"`
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date,omitempty"`
}

type ProjectDetailResponse struct {
	ProjectResponse
	Tasks []ProjectTaskResponse `json:"tasks"`
}
