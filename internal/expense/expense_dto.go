package expense

type ExpenseTypeRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// SubmitExpenseRequest is bound from a multipart form; the invoice travels
// as the "invoice" file part.
type SubmitExpenseRequest struct {
	ExpenseTypeID int64  `form:"expense_type_id" binding:"required,gt=0"`
	Amount        string `form:"amount" binding:"required"`
	ExpenseDate   string `form:"expense_date" binding:"required"`
	Description   string `form:"description"`
	ManagerID     *int64 `form:"manager_id" binding:"omitempty,gt=0"`
	EmployeeID    int64  `form:"employee_id" binding:"omitempty,gt=0"`
}

type DecideRequest struct {
	Status   string `json:"status" binding:"required,oneof=approved rejected"`
	Comments string `json:"comments"`
}

type ListQuery struct {
	EmployeeID    int64  `form:"employee_id"`
	ExpenseTypeID int64  `form:"expense_type_id"`
	Status        string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	FromDate      string `form:"from_date"`
	ToDate        string `form:"to_date"`
	SortBy        string `form:"sort_by"`
	SortDir       string `form:"sort_dir"`
}

type ExpenseResponse struct {
	ID               int64  `json:"id"`
	ExpenseTypeID    int64  `json:"expense_type_id"`
	ExpenseType      string `json:"expense_type"`
	EmployeeID       int64  `json:"employee_id"`
	EmployeeName     string `json:"employee_name,omitempty"`
	Amount           string `json:"amount"`
	ExpenseDate      string `json:"expense_date"`
	Description      string `json:"description"`
	InvoicePath      string `json:"invoice_path,omitempty"`
	Status           string `json:"status"`
	ApproverComments string `json:"approver_comments"`
	ManagerID        *int64 `json:"manager_id,omitempty"`
	ApprovedBy       *int64 `json:"approved_by,omitempty"`
	ApprovedByName   string `json:"approved_by_name,omitempty"`
	ApprovedAt       string `json:"approved_at,omitempty"`
	GivenByID        *int64 `json:"given_by_id,omitempty"`
	InsertedAt       string `json:"inserted_at"`
}
