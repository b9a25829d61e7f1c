package asset

type AssetRequest struct {
	ItemName    string `json:"item_name" binding:"required,max=150"`
	Model       string `json:"model" binding:"max=150"`
	Price       string `json:"price" binding:"required"`
	Description string `json:"description"`
}

type ListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=Available Allocated"`
	Search string `form:"search"`
}

type AllocateRequest struct {
	AssetID     int64  `json:"asset_id" binding:"required,gt=0"`
	EmployeeID  int64  `json:"employee_id" binding:"required,gt=0"`
	Description string `json:"description"`
}

type AllocationQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=Allocated Returned"`
}

type ReportIssueRequest struct {
	Issue string `json:"issue" binding:"required"`
}

type ResolveIssueRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}

type AssetResponse struct {
	ID          int64  `json:"id"`
	AssetTag    string `json:"asset_tag"`
	ItemName    string `json:"item_name"`
	Model       string `json:"model"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type IssueResponse struct {
	ID           int64  `json:"id"`
	AllocationID int64  `json:"allocation_id"`
	Issue        string `json:"issue"`
	Status       string `json:"status"`
	ReportedAt   string `json:"reported_at"`
	Resolution   string `json:"resolution,omitempty"`
	ResolvedAt   string `json:"resolved_at,omitempty"`
	ResolvedBy   *int64 `json:"resolved_by,omitempty"`
}

type AllocationResponse struct {
	ID           int64           `json:"id"`
	AssetID      int64           `json:"asset_id"`
	AssetTag     string          `json:"asset_tag"`
	ItemName     string          `json:"item_name"`
	Model        string          `json:"model"`
	EmployeeID   int64           `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	AllocateDate string          `json:"allocate_date"`
	ReturnedDate string          `json:"returned_date,omitempty"`
	Status       string          `json:"status"`
	AllocatedBy  *int64          `json:"allocated_by,omitempty"`
	Description  string          `json:"description"`
	OpenIssues   []IssueResponse `json:"open_issues,omitempty"`
}

// MyAssetResponse is an active allocation with its issues split by status.
type MyAssetResponse struct {
	AllocationResponse
	Issues struct {
		Open     []IssueResponse `json:"open"`
		Resolved []IssueResponse `json:"resolved"`
	} `json:"issues"`
}
