package wiki

// CategoryRequest is bound from a multipart form; the image travels as the
// "image" file part. RemoveImage clears the current image when no new one is sent.
type CategoryRequest struct {
	Name        string `form:"name" binding:"required,max=100"`
	RemoveImage bool   `form:"remove_image"`
}

type PageRequest struct {
	CategoryID  int64  `json:"category_id" binding:"required,gt=0"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
}

type PageQuery struct {
	CategoryID     int64 `form:"category_id"`
	IncludeDeleted bool  `form:"include_deleted"`
}

type ViewQuery struct {
	FromDate string `form:"from_date"`
	ToDate   string `form:"to_date"`
	WikiID   int64  `form:"wiki_id"`
}

type CategoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ImagePath string `json:"image_path,omitempty"`
}

type PageResponse struct {
	ID            int64  `json:"id"`
	CategoryID    int64  `json:"category_id"`
	CategoryName  string `json:"category_name,omitempty"`
	CategoryImage string `json:"category_image,omitempty"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Deleted       bool   `json:"deleted"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type ViewResponse struct {
	ID           int64  `json:"id"`
	WikiID       int64  `json:"wiki_id"`
	Title        string `json:"title"`
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	ViewedAt     string `json:"viewed_at"`
}

type ViewCountResponse struct {
	WikiID  int64  `json:"wiki_id"`
	Title   string `json:"title"`
	Deleted bool   `json:"deleted"`
	Views   int64  `json:"views"`
}
