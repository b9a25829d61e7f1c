package policy

// UploadPolicyRequest is bound from a multipart form; the PDF travels in the
// "file" part.
type UploadPolicyRequest struct {
	Name string `form:"name" binding:"required,max=150"`
}

type PolicyResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	OriginalName string `json:"originalName"`
	FileSize     int64  `json:"fileSize"`
	UploadedBy   *int64 `json:"uploadedBy,omitempty"`
	UploadedAt   string `json:"uploadedAt"`
}
