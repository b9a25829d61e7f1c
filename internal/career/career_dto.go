package career

// CareerRequest is bound from a multipart form with an optional "banner" part.
type CareerRequest struct {
	Title        string `form:"title" binding:"required,max=150"`
	Experience   string `form:"experience" binding:"max=50"`
	Salary       string `form:"salary" binding:"max=50"`
	Location     string `form:"location" binding:"max=100"`
	Description  string `form:"description"`
	RemoveBanner bool   `form:"remove_banner"`
}

type CareerResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Experience  string `json:"experience"`
	Salary      string `json:"salary"`
	Location    string `json:"location"`
	Description string `json:"description"`
	BannerPath  string `json:"bannerPath,omitempty"`
	CreatedAt   string `json:"createdAt"`
}
