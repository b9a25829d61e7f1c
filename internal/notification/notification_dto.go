package notification

type NotificationResponse struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	ReferenceID int64  `json:"referenceId"`
	Message     string `json:"message"`
	Read        bool   `json:"read"`
	ReadAt      string `json:"readAt,omitempty"`
	CreatedAt   string `json:"createdAt"`
}
