package auth

import "time"

type LoginRequest struct {
	// Identifier is an email address or a phone number.
	Identifier string `json:"identifier" binding:"required,max=255"`
	Password   string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

type AuthResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone_no"`
	Role      string `json:"role"`
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      AuthResponse `json:"user"`
}
