package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// LoginRequest accepts a username OR an email in the username field.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=1"`
}

// RegisterRequest always creates a sales-role account; admin accounts are
// created through the users endpoint by an existing admin.
type RegisterRequest struct {
	Username string  `json:"username"  validate:"required,min=1,max=80"`
	Email    string  `json:"email"     validate:"required,email"`
	Password string  `json:"password"  validate:"required,min=6"`
	FullName string  `json:"full_name" validate:"required,min=2,max=200"`
	Phone    *string `json:"phone"`
}

type UpdateProfileRequest struct {
	FullName string  `json:"full_name" validate:"omitempty,min=2,max=200"`
	Email    string  `json:"email"     validate:"omitempty,email"`
	Phone    *string `json:"phone"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // seconds
	User        UserResponse `json:"user"`
}
