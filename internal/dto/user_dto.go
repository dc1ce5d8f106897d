package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateUserRequest struct {
	Username string  `json:"username"  validate:"required,min=1,max=80"`
	Email    string  `json:"email"     validate:"required,email"`
	Password string  `json:"password"  validate:"required,min=6"`
	FullName string  `json:"full_name" validate:"required,min=2,max=200"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role"      validate:"omitempty,oneof=admin sales"`
}

// UpdateUserRequest: role and status changes are admin-only and ignored for
// a sales caller editing their own profile.
type UpdateUserRequest struct {
	FullName string  `json:"full_name" validate:"omitempty,min=2,max=200"`
	Email    string  `json:"email"     validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role"      validate:"omitempty,oneof=admin sales"`
	Status   string  `json:"status"    validate:"omitempty,oneof=active inactive"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	Phone     *string `json:"phone"`
	Role      string  `json:"role"`
	Status    string  `json:"status"`
	LastLogin *string `json:"last_login"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type UserStatsResponse struct {
	TotalUsers          int64 `json:"total_users"`
	AdminUsers          int64 `json:"admin_users"`
	SalesUsers          int64 `json:"sales_users"`
	ActiveUsers         int64 `json:"active_users"`
	InactiveUsers       int64 `json:"inactive_users"`
	RecentRegistrations int64 `json:"recent_registrations"`
}
