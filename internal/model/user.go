package model

import (
	"time"

	"github.com/google/uuid"
)

// Role and status values for User.
const (
	RoleAdmin = "admin"
	RoleSales = "sales"

	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User stores system accounts with role-based access.
// Role: "admin" (unrestricted) | "sales" (own orders only).
// Accounts are never hard-deleted — Status flips to "inactive" instead.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	FullName     string    `gorm:"not null"`
	Phone        *string
	Role         string `gorm:"type:varchar(20);not null;default:'sales'"`
	Status       string `gorm:"type:varchar(20);not null;default:'active'"`
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u *User) IsSales() bool { return u.Role == RoleSales }

func (u *User) Active() bool { return u.Status == StatusActive }
