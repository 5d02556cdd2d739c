package models

import "time"

// Role values recognised by the platform.
const (
	RoleStudent  = "student"
	RoleEducator = "educator"
	RoleAdmin    = "admin"
)

// User represents an account on the platform. Password is empty for accounts
// created through Google sign-in only.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255" json:"-"`
	Role      string    `gorm:"size:32;not null;default:student" json:"role"`
	PhotoURL  string    `gorm:"size:512" json:"photo_url"`
	GoogleID  string    `gorm:"size:255;index" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsValidRole reports whether the given role is one the platform understands.
func IsValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleEducator, RoleAdmin:
		return true
	}
	return false
}
