package models

import (
	"time"
)

// Role represents user role types
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered user of the board
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(254);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // Password is not exposed in JSON
	FirstName string    `json:"firstName" gorm:"type:varchar(64);not null"`
	LastName  string    `json:"lastName" gorm:"type:varchar(64);not null"`
	Phone     string    `json:"phone" gorm:"type:varchar(16);not null"`
	Role      Role      `json:"role" gorm:"type:varchar(5);not null;default:'user'"`
	Image     *string   `json:"image" gorm:"default:null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for User model
func (User) TableName() string {
	return "users"
}

// OwnerID returns the user's own ID; a user owns their profile
func (u *User) OwnerID() uint {
	return u.ID
}
