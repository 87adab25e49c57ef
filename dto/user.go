package dto

import (
	"github.com/adsboard-api/models"
)

// UserResponse represents a user without credentials
type UserResponse struct {
	ID        uint        `json:"id"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Phone     string      `json:"phone"`
	Role      models.Role `json:"role"`
	Image     *string     `json:"image"`
}

// NewUserResponse maps a user model
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Role:      u.Role,
		Image:     u.Image,
	}
}

// UpdateUserRequest represents a partial profile update. Email and role
// are not editable here.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Image     *string `json:"image"`
}

// SetRoleRequest represents an administrative role change
type SetRoleRequest struct {
	Role models.Role `json:"role"`
}

// SetPasswordRequest represents a password change by its owner
type SetPasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ResetPasswordRequest starts the password reset flow
type ResetPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordConfirmRequest finishes the password reset flow
type ResetPasswordConfirmRequest struct {
	UID           string `json:"uid"`
	Token         string `json:"token"`
	NewPassword   string `json:"newPassword"`
	ReNewPassword string `json:"reNewPassword"`
}
