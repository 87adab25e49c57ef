package dto

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in TokenClaims.TokenType
const (
	TokenTypeAccess        = "access"
	TokenTypeRefresh       = "refresh"
	TokenTypePasswordReset = "password_reset"
)

// TokenClaims represents our custom JWT claims
type TokenClaims struct {
	UserID    uint   `json:"userId"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"tokenType"`
	// Fingerprint ties a reset token to the password hash it was issued for
	Fingerprint string `json:"fp,omitempty"`
	jwt.RegisteredClaims
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents registration data
type RegisterRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     string  `json:"phone"`
	Image     *string `json:"image"`
}

// RefreshRequest represents a token refresh
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// TokenPairResponse represents the response after authentication
type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AccessTokenResponse represents the response after a refresh
type AccessTokenResponse struct {
	Access string `json:"access"`
}
