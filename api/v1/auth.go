package v1

import (
	"errors"
	"net/http"

	"github.com/adsboard-api/domain"
	"github.com/adsboard-api/dto"
	"github.com/adsboard-api/services"
	"github.com/gin-gonic/gin"
)

// AuthController issues and refreshes tokens
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// RegisterRoutes registers token routes. limit guards the credential check.
func (ac *AuthController) RegisterRoutes(router *gin.RouterGroup, limit gin.HandlerFunc) {
	token := router.Group("/token")
	{
		token.POST("", limit, ac.Login)
		token.POST("/refresh", ac.Refresh)
	}
}

// Login handles user authentication
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := ac.authService.Login(c.Request.Context(), req)
	if errors.Is(err, domain.ErrUnauthenticated) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "No active account found with the given credentials",
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, pair)
}

// Refresh exchanges a refresh token for a new access token
func (ac *AuthController) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	access, err := ac.authService.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, access)
}
