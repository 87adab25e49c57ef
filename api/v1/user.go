package v1

import (
	"net/http"

	"github.com/adsboard-api/authz"
	"github.com/adsboard-api/domain"
	"github.com/adsboard-api/dto"
	"github.com/adsboard-api/middleware"
	"github.com/adsboard-api/services"
	"github.com/gin-gonic/gin"
)

// UserController handles registration, profiles and password flows
type UserController struct {
	authService  *services.AuthService
	userService  *services.UserService
	resetService *services.PasswordResetService
}

// NewUserController creates a new user controller
func NewUserController(authService *services.AuthService, userService *services.UserService, resetService *services.PasswordResetService) *UserController {
	return &UserController{
		authService:  authService,
		userService:  userService,
		resetService: resetService,
	}
}

// RegisterRoutes registers user routes. limit guards the unauthenticated
// password reset endpoints.
func (uc *UserController) RegisterRoutes(router *gin.RouterGroup, limit gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.POST("", uc.Register)
		users.GET("", uc.ListUsers)
		users.GET("/me", uc.GetMe)
		users.PATCH("/me", uc.UpdateMe)
		users.POST("/set_password", uc.SetPassword)
		users.POST("/reset_password", limit, uc.ResetPassword)
		users.POST("/reset_password_confirm", limit, uc.ResetPasswordConfirm)
		users.GET("/:id", uc.GetUser)
		users.DELETE("/:id", uc.DeleteUser)
		users.PATCH("/:id/role", uc.SetRole)
	}
}

// Register handles user registration
func (uc *UserController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusCreated, dto.NewUserResponse(user))
}

// ListUsers returns users ordered by email
func (uc *UserController) ListUsers(c *gin.Context) {
	page, err := uc.userService.List(c.Request.Context(), middleware.Principal(c), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, page)
}

// GetMe returns the currently authenticated user's profile
func (uc *UserController) GetMe(c *gin.Context) {
	user, err := uc.userService.Me(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, dto.NewUserResponse(user))
}

// UpdateMe applies a partial update to the caller's profile
func (uc *UserController) UpdateMe(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.userService.Update(c.Request.Context(), p, p.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, dto.NewUserResponse(user))
}

// GetUser returns a user by ID
func (uc *UserController) GetUser(c *gin.Context) {
	user, err := uc.userService.Get(c.Request.Context(), middleware.Principal(c), pathID(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, dto.NewUserResponse(user))
}

// DeleteUser removes a user and everything they authored (admin only)
func (uc *UserController) DeleteUser(c *gin.Context) {
	if err := uc.userService.Delete(c.Request.Context(), middleware.Principal(c), pathID(c, "id")); err != nil {
		respondError(c, err)
		return
	}
	respondNoContent(c)
}

// SetRole changes a user's role (admin only)
func (uc *UserController) SetRole(c *gin.Context) {
	p := middleware.Principal(c)
	if err := uc.userService.Authorize(p, authz.ActionSetRole); err != nil {
		respondError(c, err)
		return
	}

	var req dto.SetRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.userService.SetRole(c.Request.Context(), p, pathID(c, "id"), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, dto.NewUserResponse(user))
}

// SetPassword changes the caller's password
func (uc *UserController) SetPassword(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.SetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := uc.authService.SetPassword(c.Request.Context(), p, req); err != nil {
		respondError(c, err)
		return
	}
	respondNoContent(c)
}

// ResetPassword sends a password reset link
func (uc *UserController) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := uc.resetService.Request(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	respondNoContent(c)
}

// ResetPasswordConfirm sets a new password from a reset link
func (uc *UserController) ResetPasswordConfirm(c *gin.Context) {
	var req dto.ResetPasswordConfirmRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := uc.resetService.Confirm(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	respondNoContent(c)
}

// requirePrincipal answers 401 for anonymous callers
func requirePrincipal(c *gin.Context) (*authz.Principal, bool) {
	p := middleware.Principal(c)
	if p == nil {
		respondError(c, domain.ErrUnauthenticated)
		return nil, false
	}
	return p, true
}
