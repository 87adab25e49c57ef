package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adsboard-api/authz"
	"github.com/adsboard-api/domain"
	"github.com/adsboard-api/dto"
	"github.com/adsboard-api/models"
	"github.com/adsboard-api/repositories"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"
)

const errEmailTaken = "user with this email already exists"

var errInvalidCredentials = fmt.Errorf("%w: invalid email or password", domain.ErrUnauthenticated)

// HashPassword hashes a plain text password with bcrypt
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AuthService handles registration, login and token refresh
type AuthService struct {
	users  repositories.UserRepository
	tokens *TokenService
}

// NewAuthService creates a new auth service instance
func NewAuthService(users repositories.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a new user account with the user role. Every invalid
// field is reported in one ValidationError.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	verr := &domain.ValidationError{}
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Email, emailRules...),
		validation.Field(&req.Password, passwordRules...),
		validation.Field(&req.FirstName, nameRules...),
		validation.Field(&req.LastName, nameRules...),
		validation.Field(&req.Phone, phoneRules...),
	)
	if err := domain.FromValidation(err); err != nil {
		if !errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		verr.Merge(err)
	}

	// A taken email is reported together with the other field errors
	if _, failed := verr.Fields["email"]; !failed {
		_, err := s.users.FindByEmail(ctx, req.Email)
		switch {
		case err == nil:
			verr.Add("email", errEmailTaken)
		case !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	// Hash password
	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Image:     req.Image,
		Role:      models.RoleUser,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPairResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !checkPassword(user.Password, req.Password) {
		return nil, errInvalidCredentials
	}
	return s.tokens.IssuePair(user)
}

// Refresh exchanges a refresh token for a new access token. The user must
// still exist.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AccessTokenResponse, error) {
	claims, err := s.tokens.Validate(refreshToken, dto.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	user, err := s.loadTokenUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	access, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, err
	}
	return &dto.AccessTokenResponse{Access: access}, nil
}

// Authenticate resolves an access token to the user it was issued for,
// reading the current role from storage
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := s.tokens.Validate(accessToken, dto.TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return s.loadTokenUser(ctx, claims.UserID)
}

func (s *AuthService) loadTokenUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: user no longer exists", domain.ErrUnauthenticated)
	}
	return user, err
}

// SetPassword changes the caller's password after checking the current one
func (s *AuthService) SetPassword(ctx context.Context, p *authz.Principal, req dto.SetPasswordRequest) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, p.ID)
	if err != nil {
		return err
	}

	verr := &domain.ValidationError{}
	verr.Merge(validation.ValidateStruct(&req,
		validation.Field(&req.CurrentPassword, validation.Required),
		validation.Field(&req.NewPassword, passwordRules...),
	))
	if _, failed := verr.Fields["currentPassword"]; !failed && !checkPassword(user.Password, req.CurrentPassword) {
		verr.Add("currentPassword", "Invalid password.")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hashed)
}
