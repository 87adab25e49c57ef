package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/adsboard-api/domain"
	"github.com/adsboard-api/dto"
	"github.com/adsboard-api/models"
	"github.com/adsboard-api/notifications"
	"github.com/adsboard-api/repositories"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PasswordResetConfirmPath is the frontend route that finishes a reset
const PasswordResetConfirmPath = "password/reset/confirm/%s/%s/"

// PasswordResetService runs the two step password reset flow
type PasswordResetService struct {
	users       repositories.UserRepository
	tokens      *TokenService
	notifier    notifications.Notifier
	frontendURL string
}

// NewPasswordResetService creates a new password reset service.
// frontendURL is the base the confirm link is built on, e.g. http://localhost:3000
func NewPasswordResetService(users repositories.UserRepository, tokens *TokenService, notifier notifications.Notifier, frontendURL string) *PasswordResetService {
	return &PasswordResetService{
		users:       users,
		tokens:      tokens,
		notifier:    notifier,
		frontendURL: strings.TrimSuffix(frontendURL, "/"),
	}
}

// EncodeUID encodes a user ID for use in a reset link
func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

// DecodeUID reverses EncodeUID
func DecodeUID(uid string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(uid, "="))
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// Request sends a reset link to the user with the given email. An unknown
// email is a validation error on the email field.
func (s *PasswordResetService) Request(ctx context.Context, req dto.ResetPasswordRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	err := validation.ValidateStruct(&req, validation.Field(&req.Email, emailRules...))
	if err := domain.FromValidation(err); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewValidationError("email", "User with given email does not exist.")
	}
	if err != nil {
		return err
	}

	token, err := s.tokens.IssuePasswordReset(user)
	if err != nil {
		return err
	}
	uid := EncodeUID(user.ID)

	msg := notifications.PasswordReset{
		UserID: user.ID,
		Email:  user.Email,
		UID:    uid,
		Token:  token,
		URL:    s.frontendURL + "/" + fmt.Sprintf(PasswordResetConfirmPath, uid, token),
	}
	if err := s.notifier.PasswordReset(ctx, msg); err != nil {
		return fmt.Errorf("send password reset: %w", err)
	}
	log.Printf("🔑 Password reset requested for user %d", user.ID)
	return nil
}

// Confirm sets a new password using a uid and token from a reset link.
// All problems with the request are reported together.
func (s *PasswordResetService) Confirm(ctx context.Context, req dto.ResetPasswordConfirmRequest) error {
	verr := &domain.ValidationError{}
	verr.Merge(validation.ValidateStruct(&req,
		validation.Field(&req.UID, validation.Required),
		validation.Field(&req.Token, validation.Required),
		validation.Field(&req.NewPassword, passwordRules...),
		validation.Field(&req.ReNewPassword, validation.Required),
	))

	if req.ReNewPassword != "" && req.NewPassword != req.ReNewPassword {
		verr.Add("reNewPassword", "The two password fields didn't match.")
	}

	var user *models.User
	if req.UID != "" {
		u, err := s.userFromUID(ctx, req.UID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if u == nil {
			verr.Add("uid", "Invalid user id or user doesn't exist.")
		}
		user = u
	}
	if user != nil && req.Token != "" && !s.tokens.CheckPasswordReset(req.Token, user) {
		verr.Add("token", "Invalid token for given user.")
	}

	if err := verr.OrNil(); err != nil {
		return err
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return err
	}
	log.Printf("🔑 Password reset completed for user %d", user.ID)
	return nil
}

// userFromUID returns nil and ErrNotFound for malformed or unknown uids
func (s *PasswordResetService) userFromUID(ctx context.Context, uid string) (*models.User, error) {
	id, err := DecodeUID(uid)
	if err != nil {
		return nil, fmt.Errorf("uid %q: %w", uid, domain.ErrNotFound)
	}
	return s.users.FindByID(ctx, id)
}
