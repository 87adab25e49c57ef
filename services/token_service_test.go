package services

import (
	"testing"
	"time"

	"github.com/adsboard-api/domain"
	"github.com/adsboard-api/dto"
	"github.com/adsboard-api/models"
)

func newTestTokens(t *testing.T, now *time.Time) *TokenService {
	t.Helper()
	s, err := NewTokenService(TokenConfig{
		Secret:           "secret",
		AccessTTL:        time.Hour,
		RefreshTTL:       24 * time.Hour,
		PasswordResetTTL: 72 * time.Hour,
	})
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	s.now = func() time.Time { return *now }
	return s
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	if _, err := NewTokenService(TokenConfig{}); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestTokenService_AccessTokenExpires(t *testing.T) {
	now := time.Now()
	s := newTestTokens(t, &now)
	user := &models.User{ID: 5, Email: "a@x.com", Role: models.RoleUser}

	token, err := s.IssueAccess(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := s.Validate(token, dto.TokenTypeAccess)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 5 || claims.Subject != "5" || claims.Role != "user" {
		t.Errorf("unexpected claims %+v", claims)
	}

	now = now.Add(2 * time.Hour)
	_, err = s.Validate(token, dto.TokenTypeAccess)
	assertIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	now := time.Now()
	s := newTestTokens(t, &now)
	other, err := NewTokenService(TokenConfig{Secret: "other", AccessTTL: time.Hour})
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}

	token, err := other.IssueAccess(&models.User{ID: 1})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, err = s.Validate(token, dto.TokenTypeAccess)
	assertIs(t, err, domain.ErrUnauthenticated)

	_, err = s.Validate("not.a.token", dto.TokenTypeAccess)
	assertIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenService_PasswordResetToken(t *testing.T) {
	now := time.Now()
	s := newTestTokens(t, &now)
	user := &models.User{ID: 9, Password: "hash-1"}

	token, err := s.IssuePasswordReset(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if !s.CheckPasswordReset(token, user) {
		t.Fatal("expected fresh reset token to be accepted")
	}

	t.Run("other user", func(t *testing.T) {
		if s.CheckPasswordReset(token, &models.User{ID: 10, Password: "hash-1"}) {
			t.Error("token accepted for another user")
		}
	})

	t.Run("password changed", func(t *testing.T) {
		if s.CheckPasswordReset(token, &models.User{ID: 9, Password: "hash-2"}) {
			t.Error("token accepted after password change")
		}
	})

	t.Run("not usable as access token", func(t *testing.T) {
		_, err := s.Validate(token, dto.TokenTypeAccess)
		assertIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("expired", func(t *testing.T) {
		now = now.Add(73 * time.Hour)
		if s.CheckPasswordReset(token, user) {
			t.Error("expired token accepted")
		}
	})
}
