package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/adsboard-api/authz"
	"github.com/adsboard-api/database/dbtest"
	"github.com/adsboard-api/domain"
	"github.com/adsboard-api/models"
	"github.com/adsboard-api/notifications"
	"github.com/adsboard-api/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "Qwerty12"

var (
	hashOnce   sync.Once
	cachedHash string
)

// testHash is a cheap bcrypt hash of testPassword
func testHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
		if err != nil {
			panic(err)
		}
		cachedHash = string(h)
	})
	return cachedHash
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notifications.PasswordReset
	err  error
}

func (n *recordingNotifier) PasswordReset(_ context.Context, msg notifications.PasswordReset) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return n.err
}

type fixture struct {
	db       *gorm.DB
	users    repositories.UserRepository
	ads      repositories.AdRepository
	reviews  repositories.ReviewRepository
	tokens   *TokenService
	notifier *recordingNotifier

	auth      *AuthService
	reset     *PasswordResetService
	userSvc   *UserService
	adSvc     *AdService
	reviewSvc *ReviewService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)

	tokens, err := NewTokenService(TokenConfig{
		Secret:           "test-secret",
		AccessTTL:        time.Hour,
		RefreshTTL:       24 * time.Hour,
		PasswordResetTTL: 72 * time.Hour,
	})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	f := &fixture{
		db:       db,
		users:    repositories.NewUserRepository(db),
		ads:      repositories.NewAdRepository(db),
		reviews:  repositories.NewReviewRepository(db),
		tokens:   tokens,
		notifier: &recordingNotifier{},
	}
	engine := authz.NewEngine(nil)
	f.auth = NewAuthService(f.users, tokens)
	f.reset = NewPasswordResetService(f.users, tokens, f.notifier, "http://localhost:3000")
	f.userSvc = NewUserService(f.users, engine)
	f.adSvc = NewAdService(f.ads, engine)
	f.reviewSvc = NewReviewService(f.reviews, f.ads, engine)
	return f
}

// user stores a user and returns its principal
func (f *fixture) user(t *testing.T, email string, role models.Role) *authz.Principal {
	t.Helper()
	u := &models.User{
		Email:     email,
		Password:  testHash(t),
		FirstName: "First",
		LastName:  "Last",
		Phone:     "+7(912)345-67-89",
		Role:      role,
	}
	if err := f.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return &authz.Principal{ID: u.ID, Role: u.Role}
}

func ptr[T any](v T) *T { return &v }

func assertIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected %v, got %v", target, err)
	}
}

// assertFields checks that err is a validation error on exactly the given fields
func assertFields(t *testing.T, err error, fields ...string) {
	t.Helper()
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error on %v, got %v", fields, err)
	}
	if len(verr.Fields) != len(fields) {
		t.Errorf("expected errors on %v, got %v", fields, verr.Fields)
	}
	for _, f := range fields {
		if _, ok := verr.Fields[f]; !ok {
			t.Errorf("expected error on %q, got %v", f, verr.Fields)
		}
	}
}
