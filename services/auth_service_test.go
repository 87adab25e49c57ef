package services

import (
	"context"
	"strings"
	"testing"

	"github.com/adsboard-api/authz"
	"github.com/adsboard-api/domain"
	"github.com/adsboard-api/dto"
	"github.com/adsboard-api/models"
)

func alice() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:     "alice@x.com",
		Password:  testPassword,
		FirstName: "Alice",
		LastName:  "Smith",
		Phone:     "+7(912)345-67-89",
	}
}

func TestAuthService_Register(t *testing.T) {
	f := newFixture(t)

	user, err := f.auth.Register(context.Background(), alice())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("expected role user, got %q", user.Role)
	}
	if user.Password == testPassword || !checkPassword(user.Password, testPassword) {
		t.Error("expected password to be stored as a bcrypt hash")
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		modify func(*dto.RegisterRequest)
		fields []string
	}{
		{"phone without format", func(r *dto.RegisterRequest) { r.Phone = "89213456789" }, []string{"phone"}},
		{"password without digit", func(r *dto.RegisterRequest) { r.Password = "qazwsxedcrfv" }, []string{"password"}},
		{"password without letter", func(r *dto.RegisterRequest) { r.Password = "1234567890" }, []string{"password"}},
		{"short password", func(r *dto.RegisterRequest) { r.Password = "abc123" }, []string{"password"}},
		{"blank first name", func(r *dto.RegisterRequest) { r.FirstName = "   " }, []string{"firstName"}},
		{"long last name", func(r *dto.RegisterRequest) { r.LastName = strings.Repeat("я", 65) }, []string{"lastName"}},
		{"bad email", func(r *dto.RegisterRequest) { r.Email = "not-an-email" }, []string{"email"}},
		{"long local part", func(r *dto.RegisterRequest) { r.Email = strings.Repeat("a", 65) + "@x.com" }, []string{"email"}},
		{"several fields at once", func(r *dto.RegisterRequest) {
			r.Phone = "89213456789"
			r.Password = "qazwsxedcrfv"
			r.LastName = ""
		}, []string{"phone", "password", "lastName"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := alice()
			tt.modify(&req)
			_, err := f.auth.Register(context.Background(), req)
			assertFields(t, err, tt.fields...)
		})
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	if _, err := f.auth.Register(context.Background(), alice()); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := f.auth.Register(context.Background(), alice())
	assertFields(t, err, "email")

	// The taken email is reported alongside every other invalid field
	req := alice()
	req.Phone = "89213456789"
	req.Password = "short"
	_, err = f.auth.Register(context.Background(), req)
	assertFields(t, err, "email", "phone", "password")
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registered, err := f.auth.Register(ctx, alice())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err = f.auth.Login(ctx, dto.LoginRequest{Email: "alice@x.com", Password: "wrong-pass1"})
	assertIs(t, err, domain.ErrUnauthenticated)
	_, err = f.auth.Login(ctx, dto.LoginRequest{Email: "nobody@x.com", Password: testPassword})
	assertIs(t, err, domain.ErrUnauthenticated)

	pair, err := f.auth.Login(ctx, dto.LoginRequest{Email: "alice@x.com", Password: testPassword})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	user, err := f.auth.Authenticate(ctx, pair.Access)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %d, got %d", registered.ID, user.ID)
	}

	// A refresh token is not an access token
	_, err = f.auth.Authenticate(ctx, pair.Refresh)
	assertIs(t, err, domain.ErrUnauthenticated)

	refreshed, err := f.auth.Refresh(ctx, pair.Refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if _, err := f.auth.Authenticate(ctx, refreshed.Access); err != nil {
		t.Errorf("refreshed access token rejected: %v", err)
	}
	_, err = f.auth.Refresh(ctx, pair.Access)
	assertIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_AuthenticateReadsCurrentRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registered, err := f.auth.Register(ctx, alice())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := f.tokens.IssuePair(registered)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := f.users.UpdateRole(ctx, registered.ID, models.RoleAdmin); err != nil {
		t.Fatalf("promote: %v", err)
	}
	user, err := f.auth.Authenticate(ctx, pair.Access)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("expected promoted role, got %q", user.Role)
	}

	if err := f.users.Delete(ctx, registered.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = f.auth.Authenticate(ctx, pair.Access)
	assertIs(t, err, domain.ErrUnauthenticated)
}

func TestAuthService_SetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registered, err := f.auth.Register(ctx, alice())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	p := &authz.Principal{ID: registered.ID, Role: registered.Role}

	assertIs(t, f.auth.SetPassword(ctx, nil, dto.SetPasswordRequest{}), domain.ErrUnauthenticated)

	err = f.auth.SetPassword(ctx, p, dto.SetPasswordRequest{CurrentPassword: "wrong", NewPassword: "short"})
	assertFields(t, err, "currentPassword", "newPassword")

	if err := f.auth.SetPassword(ctx, p, dto.SetPasswordRequest{CurrentPassword: testPassword, NewPassword: "NewPass99"}); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if _, err := f.auth.Login(ctx, dto.LoginRequest{Email: "alice@x.com", Password: "NewPass99"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	_, err = f.auth.Login(ctx, dto.LoginRequest{Email: "alice@x.com", Password: testPassword})
	assertIs(t, err, domain.ErrUnauthenticated)
}
