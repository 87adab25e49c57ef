package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/adsboard-api/authz"
	"github.com/adsboard-api/database/dbtest"
	"github.com/adsboard-api/models"
	"github.com/adsboard-api/notifications"
	"github.com/adsboard-api/repositories"
	"github.com/adsboard-api/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopNotifier struct {
	last notifications.PasswordReset
}

func (n *nopNotifier) PasswordReset(_ context.Context, msg notifications.PasswordReset) error {
	n.last = msg
	return nil
}

type testAPI struct {
	t        *testing.T
	db       *gorm.DB
	router   *gin.Engine
	users    repositories.UserRepository
	notifier *nopNotifier
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	db := dbtest.New(t)

	tokens, err := services.NewTokenService(services.TokenConfig{
		Secret:           "test-secret",
		AccessTTL:        time.Hour,
		RefreshTTL:       24 * time.Hour,
		PasswordResetTTL: 72 * time.Hour,
	})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	adRepo := repositories.NewAdRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	engine := authz.NewEngine(nil)
	notifier := &nopNotifier{}
	auth := services.NewAuthService(userRepo, tokens)

	router := NewRouter(Dependencies{
		Auth:        auth,
		Users:       services.NewUserService(userRepo, engine),
		Ads:         services.NewAdService(adRepo, engine),
		Reviews:     services.NewReviewService(reviewRepo, adRepo, engine),
		Reset:       services.NewPasswordResetService(userRepo, tokens, notifier, "http://localhost:3000"),
		CORSOrigins: []string{"http://localhost:3000"},
	})

	return &testAPI{t: t, db: db, router: router, users: userRepo, notifier: notifier}
}

type response struct {
	Code int
	Body map[string]interface{}
	Raw  string
}

// data returns the "data" object of a success envelope
func (r response) data() map[string]interface{} {
	d, _ := r.Body["data"].(map[string]interface{})
	return d
}

// fieldErrors returns the "errors" object of a validation failure
func (r response) fieldErrors() map[string]interface{} {
	e, _ := r.Body["errors"].(map[string]interface{})
	return e
}

func (a *testAPI) do(method, path, token string, body interface{}) response {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	return a.doRaw(method, path, token, buf.String())
}

// doRaw sends body as is, so tests can send empty or malformed JSON
func (a *testAPI) doRaw(method, path, token, body string) response {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	resp := response{Code: w.Code, Raw: w.Body.String()}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp.Body); err != nil {
			a.t.Fatalf("decode %s %s response %q: %v", method, path, w.Body.String(), err)
		}
	}
	return resp
}

func (a *testAPI) expect(resp response, code int) response {
	a.t.Helper()
	if resp.Code != code {
		a.t.Fatalf("expected status %d, got %d: %s", code, resp.Code, resp.Raw)
	}
	return resp
}

// register creates a user through the API and returns its access token and ID
func (a *testAPI) register(email string) (string, uint) {
	a.t.Helper()
	resp := a.expect(a.do(http.MethodPost, "/api/users", "", map[string]interface{}{
		"email":     email,
		"password":  "Qwerty12",
		"firstName": "Test",
		"lastName":  "User",
		"phone":     "+7(912)345-67-89",
	}), http.StatusCreated)
	id := uint(resp.data()["id"].(float64))
	return a.login(email, "Qwerty12"), id
}

func (a *testAPI) login(email, password string) string {
	a.t.Helper()
	resp := a.expect(a.do(http.MethodPost, "/api/token", "", map[string]string{
		"email":    email,
		"password": password,
	}), http.StatusOK)
	return resp.data()["access"].(string)
}

// admin registers a user and promotes it directly in storage
func (a *testAPI) admin(email string) string {
	a.t.Helper()
	token, id := a.register(email)
	if err := a.users.UpdateRole(context.Background(), id, models.RoleAdmin); err != nil {
		a.t.Fatalf("promote: %v", err)
	}
	return token
}

func (a *testAPI) createAd(token, title string) uint {
	a.t.Helper()
	resp := a.expect(a.do(http.MethodPost, "/api/ads", token, map[string]interface{}{
		"title":       title,
		"price":       50000,
		"description": "Good " + title,
	}), http.StatusCreated)
	return uint(resp.data()["id"].(float64))
}
