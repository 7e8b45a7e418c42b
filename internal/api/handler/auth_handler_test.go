package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub-client/internal/core/domain"
)

// fakeSession satisfies ports.Session with scripted behaviour.
type fakeSession struct {
	user        *domain.User
	token       string
	loginErr    error
	loginResult *domain.LoginResult
	loginCalls  int
	logoutCalls int
	refreshErr  error
}

func (f *fakeSession) Login(_ context.Context, _ domain.Credentials) error {
	f.loginCalls++
	if f.loginErr != nil {
		return f.loginErr
	}
	if f.loginResult != nil {
		f.token = f.loginResult.Token
		f.user = f.loginResult.User
	}
	return nil
}

func (f *fakeSession) Logout(_ context.Context) error {
	f.logoutCalls++
	f.token = ""
	f.user = nil
	return nil
}

func (f *fakeSession) LoadFromStorage(_ context.Context) error { return nil }

func (f *fakeSession) RefreshUserInfo(_ context.Context) error { return f.refreshErr }

func (f *fakeSession) CurrentUser() *domain.User { return f.user }
func (f *fakeSession) Token() string             { return f.token }
func (f *fakeSession) IsAuthenticated() bool     { return f.token != "" && f.user != nil }
func (f *fakeSession) IsLoading() bool           { return false }

func newAuthContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	session := &fakeSession{
		loginResult: &domain.LoginResult{
			Token: "mock-jwt-token-x",
			User:  &domain.User{ID: 2, Username: "teacher", RoleID: domain.RoleTeacher},
		},
	}
	h := NewAuthHandler(session, nil)

	c, rec := newAuthContext(http.MethodPost, "/api/auth/login", `{"username":"teacher","password":"password123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success envelope, got %v", resp)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok || data["token"] != "mock-jwt-token-x" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	session := &fakeSession{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(session, nil)

	c, _ := newAuthContext(http.MethodPost, "/api/auth/login", `{"username":"admin","password":"wrong"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	session := &fakeSession{}
	h := NewAuthHandler(session, nil)

	c, _ := newAuthContext(http.MethodPost, "/api/auth/login", `{"username":"admin"}`)
	err := h.Login(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if session.loginCalls != 0 {
		t.Fatalf("session must not be touched on invalid payload")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	session := &fakeSession{
		token: "tok",
		user:  &domain.User{ID: 1, Username: "admin", RoleID: domain.RoleAdmin},
	}
	h := NewAuthHandler(session, nil)

	c, rec := newAuthContext(http.MethodPost, "/api/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if session.logoutCalls != 1 {
		t.Fatalf("expected 1 logout call, got %d", session.logoutCalls)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&fakeSession{}, nil)

	c, _ := newAuthContext(http.MethodGet, "/api/auth/me", "")
	if err := h.Me(c); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestAuthHandler_Me_Authenticated(t *testing.T) {
	session := &fakeSession{
		token: "tok",
		user:  &domain.User{ID: 3, Username: "student", RoleID: domain.RoleStudent},
	}
	h := NewAuthHandler(session, nil)

	c, rec := newAuthContext(http.MethodGet, "/api/auth/me", "")
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok || data["username"] != "student" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Refresh_Invalidated(t *testing.T) {
	session := &fakeSession{refreshErr: domain.ErrAuthorizationExpired}
	h := NewAuthHandler(session, nil)

	c, _ := newAuthContext(http.MethodPost, "/api/auth/refresh", "")
	if err := h.Refresh(c); !errors.Is(err, domain.ErrAuthorizationExpired) {
		t.Fatalf("expected ErrAuthorizationExpired, got %v", err)
	}
}
