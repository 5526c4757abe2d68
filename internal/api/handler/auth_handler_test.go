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

	"github.com/newsdesk/newsroom-api/internal/core/domain"
	"github.com/newsdesk/newsroom-api/internal/core/ports"
)

type stubAuthService struct {
	registered  *domain.User
	registerErr error
	token       string
	loginUser   *domain.User
	loginErr    error

	gotUsername string
	gotEmail    string
	gotRole     domain.Role
}

func (s *stubAuthService) Register(_ context.Context, username, email, _ string, role domain.Role) (*domain.User, error) {
	s.gotUsername = username
	s.gotEmail = email
	s.gotRole = role
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.registered, nil
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (string, *domain.User, error) {
	s.gotEmail = email
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.token, s.loginUser, nil
}

func (s *stubAuthService) Verify(_ string) (*ports.TokenClaims, error) {
	return nil, domain.ErrInvalidToken
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{registered: &domain.User{ID: "user-1", Username: "alice", Role: domain.RoleMember}}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"correct-horse"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if svc.gotUsername != "alice" || svc.gotEmail != "alice@example.com" || svc.gotRole != "" {
		t.Fatalf("service received wrong input: %q %q %q", svc.gotUsername, svc.gotEmail, svc.gotRole)
	}

	var resp struct {
		User *domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.User == nil || resp.User.ID != "user-1" {
		t.Fatalf("response missing created user: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	cases := map[string]string{
		"short password": `{"username":"alice","email":"alice@example.com","password":"short"}`,
		"bad email":      `{"username":"alice","email":"nope","password":"correct-horse"}`,
		"bad role":       `{"username":"alice","email":"alice@example.com","password":"correct-horse","role":"root"}`,
		"short username": `{"username":"al","email":"alice@example.com","password":"correct-horse"}`,
	}

	for name, body := range cases {
		c, _ := newJSONContext(http.MethodPost, "/auth/register", body)
		err := h.Register(c)

		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected HTTP 400, got %v", name, err)
		}
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrUserExists})

	c, _ := newJSONContext(http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"correct-horse"}`)

	// The sentinel passes through untouched; the central error handler maps
	// it to 409.
	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &stubAuthService{
		token:     "signed.jwt.token",
		loginUser: &domain.User{ID: "user-1", Username: "alice"},
	}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"correct-horse"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Token != "signed.jwt.token" {
		t.Fatalf("response missing token: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	for name, want := range map[string]error{
		"bad credentials": domain.ErrInvalidCredentials,
		"unknown user":    domain.ErrUserNotFound,
		"throttled":       domain.ErrTooManyAttempts,
	} {
		h := NewAuthHandler(&stubAuthService{loginErr: want})
		c, _ := newJSONContext(http.MethodPost, "/auth/login",
			`{"email":"alice@example.com","password":"whatever"}`)

		if err := h.Login(c); !errors.Is(err, want) {
			t.Fatalf("%s: expected %v, got %v", name, want, err)
		}
	}
}
