package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tejasoft/business-suite/internal/core/domain"
	"github.com/tejasoft/business-suite/internal/core/ports"
)

type stubAuthService struct {
	loginToken     string
	loginPrincipal *domain.Principal
	loginErr       error
	registered     *ports.RegisterInput
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (*domain.User, error) {
	s.registered = &input
	return &domain.User{ID: "u9", Email: input.Email, Role: input.Role}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, *domain.Principal, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.loginToken, s.loginPrincipal, nil
}

func (s *stubAuthService) VerifyToken(token string) (*domain.Principal, error) {
	if token == s.loginToken {
		return s.loginPrincipal, nil
	}
	return nil, domain.ErrUnauthenticated
}

func newAuthTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	res := rec.Result()
	for _, cookie := range res.Cookies() {
		if cookie.Name == "token" {
			return cookie
		}
	}
	t.Fatalf("session cookie not set")
	return nil
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	svc := &stubAuthService{
		loginToken:     "signed-token",
		loginPrincipal: &domain.Principal{ID: "u1", Role: domain.RoleAdmin, Email: "admin@example.com"},
	}
	h := NewAuthHandler(svc, 7*24*time.Hour, false)

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"admin@example.com","password":"pass123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := sessionCookieFrom(t, rec)
	if cookie.Value != "signed-token" {
		t.Fatalf("unexpected cookie value: %s", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("session cookie must be SameSite=Lax, got %v", cookie.SameSite)
	}
	if cookie.Path != "/" {
		t.Fatalf("session cookie path must be /, got %s", cookie.Path)
	}
	if cookie.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Fatalf("cookie max-age must match token TTL, got %d", cookie.MaxAge)
	}
	if !strings.Contains(rec.Body.String(), "Login successful") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	c, _ := newAuthTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"admin@example.com"}`)
	err := h.Login(c)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_PropagatesServiceError(t *testing.T) {
	svc := &stubAuthService{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(svc, time.Hour, false)

	c, _ := newAuthTestContext(t, http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"wrong"}`)
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout_ExpiresCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour, false)

	c, rec := newAuthTestContext(t, http.MethodDelete, "/api/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	cookie := sessionCookieFrom(t, rec)
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("logout must clear the cookie: value=%q maxage=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	svc := &stubAuthService{
		loginToken:     "signed-token",
		loginPrincipal: &domain.Principal{ID: "u1", Role: domain.RoleClient, Email: "c@example.com"},
	}
	h := NewAuthHandler(svc, time.Hour, false)

	c, rec := newAuthTestContext(t, http.MethodGet, "/api/auth/me", "")
	c.Request().AddCookie(&http.Cookie{Name: "token", Value: "signed-token"})
	if err := h.Me(c); err != nil {
		t.Fatalf("Me returned error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"c@example.com"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	c2, _ := newAuthTestContext(t, http.MethodGet, "/api/auth/me", "")
	if err := h.Me(c2); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated without cookie, got %v", err)
	}
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, time.Hour, false)

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/admin/users", `{"email":"new@example.com","password":"pass123","role":"EMPLOYEE"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.registered == nil || svc.registered.Role != domain.RoleEmployee {
		t.Fatalf("unexpected registration input: %+v", svc.registered)
	}
}
