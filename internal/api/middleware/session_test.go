package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tejasoft/business-suite/internal/core/domain"
)

type stubVerifier struct {
	principals map[string]*domain.Principal
}

func (v *stubVerifier) VerifyToken(token string) (*domain.Principal, error) {
	if p, ok := v.principals[token]; ok {
		return p, nil
	}
	return nil, domain.ErrUnauthenticated
}

func newStubVerifier() *stubVerifier {
	return &stubVerifier{principals: map[string]*domain.Principal{
		"admin-token":    {ID: "u1", Role: domain.RoleAdmin, Email: "admin@example.com"},
		"employee-token": {ID: "u2", Role: domain.RoleEmployee, Email: "emp@example.com"},
		"client-token":   {ID: "u3", Role: domain.RoleClient, Email: "client@example.com"},
	}}
}

func runGate(t *testing.T, path, token string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Session(newStubVerifier())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestSession_ValidTokenReachesHandler(t *testing.T) {
	rec, called := runGate(t, "/api/admin/users", "admin-token")
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSession_PrincipalInjected(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/employee/projects", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "employee-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(newStubVerifier())(func(c echo.Context) error {
		p, ok := Principal(c)
		if !ok {
			t.Fatalf("principal not injected")
		}
		if p.ID != "u2" || p.Role != domain.RoleEmployee {
			t.Fatalf("unexpected principal: %+v", p)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSession_BearerHeaderFallback(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/client/projects", nil)
	req.Header.Set("Authorization", "Bearer client-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Session(newStubVerifier())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("bearer fallback rejected: called=%v code=%d", called, rec.Code)
	}
}

func TestSession_MissingToken(t *testing.T) {
	// API requests get 401.
	rec, called := runGate(t, "/api/admin/users", "")
	if called {
		t.Fatalf("next must not run without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for API, got %d", rec.Code)
	}

	// Page requests redirect to the login page.
	rec, called = runGate(t, "/admin", "")
	if called {
		t.Fatalf("next must not run without a token")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302 for page, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %s", loc)
	}
}

func TestSession_InvalidToken(t *testing.T) {
	rec, called := runGate(t, "/api/admin/users", "forged-token")
	if called {
		t.Fatalf("next must not run with an invalid token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSession_RoleMismatchOnAPI(t *testing.T) {
	rec, called := runGate(t, "/api/client/projects", "employee-token")
	if called {
		t.Fatalf("next must not run for a foreign role prefix")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestSession_RoleMismatchOnPageRedirectsHome(t *testing.T) {
	rec, called := runGate(t, "/client/projects", "admin-token")
	if called {
		t.Fatalf("next must not run for a foreign page prefix")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Fatalf("expected redirect to /admin, got %s", loc)
	}
}

func TestSession_SharedAPIPrefixes(t *testing.T) {
	for _, path := range []string{"/api/profile", "/api/messages", "/api/messages/contacts"} {
		for _, token := range []string{"admin-token", "employee-token", "client-token"} {
			rec, called := runGate(t, path, token)
			if !called || rec.Code != http.StatusOK {
				t.Fatalf("%s with %s: called=%v code=%d", path, token, called, rec.Code)
			}
		}
	}
}

func TestSession_PublicPaths(t *testing.T) {
	for _, path := range []string{"/", "/login", "/api/auth/login", "/health", "/health/ready", "/metrics", "/swagger/index.html"} {
		rec, called := runGate(t, path, "")
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("%s should be public: called=%v code=%d", path, called, rec.Code)
		}
	}
}

func TestPathHasPrefix_WholeSegments(t *testing.T) {
	cases := []struct {
		path, prefix string
		want         bool
	}{
		{"/admin", "/admin", true},
		{"/admin/users", "/admin", true},
		{"/administrator", "/admin", false},
		{"/api/adminextra", "/api/admin", false},
		{"/api/admin/users", "/api/admin", true},
	}
	for _, tc := range cases {
		if got := pathHasPrefix(tc.path, tc.prefix); got != tc.want {
			t.Fatalf("pathHasPrefix(%q, %q) = %v, want %v", tc.path, tc.prefix, got, tc.want)
		}
	}
}
