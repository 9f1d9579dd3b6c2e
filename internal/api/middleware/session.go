package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tejasoft/business-suite/internal/api/metrics"
	"github.com/tejasoft/business-suite/internal/core/domain"
)

// TokenCookie is the session cookie carrying the signed token.
const TokenCookie = "token"

// principalKey is the echo context key the resolved principal is stored
// under.
const principalKey = "principal"

// TokenVerifier resolves a session token into a principal. Invalid tokens of
// any kind (malformed, mis-signed, expired) must come back as an error, not
// a panic.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.Principal, error)
}

// Explicit role→prefix tables. Authorization is driven by these maps rather
// than by lower-casing the role into the path, so renaming a role cannot
// silently open or close routes.
var (
	rolePagePrefix = map[string]string{
		domain.RoleAdmin:    "/admin",
		domain.RoleEmployee: "/employee",
		domain.RoleClient:   "/client",
	}
	roleAPIPrefix = map[string]string{
		domain.RoleAdmin:    "/api/admin",
		domain.RoleEmployee: "/api/employee",
		domain.RoleClient:   "/api/client",
	}
)

// publicPrefixes bypass the gate entirely: auth endpoints plus operational
// surfaces (probes, metrics, docs).
var publicPrefixes = []string{
	"/login",
	"/api/auth",
	"/health",
	"/metrics",
	"/swagger",
}

// sharedAPIPrefixes are reachable by every authenticated role regardless of
// its role prefix.
var sharedAPIPrefixes = []string{
	"/api/profile",
	"/api/messages",
}

// Session is the gate applied to every route. It extracts the session token,
// verifies it, enforces the role→prefix mapping, and injects the resolved
// principal into the request context.
//
// The page/API asymmetry is deliberate: a page request with the wrong role
// prefix is silently redirected to the role's home (navigational UX), while
// an API request with the wrong role prefix is rejected with 403 (API
// contract).
func Session(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			if isPublicPath(path) {
				return next(c)
			}

			token := extractToken(c)
			if token == "" {
				return rejectUnauthenticated(c, path)
			}

			principal, err := verifier.VerifyToken(token)
			if err != nil {
				return rejectUnauthenticated(c, path)
			}

			if strings.HasPrefix(path, "/api") {
				if !apiPathAllowed(path, principal.Role) {
					metrics.GateRejectionsTotal.WithLabelValues("forbidden").Inc()
					return echo.NewHTTPError(http.StatusForbidden, "forbidden")
				}
			} else if home, ok := rolePagePrefix[principal.Role]; ok && !pathHasPrefix(path, home) {
				return c.Redirect(http.StatusFound, home)
			}

			c.Set(principalKey, *principal)
			return next(c)
		}
	}
}

// Principal returns the identity injected by the Session middleware.
func Principal(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

// extractToken reads the session cookie, falling back to a bearer header for
// non-browser clients.
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// rejectUnauthenticated terminates the request: 401 for API calls, a
// redirect to the login page for page navigation.
func rejectUnauthenticated(c echo.Context, path string) error {
	metrics.GateRejectionsTotal.WithLabelValues("unauthenticated").Inc()
	if strings.HasPrefix(path, "/api") {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	return c.Redirect(http.StatusFound, "/login")
}

func apiPathAllowed(path, role string) bool {
	for _, shared := range sharedAPIPrefixes {
		if pathHasPrefix(path, shared) {
			return true
		}
	}
	prefix, ok := roleAPIPrefix[role]
	return ok && pathHasPrefix(path, prefix)
}

// isPublicPath reports whether the gate lets the request through untouched.
// The site root is public; everything else matches by prefix.
func isPublicPath(path string) bool {
	if path == "/" {
		return true
	}
	for _, prefix := range publicPrefixes {
		if pathHasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// pathHasPrefix matches whole path segments: "/admin" covers "/admin" and
// "/admin/users" but not "/administrator".
func pathHasPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
