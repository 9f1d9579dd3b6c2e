package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tejasoft/business-suite/internal/api/middleware"
	"github.com/tejasoft/business-suite/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Session middleware and
// fast-fails before any service call: its presence proves the gate ran for
// this request.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	principal, ok := middleware.Principal(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return principal, nil
}
