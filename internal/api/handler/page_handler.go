package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the minimal HTML shells for the gated dashboards. The
// real UI is a separate frontend; these exist so the session gate's page
// redirect policy has concrete targets.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

const pageShell = `<!doctype html>
<html lang="en">
<head><meta charset="utf-8"><title>%s · TejaSoft Suite</title></head>
<body><div id="root" data-page="%s"></div></body>
</html>`

func page(title, name string) echo.HandlerFunc {
	body := fmt.Sprintf(pageShell, title, name)
	return func(c echo.Context) error {
		return c.HTML(http.StatusOK, body)
	}
}

// Home handles GET / — the public landing page.
func (h *PageHandler) Home(c echo.Context) error { return page("Welcome", "home")(c) }

// Login handles GET /login.
func (h *PageHandler) Login(c echo.Context) error { return page("Login", "login")(c) }

// Admin handles GET /admin and everything below it.
func (h *PageHandler) Admin(c echo.Context) error { return page("Admin", "admin")(c) }

// Employee handles GET /employee and everything below it.
func (h *PageHandler) Employee(c echo.Context) error { return page("Employee", "employee")(c) }

// Client handles GET /client and everything below it.
func (h *PageHandler) Client(c echo.Context) error { return page("Client", "client")(c) }
