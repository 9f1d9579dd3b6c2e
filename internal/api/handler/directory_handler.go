package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tejasoft/business-suite/internal/core/ports"
)

// DirectoryHandler handles admin user management, listings, and stats.
type DirectoryHandler struct {
	service ports.DirectoryService
}

func NewDirectoryHandler(service ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dataResponse
// @Router       /api/admin/users [get]
func (h *DirectoryHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "All Users data", Data: users})
}

// DeleteUser handles DELETE /api/admin/users/:userId. Admin accounts cannot
// be deleted.
//
// @Summary      Delete a non-admin user
// @Tags         admin
// @Produce      json
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  messageResponse
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/admin/users/{userId} [delete]
func (h *DirectoryHandler) DeleteUser(c echo.Context) error {
	userID := c.Param("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId required")
	}

	if err := h.service.DeleteUser(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// ListEmployees handles GET /api/admin/employees.
//
// @Summary      List employees
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dataResponse
// @Router       /api/admin/employees [get]
func (h *DirectoryHandler) ListEmployees(c echo.Context) error {
	employees, err := h.service.ListEmployees(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "employees are fetched", Data: employees})
}

// ListClients handles GET /api/admin/clients.
//
// @Summary      List clients
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dataResponse
// @Router       /api/admin/clients [get]
func (h *DirectoryHandler) ListClients(c echo.Context) error {
	clients, err := h.service.ListClients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "All Clients data", Data: clients})
}

// Stats handles GET /api/admin/stats.
//
// @Summary      Admin dashboard counters
// @Tags         admin
// @Produce      json
// @Success      200  {object}  ports.Stats
// @Router       /api/admin/stats [get]
func (h *DirectoryHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
