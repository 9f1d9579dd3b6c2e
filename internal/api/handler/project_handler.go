package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tejasoft/business-suite/internal/core/domain"
	"github.com/tejasoft/business-suite/internal/core/ports"
)

// ProjectHandler handles project endpoints for all three roles. Role scoping
// happens in the service; the handler only carries the principal through.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type createProjectRequest struct {
	Name             string   `json:"name" validate:"required"`
	Description      string   `json:"description"`
	ClientID         string   `json:"clientId" validate:"required"`
	ServiceRequestID string   `json:"serviceRequestId"`
	EmployeeIDs      []string `json:"employeeIds"`
}

type assignEmployeeRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
}

type updateProjectRequest struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=PLANNING DEVELOPMENT TESTING DEPLOYMENT DELIVERED"`
}

// List handles the role-prefixed project listing endpoints. The optional
// ?status= filter applies to employee listings.
//
// @Summary      List projects visible to the caller
// @Tags         projects
// @Produce      json
// @Param        status  query     string  false  "Project status filter"
// @Success      200     {object}  dataResponse
// @Failure      401     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/admin/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	status := domain.ProjectStatus(c.QueryParam("status"))
	projects, err := h.service.ListFor(c.Request().Context(), principal, status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Message: "Projects fetched", Data: projects})
}

// Create handles POST /api/admin/projects. The project insert, employee
// assignments, and linked request acceptance are one transaction.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), principal, ports.CreateProjectInput{
		Name:             req.Name,
		Description:      req.Description,
		ClientID:         req.ClientID,
		ServiceRequestID: req.ServiceRequestID,
		EmployeeIDs:      req.EmployeeIDs,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dataResponse{Message: "Project created successfully", Data: created})
}

// UpdateStatus handles the project status update endpoints.
//
// @Summary      Update a project's status
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      updateProjectRequest  true  "Project id and new status"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/employee/projects [put]
func (h *ProjectHandler) UpdateStatus(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.UpdateStatus(c.Request().Context(), principal, req.ID, domain.ProjectStatus(req.Status))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Message: "Updated successfully", Data: updated})
}

// Team handles GET /api/admin/projects/:projectId/employees.
//
// @Summary      List employees assigned to a project
// @Tags         projects
// @Produce      json
// @Param        projectId  path      string  true  "Project id"
// @Success      200        {object}  dataResponse
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /api/admin/projects/{projectId}/employees [get]
func (h *ProjectHandler) Team(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	team, err := h.service.Team(c.Request().Context(), principal, c.Param("projectId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Message: "Assigned employees fetched", Data: team})
}

// AddEmployee handles POST /api/admin/projects/:projectId/employees.
//
// @Summary      Assign an employee to a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        projectId  path      string                 true  "Project id"
// @Param        body       body      assignEmployeeRequest  true  "Employee id"
// @Success      201        {object}  messageResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /api/admin/projects/{projectId}/employees [post]
func (h *ProjectHandler) AddEmployee(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req assignEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.AddEmployee(c.Request().Context(), principal, c.Param("projectId"), req.EmployeeID); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: "Employee assigned"})
}

// RemoveEmployee handles DELETE /api/admin/projects/:projectId/employees.
// The employee id travels in the body, mirroring the assignment payload.
//
// @Summary      Unassign an employee from a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        projectId  path      string                 true  "Project id"
// @Param        body       body      assignEmployeeRequest  true  "Employee id"
// @Success      200        {object}  messageResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /api/admin/projects/{projectId}/employees [delete]
func (h *ProjectHandler) RemoveEmployee(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req assignEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.RemoveEmployee(c.Request().Context(), principal, c.Param("projectId"), req.EmployeeID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Employee unassigned"})
}
