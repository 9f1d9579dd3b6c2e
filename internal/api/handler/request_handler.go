package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tejasoft/business-suite/internal/core/domain"
	"github.com/tejasoft/business-suite/internal/core/ports"
)

// RequestHandler handles service-request endpoints for admins and clients.
type RequestHandler struct {
	service ports.RequestService
}

func NewRequestHandler(service ports.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

type createRequestRequest struct {
	ServiceID string `json:"id" validate:"required"`
}

type updateRequestRequest struct {
	ID     string `json:"id" validate:"required"`
	Status string `json:"status" validate:"required,oneof=PENDING ACCEPTED REJECTED"`
}

// List handles GET /api/admin/requests and GET /api/client/requests.
//
// @Summary      List service requests visible to the caller
// @Tags         requests
// @Produce      json
// @Success      200  {object}  dataResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/admin/requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	requests, err := h.service.ListFor(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Message: "All requests fetched", Data: requests})
}

// Create handles POST /api/client/requests.
//
// @Summary      File a service request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body  body      createRequestRequest  true  "Catalog service id"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/client/requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), principal, req.ServiceID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dataResponse{Message: "Service Request created", Data: created})
}

// UpdateStatus handles PUT /api/admin/requests.
//
// @Summary      Update a service request's status
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        body  body      updateRequestRequest  true  "Request id and new status"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/requests [put]
func (h *RequestHandler) UpdateStatus(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.UpdateStatus(c.Request().Context(), principal, req.ID, domain.RequestStatus(req.Status))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Message: "Request updated", Data: updated})
}
