package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tejasoft/business-suite/internal/core/service"
)

// CatalogHandler handles the service catalog endpoints.
type CatalogHandler struct {
	service *service.CatalogService
}

func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: catalog}
}

type createServiceRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// List handles GET /api/admin/services and GET /api/client/services.
//
// @Summary      List catalog services
// @Tags         services
// @Produce      json
// @Success      200  {object}  dataResponse
// @Router       /api/client/services [get]
func (h *CatalogHandler) List(c echo.Context) error {
	services, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "All Services list", Data: services})
}

// Create handles POST /api/admin/services.
//
// @Summary      Create a catalog service
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        body  body      createServiceRequest  true  "Service details"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/admin/services [post]
func (h *CatalogHandler) Create(c echo.Context) error {
	var req createServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), req.Name, req.Description, req.Price)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataResponse{Message: "Service created", Data: created})
}
