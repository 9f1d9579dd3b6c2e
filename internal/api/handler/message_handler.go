package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tejasoft/business-suite/internal/api/metrics"
	"github.com/tejasoft/business-suite/internal/core/ports"
)

// MessageHandler handles the messaging endpoints, available to every
// authenticated role.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Message    string `json:"message" validate:"required"`
}

type setReadRequest struct {
	ID   string `json:"id" validate:"required"`
	Read *bool  `json:"read" validate:"required"`
}

type dataResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// Conversations handles GET /api/messages — the caller's threads, most
// recently active counterparty first.
//
// @Summary      List conversations
// @Tags         messages
// @Produce      json
// @Success      200  {object}  dataResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/messages [get]
func (h *MessageHandler) Conversations(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	conversations, err := h.service.Conversations(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Data: conversations})
}

// Send handles POST /api/messages.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      sendMessageRequest  true  "Receiver and body"
// @Success      201   {object}  dataResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Send(c.Request().Context(), ports.SendMessageInput{
		SenderID:   principal.ID,
		ReceiverID: req.ReceiverID,
		Body:       req.Message,
	})
	if err != nil {
		return err
	}
	metrics.MessagesSentTotal.Inc()

	return c.JSON(http.StatusCreated, dataResponse{Data: created})
}

// SetRead handles PUT /api/messages — toggles a message's read flag.
//
// @Summary      Mark a message read or unread
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      setReadRequest  true  "Message id and read flag"
// @Success      200   {object}  dataResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/messages [put]
func (h *MessageHandler) SetRead(c echo.Context) error {
	if _, err := ctxPrincipal(c); err != nil {
		return err
	}

	var req setReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.SetRead(c.Request().Context(), req.ID, *req.Read)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Data: updated})
}

// Contacts handles GET /api/messages/contacts — the role-filtered peer
// directory.
//
// @Summary      List messageable contacts
// @Tags         messages
// @Produce      json
// @Success      200  {object}  dataResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/messages/contacts [get]
func (h *MessageHandler) Contacts(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	contacts, err := h.service.Contacts(c.Request().Context(), principal)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dataResponse{Message: "Contacts", Data: contacts})
}
