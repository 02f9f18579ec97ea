package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yeqown/go-qrcode"

	"github.com/univents/campus-events/internal/middleware"
	"github.com/univents/campus-events/internal/registration"
	"github.com/univents/campus-events/internal/repository"
)

// RegistrationHandler exposes the registration core over HTTP for
// student accounts. All methods assume JWT authentication and role
// validation have already run; the authenticated user is the only
// one whose tickets can be viewed or cancelled here.
type RegistrationHandler struct {
	Service *registration.Service
}

func NewRegistrationHandler(svc *registration.Service) *RegistrationHandler {
	return &RegistrationHandler{Service: svc}
}

type registerEventReq struct {
	PaymentMethod string `json:"payment_method"`
}

// Register handles POST /v1/events/:id/register. The payment method
// may be omitted for free events; for paid events the simulator
// resolves it to a success or a decline. Error mapping: 404 unknown
// event, 409 full or duplicate, 402 declined.
func (h *RegistrationHandler) Register(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID := c.Param("id")
	if eventID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req registerEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ticket, err := h.Service.Register(c.Request().Context(), eventID, uid, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case errors.Is(err, repository.ErrDuplicateRegistration):
			return c.JSON(http.StatusConflict, echo.Map{"error": "already registered for this event"})
		case errors.Is(err, repository.ErrEventFull):
			return c.JSON(http.StatusConflict, echo.Map{"error": "event is full"})
		case errors.Is(err, registration.ErrPaymentDeclined):
			return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "payment declined"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"ticket": ticket})
}

// Cancel handles DELETE /v1/tickets/:id. Only the ticket owner may
// cancel; cancelling an unknown or already-cancelled ticket is 404.
func (h *RegistrationHandler) Cancel(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ticketID := c.Param("id")
	owned, err := h.Service.GetTicket(c.Request().Context(), ticketID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
	}
	if owned.UserID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	ticket, err := h.Service.CancelRegistration(c.Request().Context(), ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ticket": ticket})
}

// ListMyTickets handles GET /v1/my-tickets and returns every ticket
// ever issued to the caller, newest last.
func (h *RegistrationHandler) ListMyTickets(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tickets := h.Service.ListByUser(c.Request().Context(), uid)
	return c.JSON(http.StatusOK, echo.Map{"items": tickets})
}

// TicketQR handles GET /v1/tickets/:id/qr and renders the ticket's
// check-in token as a QR image. Only confirmed tickets have one.
func (h *RegistrationHandler) TicketQR(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ticket, err := h.Service.GetTicket(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
	}
	if ticket.UserID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if ticket.QRCode == "" {
		return c.JSON(http.StatusConflict, echo.Map{"error": "ticket has no QR code yet"})
	}
	qrc, err := qrcode.New(ticket.QRCode)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "qr generation failed"})
	}
	c.Response().Header().Set(echo.HeaderContentType, "image/jpeg")
	c.Response().WriteHeader(http.StatusOK)
	return qrc.SaveTo(c.Response())
}
