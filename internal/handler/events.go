// This file defines the public browse endpoints and the organizer
// authoring endpoint. Browsing requires no authentication so that
// anyone can see what is happening on campus; authoring is
// restricted to faculty and admin accounts by route middleware.

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/univents/campus-events/internal/middleware"
	"github.com/univents/campus-events/internal/model"
	"github.com/univents/campus-events/internal/repository"
)

// EventHandler serves event browsing and authoring. The catalog is
// the single source of truth; this layer only shapes requests and
// responses.
type EventHandler struct {
	Catalog *repository.EventCatalog
}

func NewEventHandler(catalog *repository.EventCatalog) *EventHandler {
	return &EventHandler{Catalog: catalog}
}

// ListEvents handles GET /v1/events. Supports an optional ?category=
// filter. Only published events are returned, sorted by date.
func (h *EventHandler) ListEvents(c echo.Context) error {
	events := h.Catalog.ListPublished(c.QueryParam("category"))
	return c.JSON(http.StatusOK, echo.Map{"items": events})
}

// GetEvent handles GET /v1/events/:id and returns a single published
// event with its live attendance count.
func (h *EventHandler) GetEvent(c echo.Context) error {
	ev, err := h.Catalog.Get(c.Param("id"))
	if err != nil || ev.Status != model.EventStatusPublished {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": ev, "remaining": ev.Remaining()})
}

// createEventReq is the authoring payload. The shape checks here are
// the validation boundary demanded by the registration core: by the
// time an event reaches the catalog its capacity and schedule fields
// are known-good.
type createEventReq struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Date         string   `json:"date" validate:"required"` // YYYY-MM-DD
	StartTime    string   `json:"start_time" validate:"required"`
	EndTime      string   `json:"end_time" validate:"required"`
	Location     string   `json:"location" validate:"required"`
	PriceCents   int64    `json:"price_cents" validate:"gte=0"`
	Category     string   `json:"category" validate:"required"`
	Club         string   `json:"club"`
	MaxAttendees int      `json:"max_attendees" validate:"required,gt=0,lte=100000"`
	ImageURL     string   `json:"image_url"`
	Tags         []string `json:"tags"`
	Publish      bool     `json:"publish"`
}

// CreateEvent handles POST /v1/events for FACULTY and ADMIN users.
// New events start with zero attendees; counters are owned by the
// registration core from then on.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	if !validClock(req.StartTime) || !validClock(req.EndTime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "times must be HH:MM"})
	}
	status := model.EventStatusDraft
	if req.Publish {
		status = model.EventStatusPublished
	}
	ev := model.Event{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Description:  req.Description,
		Date:         date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Location:     req.Location,
		PriceCents:   req.PriceCents,
		Category:     req.Category,
		Club:         req.Club,
		MaxAttendees: req.MaxAttendees,
		ImageURL:     req.ImageURL,
		Tags:         req.Tags,
		OrganizerID:  uid,
		Status:       status,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := h.Catalog.Add(ev)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": created})
}

// validClock accepts "HH:MM" 24-hour wall-clock strings.
func validClock(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	hh, err1 := strconv.Atoi(s[:2])
	mm, err2 := strconv.Atoi(s[3:])
	return err1 == nil && err2 == nil && hh >= 0 && hh < 24 && mm >= 0 && mm < 60
}
