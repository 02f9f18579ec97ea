package router

import (
	"github.com/labstack/echo/v4"

	"github.com/univents/campus-events/internal/handler"
	"github.com/univents/campus-events/internal/middleware"
	"github.com/univents/campus-events/internal/model"
)

// RegisterOrganizer registers the event authoring endpoint for
// FACULTY and ADMIN accounts. Authoring is the boundary where event
// shape gets validated before the catalog ever sees the record.
func RegisterOrganizer(e *echo.Echo, h *handler.EventHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleFaculty, model.RoleAdmin),
	)
	g.POST("/events", h.CreateEvent)
}
