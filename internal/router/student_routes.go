package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/univents/campus-events/internal/config"
	"github.com/univents/campus-events/internal/handler"
	"github.com/univents/campus-events/internal/middleware"
	"github.com/univents/campus-events/internal/model"
)

// RegisterStudent registers the registration endpoints. All routes
// require a valid JWT with the STUDENT role; the register and cancel
// routes additionally sit behind the rate limiter so a stampede on a
// popular event degrades politely instead of melting the service.
func RegisterStudent(e *echo.Echo, h *handler.RegistrationHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStudent),
	)
	limited := middleware.RateLimit(rlCfg, rdb)
	g.POST("/events/:id/register", h.Register, limited)
	g.DELETE("/tickets/:id", h.Cancel, limited)
	g.GET("/my-tickets", h.ListMyTickets)
	g.GET("/tickets/:id/qr", h.TicketQR)
}
