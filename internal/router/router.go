// Package router wires HTTP routes to handlers. Routes are grouped
// by audience: public browse and calendar, auth, student
// registration, and organizer authoring.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/univents/campus-events/internal/config"
	"github.com/univents/campus-events/internal/handler"
	"github.com/univents/campus-events/internal/middleware"
)

// RegisterPublic registers unauthenticated endpoints: health, event
// browsing and the calendar views. When a Redis client is supplied,
// browse and calendar GETs are served through the response cache.
func RegisterPublic(e *echo.Echo, ev *handler.EventHandler, cal *handler.CalendarHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	g := e.Group("/v1", middleware.ResponseCache(cacheCfg, rdb))
	g.GET("/events", ev.ListEvents)
	g.GET("/events/:id", ev.GetEvent)
	g.GET("/calendar/:year/:month", cal.Month)
	g.GET("/calendar/day/:date", cal.Day)
}

// RegisterAuth registers the mock auth endpoints. Signup, login,
// refresh and logout are open; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/signup", a.Signup)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}
