package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/handler"
)

// RegisterUsers registers the identity directory under /users. These
// routes address users by path id and take no X-Sharer-User-Id.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/users", limit)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
