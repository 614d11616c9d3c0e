package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/handler"
	"github.com/iliyamo/shareit/internal/middleware"
)

// RegisterRequests registers the request board under /requests.
func RegisterRequests(e *echo.Echo, h *handler.RequestHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/requests", middleware.RequireSharer(), limit)
	g.POST("", h.Create)
	g.GET("", h.ListOwn)
	g.GET("/all", h.ListOthers)
	g.GET("/:id", h.Get)
}
