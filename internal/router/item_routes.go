package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/handler"
	"github.com/iliyamo/shareit/internal/middleware"
)

// RegisterItems registers the catalog under /items. Search is identity-free
// and served through the response cache; item writes invalidate it.
func RegisterItems(e *echo.Echo, h *handler.ItemHandler, limit echo.MiddlewareFunc, cache *middleware.ResponseCache) {
	g := e.Group("/items")
	g.GET("/search", h.Search, limit, cache.Middleware())

	sharer := middleware.RequireSharer()
	g.GET("", h.ListOwn, sharer, limit)
	g.POST("", h.Create, sharer, limit, cache.Invalidate())
	g.GET("/:id", h.Get, sharer, limit)
	g.PATCH("/:id", h.Edit, sharer, limit, cache.Invalidate())
	g.POST("/:id/comment", h.AddComment, sharer, limit)
}
