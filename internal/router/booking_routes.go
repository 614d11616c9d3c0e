package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/handler"
	"github.com/iliyamo/shareit/internal/middleware"
)

// RegisterBookings registers the booking ledger under /bookings.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/bookings", middleware.RequireSharer(), limit)
	g.POST("", h.Create)
	g.GET("", h.ListForBooker)
	g.GET("/owner", h.ListForOwner)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Decide)
}
