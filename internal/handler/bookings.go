package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/service"
)

type BookingService interface {
	Create(ctx context.Context, bookerID uint64, in service.BookingInput) (service.BookingView, error)
	Decide(ctx context.Context, ownerID, bookingID uint64, approved bool) (service.BookingView, error)
	Get(ctx context.Context, userID, bookingID uint64) (service.BookingView, error)
	ListForBooker(ctx context.Context, bookerID uint64, state model.BookingState, page service.Page) ([]service.BookingView, error)
	ListForOwner(ctx context.Context, ownerID uint64, state model.BookingState, page service.Page) ([]service.BookingView, error)
}

// BookingHandler serves /bookings.
type BookingHandler struct {
	Bookings BookingService
	Log      *slog.Logger
}

func NewBookingHandler(bookings BookingService, log *slog.Logger) *BookingHandler {
	if bookings == nil || log == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Log: log}
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	var in service.BookingInput
	if err := bind(c, &in); err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := h.Bookings.Create(c.Request().Context(), userID, in)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Decide handles PATCH /bookings/:id?approved=true|false.
func (h *BookingHandler) Decide(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	bookingID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.Log, err)
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return writeError(c, h.Log, service.Invalid("approved", "must be true or false"))
	}
	out, err := h.Bookings.Decide(c.Request().Context(), userID, bookingID, approved)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	bookingID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := h.Bookings.Get(c.Request().Context(), userID, bookingID)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListForBooker handles GET /bookings?state&from&size.
func (h *BookingHandler) ListForBooker(c echo.Context) error {
	return h.list(c, h.Bookings.ListForBooker)
}

// ListForOwner handles GET /bookings/owner?state&from&size.
func (h *BookingHandler) ListForOwner(c echo.Context) error {
	return h.list(c, h.Bookings.ListForOwner)
}

type bookingLister func(ctx context.Context, userID uint64, state model.BookingState, page service.Page) ([]service.BookingView, error)

func (h *BookingHandler) list(c echo.Context, fetch bookingLister) error {
	userID, err := getUserID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	state, err := service.ParseState(c.QueryParam("state"))
	if err != nil {
		return writeError(c, h.Log, err)
	}
	page, err := pageParams(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := fetch(c.Request().Context(), userID, state, page)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}
