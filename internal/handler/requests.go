package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/service"
)

type RequestService interface {
	Create(ctx context.Context, requestorID uint64, in service.RequestInput) (service.RequestView, error)
	ListOwn(ctx context.Context, requestorID uint64) ([]service.RequestView, error)
	ListOthers(ctx context.Context, userID uint64, page service.Page) ([]service.RequestView, error)
	Get(ctx context.Context, userID, requestID uint64) (service.RequestView, error)
}

// RequestHandler serves /requests.
type RequestHandler struct {
	Requests RequestService
	Log      *slog.Logger
}

func NewRequestHandler(requests RequestService, log *slog.Logger) *RequestHandler {
	if requests == nil || log == nil {
		panic("nil dependency passed to NewRequestHandler")
	}
	return &RequestHandler{Requests: requests, Log: log}
}

// Create handles POST /requests.
func (h *RequestHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	var in service.RequestInput
	if err := bind(c, &in); err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := h.Requests.Create(c.Request().Context(), userID, in)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListOwn handles GET /requests.
func (h *RequestHandler) ListOwn(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := h.Requests.ListOwn(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListOthers handles GET /requests/all?from&size.
func (h *RequestHandler) ListOthers(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	page, err := pageParams(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := h.Requests.ListOthers(c.Request().Context(), userID, page)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /requests/:id.
func (h *RequestHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	requestID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := h.Requests.Get(c.Request().Context(), userID, requestID)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}
