package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/service"
)

type UserService interface {
	List(ctx context.Context) ([]service.UserView, error)
	Get(ctx context.Context, id uint64) (service.UserView, error)
	Create(ctx context.Context, in service.UserInput) (service.UserView, error)
	Update(ctx context.Context, id uint64, in service.UserInput) (service.UserView, error)
	Delete(ctx context.Context, id uint64) error
}

// UserHandler serves /users.
type UserHandler struct {
	Users UserService
	Log   *slog.Logger
}

func NewUserHandler(users UserService, log *slog.Logger) *UserHandler {
	if users == nil || log == nil {
		panic("nil dependency passed to NewUserHandler")
	}
	return &UserHandler{Users: users, Log: log}
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	out, err := h.Users.List(c.Request().Context())
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := h.Users.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
	var in service.UserInput
	if err := bind(c, &in); err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := h.Users.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PATCH /users/:id.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.Log, err)
	}
	var in service.UserInput
	if err := bind(c, &in); err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := h.Users.Update(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.Log, err)
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, h.Log, err)
	}
	return c.NoContent(http.StatusOK)
}
