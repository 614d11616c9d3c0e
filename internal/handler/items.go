package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/service"
)

type ItemService interface {
	ListByOwner(ctx context.Context, ownerID uint64, page service.Page) ([]service.ItemView, error)
	Get(ctx context.Context, userID, itemID uint64) (service.ItemView, error)
	Search(ctx context.Context, text string, page service.Page) ([]service.ItemView, error)
	Create(ctx context.Context, ownerID uint64, in service.ItemInput) (service.ItemView, error)
	Edit(ctx context.Context, ownerID, itemID uint64, in service.ItemInput) (service.ItemView, error)
	AddComment(ctx context.Context, authorID, itemID uint64, in service.CommentInput) (service.CommentView, error)
}

// ItemHandler serves /items and item comments.
type ItemHandler struct {
	Items ItemService
	Log   *slog.Logger
}

func NewItemHandler(items ItemService, log *slog.Logger) *ItemHandler {
	if items == nil || log == nil {
		panic("nil dependency passed to NewItemHandler")
	}
	return &ItemHandler{Items: items, Log: log}
}

// ListOwn handles GET /items?from&size.
func (h *ItemHandler) ListOwn(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	page, err := pageParams(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := h.Items.ListByOwner(c.Request().Context(), userID, page)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /items/:id.
func (h *ItemHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := h.Items.Get(c.Request().Context(), userID, itemID)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Search handles GET /items/search?text&from&size. It does not need a
// caller id, which keeps its responses cacheable across users.
func (h *ItemHandler) Search(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := h.Items.Search(c.Request().Context(), c.QueryParam("text"), page)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /items.
func (h *ItemHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	var in service.ItemInput
	if err := bind(c, &in); err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := h.Items.Create(c.Request().Context(), userID, in)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Edit handles PATCH /items/:id.
func (h *ItemHandler) Edit(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.Log, err)
	}
	var in service.ItemInput
	if err := bind(c, &in); err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := h.Items.Edit(c.Request().Context(), userID, itemID, in)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// AddComment handles POST /items/:id/comment.
func (h *ItemHandler) AddComment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	itemID, err := pathID(c, "id")
	if err != nil {
		return writeError(c, h.Log, err)
	}
	var in service.CommentInput
	if err := bind(c, &in); err != nil {
		return writeError(c, h.Log, err)
	}
	out, err := h.Items.AddComment(c.Request().Context(), userID, itemID, in)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}
