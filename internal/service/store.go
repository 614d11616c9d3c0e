package service

import (
	"context"
	"time"

	"github.com/iliyamo/shareit/internal/model"
)

// UserStore, ItemStore, RequestStore, BookingStore and CommentStore are the
// data access the services need. Missing rows are reported as
// repository.ErrNotFound.
type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u model.User) error
	Delete(ctx context.Context, id uint64) error
	HasReferences(ctx context.Context, id uint64) (bool, error)
}

type ItemStore interface {
	GetByID(ctx context.Context, id uint64) (model.Item, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (model.Item, error)
	Create(ctx context.Context, it *model.Item) error
	Update(ctx context.Context, it model.Item) error
	ListByOwner(ctx context.Context, ownerID uint64, limit, offset int) ([]model.Item, error)
	ListByRequest(ctx context.Context, requestID uint64) ([]model.Item, error)
	Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error)
}

type RequestStore interface {
	Create(ctx context.Context, r *model.Request) error
	GetByID(ctx context.Context, id uint64) (model.Request, error)
	ListByRequestor(ctx context.Context, requestorID uint64) ([]model.Request, error)
	ListExcludingRequestor(ctx context.Context, requestorID uint64, limit, offset int) ([]model.Request, error)
}

type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (model.BookingDetail, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (model.BookingDetail, error)
	UpdateStatus(ctx context.Context, id uint64, from, to model.BookingStatus) (bool, error)
	ListByItem(ctx context.Context, itemID uint64) ([]model.Booking, error)
	ListForBooker(ctx context.Context, bookerID uint64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingDetail, error)
	ListForOwner(ctx context.Context, ownerID uint64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingDetail, error)
	HasCompleted(ctx context.Context, itemID, bookerID uint64, now time.Time) (bool, error)
}

type CommentStore interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByItem(ctx context.Context, itemID uint64) ([]model.Comment, error)
}

// Repos is the set of stores bound to one transaction.
type Repos struct {
	Users    UserStore
	Items    ItemStore
	Requests RequestStore
	Bookings BookingStore
	Comments CommentStore
}

// Store runs a unit of work. InTx commits when fn returns nil and rolls
// back otherwise; ReadOnly runs fn in a read-only transaction.
type Store interface {
	InTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
	ReadOnly(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
