package service

import (
	"context"
	"fmt"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/queue"
)

const (
	msgOwnerBooking    = "owner cannot book own item"
	msgNotAvailable    = "item not available"
	msgNotBookingOwner = "only the item owner can approve or reject a booking"
	msgNotParticipant  = "only the booker or the item owner can view a booking"
	msgAlreadyDecided  = "booking has already been approved or rejected"
)

// BookingService is the booking ledger. Create and Decide each run their
// checks and their write in a single transaction; events are published
// only after commit.
type BookingService struct {
	store  Store
	clock  Clock
	events BookingEvents
}

func NewBookingService(store Store, clock Clock, events BookingEvents) *BookingService {
	if store == nil {
		panic("nil store")
	}
	if clock == nil {
		clock = realClock{}
	}
	if events == nil {
		events = NoEvents{}
	}
	return &BookingService{store: store, clock: clock, events: events}
}

// ParseState turns a query token into a state selector.
func ParseState(token string) (model.BookingState, error) {
	st, ok := model.ParseBookingState(token)
	if !ok {
		return "", Invalid("state", fmt.Sprintf("Unknown state: %s", token))
	}
	return st, nil
}

// Create books an item for bookerID. The new booking is WAITING.
func (s *BookingService) Create(ctx context.Context, bookerID uint64, in BookingInput) (BookingView, error) {
	now := s.clock.Now()
	if err := in.Validate(now); err != nil {
		return BookingView{}, err
	}
	var out model.BookingDetail
	err := s.store.InTx(ctx, func(ctx context.Context, r Repos) error {
		booker, err := getUser(ctx, r, bookerID)
		if err != nil {
			return err
		}
		it, err := r.Items.GetByIDForUpdate(ctx, *in.ItemID)
		if err != nil {
			return notFoundAs(err, msgItemNotFound)
		}
		if it.OwnerID == bookerID {
			return Forbidden(msgOwnerBooking)
		}
		if !it.Available {
			return InvalidOperation(msgNotAvailable)
		}
		b := model.Booking{
			ItemID:   it.ID,
			BookerID: bookerID,
			Start:    in.Start.Time,
			End:      in.End.Time,
			Status:   model.StatusWaiting,
		}
		if err := r.Bookings.Create(ctx, &b); err != nil {
			return err
		}
		out = model.BookingDetail{Booking: b, Item: it, Booker: booker}
		return nil
	})
	if err != nil {
		return BookingView{}, err
	}
	_ = s.events.PublishBooking(ctx, bookingEvent(queue.BookingCreated, out, now))
	return toBookingView(out), nil
}

// Decide approves or rejects a WAITING booking on behalf of the item owner.
func (s *BookingService) Decide(ctx context.Context, ownerID, bookingID uint64, approved bool) (BookingView, error) {
	var out model.BookingDetail
	err := s.store.InTx(ctx, func(ctx context.Context, r Repos) error {
		if _, err := getUser(ctx, r, ownerID); err != nil {
			return err
		}
		d, err := r.Bookings.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			return notFoundAs(err, msgBookingNotFound)
		}
		if d.Item.OwnerID != ownerID {
			return Forbidden(msgNotBookingOwner)
		}
		next, ok := d.Booking.Status.Decide(approved)
		if !ok {
			return InvalidOperation(msgAlreadyDecided)
		}
		changed, err := r.Bookings.UpdateStatus(ctx, bookingID, d.Booking.Status, next)
		if err != nil {
			return err
		}
		if !changed {
			return InvalidOperation(msgAlreadyDecided)
		}
		d.Booking.Status = next
		out = d
		return nil
	})
	if err != nil {
		return BookingView{}, err
	}
	typ := queue.BookingRejected
	if approved {
		typ = queue.BookingApproved
	}
	_ = s.events.PublishBooking(ctx, bookingEvent(typ, out, s.clock.Now()))
	return toBookingView(out), nil
}

// Get returns a booking to its booker or to the item owner.
func (s *BookingService) Get(ctx context.Context, userID, bookingID uint64) (BookingView, error) {
	var out model.BookingDetail
	err := s.store.ReadOnly(ctx, func(ctx context.Context, r Repos) error {
		if _, err := getUser(ctx, r, userID); err != nil {
			return err
		}
		d, err := r.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			return notFoundAs(err, msgBookingNotFound)
		}
		if d.Booking.BookerID != userID && d.Item.OwnerID != userID {
			return Forbidden(msgNotParticipant)
		}
		out = d
		return nil
	})
	if err != nil {
		return BookingView{}, err
	}
	return toBookingView(out), nil
}

// ListForBooker pages through the booker's bookings, latest start first.
func (s *BookingService) ListForBooker(ctx context.Context, bookerID uint64, state model.BookingState, page Page) ([]BookingView, error) {
	return s.list(ctx, bookerID, page, func(ctx context.Context, r Repos) ([]model.BookingDetail, error) {
		return r.Bookings.ListForBooker(ctx, bookerID, state, s.clock.Now(), page.Limit(), page.Offset())
	})
}

// ListForOwner pages through bookings of the owner's items, latest start first.
func (s *BookingService) ListForOwner(ctx context.Context, ownerID uint64, state model.BookingState, page Page) ([]BookingView, error) {
	return s.list(ctx, ownerID, page, func(ctx context.Context, r Repos) ([]model.BookingDetail, error) {
		return r.Bookings.ListForOwner(ctx, ownerID, state, s.clock.Now(), page.Limit(), page.Offset())
	})
}

func (s *BookingService) list(ctx context.Context, userID uint64, page Page, query func(context.Context, Repos) ([]model.BookingDetail, error)) ([]BookingView, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	var out []BookingView
	err := s.store.ReadOnly(ctx, func(ctx context.Context, r Repos) error {
		if _, err := getUser(ctx, r, userID); err != nil {
			return err
		}
		ds, err := query(ctx, r)
		out = toBookingViews(ds)
		return err
	})
	return out, err
}
