package service

import (
	"context"
	"time"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/queue"
)

// BookingEvents receives committed booking changes. Delivery is best
// effort and never influences the outcome of an operation.
type BookingEvents interface {
	PublishBooking(ctx context.Context, ev queue.BookingEvent) error
}

// NoEvents discards every event.
type NoEvents struct{}

func (NoEvents) PublishBooking(context.Context, queue.BookingEvent) error { return nil }

func bookingEvent(typ queue.BookingEventType, d model.BookingDetail, at time.Time) queue.BookingEvent {
	return queue.BookingEvent{
		EventID:    queue.NewEventID(at),
		Type:       typ,
		BookingID:  d.Booking.ID,
		ItemID:     d.Item.ID,
		ItemName:   d.Item.Name,
		BookerID:   d.Booking.BookerID,
		OwnerID:    d.Item.OwnerID,
		Status:     string(d.Booking.Status),
		Start:      d.Booking.Start.Format(model.LocalTimeLayout),
		End:        d.Booking.End.Format(model.LocalTimeLayout),
		OccurredAt: at.Format(model.LocalTimeLayout),
	}
}
