// Package queue carries booking lifecycle events over RabbitMQ: the
// publisher used by the server and the consumer that keeps the audit log.
package queue

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// BookingEventQueue is the durable queue booking events are routed to.
const BookingEventQueue = "booking.events"

// BookingEventType names the lifecycle step an event records.
type BookingEventType string

const (
	BookingCreated  BookingEventType = "CREATED"
	BookingApproved BookingEventType = "APPROVED"
	BookingRejected BookingEventType = "REJECTED"
)

// BookingEvent is published after a booking change has been committed. It
// carries enough to write an audit line without querying the database.
type BookingEvent struct {
	EventID    string           `json:"event_id"`
	Type       BookingEventType `json:"type"`
	BookingID  uint64           `json:"booking_id"`
	ItemID     uint64           `json:"item_id"`
	ItemName   string           `json:"item_name"`
	BookerID   uint64           `json:"booker_id"`
	OwnerID    uint64           `json:"owner_id"`
	Status     string           `json:"status"`
	Start      string           `json:"start"`
	End        string           `json:"end"`
	OccurredAt string           `json:"occurred_at"`
}

// NewEventID returns a lexicographically sortable id for an event that
// happened at t.
func NewEventID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.Monotonic(rand.Reader, 0)).String()
}
