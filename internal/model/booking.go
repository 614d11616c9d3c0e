package model

import (
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a booking. A booking starts
// WAITING and is decided exactly once by the item owner.
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// Decide returns the status an owner decision leads to. ok is false when
// the booking has already left WAITING.
func (s BookingStatus) Decide(approved bool) (next BookingStatus, ok bool) {
	if s != StatusWaiting {
		return s, false
	}
	if approved {
		return StatusApproved, true
	}
	return StatusRejected, true
}

// Booking is a time-bounded reservation of an item by a user other than
// its owner. Item, booker and window never change after creation.
//
// Fields:
//
//	ID       – primary key identifier.
//	ItemID   – booked item.
//	BookerID – user who asked for the item.
//	Start    – beginning of the rental window.
//	End      – end of the rental window, strictly after Start.
//	Status   – WAITING, APPROVED or REJECTED.
type Booking struct {
	ID       uint64        // bookings.id
	ItemID   uint64        // bookings.item_id
	BookerID uint64        // bookings.booker_id
	Start    time.Time     // bookings.start_at
	End      time.Time     // bookings.end_at
	Status   BookingStatus // bookings.status
}

// BookingDetail is a booking together with its resolved item and booker,
// as returned by joined reads.
type BookingDetail struct {
	Booking Booking
	Item    Item
	Booker  User
}

// BookingState selects bookings in list queries, either by time window
// relative to now or by stored status.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateApproved BookingState = "APPROVED"
	StateRejected BookingState = "REJECTED"
	// StateCanceled is accepted but no booking is ever canceled.
	StateCanceled BookingState = "CANCELED"
)

var bookingStates = map[BookingState]bool{
	StateAll: true, StateCurrent: true, StatePast: true, StateFuture: true,
	StateWaiting: true, StateApproved: true, StateRejected: true, StateCanceled: true,
}

// ParseBookingState accepts a selector token in any letter case. An empty
// token means ALL.
func ParseBookingState(token string) (BookingState, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return StateAll, true
	}
	s := BookingState(strings.ToUpper(token))
	return s, bookingStates[s]
}

// Matches reports whether b is selected by s at the instant now. It is
// the in-memory counterpart of the SQL filter used by the repository.
func (s BookingState) Matches(b Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return !b.Start.After(now) && !b.End.Before(now)
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateWaiting, StateApproved, StateRejected, StateCanceled:
		return string(b.Status) == string(s)
	}
	return false
}
