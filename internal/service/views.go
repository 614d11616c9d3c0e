package service

import (
	"time"

	"github.com/iliyamo/shareit/internal/model"
)

// Views are the JSON shapes returned to callers. They are built by the
// pure mapping functions below and never alias store-owned values.

type UserView struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingShortView struct {
	ID       uint64              `json:"id"`
	BookerID uint64              `json:"bookerId"`
	Start    model.LocalTime     `json:"start"`
	End      model.LocalTime     `json:"end"`
	Status   model.BookingStatus `json:"status"`
}

type CommentView struct {
	ID         uint64          `json:"id"`
	Text       string          `json:"text"`
	AuthorID   uint64          `json:"authorId"`
	AuthorName string          `json:"authorName"`
	Created    model.LocalTime `json:"created"`
}

type ItemView struct {
	ID          uint64            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Available   bool              `json:"available"`
	OwnerID     uint64            `json:"ownerId"`
	RequestID   *uint64           `json:"requestId"`
	LastBooking *BookingShortView `json:"lastBooking"`
	NextBooking *BookingShortView `json:"nextBooking"`
	Comments    []CommentView     `json:"comments"`
}

type BookingView struct {
	ID     uint64              `json:"id"`
	Start  model.LocalTime     `json:"start"`
	End    model.LocalTime     `json:"end"`
	Status model.BookingStatus `json:"status"`
	Booker UserView            `json:"booker"`
	Item   ItemView            `json:"item"`
}

type RequestView struct {
	ID          uint64          `json:"id"`
	Description string          `json:"description"`
	RequestorID uint64          `json:"requestorId"`
	Created     model.LocalTime `json:"created"`
	Items       []ItemView      `json:"items"`
}

func toUserView(u model.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toItemView(it model.Item) ItemView {
	v := ItemView{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		OwnerID:     it.OwnerID,
		Comments:    []CommentView{},
	}
	if it.RequestID != nil {
		id := *it.RequestID
		v.RequestID = &id
	}
	return v
}

func toItemViews(items []model.Item) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, it := range items {
		out = append(out, toItemView(it))
	}
	return out
}

func toBookingShort(b model.Booking) *BookingShortView {
	return &BookingShortView{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    model.NewLocalTime(b.Start),
		End:      model.NewLocalTime(b.End),
		Status:   b.Status,
	}
}

func toCommentView(c model.Comment) CommentView {
	return CommentView{
		ID:         c.ID,
		Text:       c.Text,
		AuthorID:   c.AuthorID,
		AuthorName: c.AuthorName,
		Created:    model.NewLocalTime(c.Created),
	}
}

func toCommentViews(cs []model.Comment) []CommentView {
	out := make([]CommentView, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCommentView(c))
	}
	return out
}

func toBookingView(d model.BookingDetail) BookingView {
	return BookingView{
		ID:     d.Booking.ID,
		Start:  model.NewLocalTime(d.Booking.Start),
		End:    model.NewLocalTime(d.Booking.End),
		Status: d.Booking.Status,
		Booker: toUserView(d.Booker),
		Item:   toItemView(d.Item),
	}
}

func toBookingViews(ds []model.BookingDetail) []BookingView {
	out := make([]BookingView, 0, len(ds))
	for _, d := range ds {
		out = append(out, toBookingView(d))
	}
	return out
}

func toRequestView(r model.Request, items []model.Item) RequestView {
	return RequestView{
		ID:          r.ID,
		Description: r.Description,
		RequestorID: r.RequestorID,
		Created:     model.NewLocalTime(r.Created),
		Items:       toItemViews(items),
	}
}

// lastAndNext picks, among non-rejected bookings, the latest one that
// started before now and the earliest one that starts after now.
func lastAndNext(bookings []model.Booking, now time.Time) (last, next *model.Booking) {
	for i := range bookings {
		b := bookings[i]
		if b.Status == model.StatusRejected {
			continue
		}
		switch {
		case b.Start.Before(now):
			if last == nil || b.Start.After(last.Start) {
				last = &b
			}
		case b.Start.After(now):
			if next == nil || b.Start.Before(next.Start) {
				next = &b
			}
		}
	}
	return last, next
}
