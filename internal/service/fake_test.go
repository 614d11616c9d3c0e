package service

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/queue"
	"github.com/iliyamo/shareit/internal/repository"
)

// memStore is an in-memory Store. Each unit of work holds the lock for its
// whole duration and is rolled back by restoring a snapshot on error.
type memStore struct {
	mu     sync.Mutex
	calls  int
	nextID uint64

	users    map[uint64]model.User
	items    map[uint64]model.Item
	requests map[uint64]model.Request
	bookings map[uint64]model.Booking
	comments map[uint64]model.Comment

	// beforeStatusUpdate runs inside UpdateStatus to simulate a concurrent
	// writer that committed first.
	beforeStatusUpdate func(id uint64)
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uint64]model.User{},
		items:    map[uint64]model.Item{},
		requests: map[uint64]model.Request{},
		bookings: map[uint64]model.Booking{},
		comments: map[uint64]model.Comment{},
	}
}

func (m *memStore) id() uint64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) run(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	users, items, requests := maps.Clone(m.users), maps.Clone(m.items), maps.Clone(m.requests)
	bookings, comments, nextID := maps.Clone(m.bookings), maps.Clone(m.comments), m.nextID

	err := fn(ctx, Repos{
		Users:    memUsers{m},
		Items:    memItems{m},
		Requests: memRequests{m},
		Bookings: memBookings{m},
		Comments: memComments{m},
	})
	if err != nil {
		m.users, m.items, m.requests = users, items, requests
		m.bookings, m.comments, m.nextID = bookings, comments, nextID
	}
	return err
}

func (m *memStore) InTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	return m.run(ctx, fn)
}

func (m *memStore) ReadOnly(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	return m.run(ctx, fn)
}

func (m *memStore) storeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// seed helpers bypass the services to set up state such as past bookings.

func (m *memStore) addUser(name, email string) model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := model.User{ID: m.id(), Name: name, Email: email}
	m.users[u.ID] = u
	return u
}

func (m *memStore) addItem(ownerID uint64, name, desc string, available bool) model.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	it := model.Item{ID: m.id(), Name: name, Description: desc, Available: available, OwnerID: ownerID}
	m.items[it.ID] = it
	return it
}

func (m *memStore) addBooking(itemID, bookerID uint64, start, end time.Time, status model.BookingStatus) model.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := model.Booking{ID: m.id(), ItemID: itemID, BookerID: bookerID, Start: start, End: end, Status: status}
	m.bookings[b.ID] = b
	return b
}

func (m *memStore) booking(id uint64) model.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id]
}

func pageOf[T any](xs []T, limit, offset int) []T {
	if offset >= len(xs) {
		return []T{}
	}
	end := min(offset+limit, len(xs))
	return xs[offset:end]
}

func sortedValues[T any](m map[uint64]T) []T {
	keys := make([]uint64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

type memUsers struct{ m *memStore }

func (s memUsers) List(context.Context) ([]model.User, error) {
	return sortedValues(s.m.users), nil
}

func (s memUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := s.m.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (s memUsers) emailTaken(email string, except uint64) bool {
	for _, u := range s.m.users {
		if u.ID != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (s memUsers) Create(_ context.Context, u *model.User) error {
	if s.emailTaken(u.Email, 0) {
		return repository.ErrEmailExists
	}
	u.ID = s.m.id()
	s.m.users[u.ID] = *u
	return nil
}

func (s memUsers) Update(_ context.Context, u model.User) error {
	if s.emailTaken(u.Email, u.ID) {
		return repository.ErrEmailExists
	}
	s.m.users[u.ID] = u
	return nil
}

func (s memUsers) Delete(_ context.Context, id uint64) error {
	if _, ok := s.m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.m.users, id)
	return nil
}

func (s memUsers) HasReferences(_ context.Context, id uint64) (bool, error) {
	for _, it := range s.m.items {
		if it.OwnerID == id {
			return true, nil
		}
	}
	for _, r := range s.m.requests {
		if r.RequestorID == id {
			return true, nil
		}
	}
	for _, b := range s.m.bookings {
		if b.BookerID == id {
			return true, nil
		}
	}
	for _, c := range s.m.comments {
		if c.AuthorID == id {
			return true, nil
		}
	}
	return false, nil
}

type memItems struct{ m *memStore }

func (s memItems) GetByID(_ context.Context, id uint64) (model.Item, error) {
	it, ok := s.m.items[id]
	if !ok {
		return model.Item{}, repository.ErrNotFound
	}
	return it, nil
}

func (s memItems) GetByIDForUpdate(ctx context.Context, id uint64) (model.Item, error) {
	return s.GetByID(ctx, id)
}

func (s memItems) Create(_ context.Context, it *model.Item) error {
	it.ID = s.m.id()
	s.m.items[it.ID] = *it
	return nil
}

func (s memItems) Update(_ context.Context, it model.Item) error {
	s.m.items[it.ID] = it
	return nil
}

func (s memItems) filter(keep func(model.Item) bool) []model.Item {
	out := []model.Item{}
	for _, it := range sortedValues(s.m.items) {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func (s memItems) ListByOwner(_ context.Context, ownerID uint64, limit, offset int) ([]model.Item, error) {
	return pageOf(s.filter(func(it model.Item) bool { return it.OwnerID == ownerID }), limit, offset), nil
}

func (s memItems) ListByRequest(_ context.Context, requestID uint64) ([]model.Item, error) {
	return s.filter(func(it model.Item) bool { return it.RequestID != nil && *it.RequestID == requestID }), nil
}

func (s memItems) Search(_ context.Context, text string, limit, offset int) ([]model.Item, error) {
	text = strings.ToLower(text)
	return pageOf(s.filter(func(it model.Item) bool {
		return it.Available && (strings.Contains(strings.ToLower(it.Name), text) ||
			strings.Contains(strings.ToLower(it.Description), text))
	}), limit, offset), nil
}

type memRequests struct{ m *memStore }

func (s memRequests) Create(_ context.Context, r *model.Request) error {
	r.ID = s.m.id()
	s.m.requests[r.ID] = *r
	return nil
}

func (s memRequests) GetByID(_ context.Context, id uint64) (model.Request, error) {
	r, ok := s.m.requests[id]
	if !ok {
		return model.Request{}, repository.ErrNotFound
	}
	return r, nil
}

func (s memRequests) newestFirst(keep func(model.Request) bool) []model.Request {
	out := []model.Request{}
	for _, r := range s.m.requests {
		if keep(r) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b model.Request) int {
		if c := b.Created.Compare(a.Created); c != 0 {
			return c
		}
		return int(b.ID) - int(a.ID)
	})
	return out
}

func (s memRequests) ListByRequestor(_ context.Context, requestorID uint64) ([]model.Request, error) {
	return s.newestFirst(func(r model.Request) bool { return r.RequestorID == requestorID }), nil
}

func (s memRequests) ListExcludingRequestor(_ context.Context, requestorID uint64, limit, offset int) ([]model.Request, error) {
	return pageOf(s.newestFirst(func(r model.Request) bool { return r.RequestorID != requestorID }), limit, offset), nil
}

type memBookings struct{ m *memStore }

func (s memBookings) Create(_ context.Context, b *model.Booking) error {
	b.ID = s.m.id()
	s.m.bookings[b.ID] = *b
	return nil
}

func (s memBookings) detail(b model.Booking) model.BookingDetail {
	return model.BookingDetail{Booking: b, Item: s.m.items[b.ItemID], Booker: s.m.users[b.BookerID]}
}

func (s memBookings) GetByID(_ context.Context, id uint64) (model.BookingDetail, error) {
	b, ok := s.m.bookings[id]
	if !ok {
		return model.BookingDetail{}, repository.ErrNotFound
	}
	return s.detail(b), nil
}

func (s memBookings) GetByIDForUpdate(ctx context.Context, id uint64) (model.BookingDetail, error) {
	return s.GetByID(ctx, id)
}

func (s memBookings) UpdateStatus(_ context.Context, id uint64, from, to model.BookingStatus) (bool, error) {
	if s.m.beforeStatusUpdate != nil {
		s.m.beforeStatusUpdate(id)
	}
	b, ok := s.m.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	s.m.bookings[id] = b
	return true, nil
}

func (s memBookings) ListByItem(_ context.Context, itemID uint64) ([]model.Booking, error) {
	out := []model.Booking{}
	for _, b := range sortedValues(s.m.bookings) {
		if b.ItemID == itemID {
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Booking) int { return a.Start.Compare(b.Start) })
	return out, nil
}

func (s memBookings) list(keep func(model.BookingDetail) bool, state model.BookingState, now time.Time, limit, offset int) []model.BookingDetail {
	out := []model.BookingDetail{}
	for _, b := range s.m.bookings {
		d := s.detail(b)
		if keep(d) && state.Matches(b, now) {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b model.BookingDetail) int {
		if c := b.Booking.Start.Compare(a.Booking.Start); c != 0 {
			return c
		}
		return int(b.Booking.ID) - int(a.Booking.ID)
	})
	return pageOf(out, limit, offset)
}

func (s memBookings) ListForBooker(_ context.Context, bookerID uint64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingDetail, error) {
	return s.list(func(d model.BookingDetail) bool { return d.Booking.BookerID == bookerID }, state, now, limit, offset), nil
}

func (s memBookings) ListForOwner(_ context.Context, ownerID uint64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingDetail, error) {
	return s.list(func(d model.BookingDetail) bool { return d.Item.OwnerID == ownerID }, state, now, limit, offset), nil
}

func (s memBookings) HasCompleted(_ context.Context, itemID, bookerID uint64, now time.Time) (bool, error) {
	for _, b := range s.m.bookings {
		if b.ItemID == itemID && b.BookerID == bookerID && b.Status == model.StatusApproved && b.End.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

type memComments struct{ m *memStore }

func (s memComments) Create(_ context.Context, c *model.Comment) error {
	c.ID = s.m.id()
	stored := *c
	stored.AuthorName = ""
	s.m.comments[c.ID] = stored
	return nil
}

func (s memComments) ListByItem(_ context.Context, itemID uint64) ([]model.Comment, error) {
	out := []model.Comment{}
	for _, c := range sortedValues(s.m.comments) {
		if c.ItemID == itemID {
			c.AuthorName = s.m.users[c.AuthorID].Name
			out = append(out, c)
		}
	}
	return out, nil
}

// recordedEvents collects published booking events.
type recordedEvents struct {
	mu     sync.Mutex
	events []queue.BookingEvent
	err    error
}

func (r *recordedEvents) PublishBooking(_ context.Context, ev queue.BookingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recordedEvents) types() []queue.BookingEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]queue.BookingEventType, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.Local)

func fixedClock(t time.Time) Clock { return ClockFunc(func() time.Time { return t }) }

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "error: %v", err)
}

func ptr[T any](v T) *T { return &v }

func window(start, end time.Time) (*model.LocalTime, *model.LocalTime) {
	s, e := model.NewLocalTime(start), model.NewLocalTime(end)
	return &s, &e
}
