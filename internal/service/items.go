package service

import (
	"context"
	"strings"
	"time"

	"github.com/iliyamo/shareit/internal/model"
)

const msgNotItemOwner = "only the owner can edit an item"

// ItemService is the catalog. It also owns commentary on items.
type ItemService struct {
	store Store
	clock Clock
}

func NewItemService(store Store, clock Clock) *ItemService {
	if store == nil {
		panic("nil store")
	}
	if clock == nil {
		clock = realClock{}
	}
	return &ItemService{store: store, clock: clock}
}

// ListByOwner returns a page of the owner's items, each with its last and
// next booking and its comments.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID uint64, page Page) ([]ItemView, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	var out []ItemView
	err := s.store.ReadOnly(ctx, func(ctx context.Context, r Repos) error {
		if _, err := getUser(ctx, r, ownerID); err != nil {
			return err
		}
		items, err := r.Items.ListByOwner(ctx, ownerID, page.Limit(), page.Offset())
		if err != nil {
			return err
		}
		out = make([]ItemView, 0, len(items))
		for _, it := range items {
			v, err := enrichItem(ctx, r, it, true, now)
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		return nil
	})
	return out, err
}

// Get returns an item with its comments. The owner also sees the last and
// next booking.
func (s *ItemService) Get(ctx context.Context, userID, itemID uint64) (ItemView, error) {
	now := s.clock.Now()
	var out ItemView
	err := s.store.ReadOnly(ctx, func(ctx context.Context, r Repos) error {
		it, err := r.Items.GetByID(ctx, itemID)
		if err != nil {
			return notFoundAs(err, msgItemNotFound)
		}
		out, err = enrichItem(ctx, r, it, it.OwnerID == userID, now)
		return err
	})
	return out, err
}

// Search matches text against name and description of available items.
// Blank text yields an empty page without a store round trip.
func (s *ItemService) Search(ctx context.Context, text string, page Page) ([]ItemView, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []ItemView{}, nil
	}
	var out []ItemView
	err := s.store.ReadOnly(ctx, func(ctx context.Context, r Repos) error {
		items, err := r.Items.Search(ctx, text, page.Limit(), page.Offset())
		out = toItemViews(items)
		return err
	})
	return out, err
}

func (s *ItemService) Create(ctx context.Context, ownerID uint64, in ItemInput) (ItemView, error) {
	if err := in.ValidateCreate(); err != nil {
		return ItemView{}, err
	}
	it := model.Item{
		Name:        strings.TrimSpace(*in.Name),
		Description: strings.TrimSpace(*in.Description),
		Available:   *in.Available,
		OwnerID:     ownerID,
		RequestID:   in.RequestID,
	}
	err := s.store.InTx(ctx, func(ctx context.Context, r Repos) error {
		if _, err := getUser(ctx, r, ownerID); err != nil {
			return err
		}
		if it.RequestID != nil {
			if _, err := r.Requests.GetByID(ctx, *it.RequestID); err != nil {
				return notFoundAs(err, msgRequestNotFound)
			}
		}
		return r.Items.Create(ctx, &it)
	})
	if err != nil {
		return ItemView{}, err
	}
	return toItemView(it), nil
}

// Edit applies the present fields of in. Only the owner may edit.
func (s *ItemService) Edit(ctx context.Context, ownerID, itemID uint64, in ItemInput) (ItemView, error) {
	if err := in.ValidatePatch(); err != nil {
		return ItemView{}, err
	}
	var out model.Item
	err := s.store.InTx(ctx, func(ctx context.Context, r Repos) error {
		if _, err := getUser(ctx, r, ownerID); err != nil {
			return err
		}
		it, err := r.Items.GetByIDForUpdate(ctx, itemID)
		if err != nil {
			return notFoundAs(err, msgItemNotFound)
		}
		if it.OwnerID != ownerID {
			return Forbidden(msgNotItemOwner)
		}
		if in.Name != nil {
			it.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			it.Description = strings.TrimSpace(*in.Description)
		}
		if in.Available != nil {
			it.Available = *in.Available
		}
		if err := r.Items.Update(ctx, it); err != nil {
			return err
		}
		out = it
		return nil
	})
	if err != nil {
		return ItemView{}, err
	}
	return toItemView(out), nil
}

// enrichItem attaches comments and, for the owner, last and next booking.
func enrichItem(ctx context.Context, r Repos, it model.Item, owner bool, now time.Time) (ItemView, error) {
	v := toItemView(it)
	if owner {
		bookings, err := r.Bookings.ListByItem(ctx, it.ID)
		if err != nil {
			return ItemView{}, err
		}
		last, next := lastAndNext(bookings, now)
		if last != nil {
			v.LastBooking = toBookingShort(*last)
		}
		if next != nil {
			v.NextBooking = toBookingShort(*next)
		}
	}
	comments, err := r.Comments.ListByItem(ctx, it.ID)
	if err != nil {
		return ItemView{}, err
	}
	v.Comments = toCommentViews(comments)
	return v, nil
}
