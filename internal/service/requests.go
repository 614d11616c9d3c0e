package service

import (
	"context"
	"strings"

	"github.com/iliyamo/shareit/internal/model"
)

// RequestService is the request board.
type RequestService struct {
	store Store
	clock Clock
}

func NewRequestService(store Store, clock Clock) *RequestService {
	if store == nil {
		panic("nil store")
	}
	if clock == nil {
		clock = realClock{}
	}
	return &RequestService{store: store, clock: clock}
}

func (s *RequestService) Create(ctx context.Context, requestorID uint64, in RequestInput) (RequestView, error) {
	if err := in.Validate(); err != nil {
		return RequestView{}, err
	}
	req := model.Request{
		Description: strings.TrimSpace(in.Description),
		RequestorID: requestorID,
		Created:     s.clock.Now(),
	}
	err := s.store.InTx(ctx, func(ctx context.Context, r Repos) error {
		if _, err := getUser(ctx, r, requestorID); err != nil {
			return err
		}
		return r.Requests.Create(ctx, &req)
	})
	if err != nil {
		return RequestView{}, err
	}
	return toRequestView(req, nil), nil
}

// ListOwn returns the caller's requests, newest first, with their items.
func (s *RequestService) ListOwn(ctx context.Context, requestorID uint64) ([]RequestView, error) {
	var out []RequestView
	err := s.store.ReadOnly(ctx, func(ctx context.Context, r Repos) error {
		if _, err := getUser(ctx, r, requestorID); err != nil {
			return err
		}
		reqs, err := r.Requests.ListByRequestor(ctx, requestorID)
		if err != nil {
			return err
		}
		out, err = withItems(ctx, r, reqs)
		return err
	})
	return out, err
}

// ListOthers returns a page of other users' requests, newest first.
func (s *RequestService) ListOthers(ctx context.Context, userID uint64, page Page) ([]RequestView, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	var out []RequestView
	err := s.store.ReadOnly(ctx, func(ctx context.Context, r Repos) error {
		if _, err := getUser(ctx, r, userID); err != nil {
			return err
		}
		reqs, err := r.Requests.ListExcludingRequestor(ctx, userID, page.Limit(), page.Offset())
		if err != nil {
			return err
		}
		out, err = withItems(ctx, r, reqs)
		return err
	})
	return out, err
}

func (s *RequestService) Get(ctx context.Context, userID, requestID uint64) (RequestView, error) {
	var out RequestView
	err := s.store.ReadOnly(ctx, func(ctx context.Context, r Repos) error {
		if _, err := getUser(ctx, r, userID); err != nil {
			return err
		}
		req, err := r.Requests.GetByID(ctx, requestID)
		if err != nil {
			return notFoundAs(err, msgRequestNotFound)
		}
		items, err := r.Items.ListByRequest(ctx, req.ID)
		if err != nil {
			return err
		}
		out = toRequestView(req, items)
		return nil
	})
	return out, err
}

func withItems(ctx context.Context, r Repos, reqs []model.Request) ([]RequestView, error) {
	out := make([]RequestView, 0, len(reqs))
	for _, req := range reqs {
		items, err := r.Items.ListByRequest(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toRequestView(req, items))
	}
	return out, nil
}
