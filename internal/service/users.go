package service

import (
	"context"
	"errors"
	"strings"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

const (
	msgEmailTaken = "email already in use"
	msgUserInUse  = "user has items, requests, bookings or comments"
)

// UserService is the identity directory.
type UserService struct {
	store Store
}

func NewUserService(store Store) *UserService {
	if store == nil {
		panic("nil store")
	}
	return &UserService{store: store}
}

func (s *UserService) List(ctx context.Context) ([]UserView, error) {
	var out []UserView
	err := s.store.ReadOnly(ctx, func(ctx context.Context, r Repos) error {
		users, err := r.Users.List(ctx)
		if err != nil {
			return err
		}
		out = make([]UserView, 0, len(users))
		for _, u := range users {
			out = append(out, toUserView(u))
		}
		return nil
	})
	return out, err
}

func (s *UserService) Get(ctx context.Context, id uint64) (UserView, error) {
	var out UserView
	err := s.store.ReadOnly(ctx, func(ctx context.Context, r Repos) error {
		u, err := getUser(ctx, r, id)
		out = toUserView(u)
		return err
	})
	return out, err
}

func (s *UserService) Create(ctx context.Context, in UserInput) (UserView, error) {
	if err := in.ValidateCreate(); err != nil {
		return UserView{}, err
	}
	u := model.User{Name: strings.TrimSpace(*in.Name), Email: strings.TrimSpace(*in.Email)}
	err := s.store.InTx(ctx, func(ctx context.Context, r Repos) error {
		return emailConflict(r.Users.Create(ctx, &u))
	})
	if err != nil {
		return UserView{}, err
	}
	return toUserView(u), nil
}

// Update applies the present fields of in to user id.
func (s *UserService) Update(ctx context.Context, id uint64, in UserInput) (UserView, error) {
	if err := in.ValidatePatch(); err != nil {
		return UserView{}, err
	}
	var out model.User
	err := s.store.InTx(ctx, func(ctx context.Context, r Repos) error {
		u, err := getUser(ctx, r, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			u.Name = strings.TrimSpace(*in.Name)
		}
		if in.Email != nil {
			u.Email = strings.TrimSpace(*in.Email)
		}
		if err := emailConflict(r.Users.Update(ctx, u)); err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return UserView{}, err
	}
	return toUserView(out), nil
}

// Delete removes a user nothing else refers to.
func (s *UserService) Delete(ctx context.Context, id uint64) error {
	return s.store.InTx(ctx, func(ctx context.Context, r Repos) error {
		if _, err := getUser(ctx, r, id); err != nil {
			return err
		}
		used, err := r.Users.HasReferences(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return Conflict(msgUserInUse)
		}
		switch err := r.Users.Delete(ctx, id); {
		case errors.Is(err, repository.ErrNotFound):
			return NotFound(msgUserNotFound)
		case errors.Is(err, repository.ErrConflict):
			return Conflict(msgUserInUse)
		default:
			return err
		}
	})
}

func emailConflict(err error) error {
	if errors.Is(err, repository.ErrEmailExists) {
		return Conflict(msgEmailTaken)
	}
	return err
}

// getUser loads a user, turning a missing row into NotFound. Every
// operation that acts on behalf of a caller starts with it.
func getUser(ctx context.Context, r Repos, id uint64) (model.User, error) {
	u, err := r.Users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, NotFound(msgUserNotFound)
	}
	return u, err
}

func notFoundAs(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return NotFound(msg)
	}
	return err
}
