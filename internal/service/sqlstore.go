package service

import (
	"context"
	"database/sql"

	"github.com/iliyamo/shareit/internal/database"
	"github.com/iliyamo/shareit/internal/repository"
)

// SQLStore is the MySQL-backed Store.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	if db == nil {
		panic("nil db")
	}
	return &SQLStore{db: db}
}

func reposOn(tx database.DBTX) Repos {
	return Repos{
		Users:    repository.NewUserRepo(tx),
		Items:    repository.NewItemRepo(tx),
		Requests: repository.NewRequestRepo(tx),
		Bookings: repository.NewBookingRepo(tx),
		Comments: repository.NewCommentRepo(tx),
	}
}

func (s *SQLStore) InTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	return database.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx database.DBTX) error {
		return fn(ctx, reposOn(tx))
	})
}

func (s *SQLStore) ReadOnly(ctx context.Context, fn func(ctx context.Context, r Repos) error) error {
	return database.ReadOnly(ctx, s.db, func(ctx context.Context, tx database.DBTX) error {
		return fn(ctx, reposOn(tx))
	})
}
