package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/shareit/internal/database"
	"github.com/iliyamo/shareit/internal/model"
)

type RequestRepo struct{ DB database.DBTX }

func NewRequestRepo(db database.DBTX) *RequestRepo { return &RequestRepo{DB: db} }

func (r *RequestRepo) Create(ctx context.Context, req *model.Request) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO requests (description, requestor_id, created) VALUES (?, ?, ?)",
		req.Description, req.RequestorID, req.Created)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = uint64(id)
	return nil
}

func (r *RequestRepo) GetByID(ctx context.Context, id uint64) (model.Request, error) {
	var req model.Request
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, description, requestor_id, created FROM requests WHERE id = ?", id).
		Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created)
	return req, noRows(err)
}

// ListByRequestor returns the requestor's own requests, newest first.
func (r *RequestRepo) ListByRequestor(ctx context.Context, requestorID uint64) ([]model.Request, error) {
	return r.query(ctx,
		"SELECT id, description, requestor_id, created FROM requests"+
			" WHERE requestor_id = ? ORDER BY created DESC, id DESC",
		requestorID)
}

// ListExcludingRequestor returns a page of other users' requests, newest first.
func (r *RequestRepo) ListExcludingRequestor(ctx context.Context, requestorID uint64, limit, offset int) ([]model.Request, error) {
	return r.query(ctx,
		"SELECT id, description, requestor_id, created FROM requests"+
			" WHERE requestor_id <> ? ORDER BY created DESC, id DESC LIMIT ? OFFSET ?",
		requestorID, limit, offset)
}

func (r *RequestRepo) query(ctx context.Context, query string, args ...any) ([]model.Request, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Request{}
	for rows.Next() {
		var req model.Request
		if err := rows.Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
