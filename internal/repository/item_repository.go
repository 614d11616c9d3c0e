package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/iliyamo/shareit/internal/database"
	"github.com/iliyamo/shareit/internal/model"
)

type ItemRepo struct{ DB database.DBTX }

func NewItemRepo(db database.DBTX) *ItemRepo { return &ItemRepo{DB: db} }

const itemColumns = "id, name, description, available, owner_id, request_id"

func scanItem(s interface{ Scan(...any) error }) (model.Item, error) {
	var (
		it  model.Item
		req sql.NullInt64
	)
	if err := s.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &req); err != nil {
		return model.Item{}, err
	}
	if req.Valid {
		v := uint64(req.Int64)
		it.RequestID = &v
	}
	return it, nil
}

func (r *ItemRepo) queryItems(ctx context.Context, query string, args ...any) ([]model.Item, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID fetches an item by id.
func (r *ItemRepo) GetByID(ctx context.Context, id uint64) (model.Item, error) {
	it, err := scanItem(r.DB.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = ?", id))
	return it, noRows(err)
}

// GetByIDForUpdate fetches an item and locks its row until the
// surrounding transaction ends.
func (r *ItemRepo) GetByIDForUpdate(ctx context.Context, id uint64) (model.Item, error) {
	it, err := scanItem(r.DB.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM items WHERE id = ? FOR UPDATE", id))
	return it, noRows(err)
}

// Create inserts it and stores the assigned id back into it.
func (r *ItemRepo) Create(ctx context.Context, it *model.Item) error {
	var req sql.NullInt64
	if it.RequestID != nil {
		req = sql.NullInt64{Int64: int64(*it.RequestID), Valid: true}
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO items (name, description, available, owner_id, request_id) VALUES (?, ?, ?, ?, ?)",
		it.Name, it.Description, it.Available, it.OwnerID, req)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}

// Update writes the mutable columns of it.
func (r *ItemRepo) Update(ctx context.Context, it model.Item) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE items SET name = ?, description = ?, available = ? WHERE id = ?",
		it.Name, it.Description, it.Available, it.ID)
	if err != nil {
		return fmt.Errorf("update item %d: %w", it.ID, err)
	}
	return nil
}

// ListByOwner returns a page of the owner's items ordered by id.
func (r *ItemRepo) ListByOwner(ctx context.Context, ownerID uint64, limit, offset int) ([]model.Item, error) {
	return r.queryItems(ctx,
		"SELECT "+itemColumns+" FROM items WHERE owner_id = ? ORDER BY id LIMIT ? OFFSET ?",
		ownerID, limit, offset)
}

// ListByRequest returns the items listed in answer to a request.
func (r *ItemRepo) ListByRequest(ctx context.Context, requestID uint64) ([]model.Item, error) {
	return r.queryItems(ctx,
		"SELECT "+itemColumns+" FROM items WHERE request_id = ? ORDER BY id", requestID)
}

// Search returns available items whose name or description contains
// text, ignoring case.
func (r *ItemRepo) Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error) {
	pattern := "%" + escapeLike(strings.ToLower(text)) + "%"
	return r.queryItems(ctx,
		"SELECT "+itemColumns+" FROM items"+
			" WHERE available = TRUE AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)"+
			" ORDER BY id LIMIT ? OFFSET ?",
		pattern, pattern, limit, offset)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user text match literally inside a LIKE pattern.
func escapeLike(s string) string { return likeEscaper.Replace(s) }
