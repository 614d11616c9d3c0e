package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/shareit/internal/database"
	"github.com/iliyamo/shareit/internal/model"
)

type CommentRepo struct{ DB database.DBTX }

func NewCommentRepo(db database.DBTX) *CommentRepo { return &CommentRepo{DB: db} }

// Create inserts c. AuthorName is carried through untouched.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (text, item_id, author_id, created) VALUES (?, ?, ?, ?)",
		c.Text, c.ItemID, c.AuthorID, c.Created)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// ListByItem returns the item's comments oldest first, with author names.
func (r *CommentRepo) ListByItem(ctx context.Context, itemID uint64) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.item_id = ?
		ORDER BY c.created, c.id`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
