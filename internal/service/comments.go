package service

import (
	"context"
	"strings"

	"github.com/iliyamo/shareit/internal/model"
)

const (
	msgOwnerComment  = "owner cannot comment own item"
	msgNeedCompleted = "must have completed a rental to comment"
)

// AddComment records feedback from a user whose approved booking of the
// item has already ended. Owners cannot comment on their own items.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID uint64, in CommentInput) (CommentView, error) {
	if err := in.Validate(); err != nil {
		return CommentView{}, err
	}
	now := s.clock.Now()
	var out model.Comment
	err := s.store.InTx(ctx, func(ctx context.Context, r Repos) error {
		author, err := getUser(ctx, r, authorID)
		if err != nil {
			return err
		}
		it, err := r.Items.GetByID(ctx, itemID)
		if err != nil {
			return notFoundAs(err, msgItemNotFound)
		}
		if it.OwnerID == authorID {
			return InvalidOperation(msgOwnerComment)
		}
		done, err := r.Bookings.HasCompleted(ctx, itemID, authorID, now)
		if err != nil {
			return err
		}
		if !done {
			return InvalidOperation(msgNeedCompleted)
		}
		c := model.Comment{
			Text:       strings.TrimSpace(in.Text),
			ItemID:     itemID,
			AuthorID:   authorID,
			AuthorName: author.Name,
			Created:    now,
		}
		if err := r.Comments.Create(ctx, &c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return CommentView{}, err
	}
	return toCommentView(out), nil
}
