package model

import "time"

// Comment is feedback left on an item by a user who has completed a
// rental of it. AuthorName is not a column; repositories fill it from
// the users table when reading.
type Comment struct {
	ID         uint64    // comments.id
	Text       string    // comments.text
	ItemID     uint64    // comments.item_id
	AuthorID   uint64    // comments.author_id
	AuthorName string    // users.name of the author
	Created    time.Time // comments.created
}
