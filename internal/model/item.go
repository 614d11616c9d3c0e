package model

// Item is a thing a user offers for borrowing. The owner and the
// originating request are fixed at creation; only the owner may change
// name, description and availability. Items are never deleted.
//
// Fields:
//
//	ID          – primary key identifier.
//	Name        – short name, never blank.
//	Description – free text, never blank.
//	Available   – whether new bookings are accepted.
//	OwnerID     – user who listed the item.
//	RequestID   – request this item was listed in answer to (nullable).
type Item struct {
	ID          uint64  // items.id
	Name        string  // items.name
	Description string  // items.description
	Available   bool    // items.available
	OwnerID     uint64  // items.owner_id
	RequestID   *uint64 // items.request_id (nullable)
}
