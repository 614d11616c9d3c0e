package model

import "time"

// Request is a "wanted item" post. It is immutable once created.
type Request struct {
	ID          uint64    // requests.id
	Description string    // requests.description
	RequestorID uint64    // requests.requestor_id
	Created     time.Time // requests.created
}
