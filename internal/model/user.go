package model

// User is a row of the `users` table. Email is unique across users.
//
// Fields:
//
//	ID    – primary key identifier, assigned by the store.
//	Name  – display name, never blank.
//	Email – unique, syntactically valid email address.
type User struct {
	ID    uint64 // users.id
	Name  string // users.name
	Email string // users.email
}
