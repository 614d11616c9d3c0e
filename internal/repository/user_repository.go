package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/shareit/internal/database"
	"github.com/iliyamo/shareit/internal/model"
)

type UserRepo struct{ DB database.DBTX }

func NewUserRepo(db database.DBTX) *UserRepo { return &UserRepo{DB: db} }

// List returns every user ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name, email FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, email FROM users WHERE id = ? LIMIT 1", id).
		Scan(&u.ID, &u.Name, &u.Email)
	return u, noRows(err)
}

// Create inserts u and stores the assigned id back into it.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email) VALUES (?, ?)", u.Name, u.Email)
	if err != nil {
		if mysqlErrorNumber(err) == mysqlDuplicateEntry {
			return ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// Update overwrites name and email. MySQL reports zero affected rows for
// an unchanged row, so existence is the caller's concern.
func (r *UserRepo) Update(ctx context.Context, u model.User) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name = ?, email = ? WHERE id = ?", u.Name, u.Email, u.ID)
	if err != nil {
		if mysqlErrorNumber(err) == mysqlDuplicateEntry {
			return ErrEmailExists
		}
		return fmt.Errorf("update user %d: %w", u.ID, err)
	}
	return nil
}

// Delete removes a user. A foreign key refusal becomes ErrConflict.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		if mysqlErrorNumber(err) == mysqlRowIsReferenced {
			return ErrConflict
		}
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// HasReferences reports whether any item, request, booking or comment
// points at the user.
func (r *UserRepo) HasReferences(ctx context.Context, id uint64) (bool, error) {
	var found bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM items    WHERE owner_id     = ?)
		    OR EXISTS (SELECT 1 FROM requests WHERE requestor_id = ?)
		    OR EXISTS (SELECT 1 FROM bookings WHERE booker_id    = ?)
		    OR EXISTS (SELECT 1 FROM comments WHERE author_id    = ?)`,
		id, id, id, id).Scan(&found)
	return found, err
}
