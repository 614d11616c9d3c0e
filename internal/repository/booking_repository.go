package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/iliyamo/shareit/internal/database"
	"github.com/iliyamo/shareit/internal/model"
)

type BookingRepo struct{ DB database.DBTX }

func NewBookingRepo(db database.DBTX) *BookingRepo { return &BookingRepo{DB: db} }

// detailSelect joins a booking with its item and booker.
const detailSelect = `
	SELECT b.id, b.item_id, b.booker_id, b.start_at, b.end_at, b.status,
	       i.id, i.name, i.description, i.available, i.owner_id, i.request_id,
	       u.id, u.name, u.email
	FROM bookings b
	JOIN items i ON i.id = b.item_id
	JOIN users u ON u.id = b.booker_id`

func scanDetail(s interface{ Scan(...any) error }) (model.BookingDetail, error) {
	var (
		d   model.BookingDetail
		req sql.NullInt64
	)
	err := s.Scan(
		&d.Booking.ID, &d.Booking.ItemID, &d.Booking.BookerID, &d.Booking.Start, &d.Booking.End, &d.Booking.Status,
		&d.Item.ID, &d.Item.Name, &d.Item.Description, &d.Item.Available, &d.Item.OwnerID, &req,
		&d.Booker.ID, &d.Booker.Name, &d.Booker.Email,
	)
	if err != nil {
		return model.BookingDetail{}, err
	}
	if req.Valid {
		v := uint64(req.Int64)
		d.Item.RequestID = &v
	}
	return d, nil
}

// Create inserts b and stores the assigned id back into it.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO bookings (item_id, booker_id, start_at, end_at, status) VALUES (?, ?, ?, ?, ?)",
		b.ItemID, b.BookerID, b.Start, b.End, string(b.Status))
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// GetByID fetches a booking with its item and booker.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.BookingDetail, error) {
	d, err := scanDetail(r.DB.QueryRowContext(ctx, detailSelect+" WHERE b.id = ?", id))
	return d, noRows(err)
}

// GetByIDForUpdate is GetByID that also locks the booking row.
func (r *BookingRepo) GetByIDForUpdate(ctx context.Context, id uint64) (model.BookingDetail, error) {
	d, err := scanDetail(r.DB.QueryRowContext(ctx, detailSelect+" WHERE b.id = ? FOR UPDATE OF b", id))
	return d, noRows(err)
}

// UpdateStatus moves a booking from one status to another. It reports
// false when the booking was no longer in from, so two deciders racing on
// the same booking cannot both win.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, from, to model.BookingStatus) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET status = ? WHERE id = ? AND status = ?",
		string(to), id, string(from))
	if err != nil {
		return false, fmt.Errorf("update booking %d status: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ListByItem returns every booking of an item ordered by start.
func (r *BookingRepo) ListByItem(ctx context.Context, itemID uint64) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, item_id, booker_id, start_at, end_at, status FROM bookings WHERE item_id = ? ORDER BY start_at",
		itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.ItemID, &b.BookerID, &b.Start, &b.End, &b.Status); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// ListForBooker returns a page of the booker's bookings matching state,
// latest start first.
func (r *BookingRepo) ListForBooker(ctx context.Context, bookerID uint64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingDetail, error) {
	return r.listDetails(ctx, "b.booker_id = ?", bookerID, state, now, limit, offset)
}

// ListForOwner returns a page of bookings on the owner's items matching
// state, latest start first.
func (r *BookingRepo) ListForOwner(ctx context.Context, ownerID uint64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingDetail, error) {
	return r.listDetails(ctx, "i.owner_id = ?", ownerID, state, now, limit, offset)
}

func (r *BookingRepo) listDetails(ctx context.Context, who string, id uint64, state model.BookingState, now time.Time, limit, offset int) ([]model.BookingDetail, error) {
	where := " WHERE " + who
	args := []any{id}
	if clause, extra := stateFilter(state, now); clause != "" {
		where += " AND " + clause
		args = append(args, extra...)
	}
	args = append(args, limit, offset)

	rows, err := r.DB.QueryContext(ctx,
		detailSelect+where+" ORDER BY b.start_at DESC, b.id DESC LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookingDetail{}
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// stateFilter is the SQL form of model.BookingState.Matches.
func stateFilter(state model.BookingState, now time.Time) (string, []any) {
	switch state {
	case model.StateCurrent:
		return "b.start_at <= ? AND b.end_at >= ?", []any{now, now}
	case model.StatePast:
		return "b.end_at < ?", []any{now}
	case model.StateFuture:
		return "b.start_at > ?", []any{now}
	case model.StateWaiting, model.StateApproved, model.StateRejected, model.StateCanceled:
		return "b.status = ?", []any{string(state)}
	}
	return "", nil
}

// HasCompleted reports whether the user holds an approved booking of the
// item that ended before now.
func (r *BookingRepo) HasCompleted(ctx context.Context, itemID, bookerID uint64, now time.Time) (bool, error) {
	var found bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE item_id = ? AND booker_id = ? AND status = ? AND end_at < ?
		)`, itemID, bookerID, string(model.StatusApproved), now).Scan(&found)
	return found, err
}
