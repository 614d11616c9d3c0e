package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shareit/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (name, email) VALUES (?, ?)")).
		WithArgs("Ann", "ann@example.com").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	u := model.User{Name: "Ann", Email: "ann@example.com"}
	err := NewUserRepo(db).Create(context.Background(), &u)
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestUserCreateAssignsID(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(7, 1))

	u := model.User{Name: "Ann", Email: "ann@example.com"}
	require.NoError(t, NewUserRepo(db).Create(context.Background(), &u))
	assert.Equal(t, uint64(7), u.ID)
}

func TestUserDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepo(db)

	mock.ExpectExec("DELETE FROM users").WithArgs(1).
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})
	require.ErrorIs(t, repo.Delete(context.Background(), 1), ErrConflict)

	mock.ExpectExec("DELETE FROM users").WithArgs(2).WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Delete(context.Background(), 2), ErrNotFound)

	mock.ExpectExec("DELETE FROM users").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 3))
}

func TestUserGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT id, name, email FROM users").WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}))

	_, err := NewUserRepo(db).GetByID(context.Background(), 9)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestItemScanNullableRequest(t *testing.T) {
	db, mock := newMock(t)
	cols := []string{"id", "name", "description", "available", "owner_id", "request_id"}
	mock.ExpectQuery("FROM items WHERE request_id").WithArgs(4).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "Drill", "Cordless drill", true, 2, 4).
			AddRow(2, "Saw", "Hand saw", false, 3, nil))

	items, err := NewItemRepo(db).ListByRequest(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].RequestID)
	assert.Equal(t, uint64(4), *items[0].RequestID)
	assert.Nil(t, items[1].RequestID)
	assert.False(t, items[1].Available)
}

func TestItemSearchEscapesPattern(t *testing.T) {
	db, mock := newMock(t)
	cols := []string{"id", "name", "description", "available", "owner_id", "request_id"}
	mock.ExpectQuery(regexp.QuoteMeta("WHERE available = TRUE AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)")).
		WithArgs(`%100\%\_drill%`, `%100\%\_drill%`, 10, 20).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(5, "Drill 100%_x", "x", true, 1, nil))

	items, err := NewItemRepo(db).Search(context.Background(), "100%_Drill", 10, 20)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

var detailCols = []string{
	"b.id", "b.item_id", "b.booker_id", "b.start_at", "b.end_at", "b.status",
	"i.id", "i.name", "i.description", "i.available", "i.owner_id", "i.request_id",
	"u.id", "u.name", "u.email",
}

func TestBookingUpdateStatusIsConditional(t *testing.T) {
	db, mock := newMock(t)
	repo := NewBookingRepo(db)
	q := regexp.QuoteMeta("UPDATE bookings SET status = ? WHERE id = ? AND status = ?")

	mock.ExpectExec(q).WithArgs("APPROVED", 1, "WAITING").WillReturnResult(sqlmock.NewResult(0, 1))
	ok, err := repo.UpdateStatus(context.Background(), 1, model.StatusWaiting, model.StatusApproved)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(q).WithArgs("REJECTED", 1, "WAITING").WillReturnResult(sqlmock.NewResult(0, 0))
	ok, err = repo.UpdateStatus(context.Background(), 1, model.StatusWaiting, model.StatusRejected)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBookingGetByIDForUpdateLocks(t *testing.T) {
	db, mock := newMock(t)
	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.Local)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE b.id = ? FOR UPDATE OF b")).WithArgs(3).
		WillReturnRows(sqlmock.NewRows(detailCols).AddRow(
			3, 8, 5, start, start.Add(time.Hour), "WAITING",
			8, "Tent", "Two person tent", true, 2, nil,
			5, "Bob", "bob@example.com"))

	d, err := NewBookingRepo(db).GetByIDForUpdate(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, model.StatusWaiting, d.Booking.Status)
	assert.Equal(t, uint64(2), d.Item.OwnerID)
	assert.Equal(t, "Bob", d.Booker.Name)
	assert.Equal(t, start, d.Booking.Start)
}

func TestBookingGetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM bookings b").WithArgs(3).WillReturnRows(sqlmock.NewRows(detailCols))

	_, err := NewBookingRepo(db).GetByID(context.Background(), 3)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBookingListFilters(t *testing.T) {
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.Local)
	cases := []struct {
		name  string
		list  func(r *BookingRepo) ([]model.BookingDetail, error)
		where string
		args  []driver.Value
	}{
		{
			name: "booker all",
			list: func(r *BookingRepo) ([]model.BookingDetail, error) {
				return r.ListForBooker(context.Background(), 5, model.StateAll, now, 10, 0)
			},
			where: "WHERE b.booker_id = ? ORDER BY",
			args:  []driver.Value{5, 10, 0},
		},
		{
			name: "booker current",
			list: func(r *BookingRepo) ([]model.BookingDetail, error) {
				return r.ListForBooker(context.Background(), 5, model.StateCurrent, now, 10, 20)
			},
			where: "WHERE b.booker_id = ? AND b.start_at <= ? AND b.end_at >= ?",
			args:  []driver.Value{5, now, now, 10, 20},
		},
		{
			name: "owner past",
			list: func(r *BookingRepo) ([]model.BookingDetail, error) {
				return r.ListForOwner(context.Background(), 2, model.StatePast, now, 5, 5)
			},
			where: "WHERE i.owner_id = ? AND b.end_at < ?",
			args:  []driver.Value{2, now, 5, 5},
		},
		{
			name: "owner waiting",
			list: func(r *BookingRepo) ([]model.BookingDetail, error) {
				return r.ListForOwner(context.Background(), 2, model.StateWaiting, now, 5, 0)
			},
			where: "WHERE i.owner_id = ? AND b.status = ?",
			args:  []driver.Value{2, "WAITING", 5, 0},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMock(t)
			mock.ExpectQuery(regexp.QuoteMeta(tc.where)).WithArgs(tc.args...).
				WillReturnRows(sqlmock.NewRows(detailCols))
			got, err := tc.list(NewBookingRepo(db))
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestBookingHasCompleted(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.Local)
	mock.ExpectQuery("SELECT EXISTS").WithArgs(8, 5, "APPROVED", now).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := NewBookingRepo(db).HasCompleted(context.Background(), 8, 5, now)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCommentListByItemJoinsAuthor(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2026, 1, 2, 10, 0, 0, 0, time.Local)
	mock.ExpectQuery("JOIN users u ON u.id = c.author_id").WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "item_id", "author_id", "name", "created"}).
			AddRow(1, "Great tent", 8, 5, "Bob", created))

	comments, err := NewCommentRepo(db).ListByItem(context.Background(), 8)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Bob", comments[0].AuthorName)
}

func TestRequestListExcludingRequestor(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2026, 1, 2, 10, 0, 0, 0, time.Local)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE requestor_id <> ? ORDER BY created DESC, id DESC LIMIT ? OFFSET ?")).
		WithArgs(1, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "description", "requestor_id", "created"}).
			AddRow(4, "Need a ladder", 2, created))

	reqs, err := NewRequestRepo(db).ListExcludingRequestor(context.Background(), 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, uint64(2), reqs[0].RequestorID)
}
