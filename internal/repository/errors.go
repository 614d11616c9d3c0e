// Package repository implements MySQL data access for shareit entities.
// Every repository works on a database.DBTX so callers decide whether the
// statements run inside a transaction. Failures the service layer must tell
// apart are reported through the sentinel errors below.
package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when the addressed row does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a user insert or update would duplicate
// another user's email.
var ErrEmailExists = errors.New("email already exists")

// ErrConflict is returned when a statement is refused because other rows
// still reference the target, such as deleting a user who owns items.
var ErrConflict = errors.New("conflict")

const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
)

func mysqlErrorNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

// noRows converts sql.ErrNoRows into ErrNotFound.
func noRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
