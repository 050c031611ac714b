// Package repository contains data access logic separated from HTTP
// handlers.  Each aggregate gets its own file; methods suffixed Tx run
// inside a caller-managed transaction and the caller commits or rolls
// back.  Sentinel errors defined here let handlers translate failure
// scenarios into HTTP status codes with errors.Is.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrChainNotFound is returned when a hotel chain id does not exist.
	ErrChainNotFound = errors.New("hotel chain not found")
	// ErrHotelNotFound is returned when a hotel id does not exist.
	ErrHotelNotFound = errors.New("hotel not found")
	// ErrRoomNotFound is returned when a room id does not exist.
	ErrRoomNotFound = errors.New("room not found")
	// ErrCustomerNotFound is returned when a customer id does not exist.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrEmployeeNotFound is returned when an employee id does not exist.
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrReservationNotFound is returned when a reservation id does not exist.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrEmailExists is returned when an employee email is already taken.
	ErrEmailExists = errors.New("email already exists")
	// ErrDuplicate is returned when an insert or update violates a
	// unique key (room number per hotel, chain name, ...).  Handlers
	// translate it into HTTP 409.
	ErrDuplicate = errors.New("duplicate record")
	// ErrLockWaitTimeout is returned when a row-lock wait exceeds the
	// configured bound; the request can be safely retried.
	ErrLockWaitTimeout = errors.New("lock wait timeout, retry the request")
)

// MySQL server error numbers this layer cares about.
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrLockWaitTimeout = 1205
	mysqlErrFKConstraint    = 1452
)

// isDuplicateKey reports whether err is a unique-key violation.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}

// isLockWaitTimeout reports whether err is an exhausted row-lock wait.
func isLockWaitTimeout(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrLockWaitTimeout
}

// isFKViolation reports whether err is a failed foreign key check,
// i.e. the referenced parent row does not exist.
func isFKViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrFKConstraint
}
