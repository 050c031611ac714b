package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/luxstay/hotel-reservation/internal/model"
)

// ReservationRepo provides persistence for reservations, including the
// overlap queries backing the booking conflict check and the
// availability search.  All booking-affecting writes happen through the
// *Tx variants inside a transaction that already holds the room lock.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying pool so handlers can open transactions.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationCols = `id, room_id, customer_id, handled_by_employee_id, start_date, end_date,
	status, payment_status, checked_in_at, checked_out_at, cancelled_at, notes, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }, m *model.Reservation) error {
	var (
		empID      sql.NullInt64
		checkedIn  sql.NullTime
		checkedOut sql.NullTime
		cancelled  sql.NullTime
		notes      sql.NullString
	)
	if err := row.Scan(&m.ID, &m.RoomID, &m.CustomerID, &empID,
		&m.StartDate, &m.EndDate, &m.Status, &m.PaymentStatus,
		&checkedIn, &checkedOut, &cancelled, &notes,
		&m.CreatedAt, &m.UpdatedAt); err != nil {
		return err
	}
	if empID.Valid {
		v := uint64(empID.Int64)
		m.HandledByEmployeeID = &v
	}
	if checkedIn.Valid {
		v := checkedIn.Time
		m.CheckedInAt = &v
	}
	if checkedOut.Valid {
		v := checkedOut.Time
		m.CheckedOutAt = &v
	}
	if cancelled.Valid {
		v := cancelled.Time
		m.CancelledAt = &v
	}
	if notes.Valid {
		v := notes.String
		m.Notes = &v
	}
	return nil
}

const dateFmt = "2006-01-02"

// CreateTx inserts a new reservation within the provided transaction
// and reads the row back so generated id and timestamps are populated.
// The caller holds the room lock and has already run the overlap check.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, m *model.Reservation) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO reservations (room_id, customer_id, handled_by_employee_id, start_date, end_date, status, payment_status, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RoomID, m.CustomerID, m.HandledByEmployeeID,
		m.StartDate.Format(dateFmt), m.EndDate.Format(dateFmt),
		m.Status, m.PaymentStatus, m.Notes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return scanReservation(tx.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id = ?`, m.ID), m)
}

// FindOverlappingTx enumerates non-cancelled reservations of a room
// whose half-open [start_date, end_date) range intersects the candidate
// range.  Status is compared case-insensitively.  excludeID skips the
// reservation being updated; pass 0 on create.  The locking read makes
// the verdict reflect current committed data even when the enclosing
// transaction's snapshot predates acquisition of the room lock.
func (r *ReservationRepo) FindOverlappingTx(ctx context.Context, tx *sql.Tx, roomID uint64, startDate, endDate time.Time, excludeID uint64) ([]model.Reservation, error) {
	q := `SELECT ` + reservationCols + ` FROM reservations
	      WHERE room_id = ?
	        AND UPPER(status) <> 'CANCELLED'
	        AND start_date < ?
	        AND end_date > ?`
	args := []any{roomID, endDate.Format(dateFmt), startDate.Format(dateFmt)}
	if excludeID != 0 {
		q += ` AND id <> ?`
		args = append(args, excludeID)
	}
	q += ` FOR SHARE`
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		if isLockWaitTimeout(err) {
			return nil, ErrLockWaitTimeout
		}
		return nil, err
	}
	defer rows.Close()
	out := []model.Reservation{}
	for rows.Next() {
		var m model.Reservation
		if err := scanReservation(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ExistsOverlappingTx is the boolean form of FindOverlappingTx.
func (r *ReservationRepo) ExistsOverlappingTx(ctx context.Context, tx *sql.Tx, roomID uint64, startDate, endDate time.Time, excludeID uint64) (bool, error) {
	conflicts, err := r.FindOverlappingTx(ctx, tx, roomID, startDate, endDate, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}

// BookedRoomIDs returns the ids of rooms holding at least one
// non-cancelled reservation overlapping the given range.  Availability
// search runs this read-only, outside any lock; a stale answer is
// acceptable because the booking attempt itself re-checks under the
// room lock.
func (r *ReservationRepo) BookedRoomIDs(ctx context.Context, startDate, endDate time.Time) ([]uint64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT room_id FROM reservations
		 WHERE UPPER(status) <> 'CANCELLED' AND start_date < ? AND end_date > ?`,
		endDate.Format(dateFmt), startDate.Format(dateFmt))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetByID fetches one reservation or ErrReservationNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (model.Reservation, error) {
	var m model.Reservation
	err := scanReservation(r.db.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id = ?`, id), &m)
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrReservationNotFound
	}
	return m, err
}

// GetByIDTx is GetByID inside the caller's transaction.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Reservation, error) {
	var m model.Reservation
	err := scanReservation(tx.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id = ?`, id), &m)
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrReservationNotFound
	}
	return m, err
}

// GetByIDForUpdateTx loads a reservation with an exclusive row lock.
// Every read-modify-write of reservation state goes through this so
// concurrent transitions serialize instead of overwriting each other
// from stale snapshots.
func (r *ReservationRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Reservation, error) {
	var m model.Reservation
	err := scanReservation(tx.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id = ? FOR UPDATE`, id), &m)
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrReservationNotFound
	}
	if isLockWaitTimeout(err) {
		return m, ErrLockWaitTimeout
	}
	return m, err
}

// ListFilter narrows the reservation listing.  Zero values mean no
// filter; FromDate/ToDate are an inclusive window over start_date and
// are validated as a pair by the handler.
type ListFilter struct {
	RoomID        uint64
	CustomerID    uint64
	Status        string
	PaymentStatus string
	FromDate      time.Time
	ToDate        time.Time
}

// List returns reservations matching the filter, newest stay first.
func (r *ReservationRepo) List(ctx context.Context, f ListFilter) ([]model.Reservation, error) {
	where := []string{}
	args := []any{}
	if f.RoomID != 0 {
		where = append(where, "room_id = ?")
		args = append(args, f.RoomID)
	}
	if f.CustomerID != 0 {
		where = append(where, "customer_id = ?")
		args = append(args, f.CustomerID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.PaymentStatus != "" {
		where = append(where, "payment_status = ?")
		args = append(args, f.PaymentStatus)
	}
	if !f.FromDate.IsZero() {
		where = append(where, "start_date >= ?", "start_date <= ?")
		args = append(args, f.FromDate.Format(dateFmt), f.ToDate.Format(dateFmt))
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE `+cond+` ORDER BY start_date DESC, id DESC`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Reservation{}
	for rows.Next() {
		var m model.Reservation
		if err := scanReservation(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// UpdateTx writes the full mutable state of a reservation inside the
// caller's transaction.  created_at/updated_at stay database-managed.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, m *model.Reservation) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE reservations
		 SET room_id = ?, customer_id = ?, handled_by_employee_id = ?, start_date = ?, end_date = ?,
		     status = ?, payment_status = ?, checked_in_at = ?, checked_out_at = ?, cancelled_at = ?, notes = ?
		 WHERE id = ?`,
		m.RoomID, m.CustomerID, m.HandledByEmployeeID,
		m.StartDate.Format(dateFmt), m.EndDate.Format(dateFmt),
		m.Status, m.PaymentStatus, m.CheckedInAt, m.CheckedOutAt, m.CancelledAt, m.Notes,
		m.ID)
	if err != nil {
		if isLockWaitTimeout(err) {
			return ErrLockWaitTimeout
		}
		return err
	}
	return scanReservation(tx.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id = ?`, m.ID), m)
}

// Delete removes a reservation outright.  This is the administrative
// hard delete; the state machine is bypassed deliberately.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrReservationNotFound
	}
	return nil
}
