package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/luxstay/hotel-reservation/internal/model"
)

// RoomRepo encapsulates all database queries related to rooms,
// including the per-room allocation lock used by the booking flow.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the provided DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// DB exposes the underlying pool so handlers can open transactions.
func (r *RoomRepo) DB() *sql.DB { return r.db }

const roomCols = `id, hotel_id, room_number, price, capacity, extendable, amenities, problems_and_damages, image_url, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }, m *model.Room) error {
	var amenities, problems, img sql.NullString
	if err := row.Scan(&m.ID, &m.HotelID, &m.RoomNumber, &m.Price, &m.Capacity,
		&m.Extendable, &amenities, &problems, &img, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return err
	}
	if amenities.Valid {
		v := amenities.String
		m.Amenities = &v
	}
	if problems.Valid {
		v := problems.String
		m.ProblemsAndDamages = &v
	}
	if img.Valid {
		v := img.String
		m.ImageURL = &v
	}
	return nil
}

// Create inserts a room.  A duplicate (hotel_id, room_number) pair
// yields ErrDuplicate.
func (r *RoomRepo) Create(ctx context.Context, m *model.Room) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO rooms (hotel_id, room_number, price, capacity, extendable, amenities, problems_and_damages, image_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.HotelID, m.RoomNumber, m.Price, m.Capacity, m.Extendable,
		m.Amenities, m.ProblemsAndDamages, m.ImageURL)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		if isFKViolation(err) {
			return ErrHotelNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return scanRoom(r.db.QueryRowContext(ctx,
		`SELECT `+roomCols+` FROM rooms WHERE id = ?`, m.ID), m)
}

// GetByID fetches one room or ErrRoomNotFound.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	var m model.Room
	err := scanRoom(r.db.QueryRowContext(ctx,
		`SELECT `+roomCols+` FROM rooms WHERE id = ?`, id), &m)
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrRoomNotFound
	}
	return m, err
}

// GetByIDForUpdateTx loads a room under an exclusive row lock that is
// held until the enclosing transaction commits or rolls back.  This is
// the room allocation lock: every overlap-affecting write must load the
// target room through here before running the conflict check, so two
// concurrent bookings of the same room serialize instead of both
// observing "no conflict".  A second caller blocks (bounded by
// innodb_lock_wait_timeout) rather than failing; an exhausted wait
// surfaces as ErrLockWaitTimeout.
func (r *RoomRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Room, error) {
	var m model.Room
	err := scanRoom(tx.QueryRowContext(ctx,
		`SELECT `+roomCols+` FROM rooms WHERE id = ? FOR UPDATE`, id), &m)
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrRoomNotFound
	}
	if err != nil && isLockWaitTimeout(err) {
		return m, ErrLockWaitTimeout
	}
	return m, err
}

// ListByHotel returns all rooms of a hotel ordered by room number.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]model.Room, error) {
	return r.queryRooms(ctx,
		`SELECT `+roomCols+` FROM rooms WHERE hotel_id = ? ORDER BY room_number`, hotelID)
}

// List returns all rooms ordered by id.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	return r.queryRooms(ctx, `SELECT `+roomCols+` FROM rooms ORDER BY id`)
}

// Update writes the mutable room attributes.  The hotel reference never
// changes after creation.
func (r *RoomRepo) Update(ctx context.Context, m *model.Room) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET room_number = ?, price = ?, capacity = ?, extendable = ?, amenities = ?, problems_and_damages = ?, image_url = ? WHERE id = ?`,
		m.RoomNumber, m.Price, m.Capacity, m.Extendable,
		m.Amenities, m.ProblemsAndDamages, m.ImageURL, m.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	err = scanRoom(r.db.QueryRowContext(ctx,
		`SELECT `+roomCols+` FROM rooms WHERE id = ?`, m.ID), m)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRoomNotFound
	}
	return err
}

// Delete removes a room.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// AvailabilityFilter carries the structural filters for the
// availability search.  Zero values mean no filter.  MaxPrice is the
// decimal string form so no float rounding sneaks into comparisons.
type AvailabilityFilter struct {
	HotelID   uint64
	City      string
	ChainName string
	Capacity  int
	MaxPrice  string
}

// SearchAvailable returns rooms matching the structural filters while
// excluding the given room ids (the ones with a conflicting
// reservation).  When the exclusion set is empty the NOT IN clause is
// omitted entirely.  Results are ordered by room id so output is
// deterministic for a given input.
func (r *RoomRepo) SearchAvailable(ctx context.Context, f AvailabilityFilter, excludedIDs []uint64) ([]model.Room, error) {
	where := []string{}
	args := []any{}

	if f.HotelID != 0 {
		where = append(where, "r.hotel_id = ?")
		args = append(args, f.HotelID)
	}
	if f.City != "" {
		where = append(where, "LOWER(h.city) = LOWER(?)")
		args = append(args, f.City)
	}
	if f.ChainName != "" {
		where = append(where, "LOWER(c.name) = LOWER(?)")
		args = append(args, f.ChainName)
	}
	if f.Capacity > 0 {
		where = append(where, "r.capacity >= ?")
		args = append(args, f.Capacity)
	}
	if f.MaxPrice != "" {
		where = append(where, "r.price <= ?")
		args = append(args, f.MaxPrice)
	}
	if len(excludedIDs) > 0 {
		ph := strings.TrimSuffix(strings.Repeat("?,", len(excludedIDs)), ",")
		where = append(where, "r.id NOT IN ("+ph+")")
		for _, id := range excludedIDs {
			args = append(args, id)
		}
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}
	q := `SELECT r.id, r.hotel_id, r.room_number, r.price, r.capacity, r.extendable,
	             r.amenities, r.problems_and_damages, r.image_url, r.created_at, r.updated_at
	      FROM rooms r
	      JOIN hotels h ON h.id = r.hotel_id
	      JOIN hotel_chains c ON c.id = h.chain_id
	      WHERE ` + cond + `
	      ORDER BY r.id`

	return r.queryRooms(ctx, q, args...)
}

func (r *RoomRepo) queryRooms(ctx context.Context, q string, args ...any) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Room{}
	for rows.Next() {
		var m model.Room
		if err := scanRoom(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
