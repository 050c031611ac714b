package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/luxstay/hotel-reservation/internal/model"
)

// HotelRepo encapsulates all database queries related to hotels.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the provided DB handle.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

const hotelCols = `id, chain_id, name, address, city, email, rating, image_url, created_at, updated_at`

func scanHotel(row interface{ Scan(...any) error }, h *model.Hotel) error {
	var (
		email  sql.NullString
		rating sql.NullInt64
		img    sql.NullString
	)
	if err := row.Scan(&h.ID, &h.ChainID, &h.Name, &h.Address, &h.City,
		&email, &rating, &img, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return err
	}
	if email.Valid {
		v := email.String
		h.Email = &v
	}
	if rating.Valid {
		v := int(rating.Int64)
		h.Rating = &v
	}
	if img.Valid {
		v := img.String
		h.ImageURL = &v
	}
	return nil
}

// Create inserts a hotel and reads the full row back so timestamps are
// populated.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO hotels (chain_id, name, address, city, email, rating, image_url) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		h.ChainID, h.Name, h.Address, h.City, h.Email, h.Rating, h.ImageURL)
	if err != nil {
		if isFKViolation(err) {
			return ErrChainNotFound
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return scanHotel(r.db.QueryRowContext(ctx,
		`SELECT `+hotelCols+` FROM hotels WHERE id = ?`, h.ID), h)
}

// GetByID fetches one hotel or ErrHotelNotFound.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (model.Hotel, error) {
	var h model.Hotel
	err := scanHotel(r.db.QueryRowContext(ctx,
		`SELECT `+hotelCols+` FROM hotels WHERE id = ?`, id), &h)
	if errors.Is(err, sql.ErrNoRows) {
		return h, ErrHotelNotFound
	}
	return h, err
}

// List returns hotels, optionally filtered by chain id and/or city
// (case-insensitive).  Zero values mean no filter.
func (r *HotelRepo) List(ctx context.Context, chainID uint64, city string) ([]model.Hotel, error) {
	q := `SELECT ` + hotelCols + ` FROM hotels WHERE 1=1`
	args := []any{}
	if chainID != 0 {
		q += ` AND chain_id = ?`
		args = append(args, chainID)
	}
	if city != "" {
		q += ` AND LOWER(city) = LOWER(?)`
		args = append(args, city)
	}
	q += ` ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Hotel{}
	for rows.Next() {
		var h model.Hotel
		if err := scanHotel(rows, &h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Update writes the mutable hotel fields.
func (r *HotelRepo) Update(ctx context.Context, h *model.Hotel) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE hotels SET name = ?, address = ?, city = ?, email = ?, rating = ?, image_url = ? WHERE id = ?`,
		h.Name, h.Address, h.City, h.Email, h.Rating, h.ImageURL, h.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, h.ID); err != nil {
			return err
		}
	}
	return scanHotel(r.db.QueryRowContext(ctx,
		`SELECT `+hotelCols+` FROM hotels WHERE id = ?`, h.ID), h)
}

// Delete removes a hotel; rooms cascade via foreign key.
func (r *HotelRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hotels WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHotelNotFound
	}
	return nil
}
