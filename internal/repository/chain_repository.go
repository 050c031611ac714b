package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/luxstay/hotel-reservation/internal/model"
)

// ChainRepo encapsulates all database queries related to hotel chains.
type ChainRepo struct {
	db *sql.DB
}

// NewChainRepo constructs a ChainRepo with the provided DB handle.
func NewChainRepo(db *sql.DB) *ChainRepo { return &ChainRepo{db: db} }

const chainCols = `id, name, created_at, updated_at`

func scanChain(row interface{ Scan(...any) error }, c *model.HotelChain) error {
	return row.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
}

// Create inserts a new chain.  The generated id and timestamps are
// populated on the provided model.  A duplicate name yields ErrDuplicate.
func (r *ChainRepo) Create(ctx context.Context, c *model.HotelChain) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO hotel_chains (name) VALUES (?)`, c.Name)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return scanChain(r.db.QueryRowContext(ctx,
		`SELECT `+chainCols+` FROM hotel_chains WHERE id = ?`, c.ID), c)
}

// GetByID fetches one chain or ErrChainNotFound.
func (r *ChainRepo) GetByID(ctx context.Context, id uint64) (model.HotelChain, error) {
	var c model.HotelChain
	err := scanChain(r.db.QueryRowContext(ctx,
		`SELECT `+chainCols+` FROM hotel_chains WHERE id = ?`, id), &c)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrChainNotFound
	}
	return c, err
}

// List returns all chains ordered by name.
func (r *ChainRepo) List(ctx context.Context) ([]model.HotelChain, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+chainCols+` FROM hotel_chains ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.HotelChain{}
	for rows.Next() {
		var c model.HotelChain
		if err := scanChain(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateName renames a chain.  ErrChainNotFound when no row matched,
// ErrDuplicate when the new name is taken.
func (r *ChainRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE hotel_chains SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either the id is missing or the name was already equal; the
		// caller checked existence via GetByID beforehand.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a chain.  Hotels cascade via foreign key.
func (r *ChainRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hotel_chains WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrChainNotFound
	}
	return nil
}
