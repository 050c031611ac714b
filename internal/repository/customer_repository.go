package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/luxstay/hotel-reservation/internal/model"
)

// CustomerRepo provides customer lookup, the find-or-create path used
// by the booking flow, and the plain CRUD used by staff.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo constructs a CustomerRepo with the provided DB handle.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerCols = `id, full_name, address, date_of_birth, id_number, id_type, email, registration_date, created_at, updated_at`

func scanCustomer(row interface{ Scan(...any) error }, c *model.Customer) error {
	return row.Scan(&c.ID, &c.FullName, &c.Address, &c.DateOfBirth,
		&c.IDNumber, &c.IDType, &c.Email, &c.RegistrationDate,
		&c.CreatedAt, &c.UpdatedAt)
}

// NormalizeIdentity applies the dedup normalization: id numbers are
// trimmed, emails are trimmed and lower-cased.
func NormalizeIdentity(idNumber, email string) (string, string) {
	return strings.TrimSpace(idNumber), strings.ToLower(strings.TrimSpace(email))
}

// FindOrCreateTx resolves a customer by the normalized
// (idNumber, email) pair, creating one when no match exists.  The
// unique key on (id_number, email) makes the create race-safe: when a
// concurrent identical request wins the insert, the duplicate-key error
// is retried as a lookup, so both callers observe the same row and no
// duplicate customer is ever created.  RegistrationDate is set once, at
// creation.
func (r *CustomerRepo) FindOrCreateTx(ctx context.Context, tx *sql.Tx, c *model.Customer) error {
	c.IDNumber, c.Email = NormalizeIdentity(c.IDNumber, c.Email)
	c.FullName = strings.TrimSpace(c.FullName)
	c.Address = strings.TrimSpace(c.Address)

	err := r.findByIdentityTx(ctx, tx, c.IDNumber, c.Email, c)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	regDate := time.Now().UTC().Format("2006-01-02")
	res, err := tx.ExecContext(ctx,
		`INSERT INTO customers (full_name, address, date_of_birth, id_number, id_type, email, registration_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.FullName, c.Address, c.DateOfBirth.Format("2006-01-02"),
		c.IDNumber, c.IDType, c.Email, regDate)
	if err != nil {
		if isDuplicateKey(err) {
			// Lost the race to an identical concurrent create.  The
			// winner committed after this transaction's read snapshot,
			// so a plain SELECT could miss the row; a locking read
			// always sees current data.
			return scanCustomer(tx.QueryRowContext(ctx,
				`SELECT `+customerCols+` FROM customers WHERE id_number = ? AND LOWER(email) = ? FOR SHARE`,
				c.IDNumber, c.Email), c)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return scanCustomer(tx.QueryRowContext(ctx,
		`SELECT `+customerCols+` FROM customers WHERE id = ?`, c.ID), c)
}

func (r *CustomerRepo) findByIdentityTx(ctx context.Context, tx *sql.Tx, idNumber, email string, c *model.Customer) error {
	return scanCustomer(tx.QueryRowContext(ctx,
		`SELECT `+customerCols+` FROM customers WHERE id_number = ? AND LOWER(email) = ?`,
		idNumber, email), c)
}

// FindByIdentity is the non-transactional lookup by normalized pair.
func (r *CustomerRepo) FindByIdentity(ctx context.Context, idNumber, email string) (model.Customer, error) {
	idNumber, email = NormalizeIdentity(idNumber, email)
	var c model.Customer
	err := scanCustomer(r.db.QueryRowContext(ctx,
		`SELECT `+customerCols+` FROM customers WHERE id_number = ? AND LOWER(email) = ?`,
		idNumber, email), &c)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrCustomerNotFound
	}
	return c, err
}

// GetByID fetches one customer or ErrCustomerNotFound.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (model.Customer, error) {
	var c model.Customer
	err := scanCustomer(r.db.QueryRowContext(ctx,
		`SELECT `+customerCols+` FROM customers WHERE id = ?`, id), &c)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrCustomerNotFound
	}
	return c, err
}

// GetByIDTx is GetByID inside a transaction; the booking flow uses it
// to resolve an explicit customerId within the same snapshot.
func (r *CustomerRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Customer, error) {
	var c model.Customer
	err := scanCustomer(tx.QueryRowContext(ctx,
		`SELECT `+customerCols+` FROM customers WHERE id = ?`, id), &c)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrCustomerNotFound
	}
	return c, err
}

// List returns all customers ordered by registration date, newest first.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+customerCols+` FROM customers ORDER BY registration_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update writes fullName, address and email.  A changed email must not
// collide with another customer holding the same id number; the unique
// key reports that as ErrDuplicate.  RegistrationDate is never touched.
func (r *CustomerRepo) Update(ctx context.Context, id uint64, fullName, address, email string) (model.Customer, error) {
	_, email = NormalizeIdentity("", email)
	_, err := r.db.ExecContext(ctx,
		`UPDATE customers SET full_name = ?, address = ?, email = ? WHERE id = ?`,
		strings.TrimSpace(fullName), strings.TrimSpace(address), email, id)
	if err != nil {
		if isDuplicateKey(err) {
			return model.Customer{}, ErrDuplicate
		}
		return model.Customer{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a customer.  The booking engine never calls this; it
// exists for the administrative surface only.
func (r *CustomerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
