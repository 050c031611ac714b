package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/luxstay/hotel-reservation/internal/model"
	"github.com/luxstay/hotel-reservation/internal/utils"
)

// EmployeeRepo persists staff members.  Employees double as login
// accounts: alongside the HR fields they carry a unique email, a bcrypt
// password hash and a role used by the JWT middleware.
type EmployeeRepo struct {
	db *sql.DB
}

// NewEmployeeRepo constructs an EmployeeRepo with the provided DB handle.
func NewEmployeeRepo(db *sql.DB) *EmployeeRepo { return &EmployeeRepo{db: db} }

const employeeCols = `id, full_name, address, position, sin_number, email, password_hash, role, is_active, created_at, updated_at`

func scanEmployee(row interface{ Scan(...any) error }, e *model.Employee) error {
	return row.Scan(&e.ID, &e.FullName, &e.Address, &e.Position, &e.SINNumber,
		&e.Email, &e.PasswordHash, &e.Role, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
}

// Create inserts an employee with a freshly hashed password and returns
// its id.  A taken email yields ErrEmailExists.
func (r *EmployeeRepo) Create(ctx context.Context, e *model.Employee, password string, bcryptCost int) error {
	e.Email = strings.ToLower(strings.TrimSpace(e.Email))
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (full_name, address, position, sin_number, email, password_hash, role)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.FullName, e.Address, e.Position, e.SINNumber, e.Email, hash, e.Role)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return scanEmployee(r.db.QueryRowContext(ctx,
		`SELECT `+employeeCols+` FROM employees WHERE id = ?`, e.ID), e)
}

// GetByEmail fetches an employee by normalized email for login.
func (r *EmployeeRepo) GetByEmail(ctx context.Context, email string) (model.Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var e model.Employee
	err := scanEmployee(r.db.QueryRowContext(ctx,
		`SELECT `+employeeCols+` FROM employees WHERE email = ? LIMIT 1`, email), &e)
	if errors.Is(err, sql.ErrNoRows) {
		return e, ErrEmployeeNotFound
	}
	return e, err
}

// GetByID fetches one employee or ErrEmployeeNotFound.
func (r *EmployeeRepo) GetByID(ctx context.Context, id uint64) (model.Employee, error) {
	var e model.Employee
	err := scanEmployee(r.db.QueryRowContext(ctx,
		`SELECT `+employeeCols+` FROM employees WHERE id = ?`, id), &e)
	if errors.Is(err, sql.ErrNoRows) {
		return e, ErrEmployeeNotFound
	}
	return e, err
}

// ExistsTx reports whether an employee id exists, inside a transaction.
// The booking flow uses it to validate handledByEmployeeId references.
func (r *EmployeeRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM employees WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// List returns all employees ordered by full name.
func (r *EmployeeRepo) List(ctx context.Context) ([]model.Employee, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+employeeCols+` FROM employees ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Employee{}
	for rows.Next() {
		var e model.Employee
		if err := scanEmployee(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update writes the mutable staff fields (not credentials).
func (r *EmployeeRepo) Update(ctx context.Context, e *model.Employee) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE employees SET full_name = ?, address = ?, position = ?, role = ?, is_active = ? WHERE id = ?`,
		e.FullName, e.Address, e.Position, e.Role, e.IsActive, e.ID)
	if err != nil {
		return err
	}
	got, err := r.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	*e = got
	return nil
}

// Delete removes an employee.  Reservations referencing it keep their
// row with the reference set NULL by the foreign key.
func (r *EmployeeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}
