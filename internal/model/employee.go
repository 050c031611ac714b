package model

import "time"

// Employee is a staff member and doubles as a login account for the
// protected API surface.  SINNumber and PasswordHash are never
// serialized to JSON.
type Employee struct {
	ID           uint64    `json:"id"`        // employees.id
	FullName     string    `json:"fullName"`  // employees.full_name
	Address      string    `json:"address"`   // employees.address
	Position     string    `json:"position"`  // employees.position
	SINNumber    string    `json:"-"`         // employees.sin_number, not exposed via API
	Email        string    `json:"email"`     // employees.email (unique, lower-cased)
	PasswordHash string    `json:"-"`         // employees.password_hash (bcrypt)
	Role         string    `json:"role"`      // employees.role (MANAGER, FRONT_DESK)
	IsActive     bool      `json:"isActive"`  // employees.is_active
	CreatedAt    time.Time `json:"createdAt"` // employees.created_at
	UpdatedAt    time.Time `json:"updatedAt"` // employees.updated_at
}
