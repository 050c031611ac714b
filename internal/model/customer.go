package model

import "time"

// Customer identifies a guest.  Customers are created implicitly by the
// booking flow when no record matches the normalized (idNumber, email)
// pair; RegistrationDate is set once at creation and never mutated.
type Customer struct {
	ID               uint64    `json:"id"`               // customers.id
	FullName         string    `json:"fullName"`         // customers.full_name
	Address          string    `json:"address"`          // customers.address
	DateOfBirth      time.Time `json:"dateOfBirth"`      // customers.date_of_birth (DATE)
	IDNumber         string    `json:"idNumber"`         // customers.id_number (trimmed)
	IDType           string    `json:"idType"`           // customers.id_type (PASSPORT, DRIVER_LICENSE, NATIONAL_ID)
	Email            string    `json:"email"`            // customers.email (trimmed, lower-cased)
	RegistrationDate time.Time `json:"registrationDate"` // customers.registration_date (DATE, set once)
	CreatedAt        time.Time `json:"createdAt"`        // customers.created_at
	UpdatedAt        time.Time `json:"updatedAt"`        // customers.updated_at
}
