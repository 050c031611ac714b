package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/luxstay/hotel-reservation/internal/model"
)

// Status enumerates reservation lifecycle states.  CANCELLED and
// COMPLETED are terminal.
type Status string

// PaymentStatus enumerates the one-way payment sub-state.
type PaymentStatus string

const (
	StatusActive    Status = "ACTIVE"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"

	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

// ParseStatus normalizes a free-form status string (trim, upper-case)
// and validates it against the enumerated set.  Unknown values are
// rejected so an invalid string never reaches business logic.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case StatusActive, StatusCancelled, StatusCompleted:
		return s, nil
	}
	return "", fmt.Errorf("invalid status %q", raw)
}

// ParsePaymentStatus normalizes and validates a payment status string.
func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	s := PaymentStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case PaymentUnpaid, PaymentPaid:
		return s, nil
	}
	return "", fmt.Errorf("invalid paymentStatus %q", raw)
}

// ParseIDType validates a customer identity document type.
func ParseIDType(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch s {
	case "PASSPORT", "DRIVER_LICENSE", "NATIONAL_ID":
		return s, nil
	}
	return "", fmt.Errorf("invalid idType %q", raw)
}

// EffectiveStatus is the read-time projection of a reservation's
// status: CANCELLED stays CANCELLED, an ACTIVE reservation whose end
// date lies strictly before today reads as COMPLETED, and everything
// else reads as stored.  The stored record is never mutated here.
func EffectiveStatus(r *model.Reservation, now time.Time) Status {
	stored := Status(r.Status)
	if stored == StatusCancelled {
		return StatusCancelled
	}
	if stored == StatusActive && DateOnly(r.EndDate).Before(DateOnly(now)) {
		return StatusCompleted
	}
	return stored
}
