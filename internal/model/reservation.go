package model

import "time"

// Reservation books a single room for a customer over a half-open date
// range [StartDate, EndDate).  Two reservations on the same room whose
// status is not CANCELLED must never overlap under that rule; the
// booking engine enforces the invariant on every create and on every
// update that changes room or dates.
//
// Status and PaymentStatus are stored as upper-case strings validated
// against the allow-lists in the booking package before they ever reach
// business logic.
//
// Fields:
//  ID                  – primary key identifier.
//  RoomID              – room being booked; may be reassigned via update.
//  CustomerID          – guest holding the booking; immutable.
//  HandledByEmployeeID – staff member assigned to the booking, optional.
//  StartDate, EndDate  – calendar dates (DATE columns), EndDate > StartDate.
//  Status              – ACTIVE, CANCELLED or COMPLETED.
//  PaymentStatus       – UNPAID or PAID (one-way).
//  CheckedInAt         – stamped by check-in, nil until then.
//  CheckedOutAt        – stamped by check-out, nil until then.
//  CancelledAt         – stamped only on cancellation.
//  Notes               – free text; cancel appends rather than overwrites.
//  CreatedAt/UpdatedAt – audit timestamps maintained by the database.
type Reservation struct {
	ID                  uint64     `json:"id"`                  // reservations.id
	RoomID              uint64     `json:"roomId"`              // reservations.room_id
	CustomerID          uint64     `json:"customerId"`          // reservations.customer_id
	HandledByEmployeeID *uint64    `json:"handledByEmployeeId"` // reservations.handled_by_employee_id (nullable)
	StartDate           time.Time  `json:"startDate"`           // reservations.start_date (DATE)
	EndDate             time.Time  `json:"endDate"`             // reservations.end_date (DATE)
	Status              string     `json:"status"`              // reservations.status
	PaymentStatus       string     `json:"paymentStatus"`       // reservations.payment_status
	CheckedInAt         *time.Time `json:"checkedInAt"`         // reservations.checked_in_at (nullable)
	CheckedOutAt        *time.Time `json:"checkedOutAt"`        // reservations.checked_out_at (nullable)
	CancelledAt         *time.Time `json:"cancelledAt"`         // reservations.cancelled_at (nullable)
	Notes               *string    `json:"notes"`               // reservations.notes (nullable)
	CreatedAt           time.Time  `json:"createdAt"`           // reservations.created_at
	UpdatedAt           time.Time  `json:"updatedAt"`           // reservations.updated_at
}
