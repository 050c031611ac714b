package booking

import (
	"errors"
	"time"

	"github.com/luxstay/hotel-reservation/internal/model"
)

// Transition guard errors.  Handlers translate each of these into an
// HTTP 409 response.
var (
	ErrReservationCancelled = errors.New("reservation is cancelled")
	ErrNotActive            = errors.New("only ACTIVE reservations can be transitioned")
	ErrNotCheckedIn         = errors.New("cannot check out before checking in")
	ErrBeforeStartDate      = errors.New("cannot check in before the reservation start date")
	ErrBeforeEndDate        = errors.New("cannot check out before the reservation end date")
)

// Policy carries the configurable transition rules.  The check-in rule
// is enforced by default; the check-out rule is off by default.
type Policy struct {
	EnforceCheckInAfterStart bool // reject check-in while today < startDate
	EnforceCheckOutAfterEnd  bool // reject check-out while today < endDate
}

// Cancel transitions a reservation to CANCELLED.  Cancelling an
// already-cancelled reservation is a no-op and reports changed=false.
// Supplied notes are appended to any existing notes, newline-joined.
func Cancel(r *model.Reservation, notes string, now time.Time) (changed bool) {
	if Status(r.Status) == StatusCancelled {
		return false
	}
	r.Status = string(StatusCancelled)
	ts := now.UTC()
	r.CancelledAt = &ts
	if notes != "" {
		if r.Notes != nil && *r.Notes != "" {
			joined := *r.Notes + "\n" + notes
			r.Notes = &joined
		} else {
			n := notes
			r.Notes = &n
		}
	}
	return true
}

// Pay marks a reservation PAID.  Paying twice is a no-op success;
// paying a cancelled reservation is a conflict.
func Pay(r *model.Reservation) (changed bool, err error) {
	if Status(r.Status) == StatusCancelled {
		return false, ErrReservationCancelled
	}
	if PaymentStatus(r.PaymentStatus) == PaymentPaid {
		return false, nil
	}
	r.PaymentStatus = string(PaymentPaid)
	return true, nil
}

// CheckIn stamps CheckedInAt.  The reservation must be ACTIVE; an
// already-checked-in reservation is returned unchanged.  When the
// policy enforces it, checking in before the start date is a conflict.
func CheckIn(r *model.Reservation, pol Policy, now time.Time) (changed bool, err error) {
	if Status(r.Status) != StatusActive {
		return false, ErrNotActive
	}
	if r.CheckedInAt != nil {
		return false, nil
	}
	if pol.EnforceCheckInAfterStart && DateOnly(now).Before(DateOnly(r.StartDate)) {
		return false, ErrBeforeStartDate
	}
	ts := now.UTC()
	r.CheckedInAt = &ts
	return true, nil
}

// CheckOut stamps CheckedOutAt and completes the reservation.  The
// idempotency check runs first so a COMPLETED reservation that was
// already checked out answers with the unchanged record rather than a
// conflict.  Otherwise the reservation must be ACTIVE and checked in.
func CheckOut(r *model.Reservation, pol Policy, now time.Time) (changed bool, err error) {
	if r.CheckedOutAt != nil {
		return false, nil
	}
	if Status(r.Status) != StatusActive {
		return false, ErrNotActive
	}
	if r.CheckedInAt == nil {
		return false, ErrNotCheckedIn
	}
	if pol.EnforceCheckOutAfterEnd && DateOnly(now).Before(DateOnly(r.EndDate)) {
		return false, ErrBeforeEndDate
	}
	ts := now.UTC()
	r.CheckedOutAt = &ts
	r.Status = string(StatusCompleted)
	return true, nil
}
