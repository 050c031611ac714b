// Package booking implements the reservation core: the half-open
// interval overlap predicate, the status and payment enumerations with
// their normalizing parsers, the transition guards for cancel, pay,
// check-in and check-out, and the derived effective status.  Everything
// in this package is pure; persistence and locking live in the
// repository layer and handlers coordinate the two.
package booking

import (
	"errors"
	"time"
)

// ErrInvalidDateRange is returned when a reservation or search range
// does not satisfy endDate > startDate.  Handlers translate it into an
// HTTP 400 response.
var ErrInvalidDateRange = errors.New("endDate must be after startDate")

// Overlaps reports whether the half-open date ranges
// [existingStart, existingEnd) and [candidateStart, candidateEnd)
// intersect.  Touching endpoints do not overlap: a stay ending on day D
// is compatible with one starting on day D.
func Overlaps(existingStart, existingEnd, candidateStart, candidateEnd time.Time) bool {
	return candidateStart.Before(existingEnd) && candidateEnd.After(existingStart)
}

// ValidateRange checks the endDate > startDate invariant shared by
// reservation writes and availability search.
func ValidateRange(startDate, endDate time.Time) error {
	if !endDate.After(startDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// DateOnly truncates a timestamp to its UTC calendar date.  Reservation
// dates are stored as DATE columns, so all comparisons against "today"
// go through this.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
