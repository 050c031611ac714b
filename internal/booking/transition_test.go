package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/luxstay/hotel-reservation/internal/model"
)

func activeReservation() *model.Reservation {
	return &model.Reservation{
		ID:            1,
		RoomID:        1,
		CustomerID:    1,
		StartDate:     date(2024, 6, 1),
		EndDate:       date(2024, 6, 5),
		Status:        string(StatusActive),
		PaymentStatus: string(PaymentUnpaid),
	}
}

var during = time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC) // inside the stay

func TestCancelIdempotent(t *testing.T) {
	r := activeReservation()
	if changed := Cancel(r, "guest called", during); !changed {
		t.Fatalf("first cancel reported no change")
	}
	if r.Status != string(StatusCancelled) || r.CancelledAt == nil {
		t.Fatalf("cancel did not stamp status/cancelledAt: %+v", r)
	}
	firstStamp := *r.CancelledAt

	if changed := Cancel(r, "again", during.Add(time.Hour)); changed {
		t.Fatalf("second cancel must be a no-op")
	}
	if !r.CancelledAt.Equal(firstStamp) {
		t.Fatalf("second cancel moved cancelledAt")
	}
}

func TestCancelAppendsNotes(t *testing.T) {
	r := activeReservation()
	existing := "late arrival"
	r.Notes = &existing
	Cancel(r, "cancelled by phone", during)
	if r.Notes == nil || *r.Notes != "late arrival\ncancelled by phone" {
		t.Fatalf("notes = %v, want newline-joined append", r.Notes)
	}
}

func TestCancelFromCompleted(t *testing.T) {
	r := activeReservation()
	r.Status = string(StatusCompleted)
	if changed := Cancel(r, "", during); !changed {
		t.Fatalf("cancel must be allowed from any non-CANCELLED status")
	}
}

func TestPayIdempotent(t *testing.T) {
	r := activeReservation()
	changed, err := Pay(r)
	if err != nil || !changed {
		t.Fatalf("first pay: changed=%v err=%v", changed, err)
	}
	if r.PaymentStatus != string(PaymentPaid) {
		t.Fatalf("paymentStatus = %q", r.PaymentStatus)
	}
	changed, err = Pay(r)
	if err != nil {
		t.Fatalf("second pay errored: %v", err)
	}
	if changed {
		t.Fatalf("second pay must be a no-op success")
	}
}

func TestPayAfterCancelRejected(t *testing.T) {
	r := activeReservation()
	Cancel(r, "", during)
	if _, err := Pay(r); !errors.Is(err, ErrReservationCancelled) {
		t.Fatalf("pay after cancel: err = %v, want ErrReservationCancelled", err)
	}
	if r.PaymentStatus != string(PaymentUnpaid) {
		t.Fatalf("pay after cancel mutated paymentStatus to %q", r.PaymentStatus)
	}
}

func TestCheckInGuards(t *testing.T) {
	pol := Policy{EnforceCheckInAfterStart: true}

	r := activeReservation()
	if _, err := CheckIn(r, pol, time.Date(2024, 5, 30, 9, 0, 0, 0, time.UTC)); !errors.Is(err, ErrBeforeStartDate) {
		t.Fatalf("early check-in: err = %v, want ErrBeforeStartDate", err)
	}

	// Same early check-in passes when the policy is relaxed.
	r = activeReservation()
	if changed, err := CheckIn(r, Policy{}, time.Date(2024, 5, 30, 9, 0, 0, 0, time.UTC)); err != nil || !changed {
		t.Fatalf("relaxed early check-in: changed=%v err=%v", changed, err)
	}

	r = activeReservation()
	changed, err := CheckIn(r, pol, during)
	if err != nil || !changed {
		t.Fatalf("check-in: changed=%v err=%v", changed, err)
	}
	stamp := *r.CheckedInAt
	changed, err = CheckIn(r, pol, during.Add(time.Hour))
	if err != nil || changed {
		t.Fatalf("repeated check-in: changed=%v err=%v", changed, err)
	}
	if !r.CheckedInAt.Equal(stamp) {
		t.Fatalf("repeated check-in moved checkedInAt")
	}

	r = activeReservation()
	r.Status = string(StatusCancelled)
	if _, err := CheckIn(r, pol, during); !errors.Is(err, ErrNotActive) {
		t.Fatalf("check-in on cancelled: err = %v, want ErrNotActive", err)
	}
}

func TestCheckOutGuards(t *testing.T) {
	pol := Policy{}

	r := activeReservation()
	if _, err := CheckOut(r, pol, during); !errors.Is(err, ErrNotCheckedIn) {
		t.Fatalf("check-out without check-in: err = %v, want ErrNotCheckedIn", err)
	}

	r = activeReservation()
	if _, err := CheckIn(r, pol, during); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	changed, err := CheckOut(r, pol, during.Add(48*time.Hour))
	if err != nil || !changed {
		t.Fatalf("check-out: changed=%v err=%v", changed, err)
	}
	if r.Status != string(StatusCompleted) || r.CheckedOutAt == nil {
		t.Fatalf("check-out did not complete the reservation: %+v", r)
	}

	// Check-out is idempotent even though the reservation is now COMPLETED.
	changed, err = CheckOut(r, pol, during.Add(72*time.Hour))
	if err != nil || changed {
		t.Fatalf("repeated check-out: changed=%v err=%v", changed, err)
	}
}

func TestCheckOutBeforeEndPolicy(t *testing.T) {
	pol := Policy{EnforceCheckOutAfterEnd: true}
	r := activeReservation()
	if _, err := CheckIn(r, pol, during); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	if _, err := CheckOut(r, pol, during); !errors.Is(err, ErrBeforeEndDate) {
		t.Fatalf("early check-out under strict policy: err = %v, want ErrBeforeEndDate", err)
	}
	// On the end date itself the guard no longer applies.
	if changed, err := CheckOut(r, pol, date(2024, 6, 5).Add(10*time.Hour)); err != nil || !changed {
		t.Fatalf("check-out on end date: changed=%v err=%v", changed, err)
	}
}

func TestCancelledAcceptsNoFurtherTransitions(t *testing.T) {
	r := activeReservation()
	Cancel(r, "", during)
	if _, err := CheckIn(r, Policy{}, during); err == nil {
		t.Fatalf("check-in accepted on cancelled reservation")
	}
	if _, err := CheckOut(r, Policy{}, during); err == nil {
		t.Fatalf("check-out accepted on cancelled reservation")
	}
}
