package booking

import (
	"testing"
	"time"

	"github.com/luxstay/hotel-reservation/internal/model"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"ACTIVE":      StatusActive,
		"active":      StatusActive,
		"  Cancelled": StatusCancelled,
		"completed ":  StatusCompleted,
	}
	for in, want := range cases {
		got, err := ParseStatus(in)
		if err != nil {
			t.Fatalf("ParseStatus(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseStatus(%q) = %q, want %q", in, got, want)
		}
	}
	for _, in := range []string{"", "PENDING", "ACTIV", "DONE"} {
		if _, err := ParseStatus(in); err == nil {
			t.Fatalf("ParseStatus(%q) accepted an unknown status", in)
		}
	}
}

func TestParsePaymentStatus(t *testing.T) {
	if got, err := ParsePaymentStatus(" paid "); err != nil || got != PaymentPaid {
		t.Fatalf("ParsePaymentStatus(paid) = %q, %v", got, err)
	}
	if _, err := ParsePaymentStatus("REFUNDED"); err == nil {
		t.Fatalf("unknown payment status accepted")
	}
}

func TestParseIDType(t *testing.T) {
	if got, err := ParseIDType("passport"); err != nil || got != "PASSPORT" {
		t.Fatalf("ParseIDType(passport) = %q, %v", got, err)
	}
	if _, err := ParseIDType("LIBRARY_CARD"); err == nil {
		t.Fatalf("unknown id type accepted")
	}
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

	r := &model.Reservation{Status: string(StatusActive), EndDate: date(2024, 6, 9)}
	if got := EffectiveStatus(r, now); got != StatusCompleted {
		t.Fatalf("past ACTIVE reservation reads %q, want COMPLETED", got)
	}
	if r.Status != string(StatusActive) {
		t.Fatalf("projection mutated the stored status to %q", r.Status)
	}

	// Ending today is not strictly in the past.
	r = &model.Reservation{Status: string(StatusActive), EndDate: date(2024, 6, 10)}
	if got := EffectiveStatus(r, now); got != StatusActive {
		t.Fatalf("reservation ending today reads %q, want ACTIVE", got)
	}

	r = &model.Reservation{Status: string(StatusCancelled), EndDate: date(2024, 6, 1)}
	if got := EffectiveStatus(r, now); got != StatusCancelled {
		t.Fatalf("cancelled reservation reads %q, want CANCELLED", got)
	}

	r = &model.Reservation{Status: string(StatusCompleted), EndDate: date(2024, 6, 20)}
	if got := EffectiveStatus(r, now); got != StatusCompleted {
		t.Fatalf("completed reservation reads %q, want COMPLETED", got)
	}
}
