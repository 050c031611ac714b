package booking

import (
	"math/rand"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlapsHalfOpenBoundary(t *testing.T) {
	// A stay ending 2024-05-10 and one starting 2024-05-10 share a wall,
	// not a night.
	if Overlaps(date(2024, 5, 5), date(2024, 5, 10), date(2024, 5, 10), date(2024, 5, 12)) {
		t.Fatalf("touching endpoints must not overlap")
	}
	if Overlaps(date(2024, 5, 10), date(2024, 5, 12), date(2024, 5, 5), date(2024, 5, 10)) {
		t.Fatalf("touching endpoints must not overlap (reversed)")
	}
	// Starting one day earlier does conflict.
	if !Overlaps(date(2024, 5, 5), date(2024, 5, 10), date(2024, 5, 9), date(2024, 5, 12)) {
		t.Fatalf("ranges sharing the night of 2024-05-09 must overlap")
	}
	// Containment and identity.
	if !Overlaps(date(2024, 5, 1), date(2024, 5, 31), date(2024, 5, 10), date(2024, 5, 11)) {
		t.Fatalf("contained range must overlap")
	}
	if !Overlaps(date(2024, 5, 1), date(2024, 5, 5), date(2024, 5, 1), date(2024, 5, 5)) {
		t.Fatalf("identical ranges must overlap")
	}
}

// TestOverlapsAgainstReference cross-checks the predicate against a
// brute-force day-set intersection over randomly generated intervals.
func TestOverlapsAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := date(2024, 1, 1)

	nights := func(s, e time.Time) map[int]bool {
		out := map[int]bool{}
		for d := s; d.Before(e); d = d.AddDate(0, 0, 1) {
			out[int(d.Sub(base).Hours()/24)] = true
		}
		return out
	}

	for i := 0; i < 2000; i++ {
		aStart := base.AddDate(0, 0, rng.Intn(60))
		aEnd := aStart.AddDate(0, 0, 1+rng.Intn(14))
		bStart := base.AddDate(0, 0, rng.Intn(60))
		bEnd := bStart.AddDate(0, 0, 1+rng.Intn(14))

		want := false
		bNights := nights(bStart, bEnd)
		for n := range nights(aStart, aEnd) {
			if bNights[n] {
				want = true
				break
			}
		}
		if got := Overlaps(aStart, aEnd, bStart, bEnd); got != want {
			t.Fatalf("Overlaps(%v,%v,%v,%v) = %v, reference says %v",
				aStart, aEnd, bStart, bEnd, got, want)
		}
	}
}

func TestValidateRange(t *testing.T) {
	if err := ValidateRange(date(2024, 6, 1), date(2024, 6, 2)); err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}
	if err := ValidateRange(date(2024, 6, 1), date(2024, 6, 1)); err == nil {
		t.Fatalf("zero-length range must be rejected")
	}
	if err := ValidateRange(date(2024, 6, 2), date(2024, 6, 1)); err == nil {
		t.Fatalf("inverted range must be rejected")
	}
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2024, 6, 1, 23, 59, 58, 0, time.UTC)
	if got := DateOnly(ts); !got.Equal(date(2024, 6, 1)) {
		t.Fatalf("DateOnly(%v) = %v", ts, got)
	}
}
