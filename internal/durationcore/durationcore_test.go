package durationcore_test

import (
	"testing"

	"github.com/temporal-go/tcore/internal/durationcore"
)

func TestNewNormalizedTimeDurationRoundTripsToUnits(t *testing.T) {
	n, err := durationcore.NewNormalizedTimeDuration(1, 30, 15, 500, 250, 125)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h, m, s, ms, us, ns := n.ToUnits()
	if h != 1 || m != 30 || s != 15 || ms != 500 || us != 250 || ns != 125 {
		t.Errorf("got %d %d %d %d %d %d", h, m, s, ms, us, ns)
	}
}

func TestNegativeDurationUnitsShareSign(t *testing.T) {
	n, err := durationcore.NewNormalizedTimeDuration(-1, -30, 0, 0, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h, m, s, _, _, _ := n.ToUnits()
	if h >= 0 || m >= 0 || s != 0 {
		t.Errorf("expected negative hours/minutes, got h=%d m=%d s=%d", h, m, s)
	}
}

func TestAddDaysAndDivModDay(t *testing.T) {
	n, err := durationcore.NewNormalizedTimeDuration(0, 0, 0, 0, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, err = n.AddDays(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	days, rem := n.DivModDay()
	if days != 3 || rem != 0 {
		t.Errorf("got days=%d rem=%d", days, rem)
	}
}

func TestDivModDayIsEuclidean(t *testing.T) {
	n, err := durationcore.NewNormalizedTimeDuration(-1, 0, 0, 0, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	days, rem := n.DivModDay()
	if days != -1 || rem != 23*3_600_000_000_000 {
		t.Errorf("got days=%d rem=%d", days, rem)
	}
}

func TestInvariantBRejectsOversizedDuration(t *testing.T) {
	_, err := durationcore.NewNormalizedTimeDuration(1<<62, 0, 0, 0, 0, 0)
	if err == nil {
		t.Fatal("expected overflow/range error")
	}
}

func TestDateDurationSignRequiresUniformUsage(t *testing.T) {
	d := durationcore.DateDuration{Years: 1, Months: 2}
	if d.Sign() != durationcore.Positive {
		t.Errorf("expected Positive, got %v", d.Sign())
	}
	if d.Negated().Sign() != durationcore.Negative {
		t.Errorf("expected Negative after negation")
	}
	if (durationcore.DateDuration{}).Sign() != durationcore.ZeroSign {
		t.Errorf("expected ZeroSign for empty duration")
	}
}
