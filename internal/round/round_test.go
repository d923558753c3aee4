package round_test

import (
	"testing"

	"github.com/temporal-go/tcore/internal/int128"
	"github.com/temporal-go/tcore/internal/round"
)

func TestInt128ToIncrementModes(t *testing.T) {
	// 90 minutes rounded to hours: {hours:1, minutes:30} = 5400s, increment
	// = 1 hour = 3600s. q=1, r=1800, divisor=3600, so |2r|==|divisor|: an
	// exact tie.
	dividend := int128.FromInt64(90 * 60 * 1_000_000_000)
	divisor := int64(3600 * 1_000_000_000)

	tests := []struct {
		mode round.Mode
		want int64
	}{
		{round.HalfExpand, 2},
		{round.HalfEven, 2}, // tie, 2 is even
		{round.Trunc, 1},
		{round.Ceil, 2},
		{round.Floor, 1},
		{round.Expand, 2},
		{round.HalfTrunc, 1},
		{round.HalfCeil, 2},
		{round.HalfFloor, 1},
	}

	for _, tt := range tests {
		got, err := round.Int128ToIncrement(dividend, divisor, tt.mode)
		if err != nil {
			t.Fatalf("mode %d: unexpected error: %v", tt.mode, err)
		}
		gotHours := mustDivExact(t, got, divisor)
		if gotHours != tt.want {
			t.Errorf("mode %d: got %d hours, want %d", tt.mode, gotHours, tt.want)
		}
	}
}

func TestInt128ToIncrementNegative(t *testing.T) {
	dividend := int128.FromInt64(-90 * 60 * 1_000_000_000)
	divisor := int64(3600 * 1_000_000_000)

	got, err := round.Int128ToIncrement(dividend, divisor, round.Trunc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gotHours := mustDivExact(t, got, divisor)
	if gotHours != -1 {
		t.Errorf("got %d, want -1 (truncate toward zero)", gotHours)
	}

	got, err = round.Int128ToIncrement(dividend, divisor, round.Floor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gotHours = mustDivExact(t, got, divisor)
	if gotHours != -2 {
		t.Errorf("got %d, want -2 (floor toward -inf)", gotHours)
	}
}

func TestInt128ToIncrementSmallDividendDecidesByMode(t *testing.T) {
	// Dividend magnitude strictly less than divisor: mode alone decides
	// between 0 and +-increment, never an early return of zero.
	dividend := int128.FromInt64(1)
	divisor := int64(10)

	got, err := round.Int128ToIncrement(dividend, divisor, round.Expand)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := got.Int64(); v != 10 {
		t.Errorf("Expand on small dividend: got %d, want 10", v)
	}

	got, err = round.Int128ToIncrement(dividend, divisor, round.Trunc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := got.Int64(); v != 0 {
		t.Errorf("Trunc on small dividend: got %d, want 0", v)
	}
}

func TestValidateIncrementRejectsZeroAndNonDivisor(t *testing.T) {
	if err := round.ValidateIncrement(round.Hour, 0); err == nil {
		t.Error("expected error for increment 0")
	}
	if err := round.ValidateIncrement(round.Hour, 5); err == nil {
		t.Error("expected error: 5 does not divide 24")
	}
	if err := round.ValidateIncrement(round.Hour, 8); err != nil {
		t.Errorf("8 divides 24, should be valid: %v", err)
	}
	if err := round.ValidateIncrement(round.Year, 2); err == nil {
		t.Error("expected error: Year has no natural period, increment must be 1")
	}
}

func TestRoundDurationSubDayFastPath(t *testing.T) {
	ns, err := newNanos(1, 30, 0)
	if err != nil {
		t.Fatal(err)
	}
	result, err := round.RoundDuration(round.DurationInput{
		TimeNanos:    ns,
		SmallestUnit: round.Hour,
		Increment:    1,
		Mode:         round.HalfExpand,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := result.TimeNanos.Int64(); got != int64(2*3600)*1_000_000_000 {
		t.Errorf("got %d ns, want 2 hours", got)
	}
}

func TestRoundDurationRequiresRelativeToForWeek(t *testing.T) {
	_, err := round.RoundDuration(round.DurationInput{
		Calendar:     round.CalendarFields{Weeks: 1},
		SmallestUnit: round.Week,
		Increment:    1,
		Mode:         round.Trunc,
	})
	if err == nil {
		t.Fatal("expected an error requiring relative-to for Week rounding")
	}
}

func mustDivExact(t *testing.T, v int128.Int128, divisor int64) int64 {
	t.Helper()
	q, r, ok := v.DivModI64(divisor)
	if !ok || r != 0 {
		t.Fatalf("expected exact division by %d, got remainder %d (ok=%v)", divisor, r, ok)
	}
	got, exact := q.Int64()
	if !exact {
		t.Fatalf("quotient does not fit in int64")
	}
	return got
}

func newNanos(hours, minutes, seconds int64) (int128.Int128, error) {
	total := hours*3_600_000_000_000 + minutes*60_000_000_000 + seconds*1_000_000_000
	return int128.FromInt64(total), nil
}
