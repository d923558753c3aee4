package int128_test

import (
	"math"
	"testing"

	"github.com/temporal-go/tcore/internal/int128"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int64
		wantSum  int64
		overflow bool
	}{
		{"positive", 100, 200, 300, false},
		{"negative", -100, -200, -300, false},
		{"mixed", 100, -200, -100, false},
		{"zero", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum, ok := int128.FromInt64(tt.a).Add(int128.FromInt64(tt.b))
			if ok != !tt.overflow {
				t.Fatalf("overflow = %v, want %v", !ok, tt.overflow)
			}
			if !ok {
				return
			}
			got, exact := sum.Int64()
			if !exact || got != tt.wantSum {
				t.Errorf("got %d (exact=%v), want %d", got, exact, tt.wantSum)
			}
		})
	}
}

func TestAddOverflowsBeyondInt64(t *testing.T) {
	big := int128.FromInt64(math.MaxInt64)
	sum, ok := big.Add(int128.FromInt64(1))
	if !ok {
		t.Fatalf("Add should not overflow Int128 for MaxInt64+1")
	}
	if _, exact := sum.Int64(); exact {
		t.Errorf("sum should no longer fit in int64")
	}
}

func TestMulI64(t *testing.T) {
	tests := []struct {
		name string
		v, m int64
		want int64
	}{
		{"positive", 86400, 1_000_000_000, 86400_000_000_000},
		{"negative multiplicand", -86400, 1_000_000_000, -86400_000_000_000},
		{"negative multiplier", 86400, -1_000_000_000, -86400_000_000_000},
		{"both negative", -86400, -1_000_000_000, 86400_000_000_000},
		{"zero", 0, 1_000_000_000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prod, ok := int128.FromInt64(tt.v).MulI64(tt.m)
			if !ok {
				t.Fatalf("unexpected overflow")
			}
			got, exact := prod.Int64()
			if !exact || got != tt.want {
				t.Errorf("got %d (exact=%v), want %d", got, exact, tt.want)
			}
		})
	}
}

func TestDivModI64SignMatchesGo(t *testing.T) {
	tests := []struct {
		v, m     int64
		wantQ, r int64
	}{
		{7, 2, 3, 1},
		{-7, 2, -3, -1},
		{7, -2, -3, 1},
		{-7, -2, 3, -1},
	}

	for _, tt := range tests {
		quot, rem, ok := int128.FromInt64(tt.v).DivModI64(tt.m)
		if !ok {
			t.Fatalf("unexpected failure dividing %d by %d", tt.v, tt.m)
		}
		q, exact := quot.Int64()
		if !exact || q != tt.wantQ || rem != tt.r {
			t.Errorf("%d/%d = %d rem %d, want %d rem %d", tt.v, tt.m, q, rem, tt.wantQ, tt.r)
		}
	}
}

func TestDivModI64ByZeroFails(t *testing.T) {
	if _, _, ok := int128.FromInt64(1).DivModI64(0); ok {
		t.Errorf("division by zero should fail")
	}
}

func TestCmp(t *testing.T) {
	lo := int128.FromInt64(-5)
	hi := int128.FromInt64(5)
	if lo.Cmp(hi) != -1 {
		t.Errorf("expected lo < hi")
	}
	if hi.Cmp(lo) != 1 {
		t.Errorf("expected hi > lo")
	}
	if lo.Cmp(lo) != 0 {
		t.Errorf("expected lo == lo")
	}
}
