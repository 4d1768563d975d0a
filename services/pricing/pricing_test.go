package pricing

import (
	"testing"

	"pitchbook/models"
)

func TestTotal(t *testing.T) {
	t.Parallel()

	c := Calculator{}

	t.Run("sums session prices", func(t *testing.T) {
		sessions := []models.Session{
			{ID: "s1", Price: 20.00},
			{ID: "s2", Price: 25.00},
		}
		total, err := c.Total(sessions)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if total != 45.00 {
			t.Fatalf("expected total 45.00, got %v", total)
		}
	})

	t.Run("handles fractional prices without float drift", func(t *testing.T) {
		sessions := []models.Session{
			{ID: "s1", Price: 0.10},
			{ID: "s2", Price: 0.20},
		}
		total, err := c.Total(sessions)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if total != 0.30 {
			t.Fatalf("expected total 0.30, got %v", total)
		}
	})

	t.Run("rejects empty session list", func(t *testing.T) {
		if _, err := c.Total(nil); err != ErrNoSessions {
			t.Fatalf("expected ErrNoSessions, got %v", err)
		}
	})
}

func TestShares(t *testing.T) {
	t.Parallel()

	c := Calculator{}

	t.Run("splits evenly when divisible", func(t *testing.T) {
		shares, err := c.Shares(45.00, 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(shares) != 2 {
			t.Fatalf("expected 2 shares, got %d", len(shares))
		}
		for i, s := range shares {
			if s != 2250 {
				t.Fatalf("share %d: expected 2250 minor units, got %d", i, s)
			}
		}
	})

	t.Run("organizer carries the remainder", func(t *testing.T) {
		shares, err := c.Shares(100.00, 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if shares[0] != 3334 || shares[1] != 3333 || shares[2] != 3333 {
			t.Fatalf("expected [3334 3333 3333], got %v", shares)
		}
	})

	t.Run("shares always sum to the total", func(t *testing.T) {
		totals := []float64{45.00, 99.99, 0.01, 100.00, 73.50}
		for _, total := range totals {
			for count := 1; count <= 7; count++ {
				shares, err := c.Shares(total, count)
				if err != nil {
					t.Fatalf("Shares(%v, %d): unexpected error %v", total, count, err)
				}
				var sum int64
				for _, s := range shares {
					sum += s
				}
				if sum != MinorUnits(total) {
					t.Fatalf("Shares(%v, %d): shares sum to %d, want %d", total, count, sum, MinorUnits(total))
				}
			}
		}
	})

	t.Run("rejects participant count below one", func(t *testing.T) {
		if _, err := c.Shares(45.00, 0); err != ErrBadParticipantCount {
			t.Fatalf("expected ErrBadParticipantCount, got %v", err)
		}
	})

	t.Run("rejects non-positive totals", func(t *testing.T) {
		if _, err := c.Shares(0, 2); err != ErrBadTotal {
			t.Fatalf("expected ErrBadTotal, got %v", err)
		}
	})
}

func TestMinorUnits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		amount float64
		want   int64
	}{
		{22.50, 2250},
		{0.01, 1},
		{45.00, 4500},
		{19.99, 1999},
	}
	for _, tc := range cases {
		if got := MinorUnits(tc.amount); got != tc.want {
			t.Fatalf("MinorUnits(%v): got %d, want %d", tc.amount, got, tc.want)
		}
		if back := MajorUnits(tc.want); back != tc.amount {
			t.Fatalf("MajorUnits(%d): got %v, want %v", tc.want, back, tc.amount)
		}
	}
}
