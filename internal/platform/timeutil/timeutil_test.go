package timeutil

import "testing"

func TestToMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"12:30", 750},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := ToMinutes(tc.in)
		if err != nil {
			t.Fatalf("ToMinutes(%q) unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ToMinutes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestToMinutesInvalid(t *testing.T) {
	for _, in := range []string{"", "8", "25:00", "08:60", "ab:cd", "08:00:00"} {
		if _, err := ToMinutes(in); err == nil {
			t.Fatalf("ToMinutes(%q) expected error", in)
		}
	}
}

func TestOverlaps(t *testing.T) {
	// 08:00-12:00 vs 11:00-15:00
	if !Overlaps(480, 720, 660, 900) {
		t.Fatal("expected overlap")
	}
	// back-to-back: 08:00-12:00 vs 12:00-16:00
	if Overlaps(480, 720, 720, 960) {
		t.Fatal("back-to-back shifts must not overlap")
	}
	if Overlaps(720, 960, 480, 720) {
		t.Fatal("back-to-back shifts must not overlap (reversed)")
	}
}

func TestOverlapsZeroLength(t *testing.T) {
	if Overlaps(600, 600, 480, 720) {
		t.Fatal("zero-length window must not overlap anything")
	}
	if Overlaps(480, 720, 600, 600) {
		t.Fatal("nothing may overlap a zero-length window")
	}
}

func TestDurationHours(t *testing.T) {
	if got := DurationHours(480, 720); got != 4 {
		t.Fatalf("expected 4 hours, got %v", got)
	}
	if got := DurationHours(480, 530); got != 50.0/60 {
		t.Fatalf("expected 50 minutes in hours, got %v", got)
	}
}

func TestDurationHoursNeverNegative(t *testing.T) {
	if got := DurationHours(720, 480); got != 0 {
		t.Fatalf("reversed interval must clamp to zero, got %v", got)
	}
}
