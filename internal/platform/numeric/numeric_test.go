package numeric

import "testing"

func TestRoundTo(t *testing.T) {
	cases := []struct {
		value    float64
		decimals int
		want     float64
	}{
		{3.004, 2, 3.0},
		{43.0, 2, 43.0},
		{0.833333, 2, 0.83},
		{0.125, 2, 0.13},
		{-0.125, 2, -0.13},
		{7.776, 2, 7.78},
	}
	for _, tc := range cases {
		if got := RoundTo(tc.value, tc.decimals); got != tc.want {
			t.Fatalf("RoundTo(%v, %d) = %v, want %v", tc.value, tc.decimals, got, tc.want)
		}
	}
}
