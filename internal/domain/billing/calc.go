package billing

import (
	"math"

	"carelink/internal/platform/numeric"
	"carelink/internal/platform/timeutil"
)

// CalculateBillableHours converts a shift window into billable hours,
// rounded to 2 decimals. With medicaidRounding the raw minutes first snap
// to the nearest 15-minute unit, half away from zero, so the result is
// always a multiple of 0.25.
func CalculateBillableHours(startTime, endTime string, medicaidRounding bool) (float64, error) {
	startMin, err := timeutil.ToMinutes(startTime)
	if err != nil {
		return 0, err
	}
	endMin, err := timeutil.ToMinutes(endTime)
	if err != nil {
		return 0, err
	}

	minutes := float64(endMin - startMin)
	if minutes < 0 {
		minutes = 0
	}
	if medicaidRounding {
		minutes = math.Round(minutes/15) * 15
	}
	return numeric.RoundTo(minutes/60, 2), nil
}
