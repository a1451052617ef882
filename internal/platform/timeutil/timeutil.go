package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// ToMinutes converts a 24-hour "HH:MM" string to minutes since midnight.
func ToMinutes(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	return hours*60 + minutes, nil
}

// Overlaps reports whether two half-open minute intervals intersect.
// Back-to-back intervals (one ends exactly when the other starts) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// DurationHours converts a minute interval to hours. A negative raw duration
// (end before start) clamps to zero instead of erroring.
func DurationHours(startMin, endMin int) float64 {
	minutes := endMin - startMin
	if minutes < 0 {
		minutes = 0
	}
	return float64(minutes) / 60
}
