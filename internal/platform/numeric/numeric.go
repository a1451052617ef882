package numeric

import "math"

// RoundTo rounds a value to the given number of decimal places,
// half away from zero. All hour and billing figures in the system
// round through this one helper.
func RoundTo(value float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(value*pow) / pow
}
