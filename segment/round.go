package segment

import "math"

// RoundTwo rounds to two decimal places, half away from zero, matching SQL
// ROUND. Every rate, average and money sum in a result goes through here.
func RoundTwo(num float64) float64 {
	return math.Round(num*100) / 100
}
