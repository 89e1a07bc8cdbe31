package balance

import (
	"math"
	"strconv"
	"strings"
)

// Units in steps of 1000, smallest first.
var units = []string{"i", "Ki", "Mi", "Gi", "Ti", "Pi"}

func unitStep(v int64) int {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	step := 0
	for limit := int64(1000); step < len(units)-1 && abs >= limit; limit *= 1000 {
		step++
	}
	return step
}

// FormatValue scales v into the largest unit it reaches.
func FormatValue(v int64) float64 {
	return float64(v) / math.Pow(1000, float64(unitStep(v)))
}

// FormatUnit names the unit FormatValue scaled v into.
func FormatUnit(v int64) string {
	return units[unitStep(v)]
}

// Round rounds x half away from zero to the given number of decimals.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// RoundDown truncates x toward negative infinity to the given number of decimals.
func RoundDown(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(x*p) / p
}

// decimalPlaces counts the digits after the point in the shortest exact
// representation of x.
func decimalPlaces(x float64) int {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
