// Package core holds the finance tracker's domain model and the pure
// aggregate computations over it (balance, analytics, budget alerts,
// goal progress).
package core

import (
	"math"
	"strconv"
)

// FormatFixed2 renders an amount with exactly two decimal places, the
// rounding contract used by the balance endpoint.
func FormatFixed2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatFixed1 renders an amount with exactly one decimal place, used for
// alert percentages.
func FormatFixed1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// FormatAmount renders an amount with the shortest representation that
// round-trips, matching the CSV report contract (-4.5 stays "-4.5").
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
