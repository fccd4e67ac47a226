package domain

import "math"

// roundHalfUp rounds like JavaScript's Math.round: halves go toward +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
