// internal/utils/math.go
package utils

import "math"

// Clamp ограничивает v отрезком [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Progress возвращает долю прошедшего времени в [0, 1].
func Progress(elapsed, total float64) float64 {
	if total <= 0 {
		return 1
	}
	return Clamp(elapsed/total, 0, 1)
}
