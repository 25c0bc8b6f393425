package store

import "math"

func mathFloat64bits(v float64) uint64    { return math.Float64bits(v) }
func mathFloat64frombits(b uint64) float64 { return math.Float64frombits(b) }
