package common

import (
	"fmt"
	"math"
)

func SafeSubUint64(a, b uint64) (uint64, error) {
	if a < b {
		return 0, fmt.Errorf("Substrate overflow of a %d - b %d", a, b)
	}
	return a - b, nil
}

func SafeAddUint64(a, b uint64) (uint64, error) {
	s := a + b
	if s >= a && s >= b {
		return s, nil
	}
	return 0, fmt.Errorf("Add overflow of a %d + b %d", a, b)
}

// SaturatingAddUint64 clamps to MaxUint64 instead of wrapping.
func SaturatingAddUint64(a, b uint64) uint64 {
	s := a + b
	if s < a {
		return math.MaxUint64
	}
	return s
}

// SaturatingMulUint64 clamps to MaxUint64 instead of wrapping.
func SaturatingMulUint64(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	p := a * b
	if p/b != a {
		return math.MaxUint64
	}
	return p
}
