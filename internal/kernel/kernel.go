// Package kernel implements the pixel transforms behind each effect.
//
// Every function here is pure: it reads its inputs and returns a freshly
// allocated result. Callers may share source images between goroutines.
package kernel

import (
	"errors"
	"math"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// clampByte rounds v to the nearest integer, halves away from zero, and
// saturates to [0, 255].
func clampByte(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// reflect101 maps i into [0, n) mirroring around the edge samples without
// repeating them: ... 2 1 | 0 1 2 ... n-2 n-1 | n-2 ...
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*n - 2 - i
		}
	}
	return i
}

// wrap maps i into [0, n) by modular arithmetic.
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
