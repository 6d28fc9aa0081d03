// Copyright 2025 Sonic Labs
// This file is part of Drvsum, a toolkit for sums of discrete random variables
//
// Drvsum is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Drvsum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Drvsum. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// MaxPowerOfTwo is the largest power of two representable as an int.
const MaxPowerOfTwo = math.MaxInt/2 + 1

// NextPowerOfTwo returns the smallest power of two that is greater than or
// equal to n. For n <= 1 it returns 1, for n > MaxPowerOfTwo it returns
// MaxPowerOfTwo.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n && p < MaxPowerOfTwo {
		p <<= 1
	}
	return p
}

// Log2 returns the integer binary logarithm of a power of two n.
func Log2(n int) int {
	k := 0
	for n > 1 {
		n >>= 1
		k++
	}
	return k
}
