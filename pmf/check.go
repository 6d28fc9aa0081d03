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

package pmf

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

// Tolerance is the permitted absolute deviation of the total probability from one.
const Tolerance = 1e-9

// ErrInvalidDistribution is returned when a PMF violates its construction invariants.
var ErrInvalidDistribution = errors.New("invalid distribution")

// Check checks whether the given probability vector is a valid probability
// mass function. A valid pmf is non-empty, has all probabilities in the
// range [0,1], and its probabilities sum to one within Tolerance.
func Check(f []float64) error {
	if len(f) == 0 {
		return errors.Wrap(ErrInvalidDistribution, "pmf has no support")
	}
	sum := 0.0 // Kahan summation of the probabilities
	c := 0.0   // compensation term
	for i, x := range f {
		if x < 0.0 || x > 1.0 || math.IsNaN(x) {
			return errors.Wrapf(ErrInvalidDistribution, "invalid probability (%v) at position %d", x, i)
		}
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	if math.Abs(sum-1.0) > Tolerance {
		return errors.Wrapf(ErrInvalidDistribution, "total is not one (%v)", sum)
	}
	return nil
}

// quantile returns the index i of the dense pmf f such that the cumulative
// probability up to and including i is at least u. If u exceeds the total
// mass, the last index with a positive probability is returned.
func quantile(f []float64, u float64) int {
	sum := 0.0 // Kahan summation of the running total
	c := 0.0
	lastPositive := -1
	for i, p := range f {
		y := p - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		if u <= sum && p > 0.0 {
			return i
		}
		if p > 0.0 {
			lastPositive = i
		}
	}
	if lastPositive != -1 {
		return lastPositive
	}
	return 0
}

// settle removes floating-point residue from a computed probability vector in
// place: negative values are clamped to zero, values above one are clamped to
// one, and the vector is rescaled so that it sums to one.
func settle(f []float64) {
	for i, x := range f {
		switch {
		case x < 0.0 || math.IsNaN(x):
			f[i] = 0.0
		case x > 1.0:
			f[i] = 1.0
		}
	}
	if total := floats.Sum(f); total > 0.0 && total != 1.0 {
		floats.Scale(1.0/total, f)
	}
}
