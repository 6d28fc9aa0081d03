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
	"math/rand"

	umath "github.com/0xsoniclabs/drvsum/utils/math"
	"gonum.org/v1/gonum/stat"
)

// support returns the support values as floats for the gonum weighted statistics.
func (p *PMF) support() []float64 {
	x := make([]float64, len(p.values))
	for i, v := range p.values {
		x[i] = float64(v)
	}
	return x
}

// Mean returns the expected value of the random variable.
func (p *PMF) Mean() float64 {
	return stat.Mean(p.support(), p.probs)
}

// Variance returns the (population) variance of the random variable.
func (p *PMF) Variance() float64 {
	return stat.Moment(2, p.support(), p.probs)
}

// StdDev returns the standard deviation of the random variable.
func (p *PMF) StdDev() float64 {
	return math.Sqrt(p.Variance())
}

// Mode returns the smallest support value with maximal probability.
func (p *PMF) Mode() int {
	best := 0
	for i, x := range p.probs {
		if x > p.probs[best] {
			best = i
		}
	}
	return p.values[best]
}

// CDF returns P(X <= v).
func (p *PMF) CDF(v int) float64 {
	sum := 0.0
	for i, x := range p.values {
		if x > v {
			break
		}
		sum += p.probs[i]
	}
	return umath.Min(sum, 1.0)
}

// Quantile returns the smallest support value whose cumulative probability
// is at least u, for u in [0,1].
func (p *PMF) Quantile(u float64) int {
	return p.values[quantile(p.probs, u)]
}

// Sample draws a value of the random variable using the given random source.
func (p *PMF) Sample(rg *rand.Rand) int {
	return p.Quantile(rg.Float64())
}
