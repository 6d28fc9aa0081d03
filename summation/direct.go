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

package summation

import "github.com/0xsoniclabs/drvsum/pmf"

// convolve returns the full linear convolution of a and b, of length
// len(a)+len(b)-1.
func convolve(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		for j, bj := range b {
			out[i+j] += ai * bj
		}
	}
	return out
}

// Convolve returns the PMF of X+Y for independent X and Y by direct discrete
// convolution of their dense representations. The support of the result
// starts at min(X)+min(Y).
func Convolve(x, y *pmf.PMF) *pmf.PMF {
	lx, dx := x.Densify()
	ly, dy := y.Densify()
	return pmf.FromDense(lx+ly, convolve(dx, dy))
}

// SumDirect computes the PMF of the sum of independent random variables by
// direct convolution, folding the variables from left to right.
func SumDirect(pmfs []*pmf.PMF) (*pmf.PMF, error) {
	return fold(pmfs, Convolve)
}
