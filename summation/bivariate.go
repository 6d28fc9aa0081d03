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

// pair is a point of the joint sample space of two random variables.
type pair struct {
	x, y int
}

// Joint returns the PMF of X+Y for independent X and Y by building their
// bivariate joint distribution P(X=x, Y=y) = P(X=x)P(Y=y) over the cross
// product of the supports and marginalizing it by x+y.
func Joint(x, y *pmf.PMF) *pmf.PMF {
	joint := make(map[pair]float64, x.Len()*y.Len())
	x.Each(func(vx int, px float64) {
		y.Each(func(vy int, py float64) {
			joint[pair{vx, vy}] = px * py
		})
	})

	// marginalize in ascending (x, y) order to keep the summation order deterministic
	mass := make(map[int]float64, x.Len()*y.Len())
	x.Each(func(vx int, _ float64) {
		y.Each(func(vy int, _ float64) {
			mass[vx+vy] += joint[pair{vx, vy}]
		})
	})
	return pmf.FromMass(mass)
}

// SumBivariate computes the PMF of the sum of independent random variables
// with the bivariate-joint method, folding the variables from left to right.
func SumBivariate(pmfs []*pmf.PMF) (*pmf.PMF, error) {
	return fold(pmfs, Joint)
}
