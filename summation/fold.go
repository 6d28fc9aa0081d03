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

import (
	"github.com/0xsoniclabs/drvsum/pmf"
	"github.com/cockroachdb/errors"
)

// fold reduces the PMFs from left to right with the pairwise operation
// combine: ((p1 + p2) + p3) + ... + pn. The reduction order is fixed so that
// results are reproducible down to floating-point rounding. A constant operand
// shifts the other one instead of being combined with it.
func fold(pmfs []*pmf.PMF, combine func(x, y *pmf.PMF) *pmf.PMF) (*pmf.PMF, error) {
	if len(pmfs) == 0 {
		return nil, ErrInsufficientInput
	}
	for i, p := range pmfs {
		if p == nil {
			return nil, errors.Wrapf(pmf.ErrInvalidDistribution, "distribution %d is nil", i)
		}
	}
	acc := pmfs[0]
	for _, p := range pmfs[1:] {
		switch {
		case p.Len() == 1:
			acc = acc.Shift(p.Min())
		case acc.Len() == 1:
			acc = p.Shift(acc.Min())
		default:
			acc = combine(acc, p)
		}
	}
	return acc, nil
}
