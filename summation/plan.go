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
	"fmt"

	"github.com/0xsoniclabs/drvsum/pmf"
)

// Step describes one operation of a summation: either a pairwise combination
// of two operands, or a power step summing Count copies of one variable.
// Widths refer to dense representations (max-min+1).
type Step struct {
	Kernel Method // method carrying out the step; never Hybrid
	Left   int    // width of the left operand, or of the repeated variable
	Right  int    // width of the right operand; zero for power steps
	Count  int    // number of copies for power steps; zero otherwise
	Result int    // width of the result

	// Operand is the position of the repeated term for power steps, and the
	// position of the right operand among the fold operands otherwise. The
	// fold operands are the expanded variables for the bivariate and direct
	// methods and the (powered) terms for the spectral and hybrid methods.
	Operand int
}

// IsPower reports whether the step sums copies of a single variable.
func (s Step) IsPower() bool {
	return s.Count > 0
}

func (s Step) String() string {
	if s.IsPower() {
		return fmt.Sprintf("%s: %d x [%d] -> [%d]", s.Kernel, s.Count, s.Left, s.Result)
	}
	return fmt.Sprintf("%s: [%d] + [%d] -> [%d]", s.Kernel, s.Left, s.Right, s.Result)
}

// Plan returns the sequence of steps SumTerms performs for the given terms,
// method and configuration, without computing any distribution. The result
// width of every step follows from the bounds of the operands: the support of
// a sum spans [sum of minima, sum of maxima].
func Plan(terms []Term, m Method, cfg Config) ([]Step, error) {
	if err := checkTerms(terms); err != nil {
		return nil, err
	}
	if _, err := combiner(m, cfg); err != nil {
		return nil, err
	}
	kernel := func(l, r int) Method {
		switch m {
		case Hybrid:
			if cfg.UseSpectral(l, r) {
				return Spectral
			}
			return Direct
		default:
			return m
		}
	}

	var steps []Step
	var widths []int
	switch m {
	case Bivariate, Direct:
		for _, p := range Expand(terms) {
			widths = append(widths, p.Width())
		}
	default:
		for i, t := range terms {
			w := t.PMF.Width()
			if t.Count == 1 {
				widths = append(widths, w)
				continue
			}
			step := Step{Kernel: Spectral, Left: w, Count: t.Count, Result: t.Count*(w-1) + 1, Operand: i}
			if m == Hybrid && !cfg.UseSpectralPower(w, t.Count) {
				step.Kernel = Direct
			}
			steps = append(steps, step)
			widths = append(widths, step.Result)
		}
	}

	acc := widths[0]
	for i, w := range widths[1:] {
		result := acc + w - 1
		steps = append(steps, Step{Kernel: kernel(acc, w), Left: acc, Right: w, Result: result, Operand: i + 1})
		acc = result
	}
	return steps, nil
}

// Widths returns the dense widths of the given PMFs.
func Widths(pmfs []*pmf.PMF) []int {
	widths := make([]int, len(pmfs))
	for i, p := range pmfs {
		widths[i] = p.Width()
	}
	return widths
}
