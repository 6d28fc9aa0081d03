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
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/maps"
	"gonum.org/v1/gonum/floats"
)

// PMF is the probability mass function of a discrete random variable with
// finite integer support. A PMF is immutable once constructed; the support
// values are kept in ascending order.
type PMF struct {
	values []int     // support values in ascending order
	probs  []float64 // probability of each support value
}

// New creates a PMF from parallel slices of support values and probabilities.
// The support values must be unique, each probability must lie in [0,1], and
// the probabilities must sum to one within Tolerance.
func New(values []int, probs []float64) (*PMF, error) {
	if len(values) != len(probs) {
		return nil, errors.Wrapf(ErrInvalidDistribution, "number of values (%d) mismatches number of probabilities (%d)", len(values), len(probs))
	}
	if err := Check(probs); err != nil {
		return nil, err
	}
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return values[idx[i]] < values[idx[j]]
	})
	p := &PMF{
		values: make([]int, len(values)),
		probs:  make([]float64, len(values)),
	}
	for i, k := range idx {
		if i > 0 && values[k] == p.values[i-1] {
			return nil, errors.Wrapf(ErrInvalidDistribution, "support value (%d) occurs more than once", values[k])
		}
		p.values[i] = values[k]
		p.probs[i] = probs[k]
	}
	return p, nil
}

// FromMap creates a PMF from a mapping of support values to probabilities.
func FromMap(m map[int]float64) (*PMF, error) {
	values := maps.Keys(m)
	sort.Ints(values)
	probs := make([]float64, len(values))
	for i, v := range values {
		probs[i] = m[v]
	}
	return New(values, probs)
}

// Degenerate returns the PMF of a constant: value v with probability one.
func Degenerate(v int) *PMF {
	return &PMF{values: []int{v}, probs: []float64{1.0}}
}

// Uniform returns the discrete uniform PMF on [lo, hi].
func Uniform(lo, hi int) (*PMF, error) {
	if hi < lo {
		return nil, errors.Wrapf(ErrInvalidDistribution, "empty range [%d, %d]", lo, hi)
	}
	n := hi - lo + 1
	probs := make([]float64, n)
	for i := range probs {
		probs[i] = 1.0 / float64(n)
	}
	return FromDense(lo, probs), nil
}

// FromDense creates a PMF whose support is the contiguous range starting at lo,
// with dense[i] being the probability of lo+i. It is intended for computed
// distributions: residual floating-point noise is settled (negative values
// clamped to zero, the total rescaled to one) rather than reported. The dense
// slice is taken over by the PMF.
func FromDense(lo int, dense []float64) *PMF {
	settle(dense)
	values := make([]int, len(dense))
	for i := range values {
		values[i] = lo + i
	}
	return &PMF{values: values, probs: dense}
}

// FromMass creates a PMF from a computed mass mapping, settling residual
// floating-point noise like FromDense.
func FromMass(m map[int]float64) *PMF {
	values := maps.Keys(m)
	sort.Ints(values)
	probs := make([]float64, len(values))
	for i, v := range values {
		probs[i] = m[v]
	}
	settle(probs)
	return &PMF{values: values, probs: probs}
}

// Shift returns the PMF of X+d.
func (p *PMF) Shift(d int) *PMF {
	values := make([]int, len(p.values))
	for i, v := range p.values {
		values[i] = v + d
	}
	return &PMF{values: values, probs: p.Probs()}
}

// Len returns the number of support values.
func (p *PMF) Len() int {
	return len(p.values)
}

// Min returns the smallest support value.
func (p *PMF) Min() int {
	return p.values[0]
}

// Max returns the largest support value.
func (p *PMF) Max() int {
	return p.values[len(p.values)-1]
}

// Width returns the length of the dense representation, i.e. Max-Min+1.
func (p *PMF) Width() int {
	return p.Max() - p.Min() + 1
}

// Prob returns the probability of value v; zero if v is not in the support.
func (p *PMF) Prob(v int) float64 {
	i := sort.SearchInts(p.values, v)
	if i < len(p.values) && p.values[i] == v {
		return p.probs[i]
	}
	return 0.0
}

// Values returns a copy of the support values in ascending order.
func (p *PMF) Values() []int {
	return append([]int(nil), p.values...)
}

// Probs returns a copy of the probabilities, aligned with Values.
func (p *PMF) Probs() []float64 {
	return append([]float64(nil), p.probs...)
}

// Each calls f for every (value, probability) pair in ascending value order.
func (p *PMF) Each(f func(v int, prob float64)) {
	for i, v := range p.values {
		f(v, p.probs[i])
	}
}

// Densify returns the dense representation of the PMF: a slice of length
// Width() where entry i holds the probability of Min()+i. Gaps in the support
// become zero entries.
func (p *PMF) Densify() (lo int, dense []float64) {
	lo = p.Min()
	dense = make([]float64, p.Width())
	for i, v := range p.values {
		dense[v-lo] = p.probs[i]
	}
	return lo, dense
}

// Total returns the sum of all probabilities.
func (p *PMF) Total() float64 {
	return floats.Sum(p.probs)
}

// MaxAbsDiff returns the largest absolute difference between the
// probabilities of p and q over the union of their supports.
func (p *PMF) MaxAbsDiff(q *PMF) float64 {
	diff := 0.0
	i, j := 0, 0
	for i < len(p.values) || j < len(q.values) {
		var d float64
		switch {
		case j >= len(q.values) || (i < len(p.values) && p.values[i] < q.values[j]):
			d = p.probs[i]
			i++
		case i >= len(p.values) || q.values[j] < p.values[i]:
			d = q.probs[j]
			j++
		default:
			d = p.probs[i] - q.probs[j]
			i++
			j++
		}
		if d < 0 {
			d = -d
		}
		if d > diff {
			diff = d
		}
	}
	return diff
}

// Equal reports whether p and q assign the same probability to every value
// within the given tolerance.
func (p *PMF) Equal(q *PMF, tolerance float64) bool {
	return p.MaxAbsDiff(q) <= tolerance
}

func (p *PMF) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, v := range p.values {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d: %.6g", v, p.probs[i])
	}
	b.WriteString("}")
	return b.String()
}
