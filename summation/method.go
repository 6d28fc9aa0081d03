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
	"strings"

	"github.com/0xsoniclabs/drvsum/pmf"
	"github.com/cockroachdb/errors"
	"golang.org/x/text/cases"
)

var (
	// ErrInsufficientInput is returned when a sum is requested over no variables.
	ErrInsufficientInput = errors.New("insufficient input: at least one distribution is required")
	// ErrUnknownMethod is returned for an unrecognized method selector.
	ErrUnknownMethod = errors.New("unknown summation method")
	// ErrInvalidRepetition is returned for a term repeated less than once.
	ErrInvalidRepetition = errors.New("invalid repetition count")
)

// Method selects the strategy used to compute the distribution of a sum.
type Method string

const (
	Bivariate Method = "bivariate" // joint distribution marginalized by x+y
	Direct    Method = "direct"    // direct discrete convolution
	Spectral  Method = "spectral"  // convolution in the frequency domain
	Hybrid    Method = "hybrid"    // direct or spectral, chosen per step by operand size
)

// methodAliases maps case-folded selector spellings to methods.
var methodAliases = map[string]Method{
	"bivariate":            Bivariate,
	"biv":                  Bivariate,
	"joint":                Bivariate,
	"direct":               Direct,
	"direct-convolution":   Direct,
	"conv":                 Direct,
	"convolution":          Direct,
	"spectral":             Spectral,
	"spectral-convolution": Spectral,
	"fft":                  Spectral,
	"hybrid":               Hybrid,
	"hib":                  Hybrid,
}

// Methods returns all methods in canonical order.
func Methods() []Method {
	return []Method{Bivariate, Direct, Spectral, Hybrid}
}

// ParseMethod resolves a user supplied selector, ignoring case and
// surrounding white space.
func ParseMethod(s string) (Method, error) {
	key := cases.Fold().String(strings.TrimSpace(s))
	if m, ok := methodAliases[key]; ok {
		return m, nil
	}
	return "", errors.Wrapf(ErrUnknownMethod, "%q", s)
}

func (m Method) String() string {
	return string(m)
}

// Sum returns the PMF of the sum of the independent random variables whose
// PMFs are given, using the selected method. The variables are reduced by a
// left fold in the given order. A single PMF is returned unchanged.
//
// The direct, spectral and hybrid methods work on dense supports: a sum of
// sparse variables lists every value between its minimum and maximum, with
// zero probability in the gaps. The bivariate method keeps sparse supports.
func Sum(pmfs []*pmf.PMF, m Method, cfg Config) (*pmf.PMF, error) {
	combine, err := combiner(m, cfg)
	if err != nil {
		return nil, err
	}
	return fold(pmfs, combine)
}

// combiner returns the pairwise operation used by method m.
func combiner(m Method, cfg Config) (func(x, y *pmf.PMF) *pmf.PMF, error) {
	switch m {
	case Bivariate:
		return Joint, nil
	case Direct:
		return Convolve, nil
	case Spectral:
		return SpectralConvolve, nil
	case Hybrid:
		return cfg.Combine, nil
	default:
		return nil, errors.Wrapf(ErrUnknownMethod, "%q", string(m))
	}
}
