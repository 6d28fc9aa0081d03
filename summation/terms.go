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

// Term is a random variable that occurs Count times in a sum, each
// occurrence being an independent copy.
type Term struct {
	PMF   *pmf.PMF
	Count int
}

// Expand returns the flat list of variables described by the terms, each
// term repeated Count times in place.
func Expand(terms []Term) []*pmf.PMF {
	var pmfs []*pmf.PMF
	for _, t := range terms {
		for range t.Count {
			pmfs = append(pmfs, t.PMF)
		}
	}
	return pmfs
}

func checkTerms(terms []Term) error {
	if len(terms) == 0 {
		return ErrInsufficientInput
	}
	for i, t := range terms {
		if t.PMF == nil {
			return errors.Wrapf(pmf.ErrInvalidDistribution, "term %d has no distribution", i)
		}
		if t.Count < 1 {
			return errors.Wrapf(ErrInvalidRepetition, "term %d is repeated %d times", i, t.Count)
		}
	}
	return nil
}

// SumTerms returns the PMF of the sum of all copies of all terms. The
// bivariate and direct methods fold the expanded variable list. The spectral
// method first computes each repeated term with a single transform pair by
// raising its transform to the repetition count, then folds the terms; the
// hybrid method does the same for terms where UseSpectralPower holds and
// folds the remaining repetitions directly.
func SumTerms(terms []Term, m Method, cfg Config) (*pmf.PMF, error) {
	if err := checkTerms(terms); err != nil {
		return nil, err
	}
	switch m {
	case Bivariate, Direct:
		return Sum(Expand(terms), m, cfg)
	case Spectral, Hybrid:
		parts := make([]*pmf.PMF, len(terms))
		for i, t := range terms {
			p, err := Power(t.PMF, t.Count, m, cfg)
			if err != nil {
				return nil, err
			}
			parts[i] = p
		}
		return Sum(parts, m, cfg)
	default:
		return nil, errors.Wrapf(ErrUnknownMethod, "%q", string(m))
	}
}

// Power returns the PMF of the sum of k independent copies of p.
func Power(p *pmf.PMF, k int, m Method, cfg Config) (*pmf.PMF, error) {
	if err := checkTerms([]Term{{PMF: p, Count: k}}); err != nil {
		return nil, err
	}
	if k == 1 {
		return p, nil
	}
	switch m {
	case Spectral:
		return spectralPowerPMF(p, k), nil
	case Hybrid:
		if cfg.UseSpectralPower(p.Width(), k) {
			return spectralPowerPMF(p, k), nil
		}
		return SumDirect(Expand([]Term{{PMF: p, Count: k}}))
	default:
		return Sum(Expand([]Term{{PMF: p, Count: k}}), m, cfg)
	}
}

func spectralPowerPMF(p *pmf.PMF, k int) *pmf.PMF {
	lo, dense := p.Densify()
	return pmf.FromDense(k*lo, spectralPower(dense, k))
}
