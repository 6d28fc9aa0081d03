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
	umath "github.com/0xsoniclabs/drvsum/utils/math"
)

const (
	// DefaultThreshold is the operand-size product m*k up to which the hybrid
	// method always convolves directly.
	DefaultThreshold = 4096
	// DefaultSpectralCost is the constant factor c in the estimated spectral
	// cost c*N*log2(N), relative to one multiply-add of direct convolution.
	DefaultSpectralCost = 6.0
)

// Config holds the tunables of the hybrid method.
type Config struct {
	// Threshold is the largest operand-size product m*k that is always
	// convolved directly, avoiding transform overhead on small operands.
	Threshold int
	// SpectralCost scales the estimated cost N*log2(N) of a spectral
	// convolution of transform size N. Values <= 0 select DefaultSpectralCost.
	SpectralCost float64
}

// DefaultConfig returns the default hybrid configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:    DefaultThreshold,
		SpectralCost: DefaultSpectralCost,
	}
}

func (c Config) spectralCost() float64 {
	if c.SpectralCost <= 0 {
		return DefaultSpectralCost
	}
	return c.SpectralCost
}

// spectralEstimate returns the estimated cost of a spectral convolution
// producing a result of the given width.
func (c Config) spectralEstimate(width int) float64 {
	n := transformSize(width)
	return c.spectralCost() * float64(n) * float64(umath.Log2(n))
}

// UseSpectral reports whether the hybrid method convolves operands of
// dense widths m and k in the frequency domain. Products up to Threshold are
// convolved directly; above it the cheaper of the direct cost m*k and the
// estimated spectral cost is chosen, with ties going to direct convolution.
func (c Config) UseSpectral(m, k int) bool {
	work := m * k
	if work <= c.Threshold {
		return false
	}
	return float64(work) > c.spectralEstimate(m+k-1)
}

// UseSpectralPower reports whether the hybrid method computes the k-fold sum
// of a variable of dense width w by raising its transform to the k-th power
// instead of folding k copies directly.
func (c Config) UseSpectralPower(w, k int) bool {
	if k < 2 {
		return false
	}
	// direct cost of the fold: the j-th step convolves a width j*(w-1)+1 operand
	// with w, summing to w*(k-1) + w*(w-1)*k*(k-1)/2; floats keep it from overflowing
	fw, fk := float64(w), float64(k)
	work := fw*(fk-1) + fw*(fw-1)*fk*(fk-1)/2
	if work <= float64(c.Threshold) {
		return false
	}
	width := umath.MaxPowerOfTwo
	if fk*(fw-1)+1 < float64(umath.MaxPowerOfTwo) {
		width = k*(w-1) + 1
	}
	return work > c.spectralEstimate(width)
}

// Combine returns the PMF of X+Y using direct or spectral convolution,
// whichever UseSpectral selects for the operand widths.
func (c Config) Combine(x, y *pmf.PMF) *pmf.PMF {
	if c.UseSpectral(x.Width(), y.Width()) {
		return SpectralConvolve(x, y)
	}
	return Convolve(x, y)
}

// SumHybrid computes the PMF of the sum of independent random variables,
// choosing direct or spectral convolution at each step of the left fold.
func SumHybrid(pmfs []*pmf.PMF, cfg Config) (*pmf.PMF, error) {
	return fold(pmfs, cfg.Combine)
}
