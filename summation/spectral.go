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
	"gonum.org/v1/gonum/dsp/fourier"
)

// transformSize returns the transform length used for a linear convolution
// of the given width: the next power of two, and at least two.
func transformSize(width int) int {
	return umath.Max(umath.NextPowerOfTwo(width), 2)
}

// pad returns a copy of f zero-padded to length n.
func pad(f []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, f)
	return out
}

// inverse transforms the coefficients back into a real sequence, undoes the
// scaling of the unnormalized inverse transform and truncates the result to
// the given width. Imaginary residue was already dropped by the real-valued
// inverse transform.
func inverse(fft *fourier.FFT, coeff []complex128, width int) []float64 {
	seq := fft.Sequence(nil, coeff)
	n := float64(fft.Len())
	out := make([]float64, width)
	for i := range out {
		out[i] = seq[i] / n
	}
	return out
}

// spectralConvolve returns the linear convolution of a and b computed in the
// frequency domain. Both inputs are zero-padded to a power-of-two length that
// covers the full convolution so the circular product does not wrap around.
func spectralConvolve(a, b []float64) []float64 {
	width := len(a) + len(b) - 1
	n := transformSize(width)
	fft := fourier.NewFFT(n)
	ca := fft.Coefficients(nil, pad(a, n))
	cb := fft.Coefficients(nil, pad(b, n))
	for i := range ca {
		ca[i] *= cb[i]
	}
	return inverse(fft, ca, width)
}

// spectralPower returns the k-fold self convolution of a, computed as the
// inverse transform of the k-th power of its transform.
func spectralPower(a []float64, k int) []float64 {
	width := k*(len(a)-1) + 1
	n := transformSize(width)
	fft := fourier.NewFFT(n)
	ca := fft.Coefficients(nil, pad(a, n))
	for i, c := range ca {
		ca[i] = cpow(c, k)
	}
	return inverse(fft, ca, width)
}

// cpow raises c to the non-negative integer power k by repeated squaring.
func cpow(c complex128, k int) complex128 {
	r := complex(1, 0)
	for k > 0 {
		if k&1 == 1 {
			r *= c
		}
		c *= c
		k >>= 1
	}
	return r
}

// SpectralConvolve returns the PMF of X+Y for independent X and Y by
// convolving their dense representations with the fast Fourier transform.
// The result is mathematically identical to Convolve; floating-point residue
// of the transforms is settled, not reported.
func SpectralConvolve(x, y *pmf.PMF) *pmf.PMF {
	lx, dx := x.Densify()
	ly, dy := y.Densify()
	return pmf.FromDense(lx+ly, spectralConvolve(dx, dy))
}

// SumSpectral computes the PMF of the sum of independent random variables by
// spectral convolution, folding the variables from left to right.
func SumSpectral(pmfs []*pmf.PMF) (*pmf.PMF, error) {
	return fold(pmfs, SpectralConvolve)
}
