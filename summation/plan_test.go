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
	"math/rand"
	"testing"

	"github.com/0xsoniclabs/drvsum/pmf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_DirectFold(t *testing.T) {
	terms := []Term{{PMF: die(t, 6), Count: 2}, {PMF: die(t, 4), Count: 1}}
	steps, err := Plan(terms, Direct, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []Step{
		{Kernel: Direct, Left: 6, Right: 6, Result: 11, Operand: 1},
		{Kernel: Direct, Left: 11, Right: 4, Result: 14, Operand: 2},
	}, steps)
	assert.Equal(t, "direct: [6] + [6] -> [11]", steps[0].String())
}

func TestPlan_SpectralUsesPowerSteps(t *testing.T) {
	terms := []Term{{PMF: die(t, 6), Count: 3}, {PMF: die(t, 4), Count: 1}}
	steps, err := Plan(terms, Spectral, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, []Step{
		{Kernel: Spectral, Left: 6, Count: 3, Result: 16, Operand: 0},
		{Kernel: Spectral, Left: 16, Right: 4, Result: 19, Operand: 1},
	}, steps)
	assert.True(t, steps[0].IsPower())
	assert.False(t, steps[1].IsPower())
	assert.Equal(t, "spectral: 3 x [6] -> [16]", steps[0].String())
}

func TestPlan_HybridRecordsDecisions(t *testing.T) {
	rg := rand.New(rand.NewSource(17))
	terms := []Term{
		{PMF: randomPMF(t, rg, 0, 6, false), Count: 1},
		{PMF: randomPMF(t, rg, 0, 6, false), Count: 1},
		{PMF: randomPMF(t, rg, 0, 600, false), Count: 1},
	}
	steps, err := Plan(terms, Hybrid, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, Direct, steps[0].Kernel)
	assert.Equal(t, Direct, steps[1].Kernel, "11x600 stays below the threshold cost")

	terms = append(terms, Term{PMF: randomPMF(t, rg, 0, 700, false), Count: 1})
	steps, err = Plan(terms, Hybrid, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, Spectral, steps[2].Kernel)
}

func TestPlan_ResultWidthsMatchComputation(t *testing.T) {
	rg := rand.New(rand.NewSource(19))
	terms := []Term{
		{PMF: randomPMF(t, rg, -4, 9, true), Count: 2},
		{PMF: randomPMF(t, rg, 3, 30, false), Count: 1},
		{PMF: randomPMF(t, rg, 0, 12, true), Count: 3},
	}
	for _, m := range Methods() {
		steps, err := Plan(terms, m, DefaultConfig())
		require.NoError(t, err)
		res, err := SumTerms(terms, m, DefaultConfig())
		require.NoError(t, err)
		last := steps[len(steps)-1]
		assert.Equal(t, res.Width(), last.Result, "method %v", m)
		for _, s := range steps {
			assert.NotEqual(t, Hybrid, s.Kernel)
		}
	}
}

func TestPlan_SingleTermHasNoSteps(t *testing.T) {
	steps, err := Plan([]Term{{PMF: die(t, 6), Count: 1}}, Hybrid, DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestPlan_InvalidInput(t *testing.T) {
	_, err := Plan(nil, Direct, DefaultConfig())
	assert.ErrorIs(t, err, ErrInsufficientInput)
	_, err = Plan([]Term{{PMF: die(t, 6), Count: 1}}, Method("bogus"), DefaultConfig())
	assert.ErrorIs(t, err, ErrUnknownMethod)
	_, err = Plan([]Term{{PMF: die(t, 6), Count: -1}}, Direct, DefaultConfig())
	assert.ErrorIs(t, err, ErrInvalidRepetition)
}

func TestWidths(t *testing.T) {
	assert.Equal(t, []int{6, 1}, Widths([]*pmf.PMF{die(t, 6), pmf.Degenerate(3)}))
}
