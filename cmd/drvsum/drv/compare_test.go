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

package drv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/drvsum/logger"
	"github.com/0xsoniclabs/drvsum/pmfio"
	"github.com/0xsoniclabs/drvsum/summation"
	"github.com/0xsoniclabs/drvsum/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmd_RunCompareCommand(t *testing.T) {
	reportFile := filepath.Join(t.TempDir(), "compare.txt")
	args := utils.NewArgs("test").
		Arg(CompareCommand.Name).
		Flag(utils.ReportFileFlag.Name, reportFile).
		Flag(utils.QuietFlag.Name, true).
		Flag("log", "critical").
		Arg("4*d6").
		Arg("0:1/3,2:2/3").
		Build()
	require.NoError(t, newApp(&CompareCommand).Run(args))

	text, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	for _, m := range summation.Methods() {
		assert.Contains(t, string(text), utils.ToTitleCase(m.String()))
	}
}

func TestCmd_RunCompareCommandRequiresVariables(t *testing.T) {
	args := utils.NewArgs("test").Arg(CompareCommand.Name).Build()
	assert.Error(t, newApp(&CompareCommand).Run(args))
}

func TestCmd_compareMethods(t *testing.T) {
	vars, err := pmfio.ParseSpecs([]string{"5*d10", "d20-3"})
	require.NoError(t, err)
	rows, err := compareMethods(pmfio.Terms(vars), summation.DefaultConfig(), logger.NewLogger("critical", "Test"))
	require.NoError(t, err)
	require.Len(t, rows, len(summation.Methods()))
	for _, r := range rows {
		assert.Equal(t, 67-3+1, r.Width, "method %v", r.Method)
		assert.Less(t, r.MaxAbsDiff, 1e-9, "method %v", r.Method)
		if r.Method == summation.Direct {
			assert.Zero(t, r.MaxAbsDiff)
		}
	}
}
