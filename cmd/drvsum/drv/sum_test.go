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
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/drvsum/pmf"
	"github.com/0xsoniclabs/drvsum/pmfio"
	"github.com/0xsoniclabs/drvsum/summation"
	"github.com/0xsoniclabs/drvsum/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const testDataDir = "testdata"

func newApp(commands ...*cli.Command) *cli.App {
	app := cli.NewApp()
	app.Commands = commands
	return app
}

func TestCmd_RunSumCommand(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "sum.json.gz")
	reportFile := filepath.Join(dir, "report.txt")
	db := filepath.Join(dir, "sum.db")
	html := filepath.Join(dir, "sum.html")

	for _, m := range summation.Methods() {
		t.Run(m.String(), func(t *testing.T) {
			args := utils.NewArgs("test").
				Arg(SumCommand.Name).
				Flag(utils.MethodFlag.Name, m.String()).
				Flag(utils.OutputFlag.Name, output).
				Flag(utils.QuietFlag.Name, true).
				Flag("log", "critical").
				Arg("d6").
				Arg("d6").
				Build()
			require.NoError(t, newApp(&SumCommand).Run(args))

			vars, err := pmfio.Read(output)
			require.NoError(t, err)
			require.Len(t, vars, 1)
			assert.Equal(t, "d6 + d6", vars[0].Name)
			assert.InDelta(t, 6.0/36.0, vars[0].PMF.Prob(7), 1e-9)
			assert.InDelta(t, 1.0/36.0, vars[0].PMF.Prob(12), 1e-9)
		})
	}

	t.Run("sinks", func(t *testing.T) {
		args := utils.NewArgs("test").
			Arg(SumCommand.Name).
			Flag(utils.ReportFileFlag.Name, reportFile).
			Flag(utils.DbFlag.Name, db).
			Flag(utils.HtmlFlag.Name, html).
			Flag(utils.CumulativeFlag.Name, true).
			Flag(utils.SamplesFlag.Name, 5).
			Flag(utils.QuietFlag.Name, true).
			Flag("log", "critical").
			Arg("3*d4").
			Arg(filepath.Join(testDataDir, "loaded.json")).
			Build()
		require.NoError(t, newApp(&SumCommand).Run(args))

		text, err := os.ReadFile(reportFile)
		require.NoError(t, err)
		assert.Contains(t, string(text), "[4, 18]")
		assert.Contains(t, string(text), "Samples: ")

		conn, err := sql.Open("sqlite3", db)
		require.NoError(t, err)
		defer func() {
			assert.NoError(t, conn.Close())
		}()
		var count int
		var total float64
		require.NoError(t, conn.QueryRow("SELECT COUNT(*), SUM(probability) FROM distribution").Scan(&count, &total))
		assert.Equal(t, 15, count)
		assert.InDelta(t, 1.0, total, 1e-9)

		charts, err := os.ReadFile(html)
		require.NoError(t, err)
		assert.Contains(t, string(charts), "echarts")
	})
}

func TestCmd_RunSumCommandErrors(t *testing.T) {
	tests := map[string][]string{
		"no variables":     utils.NewArgs("test").Arg(SumCommand.Name).Build(),
		"unknown method":   utils.NewArgs("test").Arg(SumCommand.Name).Flag(utils.MethodFlag.Name, "bogus").Arg("d6").Build(),
		"invalid variable": utils.NewArgs("test").Arg(SumCommand.Name).Arg("0:0.5,1:0.6").Build(),
		"missing file":     utils.NewArgs("test").Arg(SumCommand.Name).Arg(filepath.Join(testDataDir, "missing.json")).Build(),
		"bad threshold":    utils.NewArgs("test").Arg(SumCommand.Name).Flag(utils.ThresholdFlag.Name, -1).Arg("d6").Build(),
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, newApp(&SumCommand).Run(args))
		})
	}
}

func TestCmd_sample(t *testing.T) {
	p, err := pmfio.ParseSpec("d6")
	require.NoError(t, err)
	first := sample(p[0].PMF, 10, 7)
	assert.Equal(t, first, sample(p[0].PMF, 10, 7), "sampling is reproducible for a seed")
	assert.Regexp(t, `^Samples: ([1-6] ){9}[1-6]\nSample mean: [0-9.]+, sample variance: [0-9.e-]+$`, first)

	constant := sample(pmf.Degenerate(4), 3, 1)
	assert.Equal(t, "Samples: 4 4 4\nSample mean: 4, sample variance: 0", constant)
}
