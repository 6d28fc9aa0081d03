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
	"fmt"
	"math/rand"
	"strings"

	"github.com/0xsoniclabs/drvsum/config"
	"github.com/0xsoniclabs/drvsum/logger"
	"github.com/0xsoniclabs/drvsum/pmf"
	"github.com/0xsoniclabs/drvsum/pmfio"
	"github.com/0xsoniclabs/drvsum/report"
	"github.com/0xsoniclabs/drvsum/utils"
	"github.com/0xsoniclabs/drvsum/utils/analytics"
	"github.com/0xsoniclabs/drvsum/visualizer"
	"github.com/urfave/cli/v2"
)

// SumCommand computes the distribution of a sum of random variables.
var SumCommand = cli.Command{
	Action:    sumAction,
	Name:      "sum",
	Usage:     "compute the distribution of a sum of independent discrete random variables",
	ArgsUsage: "<variable> [<variable> ...]",
	Flags: []cli.Flag{
		&utils.MethodFlag,
		&utils.ThresholdFlag,
		&utils.SpectralCostFlag,
		&utils.OutputFlag,
		&utils.ReportFileFlag,
		&utils.DbFlag,
		&utils.HtmlFlag,
		&utils.PrecisionFlag,
		&utils.CumulativeFlag,
		&utils.QuietFlag,
		&utils.SamplesFlag,
		&utils.SeedFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The sum command prints the probability mass function of the sum of the given
independent random variables. A variable is given in dice notation (2d6+1), as
an inline distribution (0:1/3,1:2/3), as a distribution file, or repeated with
a K* prefix (10*d20).`,
}

// sumAction computes the sum and hands the result to the configured sinks.
func sumAction(ctx *cli.Context) (err error) {
	cfg, err := config.NewConfig(ctx, config.OneOrMoreArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Sum")

	in, err := readInput(cfg, log)
	if err != nil {
		return err
	}
	result, _, err := compute(cfg, in, log)
	if err != nil {
		return err
	}

	opt := report.Options{Precision: cfg.Precision, Cumulative: cfg.Cumulative}
	text := func() string {
		var sb strings.Builder
		sb.WriteString(report.Summary(in.name, result, opt))
		sb.WriteString("\n")
		sb.WriteString(report.Table(result, opt))
		if cfg.Samples > 0 {
			sb.WriteString("\n")
			sb.WriteString(sample(result, cfg.Samples, cfg.Seed))
		}
		return sb.String()
	}

	printers := utils.NewPrinters().
		AddPrinterToConsole(cfg.Quiet, text).
		AddPrinterToFile(cfg.ReportFile, text)
	defer func() {
		if cErr := printers.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}()
	if err = printers.AddPrinterToSqlite3(cfg.Db, report.CreateTable, report.InsertRow, func() [][]any {
		return report.Rows(in.name, result)
	}); err != nil {
		return err
	}
	if err = printers.Print(); err != nil {
		return err
	}

	if cfg.Output != "" {
		log.Noticef("Write distribution file %v", cfg.Output)
		if err = pmfio.Write(cfg.Output, []pmfio.Variable{{Name: in.name, Repeat: 1, PMF: result}}); err != nil {
			return err
		}
	}
	if cfg.Html != "" {
		log.Noticef("Write charts %v", cfg.Html)
		if err = visualizer.WriteChartsFile(cfg.Html, in.name, result); err != nil {
			return err
		}
	}
	return nil
}

// sample draws n values from the distribution and reports their moments.
func sample(p *pmf.PMF, n int, seed int64) string {
	rg := rand.New(rand.NewSource(seed))
	stats := analytics.NewIncrementalStats()
	values := make([]string, n)
	for i := range values {
		x := p.Sample(rg)
		stats.Update(float64(x))
		values[i] = fmt.Sprint(x)
	}
	return fmt.Sprintf("Samples: %s\nSample mean: %g, sample variance: %g",
		strings.Join(values, " "), stats.Mean(), stats.Variance())
}
