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
	"time"

	"github.com/0xsoniclabs/drvsum/config"
	"github.com/0xsoniclabs/drvsum/logger"
	"github.com/0xsoniclabs/drvsum/pmf"
	"github.com/0xsoniclabs/drvsum/report"
	"github.com/0xsoniclabs/drvsum/summation"
	"github.com/0xsoniclabs/drvsum/utils"
	"github.com/urfave/cli/v2"
)

// CompareCommand runs every summation method on the same variables.
var CompareCommand = cli.Command{
	Action:    compareAction,
	Name:      "compare",
	Usage:     "compare running time and accuracy of the summation methods",
	ArgsUsage: "<variable> [<variable> ...]",
	Flags: []cli.Flag{
		&utils.ThresholdFlag,
		&utils.SpectralCostFlag,
		&utils.ReportFileFlag,
		&utils.PrecisionFlag,
		&utils.QuietFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The compare command sums the given variables with every method and reports the
running time and the largest deviation from the direct convolution.`,
}

func compareAction(ctx *cli.Context) (err error) {
	cfg, err := config.NewConfig(ctx, config.OneOrMoreArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Compare")

	in, err := readInput(cfg, log)
	if err != nil {
		return err
	}
	rows, err := compareMethods(in.terms, cfg.SummationConfig(), log)
	if err != nil {
		return err
	}

	opt := report.Options{Precision: cfg.Precision}
	text := func() string {
		return report.Compare(rows, opt)
	}
	printers := utils.NewPrinters().
		AddPrinterToConsole(cfg.Quiet, text).
		AddPrinterToFile(cfg.ReportFile, text)
	defer func() {
		if cErr := printers.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}()
	return printers.Print()
}

// compareMethods sums the terms with every method and measures the deviation
// from the direct convolution.
func compareMethods(terms []summation.Term, cfg summation.Config, log logger.Logger) ([]report.Comparison, error) {
	results := make(map[summation.Method]*pmf.PMF)
	var rows []report.Comparison
	for _, m := range summation.Methods() {
		start := time.Now()
		res, err := summation.SumTerms(terms, m, cfg)
		if err != nil {
			return nil, err
		}
		rows = append(rows, report.Comparison{Method: m, Elapsed: time.Since(start), Width: res.Width()})
		results[m] = res
	}

	reference := results[summation.Direct]
	for i := range rows {
		rows[i].MaxAbsDiff = reference.MaxAbsDiff(results[rows[i].Method])
		if rows[i].MaxAbsDiff > pmf.Tolerance {
			log.Warningf("Method %v deviates from direct convolution by %v", rows[i].Method, rows[i].MaxAbsDiff)
		}
	}
	return rows, nil
}
