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

	"github.com/0xsoniclabs/drvsum/config"
	"github.com/0xsoniclabs/drvsum/logger"
	"github.com/0xsoniclabs/drvsum/report"
	"github.com/0xsoniclabs/drvsum/summation"
	"github.com/0xsoniclabs/drvsum/utils"
	"github.com/0xsoniclabs/drvsum/visualizer"
	"github.com/urfave/cli/v2"
)

// PlanCommand prints the steps a method performs without summing.
var PlanCommand = cli.Command{
	Action:    planAction,
	Name:      "plan",
	Usage:     "print the pairwise steps of a summation and the kernel of each step",
	ArgsUsage: "<variable> [<variable> ...]",
	Flags: []cli.Flag{
		&utils.MethodFlag,
		&utils.ThresholdFlag,
		&utils.SpectralCostFlag,
		&utils.HtmlFlag,
		&utils.QuietFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The plan command prints the sequence of convolutions the selected method
performs, including the kernel the hybrid method picks for every step. With
--html the plan is rendered as a graph.`,
}

func planAction(ctx *cli.Context) (err error) {
	cfg, err := config.NewConfig(ctx, config.OneOrMoreArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Plan")

	in, err := readInput(cfg, log)
	if err != nil {
		return err
	}
	steps, err := summation.Plan(in.terms, cfg.Method, cfg.SummationConfig())
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		log.Notice("A single variable needs no summation")
	}

	printers := utils.NewPrinters().AddPrinterToConsole(cfg.Quiet, func() string {
		return report.Plan(steps)
	})
	defer func() {
		if cErr := printers.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}()
	if err = printers.Print(); err != nil {
		return err
	}

	if cfg.Html != "" && len(steps) > 0 {
		page, err := visualizer.PlanHtml(in.name, steps)
		if err != nil {
			return err
		}
		log.Noticef("Write plan %v", cfg.Html)
		return os.WriteFile(cfg.Html, []byte(page), 0644)
	}
	return nil
}
