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
	"github.com/0xsoniclabs/drvsum/config"
	"github.com/0xsoniclabs/drvsum/logger"
	"github.com/0xsoniclabs/drvsum/utils"
	"github.com/0xsoniclabs/drvsum/visualizer"
	"github.com/urfave/cli/v2"
)

// VisualizeCommand serves charts of a sum on a local web server.
var VisualizeCommand = cli.Command{
	Action:    visualizeAction,
	Name:      "visualize",
	Usage:     "serve charts of the distribution of a sum",
	ArgsUsage: "<variable> [<variable> ...]",
	Flags: []cli.Flag{
		&utils.MethodFlag,
		&utils.ThresholdFlag,
		&utils.SpectralCostFlag,
		&utils.PortFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The visualize command sums the given variables and serves the probability mass
function, the cumulative distribution and the summation plan at
http://localhost:<port>.`,
}

func visualizeAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.OneOrMoreArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Visualize")

	in, err := readInput(cfg, log)
	if err != nil {
		return err
	}
	result, steps, err := compute(cfg, in, log)
	if err != nil {
		return err
	}

	log.Noticef("Open http://localhost:%v to view the distribution", cfg.Port)
	return visualizer.FireUpWeb(&visualizer.View{Title: in.name, PMF: result, Plan: steps}, cfg.Port)
}
