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

package config

import (
	"github.com/0xsoniclabs/drvsum/logger"
	"github.com/0xsoniclabs/drvsum/utils"
	"github.com/urfave/cli/v2"
)

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName:     ctx.App.HelpName,
		CommandName: ctx.Command.Name,

		MethodName:   getFlagValue(ctx, utils.MethodFlag).(string),
		Threshold:    getFlagValue(ctx, utils.ThresholdFlag).(int),
		SpectralCost: getFlagValue(ctx, utils.SpectralCostFlag).(float64),
		Output:       getFlagValue(ctx, utils.OutputFlag).(string),
		ReportFile:   getFlagValue(ctx, utils.ReportFileFlag).(string),
		Db:           getFlagValue(ctx, utils.DbFlag).(string),
		Html:         getFlagValue(ctx, utils.HtmlFlag).(string),
		Port:         getFlagValue(ctx, utils.PortFlag).(string),
		Precision:    getFlagValue(ctx, utils.PrecisionFlag).(int),
		Cumulative:   getFlagValue(ctx, utils.CumulativeFlag).(bool),
		Quiet:        getFlagValue(ctx, utils.QuietFlag).(bool),
		Samples:      getFlagValue(ctx, utils.SamplesFlag).(int),
		Seed:         getFlagValue(ctx, utils.SeedFlag).(int64),
		LogLevel:     getFlagValue(ctx, logger.LogLevelFlag).(string),
	}
	return cfg
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	if ctx.Command != nil {
		for _, cmdFlag := range ctx.Command.Flags {
			name := cmdFlag.Names()[0]
			switch f := flag.(type) {
			case cli.IntFlag:
				if name == f.Name {
					return ctx.Int(f.Name)
				}
			case cli.Int64Flag:
				if name == f.Name {
					return ctx.Int64(f.Name)
				}
			case cli.Float64Flag:
				if name == f.Name {
					return ctx.Float64(f.Name)
				}
			case cli.StringFlag:
				if name == f.Name {
					return ctx.String(f.Name)
				}
			case cli.PathFlag:
				if name == f.Name {
					return ctx.Path(f.Name)
				}
			case cli.BoolFlag:
				if name == f.Name {
					return ctx.Bool(f.Name)
				}
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Int64Flag:
		return f.Value
	case cli.Float64Flag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	case cli.BoolFlag:
		return f.Value
	}
	return nil
}
