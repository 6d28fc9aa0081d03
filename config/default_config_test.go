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
	"flag"
	"testing"

	"github.com/0xsoniclabs/drvsum/utils"
	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"
)

func TestGetFlagValue(t *testing.T) {
	// app for testing
	app := cli.NewApp()
	app.Commands = []*cli.Command{
		{
			Name: "testcmd",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "intflag"},
				&cli.Int64Flag{Name: "int64flag"},
				&cli.Float64Flag{Name: "float64flag"},
				&cli.StringFlag{Name: "stringflag"},
				&cli.PathFlag{Name: "pathflag"},
				&cli.BoolFlag{Name: "boolflag"},
			},
		},
	}

	newContext := func(setup func(set *flag.FlagSet)) *cli.Context {
		set := flag.NewFlagSet("test", 0)
		setup(set)
		ctx := cli.NewContext(app, set, nil)
		ctx.Command = app.Commands[0]
		return ctx
	}

	testCases := []struct {
		name          string
		ctx           *cli.Context
		flagToTest    interface{}
		expectedValue interface{}
	}{
		{
			name:          "IntFlag value",
			ctx:           newContext(func(set *flag.FlagSet) { set.Int("intflag", 42, "") }),
			flagToTest:    cli.IntFlag{Name: "intflag"},
			expectedValue: 42,
		},
		{
			name:          "Int64Flag value",
			ctx:           newContext(func(set *flag.FlagSet) { set.Int64("int64flag", 200, "") }),
			flagToTest:    cli.Int64Flag{Name: "int64flag"},
			expectedValue: int64(200),
		},
		{
			name:          "Float64Flag value",
			ctx:           newContext(func(set *flag.FlagSet) { set.Float64("float64flag", 0.75, "") }),
			flagToTest:    cli.Float64Flag{Name: "float64flag"},
			expectedValue: 0.75,
		},
		{
			name:          "StringFlag value",
			ctx:           newContext(func(set *flag.FlagSet) { set.String("stringflag", "test-string", "") }),
			flagToTest:    cli.StringFlag{Name: "stringflag"},
			expectedValue: "test-string",
		},
		{
			name:          "PathFlag value",
			ctx:           newContext(func(set *flag.FlagSet) { set.String("pathflag", "/test/path", "") }),
			flagToTest:    cli.PathFlag{Name: "pathflag"},
			expectedValue: "/test/path",
		},
		{
			name:          "BoolFlag value",
			ctx:           newContext(func(set *flag.FlagSet) { set.Bool("boolflag", true, "") }),
			flagToTest:    cli.BoolFlag{Name: "boolflag"},
			expectedValue: true,
		},
		{
			name:          "undeclared flag falls back to default",
			ctx:           newContext(func(set *flag.FlagSet) {}),
			flagToTest:    utils.ThresholdFlag,
			expectedValue: utils.ThresholdFlag.Value,
		},
		{
			name:          "undeclared float flag falls back to default",
			ctx:           newContext(func(set *flag.FlagSet) {}),
			flagToTest:    utils.SpectralCostFlag,
			expectedValue: utils.SpectralCostFlag.Value,
		},
		{
			name:          "unsupported flag type",
			ctx:           newContext(func(set *flag.FlagSet) {}),
			flagToTest:    cli.DurationFlag{Name: "duration"},
			expectedValue: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			value := getFlagValue(tc.ctx, tc.flagToTest)
			assert.Equal(t, tc.expectedValue, value)
		})
	}
}

func TestCreateConfigFromFlags_Defaults(t *testing.T) {
	app := cli.NewApp()
	ctx := cli.NewContext(app, flag.NewFlagSet("test", 0), nil)
	ctx.Command = &cli.Command{Name: "bare"}

	cfg := createConfigFromFlags(ctx)
	assert.Equal(t, "bare", cfg.CommandName)
	assert.Equal(t, utils.MethodFlag.Value, cfg.MethodName)
	assert.Equal(t, utils.ThresholdFlag.Value, cfg.Threshold)
	assert.Equal(t, utils.SpectralCostFlag.Value, cfg.SpectralCost)
	assert.Equal(t, utils.PrecisionFlag.Value, cfg.Precision)
	assert.Equal(t, "info", cfg.LogLevel)
}
