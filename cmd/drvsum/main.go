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

package main

import (
	"fmt"
	"os"

	"github.com/0xsoniclabs/drvsum/cmd/drvsum/drv"
	"github.com/urfave/cli/v2"
)

// DrvsumApp data structure
var DrvsumApp = cli.App{
	Name:      "Drvsum",
	HelpName:  "drvsum",
	Usage:     "distribution of sums of independent discrete random variables",
	Copyright: "(c) 2025 Sonic Labs",
	Commands: []*cli.Command{
		&drv.SumCommand,
		&drv.CompareCommand,
		&drv.PlanCommand,
		&drv.VisualizeCommand,
	},
}

func main() {
	if err := DrvsumApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
