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

package utils

import (
	"github.com/0xsoniclabs/drvsum/summation"
	"github.com/urfave/cli/v2"
)

// command line flags
var (
	MethodFlag = cli.StringFlag{
		Name:    "method",
		Aliases: []string{"m"},
		Usage:   "summation method (\"bivariate\", \"direct\", \"spectral\", \"hybrid\")",
		Value:   string(summation.Hybrid),
	}
	ThresholdFlag = cli.IntFlag{
		Name:  "threshold",
		Usage: "operand size product up to which the hybrid method always convolves directly",
		Value: summation.DefaultThreshold,
	}
	SpectralCostFlag = cli.Float64Flag{
		Name:  "spectral-cost",
		Usage: "constant factor of the N log N cost estimate used by the hybrid method",
		Value: summation.DefaultSpectralCost,
	}
	OutputFlag = cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "write the resulting distribution to a JSON file (gzip compressed if the name ends in .gz)",
	}
	ReportFileFlag = cli.StringFlag{
		Name:  "report",
		Usage: "append the printed report to the given file",
	}
	DbFlag = cli.StringFlag{
		Name:  "db",
		Usage: "store the resulting distribution in a sqlite3 database",
	}
	HtmlFlag = cli.StringFlag{
		Name:  "html",
		Usage: "write charts of the resulting distribution to an HTML file",
	}
	PortFlag = cli.StringFlag{
		Name:  "port",
		Usage: "port of the visualization web server",
		Value: "8080",
	}
	PrecisionFlag = cli.IntFlag{
		Name:  "precision",
		Usage: "number of significant digits of printed probabilities",
		Value: 6,
	}
	CumulativeFlag = cli.BoolFlag{
		Name:  "cdf",
		Usage: "print the cumulative distribution next to the probabilities",
	}
	QuietFlag = cli.BoolFlag{
		Name:  "quiet",
		Usage: "disable printing the distribution to the console",
	}
	SamplesFlag = cli.IntFlag{
		Name:  "samples",
		Usage: "number of values drawn from the resulting distribution",
	}
	SeedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "seed of the random generator used for sampling",
		Value: 1,
	}
)
