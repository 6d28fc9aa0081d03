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
	"github.com/0xsoniclabs/drvsum/summation"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// ArgumentMode describes the positional arguments a command accepts.
type ArgumentMode int

const (
	NoArgs        ArgumentMode = iota // no positional arguments
	OneOrMoreArgs                     // at least one variable specification
	ExactlyOneArg                     // a single distribution file
)

// ErrInvalidConfig is returned when flags or arguments are rejected.
var ErrInvalidConfig = errors.New("invalid configuration")

// maxPrecision is the number of significant digits a float64 can represent.
const maxPrecision = 17

// Config summarizes the flags and arguments of a command.
type Config struct {
	AppName     string
	CommandName string

	Args         []string         // positional arguments
	MethodName   string           // method selector as given on the command line
	Method       summation.Method // canonical summation method
	Threshold    int              // hybrid direct-convolution threshold
	SpectralCost float64          // hybrid FFT cost factor
	Output       string           // distribution file to write
	ReportFile   string           // text file the report is appended to
	Db           string           // sqlite3 database for the result
	Html         string           // HTML file for charts
	Port         string           // port of the visualization server
	Precision    int              // significant digits of printed probabilities
	Cumulative   bool             // print the CDF column
	Quiet        bool             // disable console output
	Samples      int              // number of values sampled from the result
	Seed         int64            // seed for sampling
	LogLevel     string           // level of the logger
}

// NewConfig creates and validates a configuration from the command line context.
func NewConfig(ctx *cli.Context, mode ArgumentMode) (*Config, error) {
	cfg := createConfigFromFlags(ctx)

	if err := cfg.setArgs(ctx, mode); err != nil {
		return nil, err
	}
	method, err := summation.ParseMethod(cfg.MethodName)
	if err != nil {
		return nil, err
	}
	cfg.Method = method
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log := logger.NewLogger(cfg.LogLevel, "Config")
	cfg.report(log)
	return cfg, nil
}

// setArgs checks the number of positional arguments against the mode.
func (cfg *Config) setArgs(ctx *cli.Context, mode ArgumentMode) error {
	args := ctx.Args().Slice()
	switch mode {
	case NoArgs:
		if len(args) != 0 {
			return errors.Wrapf(ErrInvalidConfig, "command %v takes no arguments, got %d", cfg.CommandName, len(args))
		}
	case OneOrMoreArgs:
		if len(args) == 0 {
			return errors.Wrapf(ErrInvalidConfig, "command %v requires at least one random variable", cfg.CommandName)
		}
	case ExactlyOneArg:
		if len(args) != 1 {
			return errors.Wrapf(ErrInvalidConfig, "command %v requires exactly one argument, got %d", cfg.CommandName, len(args))
		}
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown argument mode %d", mode)
	}
	cfg.Args = args
	return nil
}

func (cfg *Config) validate() error {
	if cfg.Threshold < 0 {
		return errors.Wrapf(ErrInvalidConfig, "threshold must not be negative, got %d", cfg.Threshold)
	}
	if cfg.SpectralCost <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "spectral cost must be positive, got %v", cfg.SpectralCost)
	}
	if cfg.Precision < 1 || cfg.Precision > maxPrecision {
		return errors.Wrapf(ErrInvalidConfig, "precision must be between 1 and %d, got %d", maxPrecision, cfg.Precision)
	}
	if cfg.Samples < 0 {
		return errors.Wrapf(ErrInvalidConfig, "number of samples must not be negative, got %d", cfg.Samples)
	}
	return nil
}

// SummationConfig returns the tunables of the hybrid method.
func (cfg *Config) SummationConfig() summation.Config {
	return summation.Config{
		Threshold:    cfg.Threshold,
		SpectralCost: cfg.SpectralCost,
	}
}

// report logs the configuration.
func (cfg *Config) report(log logger.Logger) {
	log.Debugf("Command: %v %v", cfg.AppName, cfg.CommandName)
	log.Debugf("Method: %v", cfg.Method)
	if cfg.Method == summation.Hybrid {
		log.Debugf("Hybrid threshold: %d, spectral cost: %v", cfg.Threshold, cfg.SpectralCost)
	}
	if cfg.Output != "" {
		log.Debugf("Output file: %v", cfg.Output)
	}
	if cfg.Db != "" {
		log.Debugf("Database: %v", cfg.Db)
	}
	if cfg.Html != "" {
		log.Debugf("Charts: %v", cfg.Html)
	}
}
