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
	"strings"
	"time"

	"github.com/0xsoniclabs/drvsum/config"
	"github.com/0xsoniclabs/drvsum/logger"
	"github.com/0xsoniclabs/drvsum/pmf"
	"github.com/0xsoniclabs/drvsum/pmfio"
	"github.com/0xsoniclabs/drvsum/summation"
)

// input holds the parsed variables of a command.
type input struct {
	name  string
	vars  []pmfio.Variable
	terms []summation.Term
}

// count returns the number of variables including repetitions.
func (in *input) count() int {
	n := 0
	for _, t := range in.terms {
		n += t.Count
	}
	return n
}

// readInput parses the positional arguments of a command into summation terms.
func readInput(cfg *config.Config, log logger.Logger) (*input, error) {
	vars, err := pmfio.ParseSpecs(cfg.Args)
	if err != nil {
		return nil, err
	}
	in := &input{
		name:  strings.Join(cfg.Args, " + "),
		vars:  vars,
		terms: pmfio.Terms(vars),
	}
	for _, v := range vars {
		log.Debugf("Variable %v: %d x %d values in [%d, %d]", v.Name, v.Repeat, v.PMF.Len(), v.PMF.Min(), v.PMF.Max())
	}
	return in, nil
}

// compute sums the terms with the configured method and logs the plan.
func compute(cfg *config.Config, in *input, log logger.Logger) (*pmf.PMF, []summation.Step, error) {
	steps, err := summation.Plan(in.terms, cfg.Method, cfg.SummationConfig())
	if err != nil {
		return nil, nil, err
	}
	for i, s := range steps {
		log.Debugf("Step %d: %v", i+1, s)
	}

	start := time.Now()
	result, err := summation.SumTerms(in.terms, cfg.Method, cfg.SummationConfig())
	if err != nil {
		return nil, nil, err
	}
	elapsed := time.Since(start)
	log.Noticef("Summed %d variables with the %v method in %v; support [%d, %d]",
		in.count(), cfg.Method, elapsed, result.Min(), result.Max())
	return result, steps, nil
}
