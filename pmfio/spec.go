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

package pmfio

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/0xsoniclabs/drvsum/pmf"
	"github.com/cockroachdb/errors"
)

// diceSpec matches dice notation such as d6, 3d6 or 2d10-2.
var diceSpec = regexp.MustCompile(`^(\d*)[dD](\d+)([+-]\d+)?$`)

// repeatSpec matches a repetition prefix such as 3*d6 or 2*0:0.5,1:0.5.
var repeatSpec = regexp.MustCompile(`^(\d+)\s*\*\s*(.+)$`)

// ParseSpec parses a command-line specification of one or more random variables:
//
//	NdS[+M]     N fair dice with S sides, plus an optional constant M (e.g. 2d6+1)
//	v:p,v:p     an inline PMF; probabilities may be fractions (e.g. 0:1/3,1:2/3)
//	K*SPEC      K independent copies of the variables described by SPEC
//	FILE        a distribution file, see Read
func ParseSpec(s string) ([]Variable, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Wrap(ErrInvalidSpec, "empty specification")
	}
	if m := repeatSpec.FindStringSubmatch(s); m != nil {
		k, err := strconv.Atoi(m[1])
		if err != nil || k < 1 {
			return nil, errors.Wrapf(ErrInvalidSpec, "invalid repetition in %q", s)
		}
		vars, err := ParseSpec(m[2])
		if err != nil {
			return nil, err
		}
		for i := range vars {
			vars[i].Repeat *= k
		}
		return vars, nil
	}
	if m := diceSpec.FindStringSubmatch(s); m != nil {
		return parseDice(s, m[1], m[2], m[3])
	}
	if strings.Contains(s, ":") {
		if _, err := os.Stat(s); err != nil {
			v, err := parseInline(s)
			if err != nil {
				return nil, err
			}
			return []Variable{v}, nil
		}
	}
	return Read(s)
}

// ParseSpecs parses every specification and concatenates the variables in order.
func ParseSpecs(specs []string) ([]Variable, error) {
	var vars []Variable
	for _, s := range specs {
		v, err := ParseSpec(s)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v...)
	}
	return vars, nil
}

func parseDice(s, count, sides, modifier string) ([]Variable, error) {
	n := 1
	if count != "" {
		var err error
		if n, err = strconv.Atoi(count); err != nil || n < 1 {
			return nil, errors.Wrapf(ErrInvalidSpec, "invalid number of dice in %q", s)
		}
	}
	faces, err := strconv.Atoi(sides)
	if err != nil || faces < 1 {
		return nil, errors.Wrapf(ErrInvalidSpec, "invalid number of sides in %q", s)
	}
	die, err := pmf.Uniform(1, faces)
	if err != nil {
		return nil, err
	}
	vars := []Variable{{Name: fmt.Sprintf("d%d", faces), Repeat: n, PMF: die}}
	if modifier != "" {
		shift, err := strconv.Atoi(modifier)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidSpec, "invalid modifier in %q", s)
		}
		// the modifier is added once to the sum, not to every die
		vars = append(vars, Variable{Name: modifier, Repeat: 1, PMF: pmf.Degenerate(shift)})
	}
	return vars, nil
}

func parseInline(s string) (Variable, error) {
	var values []int
	var probs []float64
	for _, entry := range strings.Split(s, ",") {
		value, prob, found := strings.Cut(strings.TrimSpace(entry), ":")
		if !found {
			return Variable{}, errors.Wrapf(ErrInvalidSpec, "entry %q of %q is not of the form value:probability", entry, s)
		}
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return Variable{}, errors.Wrapf(ErrInvalidSpec, "invalid value %q in %q", value, s)
		}
		p, err := parseProbability(strings.TrimSpace(prob))
		if err != nil {
			return Variable{}, errors.Wrapf(ErrInvalidSpec, "invalid probability %q in %q", prob, s)
		}
		values = append(values, v)
		probs = append(probs, p)
	}
	p, err := pmf.New(values, probs)
	if err != nil {
		return Variable{}, errors.Wrapf(err, "%q", s)
	}
	return Variable{Name: s, Repeat: 1, PMF: p}, nil
}

// parseProbability parses a decimal number or a fraction a/b.
func parseProbability(s string) (float64, error) {
	num, den, found := strings.Cut(s, "/")
	if !found {
		return strconv.ParseFloat(s, 64)
	}
	a, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	b, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, err
	}
	if b == 0 {
		return 0, errors.New("division by zero")
	}
	return a / b, nil
}
