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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/0xsoniclabs/drvsum/pmf"
	"github.com/0xsoniclabs/drvsum/summation"
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
)

// fileId identifies PMF files.
const fileId = "pmf"

// ErrInvalidSpec is returned for malformed distribution files and specifications.
var ErrInvalidSpec = errors.New("invalid distribution specification")

// Variable is a named discrete random variable occurring Repeat times in a sum.
type Variable struct {
	Name   string
	Repeat int
	PMF    *pmf.PMF
}

// VariableJSON is the file representation of a Variable.
type VariableJSON struct {
	Name          string    `json:"name,omitempty"`
	Repeat        int       `json:"repeat,omitempty"` // zero is read as one
	Values        []int     `json:"values"`
	Probabilities []float64 `json:"probabilities"`
}

// FileJSON is the file representation of a list of variables.
type FileJSON struct {
	FileId    string         `json:"FileId"`
	Variables []VariableJSON `json:"variables"`
}

// JSON converts the variable into its file representation.
func (v Variable) JSON() VariableJSON {
	return VariableJSON{
		Name:          v.Name,
		Repeat:        v.Repeat,
		Values:        v.PMF.Values(),
		Probabilities: v.PMF.Probs(),
	}
}

// Variable validates the file representation and converts it into a Variable.
func (j VariableJSON) Variable() (Variable, error) {
	repeat := j.Repeat
	if repeat == 0 {
		repeat = 1
	}
	if repeat < 0 {
		return Variable{}, errors.Wrapf(ErrInvalidSpec, "variable %q has negative repeat (%d)", j.Name, j.Repeat)
	}
	p, err := pmf.New(j.Values, j.Probabilities)
	if err != nil {
		return Variable{}, errors.Wrapf(err, "variable %q", j.Name)
	}
	return Variable{Name: j.Name, Repeat: repeat, PMF: p}, nil
}

// isCompressed reports whether the file name selects gzip compression.
func isCompressed(filename string) bool {
	return strings.HasSuffix(filename, ".gz")
}

// Read reads variables from a file in JSON format. Files ending in .gz are
// gzip compressed.
func Read(filename string) (vars []Variable, err error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed opening distribution file %v; %w", filename, err)
	}
	defer func(file *os.File) {
		if cErr := file.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}(file)

	var r io.Reader = file
	if isCompressed(filename) {
		gzipReader, gErr := gzip.NewReader(file)
		if gErr != nil {
			return nil, fmt.Errorf("could not create gzip reader for distribution file %v; %w", filename, gErr)
		}
		defer gzipReader.Close()
		r = gzipReader
	}
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed reading distribution file; %w", err)
	}
	var fileJSON FileJSON
	if err := json.Unmarshal(contents, &fileJSON); err != nil {
		return nil, errors.Wrapf(ErrInvalidSpec, "cannot unmarshal distribution file %v; %v", filename, err)
	}
	if fileJSON.FileId != fileId {
		return nil, errors.Wrapf(ErrInvalidSpec, "file %v is not a distribution file", filename)
	}
	if len(fileJSON.Variables) == 0 {
		return nil, errors.Wrapf(ErrInvalidSpec, "file %v defines no variables", filename)
	}
	for _, j := range fileJSON.Variables {
		v, err := j.Variable()
		if err != nil {
			return nil, errors.Wrapf(err, "file %v", filename)
		}
		vars = append(vars, v)
	}
	return vars, nil
}

// Write writes variables to a file in JSON format. Files ending in .gz are
// gzip compressed.
func Write(filename string, vars []Variable) (err error) {
	fileJSON := FileJSON{FileId: fileId}
	for _, v := range vars {
		fileJSON.Variables = append(fileJSON.Variables, v.JSON())
	}
	jOut, err := json.MarshalIndent(fileJSON, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to convert JSON file; %w", err)
	}

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot open JSON file; %w", err)
	}
	defer func(f *os.File) {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}(f)

	var w io.Writer = f
	if isCompressed(filename) {
		gzipWriter := gzip.NewWriter(f)
		defer func() {
			if cErr := gzipWriter.Close(); cErr != nil && err == nil {
				err = cErr
			}
		}()
		w = gzipWriter
	}
	if _, err = fmt.Fprintln(w, string(jOut)); err != nil {
		return fmt.Errorf("failed to write JSON file; %w", err)
	}
	return nil
}

// Terms converts variables into summation terms.
func Terms(vars []Variable) []summation.Term {
	terms := make([]summation.Term, len(vars))
	for i, v := range vars {
		terms[i] = summation.Term{PMF: v.PMF, Count: v.Repeat}
	}
	return terms
}
