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

// Package report renders distributions, fold plans and method comparisons
// as text tables and database rows.
package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/0xsoniclabs/drvsum/pmf"
	"github.com/0xsoniclabs/drvsum/summation"
	"github.com/0xsoniclabs/drvsum/utils"
	"github.com/jedib0t/go-pretty/v6/table"
)

// SQL statements for storing distributions with a sqlite3 printer.
const (
	CreateTable = "CREATE TABLE IF NOT EXISTS distribution (name TEXT, value INTEGER, probability REAL)"
	InsertRow   = "INSERT INTO distribution (name, value, probability) VALUES (?, ?, ?)"
)

// Options control how probabilities are printed.
type Options struct {
	Precision  int  // significant digits
	Cumulative bool // add a CDF column
}

// DefaultOptions prints six significant digits without the CDF.
func DefaultOptions() Options {
	return Options{Precision: 6}
}

func (o Options) format(p float64) string {
	precision := o.Precision
	if precision <= 0 {
		precision = DefaultOptions().Precision
	}
	return strconv.FormatFloat(p, 'g', precision, 64)
}

// Table renders every value of the support with its probability.
func Table(p *pmf.PMF, opt Options) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	header := table.Row{"Value", "Probability"}
	if opt.Cumulative {
		header = append(header, "Cumulative")
	}
	t.AppendHeader(header)

	cdf := 0.0
	p.Each(func(v int, q float64) {
		cdf += q
		row := table.Row{v, opt.format(q)}
		if opt.Cumulative {
			row = append(row, opt.format(min(cdf, 1)))
		}
		t.AppendRow(row)
	})
	return t.Render()
}

// Summary renders the support and the moments of a distribution.
func Summary(name string, p *pmf.PMF, opt Options) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	if name != "" {
		t.SetTitle(name)
	}
	t.AppendRows([]table.Row{
		{"Support", fmt.Sprintf("[%d, %d]", p.Min(), p.Max())},
		{"Values", p.Len()},
		{"Mean", opt.format(p.Mean())},
		{"Variance", opt.format(p.Variance())},
		{"Std. deviation", opt.format(p.StdDev())},
		{"Mode", p.Mode()},
		{"Median", p.Quantile(0.5)},
		{"Total", opt.format(p.Total())},
	})
	return t.Render()
}

// Comparison is the outcome of one summation method on a common input.
type Comparison struct {
	Method     summation.Method
	Elapsed    time.Duration
	Width      int     // width of the resulting support
	MaxAbsDiff float64 // largest deviation from the reference result
}

// Compare renders a table of method comparisons.
func Compare(rows []Comparison, opt Options) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Method", "Time", "Width", "Max. deviation"})
	for _, r := range rows {
		t.AppendRow(table.Row{
			utils.ToTitleCase(r.Method.String()),
			r.Elapsed.Round(time.Microsecond),
			r.Width,
			opt.format(r.MaxAbsDiff),
		})
	}
	return t.Render()
}

// Plan renders the pairwise steps of a fold.
func Plan(steps []summation.Step) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Step", "Kernel", "Operation", "Result width"})
	for i, s := range steps {
		var op string
		if s.IsPower() {
			op = fmt.Sprintf("%d x [%d]", s.Count, s.Left)
		} else {
			op = fmt.Sprintf("[%d] + [%d]", s.Left, s.Right)
		}
		t.AppendRow(table.Row{i + 1, utils.ToTitleCase(s.Kernel.String()), op, s.Result})
	}
	return t.Render()
}

// Rows returns one database row per support value.
func Rows(name string, p *pmf.PMF) [][]any {
	rows := make([][]any, 0, p.Len())
	p.Each(func(v int, q float64) {
		rows = append(rows, []any{name, v, q})
	})
	return rows
}
