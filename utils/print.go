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
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	_ "github.com/mattn/go-sqlite3"
)

// Printer outputs a report produced by a command.
//
//go:generate mockgen -source print.go -destination print_mock.go -package utils
type Printer interface {
	Print() error
	Close() error
}

// Printers fans a report out to several sinks.
type Printers struct {
	printers []Printer
}

func NewPrinters() *Printers {
	return &Printers{[]Printer{}}
}

// Print prints to every sink and stops at the first failure.
func (ps *Printers) Print() error {
	for _, p := range ps.printers {
		if err := p.Print(); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink.
func (ps *Printers) Close() error {
	var err error
	for _, p := range ps.printers {
		err = errors.CombineErrors(err, p.Close())
	}
	return err
}

// Len returns the number of sinks.
func (ps *Printers) Len() int {
	return len(ps.printers)
}

func (ps *Printers) AddPrinter(p Printer) *Printers {
	ps.printers = append(ps.printers, p)
	return ps
}

// PrinterToWriter writes the string produced by f to w.
type PrinterToWriter struct {
	w io.Writer
	f func() string
}

func (p *PrinterToWriter) Print() error {
	_, err := fmt.Fprintln(p.w, p.f())
	return err
}

func (p *PrinterToWriter) Close() error {
	return nil
}

func NewPrinterToWriter(w io.Writer, f func() string) *PrinterToWriter {
	return &PrinterToWriter{w, f}
}

func NewPrinterToConsole(f func() string) *PrinterToWriter {
	return &PrinterToWriter{os.Stdout, f}
}

func (ps *Printers) AddPrinterToWriter(w io.Writer, f func() string) *Printers {
	return ps.AddPrinter(NewPrinterToWriter(w, f))
}

func (ps *Printers) AddPrinterToConsole(isDisabled bool, f func() string) *Printers {
	if isDisabled {
		return ps
	}
	return ps.AddPrinter(NewPrinterToConsole(f))
}

// PrinterToFile appends the string produced by f to a file.
type PrinterToFile struct {
	filepath string
	f        func() string
}

func (p *PrinterToFile) Print() (err error) {
	file, err := os.OpenFile(p.filepath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "unable to print to file %s", p.filepath)
	}
	defer func(file *os.File) {
		err = errors.CombineErrors(err, file.Close())
	}(file)
	_, err = fmt.Fprintln(file, p.f())
	return err
}

func (p *PrinterToFile) Close() error {
	return nil
}

func NewPrinterToFile(filepath string, f func() string) *PrinterToFile {
	return &PrinterToFile{filepath, f}
}

func (ps *Printers) AddPrinterToFile(filepath string, f func() string) *Printers {
	if filepath != "" {
		ps.AddPrinter(NewPrinterToFile(filepath, f))
	}
	return ps
}

// PrinterToDb inserts the rows produced by f in a single transaction.
type PrinterToDb struct {
	db     *sql.DB
	insert string
	f      func() [][]any
}

func (p *PrinterToDb) Print() (err error) {
	tx, err := p.db.Begin()
	if err != nil {
		return errors.Wrap(err, "unable to begin a transaction")
	}
	defer func() {
		if err != nil {
			err = errors.CombineErrors(err, tx.Rollback())
		}
	}()

	stmt, err := tx.Prepare(p.insert)
	if err != nil {
		return errors.Wrapf(err, "unable to prepare statement %s", p.insert)
	}
	defer func(stmt *sql.Stmt) {
		err = errors.CombineErrors(err, stmt.Close())
	}(stmt)

	for _, row := range p.f() {
		if _, err = stmt.Exec(row...); err != nil {
			return errors.Wrapf(err, "unable to insert %v", row)
		}
	}
	return tx.Commit()
}

func (p *PrinterToDb) Close() error {
	return p.db.Close()
}

// NewPrinterToSqlite3 opens the database, runs the create statement and
// returns a printer executing insert for every row produced by f.
func NewPrinterToSqlite3(conn string, create string, insert string, f func() [][]any) (*PrinterToDb, error) {
	db, err := sql.Open("sqlite3", conn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open connection to sqlite3 %s", conn)
	}
	// in-memory databases exist per connection
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{create, "PRAGMA synchronous = OFF", "PRAGMA journal_mode = MEMORY"} {
		if _, err = db.Exec(stmt); err != nil {
			return nil, errors.CombineErrors(errors.Wrapf(err, "failed to execute %q on %s", stmt, conn), db.Close())
		}
	}
	return &PrinterToDb{db, insert, f}, nil
}

func (ps *Printers) AddPrinterToSqlite3(conn string, create string, insert string, f func() [][]any) error {
	if conn == "" {
		return nil
	}
	p, err := NewPrinterToSqlite3(conn, create, insert, f)
	if err != nil {
		return err
	}
	ps.AddPrinter(p)
	return nil
}
