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
	"bytes"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testCreate = "CREATE TABLE IF NOT EXISTS pmf (value INTEGER, probability REAL)"
	testInsert = "INSERT INTO pmf (value, probability) VALUES (?, ?)"
)

func TestPrinter_NewPrinters(t *testing.T) {
	p := NewPrinters()
	assert.NotNil(t, p)
	assert.Equal(t, 0, p.Len())
}

func TestPrinter_AddPrinter(t *testing.T) {
	p := NewPrinters()
	p.AddPrinter(&PrinterToWriter{}).AddPrinter(&PrinterToWriter{})
	assert.Equal(t, 2, p.Len())
}

func TestPrinter_Print(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := NewMockPrinter(ctrl)
	second := NewMockPrinter(ctrl)
	p := NewPrinters().AddPrinter(first).AddPrinter(second)

	gomock.InOrder(
		first.EXPECT().Print().Return(nil),
		second.EXPECT().Print().Return(nil),
	)
	assert.NoError(t, p.Print())
}

func TestPrinter_PrintStopsAtFirstError(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := NewMockPrinter(ctrl)
	second := NewMockPrinter(ctrl)
	p := NewPrinters().AddPrinter(first).AddPrinter(second)

	mockErr := errors.New("mock error")
	first.EXPECT().Print().Return(mockErr)
	second.EXPECT().Print().Times(0)
	assert.ErrorIs(t, p.Print(), mockErr)
}

func TestPrinter_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := NewMockPrinter(ctrl)
	second := NewMockPrinter(ctrl)
	p := NewPrinters().AddPrinter(first).AddPrinter(second)

	mockErr := errors.New("mock error")
	first.EXPECT().Close().Return(mockErr)
	second.EXPECT().Close().Return(nil)
	assert.ErrorIs(t, p.Close(), mockErr, "every printer is closed and the failure reported")
}

func TestPrinters_AddPrinterToConsole(t *testing.T) {
	f := func() string { return "{2: 0.0278}" }
	assert.Equal(t, 1, NewPrinters().AddPrinterToConsole(false, f).Len())
	assert.Equal(t, 0, NewPrinters().AddPrinterToConsole(true, f).Len())
}

func TestPrinters_AddPrinterToFile(t *testing.T) {
	f := func() string { return "{2: 0.0278}" }
	assert.Equal(t, 1, NewPrinters().AddPrinterToFile("report.txt", f).Len())
	assert.Equal(t, 0, NewPrinters().AddPrinterToFile("", f).Len())
}

func TestPrinters_AddPrinterToSqlite3(t *testing.T) {
	rows := func() [][]any { return nil }

	p := NewPrinters()
	require.NoError(t, p.AddPrinterToSqlite3("", testCreate, testInsert, rows))
	assert.Equal(t, 0, p.Len())

	require.NoError(t, p.AddPrinterToSqlite3(":memory:", testCreate, testInsert, rows))
	assert.Equal(t, 1, p.Len())
	assert.NoError(t, p.Close())

	assert.Error(t, NewPrinters().AddPrinterToSqlite3(":memory:", "not sql", testInsert, rows))
}

func TestPrinterToWriter_Print(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterToWriter(&buf, func() string { return "Hello, World!" })
	require.NoError(t, p.Print())
	assert.Equal(t, "Hello, World!\n", buf.String())
	assert.NoError(t, p.Close())
}

func TestPrinterToWriter_NewPrinterToConsole(t *testing.T) {
	p := NewPrinterToConsole(func() string { return "Hello, World!" })
	assert.NotNil(t, p)
	assert.Equal(t, reflect.ValueOf(os.Stdout).Pointer(), reflect.ValueOf(p.w).Pointer())
	assert.NotNil(t, p.f)
}

func TestPrinterToFile_PrintAppends(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "report.txt")
	count := 0
	p := NewPrinterToFile(filePath, func() string {
		count++
		if count == 1 {
			return "first"
		}
		return "second"
	})
	require.NoError(t, p.Print())
	require.NoError(t, p.Print())
	assert.NoError(t, p.Close())

	data, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestPrinterToFile_PrintFails(t *testing.T) {
	p := NewPrinterToFile(filepath.Join(t.TempDir(), "missing", "report.txt"), func() string { return "" })
	assert.Error(t, p.Print())
}

func newMockDb(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mockDb, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, mockDb
}

func TestPrinterToDb_Print(t *testing.T) {
	db, mockDb := newMockDb(t)
	p := &PrinterToDb{
		db:     db,
		insert: testInsert,
		f: func() [][]any {
			return [][]any{{2, 0.25}, {3, 0.75}}
		},
	}

	mockDb.ExpectBegin()
	prep := mockDb.ExpectPrepare(testInsert).WillBeClosed()
	prep.ExpectExec().WithArgs(2, 0.25).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs(3, 0.75).WillReturnResult(sqlmock.NewResult(2, 1))
	mockDb.ExpectCommit()

	assert.NoError(t, p.Print())
	assert.NoError(t, mockDb.ExpectationsWereMet())
}

func TestPrinterToDb_PrintErrors(t *testing.T) {
	mockErr := errors.New("mock error")
	rows := func() [][]any { return [][]any{{1, 1.0}} }

	t.Run("begin", func(t *testing.T) {
		db, mockDb := newMockDb(t)
		p := &PrinterToDb{db, testInsert, rows}
		mockDb.ExpectBegin().WillReturnError(mockErr)
		assert.ErrorIs(t, p.Print(), mockErr)
		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("prepare", func(t *testing.T) {
		db, mockDb := newMockDb(t)
		p := &PrinterToDb{db, testInsert, rows}
		mockDb.ExpectBegin()
		mockDb.ExpectPrepare(testInsert).WillReturnError(mockErr)
		mockDb.ExpectRollback()
		assert.ErrorIs(t, p.Print(), mockErr)
		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("exec", func(t *testing.T) {
		db, mockDb := newMockDb(t)
		p := &PrinterToDb{db, testInsert, rows}
		mockDb.ExpectBegin()
		mockDb.ExpectPrepare(testInsert).ExpectExec().WithArgs(1, 1.0).WillReturnError(mockErr)
		mockDb.ExpectRollback()
		assert.ErrorIs(t, p.Print(), mockErr)
		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("commit", func(t *testing.T) {
		db, mockDb := newMockDb(t)
		p := &PrinterToDb{db, testInsert, rows}
		mockDb.ExpectBegin()
		mockDb.ExpectPrepare(testInsert).ExpectExec().WithArgs(1, 1.0).WillReturnResult(sqlmock.NewResult(1, 1))
		mockDb.ExpectCommit().WillReturnError(mockErr)
		assert.ErrorIs(t, p.Print(), mockErr)
		assert.NoError(t, mockDb.ExpectationsWereMet())
	})
}

func TestPrinterToDb_Close(t *testing.T) {
	db, mockDb, err := sqlmock.New()
	require.NoError(t, err)
	p := &PrinterToDb{db: db}
	mockDb.ExpectClose()
	assert.NoError(t, p.Close())
	assert.NoError(t, mockDb.ExpectationsWereMet())
}

func TestPrinterToDb_Sqlite3RoundTrip(t *testing.T) {
	conn := filepath.Join(t.TempDir(), "result.db")
	p, err := NewPrinterToSqlite3(conn, testCreate, testInsert, func() [][]any {
		return [][]any{{2, 0.25}, {3, 0.75}}
	})
	require.NoError(t, err)
	require.NoError(t, p.Print())
	require.NoError(t, p.Close())

	db, err := sql.Open("sqlite3", conn)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, db.Close())
	}()
	var count int
	var total float64
	require.NoError(t, db.QueryRow("SELECT COUNT(*), SUM(probability) FROM pmf").Scan(&count, &total))
	assert.Equal(t, 2, count)
	assert.InDelta(t, 1.0, total, 1e-12)
}

func TestPrinterToDb_NewPrinterToSqlite3(t *testing.T) {
	p, err := NewPrinterToSqlite3(":memory:", testCreate, testInsert, func() [][]any { return nil })
	require.NoError(t, err)
	assert.NotNil(t, p)
	assert.NoError(t, p.Close())

	p, err = NewPrinterToSqlite3(":memory:", "asfd;asdf", testInsert, func() [][]any { return nil })
	assert.Error(t, err)
	assert.Nil(t, p)
}
