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

package logger

import (
	"testing"
	"time"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestLogger_NewLogger(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		log := NewLogger("DEBUG", "testModule")
		assert.NotNil(t, log)
		assert.True(t, log.IsEnabledFor(logging.DEBUG))
	})

	t.Run("lower case level", func(t *testing.T) {
		log := NewLogger("notice", "lowerCaseModule")
		assert.NotNil(t, log)
		assert.NotPanics(t, func() { log.Noticef("sum of %d variables", 3) })
	})

	t.Run("invalid log level", func(t *testing.T) {
		log := NewLogger("INVALID", "testModule")
		assert.NotNil(t, log)
		assert.True(t, log.IsEnabledFor(logging.INFO))
	})
}

func TestLogger_ParseTime(t *testing.T) {
	tests := []struct {
		elapsed                 time.Duration
		hours, minutes, seconds uint32
	}{
		{3661 * time.Second, 1, 1, 1},
		{59 * time.Second, 0, 0, 59},
		{2*time.Hour + 30*time.Minute, 2, 30, 0},
		{1500 * time.Millisecond, 0, 0, 2},
	}
	for _, test := range tests {
		hours, minutes, seconds := ParseTime(test.elapsed)
		assert.Equal(t, test.hours, hours, "%v", test.elapsed)
		assert.Equal(t, test.minutes, minutes, "%v", test.elapsed)
		assert.Equal(t, test.seconds, seconds, "%v", test.elapsed)
	}
}
