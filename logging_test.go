// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"trace", zerolog.TraceLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.WarnLevel},
		{"loud", zerolog.WarnLevel},
	}
	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			logger := newLogger(&bytes.Buffer{}, tc.level)
			assert.Equal(t, tc.expected, logger.GetLevel())
		})
	}
}

func TestNewLoggerFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn")

	logger.Info().Msg("hidden")
	logger.Warn().Int64("id", 7).Msg("duplicate id")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "duplicate id")
}
