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
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/roster/avl"
)

func TestMain(m *testing.M) {
	// plain output keeps expected strings readable
	Green, Info, Warning, Error, Reset = "", "", "", "", ""
	os.Exit(m.Run())
}

func newTestSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s := NewSession(avl.New(), &out, defaults(), zerolog.Nop())
	return s, &out
}

func run(t *testing.T, s *Session, lines ...string) {
	t.Helper()
	for _, line := range lines {
		require.NoError(t, s.Execute(line), line)
	}
}

func TestSessionInsertAndFind(t *testing.T) {
	s, out := newTestSession(t)

	run(t, s, "insert 7 33 Alan Turing", "find 7")
	assert.Equal(t, "Inserted ID 7.\nID: 7, Age: 33, Name: Alan Turing\n", out.String())
}

func TestSessionQuotedName(t *testing.T) {
	s, out := newTestSession(t)

	run(t, s, `insert 1 40 "Grace  Hopper"`, "get 1")
	assert.Contains(t, out.String(), "Name: Grace  Hopper\n")
}

func TestSessionDuplicateInsert(t *testing.T) {
	s, out := newTestSession(t)

	run(t, s, "insert 5 20 first")
	out.Reset()
	run(t, s, "insert 5 99 second")
	assert.Equal(t, "ID number 5 is already in use.\n", out.String())

	out.Reset()
	run(t, s, "find 5")
	assert.Equal(t, "ID: 5, Age: 20, Name: first\n", out.String())
	assert.Equal(t, uint64(1), s.Snapshot().Stats.DuplicateKeys)
}

func TestSessionNoticesAreNotLoggedAtWarn(t *testing.T) {
	var out, logs bytes.Buffer
	logger := newLogger(&logs, defaultConfig.Log.Level)
	s := NewSession(avl.New(avl.WithLogger(logger)), &out, defaults(), logger)

	run(t, s, "insert 1 30 ada", "insert 1 30 ada", "delete 9")

	assert.Equal(t, "Inserted ID 1.\nID number 1 is already in use.\nNode does not exist.\n", out.String())
	assert.Empty(t, logs.String())
}

func TestSessionNoticesAreLoggedAtDebug(t *testing.T) {
	var out, logs bytes.Buffer
	logger := newLogger(&logs, "debug")
	s := NewSession(avl.New(avl.WithLogger(logger)), &out, defaults(), logger)

	run(t, s, "insert 1 30 ada", "insert 1 30 ada", "delete 9")

	assert.Contains(t, logs.String(), "id already in use")
	assert.Contains(t, logs.String(), "node does not exist")
}

func TestSessionDeleteAndMissing(t *testing.T) {
	s, out := newTestSession(t)

	run(t, s, "insert 1 10 a", "insert 2 20 b")
	out.Reset()

	run(t, s, "delete 1")
	assert.Equal(t, "Deleted ID 1.\n", out.String())

	out.Reset()
	run(t, s, "delete 1")
	assert.Equal(t, "Node does not exist.\n", out.String())

	out.Reset()
	run(t, s, "find 1")
	assert.Equal(t, "Node does not exist.\n", out.String())
	assert.Equal(t, 1, s.Snapshot().Len)
}

func TestSessionReport(t *testing.T) {
	s, out := newTestSession(t)

	run(t, s, "report")
	assert.Equal(t, "(empty)\n", out.String())

	out.Reset()
	run(t, s, "insert 10 31 ada", "insert 20 42 brian", "insert 30 27 claude")
	out.Reset()
	run(t, s, "list")

	expected := strings.Join([]string{
		"    [level 1] ID: 10, Age: 31, Name: ada",
		"[level 0] ID: 20, Age: 42, Name: brian",
		"    [level 1] ID: 30, Age: 27, Name: claude",
		"",
	}, "\n")
	assert.Equal(t, expected, out.String())

	var other bytes.Buffer
	require.NoError(t, s.WriteReport(&other))
	assert.Equal(t, expected, other.String())
}

func TestSessionReportUsesConfiguredFormat(t *testing.T) {
	config := defaults()
	config.Report.IndentWidth = 2
	config.Report.ShowBalance = true

	var out bytes.Buffer
	s := NewSession(avl.New(), &out, config, zerolog.Nop())
	run(t, s, "insert 2 1 b", "insert 1 1 a")
	out.Reset()
	run(t, s, "report")

	assert.Equal(t, "  [level 1] ID: 1, Age: 1, Name: a (balance +0)\n"+
		"[level 0] ID: 2, Age: 1, Name: b (balance +1)\n", out.String())
}

func TestSessionCheckStatsClear(t *testing.T) {
	s, out := newTestSession(t)

	for i := 1; i <= 7; i++ {
		run(t, s, fmt.Sprintf("insert %d 1 n", i))
	}
	out.Reset()

	run(t, s, "check")
	assert.Equal(t, "Tree OK: 7 records, height 3.\n", out.String())

	out.Reset()
	run(t, s, "stats")
	assert.Contains(t, out.String(), "records: 7\n")
	assert.Contains(t, out.String(), "height: 3\n")
	assert.Contains(t, out.String(), "inserts: 7\n")
	assert.Contains(t, out.String(), "single rotations: 4\n")

	out.Reset()
	run(t, s, "clear")
	assert.Equal(t, "Cleared 7 records.\n", out.String())
	assert.Equal(t, 0, s.Snapshot().Len)
}

func TestSessionUsageErrors(t *testing.T) {
	s, out := newTestSession(t)

	tests := []string{
		"insert",
		"insert 1 2",
		"insert x 2 name",
		"insert 1 old name",
		"delete",
		"delete 1 2",
		"delete one",
		"find",
		"bogus",
	}
	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			err := s.Execute(line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errUsage), "got %v", err)
		})
	}
	assert.Empty(t, out.String())
	assert.Equal(t, 0, s.Snapshot().Len)
}

func TestSessionBlankQuitAndHelp(t *testing.T) {
	s, out := newTestSession(t)

	assert.NoError(t, s.Execute("   "))
	assert.ErrorIs(t, s.Execute("quit"), errQuit)
	assert.ErrorIs(t, s.Execute("EXIT"), errQuit)

	run(t, s, "help")
	assert.Equal(t, commandHelp+"\n", out.String())

	err := s.Execute(`insert 1 2 "unterminated`)
	assert.Error(t, err)
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"insert 1 20 ada", []string{"insert", "1", "20", "ada"}},
		{`insert 2 30 "Ada Lovelace"`, []string{"insert", "2", "30", "Ada Lovelace"}},
		{"  report  ", []string{"report"}},
		{"", []string{}},
	}

	for _, tc := range tests {
		parts, err := splitCommand(tc.input)
		require.NoError(t, err, tc.input)
		if len(tc.expected) == 0 {
			assert.Empty(t, parts, tc.input)
			continue
		}
		assert.Equal(t, tc.expected, parts, tc.input)
	}
}
