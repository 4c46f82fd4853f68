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
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-shellwords"
	"github.com/rs/zerolog"

	"github.com/cybrota/roster/avl"
)

var (
	errQuit  = errors.New("quit")
	errUsage = errors.New("usage")
)

// commandHelp lists the command language understood by Session.Execute.
const commandHelp = `insert <id> <age> <name...>   add a record
delete <id>                   remove a record
find <id>                     show a record
report                        list every record by level
check                         verify the tree structure
stats                         show counters, size and height
clear                         remove every record
help                          show this list
quit                          leave`

// Session executes command lines against a single tree and writes the
// results to out. The tree itself is single-owner; mu serialises commands
// with snapshots taken by the metrics collector.
type Session struct {
	mu     sync.Mutex
	tree   *avl.Tree
	out    io.Writer
	format avl.ReportFormat
	log    zerolog.Logger
}

func NewSession(tree *avl.Tree, out io.Writer, config *Config, logger zerolog.Logger) *Session {
	return &Session{
		tree:   tree,
		out:    out,
		format: config.ReportFormat(),
		log:    logger,
	}
}

// TreeSnapshot is a consistent view of the tree's size and counters.
type TreeSnapshot struct {
	Len    int
	Height int
	Stats  avl.Stats
}

func (s *Session) Snapshot() TreeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TreeSnapshot{
		Len:    s.tree.Len(),
		Height: s.tree.Height(),
		Stats:  s.tree.Stats(),
	}
}

// Locked runs fn while holding the session lock, for callers such as the
// bulk loader that use the tree directly.
func (s *Session) Locked(fn func(tree *avl.Tree) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.tree)
}

// splitCommand splits a full command line into parts.
func splitCommand(line string) ([]string, error) {
	args, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command %q: %w", line, err)
	}
	return args, nil
}

// Execute runs one command line. Duplicate or missing ids are reported on
// the output and are not errors; malformed commands return an error
// wrapping errUsage and "quit" returns errQuit.
func (s *Session) Execute(line string) error {
	args, err := splitCommand(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	s.log.Debug().Strs("args", args).Msg("execute")

	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd := strings.ToLower(args[0]); cmd {
	case "insert", "add":
		return s.insert(args[1:])
	case "delete", "remove":
		return s.delete(args[1:])
	case "find", "get":
		return s.find(args[1:])
	case "report", "list":
		return s.report()
	case "check":
		return s.check()
	case "stats":
		return s.printStats()
	case "clear":
		n := s.tree.Len()
		s.tree.Clear()
		s.printf("Cleared %s records.\n", humanize.Comma(int64(n)))
		return nil
	case "help", "?":
		s.printf("%s\n", commandHelp)
		return nil
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("%w: unknown command %q, type help for a list", errUsage, cmd)
	}
}

func (s *Session) printf(format string, a ...interface{}) {
	fmt.Fprintf(s.out, format, a...)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q is not an integer", errUsage, arg)
	}
	return id, nil
}

func (s *Session) insert(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: insert <id> <age> <name...>", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	age, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: age %q is not an integer", errUsage, args[1])
	}
	name := strings.Join(args[2:], " ")

	if err := s.tree.Insert(id, age, name); err != nil {
		if errors.Is(err, avl.ErrDuplicateKey) {
			s.printf("%sID number %d is already in use.%s\n", Warning, id, Reset)
			return nil
		}
		return err
	}
	s.printf("%sInserted ID %d.%s\n", Info, id, Reset)
	return nil
}

func (s *Session) delete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete <id>", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := s.tree.Delete(id); err != nil {
		if errors.Is(err, avl.ErrNotFound) {
			s.printf("%sNode does not exist.%s\n", Warning, Reset)
			return nil
		}
		return err
	}
	s.printf("%sDeleted ID %d.%s\n", Info, id, Reset)
	return nil
}

func (s *Session) find(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: find <id>", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	n := s.tree.Find(id)
	if n == nil {
		s.printf("%sNode does not exist.%s\n", Warning, Reset)
		return nil
	}
	s.printf("ID: %d, Age: %d, Name: %s\n", n.Key(), n.Age(), n.Name())
	return nil
}

func (s *Session) report() error {
	return s.writeReport(s.out)
}

// WriteReport writes the report to w instead of the session output.
func (s *Session) WriteReport(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeReport(w)
}

func (s *Session) writeReport(w io.Writer) error {
	if s.tree.IsEmpty() {
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	}
	return s.tree.ReportWith(w, s.format)
}

func (s *Session) check() error {
	if err := s.tree.Check(); err != nil {
		return fmt.Errorf("tree check failed: %w", err)
	}
	s.printf("%sTree OK:%s %s records, height %d.\n",
		Green, Reset, humanize.Comma(int64(s.tree.Len())), s.tree.Height())
	return nil
}

func (s *Session) printStats() error {
	st := s.tree.Stats()
	rows := []struct {
		label string
		value uint64
	}{
		{"inserts", st.Inserts},
		{"deletes", st.Deletes},
		{"duplicate ids", st.DuplicateKeys},
		{"missing ids", st.MissingKeys},
		{"single rotations", st.SingleRotations},
		{"double rotations", st.DoubleRotations},
	}

	s.printf("records: %s\n", humanize.Comma(int64(s.tree.Len())))
	s.printf("height: %d\n", s.tree.Height())
	for _, r := range rows {
		s.printf("%s: %s\n", r.label, humanize.Comma(int64(r.value)))
	}
	return nil
}
