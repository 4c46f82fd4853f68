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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const shellBanner = `Commands: insert <id> <age> <name...> | delete <id> | find <id> | report | check | stats | clear | help | quit`

// runShell reads commands from in until EOF or quit, printing a prompt
// before each one. Malformed commands are reported and the loop continues.
func runShell(in io.Reader, out io.Writer, s *Session, prompt string) error {
	fmt.Fprintln(out, shellBanner)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		err := s.Execute(scanner.Text())
		switch {
		case err == nil:
		case errors.Is(err, errQuit):
			return nil
		default:
			fmt.Fprintf(out, "%s%v%s\n", Error, err, Reset)
		}
	}
}

// runScript executes a file of commands, one per line. Blank lines and
// lines starting with # are skipped. The first failing line stops the run
// unless keepGoing is set, in which case the number of failures is
// reported at the end.
func runScript(r io.Reader, errOut io.Writer, s *Session, keepGoing bool) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	failures := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		err := s.Execute(line)
		if err == nil {
			continue
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if !keepGoing {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		failures++
		fmt.Fprintf(errOut, "line %d: %v\n", lineNo, err)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if failures > 0 {
		return fmt.Errorf("%d of the script's commands failed", failures)
	}
	return nil
}
