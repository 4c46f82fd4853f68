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
	"fmt"
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

func usageMarkdown() string {
	return fmt.Sprintf(`
 **Roster %s**

Keep a roster of people indexed by a unique numeric id. Records live in a
self-balancing AVL tree, so every lookup, insert and delete touches only
a logarithmic number of records.

Built with Go %s

# 1. Commands
* **insert** <id> <age> <name...> adds a record; an id already in use is reported and ignored
* **delete** <id> removes a record; a missing id is reported
* **find** <id> shows one record
* **report** lists every record in id order, indented by its level in the tree
* **check** verifies ordering, parent links and balance
* **stats** shows insert, delete and rotation counters
* **clear** removes every record
* **quit** leaves the shell

# 2. Modes
* roster shell: interactive prompt (default)
* roster tui: terminal UI with live report
* roster run <script>: execute a file of commands
* roster load <records.yaml>: bulk insert records

# 3. Configuration
Settings are read from ~/.roster.yaml. Run roster settings to print them.

# License
Licensed under the Apache License, Version 2.0
`, version, runtime.Version())
}

func getHelpMessage() string {
	result := markdown.Render(usageMarkdown(), 80, 3)
	return string(result)
}
