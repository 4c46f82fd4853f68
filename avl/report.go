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

package avl

import (
	"fmt"
	"io"
	"strings"
)

// ReportFormat controls the layout of Report lines.
type ReportFormat struct {
	// Indent is repeated once per level below the root.
	Indent string
	// ShowBalance appends each node's balance factor.
	ShowBalance bool
}

// DefaultReportFormat indents four spaces per level.
var DefaultReportFormat = ReportFormat{Indent: "    "}

// frame is one entry of the traversal stack.
type frame struct {
	node  *Node
	depth int
}

// Walk visits every node in ascending id order until fn returns false.
func (t *Tree) Walk(fn func(n *Node) bool) {
	t.walk(func(n *Node, _ int) bool {
		return fn(n)
	})
}

// walk is an in-order traversal driven by an explicit stack: push the left
// spine, visit the top, continue with its right child.
func (t *Tree) walk(fn func(n *Node, depth int) bool) {
	stack := make([]frame, 0, t.root.Height())
	cur, depth := t.root, 0

	for cur != nil || len(stack) > 0 {
		for cur != nil {
			stack = append(stack, frame{node: cur, depth: depth})
			cur = cur.left
			depth++
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(top.node, top.depth) {
			return
		}

		cur, depth = top.node.right, top.depth+1
	}
}

// Report writes every record in ascending id order, one per line, indented
// by its level in the tree.
func (t *Tree) Report(w io.Writer) error {
	return t.ReportWith(w, DefaultReportFormat)
}

// ReportWith is Report with an explicit layout.
func (t *Tree) ReportWith(w io.Writer, f ReportFormat) error {
	var err error
	t.walk(func(n *Node, depth int) bool {
		line := fmt.Sprintf("%s[level %d] ID: %d, Age: %d, Name: %s",
			strings.Repeat(f.Indent, depth), depth, n.key, n.record.Age, n.record.Name)
		if f.ShowBalance {
			line += fmt.Sprintf(" (balance %+d)", n.BalanceFactor())
		}
		_, err = fmt.Fprintln(w, line)
		return err == nil
	})
	return err
}
