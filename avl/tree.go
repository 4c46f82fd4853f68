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
	"github.com/rs/zerolog"
)

// Stats counts the work a tree has done since it was created.
type Stats struct {
	Inserts         uint64
	Deletes         uint64
	DuplicateKeys   uint64
	MissingKeys     uint64
	SingleRotations uint64
	DoubleRotations uint64
}

// Tree is the container for the root node.
type Tree struct {
	root  *Node
	count int
	stats Stats
	log   zerolog.Logger
}

// Option configures a Tree.
type Option func(*Tree)

// WithLogger sets the logger used for duplicate, miss and rotation notices.
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Tree) {
		t.log = logger
	}
}

// New returns an empty tree.
func New(opts ...Option) *Tree {
	tree := &Tree{
		root: nil,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(tree)
	}
	return tree
}

// Root returns the root node, nil for an empty tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Len returns the number of records in the tree.
func (t *Tree) Len() int {
	return t.count
}

func (t *Tree) IsEmpty() bool {
	return t.root == nil
}

// Height returns the height of the root, 0 for an empty tree.
func (t *Tree) Height() int {
	return t.root.Height()
}

// Min returns the node with the lowest id.
func (t *Tree) Min() *Node {
	return t.root.first()
}

// Max returns the node with the highest id.
func (t *Tree) Max() *Node {
	return t.root.last()
}

func (t *Tree) Stats() Stats {
	return t.stats
}

// Clear removes every record. Each released node is unlinked so that
// callers still holding a *Node cannot reach the rest of the tree.
func (t *Tree) Clear() {
	stack := make([]*Node, 0, t.root.Height())
	if t.root != nil {
		stack = append(stack, t.root)
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.left != nil {
			stack = append(stack, n.left)
		}
		if n.right != nil {
			stack = append(stack, n.right)
		}
		n.unlink()
	}
	t.root = nil
	t.count = 0
}

// replaceChild points whichever link of parent referred to oldChild at
// newChild. A nil parent means oldChild was the root.
func (t *Tree) replaceChild(parent, oldChild, newChild *Node) {
	if parent == nil {
		t.root = newChild
		return
	}
	if parent.left == oldChild {
		parent.left = newChild
	} else {
		parent.right = newChild
	}
}
