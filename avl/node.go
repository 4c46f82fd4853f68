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

// Record is the payload carried by every node.
type Record struct {
	Age  int
	Name string
}

// Node holds one record. Left and right are owned by the node; parent is a
// back reference, nil only for the root.
type Node struct {
	key    int64
	record Record
	height int

	left   *Node
	right  *Node
	parent *Node
}

func newNode(key int64, record Record, parent *Node) *Node {
	return &Node{
		key:    key,
		record: record,
		height: 1,
		parent: parent,
	}
}

// Key returns the node id.
func (n *Node) Key() int64 {
	return n.key
}

// Record returns a copy of the payload.
func (n *Node) Record() Record {
	return n.record
}

func (n *Node) Age() int {
	return n.record.Age
}

func (n *Node) Name() string {
	return n.record.Name
}

func (n *Node) Left() *Node {
	return n.left
}

func (n *Node) Right() *Node {
	return n.right
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Height returns the number of nodes on the longest downward path from n.
// A nil node has height 0.
func (n *Node) Height() int {
	if n == nil {
		return 0
	}
	return n.height
}

// BalanceFactor returns height(left) - height(right).
func (n *Node) BalanceFactor() int {
	if n == nil {
		return 0
	}
	return n.left.Height() - n.right.Height()
}

// Depth returns the number of edges between n and the root.
func (n *Node) Depth() int {
	depth := 0
	for p := n.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

func (n *Node) updateHeight() {
	n.height = max(n.left.Height(), n.right.Height()) + 1
}

// leftmost node of the subtree rooted at n
func (n *Node) first() *Node {
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

// rightmost node of the subtree rooted at n
func (n *Node) last() *Node {
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}
	return n
}

// unlink clears every link so a removed node cannot reach the tree.
func (n *Node) unlink() {
	n.left = nil
	n.right = nil
	n.parent = nil
}
