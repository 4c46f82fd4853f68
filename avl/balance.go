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

// rebalance climbs from n to the root. At every ancestor the cached height
// is refreshed and an imbalance of two or more is corrected with a single
// or double rotation. The walk always re-reads n.parent after rotating, so
// it continues from the node rotated into n's old position.
func (t *Tree) rebalance(n *Node) {
	for n != nil {
		n.updateHeight()

		switch bf := n.BalanceFactor(); {
		case bf >= 2:
			// left-right: the left child leans right, straighten it first
			if n.left.BalanceFactor() < 0 {
				t.rotateLeft(n.left)
				t.stats.DoubleRotations++
				t.log.Trace().Int64("id", n.key).Msg("left-right rotation")
			} else {
				t.stats.SingleRotations++
				t.log.Trace().Int64("id", n.key).Msg("left-left rotation")
			}
			t.rotateRight(n)
		case bf <= -2:
			// right-left: the right child leans left
			if n.right.BalanceFactor() > 0 {
				t.rotateRight(n.right)
				t.stats.DoubleRotations++
				t.log.Trace().Int64("id", n.key).Msg("right-left rotation")
			} else {
				t.stats.SingleRotations++
				t.log.Trace().Int64("id", n.key).Msg("right-right rotation")
			}
			t.rotateLeft(n)
		}

		n = n.parent
	}
}

// rotateLeft lifts n.right into n's position. n becomes the left child of
// its former right child and adopts that child's left subtree.
func (t *Tree) rotateLeft(n *Node) {
	pivot := n.right
	if pivot == nil {
		return
	}

	n.right = pivot.left
	if pivot.left != nil {
		pivot.left.parent = n
	}

	pivot.parent = n.parent
	t.replaceChild(n.parent, n, pivot)

	pivot.left = n
	n.parent = pivot

	n.updateHeight()
	pivot.updateHeight()
}

// rotateRight lifts n.left into n's position. n becomes the right child of
// its former left child and adopts that child's right subtree.
func (t *Tree) rotateRight(n *Node) {
	pivot := n.left
	if pivot == nil {
		return
	}

	n.left = pivot.right
	if pivot.right != nil {
		pivot.right.parent = n
	}

	pivot.parent = n.parent
	t.replaceChild(n.parent, n, pivot)

	pivot.right = n
	n.parent = pivot

	n.updateHeight()
	pivot.updateHeight()
}
