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
)

// Delete removes the record held under key. If there is none the tree is
// left untouched and an error wrapping ErrNotFound is returned.
//
// With two children the in-order successor node itself is moved into the
// removed node's place, so a *Node previously returned by Find for the
// successor's id remains valid.
func (t *Tree) Delete(key int64) error {
	target := t.Find(key)
	if target == nil {
		t.stats.MissingKeys++
		t.log.Debug().Int64("id", key).Msg("node does not exist")
		return fmt.Errorf("delete %d: %w", key, ErrNotFound)
	}

	parent := target.parent
	var from *Node // lowest node whose subtree height may have changed

	switch {
	case target.left == nil && target.right == nil:
		t.replaceChild(parent, target, nil)
		from = parent

	case target.right == nil:
		target.left.parent = parent
		t.replaceChild(parent, target, target.left)
		from = parent

	case target.left == nil:
		target.right.parent = parent
		t.replaceChild(parent, target, target.right)
		from = parent

	default:
		from = t.spliceSuccessor(target)
	}

	target.unlink()
	t.count--
	t.stats.Deletes++

	t.rebalance(from)
	return nil
}

// spliceSuccessor moves the in-order successor of target, which has two
// children, into target's position and returns the node the re-balancing
// walk has to start from.
func (t *Tree) spliceSuccessor(target *Node) *Node {
	succ := target.right.first()
	parent := target.parent

	var from *Node
	if succ == target.right {
		// direct right child: it keeps its right subtree
		from = succ
	} else {
		// deeper: push the successor's right child up into its old slot
		from = succ.parent
		from.left = succ.right
		if succ.right != nil {
			succ.right.parent = from
		}

		succ.right = target.right
		succ.right.parent = succ
	}

	succ.left = target.left
	succ.left.parent = succ

	succ.parent = parent
	t.replaceChild(parent, target, succ)

	return from
}
