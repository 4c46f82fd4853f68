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

// Insert adds a record under key. If key is already in use the tree is
// left untouched and an error wrapping ErrDuplicateKey is returned.
func (t *Tree) Insert(key int64, age int, name string) error {
	record := Record{Age: age, Name: name}

	// first element in the tree
	if t.root == nil {
		t.root = newNode(key, record, nil)
		t.count = 1
		t.stats.Inserts++
		return nil
	}

	// parent ends on the last non-nil node visited, movedLeft records the
	// direction of the final step
	parent := t.root
	movedLeft := false
	for next := t.root; next != nil; {
		parent = next
		switch {
		case key < parent.key:
			next = parent.left
			movedLeft = true
		case key > parent.key:
			next = parent.right
			movedLeft = false
		default:
			t.stats.DuplicateKeys++
			t.log.Debug().Int64("id", key).Msg("id already in use")
			return fmt.Errorf("insert %d: %w", key, ErrDuplicateKey)
		}
	}

	n := newNode(key, record, parent)
	if movedLeft {
		parent.left = n
	} else {
		parent.right = n
	}
	t.count++
	t.stats.Inserts++

	t.rebalance(parent)
	return nil
}
