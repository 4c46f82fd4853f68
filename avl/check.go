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

// Check verifies the structural invariants of the tree: ordering, parent
// back references, balance, cached heights and the node count. It returns
// an *InvariantError for the first violation found.
func (t *Tree) Check() error {
	if t.root != nil && t.root.parent != nil {
		return &InvariantError{Key: t.root.key, Reason: "root has a parent"}
	}

	count := 0
	if _, err := check(t.root, nil, nil, nil, &count); err != nil {
		return err
	}
	if count != t.count {
		var key int64
		if t.root != nil {
			key = t.root.key
		}
		return &InvariantError{Key: key, Reason: "node count does not match Len"}
	}
	return nil
}

// check returns the recomputed height of the subtree rooted at n. lo and hi
// are the exclusive key bounds inherited from the ancestors.
func check(n, parent *Node, lo, hi *int64, count *int) (int, error) {
	if n == nil {
		return 0, nil
	}
	*count++

	if n.parent != parent {
		return 0, &InvariantError{Key: n.key, Reason: "stale parent reference"}
	}
	if lo != nil && n.key <= *lo {
		return 0, &InvariantError{Key: n.key, Reason: "key not greater than an ancestor on its left"}
	}
	if hi != nil && n.key >= *hi {
		return 0, &InvariantError{Key: n.key, Reason: "key not less than an ancestor on its right"}
	}

	lh, err := check(n.left, n, lo, &n.key, count)
	if err != nil {
		return 0, err
	}
	rh, err := check(n.right, n, &n.key, hi, count)
	if err != nil {
		return 0, err
	}

	if bf := lh - rh; bf > 1 || bf < -1 {
		return 0, &InvariantError{Key: n.key, Reason: "subtree heights differ by more than one"}
	}
	h := max(lh, rh) + 1
	if h != n.height {
		return 0, &InvariantError{Key: n.key, Reason: "cached height is stale"}
	}
	return h, nil
}
