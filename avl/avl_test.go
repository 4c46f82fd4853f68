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

package avl_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/roster/avl"
)

// build inserts keys in order, using the key to derive the payload.
func build(t *testing.T, keys ...int64) *avl.Tree {
	t.Helper()
	tree := avl.New()
	for _, k := range keys {
		require.NoError(t, tree.Insert(k, int(k%90)+10, nameFor(k)))
		require.NoError(t, tree.Check(), "after inserting %d", k)
	}
	return tree
}

func nameFor(k int64) string {
	names := []string{"ada", "brian", "claude", "dennis", "edsger", "frances", "grace"}
	return names[int(k)%len(names)]
}

func inOrderKeys(tree *avl.Tree) []int64 {
	keys := []int64{}
	tree.Walk(func(n *avl.Node) bool {
		keys = append(keys, n.Key())
		return true
	})
	return keys
}

// shape describes a node and its children, 0 meaning absent.
type shape struct {
	root, left, right int64
}

func shapeOf(n *avl.Node) shape {
	s := shape{root: n.Key()}
	if n.Left() != nil {
		s.left = n.Left().Key()
	}
	if n.Right() != nil {
		s.right = n.Right().Key()
	}
	return s
}

func TestInsertRotations(t *testing.T) {
	testCases := []struct {
		Name   string
		Keys   []int64
		Single uint64
		Double uint64
	}{
		{Name: "ascending triggers single rotation", Keys: []int64{10, 20, 30}, Single: 1},
		{Name: "descending triggers single rotation", Keys: []int64{30, 20, 10}, Single: 1},
		{Name: "left-right triggers double rotation", Keys: []int64{30, 10, 20}, Double: 1},
		{Name: "right-left triggers double rotation", Keys: []int64{10, 30, 20}, Double: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tree := build(t, tc.Keys...)

			root := tree.Root()
			require.NotNil(t, root)
			assert.Equal(t, shape{root: 20, left: 10, right: 30}, shapeOf(root))
			assert.Nil(t, root.Parent())
			assert.Equal(t, root, root.Left().Parent())
			assert.Equal(t, root, root.Right().Parent())

			for _, n := range []*avl.Node{root, root.Left(), root.Right()} {
				assert.Equal(t, 0, n.BalanceFactor(), "balance of %d", n.Key())
			}
			assert.Equal(t, 2, tree.Height())

			stats := tree.Stats()
			assert.Equal(t, tc.Single, stats.SingleRotations)
			assert.Equal(t, tc.Double, stats.DoubleRotations)
		})
	}
}

// The inner grandchild exists here but the outer one is taller, so only a
// single rotation keeps every node balanced.
func TestInsertOuterGrandchildTaller(t *testing.T) {
	tree := build(t, 50, 30, 70, 20, 40, 10)

	assert.Equal(t, shape{root: 30, left: 20, right: 50}, shapeOf(tree.Root()))
	assert.Equal(t, shape{root: 50, left: 40, right: 70}, shapeOf(tree.Root().Right()))
	assert.Equal(t, uint64(1), tree.Stats().SingleRotations)
	assert.Equal(t, uint64(0), tree.Stats().DoubleRotations)
}

func TestInsertFirstKeyBecomesRoot(t *testing.T) {
	tree := avl.New()
	require.True(t, tree.IsEmpty())

	require.NoError(t, tree.Insert(7, 33, "grace"))

	root := tree.Root()
	require.NotNil(t, root)
	assert.Equal(t, int64(7), root.Key())
	assert.Nil(t, root.Parent())
	assert.Equal(t, 1, root.Height())
	assert.Equal(t, 1, tree.Len())
}

func TestInsertDuplicateLeavesTreeUnchanged(t *testing.T) {
	tree := build(t, 50, 30, 70, 20, 40)
	before := inOrderKeys(tree)
	rootBefore := shapeOf(tree.Root())
	original := tree.Find(40).Record()

	err := tree.Insert(40, 99, "impostor")
	require.ErrorIs(t, err, avl.ErrDuplicateKey)

	assert.Equal(t, before, inOrderKeys(tree))
	assert.Equal(t, rootBefore, shapeOf(tree.Root()))
	assert.Equal(t, original, tree.Find(40).Record())
	assert.Equal(t, 5, tree.Len())
	assert.Equal(t, uint64(1), tree.Stats().DuplicateKeys)
	require.NoError(t, tree.Check())
}

func TestFindReturnsInsertedRecords(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tree := avl.New()
	want := map[int64]avl.Record{}

	for len(want) < 500 {
		k := rng.Int63n(10_000) + 1
		if _, ok := want[k]; ok {
			continue
		}
		r := avl.Record{Age: rng.Intn(80) + 18, Name: nameFor(k)}
		require.NoError(t, tree.Insert(k, r.Age, r.Name))
		want[k] = r
	}
	require.NoError(t, tree.Check())

	for k, r := range want {
		n := tree.Find(k)
		require.NotNil(t, n, "id %d", k)
		assert.Equal(t, k, n.Key())
		assert.Equal(t, r, n.Record())
		assert.Equal(t, r.Age, n.Age())
		assert.Equal(t, r.Name, n.Name())
	}
	assert.Nil(t, tree.Find(0))
	assert.Nil(t, tree.Find(10_001))
}

func TestFindOnEmptyTree(t *testing.T) {
	assert.Nil(t, avl.New().Find(1))
}

func TestAscendingInsertsStayLogarithmic(t *testing.T) {
	tree := avl.New()
	for k := int64(1); k <= 1023; k++ {
		require.NoError(t, tree.Insert(k, 30, "seq"))
	}
	require.NoError(t, tree.Check())
	// a perfect tree of 1023 nodes has height 10
	assert.Equal(t, 10, tree.Height())
	assert.Equal(t, int64(1), tree.Min().Key())
	assert.Equal(t, int64(1023), tree.Max().Key())
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tree := avl.New()
	model := map[int64]bool{}

	for i := 0; i < 5000; i++ {
		k := rng.Int63n(400)
		if rng.Intn(3) == 0 {
			err := tree.Delete(k)
			if model[k] {
				require.NoError(t, err)
				delete(model, k)
			} else {
				require.ErrorIs(t, err, avl.ErrNotFound)
			}
		} else {
			err := tree.Insert(k, 20, "x")
			if model[k] {
				require.ErrorIs(t, err, avl.ErrDuplicateKey)
			} else {
				require.NoError(t, err)
				model[k] = true
			}
		}
		require.NoError(t, tree.Check(), "step %d", i)
		require.Equal(t, len(model), tree.Len())
	}

	keys := inOrderKeys(tree)
	for i := 1; i < len(keys); i++ {
		require.Less(t, keys[i-1], keys[i])
	}
}

func TestDepth(t *testing.T) {
	tree := build(t, 50, 30, 70, 20)
	assert.Equal(t, 0, tree.Find(50).Depth())
	assert.Equal(t, 1, tree.Find(30).Depth())
	assert.Equal(t, 2, tree.Find(20).Depth())
}

func TestClear(t *testing.T) {
	tree := build(t, 50, 30, 70, 20, 40, 60, 80)
	held := tree.Find(30)

	tree.Clear()

	assert.True(t, tree.IsEmpty())
	assert.Equal(t, 0, tree.Len())
	assert.Nil(t, tree.Find(30))
	assert.Nil(t, held.Parent())
	assert.Nil(t, held.Left())
	assert.Nil(t, held.Right())
	require.NoError(t, tree.Check())
}
