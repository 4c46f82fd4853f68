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
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeCollector(t *testing.T) {
	s, _ := newTestSession(t)
	run(t, s,
		"insert 1 1 a", "insert 2 2 b", "insert 3 3 c",
		"insert 3 3 again",
		"delete 2", "delete 9",
	)

	assert.Equal(t, 8, testutil.CollectAndCount(newTreeCollector(s)))

	expected := `
# HELP roster_tree_height Height of the tree, counting a lone root as 1.
# TYPE roster_tree_height gauge
roster_tree_height 2
# HELP roster_tree_operations_total Tree operations by kind and outcome.
# TYPE roster_tree_operations_total counter
roster_tree_operations_total{op="delete",outcome="missing"} 1
roster_tree_operations_total{op="delete",outcome="ok"} 1
roster_tree_operations_total{op="insert",outcome="duplicate"} 1
roster_tree_operations_total{op="insert",outcome="ok"} 3
# HELP roster_tree_records Number of records held in the tree.
# TYPE roster_tree_records gauge
roster_tree_records 2
# HELP roster_tree_rotations_total Rebalancing rotations by kind.
# TYPE roster_tree_rotations_total counter
roster_tree_rotations_total{kind="double"} 0
roster_tree_rotations_total{kind="single"} 1
`
	reg := newMetricsRegistry(s)
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected)))
}

type snapshotFunc func() TreeSnapshot

func (f snapshotFunc) Snapshot() TreeSnapshot { return f() }

func TestTreeCollectorReadsAtScrapeTime(t *testing.T) {
	snap := &TreeSnapshot{Len: 1, Height: 1}
	reg := newMetricsRegistry(snapshotFunc(func() TreeSnapshot { return *snap }))

	expected := func(n int) string {
		return "# HELP roster_tree_records Number of records held in the tree.\n" +
			"# TYPE roster_tree_records gauge\n" +
			"roster_tree_records " + strconv.Itoa(n) + "\n"
	}
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected(1)), "roster_tree_records"))

	snap.Len = 4
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected(4)), "roster_tree_records"))
}
