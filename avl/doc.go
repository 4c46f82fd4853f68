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

// Package avl implements a self-balancing binary search tree holding
// personnel records under a unique integer id.
//
// Every node keeps a back reference to its parent. The back reference
// never owns anything: it is used to climb from a mutation point to the
// root while re-balancing, and to re-link a neighbourhood during rotations
// and deletions.
//
// Heights count nodes, not edges: a leaf has height 1 and an absent
// subtree height 0. A node is out of balance when the heights of its two
// subtrees differ by two or more.
//
// A Tree is not safe for concurrent use. Callers that share a tree between
// goroutines must serialise access themselves, for example with a mutex
// around the whole tree.
package avl
