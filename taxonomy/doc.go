// Copyright 2025 Poiesic Systems
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


// Package taxonomy builds, navigates and serves classification trees.
//
// BuildTree assembles a validated ownership tree from a flat node list;
// Flatten is its inverse, producing the persisted file format. The
// traversal helpers (FindNode, Ancestors, ImmediateChildren, CountNodes)
// are read-only and re-walk the tree on every call.
//
// A Taxonomy pairs one immutable tree with a derived search index. The
// Registry owns every (name, version) pair, rebuilding the full set from
// its data sources on Reload and swapping the result in atomically so
// concurrent readers always see a consistent snapshot.
package taxonomy
