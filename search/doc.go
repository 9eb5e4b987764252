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


// Package search implements hybrid ranked search over taxonomy nodes.
//
// The Searcher fuses two signals per document:
//
//   - Semantic: cosine similarity between the query embedding and the
//     document embedding, clamped to >= 0
//   - Lexical: per-query-token best Jaro-Winkler similarity against the
//     document tokens, aggregated with a power mean (exponent 4) and
//     squared
//
// The combined score is the element-wise maximum of the two. Candidates
// below the absolute threshold are excluded, a depth penalty favors
// shallower nodes, and the final order is made deterministic by composing
// three stable sorts (id ascending, name ascending, score descending).
//
// The NormalizedSearcher layers id resolution, the legacy "Uncategorized"
// id-collision rule, and batch min-max score rescaling on top.
//
// Search has no error path: empty or unmatched queries yield empty
// results, and a missing or failing embedding provider degrades scoring
// to lexical-only.
package search
