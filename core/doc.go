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


// Package core defines the domain model shared across Taxonomist.
//
// It contains the taxonomy node and tree types, the persisted file format
// (flat node lists with explicit parent references), the JSON response
// shapes exposed to the serving layer, and the sentinel errors used by the
// builder, registry and searcher.
//
// Trees are immutable once built: every structure in this package is safe
// for concurrent reads without locking.
package core
