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


// Package ai provides the embedding abstraction used by Taxonomist.
//
// The search index depends on the Embedder interface rather than on a
// concrete client, so the embedding provider is injected at taxonomy
// construction time and its lifecycle is owned by the caller, not by
// ambient process state. A nil Embedder is a valid configuration: it
// disables semantic scoring and search degrades to lexical-only.
//
// Two implementation sub-packages are included:
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//   - ai/mock: deterministic test double with behavior injection
//
// Public constructors (openai.NewEmbedder) return the interface type to
// enforce abstraction; the mock constructor returns the concrete type so
// tests can inject behavior and make assertions.
package ai
