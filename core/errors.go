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


package core

import "errors"

// Domain errors. Construction errors abort the load of the payload that
// raised them; lookup errors are reported to the caller.
var (
	// ErrSchema indicates a taxonomy payload is missing required fields.
	ErrSchema = errors.New("taxonomy payload failed schema validation")

	// ErrDuplicateId indicates two nodes in one payload share an id.
	ErrDuplicateId = errors.New("duplicate node id")

	// ErrUnknownParent indicates a node references a parent id that has not
	// been declared earlier in the node list.
	ErrUnknownParent = errors.New("unknown parent id")

	// ErrNotFound indicates an unknown taxonomy name, version or node id.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguousId indicates multiple records share an id outside the
	// known legacy "Uncategorized" collision. This is a data-integrity
	// fault and is never silently resolved.
	ErrAmbiguousId = errors.New("ambiguous node id")
)
