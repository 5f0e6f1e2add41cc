// Copyright 2024 Google Inc. All Rights Reserved.
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

// Package watch is the platform filesystem-watch backend: it turns
// OS-level directory-change notifications into the core's four-symbol
// event vocabulary (add, delete, modify, overflow) and queues them for the
// core to drain between frames, in arrival order, with a reload
// superseding anything queued before it.
package watch

// Kind is one of the four event symbols the core's watch pump recognizes.
type Kind int

const (
	// KindOverflow ('!' in the spec's vocabulary) means the backend lost
	// track of individual changes (queue overflow, or the backend's own
	// notification mechanism reported a coalesced/overflowed batch) and
	// the core must do a full directory refresh.
	KindOverflow Kind = iota
	// KindAdd ('+') names an entry that appeared.
	KindAdd
	// KindDelete ('-') names an entry that disappeared.
	KindDelete
	// KindModify ('~') names an entry whose metadata changed; the core
	// applies this as a delete followed by an add.
	KindModify
)

// Event is one queued filesystem change.
type Event struct {
	Kind Kind
	Name string
}
