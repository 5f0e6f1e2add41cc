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

package command

import "errors"

// ErrAborted is the error a caller should surface when ResolveConflicts
// returns Aborted: the user chose to cancel the whole command rather than
// resolve individual conflicts.
var ErrAborted = errors.New("command: aborted by user")

// Response is the user's answer to one conflict prompt.
type Response int

const (
	Abort Response = iota
	Yes
	YesAll
	No
	NoAll
)

// Outcome is the result of running ResolveConflicts over an operand set.
type Outcome int

const (
	// Proceed: execute with the returned (possibly narrowed) operand list.
	Proceed Outcome = iota
	// Aborted: the user chose [a]bort; the whole command is cancelled.
	Aborted
	// DroppedAll: the user chose [N]o-all; every mark is dropped and
	// nothing executes, without treating it as an error.
	DroppedAll
)

// ResolveConflicts walks names and, for every one that already exists in
// the destination (per exists), asks prompt how to proceed — except once
// the user answers Yes-all or the walk hits No-all, which settle the rest
// of the set without prompting again.
func ResolveConflicts(names []string, exists func(name string) bool, prompt func(name string) Response) ([]string, Outcome) {
	var sticky *Response
	out := make([]string, 0, len(names))

	for _, n := range names {
		if !exists(n) {
			out = append(out, n)
			continue
		}

		resp := Response(-1)
		if sticky != nil {
			resp = *sticky
		} else {
			resp = prompt(n)
		}

		switch resp {
		case Abort:
			return nil, Aborted
		case NoAll:
			return nil, DroppedAll
		case YesAll:
			r := YesAll
			sticky = &r
			out = append(out, n)
		case Yes:
			out = append(out, n)
		case No:
			// drop this one operand only, keep prompting for the rest
		}
	}
	return out, Proceed
}
