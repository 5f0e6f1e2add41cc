// Copyright 2025 Google LLC
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

package clock

import (
	"time"

	"github.com/jacobsa/timeutil"
)

// Implements Clock interface by delegating to jacobsa/timeutil's real clock,
// the same indirection the teacher keeps between its own clock package and
// jacobsa/timeutil so callers depend on this package's Clock interface
// rather than the upstream one directly.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return timeutil.RealClock().Now()
}

// Notifies on the return channel after the specified time has passed.
func (RealClock) After(d time.Duration) <-chan time.Time {
	return timeutil.RealClock().After(d)
}
