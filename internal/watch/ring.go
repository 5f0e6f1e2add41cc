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

package watch

import (
	"github.com/jacobsa/syncutil"

	"github.com/go-dfm/dfm/common"
)

// ringCapacity bounds how many queued events a backend may accumulate
// between Drain calls before the queue collapses to a single overflow
// marker — the fixed-size ring the spec describes for the macOS FSEvents
// backend's background-thread crossing, generalized here to guard every
// backend's event delivery rather than just that one platform's.
const ringCapacity = 4096

// safeQueue is a mutex-protected FIFO of Events, safe to push from a
// backend's own delivery goroutine (fsnotify's internal reader, or a
// platform thread for an FSEvents-style backend) while the single-
// threaded core drains it between frames. The mutex is an
// syncutil.InvariantMutex in the teacher's own locking style (fs/inode's
// directory and file locks), checking that the queue never silently grows
// past ringCapacity without collapsing to an overflow marker.
type safeQueue struct {
	mu syncutil.InvariantMutex
	q  common.Queue[Event]
}

func newSafeQueue() *safeQueue {
	s := &safeQueue{q: common.NewLinkedListQueue[Event]()}
	s.mu = syncutil.NewInvariantMutex(s.checkInvariants)
	return s
}

func (s *safeQueue) checkInvariants() {
	if s.q.Len() > ringCapacity {
		panic("watch: queue exceeded capacity without collapsing to overflow")
	}
}

// push enqueues e, collapsing the whole queue to one KindOverflow event if
// it has reached capacity — a reload supersedes everything queued before
// it, so a full backend queue is better treated as "something changed,
// refresh everything" than dropped silently.
func (s *safeQueue) push(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.q.Len() >= ringCapacity {
		s.clearLocked()
		s.q.Push(Event{Kind: KindOverflow})
		return
	}
	s.q.Push(e)
}

// reset clears the queue and enqueues a single event, used when the
// watched directory changes: anything queued for the old directory is
// moot once the caller is about to do a full refresh of the new one.
func (s *safeQueue) reset(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.q.Push(e)
}

func (s *safeQueue) clearLocked() {
	for !s.q.IsEmpty() {
		s.q.Pop()
	}
}

// drain removes and returns every currently queued event, in arrival
// order.
func (s *safeQueue) drain() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, 0, s.q.Len())
	for !s.q.IsEmpty() {
		out = append(out, s.q.Pop())
	}
	return out
}
