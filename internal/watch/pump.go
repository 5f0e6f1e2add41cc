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
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Pump watches one directory at a time, translating fsnotify's event
// stream into the core's add/delete/modify/overflow vocabulary. fsnotify
// wraps inotify on Linux, kqueue on BSD/Darwin, and ReadDirectoryChangesW
// on Windows behind one API, so this one backend satisfies every
// platform the spec's "platform filesystem-watch backend" collaborator
// names without per-OS build tags in this package.
type Pump struct {
	fsw   *fsnotify.Watcher
	queue *safeQueue
	dir   string
	done  chan struct{}
}

// NewPump starts an fsnotify watcher and its background translation
// goroutine. The pump watches nothing until Watch is called.
func NewPump() (*Pump, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	p := &Pump{fsw: fsw, queue: newSafeQueue(), done: make(chan struct{})}
	go p.forward()
	return p, nil
}

// forward runs on fsnotify's own goroutine, pushing translated events into
// the mutex-protected queue; it is the crossing point the spec assigns to
// a background thread for the macOS FSEvents backend, generalized here to
// every backend fsnotify can be built against.
func (p *Pump) forward() {
	for {
		select {
		case ev, ok := <-p.fsw.Events:
			if !ok {
				close(p.done)
				return
			}
			p.queue.push(translate(ev))
		case _, ok := <-p.fsw.Errors:
			if !ok {
				close(p.done)
				return
			}
			// A backend-reported error (e.g. a dropped kernel event
			// queue) is indistinguishable from "something changed that
			// we can no longer account for precisely": treat it as
			// overflow rather than surfacing the error to the core.
			p.queue.push(Event{Kind: KindOverflow})
		}
	}
}

func translate(ev fsnotify.Event) Event {
	name := filepath.Base(ev.Name)
	switch {
	case ev.Op&fsnotify.Create != 0:
		return Event{Kind: KindAdd, Name: name}
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		return Event{Kind: KindDelete, Name: name}
	default: // Write, Chmod
		return Event{Kind: KindModify, Name: name}
	}
}

// Watch switches the watched directory to dir, discarding anything queued
// for the previous one and enqueuing a single overflow event so the core
// performs a full refresh of the new directory rather than trying to
// reconcile stale per-entry deltas against it.
func (p *Pump) Watch(dir string) error {
	if p.dir != "" {
		_ = p.fsw.Remove(p.dir)
	}
	if err := p.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch: add %s: %w", dir, err)
	}
	p.dir = dir
	p.queue.reset(Event{Kind: KindOverflow})
	return nil
}

// Drain removes and returns every event queued since the last call, in
// arrival order, except that an overflow event anywhere in the batch
// supersedes everything queued before it (the spec's reload-supersedes
// rule): the core only needs to see the overflow in that case.
func (p *Pump) Drain() []Event {
	events := p.queue.drain()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Kind == KindOverflow {
			return events[i:]
		}
	}
	return events
}

// Close stops the fsnotify watcher and its translation goroutine.
func (p *Pump) Close() error {
	err := p.fsw.Close()
	<-p.done
	return err
}
