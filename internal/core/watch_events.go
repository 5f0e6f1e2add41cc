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

package core

import (
	"github.com/google/uuid"

	"github.com/go-dfm/dfm/internal/logger"
	"github.com/go-dfm/dfm/internal/spawn"
	"github.com/go-dfm/dfm/internal/watch"
)

// backgroundJob tracks one "&"-launched command: the spawned child plus a
// uuid tag so concurrent background exits can be told apart in the log,
// since several may be in flight (and several may finish on the same
// tick) with nothing else distinguishing their log lines.
type backgroundJob struct {
	id      uuid.UUID
	summary string
	proc    *spawn.Background
	done    <-chan spawn.Classification
}

// reapBackground polls every in-flight background job without blocking,
// logging and dropping each one that has finished.
func (l *Loop) reapBackground() {
	if len(l.background) == 0 {
		return
	}
	live := l.background[:0]
	for _, job := range l.background {
		select {
		case cls := <-job.done:
			msg := cls.Message()
			if msg == "" {
				logger.Infof("core: background [%s] done: %s", job.id, job.summary)
			} else {
				logger.Warnf("core: background [%s] %s: %s", job.id, msg, job.summary)
			}
		default:
			live = append(live, job)
		}
	}
	l.background = live
}

// cursorName returns the name under the cursor, or "" if nothing is
// selected (an empty directory, or the filter matched nothing).
func (l *Loop) cursorName() string {
	if l.cursorIdx < 0 || l.cursorIdx >= l.dir.Len() {
		return ""
	}
	return l.dir.Name(l.cursorIdx)
}

// applyWatchEvents drains whatever the platform watch pump queued since
// the last tick and folds it into the arena: an overflow forces a full
// reload and supersedes anything else in the batch (fm_watch_handle's
// '!' case), while add/delete/modify mutate incrementally. Any event
// marks the directory dirty so update's sort/filter/cursor-sync pass
// picks the change up.
func (l *Loop) applyWatchEvents() {
	events := l.pump.Drain()
	for _, ev := range events {
		switch ev.Kind {
		case watch.KindOverflow:
			if err := l.loadDirectory(l.cwd); err != nil {
				l.flags.set(flagError)
				l.setMessage(err.Error(), true)
			}
			l.flags.set(flagDirty)
			return
		case watch.KindAdd:
			l.applyAdd(ev.Name)
		case watch.KindDelete:
			l.applyDelete(ev.Name)
		case watch.KindModify:
			l.applyDelete(ev.Name)
			l.applyAdd(ev.Name)
		}
		l.flags.set(flagDirty)
	}
}

// applyAdd stats a newly-appeared child and inserts it, truncating (with
// a status message) rather than failing if the arena is full.
func (l *Loop) applyAdd(name string) {
	if idx, found := l.table.FindEntry(name); found && !l.dir.Entries[idx].Tombstone {
		return
	}
	phys, link, err := l.statEntry(l.cwd, name)
	if err != nil {
		return // vanished again before we could stat it; nothing to add
	}
	idx := l.dir.Len()
	if err := l.dir.AddEntry(name, phys, link); err != nil {
		l.flags.set(flagTrunc)
		l.setMessage("directory too large; truncated", true)
		return
	}
	l.table.InsertEntry(name, idx)
}

// applyDelete tombstones a vanished child; its slot stays in the arena
// until the next full reload, and the next sort/filter pass rebuilds the
// table without it.
func (l *Loop) applyDelete(name string) {
	idx, found := l.table.FindEntry(name)
	if !found {
		return
	}
	l.dir.Entries[idx].Tombstone = true
	l.dir.Entries[idx].Visible = false
}

// update is the loop's per-tick housekeeping: reap finished background
// commands, fold in watch events, and — if anything left the directory
// dirty — re-sort, re-filter, and restore the cursor, matching fm_update.
func (l *Loop) update() {
	l.reapBackground()
	l.applyWatchEvents()

	if !l.flags.has(flagDirty) {
		return
	}
	l.flags.clear(flagDirty)
	l.flags.set(flagRedrawDir | flagRedrawNav)

	saved := l.cursorName()
	l.sortAndFilter()

	if l.flags.has(flagDirtyWithin) && l.pendingScrollName != "" {
		l.syncCursorByName(l.pendingScrollName)
		l.flags.clear(flagDirtyWithin)
		l.pendingScrollName = ""
	} else {
		l.syncCursorByName(saved)
	}
}
