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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/go-dfm/dfm/internal/arena"
	"github.com/go-dfm/dfm/internal/filter"
	"github.com/go-dfm/dfm/internal/logger"
	"github.com/go-dfm/dfm/internal/lookup"
	"github.com/go-dfm/dfm/internal/sortfn"
)

// statEntry classifies one directory child into the physical record plus
// symlink target the arena wants, scanning its mode bits once.
func (l *Loop) statEntry(dir, name string) (arena.Physical, string, error) {
	full := filepath.Join(dir, name)
	info, err := os.Lstat(full)
	if err != nil {
		return arena.Physical{}, "", err
	}

	phys := arena.Physical{Hash: uint8(lookup.Hash(name) & 0x1f)}
	mode := info.Mode()

	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		phys.Perm = uint16(st.Mode & 0o7777)
	} else {
		phys.Perm = uint16(mode.Perm())
	}

	var link string
	switch {
	case mode&os.ModeSymlink != 0:
		if target, rlErr := os.Readlink(full); rlErr == nil {
			link = target
		}
		if tinfo, statErr := os.Stat(full); statErr != nil {
			phys.Type = arena.TypeBrokenLink
		} else if tinfo.IsDir() {
			phys.Type = arena.TypeLinkDir
		} else {
			phys.Type = arena.TypeLink
		}
	case mode.IsDir():
		phys.Type = arena.TypeDir
	case mode&os.ModeNamedPipe != 0:
		phys.Type = arena.TypeFifo
	case mode&os.ModeSocket != 0:
		phys.Type = arena.TypeSock
	case mode&(os.ModeDevice|os.ModeCharDevice) != 0:
		phys.Type = arena.TypeSpecial
	case mode.IsRegular():
		if mode.Perm()&0o111 != 0 {
			phys.Type = arena.TypeRegularExecutable
		} else {
			phys.Type = arena.TypeRegular
		}
	default:
		phys.Type = arena.TypeUnknown
	}

	phys.Size = arena.EncodeSize(uint64(info.Size()))
	phys.MtimeLog = arena.EncodeMtime(arena.Now(l.clock), info.ModTime())
	return phys, link, nil
}

// loadDirectory replaces l.dir's contents wholesale with path's current
// children: the full-reload path used by cd and by a watch-pump overflow.
func (l *Loop) loadDirectory(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("reading directory %q: %w", path, err)
	}

	l.dir.Reset()
	l.flags.clear(flagTrunc)

	for _, de := range entries {
		phys, link, statErr := l.statEntry(path, de.Name())
		if statErr != nil {
			// Vanished between ReadDir and Lstat (TOCTOU); skip it, the
			// watch pump will reconcile if it matters.
			continue
		}
		if err := l.dir.AddEntry(de.Name(), phys, link); err != nil {
			if errors.Is(err, arena.ErrCapacity) {
				l.flags.set(flagTrunc)
				l.setMessage("directory too large; truncated", true)
				break
			}
			return err
		}
	}

	l.sortAndFilter()
	l.rebuildLookupTable()
	l.marks.OnReload(l.dir, l.table, l.cwd, l.visible.Bits())
	return nil
}

// rebuildLookupTable discards and re-populates the shared hash table from
// scratch, sized generously for the current entry count — a full reload
// invalidates every previous name->index binding anyway (§5 Ordering).
func (l *Loop) rebuildLookupTable() {
	l.table = newSizedTable(l.dir.Len())
	l.drawer.Table = l.table
	for i := 0; i < l.dir.Len(); i++ {
		if l.dir.Entries[i].Tombstone {
			continue
		}
		l.table.InsertEntry(l.dir.Name(i), i)
	}
}

// newSizedTable sizes a fresh lookup table generously for n live entries
// plus render-cache headroom.
func newSizedTable(n int) *lookup.Table {
	hint := n*2 + 256
	return lookup.New(hint)
}

// sortAndFilter applies the current sort mode (rebuilding the name lookup
// table against the new order) and filter query/hidden state, then
// recomputes the mark subsystem's vml against the new visible set — the
// three steps fm_update runs together whenever FM_DIRTY is set.
func (l *Loop) sortAndFilter() {
	sortfn.Sort(l.dir, sortfn.For(l.sortMode))
	l.rebuildLookupTable()
	opts := filter.Options{ShowHidden: l.flags.has(flagHidden), Query: l.query}
	filter.Apply(l.dir, l.visible, opts)
	l.marks.Recompute(l.visible.Bits())
}

// cd materializes any live marks against the current directory (so they
// survive as a persisted list), then loads target wholesale and starts
// watching it. On failure the cwd is left unchanged, matching §7's
// "reverts any in-progress cwd change" filesystem-failure policy.
func (l *Loop) cd(target string) error {
	if l.cwd != "" {
		if err := l.marks.Materialize(l.dir, l.cwd); err != nil {
			logger.Warnf("core: materialize before cd: %v", err)
			l.flags.set(flagError)
			l.setMessage("mark arena full; cd aborted", true)
			return nil
		}
	}

	if err := l.loadDirectory(target); err != nil {
		l.flags.set(flagError)
		l.setMessage(err.Error(), true)
		return nil
	}

	if err := l.pump.Watch(target); err != nil {
		logger.Warnf("core: watch %s: %v", target, err)
	}

	l.cwd = target
	l.query = filter.Query{}
	l.editor.Reset()
	l.prompt = promptNone
	l.flags.clear(flagSearch)
	l.syncMarkPWDFlag()
	l.resetCursor()
	l.flags.set(flagRedrawAll)
	return nil
}

// setMessage stages text for the next frame's message/error overlay.
func (l *Loop) setMessage(text string, isError bool) {
	l.message = text
	l.flags.set(flagMsg)
	if isError {
		l.flags.set(flagMsgErr)
	} else {
		l.flags.clear(flagMsgErr)
	}
}
