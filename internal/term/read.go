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

package term

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

// ErrTimeout is returned by ReadByte when no byte arrives within the
// given timeout — the inter-byte wait used while decoding a CSI/SS3
// escape sequence, which must not block the event loop indefinitely if a
// lone ESC turns out not to be the start of a sequence.
var ErrTimeout = errors.New("term: read timed out")

// ReadByte blocks for up to timeout waiting for one byte on the tty,
// returning ErrTimeout if none arrives. A zero timeout polls once and
// returns immediately.
func (t *Terminal) ReadByte(timeout time.Duration) (byte, error) {
	fd := int(t.f.Fd())
	ms := int(timeout / time.Millisecond)
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, ms)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, ErrTimeout
		}
		return 0, err
	}
	if n == 0 {
		return 0, ErrTimeout
	}
	var buf [1]byte
	if _, err := t.f.Read(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}
