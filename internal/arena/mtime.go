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

package arena

import (
	"fmt"
	"math"
	"time"

	"github.com/go-dfm/dfm/clock"
)

const MtimeMax = 1<<MtimeBits - 1 // 31

// EncodeMtime compresses how long ago mtime was, relative to now, into a
// 5-bit log2(seconds-ago) bucket. A future mtime (clock skew) encodes as 0.
func EncodeMtime(now, mtime time.Time) uint8 {
	agoSecs := now.Sub(mtime).Seconds()
	if agoSecs <= 1 {
		return 0
	}
	bucket := int(math.Log2(agoSecs))
	if bucket > MtimeMax {
		bucket = MtimeMax
	}
	return uint8(bucket)
}

// agoUnit is the bucket-index-to-label table from ent_time_decode: six
// buckets of "s", six of "m", five each of "h"/"d", four of "w", and the
// rest "mo" out to MtimeMax. The index, not any real elapsed time, picks
// the label — bucket 17 is "32d", not "~1 day ago".
var agoUnit = [MtimeMax + 1]string{
	"s", "s", "s", "s", "s", "s",
	"m", "m", "m", "m", "m", "m",
	"h", "h", "h", "h", "h",
	"d", "d", "d", "d", "d",
	"w", "w", "w", "w",
	"mo", "mo", "mo", "mo", "mo", "mo",
}

// FormatAgo renders a bucket as a short "s/m/h/d/w/mo" value the nav bar and
// entry rows use: the label comes from the bucket index via agoUnit, and
// the displayed number is 1<<(index%6) — except the last bucket, which
// means "at least 32" of its unit and is rendered with a ">=" prefix
// instead of cycling the modulus back down.
func FormatAgo(bucket uint8) string {
	label := agoUnit[bucket]
	if bucket == MtimeMax {
		return fmt.Sprintf(">= %d%s", 1<<5, label)
	}
	return fmt.Sprintf("%d%s", 1<<(bucket%6), label)
}

// Now is a small convenience so callers carrying a clock.Clock don't import
// time directly just to encode an mtime.
func Now(c clock.Clock) time.Time {
	return c.Now()
}
