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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeSizeRoundTripsWithinRelativeAccuracy(t *testing.T) {
	for _, bytes := range []uint64{0, 1, 42, 1024, 1 << 20, 1 << 40, 1 << 50} {
		encoded := EncodeSize(bytes)
		decoded := DecodeSize(encoded)

		if bytes == 0 {
			assert.Equal(t, uint64(0), decoded)
			continue
		}

		relErr := math.Abs(float64(decoded)-float64(bytes)) / float64(bytes)
		assert.LessOrEqual(t, relErr, 0.02, "bytes=%d decoded=%d", bytes, decoded)
	}
}

func TestAddSizePreservesApproximateSum(t *testing.T) {
	a := EncodeSize(1000)
	b := EncodeSize(2000)

	sum := DecodeSize(AddSize(a, b))

	relErr := math.Abs(float64(sum)-3000) / 3000
	assert.LessOrEqual(t, relErr, 0.05)
}

func TestSubSizeClampsAtZero(t *testing.T) {
	a := EncodeSize(10)
	b := EncodeSize(1000)

	assert.Equal(t, Size(0), SubSize(a, b))
}
