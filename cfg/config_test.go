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

package cfg

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindFlagsRegistersShorthands(t *testing.T) {
	fs := pflag.NewFlagSet("dfm", pflag.ContinueOnError)

	require.NoError(t, BindFlags(fs))

	for _, tc := range []struct {
		long, short string
	}{
		{"hidden", "H"},
		{"picker", "p"},
		{"opener", "o"},
		{"sort", "s"},
		{"view", "v"},
	} {
		f := fs.Lookup(tc.long)
		if assert.NotNil(t, f, "missing flag --%s", tc.long) {
			assert.Equal(t, tc.short, f.Shorthand)
		}
	}
}

func TestBindFlagsPopulatesViper(t *testing.T) {
	viper.Reset()
	fs := pflag.NewFlagSet("dfm", pflag.ContinueOnError)
	require.NoError(t, BindFlags(fs))

	require.NoError(t, fs.Parse([]string{"-H", "-p", "-s", "e"}))

	assert.True(t, viper.GetBool("hidden"))
	assert.True(t, viper.GetBool("picker"))
	assert.Equal(t, "e", viper.GetString("sort"))
}
