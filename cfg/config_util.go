// Copyright 2024 Google LLC
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

// IsLoggingToFile reports whether the resolved config points logging at a
// file rather than stderr.
func IsLoggingToFile(config *Config) bool {
	return string(config.Logging.FilePath) != ""
}

// BookmarkPath resolves a 0-9 bookmark key to its configured path. The bool
// return is false when the key has no bookmark bound.
func BookmarkPath(config *Config, key string) (ResolvedPath, bool) {
	p, ok := config.Bookmarks[key]
	return p, ok
}
