/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

// Namespace maps a deprecated plugin name prefix to the prefix that replaced it.
// Loaders use it to turn an opaque "not found" into actionable guidance.
type Namespace struct {
	// Deprecated is the legacy prefix, e.g. "com.pivotal.pxf".
	Deprecated string `mapstructure:"deprecated"`
	// Current is the prefix plugins must use instead, e.g. "org.greenplum.pxf".
	Current string `mapstructure:"current"`
}

// Config carries read-only knobs for the decision core.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// FragmenterCacheEnabled reports whether the surrounding service may
	// cache fragmenter output between requests.
	FragmenterCacheEnabled bool `mapstructure:"fragmenter_cache_enabled"`

	// LegacyNamespaces lists deprecated plugin prefixes and their replacements.
	LegacyNamespaces []Namespace `mapstructure:"legacy_namespaces"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	LogLevel string `mapstructure:"log_level"`

	// ConstructWorkers bounds how many plugins a pipeline constructs
	// concurrently for one request.
	ConstructWorkers int `mapstructure:"construct_workers"`
}
