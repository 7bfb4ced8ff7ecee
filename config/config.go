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

package config

import (
	"slices"

	"dirpx.dev/fdx/apis"
)

const (
	// DefaultFragmenterCacheEnabled represents the default for FragmenterCacheEnabled.
	DefaultFragmenterCacheEnabled = true
	// DefaultLogLevel represents the default for LogLevel.
	DefaultLogLevel = "info"
	// DefaultConstructWorkers represents the default for ConstructWorkers.
	// A request constructs an accessor and a resolver, so two is enough.
	DefaultConstructWorkers = 2
)

// DefaultLegacyNamespaces returns the default LegacyNamespaces.
func DefaultLegacyNamespaces() []apis.Namespace {
	return []apis.Namespace{{Deprecated: "com.pivotal.pxf", Current: "org.greenplum.pxf"}}
}

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return normalize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		FragmenterCacheEnabled: DefaultFragmenterCacheEnabled,
		LegacyNamespaces:       DefaultLegacyNamespaces(),
		LogLevel:               DefaultLogLevel,
		ConstructWorkers:       DefaultConstructWorkers,
	}
}

// normalize resets out-of-range values to their defaults.
func normalize(cfg apis.Config) apis.Config {
	if cfg.ConstructWorkers < 1 {
		cfg.ConstructWorkers = DefaultConstructWorkers
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	return cfg
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithFragmenterCacheEnabled sets the FragmenterCacheEnabled option.
func WithFragmenterCacheEnabled(enabled bool) Option {
	return func(c *apis.Config) {
		c.FragmenterCacheEnabled = enabled
	}
}

// WithLegacyNamespaces replaces the LegacyNamespaces option.
// A nil slice disables legacy name hints.
func WithLegacyNamespaces(ns ...apis.Namespace) Option {
	return func(c *apis.Config) {
		c.LegacyNamespaces = slices.Clone(ns)
	}
}

// WithLogLevel sets the LogLevel option.
func WithLogLevel(level string) Option {
	return func(c *apis.Config) {
		c.LogLevel = level
	}
}

// WithConstructWorkers sets the ConstructWorkers option.
// A value below one resets to the default.
func WithConstructWorkers(n int) Option {
	return func(c *apis.Config) {
		if n < 1 {
			c.ConstructWorkers = DefaultConstructWorkers
			return
		}
		c.ConstructWorkers = n
	}
}
