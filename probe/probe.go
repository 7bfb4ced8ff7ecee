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

// Package probe answers capability questions about registered plugin names.
//
// Probing never constructs a plugin. It resolves the name through the
// catalog and tests the capability set that was derived from the plugin's
// Go type at registration. Unknown names are an expected outcome of
// capability-based dispatch, so a miss is logged and reported as false.
package probe

import (
	"github.com/rs/zerolog"

	"dirpx.dev/fdx/apis"
)

// Option configures a probe.
type Option func(*probe)

// WithLogger sets the logger used for probe misses.
func WithLogger(l zerolog.Logger) Option {
	return func(p *probe) { p.log = l }
}

// New returns an apis.Probe over cat.
func New(cat apis.Catalog, opts ...Option) apis.Probe {
	p := &probe{cat: cat, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type probe struct {
	cat apis.Catalog
	log zerolog.Logger
}

// Ensure probe implements apis.Probe.
var _ apis.Probe = (*probe)(nil)

// Implements reports whether the plugin registered as name satisfies c.
func (p *probe) Implements(name string, c apis.Capability) bool {
	if p.cat == nil {
		return false
	}
	d, ok := p.cat.Lookup(name)
	if !ok {
		p.log.Debug().
			Str("plugin", name).
			Stringer("capability", c).
			Msg("unable to resolve plugin")
		return false
	}
	return d.Capabilities.Has(c)
}

// SupportsAggregatePushdown reports whether the request's aggregate can be
// answered from accessor statistics. All of the following must hold:
// the accessor reports statistics, no row filter is present, the aggregate
// supports optimization, and no columns are projected.
func (p *probe) SupportsAggregatePushdown(attrs *apis.RequestAttributes) bool {
	if attrs == nil {
		return false
	}
	return p.Implements(attrs.Accessor, apis.CapStatsAccessor) &&
		!attrs.HasFilter &&
		attrs.Aggregation != nil &&
		attrs.Aggregation.OptimizationSupported() &&
		attrs.NumAttrsProjected == 0
}
