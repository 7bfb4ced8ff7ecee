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

package builder

import (
	"dirpx.dev/fdx/apis"
	"dirpx.dev/fdx/probe"
	"dirpx.dev/fdx/registry"
	"dirpx.dev/fdx/selector"
	"dirpx.dev/fdx/utils/logging"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildCatalog builds and returns a new apis.Catalog. If a pre-existing
// catalog is provided, its entries are copied into the new one.
// It panics if the new catalog rejects any entry of prev.
func (b *builder) BuildCatalog(_ apis.Config, prev apis.Catalog, _ any) apis.Catalog {
	ncat := registry.New()
	if prev != nil {
		for _, d := range prev.Entries() {
			registry.MustRegister(ncat, d)
		}
	}
	return ncat
}

// BuildSelector builds the default bridge selection chain over a probe of cat.
// The probe logs misses at the configured level.
func (b *builder) BuildSelector(cfg apis.Config, cat apis.Catalog, _ apis.Selector, _ any) apis.Selector {
	return selector.Default(
		probe.New(cat, probe.WithLogger(logging.New(cfg.LogLevel))),
	)
}
