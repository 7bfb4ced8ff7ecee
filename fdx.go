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

package fdx

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/fdx/apis"
	"dirpx.dev/fdx/bridge"
	"dirpx.dev/fdx/builder"
	"dirpx.dev/fdx/config"
	"dirpx.dev/fdx/loader"
	"dirpx.dev/fdx/pipeline"
	"dirpx.dev/fdx/probe"
	"dirpx.dev/fdx/utils/logging"
)

// init publishes the default snapshot.
func init() {
	cfg := config.DefaultConfig()
	b := builder.New()
	cat := b.BuildCatalog(cfg, nil, nil)
	st.Store(assemble(cfg, nil, b, cat, b.BuildSelector(cfg, cat, nil, nil), false, false))
}

var (
	// ErrNilCatalog is returned when a builder returns a nil catalog.
	ErrNilCatalog = errors.New("fdx: builder returned nil catalog")
	// ErrNilSelector is returned when a builder returns a nil selector.
	ErrNilSelector = errors.New("fdx: builder returned nil selector")
)

// Select chooses the bridge for attrs using the global selector.
func Select(attrs *apis.RequestAttributes) (bridge.Bridge, error) {
	return st.Load().sel.Select(attrs)
}

// Implements reports whether the plugin registered as name has capability c
// in the global catalog. It never constructs the plugin.
func Implements(name string, c apis.Capability) bool {
	return st.Load().prb.Implements(name, c)
}

// Construct builds the plugin registered as name in the global catalog.
// See loader.Loader.Construct for argType and error semantics.
func Construct(name string, argType reflect.Type, arg any) (any, error) {
	return st.Load().ld.Construct(name, argType, arg)
}

// Register adds d to the global catalog.
// It serializes with SetConfig, SetBuilder and the other writers, so a
// registration is never lost to a catalog rebuild that copies entries.
// Registering directly on the value returned by Catalog bypasses this.
func Register(d apis.Descriptor) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	return st.Load().cat.Register(d)
}

// Prepare selects a bridge and constructs the collaborators for attrs.
func Prepare(ctx context.Context, attrs *apis.RequestAttributes) (*pipeline.Plan, error) {
	return st.Load().pipe.Prepare(ctx, attrs)
}

// FragmenterCacheEnabled reports whether fragmenter output may be cached
// between requests.
func FragmenterCacheEnabled() bool {
	return st.Load().cfg.FragmenterCacheEnabled
}

// SetAll explicitly sets all global fdx state components.
//
// Nil arguments leave the corresponding component unchanged, except for
// ext which is always replaced. A catalog or selector passed here is pinned;
// one left nil is rebuilt and unpinned.
func SetAll(cfg *apis.Config, ext any, cat apis.Catalog, sel apis.Selector, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	ncat, pcat := cat, cat != nil
	if ncat == nil {
		ncat = nbld.BuildCatalog(ncfg, old.cat, ext)
	}
	if ncat == nil {
		panic(ErrNilCatalog)
	}

	nsel, psel := sel, sel != nil
	if nsel == nil {
		nsel = nbld.BuildSelector(ncfg, ncat, old.sel, ext)
	}
	if nsel == nil {
		panic(ErrNilSelector)
	}

	st.Store(assemble(ncfg, ext, nbld, ncat, nsel, pcat, psel))
}

// Config returns the global fdx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration and rebuilds unpinned layers.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(rebuild(old, cfg, old.ext, old.bld))
}

// Catalog returns the global catalog.
func Catalog() apis.Catalog {
	return st.Load().cat
}

// SetCatalog replaces and pins the global catalog. The selector is rebuilt
// over it unless pinned.
func SetCatalog(cat apis.Catalog) {
	if cat == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	nsel := old.sel
	if !old.psel {
		nsel = old.bld.BuildSelector(old.cfg, cat, old.sel, old.ext)
	}
	if nsel == nil {
		panic(ErrNilSelector)
	}
	st.Store(assemble(old.cfg, old.ext, old.bld, cat, nsel, true, old.psel))
}

// Selector returns the global selector.
func Selector() apis.Selector {
	return st.Load().sel
}

// SetSelector replaces and pins the global selector.
func SetSelector(sel apis.Selector) {
	if sel == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(assemble(old.cfg, old.ext, old.bld, old.cat, sel, old.pcat, true))
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder and rebuilds unpinned layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(rebuild(old, old.cfg, old.ext, b))
}

// SetExt replaces the extension value and rebuilds unpinned layers.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(rebuild(old, old.cfg, ext, old.bld))
}

// ExtAs returns the global extension value as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsCatalogPinned reports whether the global catalog is pinned.
func IsCatalogPinned() bool {
	return st.Load().pcat
}

// IsSelectorPinned reports whether the global selector is pinned.
func IsSelectorPinned() bool {
	return st.Load().psel
}

// PinCatalog stops rebuilds of the global catalog.
func PinCatalog() { setPins(func(s *state) { s.pcat = true }) }

// UnpinCatalog allows rebuilds of the global catalog again.
func UnpinCatalog() { setPins(func(s *state) { s.pcat = false }) }

// PinSelector stops rebuilds of the global selector.
func PinSelector() { setPins(func(s *state) { s.psel = true }) }

// UnpinSelector allows rebuilds of the global selector again.
func UnpinSelector() { setPins(func(s *state) { s.psel = false }) }

func setPins(fn func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	ns := *st.Load()
	fn(&ns)
	st.Store(&ns)
}

// rebuild derives a snapshot from old with the given cfg, ext and builder.
// Pinned layers are carried over as is.
func rebuild(old *state, cfg apis.Config, ext any, b apis.Builder) *state {
	ncat := old.cat
	if !old.pcat {
		ncat = b.BuildCatalog(cfg, old.cat, ext)
	}
	if ncat == nil {
		panic(ErrNilCatalog)
	}
	nsel := old.sel
	if !old.psel {
		nsel = b.BuildSelector(cfg, ncat, old.sel, ext)
	}
	if nsel == nil {
		panic(ErrNilSelector)
	}
	return assemble(cfg, ext, b, ncat, nsel, old.pcat, old.psel)
}

// assemble builds the derived components and returns a new snapshot.
func assemble(cfg apis.Config, ext any, b apis.Builder, cat apis.Catalog, sel apis.Selector, pcat, psel bool) *state {
	log := logging.New(cfg.LogLevel)
	ld := loader.New(cat,
		loader.WithLogger(log),
		loader.WithLegacyNamespaces(cfg.LegacyNamespaces),
	)
	return &state{
		cfg:  cfg,
		ext:  ext,
		bld:  b,
		cat:  cat,
		sel:  sel,
		prb:  probe.New(cat, probe.WithLogger(log)),
		ld:   ld,
		pipe: pipeline.New(sel, ld, pipeline.WithLogger(log), pipeline.WithWorkers(cfg.ConstructWorkers)),
		pcat: pcat,
		psel: psel,
	}
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global fdx state.
var st atomic.Pointer[state]

// state is the global fdx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	cfg apis.Config
	ext any
	bld apis.Builder
	cat apis.Catalog
	sel apis.Selector
	// prb, ld and pipe are derived from cfg, cat and sel.
	prb  apis.Probe
	ld   apis.Loader
	pipe *pipeline.Pipeline
	// pcat indicates whether cat is pinned.
	pcat bool
	// psel indicates whether sel is pinned.
	psel bool
}
