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

// Package fdx is the request-time decision core of a data-federation
// gateway.
//
// A request arrives naming an external data source and the plugins that
// serve it: an accessor that reads or writes raw records, a resolver that
// turns records into typed fields, and optionally a fragmenter. Before any
// data moves, fdx answers four questions:
//
//   - Which internal type does an external type code mean? (package datatype)
//   - Which capabilities does a named plugin have? (package probe, without
//     constructing the plugin)
//   - Which bridge serves the request? (packages selector and bridge)
//   - Which split of the source does this request cover? (package fragment)
//
// and then builds the plugins by name (package loader). Package pipeline
// strings these together into a Plan.
//
// # Design
//
// The core of fdx is a read-mostly global snapshot (state). The snapshot
// holds:
//
//   - Config: logging level, legacy namespace hints, construction
//     parallelism and the fragmenter cache flag.
//
//   - Catalog: a process-wide index from configured plugin names to
//     descriptors. A descriptor records the plugin's Go type, the
//     capabilities derived from its method set, and its constructors.
//     Plugin bundles register into it at startup (Register).
//
//   - Selector: an ordered chain of rules that picks exactly one bridge:
//     1. write requests use the write bridge;
//     2. any other non-read request is rejected;
//     3. a positive sampling ratio selects sampling;
//     4. aggregate pushdown is used when the accessor reports statistics,
//     no filter is present, the aggregate is optimizable and nothing is
//     projected;
//     5. a batch-capable resolver selects the vectorized bridge;
//     6. everything else uses the plain read bridge.
//
//   - Builder: a pluggable factory that constructs Catalog and Selector
//     instances for a given Config (and optional extension data).
//
// The probe, loader and pipeline are derived from these on every rebuild.
// All of it lives inside a single immutable struct. Readers load an atomic
// pointer to it and never lock:
//
//	b, err := fdx.Select(attrs)
//	plan, err := fdx.Prepare(ctx, attrs)
//
// Writers (SetConfig, SetBuilder, SetExt, SetCatalog, SetSelector, SetAll)
// take a short build mutex, assemble a new snapshot and publish it.
//
// # Pinning
//
// SetCatalog and SetSelector pin the layer they replace. A pinned layer is
// carried over unchanged by later rebuilds until it is unpinned with
// UnpinCatalog or UnpinSelector.
//
// # Errors
//
// Plugin construction surfaces the plugin's own error. Bridge selection
// fails only for nil requests and unsupported request kinds. Split decoding
// fails with a fragment.DecodeError naming the item that could not be read.
package fdx
