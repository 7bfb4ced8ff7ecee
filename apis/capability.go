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

import (
	"fmt"
	"reflect"
	"strings"
)

// Capability names a behavioral contract a plugin type may satisfy.
// Each capability is backed by a Go interface; see Capability.Interface.
type Capability uint8

const (
	// CapAccessor is satisfied by types implementing Accessor.
	CapAccessor Capability = iota + 1
	// CapResolver is satisfied by types implementing Resolver.
	CapResolver
	// CapFragmenter is satisfied by types implementing Fragmenter.
	CapFragmenter
	// CapStatsAccessor is satisfied by accessors that report exact statistics.
	CapStatsAccessor
	// CapReadVectorizedResolver is satisfied by resolvers that resolve batches.
	CapReadVectorizedResolver

	capLimit
)

// AllCapabilities lists every known capability in declaration order.
var AllCapabilities = []Capability{
	CapAccessor,
	CapResolver,
	CapFragmenter,
	CapStatsAccessor,
	CapReadVectorizedResolver,
}

var capIfaces = [capLimit]reflect.Type{
	CapAccessor:               reflect.TypeFor[Accessor](),
	CapResolver:               reflect.TypeFor[Resolver](),
	CapFragmenter:             reflect.TypeFor[Fragmenter](),
	CapStatsAccessor:          reflect.TypeFor[StatsAccessor](),
	CapReadVectorizedResolver: reflect.TypeFor[ReadVectorizedResolver](),
}

var capNames = [capLimit]string{
	CapAccessor:               "Accessor",
	CapResolver:               "Resolver",
	CapFragmenter:             "Fragmenter",
	CapStatsAccessor:          "StatsAccessor",
	CapReadVectorizedResolver: "ReadVectorizedResolver",
}

// Valid reports whether c is a known capability.
func (c Capability) Valid() bool {
	return c > 0 && c < capLimit
}

// Interface returns the interface type backing c, or nil for unknown values.
func (c Capability) Interface() reflect.Type {
	if !c.Valid() {
		return nil
	}
	return capIfaces[c]
}

func (c Capability) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Capability(%d)", uint8(c))
	}
	return capNames[c]
}

// Capabilities is a set of Capability values.
type Capabilities uint32

// CapabilitiesOf builds a set from the given capabilities.
// Unknown values are ignored.
func CapabilitiesOf(cs ...Capability) Capabilities {
	var s Capabilities
	for _, c := range cs {
		s = s.With(c)
	}
	return s
}

// With returns s plus c.
func (s Capabilities) With(c Capability) Capabilities {
	if !c.Valid() {
		return s
	}
	return s | 1<<c
}

// Has reports whether c is in s.
func (s Capabilities) Has(c Capability) bool {
	return c.Valid() && s&(1<<c) != 0
}

// List returns the members of s in declaration order.
func (s Capabilities) List() []Capability {
	out := make([]Capability, 0, len(AllCapabilities))
	for _, c := range AllCapabilities {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s Capabilities) String() string {
	list := s.List()
	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.String()
	}
	return "{" + strings.Join(names, ",") + "}"
}
