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

import "reflect"

// Constructor is one way of building a plugin instance.
type Constructor struct {
	// ArgType is the single parameter type, or nil for the zero-argument form.
	ArgType reflect.Type
	// New builds an instance. arg is nil for the zero-argument form.
	New func(arg any) (any, error)
}

// Descriptor is everything the core knows about a registered plugin type
// without instantiating it.
type Descriptor struct {
	// Name is the configured plugin name, e.g. "org.greenplum.pxf.plugins.hdfs.LineBreakAccessor".
	Name string
	// Type is the concrete Go type constructors produce.
	Type reflect.Type
	// Capabilities is derived from Type's method set at registration.
	Capabilities Capabilities
	// Constructors lists the available construction forms.
	Constructors []Constructor
}

// Constructor returns the constructor accepting argType (nil for the
// zero-argument form).
func (d Descriptor) Constructor(argType reflect.Type) (Constructor, bool) {
	for _, c := range d.Constructors {
		if c.ArgType == argType {
			return c, true
		}
	}
	return Constructor{}, false
}

// Catalog indexes plugin descriptors by name.
// Implementations must be safe for concurrent use.
type Catalog interface {
	// Register adds d. Re-registering the same name and type is a no-op;
	// registering the same name with a different type is an error.
	Register(d Descriptor) error
	// Lookup returns the descriptor registered under name.
	Lookup(name string) (Descriptor, bool)
	// Entries returns a snapshot sorted by name.
	Entries() []Descriptor
	// EntriesWithPrefix returns the entries whose name starts with prefix, sorted by name.
	EntriesWithPrefix(prefix string) []Descriptor
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}
