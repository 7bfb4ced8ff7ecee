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

package registry

import (
	"errors"
	"sort"
	"sync"

	"github.com/armon/go-radix"

	"dirpx.dev/fdx/apis"
)

var (
	// ErrNilType is returned when a descriptor carries no reflect.Type.
	ErrNilType = errors.New("fdx(registry): nil plugin type provided")
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("fdx(registry): empty name provided")
	// ErrNoConstructors is returned when a descriptor has no way to be built.
	ErrNoConstructors = errors.New("fdx(registry): plugin has no constructors")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a name with a different type.
	ErrConflictingRegistration = errors.New("fdx(registry): conflicting plugin registration")
)

// New constructs an empty Catalog.
func New() apis.Catalog {
	return &registry{tree: radix.New()}
}

// registry is a Catalog backed by a radix tree keyed by plugin name.
// Plugin names are dotted namespaces, so prefix walks list a whole
// namespace cheaply.
type registry struct {
	mu   sync.RWMutex
	tree *radix.Tree // name -> apis.Descriptor
}

// Register adds d under d.Name.
// It is idempotent for the same (name, type) pair.
func (r *registry) Register(d apis.Descriptor) error {
	// Validate inputs early.
	if d.Name == "" {
		return ErrEmptyName
	}
	if d.Type == nil {
		return ErrNilType
	}
	if len(d.Constructors) == 0 {
		return ErrNoConstructors
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.tree.Get(d.Name); ok {
		if old.(apis.Descriptor).Type == d.Type {
			return nil // idempotent re-registration
		}
		return ErrConflictingRegistration
	}
	r.tree.Insert(d.Name, d)
	return nil
}

// Lookup returns the descriptor registered under name.
func (r *registry) Lookup(name string) (apis.Descriptor, bool) {
	if name == "" {
		return apis.Descriptor{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if v, ok := r.tree.Get(name); ok {
		return v.(apis.Descriptor), true
	}
	return apis.Descriptor{}, false
}

// Entries returns a snapshot sorted by name.
func (r *registry) Entries() []apis.Descriptor {
	return r.EntriesWithPrefix("")
}

// EntriesWithPrefix returns the entries under prefix, sorted by name.
func (r *registry) EntriesWithPrefix(prefix string) []apis.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]apis.Descriptor, 0, r.tree.Len())
	r.tree.WalkPrefix(prefix, func(_ string, v any) bool {
		entries = append(entries, v.(apis.Descriptor))
		return false
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tree.Len()
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tree = radix.New()
}
