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

package reflect

import (
	"errors"
	"path"
	"reflect"
	"strings"
)

// DefaultMaxUnwrap bounds pointer unwrapping in Normalize.
const DefaultMaxUnwrap = 8

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping pointers)
	// is not a named type (e.g., anonymous struct, func literal type).
	ErrReflectTypeNotNamed = errors.New("reflect: type is not named")
)

// Normalize unwraps pointers up to DefaultMaxUnwrap levels and returns the
// nearest named type, or an error if none is found. Interface types are
// returned as-is when named.
func Normalize(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	for i := 0; t.Kind() == reflect.Ptr && i < DefaultMaxUnwrap; i++ {
		t = t.Elem()
	}
	if t.Kind() == reflect.Ptr || t.Name() == "" {
		return nil, ErrReflectTypeNotNamed
	}
	return t, nil
}

// Name returns a stable "pkg.Type" identifier for t, used in diagnostics.
// Generic instantiation parameters are stripped. Builtin types yield their
// bare name; unnamed types yield t.String().
func Name(t reflect.Type) string {
	if t == nil {
		return ""
	}
	base, err := Normalize(t)
	if err != nil {
		return t.String()
	}
	name := stripTypeParams(base.Name())
	if p := base.PkgPath(); p != "" {
		name = path.Base(p) + "." + name
	}
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
