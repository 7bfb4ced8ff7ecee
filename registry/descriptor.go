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
	"fmt"
	"reflect"

	"dirpx.dev/fdx/apis"
	uref "dirpx.dev/fdx/utils/reflect"
)

// Ctor is a typed construction form for plugins of type T.
// Build one with NoArg or OneArg and pass it to Describe.
type Ctor[T any] struct {
	arg  reflect.Type
	call func(arg any) (T, error)
}

// NoArg wraps a zero-argument constructor.
func NoArg[T any](fn func() (T, error)) Ctor[T] {
	return Ctor[T]{call: func(any) (T, error) { return fn() }}
}

// OneArg wraps a constructor taking a single A.
func OneArg[T, A any](fn func(A) (T, error)) Ctor[T] {
	at := reflect.TypeFor[A]()
	return Ctor[T]{
		arg: at,
		call: func(arg any) (T, error) {
			if arg == nil {
				var zero A
				return fn(zero)
			}
			a, ok := arg.(A)
			if !ok {
				var zero T
				return zero, fmt.Errorf("fdx(registry): argument %T is not %s", arg, at)
			}
			return fn(a)
		},
	}
}

// Describe builds a Descriptor for plugins of type T registered as name.
// Capabilities are derived from T's method set, so T should be the exact
// type the constructors return (e.g. *MyAccessor, not MyAccessor).
func Describe[T any](name string, ctors ...Ctor[T]) apis.Descriptor {
	t := reflect.TypeFor[T]()
	d := apis.Descriptor{
		Name:         name,
		Type:         t,
		Capabilities: uref.Capabilities(t),
		Constructors: make([]apis.Constructor, 0, len(ctors)),
	}
	for _, c := range ctors {
		call := c.call
		d.Constructors = append(d.Constructors, apis.Constructor{
			ArgType: c.arg,
			New:     func(arg any) (any, error) { return call(arg) },
		})
	}
	return d
}

// MustRegister registers d in cat and panics on error.
// Intended for package init of plugin bundles.
func MustRegister(cat apis.Catalog, d apis.Descriptor) {
	if err := cat.Register(d); err != nil {
		panic(fmt.Errorf("%w: %s", err, d.Name))
	}
}
