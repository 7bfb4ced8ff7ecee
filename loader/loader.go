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

// Package loader constructs plugin instances by registered name.
//
// Construction goes through the constructors recorded in the catalog, so
// "choose an implementation by configured name" works without reflection
// on the hot path. Failures raised by a plugin's constructor are returned
// as the plugin raised them; the loader's own wrapping never hides the
// plugin's message.
package loader

import (
	"fmt"
	"reflect"

	"github.com/armon/go-radix"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/panics"

	"dirpx.dev/fdx/apis"
	uref "dirpx.dev/fdx/utils/reflect"
)

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(ld *Loader) { ld.log = l }
}

// WithLegacyNamespaces registers deprecated name prefixes. A lookup miss
// under one of them produces a NotFoundError hinting at the replacement.
func WithLegacyNamespaces(ns []apis.Namespace) Option {
	return func(ld *Loader) {
		for _, n := range ns {
			if n.Deprecated != "" {
				ld.legacy.Insert(n.Deprecated, n.Current)
			}
		}
	}
}

// Loader builds plugins registered in a Catalog.
// It is safe for concurrent use; every call constructs a fresh instance.
type Loader struct {
	cat    apis.Catalog
	legacy *radix.Tree // deprecated prefix -> current prefix; read-only after New
	log    zerolog.Logger
}

// Ensure Loader implements apis.Loader.
var _ apis.Loader = (*Loader)(nil)

// New returns a Loader over cat.
func New(cat apis.Catalog, opts ...Option) *Loader {
	ld := &Loader{cat: cat, legacy: radix.New(), log: zerolog.Nop()}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Construct builds the plugin registered as name.
//
// # Overview
//
// Construct resolves name in the catalog, picks the constructor matching
// argType and runs it. Every call yields a fresh instance.
//
// # Semantics
//
//   - A nil argType selects the zero-argument constructor. Otherwise the
//     constructor taking exactly argType is used and arg is passed to it.
//   - An unknown name yields a *NotFoundError. When name starts with a
//     deprecated namespace, the error carries the current one as a hint.
//   - If the constructor fails, the plugin's own error is returned. A panic
//     with an error value and an InvocationError carrying a cause are both
//     unwrapped to that cause.
//
// # Contract
//
//   - On error the returned instance is nil.
//   - Missing constructors match ErrNoConstructor and mismatched arguments
//     match ErrArgumentType under errors.Is.
//   - A panicking constructor MUST NOT crash the caller.
//   - Construct is safe for concurrent use.
func (l *Loader) Construct(name string, argType reflect.Type, arg any) (any, error) {
	d, ok := l.lookup(name)
	if !ok {
		return nil, l.notFound(name)
	}

	ctor, ok := d.Constructor(argType)
	if !ok {
		return nil, fmt.Errorf("%w: %s(%s)", ErrNoConstructor, name, argName(argType))
	}
	if argType != nil && arg != nil && !reflect.TypeOf(arg).AssignableTo(argType) {
		return nil, fmt.Errorf("%w: %s wants %s, got %T", ErrArgumentType, name, argType, arg)
	}

	inst, err := invoke(name, ctor, arg)
	if err != nil {
		err = unwrapInvocation(err)
		l.log.Debug().Err(err).Str("plugin", name).Msg("plugin construction failed")
		return nil, err
	}
	l.log.Debug().
		Str("plugin", name).
		Str("impl", uref.Name(d.Type)).
		Msg("plugin constructed")
	return inst, nil
}

func (l *Loader) lookup(name string) (apis.Descriptor, bool) {
	if l.cat == nil {
		return apis.Descriptor{}, false
	}
	return l.cat.Lookup(name)
}

// notFound builds the miss error, attaching a hint when name starts with a
// deprecated namespace. The longest matching prefix wins.
func (l *Loader) notFound(name string) error {
	e := &NotFoundError{Name: name}
	if _, cur, ok := l.legacy.LongestPrefix(name); ok {
		e.Hint = cur.(string)
	}
	return e
}

// invoke runs ctor, converting a panic into an InvocationError.
func invoke(name string, ctor apis.Constructor, arg any) (inst any, err error) {
	var pc panics.Catcher
	pc.Try(func() { inst, err = ctor.New(arg) })
	if r := pc.Recovered(); r != nil {
		cause, ok := r.Value.(error)
		if !ok {
			cause = r.AsError()
		}
		return nil, &InvocationError{Plugin: name, Cause: cause}
	}
	return inst, err
}

// As constructs the plugin registered as name and asserts it to T.
func As[T any](l apis.Loader, name string, argType reflect.Type, arg any) (T, error) {
	var zero T
	v, err := l.Construct(name, argType, arg)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T, not %s", ErrPluginType, name, v, reflect.TypeFor[T]())
	}
	return t, nil
}

func argName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}
