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

package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrPluginNotFound is the kind of NotFoundError.
	ErrPluginNotFound = errors.New("fdx(loader): plugin not found")
	// ErrNoConstructor is returned when the plugin has no constructor for
	// the requested argument type.
	ErrNoConstructor = errors.New("fdx(loader): no matching constructor")
	// ErrArgumentType is returned when the argument is not assignable to
	// the requested argument type.
	ErrArgumentType = errors.New("fdx(loader): argument type mismatch")
	// ErrPluginType is returned by As when the instance has the wrong type.
	ErrPluginType = errors.New("fdx(loader): unexpected plugin type")
)

// NotFoundError reports a plugin name missing from the catalog.
// Hint is set when the name uses a deprecated namespace and names the
// prefix that replaced it.
type NotFoundError struct {
	Name string
	Hint string
}

func (e *NotFoundError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("plugin %s is not registered", e.Name)
	}
	return fmt.Sprintf("plugin %s is not registered. Plugins provided by PXF must start with %q", e.Name, e.Hint)
}

func (e *NotFoundError) Unwrap() error { return ErrPluginNotFound }

// InvocationError wraps a failure raised while running a plugin constructor.
// The loader never returns it when Cause is set: callers see Cause itself.
type InvocationError struct {
	Plugin string
	Cause  error
}

func (e *InvocationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("fdx(loader): constructor of %s failed", e.Plugin)
	}
	return fmt.Sprintf("fdx(loader): constructor of %s failed: %v", e.Plugin, e.Cause)
}

func (e *InvocationError) Unwrap() error { return e.Cause }

// unwrapInvocation returns the plugin's own error when err is a top-level
// InvocationError carrying one; otherwise err is returned unchanged.
func unwrapInvocation(err error) error {
	if ie, ok := err.(*InvocationError); ok && ie.Cause != nil {
		return ie.Cause
	}
	return err
}
