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
	"reflect"

	"dirpx.dev/fdx/bridge"
)

// Probe answers capability questions about registered plugin names
// without constructing anything.
type Probe interface {
	// Implements reports whether the plugin registered as name satisfies c.
	// Unknown names yield false, never an error.
	Implements(name string, c Capability) bool

	// SupportsAggregatePushdown reports whether attrs can be answered
	// from accessor statistics.
	SupportsAggregatePushdown(attrs *RequestAttributes) bool
}

// Rule is one link in a bridge decision chain.
type Rule interface {
	// TryDecide returns (b, true, nil) when the rule decides the request,
	// (0, false, nil) to fall through, or a non-nil error to abort the chain.
	TryDecide(attrs *RequestAttributes) (b bridge.Bridge, handled bool, err error)
}

// Selector chooses exactly one bridge per request.
// Implementations must be deterministic and safe for concurrent use.
type Selector interface {
	Select(attrs *RequestAttributes) (bridge.Bridge, error)
}

// Loader constructs plugin instances by registered name.
type Loader interface {
	// Construct builds the plugin registered as name using the constructor
	// that accepts argType (nil selects the zero-argument constructor).
	Construct(name string, argType reflect.Type, arg any) (any, error)
}
