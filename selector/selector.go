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

package selector

import (
	"errors"
	"fmt"

	"dirpx.dev/fdx/apis"
	"dirpx.dev/fdx/bridge"
)

var (
	// ErrNilRequest is returned when Select receives nil attributes.
	ErrNilRequest = errors.New("fdx(selector): nil request attributes")
	// ErrUnsupportedRequestKind is the kind of KindError.
	ErrUnsupportedRequestKind = errors.New("fdx(selector): unsupported request kind")
	// ErrNoDecision is returned when no rule in the chain handled the request.
	ErrNoDecision = errors.New("fdx(selector): no rule selected a bridge")
)

// KindError reports a request whose type cannot be served by any bridge.
// It indicates an integration bug upstream and must not be retried.
type KindError struct {
	Kind apis.RequestType
}

func (e *KindError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnsupportedRequestKind.Error(), e.Kind)
}

func (e *KindError) Unwrap() error { return ErrUnsupportedRequestKind }

// New constructs an apis.Selector that tries the given rules in order.
// Nil rules are ignored. The returned selector is safe for concurrent use
// provided the rules themselves are.
func New(rules ...apis.Rule) apis.Selector {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Rule, 0, len(rules))
	for _, r := range rules {
		if r != nil {
			out = append(out, r)
		}
	}
	return chain{rules: out}
}

// Default returns the standard decision chain:
//
//  1. write requests use the Write bridge;
//  2. anything else that is not a read is rejected;
//  3. sampled reads use ReadSampling;
//  4. reads whose aggregate can be pushed to the accessor use ReadAggregate;
//  5. reads with a batch-capable resolver use ReadVectorized;
//  6. everything else uses ReadPlain.
//
// Order is priority: sampling alters the row stream itself, so it is decided
// before any other read optimization.
//
// # Semantics
//
// Rules 4 and 5 ask p about the request's plugins. A nil p makes both rules
// abstain, so such reads fall through to ReadPlain.
//
// # Contract
//
//   - A nil request fails with ErrNilRequest.
//   - A request kind other than read or write fails with a *KindError
//     matching ErrUnsupportedRequestKind.
//   - Every other request gets a bridge; the chain never ends undecided.
//   - Select does not mutate the request and is safe for concurrent use.
func Default(p apis.Probe) apis.Selector {
	return New(
		WriteRule(),
		ReadOnlyRule(),
		SamplingRule(),
		AggregateRule(p),
		VectorizedRule(p),
		PlainRule(),
	)
}

// chain is an immutable, order-preserving selector over a set of rules.
type chain struct {
	rules []apis.Rule
}

// Select runs rules in order until one handles the request.
func (c chain) Select(attrs *apis.RequestAttributes) (bridge.Bridge, error) {
	if attrs == nil {
		return 0, ErrNilRequest
	}
	for _, r := range c.rules {
		b, ok, err := r.TryDecide(attrs)
		if err != nil {
			return 0, err
		}
		if ok {
			return b, nil
		}
	}
	return 0, ErrNoDecision
}
