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
	"dirpx.dev/fdx/apis"
	"dirpx.dev/fdx/bridge"
)

// RuleFunc adapts a plain function to apis.Rule.
type RuleFunc func(attrs *apis.RequestAttributes) (bridge.Bridge, bool, error)

// TryDecide implements apis.Rule.
func (f RuleFunc) TryDecide(attrs *apis.RequestAttributes) (bridge.Bridge, bool, error) {
	return f(attrs)
}

// WriteRule selects Write for write requests.
func WriteRule() apis.Rule {
	return RuleFunc(func(attrs *apis.RequestAttributes) (bridge.Bridge, bool, error) {
		if attrs.RequestType == apis.RequestWrite {
			return bridge.Write, true, nil
		}
		return 0, false, nil
	})
}

// ReadOnlyRule rejects every request that is not a read with a *KindError.
// Place it after WriteRule.
func ReadOnlyRule() apis.Rule {
	return RuleFunc(func(attrs *apis.RequestAttributes) (bridge.Bridge, bool, error) {
		if attrs.RequestType != apis.RequestRead {
			return 0, false, &KindError{Kind: attrs.RequestType}
		}
		return 0, false, nil
	})
}

// SamplingRule selects ReadSampling when a positive sample ratio is set.
func SamplingRule() apis.Rule {
	return RuleFunc(func(attrs *apis.RequestAttributes) (bridge.Bridge, bool, error) {
		if attrs.StatsSampleRatio > 0 {
			return bridge.ReadSampling, true, nil
		}
		return 0, false, nil
	})
}

// AggregateRule selects ReadAggregate when p reports that the aggregate can
// be answered from accessor statistics.
func AggregateRule(p apis.Probe) apis.Rule {
	return &probeRule{
		probe: p,
		out:   bridge.ReadAggregate,
		test: func(p apis.Probe, attrs *apis.RequestAttributes) bool {
			return p.SupportsAggregatePushdown(attrs)
		},
	}
}

// VectorizedRule selects ReadVectorized when the resolver resolves batches.
func VectorizedRule(p apis.Probe) apis.Rule {
	return &probeRule{
		probe: p,
		out:   bridge.ReadVectorized,
		test: func(p apis.Probe, attrs *apis.RequestAttributes) bool {
			return p.Implements(attrs.Resolver, apis.CapReadVectorizedResolver)
		},
	}
}

// PlainRule always selects ReadPlain. It terminates the default chain.
func PlainRule() apis.Rule {
	return RuleFunc(func(*apis.RequestAttributes) (bridge.Bridge, bool, error) {
		return bridge.ReadPlain, true, nil
	})
}

// probeRule decides by asking a Probe. A nil probe never handles.
type probeRule struct {
	probe apis.Probe
	out   bridge.Bridge
	test  func(apis.Probe, *apis.RequestAttributes) bool
}

// Ensure probeRule implements apis.Rule.
var _ apis.Rule = (*probeRule)(nil)

func (r *probeRule) TryDecide(attrs *apis.RequestAttributes) (bridge.Bridge, bool, error) {
	if r.probe == nil || !r.test(r.probe, attrs) {
		return 0, false, nil
	}
	return r.out, true, nil
}
