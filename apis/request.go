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

import "fmt"

// RequestType is the direction or kind of a gateway request.
type RequestType int

const (
	// RequestUnknown is the zero value; it is never a valid request kind.
	RequestUnknown RequestType = iota
	// RequestRead streams rows out of the external source.
	RequestRead
	// RequestWrite streams rows into the external source.
	RequestWrite
	// RequestFragmenter asks for the source's fragments. It never reaches
	// bridge selection.
	RequestFragmenter
)

func (t RequestType) String() string {
	switch t {
	case RequestUnknown:
		return "unknown"
	case RequestRead:
		return "read"
	case RequestWrite:
		return "write"
	case RequestFragmenter:
		return "fragmenter"
	default:
		return fmt.Sprintf("RequestType(%d)", int(t))
	}
}

// Aggregation describes an aggregate the database wants computed.
type Aggregation interface {
	// OptimizationSupported reports whether the aggregate can be answered
	// from source statistics alone.
	OptimizationSupported() bool
}

// AggType is the built-in Aggregation implementation keyed by operation name.
type AggType string

// AggCount is COUNT(*), the only aggregate answerable from statistics.
const AggCount AggType = "count"

// OptimizationSupported implements Aggregation.
func (a AggType) OptimizationSupported() bool {
	return a == AggCount
}

// RequestAttributes is the per-request snapshot the decision core reads.
// It is produced and owned by the request-handling layer; the core never
// mutates it.
type RequestAttributes struct {
	// RequestType is the request direction.
	RequestType RequestType

	// DataSource is the external path or identifier being accessed.
	DataSource string

	// Accessor, Resolver and Fragmenter are registered plugin names.
	Accessor   string
	Resolver   string
	Fragmenter string

	// HasFilter reports whether a row filter was pushed down.
	HasFilter bool

	// Aggregation is the requested aggregate, or nil.
	Aggregation Aggregation

	// NumAttrsProjected is the number of projected columns.
	NumAttrsProjected int

	// StatsSampleRatio is the sampling ratio in [0,1]; 0 disables sampling.
	StatsSampleRatio float64

	// FragmentMetadata is the opaque split payload, or nil when absent.
	FragmentMetadata []byte
}
