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

package bridge

import (
	"fmt"
	"strings"
)

// Bridge identifies the execution pipeline chosen for a single request.
//
// # Overview
//
// A bridge couples an accessor and a resolver into a reader or writer
// pipeline. The decision core picks exactly one Bridge per request and the
// execution layer switches on it to run the concrete pipeline. The set is
// closed: callers may rely on exhaustive switches over the values below.
//
// # Values
//
//   - Write: rows flow from the database into the external source.
//   - ReadSampling: rows are read and sampled by the request's ratio.
//   - ReadAggregate: the aggregate is answered from source statistics.
//   - ReadVectorized: rows are resolved in batches.
//   - ReadPlain: rows are read and resolved one at a time.
//
// The zero value is not a valid bridge; it is what failed decisions return.
type Bridge int

const (
	// Write streams rows from the database into the external source.
	Write Bridge = iota + 1

	// ReadSampling reads rows and keeps a sampled subset of them.
	ReadSampling

	// ReadAggregate answers an aggregate from the accessor's statistics
	// without streaming rows.
	ReadAggregate

	// ReadVectorized resolves rows in batches.
	ReadVectorized

	// ReadPlain reads and resolves rows one at a time. It is the universal
	// read fallback.
	ReadPlain
)

// String returns the stable token for b, or "Unknown(n)" for values
// outside the closed set.
func (b Bridge) String() string {
	switch b {
	case Write:
		return "Write"
	case ReadSampling:
		return "ReadSampling"
	case ReadAggregate:
		return "ReadAggregate"
	case ReadVectorized:
		return "ReadVectorized"
	case ReadPlain:
		return "ReadPlain"
	default:
		return fmt.Sprintf("Unknown(%d)", int(b))
	}
}

// IsRead reports whether b is one of the read pipelines.
func (b Bridge) IsRead() bool {
	switch b {
	case ReadSampling, ReadAggregate, ReadVectorized, ReadPlain:
		return true
	default:
		return false
	}
}

// Valid reports whether b belongs to the closed set.
func (b Bridge) Valid() bool {
	return b == Write || b.IsRead()
}

// Parse converts a textual token into a Bridge.
// Matching is case-insensitive and ignores surrounding whitespace.
func Parse(s string) (Bridge, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("bridge: empty name")
	}

	switch strings.ToLower(trimmed) {
	case "write":
		return Write, nil
	case "readsampling":
		return ReadSampling, nil
	case "readaggregate":
		return ReadAggregate, nil
	case "readvectorized":
		return ReadVectorized, nil
	case "readplain":
		return ReadPlain, nil
	default:
		return 0, fmt.Errorf("bridge: unknown name %q", s)
	}
}

// MustParse is like Parse but panics on error.
// Intended for static configuration and tests.
func MustParse(s string) Bridge {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

// MarshalText implements encoding.TextMarshaler.
// Unknown values are rejected so they never leak into logs or configs.
func (b Bridge) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("bridge: cannot marshal unknown bridge %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bridge) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
