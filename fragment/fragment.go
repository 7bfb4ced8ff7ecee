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

// Package fragment decodes the split descriptor attached to a read request.
//
// The payload is a CBOR sequence (RFC 8742) of exactly three data items:
//
//	start  int64     byte offset where the split begins
//	end    int64     byte offset where the split ends
//	hosts  []string  hosts holding the split locally
//
// Tags are rejected. A request without a payload reads the whole source
// from localhost.
package fragment

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog"

	"dirpx.dev/fdx/apis"
	"dirpx.dev/fdx/utils/text"
)

// MetadataParam names the request parameter carrying the base64 payload.
const MetadataParam = "X-GP-FRAGMENT-METADATA"

// ErrDecode is the kind of every DecodeError.
var ErrDecode = errors.New("fdx(fragment): exception while reading expected fragment metadata")

// Split is a decoded split descriptor.
type Split struct {
	Start int64
	End   int64
	Hosts []string
}

// Default returns the split used when a request carries no payload.
func Default() Split {
	return Split{Start: 0, End: 0, Hosts: []string{"localhost"}}
}

// DecodeError reports which item of the sequence could not be read.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrDecode, e.Field, e.Err)
}

// Is reports ErrDecode as the kind of e.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func (e *DecodeError) Unwrap() error { return e.Err }

var (
	decMode cbor.DecMode
	encMode cbor.EncMode
)

func init() {
	var err error
	decMode, err = cbor.DecOptions{TagsMd: cbor.TagsForbidden}.DecMode()
	if err != nil {
		panic(err)
	}
	encMode, err = cbor.EncOptions{NilContainers: cbor.NilContainerAsEmpty}.EncMode()
	if err != nil {
		panic(err)
	}
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger used to trace decoded splits.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Codec) { c.log = l }
}

// Codec reads and writes split payloads.
//
// # Overview
//
// A payload is a CBOR sequence of start, end and hosts. Codec decodes it
// from raw bytes, from its base64 transport form, or straight from the
// request attributes, and encodes a Split back into the same wire form.
//
// # Semantics
//
//   - A missing payload yields Default. An empty non-nil buffer is an error.
//   - Items after the third are ignored.
//   - Start is not checked against End.
//
// # Contract
//
//   - Decode failures are *DecodeError values naming the bad item and
//     matching ErrDecode. The returned Split is then the zero value.
//   - Tagged items are rejected.
//   - A Codec is safe for concurrent use. The zero value is not usable;
//     build one with NewCodec.
type Codec struct {
	log zerolog.Logger
}

// NewCodec returns a Codec configured by opts.
func NewCodec(opts ...Option) *Codec {
	c := &Codec{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var std = NewCodec()

// Decode parses buf. A nil buf yields Default; an empty non-nil buf is
// an error. On error the returned Split is the zero value.
func (c *Codec) Decode(buf []byte) (Split, error) {
	return c.decode("", buf)
}

// DecodeRequest parses the payload carried by attrs.
func (c *Codec) DecodeRequest(attrs *apis.RequestAttributes) (Split, error) {
	if attrs == nil {
		return Default(), nil
	}
	return c.decode(attrs.DataSource, attrs.FragmentMetadata)
}

func (c *Codec) decode(path string, buf []byte) (Split, error) {
	if buf == nil {
		return Default(), nil
	}

	var s Split
	rest, err := decMode.UnmarshalFirst(buf, &s.Start)
	if err != nil {
		return Split{}, &DecodeError{Field: "start", Err: err}
	}
	if rest, err = decMode.UnmarshalFirst(rest, &s.End); err != nil {
		return Split{}, &DecodeError{Field: "end", Err: err}
	}
	if rest, err = decMode.UnmarshalFirst(rest, &s.Hosts); err != nil {
		return Split{}, &DecodeError{Field: "hosts", Err: err}
	}

	if e := c.log.Debug(); e.Enabled() {
		e.Str("path", path).
			Int64("start", s.Start).
			Int64("end", s.End).
			Strs("hosts", s.Hosts).
			Int("trailing", len(rest)).
			Msg("parsed split")
	}
	return s, nil
}

// Encode writes s as a three-item CBOR sequence. A nil Hosts is written
// as an empty array.
func (c *Codec) Encode(s Split) ([]byte, error) {
	var out []byte
	for _, v := range []any{s.Start, s.End, s.Hosts} {
		b, err := encMode.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("fdx(fragment): encode split: %w", err)
		}
		out = append(out, b...)
	}
	return out, nil
}

// DecodeBase64 decodes the base64 transport form of the payload. An empty
// string means no payload and yields Default.
func (c *Codec) DecodeBase64(s string) (Split, error) {
	if s == "" {
		return Default(), nil
	}
	buf, err := text.ParseBase64(s, MetadataParam)
	if err != nil {
		return Split{}, &DecodeError{Field: "payload", Err: err}
	}
	return c.Decode(buf)
}

// Decode parses buf with a silent Codec.
func Decode(buf []byte) (Split, error) { return std.Decode(buf) }

// Encode writes s with a silent Codec.
func Encode(s Split) ([]byte, error) { return std.Encode(s) }

// DecodeBase64 decodes the base64 form of the payload with a silent Codec.
func DecodeBase64(s string) (Split, error) { return std.DecodeBase64(s) }
