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

// Package pipeline turns request attributes into a ready-to-run plan: the
// selected bridge, the decoded split and freshly constructed collaborators.
package pipeline

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"dirpx.dev/fdx/apis"
	"dirpx.dev/fdx/bridge"
	"dirpx.dev/fdx/fragment"
	"dirpx.dev/fdx/loader"
)

// DefaultWorkers bounds concurrent construction when no option is given.
const DefaultWorkers = 2

var (
	// ErrSelect wraps bridge selection failures.
	ErrSelect = errors.New("fdx(pipeline): bridge selection failed")
	// ErrConstruct wraps plugin construction failures.
	ErrConstruct = errors.New("fdx(pipeline): plugin construction failed")
	// ErrSplit wraps split payload failures.
	ErrSplit = errors.New("fdx(pipeline): split payload rejected")
)

var attrsType = reflect.TypeFor[*apis.RequestAttributes]()

// Plan is everything a bridge needs to serve one request.
type Plan struct {
	// ID correlates log lines of one request.
	ID       uuid.UUID
	Bridge   bridge.Bridge
	Split    fragment.Split
	Accessor apis.Accessor
	Resolver apis.Resolver
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithWorkers bounds concurrent construction. Values below one are ignored.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithCodec sets the split codec.
func WithCodec(c *fragment.Codec) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.codec = c
		}
	}
}

// Pipeline prepares plans. It holds no per-request state and is safe for
// concurrent use.
type Pipeline struct {
	sel     apis.Selector
	ld      apis.Loader
	codec   *fragment.Codec
	workers int
	log     zerolog.Logger
}

// New returns a Pipeline selecting with sel and constructing with ld.
func New(sel apis.Selector, ld apis.Loader, opts ...Option) *Pipeline {
	p := &Pipeline{
		sel:     sel,
		ld:      ld,
		codec:   fragment.NewCodec(),
		workers: DefaultWorkers,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prepare turns a request into a Plan.
//
// # Overview
//
// Prepare selects the bridge for attrs, decodes its split and constructs the
// accessor and resolver. Each plan gets a fresh ID that tags its log lines.
//
// # Semantics
//
//   - Selection and split decoding run first. Plugins are only built once
//     both succeed.
//   - Accessor and resolver are constructed concurrently. The first failure
//     cancels the other.
//   - Plugins are built with their *apis.RequestAttributes constructor when
//     they have one, and with the zero-argument form otherwise.
//
// # Contract
//
//   - A canceled ctx fails with ctx.Err() before any work is done.
//   - Errors wrap ErrSelect, ErrSplit or ErrConstruct and keep the
//     underlying cause reachable through errors.Is and errors.As.
//   - On error the returned Plan is nil.
//   - Prepare does not mutate attrs and is safe for concurrent use.
func (p *Pipeline) Prepare(ctx context.Context, attrs *apis.RequestAttributes) (*Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.New()
	log := p.log.With().Str("plan", id.String()).Logger()

	b, err := p.sel.Select(attrs)
	if err != nil {
		log.Debug().Err(err).Msg("bridge selection failed")
		return nil, fmt.Errorf("%w: %w", ErrSelect, err)
	}

	split, err := p.codec.DecodeRequest(attrs)
	if err != nil {
		log.Debug().Err(err).Msg("split payload rejected")
		return nil, fmt.Errorf("%w: %w", ErrSplit, err)
	}

	plan := &Plan{ID: id, Bridge: b, Split: split}

	cp := pool.New().
		WithContext(ctx).
		WithFirstError().
		WithCancelOnError().
		WithMaxGoroutines(p.workers)
	cp.Go(func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		acc, err := build[apis.Accessor](p.ld, attrs.Accessor, attrs)
		if err != nil {
			return errors.Wrapf(err, "accessor %s", attrs.Accessor)
		}
		plan.Accessor = acc
		return nil
	})
	cp.Go(func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := build[apis.Resolver](p.ld, attrs.Resolver, attrs)
		if err != nil {
			return errors.Wrapf(err, "resolver %s", attrs.Resolver)
		}
		plan.Resolver = res
		return nil
	})
	if err := cp.Wait(); err != nil {
		log.Debug().Stack().Err(err).Msg("plugin construction failed")
		return nil, fmt.Errorf("%w: %w", ErrConstruct, err)
	}

	log.Debug().
		Stringer("bridge", plan.Bridge).
		Str("accessor", attrs.Accessor).
		Str("resolver", attrs.Resolver).
		Int64("start", split.Start).
		Int64("end", split.End).
		Msg("plan prepared")
	return plan, nil
}

// build constructs name as a T, preferring the request-aware constructor.
func build[T any](ld apis.Loader, name string, attrs *apis.RequestAttributes) (T, error) {
	v, err := loader.As[T](ld, name, attrsType, attrs)
	if errors.Is(err, loader.ErrNoConstructor) {
		return loader.As[T](ld, name, nil, nil)
	}
	return v, err
}
