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

package cbx

import (
	"fmt"
	"maps"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/binding"
	"dirpx.dev/cbx/builder"
	"dirpx.dev/cbx/collection"
	"dirpx.dev/cbx/config"
	"dirpx.dev/cbx/container"
	"dirpx.dev/cbx/metrics"
	"dirpx.dev/cbx/utils/logging"
)

// Composition is the composition root: it owns the container and one
// builder per (capability, name). Safe for concurrent use.
type Composition struct {
	cfg apis.Config
	log *zap.Logger
	met *metrics.Metrics
	c   *container.Container

	// buildMu serializes writers so we never publish partially-built
	// snapshots.
	buildMu sync.Mutex
	// st is the current snapshot.
	st atomic.Pointer[state]
}

// state is an immutable snapshot published via st.Store; never mutate the
// fields of a published state. Writers copy it and swap.
type state struct {
	// builders maps (capability, name) to what was bound for it.
	builders map[slot]bound
	// sealed is set by Build.
	sealed bool
}

type slot struct {
	capability reflect.Type
	name       string
}

// bound is a builder, *builder.Ordered[T] or *builder.Weighted[T], and the
// lifetime its collection was bound with.
type bound struct {
	builder  any
	lifetime apis.Lifetime
}

// Option configures a Composition.
type Option func(*options)

type options struct {
	cfg    apis.Config
	log    *zap.Logger
	logCfg *config.Log
	met    *metrics.Metrics
	reg    prometheus.Registerer
	err    error
}

// WithConfig sets the configuration.
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithLogger sets the logger. It takes precedence over a file's log section.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.met = m }
}

// WithRegisterer creates metrics under Config.Namespace and registers them
// with r, unless WithMetrics is given too.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) { o.reg = r }
}

// WithFile applies a configuration file: its settings, and its log section
// unless WithLogger is given. Invalid settings make New fail.
func WithFile(f config.File) Option {
	return func(o *options) {
		cfg, err := f.Config()
		if err != nil {
			o.err = err
			return
		}
		o.cfg = cfg
		lc := f.Log
		o.logCfg = &lc
	}
}

// New creates an empty composition.
func New(opts ...Option) (*Composition, error) {
	o := options{cfg: config.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, fmt.Errorf("cbx: %w", o.err)
	}

	if o.log == nil && o.logCfg != nil {
		l, err := logging.New(o.logCfg.Level, o.logCfg.Format)
		if err != nil {
			return nil, fmt.Errorf("cbx: %w", err)
		}
		o.log = l
	}
	o.log = logging.OrNop(o.log)

	if o.met == nil && o.reg != nil {
		o.met = metrics.New(o.cfg.Namespace)
		if err := o.met.Register(o.reg); err != nil {
			return nil, fmt.Errorf("cbx: register metrics: %w", err)
		}
	}

	comp := &Composition{
		cfg: o.cfg,
		log: o.log,
		met: o.met,
		c: container.New(
			container.WithConfig(o.cfg),
			container.WithLogger(o.log),
			container.WithMetrics(o.met),
		),
	}
	comp.st.Store(&state{builders: map[slot]bound{}})
	return comp, nil
}

// NewFromFile loads path with config.LoadFile and creates a composition from
// it. opts are applied after the file.
func NewFromFile(path string, opts ...Option) (*Composition, error) {
	f, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return New(append([]Option{WithFile(f)}, opts...)...)
}

// Config returns the configuration.
func (comp *Composition) Config() apis.Config { return comp.cfg }

// Container returns the container. Resolving from it before Build is allowed
// but freezes every builder it materializes.
func (comp *Composition) Container() *container.Container { return comp.c }

// Sealed reports whether Build was called.
func (comp *Composition) Sealed() bool { return comp.st.Load().sealed }

// Register binds an element registration, typically an implementation type
// contributed to some collection.
func (comp *Composition) Register(k apis.Key, f apis.Factory, l apis.Lifetime) error {
	// Hold buildMu so Register cannot interleave with Build.
	comp.buildMu.Lock()
	defer comp.buildMu.Unlock()
	if comp.st.Load().sealed {
		return fmt.Errorf("cbx: register %v: %w", k, apis.ErrSealed)
	}
	return comp.c.Register(k, f, l)
}

// Build seals the composition and returns its container. New builders and
// registrations fail with apis.ErrSealed afterwards; existing builders stay
// Open until their first collection is created. Build is idempotent.
func (comp *Composition) Build() *container.Container {
	comp.buildMu.Lock()
	defer comp.buildMu.Unlock()

	old := comp.st.Load()
	if !old.sealed {
		comp.st.Store(&state{builders: old.builders, sealed: true})
		comp.log.Info("composition sealed",
			zap.Int("collections", len(old.builders)),
			zap.Int("bindings", len(comp.c.Bindings())))
	}
	return comp.c
}

// Ordered returns the ordered builder of T bound under name, creating and
// binding it on first call. It fails with apis.ErrDuplicateBinding if (T,
// name) is already bound to a weighted builder, or if opts ask for a lifetime
// other than the one the collection was bound with.
func Ordered[T any](comp *Composition, name string, opts ...binding.Option) (*builder.Ordered[T], error) {
	return getOrBind[T](comp, name, opts, func(bopts []builder.Option) *builder.Ordered[T] {
		return builder.NewOrdered[T](bopts...)
	})
}

// Weighted is like Ordered for weighted builders.
func Weighted[T any](comp *Composition, name string, opts ...binding.Option) (*builder.Weighted[T], error) {
	return getOrBind[T](comp, name, opts, func(bopts []builder.Option) *builder.Weighted[T] {
		return builder.NewWeighted[T](bopts...)
	})
}

func getOrBind[T any, B builder.Builder[T]](comp *Composition, name string, opts []binding.Option, create func([]builder.Option) B) (B, error) {
	var zero B
	key := slot{capability: reflect.TypeFor[T](), name: name}

	// Fast path: lock-free read from the snapshot.
	if bd, ok := comp.st.Load().builders[key]; ok {
		return existing[T, B](key, bd, opts)
	}

	comp.buildMu.Lock()
	defer comp.buildMu.Unlock()

	// Re-check under lock in case another goroutine bound it meanwhile.
	old := comp.st.Load()
	if bd, ok := old.builders[key]; ok {
		return existing[T, B](key, bd, opts)
	}
	if old.sealed {
		return zero, fmt.Errorf("cbx: bind %v: %w", key, apis.ErrSealed)
	}
	if key.capability.Kind() != reflect.Interface {
		return zero, fmt.Errorf("cbx: bind %v: %w: capability is not an interface",
			key, apis.ErrInvalidContribution)
	}

	bopts := []builder.Option{
		builder.WithConfig(comp.cfg),
		builder.WithLogger(comp.log),
		builder.WithMetrics(comp.met),
	}
	if name != "" {
		bopts = append(bopts, builder.WithName(name))
	}
	b := create(bopts)

	bindOpts := append([]binding.Option{
		binding.WithConfig(comp.cfg),
		binding.WithLogger(comp.log),
	}, opts...)
	// The name is the lookup key here, so it cannot be overridden.
	bindOpts = append(bindOpts, binding.WithName(name))
	bd, err := binding.Bind[T](comp.c, b, bindOpts...)
	if err != nil {
		return zero, fmt.Errorf("cbx: %w", err)
	}

	next := maps.Clone(old.builders)
	next[key] = bound{builder: b, lifetime: bd.Lifetime}
	comp.st.Store(&state{builders: next, sealed: old.sealed})
	return b, nil
}

// existing returns the builder already bound for key if it has the kind B and
// opts do not ask for a different lifetime.
func existing[T any, B builder.Builder[T]](key slot, bd bound, opts []binding.Option) (B, error) {
	var zero B
	b, ok := bd.builder.(B)
	if !ok {
		return zero, fmt.Errorf("cbx: %v bound to %T: %w", key, bd.builder, apis.ErrDuplicateBinding)
	}
	if l, ok := binding.RequestedLifetime(opts...); ok && l != bd.lifetime {
		return zero, fmt.Errorf("cbx: %v bound %v, requested %v: %w", key, bd.lifetime, l, apis.ErrDuplicateBinding)
	}
	return b, nil
}

func (s slot) String() string {
	return apis.NamedKey(s.capability, s.name).String()
}

// Resolve resolves the collection of T bound under name from r, typically
// the built container or one of its scopes.
func Resolve[T any](r apis.Resolver, name string) (*collection.Collection[T], error) {
	return binding.Resolve[T](r, name)
}
