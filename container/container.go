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

// Package container resolves keys through registered bindings and honors
// their lifetimes.
//
// A Container is the root of resolution. PerProcess instances are cached on
// the container; PerScope instances are cached on the Scope that resolved
// them; PerResolution bindings run their factory on every call. Keys without
// a binding are handed to the fallback strategy chain and are never cached.
package container

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/metrics"
)

// RootID is the scope id of the container itself.
const RootID = "root"

// Container is safe for concurrent use.
type Container struct {
	cfg      apis.Config
	log      *zap.Logger
	met      *metrics.Metrics
	reg      apis.Registry
	fallback apis.Strategy

	// root caches PerProcess instances, and PerScope instances resolved
	// outside of any scope unless scopes are strict.
	root *Scope
}

// Ensure Container implements apis.Container.
var _ apis.Container = (*Container)(nil)

// New creates an empty container.
func New(opts ...Option) *Container {
	o := newOptions(opts)
	c := &Container{
		cfg:      o.cfg,
		log:      o.log,
		met:      o.met,
		reg:      o.reg,
		fallback: o.fallback,
	}
	c.root = newScope(c, RootID, true)
	return c
}

// Register binds k to factory with the given lifetime.
func (c *Container) Register(k apis.Key, factory apis.Factory, lifetime apis.Lifetime) error {
	err := c.reg.Register(apis.Binding{Key: k, Lifetime: lifetime, Factory: factory})
	if err != nil {
		return fmt.Errorf("cbx(container): register %v: %w", k, err)
	}
	c.log.Debug("binding registered", zap.Stringer("key", k), zap.Stringer("lifetime", lifetime))
	return nil
}

// Contains reports whether k has a binding. Keys served by the fallback
// strategies are not reported.
func (c *Container) Contains(k apis.Key) bool {
	_, ok := c.reg.Lookup(k)
	return ok
}

// Bindings returns all bindings, sorted by key.
func (c *Container) Bindings() []apis.Binding { return c.reg.Entries() }

// Resolve resolves k from the root.
func (c *Container) Resolve(k apis.Key) (any, error) { return c.root.Resolve(k) }

// CreateScope opens a new scope. Scopes must be disposed by their owner.
func (c *Container) CreateScope() *Scope {
	s := newScope(c, newScopeID(), false)
	c.met.ScopeOpened()
	c.log.Debug("scope opened", zap.String("scope", s.id))
	return s
}

// Dispose releases every instance cached on the container, newest first.
// Scopes created from the container fail to resolve afterwards.
func (c *Container) Dispose() error { return c.root.Dispose() }

// resolve is shared by the root and every scope.
func (c *Container) resolve(s *Scope, k apis.Key) (any, error) {
	if s.Disposed() || c.root.Disposed() {
		return nil, fmt.Errorf("cbx(container): resolve %v in scope %s: %w", k, s.id, apis.ErrScopeDisposed)
	}

	b, ok := c.reg.Lookup(k)
	if !ok {
		return c.fallbackResolve(s, k)
	}

	var (
		start  = time.Now()
		v      any
		cached bool
		err    error
	)
	switch b.Lifetime {
	case apis.PerResolution:
		v, err = b.Factory(s)
	case apis.PerScope:
		if s.root && c.cfg.StrictScopes {
			err = apis.ErrScopeRequired
			break
		}
		v, cached, err = s.instance(b, s)
	case apis.PerProcess:
		v, cached, err = c.root.instance(b, c.root)
	default:
		err = fmt.Errorf("%w: lifetime %v", apis.ErrInvalidBinding, b.Lifetime)
	}

	c.observe(s, k, b.Lifetime, start, cached, err)
	if err != nil {
		return nil, fmt.Errorf("cbx(container): resolve %v: %w", k, err)
	}
	return v, nil
}

// fallbackResolve hands an unregistered key to the strategy chain. The
// result is transient.
func (c *Container) fallbackResolve(s *Scope, k apis.Key) (any, error) {
	start := time.Now()
	v, handled, err := c.fallback.TryResolve(k, s)
	if err == nil && !handled {
		err = apis.ErrNotRegistered
	}
	c.observe(s, k, apis.PerResolution, start, false, err)
	if err != nil {
		return nil, fmt.Errorf("cbx(container): resolve %v: %w", k, err)
	}
	return v, nil
}

func (c *Container) observe(s *Scope, k apis.Key, l apis.Lifetime, start time.Time, cached bool, err error) {
	outcome := metrics.OutcomeCreated
	switch {
	case err != nil:
		outcome = metrics.OutcomeError
		c.log.Debug("resolution failed",
			zap.Stringer("key", k), zap.String("scope", s.id), zap.Error(err))
	case cached:
		outcome = metrics.OutcomeCached
	}
	c.met.Resolution(l.String(), outcome, time.Since(start))
}
