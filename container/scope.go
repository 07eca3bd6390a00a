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

package container

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dirpx.dev/cbx/apis"
)

// Scope is a resolution unit with its own cache of PerScope instances.
// It is safe for concurrent use.
type Scope struct {
	c    *Container
	id   string
	root bool

	mu       sync.Mutex
	slots    map[apis.Key]*slot
	created  []any // creation order, released in reverse
	disposed atomic.Bool
}

// Ensure Scope implements apis.Scope.
var _ apis.Scope = (*Scope)(nil)

// slot holds one cached instance. Its mutex serializes the first
// construction so concurrent resolutions share one instance.
type slot struct {
	mu   sync.Mutex
	done bool
	val  any
}

func newScope(c *Container, id string, root bool) *Scope {
	return &Scope{c: c, id: id, root: root, slots: make(map[apis.Key]*slot)}
}

func newScopeID() string { return uuid.NewString() }

// ID returns the scope id; RootID for the container itself.
func (s *Scope) ID() string { return s.id }

// Resolve resolves k within the scope.
func (s *Scope) Resolve(k apis.Key) (any, error) { return s.c.resolve(s, k) }

// Disposed reports whether Dispose was called.
func (s *Scope) Disposed() bool { return s.disposed.Load() }

// Dispose releases the instances cached on the scope, newest first, through
// apis.Disposer or io.Closer. It returns the joined release errors. Calling
// Dispose again is a no-op.
func (s *Scope) Dispose() error {
	if !s.disposed.CompareAndSwap(false, true) {
		return nil
	}

	s.mu.Lock()
	created := s.created
	s.created, s.slots = nil, nil
	s.mu.Unlock()

	var errs []error
	for i := len(created) - 1; i >= 0; i-- {
		if err := release(created[i]); err != nil {
			errs = append(errs, err)
		}
	}

	if !s.root {
		s.c.met.ScopeClosed()
	}
	err := errors.Join(errs...)
	if err != nil {
		s.c.log.Warn("scope disposed with errors",
			zap.String("scope", s.id), zap.Int("released", len(created)), zap.Error(err))
		return err
	}
	s.c.log.Debug("scope disposed", zap.String("scope", s.id), zap.Int("released", len(created)))
	return nil
}

// instance returns the cached value for b, creating it with res on first use.
// Failed constructions are not cached.
func (s *Scope) instance(b apis.Binding, res apis.Resolver) (any, bool, error) {
	sl, err := s.slot(b.Key)
	if err != nil {
		return nil, false, err
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.done {
		return sl.val, true, nil
	}

	v, err := b.Factory(res)
	if err != nil {
		return nil, false, err
	}
	if err := s.track(v); err != nil {
		return nil, false, err
	}
	sl.val, sl.done = v, true
	return v, false, nil
}

func (s *Scope) slot(k apis.Key) (*slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slots == nil {
		return nil, apis.ErrScopeDisposed
	}
	sl, ok := s.slots[k]
	if !ok {
		sl = &slot{}
		s.slots[k] = sl
	}
	return sl, nil
}

// track records v for disposal. If the scope was disposed while v was being
// built, v is released at once.
func (s *Scope) track(v any) error {
	s.mu.Lock()
	if s.slots != nil {
		s.created = append(s.created, v)
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()
	return errors.Join(apis.ErrScopeDisposed, release(v))
}

// release disposes v if it owns resources.
func release(v any) error {
	var err error
	switch d := v.(type) {
	case apis.Disposer:
		err = d.Dispose()
	case io.Closer:
		err = d.Close()
	}
	if err != nil {
		return fmt.Errorf("cbx(container): release %T: %w", v, err)
	}
	return nil
}
