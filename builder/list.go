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

package builder

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/collection"
	"dirpx.dev/cbx/metrics"
	uref "dirpx.dev/cbx/utils/reflect"
)

// list is the contribution list and Open/Frozen state machine shared by
// both builder variants.
type list[T any] struct {
	name       string
	capability reflect.Type
	weight     int // default weight
	log        *zap.Logger
	met        *metrics.Metrics
	// arrange computes the final order at freeze time. It may reorder its
	// argument in place.
	arrange func([]apis.Entry) []apis.Entry

	// mu guards entries against concurrent mutation and the freeze transition.
	mu      sync.RWMutex
	entries []apis.Entry
	// frozen is set exactly once, after order is written.
	frozen atomic.Bool
	order  []reflect.Type
}

// newList panics if T is not an interface type: that is a programming error
// in the declaration of the collection, not a contribution error.
func newList[T any](arrange func([]apis.Entry) []apis.Entry, opts []Option) *list[T] {
	capT, err := uref.Capability[T]()
	if err != nil {
		panic(fmt.Errorf("cbx(builder): %w: %v", err, reflect.TypeFor[T]()))
	}
	o := newOptions(opts)
	if o.name == "" {
		o.name = uref.Name(capT)
	}
	return &list[T]{
		name:       o.name,
		capability: capT,
		weight:     o.cfg.DefaultWeight,
		log:        o.log.With(zap.String("collection", o.name)),
		met:        o.met,
		arrange:    arrange,
	}
}

// Name returns the collection name.
func (l *list[T]) Name() string { return l.name }

// Capability returns the interface type T.
func (l *list[T]) Capability() reflect.Type { return l.capability }

// Has reports whether t is contributed. It is allowed in any state.
func (l *list[T]) Has(t reflect.Type) bool {
	if t == nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.indexOf(t) >= 0
}

// Len returns the number of contributions.
func (l *list[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Entries returns a copy of the contributions; in final order once frozen.
func (l *list[T]) Entries() []apis.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.entries)
}

// Frozen reports whether the list is frozen.
func (l *list[T]) Frozen() bool { return l.frozen.Load() }

// Append adds each type that is not contributed yet at the end of the list.
// Types already present keep their position. All types are validated before
// any is added.
func (l *list[T]) Append(types ...reflect.Type) error {
	if err := l.validate("append", types...); err != nil {
		return err
	}
	return l.mutate("append", nil, nil, -1, func() error {
		for _, t := range types {
			if l.indexOf(t) < 0 {
				l.entries = append(l.entries, apis.Entry{Type: t, Weight: l.weightOf(t)})
			}
		}
		return nil
	})
}

// Remove removes t if present. Removing a missing type is not an error.
func (l *list[T]) Remove(t reflect.Type) error {
	if err := l.validate("remove", t); err != nil {
		return err
	}
	return l.mutate("remove", t, nil, -1, func() error {
		if i := l.indexOf(t); i >= 0 {
			l.entries = slices.Delete(l.entries, i, i+1)
		}
		return nil
	})
}

// Clear removes every contribution.
func (l *list[T]) Clear() error {
	return l.mutate("clear", nil, nil, -1, func() error {
		l.entries = nil
		return nil
	})
}

// Order freezes the list, if needed, and returns a copy of the final order.
func (l *list[T]) Order() []reflect.Type {
	return slices.Clone(l.freeze())
}

// CreateCollection freezes the list, if needed, and returns a new lazy
// collection over the frozen order. Each call returns a distinct collection;
// all of them share the same order.
func (l *list[T]) CreateCollection(r apis.Resolver) *collection.Collection[T] {
	order := l.freeze()
	l.log.Debug("collection created", zap.Int("count", len(order)))
	return collection.New[T](l.name, order, r)
}

// freeze computes the final order exactly once. Concurrent first callers
// serialize on mu; later callers only load the flag.
func (l *list[T]) freeze() []reflect.Type {
	if l.frozen.Load() {
		return l.order
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Re-check under lock in case another goroutine froze meanwhile.
	if l.frozen.Load() {
		return l.order
	}

	l.entries = l.arrange(l.entries)
	order := make([]reflect.Type, len(l.entries))
	names := make([]string, len(l.entries))
	for i, e := range l.entries {
		order[i] = e.Type
		names[i] = uref.Name(e.Type)
	}
	l.order = order
	l.frozen.Store(true)

	l.met.Freeze(l.name)
	l.log.Info("contribution list frozen", zap.Strings("order", names))
	return order
}

// validate checks every type against the capability.
func (l *list[T]) validate(op string, types ...reflect.Type) error {
	for _, t := range types {
		if err := uref.Satisfies(t, l.capability); err != nil {
			return l.fail(op, t, nil, -1, fmt.Errorf("%w: %w", apis.ErrInvalidContribution, err))
		}
	}
	return nil
}

// mutate runs fn under the write lock unless the list is frozen.
// Errors returned by fn are wrapped into an *apis.ContributionError.
func (l *list[T]) mutate(op string, t, anchor reflect.Type, index int, fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.frozen.Load() {
		return l.fail(op, t, anchor, index, apis.ErrFrozen)
	}
	if err := fn(); err != nil {
		return l.fail(op, t, anchor, index, err)
	}

	l.met.Contribution(l.name, op)
	if ce := l.log.Check(zap.DebugLevel, "contribution list changed"); ce != nil {
		fields := []zap.Field{zap.String("op", op), zap.Int("count", len(l.entries))}
		if t != nil {
			fields = append(fields, zap.String("type", uref.Name(t)))
		}
		ce.Write(fields...)
	}
	return nil
}

func (l *list[T]) fail(op string, t, anchor reflect.Type, index int, err error) error {
	l.log.Debug("contribution rejected", zap.String("op", op), zap.String("type", uref.Name(t)), zap.Error(err))
	return &apis.ContributionError{
		Collection: l.name,
		Op:         op,
		Type:       t,
		Anchor:     anchor,
		Index:      index,
		Err:        err,
	}
}

// moveTo inserts t at index i, evicting a previous occurrence first. i is an
// index into the list before eviction, so it is shifted when the evicted
// position precedes it. Callers hold mu and have bounds-checked i.
func (l *list[T]) moveTo(t reflect.Type, i int) {
	e := apis.Entry{Type: t, Weight: l.weightOf(t)}
	if j := l.indexOf(t); j >= 0 {
		e = l.entries[j]
		l.entries = slices.Delete(l.entries, j, j+1)
		if j < i {
			i--
		}
	}
	l.entries = slices.Insert(l.entries, i, e)
}

// indexOf returns the position of t, or -1. Callers hold mu.
func (l *list[T]) indexOf(t reflect.Type) int {
	return slices.IndexFunc(l.entries, func(e apis.Entry) bool { return e.Type == t })
}

func (l *list[T]) weightOf(t reflect.Type) int {
	return uref.WeightOf(t, l.weight)
}
