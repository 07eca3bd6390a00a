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

// Package collection provides the materialized form of a contribution list:
// an ordered, read-only sequence of capability instances that are resolved
// lazily, entry by entry, every time the collection is iterated.
package collection

import (
	"errors"
	"fmt"
	"iter"
	"reflect"
	"slices"

	"dirpx.dev/cbx/apis"
)

// ErrNilResolver is returned while iterating a collection that has no resolver.
var ErrNilResolver = errors.New("cbx(collection): nil resolver")

// Collection is a lazy, read-only view over a frozen order of implementation
// types. It holds no instances: freshness of the resolved objects is decided
// by the resolver (for a container scope, by the bindings' lifetimes).
//
// A Collection is safe for concurrent iteration if its resolver is.
type Collection[T any] struct {
	name  string
	types []reflect.Type // shared frozen order, never mutated
	res   apis.Resolver
}

// New returns a collection over types. types must not be modified afterwards;
// builders pass their frozen snapshot.
func New[T any](name string, types []reflect.Type, res apis.Resolver) *Collection[T] {
	return &Collection[T]{name: name, types: types, res: res}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

// Len returns the number of entries.
func (c *Collection[T]) Len() int { return len(c.types) }

// Types returns a copy of the implementation types in order.
func (c *Collection[T]) Types() []reflect.Type { return slices.Clone(c.types) }

// All resolves and yields the entries in order. On the first failure it
// yields the zero T together with an *apis.ResolutionError and stops;
// values yielded earlier stay valid.
func (c *Collection[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for i, t := range c.types {
			v, err := c.resolve(i, t)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Items resolves every entry. On failure it returns the items resolved so
// far together with the error.
func (c *Collection[T]) Items() ([]T, error) {
	out := make([]T, 0, len(c.types))
	for v, err := range c.All() {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// resolve instantiates the i-th entry and checks it against T.
func (c *Collection[T]) resolve(i int, t reflect.Type) (T, error) {
	var zero T
	if c.res == nil {
		return zero, c.fail(i, t, ErrNilResolver)
	}
	v, err := c.res.Resolve(apis.KeyOf(t))
	if err != nil {
		return zero, c.fail(i, t, err)
	}
	out, ok := v.(T)
	if !ok {
		return zero, c.fail(i, t, fmt.Errorf("%w: resolved %T", apis.ErrInvalidContribution, v))
	}
	return out, nil
}

func (c *Collection[T]) fail(i int, t reflect.Type, err error) error {
	return &apis.ResolutionError{Collection: c.name, Index: i, Type: t, Err: err}
}
