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

// Package binding registers a builder and the collection it produces into a
// container.
//
// Bind registers three keys, all under the same name:
//
//   - the builder itself, PerProcess, so contributors can reach it;
//   - its read-only apis.Contributions view, PerProcess;
//   - the collection, with the chosen lifetime. Each resolution of an
//     uncached collection calls CreateCollection, which freezes the builder
//     on first use.
//
// The collection's factory receives the resolver it was resolved from, so a
// PerScope collection resolves its elements within the scope.
package binding

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/builder"
	"dirpx.dev/cbx/collection"
	uref "dirpx.dev/cbx/utils/reflect"
)

var contributionsType = reflect.TypeFor[apis.Contributions]()

// Binding records the keys registered by Bind.
type Binding[T any] struct {
	Builder  builder.Builder[T]
	Name     string
	Lifetime apis.Lifetime

	BuilderKey       apis.Key
	ContributionsKey apis.Key
	CollectionKey    apis.Key
}

// CollectionKey returns the key of the collection of T bound under name.
func CollectionKey[T any](name string) apis.Key {
	return apis.NamedKey(reflect.TypeFor[*collection.Collection[T]](), name)
}

// ContributionsKey returns the key of the apis.Contributions view of the
// builder for T bound under name. Its name is qualified by the capability
// because the view type is shared by every capability.
func ContributionsKey[T any](name string) apis.Key {
	return apis.NamedKey(contributionsType, qualify(reflect.TypeFor[T](), name))
}

func qualify(capability reflect.Type, name string) string {
	if name == "" {
		return capability.String()
	}
	return capability.String() + "#" + name
}

// Bind registers b and its collection into c. If any of the keys is bound
// already when Bind starts, it fails with apis.ErrDuplicateBinding and
// registers nothing.
//
// Bind does not lock c. A concurrent registration of one of the keys can
// land between the check and the registrations; Bind then still fails with
// apis.ErrDuplicateBinding, but keys registered before the conflict stay
// bound. Callers sharing a container across goroutines serialize their Bind
// calls, as the composition root does.
func Bind[T any](c apis.Container, b builder.Builder[T], opts ...Option) (*Binding[T], error) {
	if c == nil || b == nil {
		return nil, fmt.Errorf("cbx(binding): %w: nil container or builder", apis.ErrInvalidBinding)
	}
	o := newOptions(opts)
	if !o.lifetime.Valid() {
		return nil, fmt.Errorf("cbx(binding): %w: %v", apis.ErrInvalidBinding, o.lifetime)
	}

	bd := &Binding[T]{
		Builder:          b,
		Name:             o.name,
		Lifetime:         o.lifetime,
		BuilderKey:       apis.NamedKey(reflect.TypeOf(b), o.name),
		ContributionsKey: ContributionsKey[T](o.name),
		CollectionKey:    CollectionKey[T](o.name),
	}

	for _, k := range bd.keys() {
		if c.Contains(k) {
			return nil, fmt.Errorf("cbx(binding): %w: %v", apis.ErrDuplicateBinding, k)
		}
	}

	regs := []struct {
		key      apis.Key
		factory  apis.Factory
		lifetime apis.Lifetime
	}{
		{bd.BuilderKey, func(apis.Resolver) (any, error) { return b, nil }, apis.PerProcess},
		{bd.ContributionsKey, func(apis.Resolver) (any, error) { return apis.Contributions(b), nil }, apis.PerProcess},
		{bd.CollectionKey, func(r apis.Resolver) (any, error) { return b.CreateCollection(r), nil }, o.lifetime},
	}
	for _, reg := range regs {
		if err := c.Register(reg.key, reg.factory, reg.lifetime); err != nil {
			return nil, fmt.Errorf("cbx(binding): %w", err)
		}
	}

	o.log.Info("collection bound",
		zap.String("capability", uref.Name(b.Capability())),
		zap.String("name", o.name),
		zap.Stringer("lifetime", o.lifetime))
	return bd, nil
}

func (bd *Binding[T]) keys() []apis.Key {
	return []apis.Key{bd.BuilderKey, bd.ContributionsKey, bd.CollectionKey}
}

// Resolve resolves the collection of T bound under name.
func Resolve[T any](r apis.Resolver, name string) (*collection.Collection[T], error) {
	k := CollectionKey[T](name)
	v, err := r.Resolve(k)
	if err != nil {
		return nil, err
	}
	col, ok := v.(*collection.Collection[T])
	if !ok {
		return nil, fmt.Errorf("cbx(binding): %w: %v resolved to %T", apis.ErrInvalidBinding, k, v)
	}
	return col, nil
}

// Contributions resolves the read-only view of the builder for T bound under
// name.
func Contributions[T any](r apis.Resolver, name string) (apis.Contributions, error) {
	k := ContributionsKey[T](name)
	v, err := r.Resolve(k)
	if err != nil {
		return nil, err
	}
	view, ok := v.(apis.Contributions)
	if !ok {
		return nil, fmt.Errorf("cbx(binding): %w: %v resolved to %T", apis.ErrInvalidBinding, k, v)
	}
	return view, nil
}
