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

// Package cbx builds ordered collections of capability implementations at a
// composition root.
//
// A capability is an interface type. Independent parts of a program
// contribute implementation types to the collection of a capability during
// bootstrap, in any order; the collection is materialized later, lazily,
// through the container that resolves its elements.
//
// # Design
//
// Each collection is backed by a builder (package builder). A builder is a
// list of implementation types with two states:
//
//   - Open: contributors append, insert, move and remove types. Every type
//     is checked against the capability when it is contributed, so a wrong
//     contribution fails at the call site rather than at resolution time.
//
//   - Frozen: the first time a collection is created from the builder, the
//     final order is computed once and the list becomes read-only. Every
//     later mutation fails with apis.ErrFrozen.
//
// Two builder variants exist. Ordered keeps the order of its mutations, with
// positional helpers (Insert, InsertBefore, InsertAfter). Weighted sorts by
// ascending weight at freeze time; equal weights keep insertion order, and a
// type may declare its own default weight through apis.Weighter.
//
// A collection (package collection) holds the frozen order and a resolver.
// It holds no instances: each iteration asks the resolver for every entry,
// in order, so the freshness of the elements is decided by their bindings.
//
// # Lifetimes
//
// Binding a builder (package binding) registers the collection into a
// container (package container) with one of three lifetimes:
//
//	apis.PerResolution  a new collection on every resolution
//	apis.PerScope       one collection per scope
//	apis.PerProcess     one collection for the container (default)
//
// Elements follow their own bindings. Types without a binding are built by
// the container's fallback strategies (apis.Provider, then reflection).
//
// # Composition root
//
// Composition ties it together:
//
//	comp, _ := cbx.New(cbx.WithLogger(log))
//	validators, _ := cbx.Ordered[Validator](comp, "")
//	_ = validators.Append(reflect.TypeFor[*NotEmpty](), reflect.TypeFor[*MaxLen]())
//
//	c := comp.Build()
//	col, _ := cbx.Resolve[Validator](c, "")
//	for v, err := range col.All() {
//		...
//	}
//
// Ordered and Weighted return the existing builder for a (capability, name)
// pair, or create and bind one. Build seals the composition: new builders
// and registrations fail with apis.ErrSealed. Builders themselves freeze
// only when their first collection is created.
//
// # Concurrency model
//
// Builder lookups are lock-free: the composition publishes an immutable
// snapshot of its builders through an atomic pointer, and writers copy it
// under a build mutex before swapping. Builders guard their list with a
// RWMutex; the freeze is a one-time transition, so concurrent first
// materializations all observe the same order. Containers cache instances
// per key and construct each one once under concurrent first resolution.
//
// # Observability
//
// Every component takes a *zap.Logger and an optional *metrics.Metrics.
// Contributions and resolutions are logged at debug level, freezes at info.
// Metrics cover accepted mutations, freezes, resolutions by lifetime and
// outcome, factory latency and open scopes.
package cbx
