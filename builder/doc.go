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

// Package builder implements the mutable side of a collection: a list of
// implementation types contributed during bootstrap, frozen the first time a
// collection is created from it.
//
// # Lifecycle
//
// A builder starts Open. Contributors call Append, Insert, Remove and friends
// in any order. The first CreateCollection (or Order) call freezes the list:
// the final order is computed once, under the builder's lock, and every later
// mutation fails with apis.ErrFrozen. Queries (Has, Len, Entries) keep working.
//
// Every mutation validates its types against the capability before looking
// at the frozen flag, so an invalid contribution is reported as
// apis.ErrInvalidContribution at any stage.
//
// # Variants
//
// Ordered keeps insertion order as mutated. Weighted sorts by ascending
// weight at freeze time, ties keeping insertion order.
package builder

import (
	"reflect"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/collection"
)

// Builder is implemented by *Ordered[T] and *Weighted[T].
type Builder[T any] interface {
	apis.Contributions

	// Order freezes the builder, if needed, and returns a copy of the final
	// order of implementation types.
	Order() []reflect.Type

	// CreateCollection freezes the builder, if needed, and returns a new lazy
	// collection over the frozen order, resolving entries through r.
	CreateCollection(r apis.Resolver) *collection.Collection[T]
}

var (
	_ Builder[any] = (*Ordered[any])(nil)
	_ Builder[any] = (*Weighted[any])(nil)
)
