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

package builder_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/collection"
	"dirpx.dev/cbx/resolver"
	"dirpx.dev/cbx/strategy"
)

// Resolved is the capability used throughout the builder tests.
type Resolved interface{ resolved() }

type Resolved1 struct{}

func (*Resolved1) resolved() {}

// Resolved2 declares a lower default weight than the others.
type Resolved2 struct{}

func (*Resolved2) resolved()               {}
func (*Resolved2) ContributionWeight() int { return 50 }

type Resolved3 struct{}

func (*Resolved3) resolved() {}

// Resolved4 does not implement Resolved.
type Resolved4 struct{}

var (
	r1 = reflect.TypeFor[*Resolved1]()
	r2 = reflect.TypeFor[*Resolved2]()
	r3 = reflect.TypeFor[*Resolved3]()
	r4 = reflect.TypeFor[*Resolved4]()
)

// newResolver builds instances by reflection, a fresh one per resolution.
func newResolver() apis.Resolver {
	return resolver.New(strategy.NewReflectStrategy())
}

// materialize iterates col and returns the dynamic types of its items.
func materialize(t *testing.T, col *collection.Collection[Resolved]) []reflect.Type {
	t.Helper()
	items, err := col.Items()
	require.NoError(t, err)
	out := make([]reflect.Type, len(items))
	for i, it := range items {
		out[i] = reflect.TypeOf(it)
	}
	return out
}

func types(ts ...reflect.Type) []reflect.Type { return ts }

func entryTypes(es []apis.Entry) []reflect.Type {
	out := make([]reflect.Type, len(es))
	for i, e := range es {
		out[i] = e.Type
	}
	return out
}
