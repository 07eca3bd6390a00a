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
	"cmp"
	"reflect"
	"slices"

	"dirpx.dev/cbx/apis"
)

// Weighted is a builder whose collection is ordered by ascending weight.
// Entries with equal weights keep their insertion order.
type Weighted[T any] struct {
	*list[T]
}

// NewWeighted creates an open weighted builder for the interface type T.
// It panics if T is not an interface type.
func NewWeighted[T any](opts ...Option) *Weighted[T] {
	return &Weighted[T]{list: newList[T](byWeight, opts)}
}

// byWeight is the arrangement of weighted builders.
func byWeight(entries []apis.Entry) []apis.Entry {
	slices.SortStableFunc(entries, func(a, b apis.Entry) int {
		return cmp.Compare(a.Weight, b.Weight)
	})
	return entries
}

// Add contributes t with an explicit weight. Like Append, adding a type that
// is already present is a no-op: it keeps its weight and position. Use
// SetWeight to change the weight of a contributed type.
func (w *Weighted[T]) Add(t reflect.Type, weight int) error {
	if err := w.validate("add", t); err != nil {
		return err
	}
	return w.mutate("add", t, nil, -1, func() error {
		if w.indexOf(t) < 0 {
			w.entries = append(w.entries, apis.Entry{Type: t, Weight: weight})
		}
		return nil
	})
}

// SetWeight changes the weight of a contributed type.
func (w *Weighted[T]) SetWeight(t reflect.Type, weight int) error {
	if err := w.validate("set-weight", t); err != nil {
		return err
	}
	return w.mutate("set-weight", t, nil, -1, func() error {
		i := w.indexOf(t)
		if i < 0 {
			return apis.ErrEntryNotFound
		}
		w.entries[i].Weight = weight
		return nil
	})
}

// Weight returns the current weight of t.
func (w *Weighted[T]) Weight(t reflect.Type) (int, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if i := w.indexOf(t); i >= 0 {
		return w.entries[i].Weight, true
	}
	return 0, false
}
