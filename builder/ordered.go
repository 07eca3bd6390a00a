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
	"reflect"

	"dirpx.dev/cbx/apis"
)

// Ordered is a builder whose collection follows the order in which the list
// was mutated.
type Ordered[T any] struct {
	*list[T]
}

// NewOrdered creates an open ordered builder for the interface type T.
// It panics if T is not an interface type.
func NewOrdered[T any](opts ...Option) *Ordered[T] {
	return &Ordered[T]{list: newList[T](keepOrder, opts)}
}

// keepOrder is the arrangement of ordered builders: the list as mutated.
func keepOrder(entries []apis.Entry) []apis.Entry { return entries }

// Insert places t at index, 0 <= index <= Len(). If t is already present it
// is moved: the call behaves like Remove(t) followed by an insert at index,
// with index shifted down by one when t was located before it.
func (o *Ordered[T]) Insert(t reflect.Type, index int) error {
	if err := o.validate("insert", t); err != nil {
		return err
	}
	return o.mutate("insert", t, nil, index, func() error {
		if index < 0 || index > len(o.entries) {
			return apis.ErrIndexOutOfRange
		}
		o.moveTo(t, index)
		return nil
	})
}

// Prepend inserts t at the front of the list; see Insert.
func (o *Ordered[T]) Prepend(t reflect.Type) error {
	return o.Insert(t, 0)
}

// InsertBefore places t immediately before anchor, moving t if present.
func (o *Ordered[T]) InsertBefore(anchor, t reflect.Type) error {
	return o.insertRelative("insert-before", anchor, t, 0)
}

// InsertAfter places t immediately after anchor, moving t if present.
func (o *Ordered[T]) InsertAfter(anchor, t reflect.Type) error {
	return o.insertRelative("insert-after", anchor, t, 1)
}

func (o *Ordered[T]) insertRelative(op string, anchor, t reflect.Type, offset int) error {
	if err := o.validate(op, t); err != nil {
		return err
	}
	return o.mutate(op, t, anchor, -1, func() error {
		a := -1
		if anchor != nil {
			a = o.indexOf(anchor)
		}
		if a < 0 {
			return apis.ErrAnchorNotFound
		}
		o.moveTo(t, a+offset)
		return nil
	})
}
