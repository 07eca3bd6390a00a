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

package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/cbx/apis"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectNotInterface is returned when a capability is not an interface type.
	ErrReflectNotInterface = errors.New("reflect: capability is not an interface type")
	// ErrReflectNotConcrete is returned when an implementation is itself an interface type.
	ErrReflectNotConcrete = errors.New("reflect: implementation is not a concrete type")
	// ErrReflectNotAssignable is returned when an implementation does not implement the capability.
	ErrReflectNotAssignable = errors.New("reflect: type does not implement capability")
)

var weighterType = reflect.TypeFor[apis.Weighter]()

// Capability returns the reflect.Type of the interface T, or an error if T is
// not an interface type.
func Capability[T any]() (reflect.Type, error) {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Interface {
		return nil, ErrReflectNotInterface
	}
	return t, nil
}

// Satisfies checks that impl is a concrete type implementing capability.
//
// The check follows Go method sets: if only *S has the methods, S does not
// satisfy the capability and must be contributed as *S.
func Satisfies(impl, capability reflect.Type) error {
	if impl == nil || capability == nil {
		return ErrReflectNilType
	}
	if capability.Kind() != reflect.Interface {
		return ErrReflectNotInterface
	}
	if impl.Kind() == reflect.Interface {
		return ErrReflectNotConcrete
	}
	if !impl.Implements(capability) {
		return ErrReflectNotAssignable
	}
	return nil
}

// Zero returns a usable zero value of t as an interface value. Pointer types
// get a freshly allocated element instead of a nil pointer, so that methods
// with pointer receivers can be called on the result.
func Zero(t reflect.Type) any {
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface()
	}
	return reflect.Zero(t).Interface()
}

// WeightOf returns the weight t declares through apis.Weighter, or def.
func WeightOf(t reflect.Type, def int) int {
	if t == nil || !t.Implements(weighterType) {
		return def
	}
	if w, ok := Zero(t).(apis.Weighter); ok {
		return w.ContributionWeight()
	}
	return def
}
