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

package strategy

import (
	"fmt"
	"reflect"
	"sync"

	"dirpx.dev/cbx/apis"
)

// NewReflectStrategy creates an apis.Strategy that builds struct values and
// pointers to structs by reflection.
func NewReflectStrategy() apis.Strategy {
	return reflectStrategy{}
}

// reflectStrategy is the universal fallback. It allocates the zero value of
// a struct (or *struct) type and runs apis.Initializer on it, if implemented.
type reflectStrategy struct{}

// Ensure reflectStrategy implements apis.Strategy.
var _ apis.Strategy = (*reflectStrategy)(nil)

// constructibleCache caches whether a type can be built by reflection.
var constructibleCache sync.Map // key: reflect.Type, val: bool

// TryResolve constructs k.Type by reflection.
func (reflectStrategy) TryResolve(k apis.Key, r apis.Resolver) (any, bool, error) {
	if k.Type == nil || k.Name != "" || !constructible(k.Type) {
		return nil, false, nil
	}

	var v any
	if k.Type.Kind() == reflect.Pointer {
		v = reflect.New(k.Type.Elem()).Interface()
	} else {
		v = reflect.New(k.Type).Elem().Interface()
	}

	if init, ok := v.(apis.Initializer); ok {
		if err := init.Init(r); err != nil {
			return nil, true, fmt.Errorf("cbx(strategy): init %v: %w", k.Type, err)
		}
	}
	return v, true, nil
}

// constructible reports whether t is a struct or a pointer to a struct.
func constructible(t reflect.Type) bool {
	if v, ok := constructibleCache.Load(t); ok {
		return v.(bool)
	}
	ok := t.Kind() == reflect.Struct ||
		(t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct)
	constructibleCache.Store(t, ok)
	return ok
}
