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

	"dirpx.dev/cbx/apis"
	uref "dirpx.dev/cbx/utils/reflect"
)

// NewProviderStrategy creates an apis.Strategy for self-constructing types.
func NewProviderStrategy() apis.Strategy {
	return &providerStrategy{}
}

// providerStrategy is a fast path: if the key's type implements apis.Provider,
// its zero value constructs the instance and the chain stops.
type providerStrategy struct{}

// Ensure providerStrategy implements apis.Strategy.
var _ apis.Strategy = (*providerStrategy)(nil)

var providerType = reflect.TypeFor[apis.Provider]()

// TryResolve calls Provide on the zero value of k.Type.
func (*providerStrategy) TryResolve(k apis.Key, r apis.Resolver) (any, bool, error) {
	// Named keys are only served by explicit bindings.
	if k.Type == nil || k.Name != "" || k.Type.Kind() == reflect.Interface {
		return nil, false, nil
	}
	if !k.Type.Implements(providerType) {
		return nil, false, nil
	}
	p, ok := uref.Zero(k.Type).(apis.Provider)
	if !ok {
		return nil, false, nil
	}
	v, err := p.Provide(r)
	if err != nil {
		return nil, true, err
	}
	if v == nil || !reflect.TypeOf(v).AssignableTo(k.Type) {
		return nil, true, fmt.Errorf("cbx(strategy): %s provided %T", uref.Name(k.Type), v)
	}
	return v, true, nil
}
