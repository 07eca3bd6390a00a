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

package apis

// Config carries read-only knobs shared by builders, bindings and containers.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// DefaultWeight is the weight given to contributions that neither pass an
	// explicit weight nor implement Weighter.
	DefaultWeight int

	// DefaultLifetime is the lifetime used by bindings that do not choose one.
	DefaultLifetime Lifetime

	// StrictScopes makes resolving a PerScope binding outside of a scope an
	// error instead of caching it in the root scope.
	StrictScopes bool

	// Namespace prefixes metric names.
	Namespace string
}
