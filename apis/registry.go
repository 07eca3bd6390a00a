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

// Registry is the binding table behind a Container.
// Implementations must be safe for concurrent use.
type Registry interface {
	// Register stores b. Registering a second binding for b.Key fails with
	// ErrDuplicateBinding; the first binding is kept.
	Register(b Binding) error
	// Lookup returns the binding registered for k, if any.
	Lookup(k Key) (b Binding, ok bool)
	// Entries returns a snapshot for diagnostics, sorted by key.
	Entries() []Binding
	// Count returns the number of registered bindings.
	Count() int
}

// Binding associates a key with a factory and the lifetime of what it produces.
type Binding struct {
	// Key identifies the service.
	Key Key
	// Lifetime governs caching of the factory result.
	Lifetime Lifetime
	// Factory constructs the service.
	Factory Factory
}

// Factory constructs a service. r resolves further dependencies in the same
// scope the service is being resolved for.
type Factory func(r Resolver) (any, error)
