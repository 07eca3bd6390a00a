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

// Resolver turns a key into a constructed instance.
// Implementations are expected to be safe for concurrent use.
type Resolver interface {
	// Resolve returns the instance for k or an error explaining why none
	// could be produced.
	Resolve(k Key) (any, error)
}

// Container is the resolution facility collections are bound into.
type Container interface {
	Resolver

	// Register adds a binding for k. See Registry.Register.
	Register(k Key, f Factory, l Lifetime) error

	// Contains reports whether a binding exists for k.
	Contains(k Key) bool
}

// Scope is a resolution context with its own PerScope cache.
type Scope interface {
	Resolver

	// ID returns a unique identifier for the scope, used in logs.
	ID() string

	// Dispose releases scoped instances. Resolving from a disposed scope fails
	// with ErrScopeDisposed. Dispose is idempotent.
	Dispose() error
}
