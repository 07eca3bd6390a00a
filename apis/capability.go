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

// Weighter lets an implementation type declare its default weight in a
// weighted collection. It is called on the zero value of the type.
type Weighter interface {
	ContributionWeight() int
}

// Provider lets a type construct itself. It is called on the zero value of
// the type and must return a value of that type.
type Provider interface {
	Provide(r Resolver) (any, error)
}

// Initializer is called on instances built by reflection, after construction.
type Initializer interface {
	Init(r Resolver) error
}

// Disposer is called when the scope owning a cached instance is disposed.
// io.Closer is honored the same way.
type Disposer interface {
	Dispose() error
}
