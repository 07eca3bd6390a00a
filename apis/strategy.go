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

// Strategy is a pluggable fallback step used when no binding exists for a key.
// A chain of strategies is tried in order (e.g., Provider -> Reflect).
type Strategy interface {
	// TryResolve attempts to construct an instance for k. r resolves nested
	// dependencies in the caller's scope. It returns handled=false to fall
	// through to the next strategy; a non-nil error stops the chain.
	TryResolve(k Key, r Resolver) (v any, handled bool, err error)
}
