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

package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"dirpx.dev/cbx/apis"
)

// New constructs an empty binding Registry.
func New() apis.Registry {
	return &registry{}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps apis.Key to apis.Binding.
	m sync.Map // map[apis.Key]apis.Binding
	// count tracks the number of registered entries.
	count int
}

// Register stores b. The first binding for a key wins; later ones fail with
// apis.ErrDuplicateBinding.
func (r *registry) Register(b apis.Binding) error {
	// Validate inputs early.
	if b.Key.Type == nil {
		return fmt.Errorf("%w: nil key type", apis.ErrInvalidBinding)
	}
	if b.Factory == nil {
		return fmt.Errorf("%w: nil factory for %v", apis.ErrInvalidBinding, b.Key)
	}
	if !b.Lifetime.Valid() {
		return fmt.Errorf("%w: %v for %v", apis.ErrInvalidBinding, b.Lifetime, b.Key)
	}

	// Fast read path: conflict check without locking.
	if _, ok := r.m.Load(b.Key); ok {
		return fmt.Errorf("%w: %v", apis.ErrDuplicateBinding, b.Key)
	}

	// Write path: guard with a mutex to keep counter consistent.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if _, loaded := r.m.LoadOrStore(b.Key, b); loaded {
		return fmt.Errorf("%w: %v", apis.ErrDuplicateBinding, b.Key)
	}
	r.count++
	return nil
}

// Lookup returns the binding for k if present.
func (r *registry) Lookup(k apis.Key) (apis.Binding, bool) {
	if k.Type == nil {
		return apis.Binding{}, false
	}
	if v, ok := r.m.Load(k); ok {
		return v.(apis.Binding), true
	}
	return apis.Binding{}, false
}

// Entries returns a snapshot sorted by key string, for diagnostics.
func (r *registry) Entries() []apis.Binding {
	entries := make([]apis.Binding, 0, r.Count())
	r.m.Range(func(_, value any) bool {
		entries = append(entries, value.(apis.Binding))
		return true
	})
	slices.SortFunc(entries, func(a, b apis.Binding) int {
		return cmp.Compare(a.Key.String(), b.Key.String())
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
