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

import (
	"fmt"
	"strings"
)

// Lifetime is the caching policy of a binding.
type Lifetime uint8

const (
	// PerResolution invokes the factory on every resolution.
	PerResolution Lifetime = iota
	// PerScope caches one instance per scope.
	PerScope
	// PerProcess caches one instance for the lifetime of the container.
	PerProcess
)

// String returns the canonical name of l.
func (l Lifetime) String() string {
	switch l {
	case PerResolution:
		return "per-resolution"
	case PerScope:
		return "per-scope"
	case PerProcess:
		return "per-process"
	default:
		return fmt.Sprintf("lifetime(%d)", uint8(l))
	}
}

// Valid reports whether l is one of the declared lifetimes.
func (l Lifetime) Valid() bool {
	return l <= PerProcess
}

// ParseLifetime parses a lifetime name. The common DI aliases "transient",
// "scoped" and "singleton" are accepted too.
func ParseLifetime(s string) (Lifetime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "per-resolution", "transient":
		return PerResolution, nil
	case "per-scope", "scoped":
		return PerScope, nil
	case "per-process", "singleton":
		return PerProcess, nil
	}
	return 0, fmt.Errorf("%w: unknown lifetime %q", ErrInvalidBinding, s)
}
