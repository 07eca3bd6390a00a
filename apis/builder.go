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

import "reflect"

// Contributions is a read-only view over a builder's contribution list.
// Builders implement it, and bindings register it so that diagnostics can
// inspect what was contributed without holding the concrete builder type.
type Contributions interface {
	// Name returns the collection name used in logs and metrics.
	Name() string
	// Capability returns the interface type every contribution must implement.
	Capability() reflect.Type
	// Has reports whether t is currently contributed. It never fails.
	Has(t reflect.Type) bool
	// Len returns the number of contributions.
	Len() int
	// Entries returns a copy of the contributions. Once the list is frozen the
	// entries are returned in their final order.
	Entries() []Entry
	// Frozen reports whether the list has been frozen by a first materialization.
	Frozen() bool
}

// Entry is a single contribution: an implementation type and its weight.
// Weight only affects ordering in weighted builders.
type Entry struct {
	// Type is the concrete implementation type.
	Type reflect.Type
	// Weight orders weighted collections; lower weights come first.
	Weight int
}
