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
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

var (
	// ErrInvalidContribution is returned when a type does not implement the
	// capability of the collection it is contributed to.
	ErrInvalidContribution = errors.New("cbx: invalid contribution")
	// ErrFrozen is returned by mutations attempted after the first collection
	// was created from a builder.
	ErrFrozen = errors.New("cbx: contribution list is frozen")
	// ErrIndexOutOfRange is returned by Insert for an index outside [0, len].
	ErrIndexOutOfRange = errors.New("cbx: index out of range")
	// ErrAnchorNotFound is returned by InsertBefore/InsertAfter when the
	// reference type is not contributed.
	ErrAnchorNotFound = errors.New("cbx: anchor not found")
	// ErrEntryNotFound is returned by SetWeight for a type that is not contributed.
	ErrEntryNotFound = errors.New("cbx: entry not found")
	// ErrDuplicateBinding is returned when a key is bound twice.
	ErrDuplicateBinding = errors.New("cbx: duplicate binding")
	// ErrResolution marks failures to instantiate a contributed type.
	ErrResolution = errors.New("cbx: resolution failed")

	// ErrInvalidBinding is returned for bindings with a nil type or factory,
	// or an unknown lifetime.
	ErrInvalidBinding = errors.New("cbx: invalid binding")
	// ErrNotRegistered is returned when no binding or strategy can produce a key.
	ErrNotRegistered = errors.New("cbx: not registered")
	// ErrScopeDisposed is returned when resolving from a disposed scope.
	ErrScopeDisposed = errors.New("cbx: scope disposed")
	// ErrScopeRequired is returned when a PerScope binding is resolved from the
	// root with Config.StrictScopes set.
	ErrScopeRequired = errors.New("cbx: scope required")
	// ErrSealed is returned when a composition is changed after Build.
	ErrSealed = errors.New("cbx: composition sealed")
)

// ContributionError describes a rejected builder operation.
type ContributionError struct {
	// Collection is the name of the builder's collection.
	Collection string
	// Op is the builder operation, e.g. "append" or "insert-before".
	Op string
	// Type is the contributed type, if any.
	Type reflect.Type
	// Anchor is the reference type of InsertBefore/InsertAfter.
	Anchor reflect.Type
	// Index is the requested position for Insert, -1 otherwise.
	Index int
	// Err is one of the sentinel errors, possibly wrapping a cause.
	Err error
}

func (e *ContributionError) Error() string {
	msg := "cbx(builder): " + e.Collection + ": " + e.Op
	if e.Type != nil {
		msg += " " + e.Type.String()
	}
	if e.Anchor != nil {
		msg += " (anchor " + e.Anchor.String() + ")"
	}
	if e.Index >= 0 {
		msg += " at " + strconv.Itoa(e.Index)
	}
	return msg + ": " + e.Err.Error()
}

func (e *ContributionError) Unwrap() error { return e.Err }

// ResolutionError reports the contributed type that could not be resolved
// while iterating a collection. Items yielded before it remain valid.
type ResolutionError struct {
	// Collection is the name of the collection being iterated.
	Collection string
	// Index is the position of the failing entry.
	Index int
	// Type is the failing implementation type.
	Type reflect.Type
	// Err is the resolver's error.
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cbx(collection): %s: resolve #%d %v: %v", e.Collection, e.Index, e.Type, e.Err)
}

// Unwrap exposes both ErrResolution and the cause to errors.Is/As.
func (e *ResolutionError) Unwrap() []error { return []error{ErrResolution, e.Err} }
