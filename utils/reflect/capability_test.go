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

package reflect_test

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	uref "dirpx.dev/cbx/utils/reflect"
)

type capability interface{ Run() }

type valueImpl struct{}

func (valueImpl) Run() {}

type ptrImpl struct{ n int }

func (*ptrImpl) Run() {}

type heavy struct{}

func (heavy) Run()                    {}
func (heavy) ContributionWeight() int { return 7 }

type heavyPtr struct{ w int }

func (*heavyPtr) Run() {}
func (h *heavyPtr) ContributionWeight() int {
	if h == nil {
		return -1
	}
	return 3 + h.w
}

type Box[T any] struct{ v T }

func TestCapability(t *testing.T) {
	c, err := uref.Capability[capability]()
	if err != nil {
		t.Fatalf("Capability[capability]: unexpected error: %v", err)
	}
	if c.Kind() != reflect.Interface {
		t.Fatalf("Capability kind = %v, want interface", c.Kind())
	}

	if _, err := uref.Capability[valueImpl](); !errors.Is(err, uref.ErrReflectNotInterface) {
		t.Fatalf("Capability[valueImpl]: want ErrReflectNotInterface, got %v", err)
	}
}

func TestSatisfies(t *testing.T) {
	capT := reflect.TypeFor[capability]()

	cases := []struct {
		name string
		impl reflect.Type
		want error
	}{
		{"value receiver", reflect.TypeFor[valueImpl](), nil},
		{"pointer to value receiver", reflect.TypeFor[*valueImpl](), nil},
		{"pointer receiver", reflect.TypeFor[*ptrImpl](), nil},
		{"value of pointer receiver", reflect.TypeFor[ptrImpl](), uref.ErrReflectNotAssignable},
		{"interface itself", capT, uref.ErrReflectNotConcrete},
		{"unrelated", reflect.TypeFor[int](), uref.ErrReflectNotAssignable},
		{"nil", nil, uref.ErrReflectNilType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := uref.Satisfies(tc.impl, capT); !errors.Is(err, tc.want) {
				t.Fatalf("Satisfies(%v) = %v, want %v", tc.impl, err, tc.want)
			}
		})
	}

	if err := uref.Satisfies(reflect.TypeFor[valueImpl](), reflect.TypeFor[valueImpl]()); !errors.Is(err, uref.ErrReflectNotInterface) {
		t.Fatalf("non-interface capability: want ErrReflectNotInterface, got %v", err)
	}
}

func TestZero(t *testing.T) {
	if v := uref.Zero(nil); v != nil {
		t.Fatalf("Zero(nil) = %v, want nil", v)
	}
	p, ok := uref.Zero(reflect.TypeFor[*ptrImpl]()).(*ptrImpl)
	if !ok || p == nil {
		t.Fatalf("Zero(*ptrImpl) = %#v, want non-nil *ptrImpl", p)
	}
	if _, ok := uref.Zero(reflect.TypeFor[valueImpl]()).(valueImpl); !ok {
		t.Fatal("Zero(valueImpl) did not produce a valueImpl")
	}
}

func TestWeightOf(t *testing.T) {
	if w := uref.WeightOf(reflect.TypeFor[valueImpl](), 100); w != 100 {
		t.Fatalf("WeightOf(valueImpl) = %d, want default 100", w)
	}
	if w := uref.WeightOf(reflect.TypeFor[heavy](), 100); w != 7 {
		t.Fatalf("WeightOf(heavy) = %d, want 7", w)
	}
	// Pointer receivers are called on an allocated zero value, not a nil pointer.
	if w := uref.WeightOf(reflect.TypeFor[*heavyPtr](), 100); w != 3 {
		t.Fatalf("WeightOf(*heavyPtr) = %d, want 3", w)
	}
	if w := uref.WeightOf(nil, 42); w != 42 {
		t.Fatalf("WeightOf(nil) = %d, want 42", w)
	}
}

func TestName(t *testing.T) {
	cases := []struct {
		t    reflect.Type
		want string
	}{
		{reflect.TypeFor[valueImpl](), "reflect_test.valueImpl"},
		{reflect.TypeFor[*ptrImpl](), "*reflect_test.ptrImpl"},
		{reflect.TypeFor[Box[int]](), "reflect_test.Box"},
		{reflect.TypeFor[int](), "int"},
		{reflect.TypeFor[[]string](), "[]string"},
	}
	for _, tc := range cases {
		if got := uref.Name(tc.t); got != tc.want {
			t.Errorf("Name(%v) = %q, want %q", tc.t, got, tc.want)
		}
	}
	if got := uref.Name(nil); got != "" {
		t.Errorf("Name(nil) = %q, want empty", got)
	}
}

func TestName_ConcurrentStable(t *testing.T) {
	types := []reflect.Type{
		reflect.TypeFor[valueImpl](), reflect.TypeFor[*ptrImpl](), reflect.TypeFor[Box[string]](),
	}
	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				tt := types[(i+id)%len(types)]
				if name := uref.Name(tt); !strings.Contains(name, "reflect_test.") {
					t.Errorf("Name(%v) = %q", tt, name)
					return
				}
			}
		}(w)
	}
	wg.Wait()
}
