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

package strategy_test

import (
	"errors"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/resolver"
	"dirpx.dev/cbx/strategy"
)

type plain struct{ N int }

type withInit struct {
	Dep  *plain
	Seen bool
}

func (w *withInit) Init(r apis.Resolver) error {
	v, err := r.Resolve(apis.KeyOf(reflect.TypeFor[*plain]()))
	if err != nil {
		return err
	}
	w.Dep = v.(*plain)
	w.Seen = true
	return nil
}

var errInit = errors.New("init failed")

type badInit struct{}

func (*badInit) Init(apis.Resolver) error { return errInit }

type selfMade struct{ From string }

func (selfMade) Provide(apis.Resolver) (any, error) { return selfMade{From: "provider"}, nil }

type liar struct{}

func (liar) Provide(apis.Resolver) (any, error) { return "not a liar", nil }

func TestReflectStrategy_BuildsStructsAndPointers(t *testing.T) {
	s := strategy.NewReflectStrategy()

	v, ok, err := s.TryResolve(apis.KeyOf(reflect.TypeFor[plain]()), nil)
	if err != nil || !ok {
		t.Fatalf("TryResolve(plain) = (%v, %v, %v)", v, ok, err)
	}
	if _, isPlain := v.(plain); !isPlain {
		t.Fatalf("TryResolve(plain) returned %T", v)
	}

	v1, _, _ := s.TryResolve(apis.KeyOf(reflect.TypeFor[*plain]()), nil)
	v2, _, _ := s.TryResolve(apis.KeyOf(reflect.TypeFor[*plain]()), nil)
	if v1.(*plain) == v2.(*plain) {
		t.Fatal("reflect strategy must build a fresh pointer each time")
	}
}

func TestReflectStrategy_SkipsUnsupported(t *testing.T) {
	s := strategy.NewReflectStrategy()
	keys := []apis.Key{
		apis.KeyOf(reflect.TypeFor[int]()),
		apis.KeyOf(reflect.TypeFor[func()]()),
		apis.KeyOf(reflect.TypeFor[apis.Resolver]()),
		apis.NamedKey(reflect.TypeFor[*plain](), "named"),
		{},
	}
	for _, k := range keys {
		if _, ok, err := s.TryResolve(k, nil); ok || err != nil {
			t.Errorf("TryResolve(%v) = (ok=%v, err=%v), want fall through", k, ok, err)
		}
	}
}

func TestReflectStrategy_RunsInitializer(t *testing.T) {
	chain := resolver.New(strategy.NewReflectStrategy())

	v, err := chain.Resolve(apis.KeyOf(reflect.TypeFor[*withInit]()))
	if err != nil {
		t.Fatalf("Resolve(*withInit): %v", err)
	}
	w := v.(*withInit)
	if !w.Seen || w.Dep == nil {
		t.Fatalf("Init not run or dependency missing: %+v", w)
	}

	_, err = chain.Resolve(apis.KeyOf(reflect.TypeFor[*badInit]()))
	if !errors.Is(err, errInit) {
		t.Fatalf("Resolve(*badInit) error = %v, want errInit", err)
	}
}

func TestProviderStrategy(t *testing.T) {
	s := strategy.NewProviderStrategy()

	v, ok, err := s.TryResolve(apis.KeyOf(reflect.TypeFor[selfMade]()), nil)
	if err != nil || !ok {
		t.Fatalf("TryResolve(selfMade) = (%v, %v, %v)", v, ok, err)
	}
	if v.(selfMade).From != "provider" {
		t.Fatalf("provider not used: %+v", v)
	}

	if _, ok, err := s.TryResolve(apis.KeyOf(reflect.TypeFor[liar]()), nil); !ok || err == nil {
		t.Fatalf("TryResolve(liar) = (ok=%v, err=%v), want handled with error", ok, err)
	}

	if _, ok, _ := s.TryResolve(apis.KeyOf(reflect.TypeFor[plain]()), nil); ok {
		t.Fatal("provider strategy must fall through for non-providers")
	}
}

func TestReflectStrategy_ConcurrentNoRace(t *testing.T) {
	s := strategy.NewReflectStrategy()
	keys := []apis.Key{
		apis.KeyOf(reflect.TypeFor[plain]()),
		apis.KeyOf(reflect.TypeFor[*plain]()),
		apis.KeyOf(reflect.TypeFor[int]()),
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				k := keys[(i+id)%len(keys)]
				_, ok, err := s.TryResolve(k, nil)
				if err != nil || ok == (k.Type.Kind() == reflect.Int) {
					t.Errorf("TryResolve(%v) = (ok=%v, err=%v)", k, ok, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()
}
