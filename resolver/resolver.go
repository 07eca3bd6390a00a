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

package resolver

import (
	"fmt"

	"dirpx.dev/cbx/apis"
)

// New constructs a Chain that tries the given strategies in order.
// Nil strategies are ignored. The returned chain is safe for concurrent use
// provided strategies themselves are safe for concurrent TryResolve calls.
func New(strategies ...apis.Strategy) *Chain {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return &Chain{strats: out}
}

// Chain is an immutable, order-preserving list of strategies.
//
// It is an apis.Strategy itself, so containers can use it as their fallback,
// and an apis.Resolver on its own, resolving nested dependencies through the
// same chain.
type Chain struct {
	strats []apis.Strategy
}

var (
	_ apis.Strategy = (*Chain)(nil)
	_ apis.Resolver = (*Chain)(nil)
)

// TryResolve runs strategies in order until one handles the key or fails.
func (c *Chain) TryResolve(k apis.Key, r apis.Resolver) (any, bool, error) {
	for _, s := range c.strats {
		v, ok, err := s.TryResolve(k, r)
		if err != nil {
			return nil, true, err
		}
		if ok {
			return v, true, nil
		}
	}
	return nil, false, nil
}

// Resolve resolves k using the chain alone.
// It returns apis.ErrNotRegistered if no strategy handles k.
func (c *Chain) Resolve(k apis.Key) (any, error) {
	v, ok, err := c.TryResolve(k, c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %v", apis.ErrNotRegistered, k)
	}
	return v, nil
}

// Func adapts a function to apis.Resolver.
type Func func(k apis.Key) (any, error)

// Resolve calls f(k).
func (f Func) Resolve(k apis.Key) (any, error) { return f(k) }
