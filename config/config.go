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

package config

import (
	"dirpx.dev/cbx/apis"
)

const (
	// DefaultWeight represents the default for DefaultWeight.
	// Lower weights are ordered first, so 100 leaves room on both sides.
	DefaultWeight = 100
	// DefaultLifetime represents the default for DefaultLifetime.
	// Collections are process-wide unless a binding asks otherwise.
	DefaultLifetime = apis.PerProcess
	// DefaultStrictScopes represents the default for StrictScopes.
	DefaultStrictScopes = false
	// DefaultNamespace represents the default metric namespace.
	DefaultNamespace = "cbx"
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure DefaultLifetime is valid.
	if !cfg.DefaultLifetime.Valid() {
		cfg.DefaultLifetime = DefaultLifetime
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		DefaultWeight:   DefaultWeight,
		DefaultLifetime: DefaultLifetime,
		StrictScopes:    DefaultStrictScopes,
		Namespace:       DefaultNamespace,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithDefaultWeight sets the DefaultWeight option.
func WithDefaultWeight(w int) Option {
	return func(c *apis.Config) {
		c.DefaultWeight = w
	}
}

// WithDefaultLifetime sets the DefaultLifetime option.
// An unknown lifetime resets to the default.
func WithDefaultLifetime(l apis.Lifetime) Option {
	return func(c *apis.Config) {
		if !l.Valid() {
			c.DefaultLifetime = DefaultLifetime
			return
		}
		c.DefaultLifetime = l
	}
}

// WithStrictScopes sets the StrictScopes option.
func WithStrictScopes(strict bool) Option {
	return func(c *apis.Config) {
		c.StrictScopes = strict
	}
}

// WithNamespace sets the metric namespace. An empty namespace resets to the default.
func WithNamespace(ns string) Option {
	return func(c *apis.Config) {
		if ns == "" {
			ns = DefaultNamespace
		}
		c.Namespace = ns
	}
}
