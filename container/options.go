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

package container

import (
	"go.uber.org/zap"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/config"
	"dirpx.dev/cbx/metrics"
	"dirpx.dev/cbx/registry"
	"dirpx.dev/cbx/resolver"
	"dirpx.dev/cbx/strategy"
)

// Option configures a Container.
type Option func(*options)

type options struct {
	cfg      apis.Config
	log      *zap.Logger
	met      *metrics.Metrics
	reg      apis.Registry
	fallback apis.Strategy
}

func newOptions(opts []Option) options {
	o := options{cfg: config.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	if o.reg == nil {
		o.reg = registry.New()
	}
	if o.fallback == nil {
		o.fallback = resolver.New(strategy.NewProviderStrategy(), strategy.NewReflectStrategy())
	}
	return o
}

// WithConfig sets the configuration.
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.met = m }
}

// WithRegistry sets the binding registry. By default each container owns a
// fresh registry.
func WithRegistry(r apis.Registry) Option {
	return func(o *options) { o.reg = r }
}

// WithStrategies replaces the fallback used for unregistered keys. Passing no
// strategy disables the fallback: unregistered keys fail with
// apis.ErrNotRegistered.
func WithStrategies(strategies ...apis.Strategy) Option {
	return func(o *options) { o.fallback = resolver.New(strategies...) }
}
