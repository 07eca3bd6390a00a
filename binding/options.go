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

package binding

import (
	"go.uber.org/zap"

	"dirpx.dev/cbx/apis"
	"dirpx.dev/cbx/config"
)

// Option configures Bind.
type Option func(*options)

type options struct {
	name     string
	lifetime apis.Lifetime
	explicit bool // lifetime set through WithLifetime
	cfg      apis.Config
	log      *zap.Logger
}

func newOptions(opts []Option) options {
	o := options{cfg: config.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.explicit {
		o.lifetime = o.cfg.DefaultLifetime
	}
	if o.log == nil {
		o.log = zap.NewNop()
	}
	return o
}

// WithName binds under name, so that several collections of one capability
// can coexist. The default is the unnamed binding.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLifetime sets the lifetime of the collection. It defaults to
// Config.DefaultLifetime.
func WithLifetime(l apis.Lifetime) Option {
	return func(o *options) { o.lifetime, o.explicit = l, true }
}

// WithConfig sets the configuration.
func WithConfig(cfg apis.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// RequestedLifetime returns the lifetime set through WithLifetime among opts.
// ok is false when opts leave the lifetime to the configuration default.
func RequestedLifetime(opts ...Option) (l apis.Lifetime, ok bool) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o.lifetime, o.explicit
}
