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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"dirpx.dev/cbx/apis"
)

// File is the on-disk form of the composition settings.
//
//	default_weight: 100
//	default_lifetime: per-scope
//	strict_scopes: true
//	metrics:
//	  namespace: myapp
//	log:
//	  level: debug
//	  format: console
type File struct {
	DefaultWeight   *int   `yaml:"default_weight"`
	DefaultLifetime string `yaml:"default_lifetime" validate:"omitempty,oneof=per-resolution per-scope per-process transient scoped singleton"`
	StrictScopes    bool   `yaml:"strict_scopes"`
	Metrics         struct {
		Namespace string `yaml:"namespace" validate:"omitempty,max=64,excludesall=-."`
	} `yaml:"metrics"`
	Log Log `yaml:"log"`
}

// Log selects the logger built by utils/logging.
type Log struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=console json"`
}

// ErrInvalidFile is returned when a configuration file fails validation.
var ErrInvalidFile = errors.New("cbx(config): invalid configuration file")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load decodes and validates a YAML configuration. Unknown keys are rejected.
func Load(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	if err := validate.Struct(f); err != nil {
		return File{}, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	return f, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer fh.Close()
	return Load(fh)
}

// Config converts f into an apis.Config, starting from DefaultConfig.
func (f File) Config() (apis.Config, error) {
	opts := []Option{
		WithStrictScopes(f.StrictScopes),
		WithNamespace(f.Metrics.Namespace),
	}
	if f.DefaultWeight != nil {
		opts = append(opts, WithDefaultWeight(*f.DefaultWeight))
	}
	if f.DefaultLifetime != "" {
		l, err := apis.ParseLifetime(f.DefaultLifetime)
		if err != nil {
			return apis.Config{}, fmt.Errorf("%w: %w", ErrInvalidFile, err)
		}
		opts = append(opts, WithDefaultLifetime(l))
	}
	return NewConfig(opts...), nil
}
