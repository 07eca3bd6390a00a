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

// Package metrics exposes Prometheus collectors for builders and containers.
//
// A nil *Metrics is valid and records nothing, so components can take an
// optional *Metrics without guarding every call.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resolution outcomes.
const (
	OutcomeCreated = "created"
	OutcomeCached  = "cached"
	OutcomeError   = "error"
)

// Metrics groups the collectors. Create it with New and register it once.
type Metrics struct {
	contributions *prometheus.CounterVec
	freezes       *prometheus.CounterVec
	resolutions   *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	scopes        prometheus.Gauge
}

// New creates unregistered collectors under namespace.
func New(namespace string) *Metrics {
	return &Metrics{
		contributions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "contributions_total",
				Help:      "Number of accepted builder mutations by collection and operation.",
			},
			[]string{"collection", "op"},
		),
		freezes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "freezes_total",
				Help:      "Number of contribution lists frozen by a first materialization.",
			},
			[]string{"collection"},
		),
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolutions_total",
				Help:      "Number of container resolutions by lifetime and outcome.",
			},
			[]string{"lifetime", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "resolution_duration_seconds",
				Help:      "Time spent in factories for uncached resolutions.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"lifetime"},
		),
		scopes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "scopes_active",
				Help:      "Number of scopes created and not yet disposed.",
			},
		),
	}
}

// Register registers all collectors with r.
func (m *Metrics) Register(r prometheus.Registerer) error {
	if m == nil {
		return nil
	}
	for _, c := range m.collectors() {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (m *Metrics) MustRegister(r prometheus.Registerer) {
	if m == nil {
		return
	}
	r.MustRegister(m.collectors()...)
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.contributions, m.freezes, m.resolutions, m.duration, m.scopes}
}

// Contribution records an accepted builder mutation.
func (m *Metrics) Contribution(collection, op string) {
	if m == nil {
		return
	}
	m.contributions.WithLabelValues(collection, op).Inc()
}

// Freeze records the freeze of a contribution list.
func (m *Metrics) Freeze(collection string) {
	if m == nil {
		return
	}
	m.freezes.WithLabelValues(collection).Inc()
}

// Resolution records one resolution. d is observed only for created instances.
func (m *Metrics) Resolution(lifetime, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(lifetime, outcome).Inc()
	if outcome == OutcomeCreated {
		m.duration.WithLabelValues(lifetime).Observe(d.Seconds())
	}
}

// ScopeOpened increments the active scope gauge.
func (m *Metrics) ScopeOpened() {
	if m == nil {
		return
	}
	m.scopes.Inc()
}

// ScopeClosed decrements the active scope gauge.
func (m *Metrics) ScopeClosed() {
	if m == nil {
		return
	}
	m.scopes.Dec()
}
