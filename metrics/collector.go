// Copyright 2025 Lumenkit
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector tracks transaction lifecycle outcomes and stage durations.
type Collector struct {
	simulations   *prometheus.CounterVec
	restores      prometheus.Counter
	submissions   *prometheus.CounterVec
	confirmations *prometheus.CounterVec
	durations     *prometheus.HistogramVec
}

// NewCollector creates a new collector registered on the given registerer.
func NewCollector(reg prometheus.Registerer) *Collector {

	factory := promauto.With(reg)

	c := Collector{
		simulations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blend_agent_simulations_total",
			Help: "Number of transaction simulations by outcome.",
		}, []string{"outcome"}),
		restores: factory.NewCounter(prometheus.CounterOpts{
			Name: "blend_agent_restores_total",
			Help: "Number of ledger state restore cycles performed.",
		}),
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blend_agent_submissions_total",
			Help: "Number of transaction submission attempts by outcome.",
		}, []string{"outcome"}),
		confirmations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "blend_agent_confirmations_total",
			Help: "Number of transaction confirmations by outcome.",
		}, []string{"outcome"}),
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "blend_agent_stage_duration_seconds",
			Help:    "Duration of transaction lifecycle stages.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		}, []string{"stage"}),
	}

	return &c
}

// Simulation records a simulation with the given outcome.
func (c *Collector) Simulation(outcome string) {
	c.simulations.WithLabelValues(outcome).Inc()
}

// Restore records a completed restore cycle.
func (c *Collector) Restore() {
	c.restores.Inc()
}

// Submission records a submission attempt with the given outcome.
func (c *Collector) Submission(outcome string) {
	c.submissions.WithLabelValues(outcome).Inc()
}

// Confirmation records a confirmation with the given outcome.
func (c *Collector) Confirmation(outcome string) {
	c.confirmations.WithLabelValues(outcome).Inc()
}

// Duration records the duration of a lifecycle stage.
func (c *Collector) Duration(stage string, duration time.Duration) {
	c.durations.WithLabelValues(stage).Observe(duration.Seconds())
}
