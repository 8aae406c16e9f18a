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

package mocks

import (
	"testing"
	"time"
)

type Metrics struct {
	SimulationFunc   func(outcome string)
	RestoreFunc      func()
	SubmissionFunc   func(outcome string)
	ConfirmationFunc func(outcome string)
	DurationFunc     func(stage string, duration time.Duration)
}

func (m *Metrics) Simulation(outcome string) {
	m.SimulationFunc(outcome)
}

func (m *Metrics) Restore() {
	m.RestoreFunc()
}

func (m *Metrics) Submission(outcome string) {
	m.SubmissionFunc(outcome)
}

func (m *Metrics) Confirmation(outcome string) {
	m.ConfirmationFunc(outcome)
}

func (m *Metrics) Duration(stage string, duration time.Duration) {
	m.DurationFunc(stage, duration)
}

func BaselineMetrics(t *testing.T) *Metrics {
	t.Helper()

	m := Metrics{
		SimulationFunc:   func(string) {},
		RestoreFunc:      func() {},
		SubmissionFunc:   func(string) {},
		ConfirmationFunc: func(string) {},
		DurationFunc:     func(string, time.Duration) {},
	}

	return &m
}
