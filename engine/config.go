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

package engine

import (
	"time"
)

// Config holds the retry and fee policies of the engine.
type Config struct {

	// SubmitPolicy bounds the resubmission loop for transactions the network
	// defers with a try-again-later response.
	SubmitPolicy Policy

	// ConfirmPolicy bounds the polling loop for ledger inclusion of a
	// submitted transaction.
	ConfirmPolicy Policy

	// RestoreSurcharge is added on top of the simulation-reported minimum
	// restore fee, to avoid underestimation under load. RestoreFloor is the
	// lowest fee a restore transaction will carry, since the ledger rejects
	// sub-minimum fees. Both are policy constants with no derivation beyond
	// operational experience.
	RestoreSurcharge int64
	RestoreFloor     int64

	// ValidFor is the validity window attached to every assembled
	// transaction.
	ValidFor time.Duration
}

// DefaultConfig is the default engine configuration.
var DefaultConfig = Config{
	SubmitPolicy:     Policy{Interval: 2 * time.Second, Budget: 30 * time.Second},
	ConfirmPolicy:    Policy{Interval: 1 * time.Second, Budget: 60 * time.Second},
	RestoreSurcharge: 50_000,
	RestoreFloor:     100_000,
	ValidFor:         5 * time.Minute,
}

// Option customizes the engine configuration.
type Option func(*Config)

// WithSubmitPolicy sets the retry policy of the submission loop.
func WithSubmitPolicy(policy Policy) Option {
	return func(cfg *Config) {
		cfg.SubmitPolicy = policy
	}
}

// WithConfirmPolicy sets the retry policy of the confirmation loop.
func WithConfirmPolicy(policy Policy) Option {
	return func(cfg *Config) {
		cfg.ConfirmPolicy = policy
	}
}

// WithRestoreSurcharge sets the surcharge added to the minimum restore fee.
func WithRestoreSurcharge(surcharge int64) Option {
	return func(cfg *Config) {
		cfg.RestoreSurcharge = surcharge
	}
}

// WithRestoreFloor sets the minimum fee of a restore transaction.
func WithRestoreFloor(floor int64) Option {
	return func(cfg *Config) {
		cfg.RestoreFloor = floor
	}
}

// WithValidFor sets the validity window of assembled transactions.
func WithValidFor(window time.Duration) Option {
	return func(cfg *Config) {
		cfg.ValidFor = window
	}
}
