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
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"

	"github.com/lumenkit/blend-agent/failure"
	"github.com/lumenkit/blend-agent/network"
	"github.com/lumenkit/blend-agent/signer"
)

// API is the network capability the engine consumes: fresh account
// snapshots, transaction simulation, submission and status queries.
type API interface {
	Account(ctx context.Context, address string) (txnbuild.SimpleAccount, error)
	SimulateTransaction(ctx context.Context, envelope string) (network.Simulation, error)
	SendTransaction(ctx context.Context, envelope string) (network.Submission, error)
	GetTransaction(ctx context.Context, hash string) (network.Confirmation, error)
}

// Metrics is the instrumentation capability the engine reports lifecycle
// outcomes to.
type Metrics interface {
	Simulation(outcome string)
	Restore()
	Submission(outcome string)
	Confirmation(outcome string)
	Duration(stage string, duration time.Duration)
}

// ResultParser decodes the smart contract return value of a confirmed
// transaction into a caller-defined result.
type ResultParser func(value xdr.ScVal) (interface{}, error)

// Receipt is the terminal result of a successful engine invocation: the
// transaction hash and, when the transaction returned a value and the caller
// supplied a parser, the parsed result.
type Receipt struct {
	Hash   string
	Result interface{}
}

// Engine drives a logical ledger operation through the full transaction
// lifecycle: assembly, simulation, on-demand ledger state restoration, fee
// negotiation, signing, submission and confirmation. Every invocation owns
// its account snapshots and transactions; an Engine holds no mutable state
// and may be used from concurrent goroutines.
type Engine struct {
	log     zerolog.Logger
	api     API
	metrics Metrics
	cfg     Config

	// Time hooks, overridable in tests.
	now   func() time.Time
	sleep func(ctx context.Context, duration time.Duration) error
}

// New creates a new transaction lifecycle engine on top of the given network
// API, with the given options applied on top of the default configuration.
func New(log zerolog.Logger, api API, metrics Metrics, options ...Option) *Engine {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	e := Engine{
		log:     log.With().Str("component", "engine").Logger(),
		api:     api,
		metrics: metrics,
		cfg:     cfg,
		now:     time.Now,
		sleep:   sleepContext,
	}

	return &e
}

// Execute drives the given operations through the lifecycle without ledger
// state restoration. It is meant for account-level operations, which never
// reference archived contract state; a simulation that demands restoration
// is surfaced as a simulation failure.
func (e *Engine) Execute(ctx context.Context, source string, operations []txnbuild.Operation, sign signer.Signer, parse ResultParser) (Receipt, error) {
	return e.execute(ctx, source, operations, sign, parse, false)
}

// ExecuteWithRestore drives the given operations through the full lifecycle,
// transparently performing at most one ledger state restoration cycle when
// simulation demands it. It is meant for smart contract invocations, whose
// footprint may reference archived ledger entries.
func (e *Engine) ExecuteWithRestore(ctx context.Context, source string, operations []txnbuild.Operation, sign signer.Signer, parse ResultParser) (Receipt, error) {
	return e.execute(ctx, source, operations, sign, parse, true)
}

func (e *Engine) execute(ctx context.Context, source string, operations []txnbuild.Operation, sign signer.Signer, parse ResultParser, restore bool) (Receipt, error) {

	if source == "" {
		return Receipt{}, failure.InvalidInput{
			Description: failure.NewDescription("source account address missing"),
		}
	}
	if len(operations) == 0 {
		return Receipt{}, failure.InvalidInput{
			Description: failure.NewDescription("operation list empty"),
		}
	}

	log := e.log.With().Str("source", source).Int("operations", len(operations)).Logger()

	// First pass: assemble with the minimum base fee and simulate. The true
	// required fee is only knowable after simulation.
	tx, err := e.assemble(ctx, source, operations, txnbuild.MinBaseFee, nil)
	if err != nil {
		return Receipt{}, err
	}
	sim, err := e.simulate(ctx, tx)
	if err != nil {
		return Receipt{}, err
	}

	// Restoration runs at most once per invocation. If the re-simulation
	// after a confirmed restore still demands restoration, we fail fatally
	// instead of looping.
	if sim.Restore != nil {
		if !restore {
			return Receipt{}, failure.InvalidSimulation{
				Description: failure.NewDescription("simulation demands restoration for account-level operation"),
			}
		}
		log.Info().Msg("ledger state restoration required")
		sim, err = e.restore(ctx, source, operations, sign, sim.Restore)
		if err != nil {
			return Receipt{}, err
		}
		if sim.Restore != nil {
			return Receipt{}, failure.RestoreUnresolved{
				Description: failure.NewDescription("simulation still demands restoration after confirmed restore"),
			}
		}
	}

	if sim.Error != "" {
		return Receipt{}, failure.InvalidSimulation{
			Description: failure.NewDescription("simulation rejected transaction",
				failure.WithString("message", sim.Error),
			),
		}
	}

	// Final pass: rebuild from a fresh account snapshot, with the
	// simulation-derived resource fee and resource footprint attached.
	final, err := e.assemble(ctx, source, operations, txnbuild.MinBaseFee+sim.MinResourceFee, sim.TransactionData)
	if err != nil {
		return Receipt{}, err
	}

	hash, err := e.submit(ctx, final, sign)
	if err != nil {
		return Receipt{}, err
	}

	log.Info().Str("hash", hash).Msg("transaction submitted")

	result, err := e.confirm(ctx, hash, parse)
	if err != nil {
		return Receipt{}, err
	}

	log.Info().Str("hash", hash).Msg("transaction confirmed")

	receipt := Receipt{
		Hash:   hash,
		Result: result,
	}

	return receipt, nil
}

func sleepContext(ctx context.Context, duration time.Duration) error {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
