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

package blend

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog"

	"github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/txnbuild"

	"github.com/lumenkit/blend-agent/engine"
	"github.com/lumenkit/blend-agent/network"
	"github.com/lumenkit/blend-agent/signer"
)

// Executor drives assembled operations through the full transaction
// lifecycle. It is implemented by the lifecycle engine.
type Executor interface {
	Execute(ctx context.Context, source string, operations []txnbuild.Operation, sign signer.Signer, parse engine.ResultParser) (engine.Receipt, error)
	ExecuteWithRestore(ctx context.Context, source string, operations []txnbuild.Operation, sign signer.Signer, parse engine.ResultParser) (engine.Receipt, error)
}

// API is the read surface of the network the Blend readers need.
type API interface {
	GetLedgerEntries(ctx context.Context, keys []string) ([]network.LedgerEntry, error)
	GetEvents(ctx context.Context, startLedger uint32, filters []network.EventFilter, limit uint) (network.Events, error)
	GetFeeStats(ctx context.Context) (network.FeeStats, error)
	Balances(ctx context.Context, address string) ([]horizon.Balance, error)
	SimulateTransaction(ctx context.Context, envelope string) (network.Simulation, error)
}

// Cache represents a key/value store to use as a cache.
type Cache interface {
	Get(key interface{}) (interface{}, bool)
	Set(key, value interface{}, cost int64) bool
}

// Client exposes the Blend protocol operations: lending positions, reward
// claims, pool deployment and reserve management on the write side, pool
// metadata, events, balances and fee statistics on the read side. Write
// operations go through the lifecycle engine; read operations hit the network
// directly.
type Client struct {
	log     zerolog.Logger
	run     Executor
	api     API
	factory string
	cache   Cache
}

// New creates a new Blend client on top of the given lifecycle executor and
// network read API. The factory address identifies the pool factory contract
// used for pool deployment.
func New(log zerolog.Logger, run Executor, api API, factory string) (*Client, error) {

	// Pool metadata is immutable for a deployed pool, so cached entries
	// never need invalidation.
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1024,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("could not initialize cache: %w", err)
	}

	c := Client{
		log:     log.With().Str("component", "blend").Logger(),
		run:     run,
		api:     api,
		factory: factory,
		cache:   cache,
	}

	return &c, nil
}
