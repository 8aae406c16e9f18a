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
	"context"
	"testing"

	"github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/protocols/horizon/base"

	"github.com/lumenkit/blend-agent/network"
)

type Reader struct {
	GetLedgerEntriesFunc    func(ctx context.Context, keys []string) ([]network.LedgerEntry, error)
	GetEventsFunc           func(ctx context.Context, startLedger uint32, filters []network.EventFilter, limit uint) (network.Events, error)
	GetFeeStatsFunc         func(ctx context.Context) (network.FeeStats, error)
	BalancesFunc            func(ctx context.Context, address string) ([]horizon.Balance, error)
	SimulateTransactionFunc func(ctx context.Context, envelope string) (network.Simulation, error)
}

func BaselineReader(t *testing.T) *Reader {
	t.Helper()

	r := Reader{
		GetLedgerEntriesFunc: func(context.Context, []string) ([]network.LedgerEntry, error) {
			entry := network.LedgerEntry{
				XDR: GenericInstanceEntry("a41fc53d6753b6c04eb15b021c55052366a4c8e0e21bc72700f461264ec1350e"),
			}
			return []network.LedgerEntry{entry}, nil
		},
		GetEventsFunc: func(context.Context, uint32, []network.EventFilter, uint) (network.Events, error) {
			return network.Events{LatestLedger: 42}, nil
		},
		GetFeeStatsFunc: func(context.Context) (network.FeeStats, error) {
			stats := network.FeeStats{
				SorobanInclusionFee: network.FeeDistribution{P30: 1000, P60: 3000, P90: 12_000},
			}
			return stats, nil
		},
		BalancesFunc: func(context.Context, string) ([]horizon.Balance, error) {
			balances := []horizon.Balance{
				{Balance: "100.0000000", Asset: base.Asset{Type: "native"}},
				{Balance: "25.5000000", Asset: base.Asset{Type: "credit_alphanum4", Code: "USDC", Issuer: GenericAddress}},
			}
			return balances, nil
		},
		SimulateTransactionFunc: func(context.Context, string) (network.Simulation, error) {
			return network.Simulation{MinResourceFee: 100}, nil
		},
	}

	return &r
}

func (r *Reader) GetLedgerEntries(ctx context.Context, keys []string) ([]network.LedgerEntry, error) {
	return r.GetLedgerEntriesFunc(ctx, keys)
}

func (r *Reader) GetEvents(ctx context.Context, startLedger uint32, filters []network.EventFilter, limit uint) (network.Events, error) {
	return r.GetEventsFunc(ctx, startLedger, filters, limit)
}

func (r *Reader) GetFeeStats(ctx context.Context) (network.FeeStats, error) {
	return r.GetFeeStatsFunc(ctx)
}

func (r *Reader) Balances(ctx context.Context, address string) ([]horizon.Balance, error) {
	return r.BalancesFunc(ctx, address)
}

func (r *Reader) SimulateTransaction(ctx context.Context, envelope string) (network.Simulation, error) {
	return r.SimulateTransactionFunc(ctx, envelope)
}
