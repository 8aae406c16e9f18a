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

package network

import (
	"context"
	"fmt"
)

// FeeDistribution describes the inclusion fee percentiles observed over the
// recent ledger window.
type FeeDistribution struct {
	Max              uint64 `json:"max,string"`
	Min              uint64 `json:"min,string"`
	Mode             uint64 `json:"mode,string"`
	P30              uint64 `json:"p30,string"`
	P60              uint64 `json:"p60,string"`
	P90              uint64 `json:"p90,string"`
	P99              uint64 `json:"p99,string"`
	TransactionCount uint32 `json:"transactionCount,string"`
	LedgerCount      uint32 `json:"ledgerCount"`
}

// FeeStats carries the fee percentile statistics for both Soroban and classic
// transaction inclusion.
type FeeStats struct {
	SorobanInclusionFee FeeDistribution `json:"sorobanInclusionFee"`
	InclusionFee        FeeDistribution `json:"inclusionFee"`
	LatestLedger        uint32          `json:"latestLedger"`
}

// GetFeeStats retrieves the current inclusion fee statistics from the
// network. Callers use them to pick a fee tier; the engine itself never
// consumes them.
func (c *Client) GetFeeStats(ctx context.Context) (FeeStats, error) {

	var res FeeStats
	err := c.call(ctx, "getFeeStats", struct{}{}, &res)
	if err != nil {
		return FeeStats{}, fmt.Errorf("could not get fee stats: %w", err)
	}

	return res, nil
}

// EventFilter selects contract events by contract and topic. Topic segments
// are base64-encoded ScVal symbols; `*` matches any segment.
type EventFilter struct {
	Type        string     `json:"type"`
	ContractIDs []string   `json:"contractIds"`
	Topics      [][]string `json:"topics,omitempty"`
}

type eventsRequest struct {
	StartLedger uint32        `json:"startLedger"`
	Filters     []EventFilter `json:"filters"`
	Pagination  pagination    `json:"pagination"`
}

type pagination struct {
	Limit uint `json:"limit"`
}

// Event is a single contract event emitted within a ledger.
type Event struct {
	Type            string   `json:"type"`
	Ledger          uint32   `json:"ledger"`
	LedgerClosedAt  string   `json:"ledgerClosedAt"`
	ContractID      string   `json:"contractId"`
	ID              string   `json:"id"`
	Topic           []string `json:"topic"`
	Value           string   `json:"value"`
	TransactionHash string   `json:"txHash"`
}

// Events carries a page of contract events along with the latest ledger known
// to the node, which callers persist as the cursor for the next query.
type Events struct {
	Events       []Event `json:"events"`
	LatestLedger uint32  `json:"latestLedger"`
}

// GetEvents retrieves contract events matching the given filters, starting at
// the given ledger.
func (c *Client) GetEvents(ctx context.Context, startLedger uint32, filters []EventFilter, limit uint) (Events, error) {

	req := eventsRequest{
		StartLedger: startLedger,
		Filters:     filters,
		Pagination:  pagination{Limit: limit},
	}

	var res Events
	err := c.call(ctx, "getEvents", req, &res)
	if err != nil {
		return Events{}, fmt.Errorf("could not get events: %w", err)
	}

	return res, nil
}

type ledgerEntriesRequest struct {
	Keys []string `json:"keys"`
}

// LedgerEntry is a single ledger entry in its base64 XDR encoding.
type LedgerEntry struct {
	Key                string `json:"key"`
	XDR                string `json:"xdr"`
	LastModifiedLedger uint32 `json:"lastModifiedLedgerSeq"`
	LiveUntilLedger    uint32 `json:"liveUntilLedgerSeq,omitempty"`
}

type ledgerEntriesResponse struct {
	Entries      []LedgerEntry `json:"entries"`
	LatestLedger uint32        `json:"latestLedger"`
}

// GetLedgerEntries retrieves the ledger entries for the given base64-encoded
// ledger keys. Keys absent from the ledger are absent from the result.
func (c *Client) GetLedgerEntries(ctx context.Context, keys []string) ([]LedgerEntry, error) {

	var res ledgerEntriesResponse
	err := c.call(ctx, "getLedgerEntries", ledgerEntriesRequest{Keys: keys}, &res)
	if err != nil {
		return nil, fmt.Errorf("could not get ledger entries: %w", err)
	}

	return res.Entries, nil
}
