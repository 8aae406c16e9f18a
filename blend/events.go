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

	"github.com/stellar/go/xdr"

	"github.com/lumenkit/blend-agent/failure"
	"github.com/lumenkit/blend-agent/network"
)

const eventPageLimit = 1000

// PoolEvents retrieves the auction events emitted by the pool since the given
// start ledger. The topic shapes differ between pool generations: V2 auction
// events carry two data segments, V1 events carry one.
func (c *Client) PoolEvents(ctx context.Context, pool string, version Version, startLedger uint32) (network.Events, error) {

	if pool == "" {
		return network.Events{}, failure.InvalidInput{
			Description: failure.NewDescription("pool is required"),
		}
	}

	var topics [][]string
	switch version {
	case VersionV2:
		topics = [][]string{
			{topicSymbol("new_auction"), "*", "*"},
			{topicSymbol("fill_auction"), "*", "*"},
			{topicSymbol("delete_auction"), "*", "*"},
		}
	case VersionV1:
		topics = [][]string{
			{topicSymbol("fill_auction"), "*", "*"},
			{topicSymbol("new_liquidation_auction"), "*"},
			{topicSymbol("delete_liquidation_auction"), "*"},
			{topicSymbol("new_auction"), "*"},
		}
	default:
		return network.Events{}, failure.InvalidInput{
			Description: failure.NewDescription("unknown pool version",
				failure.WithString("version", string(version)),
			),
		}
	}

	filters := []network.EventFilter{{
		Type:        "contract",
		ContractIDs: []string{pool},
		Topics:      topics,
	}}

	events, err := c.api.GetEvents(ctx, startLedger, filters, eventPageLimit)
	if err != nil {
		return network.Events{}, fmt.Errorf("could not get pool events: %w", err)
	}

	return events, nil
}

func topicSymbol(symbol string) string {
	encoded, err := xdr.MarshalBase64(symbolVal(symbol))
	if err != nil {
		// A symbol literal always encodes.
		panic(fmt.Sprintf("could not encode topic symbol: %s", err))
	}
	return encoded
}
