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
)

// Floors for the fee tiers, in stroops. The observed percentiles collapse to
// the network minimum on quiet ledgers, where they are useless as bids.
const (
	feeFloorLow    = 500
	feeFloorMedium = 2_000
	feeFloorHigh   = 10_000
)

// FeeTiers are suggested inclusion fee bids in stroops, derived from the
// recently observed Soroban inclusion fee percentiles.
type FeeTiers struct {
	Low    uint64
	Medium uint64
	High   uint64
}

// FeeTiers derives suggested inclusion fee bids from the current network fee
// statistics: the 30th, 60th and 90th percentile of recent Soroban inclusion
// fees, each clamped to a floor.
func (c *Client) FeeTiers(ctx context.Context) (FeeTiers, error) {

	stats, err := c.api.GetFeeStats(ctx)
	if err != nil {
		return FeeTiers{}, fmt.Errorf("could not get fee stats: %w", err)
	}

	soroban := stats.SorobanInclusionFee
	tiers := FeeTiers{
		Low:    clamp(soroban.P30, feeFloorLow),
		Medium: clamp(soroban.P60, feeFloorMedium),
		High:   clamp(soroban.P90, feeFloorHigh),
	}

	return tiers, nil
}

func clamp(value uint64, floor uint64) uint64 {
	if value < floor {
		return floor
	}
	return value
}
