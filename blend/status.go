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

	"golang.org/x/sync/errgroup"

	"github.com/lumenkit/blend-agent/network"
)

// Status is a combined view over a lending pool: its metadata, the auction
// events since the given start ledger and the current fee tiers.
type Status struct {
	Meta   Meta
	Events network.Events
	Fees   FeeTiers
}

// Status assembles the combined pool view. The event query depends on the
// pool generation, so metadata and events resolve on one path while the fee
// statistics resolve concurrently on another.
func (c *Client) Status(ctx context.Context, pool string, startLedger uint32) (Status, error) {

	var status Status
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		meta, err := c.PoolMeta(gctx, pool)
		if err != nil {
			return err
		}
		status.Meta = meta

		events, err := c.PoolEvents(gctx, pool, meta.Version, startLedger)
		if err != nil {
			return err
		}
		status.Events = events

		return nil
	})

	group.Go(func() error {
		fees, err := c.FeeTiers(gctx)
		if err != nil {
			return err
		}
		status.Fees = fees

		return nil
	})

	err := group.Wait()
	if err != nil {
		return Status{}, err
	}

	return status, nil
}
