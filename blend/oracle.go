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

	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"
)

// OracleDecimals reads the decimal precision of the given price oracle by
// simulating its `decimals` call. The simulation never reaches the network
// as a transaction; the given account only serves as the simulation source.
// Callers treat failures as non-fatal enrichment misses.
func (c *Client) OracleDecimals(ctx context.Context, account string, oracle string) (uint32, error) {

	op, err := invoke(oracle, "decimals")
	if err != nil {
		return 0, fmt.Errorf("could not build oracle invocation: %w", err)
	}

	// The sequence number is irrelevant for simulation, so a zero-sequence
	// local snapshot avoids an account fetch.
	source := txnbuild.SimpleAccount{AccountID: account, Sequence: 0}
	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        &source,
		IncrementSequenceNum: true,
		Operations:           []txnbuild.Operation{op},
		BaseFee:              txnbuild.MinBaseFee,
		Preconditions:        txnbuild.Preconditions{TimeBounds: txnbuild.NewTimeout(300)},
	})
	if err != nil {
		return 0, fmt.Errorf("could not build oracle transaction: %w", err)
	}

	envelope, err := tx.Base64()
	if err != nil {
		return 0, fmt.Errorf("could not encode oracle transaction: %w", err)
	}

	sim, err := c.api.SimulateTransaction(ctx, envelope)
	if err != nil {
		return 0, fmt.Errorf("could not simulate oracle call: %w", err)
	}
	if sim.Error != "" {
		return 0, fmt.Errorf("oracle simulation failed: %s", sim.Error)
	}
	if sim.Result == nil || sim.Result.Type != xdr.ScValTypeScvU32 || sim.Result.U32 == nil {
		return 0, fmt.Errorf("oracle simulation returned no decimals")
	}

	return uint32(*sim.Result.U32), nil
}
