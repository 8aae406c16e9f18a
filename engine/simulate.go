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
	"fmt"

	"github.com/stellar/go/txnbuild"

	"github.com/lumenkit/blend-agent/network"
)

// simulate dry-runs the given transaction against current ledger state.
// Exactly one simulation call is made per invocation; a simulation failure is
// a deterministic rejection of the operations and is never retried.
func (e *Engine) simulate(ctx context.Context, tx *txnbuild.Transaction) (network.Simulation, error) {

	envelope, err := tx.Base64()
	if err != nil {
		return network.Simulation{}, fmt.Errorf("could not encode transaction: %w", err)
	}

	start := e.now()
	sim, err := e.api.SimulateTransaction(ctx, envelope)
	e.metrics.Duration("simulate", e.now().Sub(start))
	if err != nil {
		return network.Simulation{}, fmt.Errorf("could not simulate transaction: %w", err)
	}

	switch {
	case sim.Restore != nil:
		e.metrics.Simulation("restore_required")
	case sim.Error != "":
		e.metrics.Simulation("failure")
	default:
		e.metrics.Simulation("success")
	}

	return sim, nil
}
