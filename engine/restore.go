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

	"github.com/stellar/go/txnbuild"

	"github.com/lumenkit/blend-agent/network"
	"github.com/lumenkit/blend-agent/signer"
)

// restore performs one ledger state restoration cycle: it builds a dedicated
// restore transaction for the footprint the simulation demanded, drives it
// through the same submit and confirm pipeline as any other transaction, and
// then re-assembles and re-simulates the original operations from a fresh
// account snapshot. The outcome of that second simulation is returned to the
// caller as final.
func (e *Engine) restore(ctx context.Context, source string, operations []txnbuild.Operation, sign signer.Signer, plan *network.RestorePlan) (network.Simulation, error) {

	// The surcharge guards against restore fee underestimation under load;
	// the floor guards against the ledger rejecting sub-minimum fees.
	fee := plan.MinResourceFee + e.cfg.RestoreSurcharge
	if fee < e.cfg.RestoreFloor {
		fee = e.cfg.RestoreFloor
	}

	restoreOps := []txnbuild.Operation{
		&txnbuild.RestoreFootprint{},
	}

	tx, err := e.assemble(ctx, source, restoreOps, fee, &plan.TransactionData)
	if err != nil {
		return network.Simulation{}, err
	}

	hash, err := e.submit(ctx, tx, sign)
	if err != nil {
		return network.Simulation{}, err
	}

	e.log.Info().Str("hash", hash).Msg("restore transaction submitted")

	// The restore return value is never used, so no parser is supplied.
	_, err = e.confirm(ctx, hash, nil)
	if err != nil {
		return network.Simulation{}, err
	}

	e.metrics.Restore()
	e.log.Info().Str("hash", hash).Msg("ledger state restored")

	// Fresh snapshot, fresh build, fresh simulation of the original
	// operations. The restore consumed a sequence number, so reusing any
	// earlier snapshot would be stale.
	retry, err := e.assemble(ctx, source, operations, txnbuild.MinBaseFee, nil)
	if err != nil {
		return network.Simulation{}, err
	}

	return e.simulate(ctx, retry)
}
