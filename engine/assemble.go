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
	"github.com/stellar/go/xdr"
)

// assemble builds an unsigned transaction for the given operations with the
// given per-operation base fee and, when present, the Soroban resource
// footprint data. It fetches the source account immediately before every
// build and never reuses a snapshot across passes, so a transaction can
// never carry a stale sequence number. Built transactions are immutable;
// any change means a rebuild.
func (e *Engine) assemble(ctx context.Context, source string, operations []txnbuild.Operation, baseFee int64, data *xdr.SorobanTransactionData) (*txnbuild.Transaction, error) {

	account, err := e.api.Account(ctx, source)
	if err != nil {
		return nil, err
	}

	if data != nil {
		err = applyResourceData(operations, *data)
		if err != nil {
			return nil, err
		}
	}

	params := txnbuild.TransactionParams{
		SourceAccount:        &account,
		IncrementSequenceNum: true,
		Operations:           operations,
		BaseFee:              baseFee,
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimeout(int64(e.cfg.ValidFor.Seconds())),
		},
	}

	tx, err := txnbuild.NewTransaction(params)
	if err != nil {
		return nil, fmt.Errorf("could not build transaction: %w", err)
	}

	return tx, nil
}

// applyResourceData attaches the given Soroban resource footprint to the
// Soroban operation of the set. The footprint rides on the operation and is
// promoted into the transaction envelope at build time.
func applyResourceData(operations []txnbuild.Operation, data xdr.SorobanTransactionData) error {

	ext := xdr.TransactionExt{
		V:           1,
		SorobanData: &data,
	}

	for _, operation := range operations {
		switch op := operation.(type) {
		case *txnbuild.InvokeHostFunction:
			op.Ext = ext
			return nil
		case *txnbuild.RestoreFootprint:
			op.Ext = ext
			return nil
		case *txnbuild.ExtendFootprintTtl:
			op.Ext = ext
			return nil
		}
	}

	return fmt.Errorf("no operation can carry resource data")
}
