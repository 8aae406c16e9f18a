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

	"github.com/stellar/go/amount"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"

	"github.com/lumenkit/blend-agent/failure"
	"github.com/lumenkit/blend-agent/signer"
)

// CreatePoolRequest describes the deployment of a new lending pool through
// the pool factory. The backstop take rate uses seven-decimal fixed-point
// representation, so 1_000_000 equals 10%. The minimum collateral is a
// decimal string with up to seven decimal places.
type CreatePoolRequest struct {
	Admin         string
	Name          string
	Oracle        string
	BackstopRate  uint32
	MaxPositions  uint32
	MinCollateral string
}

// Pool is the outcome of a pool deployment: the address of the deployed pool
// contract and the hash of the deploying transaction.
type Pool struct {
	Address string
	Hash    string
}

// CreatePool deploys a new lending pool through the pool factory, with the
// admin account as transaction source. The deployed pool address is decoded
// from the contract return value.
func (c *Client) CreatePool(ctx context.Context, req CreatePoolRequest, sign signer.Signer) (Pool, error) {

	if c.factory == "" {
		return Pool{}, failure.InvalidInput{
			Description: failure.NewDescription("no pool factory configured"),
		}
	}

	if req.Admin == "" || req.Name == "" || req.Oracle == "" || req.MinCollateral == "" {
		return Pool{}, failure.InvalidInput{
			Description: failure.NewDescription("admin, name, oracle and minimum collateral are required"),
		}
	}

	if req.BackstopRate > 1_000_000 {
		return Pool{}, failure.InvalidInput{
			Description: failure.NewDescription("backstop rate out of range (0 to 1000000)",
				failure.WithUint32("backstop_rate", req.BackstopRate),
			),
		}
	}

	if req.MaxPositions < 1 || req.MaxPositions > 255 {
		return Pool{}, failure.InvalidInput{
			Description: failure.NewDescription("maximum positions out of range (1 to 255)",
				failure.WithUint32("max_positions", req.MaxPositions),
			),
		}
	}

	minCollateral, err := amount.ParseInt64(req.MinCollateral)
	if err != nil {
		return Pool{}, failure.InvalidInput{
			Description: failure.NewDescription("invalid minimum collateral",
				failure.WithString("min_collateral", req.MinCollateral),
				failure.WithErr(err),
			),
		}
	}

	admin, err := addressVal(req.Admin)
	if err != nil {
		return Pool{}, failure.InvalidInput{
			Description: failure.NewDescription("invalid admin address",
				failure.WithString("address", req.Admin),
				failure.WithErr(err),
			),
		}
	}

	oracle, err := addressVal(req.Oracle)
	if err != nil {
		return Pool{}, failure.InvalidInput{
			Description: failure.NewDescription("invalid oracle address",
				failure.WithString("address", req.Oracle),
				failure.WithErr(err),
			),
		}
	}

	// The factory salts the deterministic pool address; a random salt makes
	// repeated deployments with identical parameters possible.
	salt, err := strkey.Decode(strkey.VersionByteAccountID, keypair.MustRandom().Address())
	if err != nil {
		return Pool{}, fmt.Errorf("could not generate deployment salt: %w", err)
	}

	op, err := invoke(c.factory, "deploy",
		admin,
		stringVal(req.Name),
		bytesVal(salt),
		oracle,
		u32Val(req.BackstopRate),
		u32Val(req.MaxPositions),
		i128Val(minCollateral),
	)
	if err != nil {
		return Pool{}, failure.InvalidInput{
			Description: failure.NewDescription("invalid factory address",
				failure.WithString("address", c.factory),
				failure.WithErr(err),
			),
		}
	}

	parse := func(value xdr.ScVal) (interface{}, error) {
		address, err := addressString(value)
		if err != nil {
			return nil, fmt.Errorf("could not decode deployed pool address: %w", err)
		}
		return address, nil
	}

	receipt, err := c.run.ExecuteWithRestore(ctx, req.Admin, []txnbuild.Operation{op}, sign, parse)
	if err != nil {
		return Pool{}, fmt.Errorf("could not execute pool deployment: %w", err)
	}

	address, ok := receipt.Result.(string)
	if !ok {
		return Pool{}, fmt.Errorf("pool deployment returned no pool address")
	}

	c.log.Info().
		Str("pool", address).
		Str("name", req.Name).
		Str("hash", receipt.Hash).
		Msg("pool deployment confirmed")

	pool := Pool{
		Address: address,
		Hash:    receipt.Hash,
	}

	return pool, nil
}
