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
	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"

	"github.com/lumenkit/blend-agent/failure"
	"github.com/lumenkit/blend-agent/signer"
)

// PositionRequest describes a position change against a lending pool. The
// account acts as source, spender and receiver of the change at once. The
// amount is a decimal string with up to seven decimal places.
type PositionRequest struct {
	Account string
	Pool    string
	Asset   string
	Amount  string
}

// Lend supplies the given amount of the given asset to the pool as
// collateral. It returns the hash of the confirmed transaction.
func (c *Client) Lend(ctx context.Context, req PositionRequest, sign signer.Signer) (string, error) {
	return c.submit(ctx, req, RequestSupplyCollateral, sign)
}

// Withdraw withdraws the given amount of the given asset from the pool. It
// returns the hash of the confirmed transaction.
func (c *Client) Withdraw(ctx context.Context, req PositionRequest, sign signer.Signer) (string, error) {
	return c.submit(ctx, req, RequestWithdraw, sign)
}

// Borrow borrows the given amount of the given asset from the pool. It
// returns the hash of the confirmed transaction.
func (c *Client) Borrow(ctx context.Context, req PositionRequest, sign signer.Signer) (string, error) {
	return c.submit(ctx, req, RequestBorrow, sign)
}

// Repay repays the given amount of the given asset to the pool. It returns
// the hash of the confirmed transaction.
func (c *Client) Repay(ctx context.Context, req PositionRequest, sign signer.Signer) (string, error) {
	return c.submit(ctx, req, RequestRepay, sign)
}

func (c *Client) submit(ctx context.Context, req PositionRequest, requestType RequestType, sign signer.Signer) (string, error) {

	if req.Account == "" || req.Pool == "" || req.Asset == "" || req.Amount == "" {
		return "", failure.InvalidInput{
			Description: failure.NewDescription("account, pool, asset and amount are required"),
		}
	}

	stroops, err := amount.ParseInt64(req.Amount)
	if err != nil {
		return "", failure.InvalidInput{
			Description: failure.NewDescription("invalid amount",
				failure.WithString("amount", req.Amount),
				failure.WithErr(err),
			),
		}
	}

	from, err := addressVal(req.Account)
	if err != nil {
		return "", failure.InvalidInput{
			Description: failure.NewDescription("invalid account address",
				failure.WithString("address", req.Account),
				failure.WithErr(err),
			),
		}
	}

	change := request{
		Asset:  req.Asset,
		Amount: stroops,
		Type:   requestType,
	}
	encoded, err := change.encode()
	if err != nil {
		return "", failure.InvalidInput{
			Description: failure.NewDescription("invalid asset address",
				failure.WithString("address", req.Asset),
				failure.WithErr(err),
			),
		}
	}

	op, err := invoke(req.Pool, "submit", from, from, from, vecVal(encoded))
	if err != nil {
		return "", failure.InvalidInput{
			Description: failure.NewDescription("invalid pool address",
				failure.WithString("address", req.Pool),
				failure.WithErr(err),
			),
		}
	}

	receipt, err := c.run.ExecuteWithRestore(ctx, req.Account, []txnbuild.Operation{op}, sign, nil)
	if err != nil {
		return "", fmt.Errorf("could not execute pool submission: %w", err)
	}

	c.log.Info().
		Str("pool", req.Pool).
		Str("asset", req.Asset).
		Str("amount", req.Amount).
		Uint32("request_type", uint32(requestType)).
		Str("hash", receipt.Hash).
		Msg("pool submission confirmed")

	return receipt.Hash, nil
}

// ClaimRequest describes a claim of accrued pool emissions. The reserve token
// indices select which reserves to claim for.
type ClaimRequest struct {
	Account         string
	Pool            string
	ReserveTokenIDs []uint32
}

// Claim claims accrued emissions from the pool for the given reserves,
// paying them out to the claiming account. It returns the hash of the
// confirmed transaction.
func (c *Client) Claim(ctx context.Context, req ClaimRequest, sign signer.Signer) (string, error) {

	if req.Account == "" || req.Pool == "" {
		return "", failure.InvalidInput{
			Description: failure.NewDescription("account and pool are required"),
		}
	}

	from, err := addressVal(req.Account)
	if err != nil {
		return "", failure.InvalidInput{
			Description: failure.NewDescription("invalid account address",
				failure.WithString("address", req.Account),
				failure.WithErr(err),
			),
		}
	}

	ids := make([]xdr.ScVal, 0, len(req.ReserveTokenIDs))
	for _, id := range req.ReserveTokenIDs {
		ids = append(ids, u32Val(id))
	}

	op, err := invoke(req.Pool, "claim", from, vecVal(ids...), from)
	if err != nil {
		return "", failure.InvalidInput{
			Description: failure.NewDescription("invalid pool address",
				failure.WithString("address", req.Pool),
				failure.WithErr(err),
			),
		}
	}

	receipt, err := c.run.ExecuteWithRestore(ctx, req.Account, []txnbuild.Operation{op}, sign, nil)
	if err != nil {
		return "", fmt.Errorf("could not execute claim: %w", err)
	}

	c.log.Info().
		Str("pool", req.Pool).
		Str("hash", receipt.Hash).
		Msg("claim confirmed")

	return receipt.Hash, nil
}
