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

	"github.com/hashicorp/go-multierror"

	"github.com/stellar/go/amount"
	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"

	"github.com/lumenkit/blend-agent/failure"
	"github.com/lumenkit/blend-agent/signer"
)

// Factors and utilization values use seven-decimal fixed-point
// representation, so scalarOne equals 100%.
const scalarOne = 10_000_000

// ReserveConfig is the full configuration of a pool reserve, mirroring the
// contract struct of the same name. The collateral cap is a decimal string
// with up to seven decimal places.
type ReserveConfig struct {
	Index            uint32
	Decimals         uint32
	CollateralFactor uint32
	LiabilityFactor  uint32
	Util             uint32
	MaxUtil          uint32
	RBase            uint32
	ROne             uint32
	RTwo             uint32
	RThree           uint32
	Reactivity       uint32
	CollateralCap    string
	Enabled          bool
}

// Validate checks all reserve configuration fields and reports every
// violation at once.
func (r ReserveConfig) Validate() error {

	var result *multierror.Error

	if r.Decimals > 18 {
		result = multierror.Append(result, fmt.Errorf("decimals out of range (%d > 18)", r.Decimals))
	}
	if r.CollateralFactor > scalarOne {
		result = multierror.Append(result, fmt.Errorf("collateral factor out of range (%d > %d)", r.CollateralFactor, scalarOne))
	}
	if r.LiabilityFactor > scalarOne {
		result = multierror.Append(result, fmt.Errorf("liability factor out of range (%d > %d)", r.LiabilityFactor, scalarOne))
	}
	if r.MaxUtil > scalarOne {
		result = multierror.Append(result, fmt.Errorf("maximum utilization out of range (%d > %d)", r.MaxUtil, scalarOne))
	}
	if r.Util >= r.MaxUtil {
		result = multierror.Append(result, fmt.Errorf("target utilization not below maximum (%d >= %d)", r.Util, r.MaxUtil))
	}
	_, err := amount.ParseInt64(r.CollateralCap)
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid collateral cap (%s): %w", r.CollateralCap, err))
	}

	return result.ErrorOrNil()
}

func (r ReserveConfig) encode() (xdr.ScVal, error) {

	collateralCap, err := amount.ParseInt64(r.CollateralCap)
	if err != nil {
		return xdr.ScVal{}, fmt.Errorf("could not parse collateral cap: %w", err)
	}

	return mapVal(
		mapEntry("c_factor", u32Val(r.CollateralFactor)),
		mapEntry("collateral_cap", i128Val(collateralCap)),
		mapEntry("decimals", u32Val(r.Decimals)),
		mapEntry("enabled", boolVal(r.Enabled)),
		mapEntry("index", u32Val(r.Index)),
		mapEntry("l_factor", u32Val(r.LiabilityFactor)),
		mapEntry("max_util", u32Val(r.MaxUtil)),
		mapEntry("r_base", u32Val(r.RBase)),
		mapEntry("r_one", u32Val(r.ROne)),
		mapEntry("r_three", u32Val(r.RThree)),
		mapEntry("r_two", u32Val(r.RTwo)),
		mapEntry("reactivity", u32Val(r.Reactivity)),
		mapEntry("util", u32Val(r.Util)),
	), nil
}

// AddReserveRequest describes the queueing of a new reserve on a pool. The
// admin must be the pool admin; the transaction is signed and sourced by it.
type AddReserveRequest struct {
	Admin  string
	Pool   string
	Asset  string
	Config ReserveConfig
}

// AddReserve queues the given reserve configuration on the pool. Queueing and
// setting are separate transactions because of the on-chain time lock; the
// admin calls set_reserve separately once the lock passes. It returns the
// hash of the confirmed queueing transaction.
func (c *Client) AddReserve(ctx context.Context, req AddReserveRequest, sign signer.Signer) (string, error) {

	if req.Admin == "" || req.Pool == "" || req.Asset == "" {
		return "", failure.InvalidInput{
			Description: failure.NewDescription("admin, pool and asset are required"),
		}
	}

	err := req.Config.Validate()
	if err != nil {
		return "", failure.InvalidInput{
			Description: failure.NewDescription("invalid reserve configuration",
				failure.WithErr(err),
			),
		}
	}

	asset, err := addressVal(req.Asset)
	if err != nil {
		return "", failure.InvalidInput{
			Description: failure.NewDescription("invalid asset address",
				failure.WithString("address", req.Asset),
				failure.WithErr(err),
			),
		}
	}

	config, err := req.Config.encode()
	if err != nil {
		return "", fmt.Errorf("could not encode reserve configuration: %w", err)
	}

	op, err := invoke(req.Pool, "queue_set_reserve", asset, config)
	if err != nil {
		return "", failure.InvalidInput{
			Description: failure.NewDescription("invalid pool address",
				failure.WithString("address", req.Pool),
				failure.WithErr(err),
			),
		}
	}

	receipt, err := c.run.ExecuteWithRestore(ctx, req.Admin, []txnbuild.Operation{op}, sign, nil)
	if err != nil {
		return "", fmt.Errorf("could not execute reserve queueing: %w", err)
	}

	c.log.Info().
		Str("pool", req.Pool).
		Str("asset", req.Asset).
		Str("hash", receipt.Hash).
		Msg("reserve queueing confirmed")

	return receipt.Hash, nil
}
