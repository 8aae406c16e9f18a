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

package agent

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lumenkit/blend-agent/blend"
	"github.com/lumenkit/blend-agent/signer"
	"github.com/lumenkit/blend-agent/store"
)

// PositionRequest is the request body shared by the position-changing tool
// endpoints. The optional secret signs the transaction with a caller-provided
// key instead of the agent's own.
type PositionRequest struct {
	Account string `json:"account" validate:"required"`
	Pool    string `json:"pool" validate:"required"`
	Asset   string `json:"asset" validate:"required"`
	Amount  string `json:"amount" validate:"required"`
	Secret  string `json:"secret,omitempty"`
}

// SubmitResponse carries the hash of a confirmed transaction.
type SubmitResponse struct {
	Hash string `json:"hash"`
}

// Lend supplies collateral to a pool.
func (c *Controller) Lend(ctx echo.Context) error {
	return c.position(ctx, "lend", c.blend.Lend)
}

// Withdraw withdraws a position from a pool.
func (c *Controller) Withdraw(ctx echo.Context) error {
	return c.position(ctx, "withdraw", c.blend.Withdraw)
}

// Borrow borrows against pool collateral.
func (c *Controller) Borrow(ctx echo.Context) error {
	return c.position(ctx, "borrow", c.blend.Borrow)
}

// Repay repays a pool borrow position.
func (c *Controller) Repay(ctx echo.Context) error {
	return c.position(ctx, "repay", c.blend.Repay)
}

func (c *Controller) position(ctx echo.Context, tool string, run func(ctx context.Context, req blend.PositionRequest, sign signer.Signer) (string, error)) error {

	var req PositionRequest
	err := ctx.Bind(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	err = c.validate.Struct(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sign, err := c.signer(req.Secret)
	if err != nil {
		return httpError(err)
	}

	hash, err := run(ctx.Request().Context(), blend.PositionRequest{
		Account: req.Account,
		Pool:    req.Pool,
		Asset:   req.Asset,
		Amount:  req.Amount,
	}, sign)
	if err != nil {
		return httpError(err)
	}

	c.record(store.Receipt{
		Hash:      hash,
		Source:    req.Account,
		Tool:      tool,
		Pool:      req.Pool,
		CreatedAt: time.Now().UTC(),
	})

	return ctx.JSON(http.StatusOK, SubmitResponse{Hash: hash})
}

// ClaimRequest is the request body for the claim tool endpoint.
type ClaimRequest struct {
	Account         string   `json:"account" validate:"required"`
	Pool            string   `json:"pool" validate:"required"`
	ReserveTokenIDs []uint32 `json:"reserve_token_ids"`
	Secret          string   `json:"secret,omitempty"`
}

// Claim claims accrued pool emissions.
func (c *Controller) Claim(ctx echo.Context) error {

	var req ClaimRequest
	err := ctx.Bind(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	err = c.validate.Struct(req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sign, err := c.signer(req.Secret)
	if err != nil {
		return httpError(err)
	}

	hash, err := c.blend.Claim(ctx.Request().Context(), blend.ClaimRequest{
		Account:         req.Account,
		Pool:            req.Pool,
		ReserveTokenIDs: req.ReserveTokenIDs,
	}, sign)
	if err != nil {
		return httpError(err)
	}

	c.record(store.Receipt{
		Hash:      hash,
		Source:    req.Account,
		Tool:      "claim",
		Pool:      req.Pool,
		CreatedAt: time.Now().UTC(),
	})

	return ctx.JSON(http.StatusOK, SubmitResponse{Hash: hash})
}
