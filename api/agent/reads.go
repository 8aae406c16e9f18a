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
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lumenkit/blend-agent/network"
	"github.com/lumenkit/blend-agent/store"
)

// FeeStatsResponse carries the suggested inclusion fee tiers in stroops,
// formatted as decimal strings.
type FeeStatsResponse struct {
	Low    string `json:"low"`
	Medium string `json:"medium"`
	High   string `json:"high"`
}

// FeeStats serves the suggested inclusion fee tiers.
func (c *Controller) FeeStats(ctx echo.Context) error {

	tiers, err := c.blend.FeeTiers(ctx.Request().Context())
	if err != nil {
		return httpError(err)
	}

	res := FeeStatsResponse{
		Low:    strconv.FormatUint(tiers.Low, 10),
		Medium: strconv.FormatUint(tiers.Medium, 10),
		High:   strconv.FormatUint(tiers.High, 10),
	}

	return ctx.JSON(http.StatusOK, res)
}

// EventsResponse carries a page of pool events along with the ledger cursor
// for the next query.
type EventsResponse struct {
	Pool         string          `json:"pool"`
	Version      string          `json:"version"`
	Events       []network.Event `json:"events"`
	LatestLedger uint32          `json:"latest_ledger"`
}

// PoolEvents serves the auction events of a pool. The start ledger comes from
// the `start_ledger` query parameter, falling back to the persisted cursor
// from the previous query.
func (c *Controller) PoolEvents(ctx echo.Context) error {

	pool := ctx.Param("id")

	startLedger, err := c.startLedger(ctx, pool)
	if err != nil {
		return err
	}

	meta, err := c.blend.PoolMeta(ctx.Request().Context(), pool)
	if err != nil {
		return httpError(err)
	}

	events, err := c.blend.PoolEvents(ctx.Request().Context(), pool, meta.Version, startLedger)
	if err != nil {
		return httpError(err)
	}

	err = c.receipts.SaveCursor(pool, events.LatestLedger)
	if err != nil {
		c.log.Warn().Err(err).Str("pool", pool).Msg("could not save event cursor")
	}

	res := EventsResponse{
		Pool:         pool,
		Version:      string(meta.Version),
		Events:       events.Events,
		LatestLedger: events.LatestLedger,
	}

	return ctx.JSON(http.StatusOK, res)
}

// startLedger resolves the first ledger for a pool event query: the
// `start_ledger` query parameter when given, the persisted cursor from the
// previous query otherwise.
func (c *Controller) startLedger(ctx echo.Context, pool string) (uint32, error) {

	raw := ctx.QueryParam("start_ledger")
	if raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid start ledger")
		}
		return uint32(parsed), nil
	}

	cursor, err := c.receipts.Cursor(pool)
	if errors.Is(err, store.ErrNotFound) {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "start ledger required for first query")
	}
	if err != nil {
		return 0, httpError(err)
	}

	return cursor, nil
}

// StatusResponse carries the combined view over a pool: its metadata, the
// auction events since the start ledger and the current fee tiers.
type StatusResponse struct {
	Pool         string           `json:"pool"`
	Version      string           `json:"version"`
	WasmHash     string           `json:"wasm_hash"`
	Events       []network.Event  `json:"events"`
	LatestLedger uint32           `json:"latest_ledger"`
	Fees         FeeStatsResponse `json:"fees"`
}

// PoolStatus serves the combined pool view. The start ledger resolves the
// same way as for the events endpoint.
func (c *Controller) PoolStatus(ctx echo.Context) error {

	pool := ctx.Param("id")

	startLedger, err := c.startLedger(ctx, pool)
	if err != nil {
		return err
	}

	status, err := c.blend.Status(ctx.Request().Context(), pool, startLedger)
	if err != nil {
		return httpError(err)
	}

	err = c.receipts.SaveCursor(pool, status.Events.LatestLedger)
	if err != nil {
		c.log.Warn().Err(err).Str("pool", pool).Msg("could not save event cursor")
	}

	res := StatusResponse{
		Pool:         pool,
		Version:      string(status.Meta.Version),
		WasmHash:     status.Meta.WasmHash,
		Events:       status.Events.Events,
		LatestLedger: status.Events.LatestLedger,
		Fees: FeeStatsResponse{
			Low:    strconv.FormatUint(status.Fees.Low, 10),
			Medium: strconv.FormatUint(status.Fees.Medium, 10),
			High:   strconv.FormatUint(status.Fees.High, 10),
		},
	}

	return ctx.JSON(http.StatusOK, res)
}

// BalanceResponse carries an account's token balance in stroops, formatted
// as a decimal string.
type BalanceResponse struct {
	Account string `json:"account"`
	Token   string `json:"token"`
	Balance string `json:"balance"`
}

// Balance serves the balance an account holds in a token. Lookup misses
// yield a zero balance rather than an error.
func (c *Controller) Balance(ctx echo.Context) error {

	account := ctx.Param("account")
	token := ctx.Param("token")

	balance := c.blend.TokenBalance(ctx.Request().Context(), account, token)

	res := BalanceResponse{
		Account: account,
		Token:   token,
		Balance: strconv.FormatInt(balance, 10),
	}

	return ctx.JSON(http.StatusOK, res)
}

// ReceiptResponse carries a stored submission receipt.
type ReceiptResponse struct {
	Hash      string    `json:"hash"`
	Source    string    `json:"source"`
	Tool      string    `json:"tool"`
	Pool      string    `json:"pool"`
	CreatedAt time.Time `json:"created_at"`
}

// Receipt serves the stored receipt of a confirmed submission.
func (c *Controller) Receipt(ctx echo.Context) error {

	hash := ctx.Param("hash")

	receipt, err := c.receipts.Receipt(hash)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "receipt not found")
	}
	if err != nil {
		return httpError(err)
	}

	res := ReceiptResponse{
		Hash:      receipt.Hash,
		Source:    receipt.Source,
		Tool:      receipt.Tool,
		Pool:      receipt.Pool,
		CreatedAt: receipt.CreatedAt,
	}

	return ctx.JSON(http.StatusOK, res)
}
