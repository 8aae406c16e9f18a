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

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lumenkit/blend-agent/blend"
	"github.com/lumenkit/blend-agent/failure"
	"github.com/lumenkit/blend-agent/network"
	"github.com/lumenkit/blend-agent/signer"
	"github.com/lumenkit/blend-agent/store"
)

// Blend is the protocol surface the controller exposes over HTTP.
type Blend interface {
	Lend(ctx context.Context, req blend.PositionRequest, sign signer.Signer) (string, error)
	Withdraw(ctx context.Context, req blend.PositionRequest, sign signer.Signer) (string, error)
	Borrow(ctx context.Context, req blend.PositionRequest, sign signer.Signer) (string, error)
	Repay(ctx context.Context, req blend.PositionRequest, sign signer.Signer) (string, error)
	Claim(ctx context.Context, req blend.ClaimRequest, sign signer.Signer) (string, error)
	CreatePool(ctx context.Context, req blend.CreatePoolRequest, sign signer.Signer) (blend.Pool, error)
	AddReserve(ctx context.Context, req blend.AddReserveRequest, sign signer.Signer) (string, error)
	PoolMeta(ctx context.Context, pool string) (blend.Meta, error)
	PoolEvents(ctx context.Context, pool string, version blend.Version, startLedger uint32) (network.Events, error)
	Status(ctx context.Context, pool string, startLedger uint32) (blend.Status, error)
	TokenBalance(ctx context.Context, account string, token string) int64
	FeeTiers(ctx context.Context) (blend.FeeTiers, error)
}

// Receipts persists submission receipts and pool event cursors.
type Receipts interface {
	SaveCursor(pool string, ledger uint32) error
	Cursor(pool string) (uint32, error)
	SaveReceipt(receipt store.Receipt) error
	Receipt(hash string) (store.Receipt, error)
}

// Controller implements the HTTP endpoints of the agent. Each write endpoint
// drives one transaction through the full lifecycle before responding, so
// responses always refer to confirmed ledger state.
type Controller struct {
	log        zerolog.Logger
	blend      Blend
	receipts   Receipts
	sign       signer.Signer
	passphrase string
	validate   *validator.Validate
}

// NewController creates a new controller on top of the given protocol client
// and receipt store. The given signer signs requests that do not carry their
// own secret.
func NewController(log zerolog.Logger, blend Blend, receipts Receipts, sign signer.Signer, passphrase string) *Controller {

	c := Controller{
		log:        log.With().Str("component", "agent_api").Logger(),
		blend:      blend,
		receipts:   receipts,
		sign:       sign,
		passphrase: passphrase,
		validate:   validator.New(),
	}

	return &c
}

// Register wires the controller's endpoints into the given echo instance.
func (c *Controller) Register(e *echo.Echo) {

	e.GET("/health", c.Health)

	e.POST("/tool/lend", c.Lend)
	e.POST("/tool/withdraw", c.Withdraw)
	e.POST("/tool/borrow", c.Borrow)
	e.POST("/tool/repay", c.Repay)
	e.POST("/tool/claim", c.Claim)
	e.POST("/tool/create-pool", c.CreatePool)
	e.POST("/tool/add-reserve", c.AddReserve)

	e.GET("/fee-stats", c.FeeStats)
	e.GET("/pools/:id", c.PoolStatus)
	e.GET("/pools/:id/events", c.PoolEvents)
	e.GET("/balance/:account/:token", c.Balance)
	e.GET("/receipts/:hash", c.Receipt)
}

// Health reports service liveness.
func (c *Controller) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// signer resolves the signer for a request: the request's own secret when
// given, the agent's default signer otherwise.
func (c *Controller) signer(secret string) (signer.Signer, error) {

	if secret == "" {
		return c.sign, nil
	}

	local, err := signer.NewLocal(secret, c.passphrase)
	if err != nil {
		return nil, failure.InvalidInput{
			Description: failure.NewDescription("invalid signing secret",
				failure.WithErr(err),
			),
		}
	}

	return local, nil
}

// record persists a submission receipt; persistence is best-effort and never
// fails the request that produced the receipt.
func (c *Controller) record(receipt store.Receipt) {
	err := c.receipts.SaveReceipt(receipt)
	if err != nil {
		c.log.Warn().Err(err).Str("hash", receipt.Hash).Msg("could not save receipt")
	}
}
