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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenkit/blend-agent/blend"
	"github.com/lumenkit/blend-agent/failure"
	"github.com/lumenkit/blend-agent/network"
	"github.com/lumenkit/blend-agent/signer"
	"github.com/lumenkit/blend-agent/store"
	"github.com/lumenkit/blend-agent/testing/mocks"
)

// blendStub satisfies the Blend interface for handler tests. It lives here
// instead of the shared mocks to keep the mock package free of a blend
// dependency.
type blendStub struct {
	LendFunc         func(ctx context.Context, req blend.PositionRequest, sign signer.Signer) (string, error)
	WithdrawFunc     func(ctx context.Context, req blend.PositionRequest, sign signer.Signer) (string, error)
	BorrowFunc       func(ctx context.Context, req blend.PositionRequest, sign signer.Signer) (string, error)
	RepayFunc        func(ctx context.Context, req blend.PositionRequest, sign signer.Signer) (string, error)
	ClaimFunc        func(ctx context.Context, req blend.ClaimRequest, sign signer.Signer) (string, error)
	CreatePoolFunc   func(ctx context.Context, req blend.CreatePoolRequest, sign signer.Signer) (blend.Pool, error)
	AddReserveFunc   func(ctx context.Context, req blend.AddReserveRequest, sign signer.Signer) (string, error)
	PoolMetaFunc     func(ctx context.Context, pool string) (blend.Meta, error)
	PoolEventsFunc   func(ctx context.Context, pool string, version blend.Version, startLedger uint32) (network.Events, error)
	StatusFunc       func(ctx context.Context, pool string, startLedger uint32) (blend.Status, error)
	TokenBalanceFunc func(ctx context.Context, account string, token string) int64
	FeeTiersFunc     func(ctx context.Context) (blend.FeeTiers, error)
}

func baselineBlend(t *testing.T) *blendStub {
	t.Helper()

	submit := func(context.Context, blend.PositionRequest, signer.Signer) (string, error) {
		return mocks.GenericHash, nil
	}

	b := blendStub{
		LendFunc:     submit,
		WithdrawFunc: submit,
		BorrowFunc:   submit,
		RepayFunc:    submit,
		ClaimFunc: func(context.Context, blend.ClaimRequest, signer.Signer) (string, error) {
			return mocks.GenericHash, nil
		},
		CreatePoolFunc: func(context.Context, blend.CreatePoolRequest, signer.Signer) (blend.Pool, error) {
			return blend.Pool{Address: mocks.GenericContract, Hash: mocks.GenericHash}, nil
		},
		AddReserveFunc: func(context.Context, blend.AddReserveRequest, signer.Signer) (string, error) {
			return mocks.GenericHash, nil
		},
		PoolMetaFunc: func(_ context.Context, pool string) (blend.Meta, error) {
			return blend.Meta{Pool: pool, Version: blend.VersionV2}, nil
		},
		PoolEventsFunc: func(context.Context, string, blend.Version, uint32) (network.Events, error) {
			return network.Events{LatestLedger: 42}, nil
		},
		StatusFunc: func(_ context.Context, pool string, _ uint32) (blend.Status, error) {
			return blend.Status{
				Meta:   blend.Meta{Pool: pool, Version: blend.VersionV2},
				Events: network.Events{LatestLedger: 42},
				Fees:   blend.FeeTiers{Low: 500, Medium: 2000, High: 10_000},
			}, nil
		},
		TokenBalanceFunc: func(context.Context, string, string) int64 {
			return 1_000_000_000
		},
		FeeTiersFunc: func(context.Context) (blend.FeeTiers, error) {
			return blend.FeeTiers{Low: 500, Medium: 2000, High: 10_000}, nil
		},
	}

	return &b
}

func (b *blendStub) Lend(ctx context.Context, req blend.PositionRequest, sign signer.Signer) (string, error) {
	return b.LendFunc(ctx, req, sign)
}

func (b *blendStub) Withdraw(ctx context.Context, req blend.PositionRequest, sign signer.Signer) (string, error) {
	return b.WithdrawFunc(ctx, req, sign)
}

func (b *blendStub) Borrow(ctx context.Context, req blend.PositionRequest, sign signer.Signer) (string, error) {
	return b.BorrowFunc(ctx, req, sign)
}

func (b *blendStub) Repay(ctx context.Context, req blend.PositionRequest, sign signer.Signer) (string, error) {
	return b.RepayFunc(ctx, req, sign)
}

func (b *blendStub) Claim(ctx context.Context, req blend.ClaimRequest, sign signer.Signer) (string, error) {
	return b.ClaimFunc(ctx, req, sign)
}

func (b *blendStub) CreatePool(ctx context.Context, req blend.CreatePoolRequest, sign signer.Signer) (blend.Pool, error) {
	return b.CreatePoolFunc(ctx, req, sign)
}

func (b *blendStub) AddReserve(ctx context.Context, req blend.AddReserveRequest, sign signer.Signer) (string, error) {
	return b.AddReserveFunc(ctx, req, sign)
}

func (b *blendStub) PoolMeta(ctx context.Context, pool string) (blend.Meta, error) {
	return b.PoolMetaFunc(ctx, pool)
}

func (b *blendStub) PoolEvents(ctx context.Context, pool string, version blend.Version, startLedger uint32) (network.Events, error) {
	return b.PoolEventsFunc(ctx, pool, version, startLedger)
}

func (b *blendStub) Status(ctx context.Context, pool string, startLedger uint32) (blend.Status, error) {
	return b.StatusFunc(ctx, pool, startLedger)
}

func (b *blendStub) TokenBalance(ctx context.Context, account string, token string) int64 {
	return b.TokenBalanceFunc(ctx, account, token)
}

func (b *blendStub) FeeTiers(ctx context.Context) (blend.FeeTiers, error) {
	return b.FeeTiersFunc(ctx)
}

// receiptsStub satisfies the Receipts interface for handler tests.
type receiptsStub struct {
	SaveCursorFunc  func(pool string, ledger uint32) error
	CursorFunc      func(pool string) (uint32, error)
	SaveReceiptFunc func(receipt store.Receipt) error
	ReceiptFunc     func(hash string) (store.Receipt, error)
}

func baselineReceipts(t *testing.T) *receiptsStub {
	t.Helper()

	r := receiptsStub{
		SaveCursorFunc: func(string, uint32) error {
			return nil
		},
		CursorFunc: func(string) (uint32, error) {
			return 0, store.ErrNotFound
		},
		SaveReceiptFunc: func(store.Receipt) error {
			return nil
		},
		ReceiptFunc: func(string) (store.Receipt, error) {
			return store.Receipt{}, store.ErrNotFound
		},
	}

	return &r
}

func (r *receiptsStub) SaveCursor(pool string, ledger uint32) error {
	return r.SaveCursorFunc(pool, ledger)
}

func (r *receiptsStub) Cursor(pool string) (uint32, error) {
	return r.CursorFunc(pool)
}

func (r *receiptsStub) SaveReceipt(receipt store.Receipt) error {
	return r.SaveReceiptFunc(receipt)
}

func (r *receiptsStub) Receipt(hash string) (store.Receipt, error) {
	return r.ReceiptFunc(hash)
}

func testController(t *testing.T, b Blend, r Receipts) *Controller {
	t.Helper()

	c := Controller{
		log:        mocks.NoopLogger,
		blend:      b,
		receipts:   r,
		sign:       mocks.BaselineSigner(t),
		passphrase: "Test SDF Network ; September 2015",
		validate:   validator.New(),
	}

	return &c
}

func request(t *testing.T, method string, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestController_Lend(t *testing.T) {

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		var recorded store.Receipt

		receipts := baselineReceipts(t)
		receipts.SaveReceiptFunc = func(receipt store.Receipt) error {
			recorded = receipt
			return nil
		}

		c := testController(t, baselineBlend(t), receipts)

		body := `{"account":"` + mocks.GenericAddress + `","pool":"` + mocks.GenericContract + `","asset":"` + mocks.GenericContract + `","amount":"100"}`
		ctx, rec := request(t, http.MethodPost, "/tool/lend", body)

		err := c.Lend(ctx)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var res SubmitResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, mocks.GenericHash, res.Hash)

		assert.Equal(t, "lend", recorded.Tool)
		assert.Equal(t, mocks.GenericHash, recorded.Hash)
	})

	t.Run("handles missing fields", func(t *testing.T) {
		t.Parallel()

		c := testController(t, baselineBlend(t), baselineReceipts(t))

		ctx, _ := request(t, http.MethodPost, "/tool/lend", `{"account":""}`)

		err := c.Lend(ctx)

		require.Error(t, err)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("handles invalid request secret", func(t *testing.T) {
		t.Parallel()

		c := testController(t, baselineBlend(t), baselineReceipts(t))

		body := `{"account":"` + mocks.GenericAddress + `","pool":"` + mocks.GenericContract + `","asset":"` + mocks.GenericContract + `","amount":"100","secret":"not-a-seed"}`
		ctx, _ := request(t, http.MethodPost, "/tool/lend", body)

		err := c.Lend(ctx)

		require.Error(t, err)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("maps lifecycle failure to status", func(t *testing.T) {
		t.Parallel()

		b := baselineBlend(t)
		b.LendFunc = func(context.Context, blend.PositionRequest, signer.Signer) (string, error) {
			return "", failure.ConfirmationTimeout{
				Description: failure.NewDescription("confirmation budget exhausted"),
				Hash:        mocks.GenericHash,
			}
		}

		c := testController(t, b, baselineReceipts(t))

		body := `{"account":"` + mocks.GenericAddress + `","pool":"` + mocks.GenericContract + `","asset":"` + mocks.GenericContract + `","amount":"100"}`
		ctx, _ := request(t, http.MethodPost, "/tool/lend", body)

		err := c.Lend(ctx)

		require.Error(t, err)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusGatewayTimeout, httpErr.Code)
	})
}

func TestController_CreatePool(t *testing.T) {

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		c := testController(t, baselineBlend(t), baselineReceipts(t))

		body := `{"admin":"` + mocks.GenericAddress + `","name":"Test Pool","oracle":"` + mocks.GenericContract + `","backstop_rate":200000,"max_positions":4,"min_collateral":"10"}`
		ctx, rec := request(t, http.MethodPost, "/tool/create-pool", body)

		err := c.CreatePool(ctx)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var res CreatePoolResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, mocks.GenericContract, res.Pool)
		assert.Equal(t, mocks.GenericHash, res.Hash)
	})

	t.Run("handles positions out of range", func(t *testing.T) {
		t.Parallel()

		c := testController(t, baselineBlend(t), baselineReceipts(t))

		body := `{"admin":"` + mocks.GenericAddress + `","name":"Test Pool","oracle":"` + mocks.GenericContract + `","backstop_rate":200000,"max_positions":256,"min_collateral":"10"}`
		ctx, _ := request(t, http.MethodPost, "/tool/create-pool", body)

		err := c.CreatePool(ctx)

		require.Error(t, err)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestController_PoolEvents(t *testing.T) {

	t.Run("nominal case with explicit start ledger", func(t *testing.T) {
		t.Parallel()

		var savedLedger uint32

		b := baselineBlend(t)
		b.PoolEventsFunc = func(_ context.Context, pool string, version blend.Version, startLedger uint32) (network.Events, error) {
			assert.Equal(t, mocks.GenericContract, pool)
			assert.Equal(t, blend.VersionV2, version)
			assert.Equal(t, uint32(100), startLedger)
			return network.Events{LatestLedger: 120}, nil
		}

		receipts := baselineReceipts(t)
		receipts.SaveCursorFunc = func(_ string, ledger uint32) error {
			savedLedger = ledger
			return nil
		}

		c := testController(t, b, receipts)

		ctx, rec := request(t, http.MethodGet, "/pools/"+mocks.GenericContract+"/events?start_ledger=100", "")
		ctx.SetParamNames("id")
		ctx.SetParamValues(mocks.GenericContract)

		err := c.PoolEvents(ctx)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint32(120), savedLedger)
	})

	t.Run("falls back to persisted cursor", func(t *testing.T) {
		t.Parallel()

		b := baselineBlend(t)
		b.PoolEventsFunc = func(_ context.Context, _ string, _ blend.Version, startLedger uint32) (network.Events, error) {
			assert.Equal(t, uint32(77), startLedger)
			return network.Events{LatestLedger: 90}, nil
		}

		receipts := baselineReceipts(t)
		receipts.CursorFunc = func(string) (uint32, error) {
			return 77, nil
		}

		c := testController(t, b, receipts)

		ctx, rec := request(t, http.MethodGet, "/pools/"+mocks.GenericContract+"/events", "")
		ctx.SetParamNames("id")
		ctx.SetParamValues(mocks.GenericContract)

		err := c.PoolEvents(ctx)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("handles first query without start ledger", func(t *testing.T) {
		t.Parallel()

		c := testController(t, baselineBlend(t), baselineReceipts(t))

		ctx, _ := request(t, http.MethodGet, "/pools/"+mocks.GenericContract+"/events", "")
		ctx.SetParamNames("id")
		ctx.SetParamValues(mocks.GenericContract)

		err := c.PoolEvents(ctx)

		require.Error(t, err)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestController_PoolStatus(t *testing.T) {
	t.Parallel()

	c := testController(t, baselineBlend(t), baselineReceipts(t))

	ctx, rec := request(t, http.MethodGet, "/pools/"+mocks.GenericContract+"?start_ledger=1", "")
	ctx.SetParamNames("id")
	ctx.SetParamValues(mocks.GenericContract)

	err := c.PoolStatus(ctx)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var res StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, string(blend.VersionV2), res.Version)
	assert.Equal(t, uint32(42), res.LatestLedger)
	assert.Equal(t, "500", res.Fees.Low)
}

func TestController_Balance(t *testing.T) {
	t.Parallel()

	c := testController(t, baselineBlend(t), baselineReceipts(t))

	ctx, rec := request(t, http.MethodGet, "/balance/"+mocks.GenericAddress+"/native", "")
	ctx.SetParamNames("account", "token")
	ctx.SetParamValues(mocks.GenericAddress, "native")

	err := c.Balance(ctx)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var res BalanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "1000000000", res.Balance)
}

func TestController_FeeStats(t *testing.T) {
	t.Parallel()

	c := testController(t, baselineBlend(t), baselineReceipts(t))

	ctx, rec := request(t, http.MethodGet, "/fee-stats", "")

	err := c.FeeStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var res FeeStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "500", res.Low)
	assert.Equal(t, "2000", res.Medium)
	assert.Equal(t, "10000", res.High)
}

func TestController_Receipt(t *testing.T) {

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		receipts := baselineReceipts(t)
		receipts.ReceiptFunc = func(hash string) (store.Receipt, error) {
			assert.Equal(t, mocks.GenericHash, hash)
			return store.Receipt{Hash: hash, Tool: "lend"}, nil
		}

		c := testController(t, baselineBlend(t), receipts)

		ctx, rec := request(t, http.MethodGet, "/receipts/"+mocks.GenericHash, "")
		ctx.SetParamNames("hash")
		ctx.SetParamValues(mocks.GenericHash)

		err := c.Receipt(ctx)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("handles missing receipt", func(t *testing.T) {
		t.Parallel()

		c := testController(t, baselineBlend(t), baselineReceipts(t))

		ctx, _ := request(t, http.MethodGet, "/receipts/"+mocks.GenericHash, "")
		ctx.SetParamNames("hash")
		ctx.SetParamValues(mocks.GenericHash)

		err := c.Receipt(ctx)

		require.Error(t, err)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	})
}
