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
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lumenkit/blend-agent/blend"
	"github.com/lumenkit/blend-agent/store"
)

// CreatePoolRequest is the request body for the pool deployment endpoint.
type CreatePoolRequest struct {
	Admin         string `json:"admin" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Oracle        string `json:"oracle" validate:"required"`
	BackstopRate  uint32 `json:"backstop_rate" validate:"lte=1000000"`
	MaxPositions  uint32 `json:"max_positions" validate:"gte=1,lte=255"`
	MinCollateral string `json:"min_collateral" validate:"required"`
	Secret        string `json:"secret,omitempty"`
}

// CreatePoolResponse carries the deployed pool address and the hash of the
// deploying transaction.
type CreatePoolResponse struct {
	Pool string `json:"pool"`
	Hash string `json:"hash"`
}

// CreatePool deploys a new lending pool through the pool factory.
func (c *Controller) CreatePool(ctx echo.Context) error {

	var req CreatePoolRequest
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

	pool, err := c.blend.CreatePool(ctx.Request().Context(), blend.CreatePoolRequest{
		Admin:         req.Admin,
		Name:          req.Name,
		Oracle:        req.Oracle,
		BackstopRate:  req.BackstopRate,
		MaxPositions:  req.MaxPositions,
		MinCollateral: req.MinCollateral,
	}, sign)
	if err != nil {
		return httpError(err)
	}

	c.record(store.Receipt{
		Hash:      pool.Hash,
		Source:    req.Admin,
		Tool:      "create-pool",
		Pool:      pool.Address,
		CreatedAt: time.Now().UTC(),
	})

	res := CreatePoolResponse{
		Pool: pool.Address,
		Hash: pool.Hash,
	}

	return ctx.JSON(http.StatusOK, res)
}

// ReserveConfig is the reserve configuration carried by the add-reserve
// endpoint, mirroring the contract struct field for field.
type ReserveConfig struct {
	Index            uint32 `json:"index"`
	Decimals         uint32 `json:"decimals" validate:"lte=18"`
	CollateralFactor uint32 `json:"c_factor"`
	LiabilityFactor  uint32 `json:"l_factor"`
	Util             uint32 `json:"util"`
	MaxUtil          uint32 `json:"max_util"`
	RBase            uint32 `json:"r_base"`
	ROne             uint32 `json:"r_one"`
	RTwo             uint32 `json:"r_two"`
	RThree           uint32 `json:"r_three"`
	Reactivity       uint32 `json:"reactivity"`
	CollateralCap    string `json:"collateral_cap" validate:"required"`
	Enabled          bool   `json:"enabled"`
}

// AddReserveRequest is the request body for the reserve queueing endpoint.
type AddReserveRequest struct {
	Admin  string        `json:"admin" validate:"required"`
	Pool   string        `json:"pool" validate:"required"`
	Asset  string        `json:"asset" validate:"required"`
	Config ReserveConfig `json:"config" validate:"required"`
	Secret string        `json:"secret,omitempty"`
}

// AddReserve queues a new reserve configuration on a pool.
func (c *Controller) AddReserve(ctx echo.Context) error {

	var req AddReserveRequest
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

	hash, err := c.blend.AddReserve(ctx.Request().Context(), blend.AddReserveRequest{
		Admin: req.Admin,
		Pool:  req.Pool,
		Asset: req.Asset,
		Config: blend.ReserveConfig{
			Index:            req.Config.Index,
			Decimals:         req.Config.Decimals,
			CollateralFactor: req.Config.CollateralFactor,
			LiabilityFactor:  req.Config.LiabilityFactor,
			Util:             req.Config.Util,
			MaxUtil:          req.Config.MaxUtil,
			RBase:            req.Config.RBase,
			ROne:             req.Config.ROne,
			RTwo:             req.Config.RTwo,
			RThree:           req.Config.RThree,
			Reactivity:       req.Config.Reactivity,
			CollateralCap:    req.Config.CollateralCap,
			Enabled:          req.Config.Enabled,
		},
	}, sign)
	if err != nil {
		return httpError(err)
	}

	c.record(store.Receipt{
		Hash:      hash,
		Source:    req.Admin,
		Tool:      "add-reserve",
		Pool:      req.Pool,
		CreatedAt: time.Now().UTC(),
	})

	return ctx.JSON(http.StatusOK, SubmitResponse{Hash: hash})
}
