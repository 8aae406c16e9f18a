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

package network

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/stellar/go/clients/horizonclient"
	"github.com/stellar/go/protocols/horizon"
	"github.com/stellar/go/txnbuild"

	"github.com/lumenkit/blend-agent/failure"
)

// Client bundles the two network endpoints the agent talks to: the Soroban
// RPC endpoint for simulation, submission and status queries, and the Horizon
// endpoint for account state and balances. It carries the network passphrase
// alongside, since every transaction hash depends on it. A Client holds no
// mutable state and may be shared across concurrent invocations.
type Client struct {
	log        zerolog.Logger
	rpcURL     string
	http       *http.Client
	horizon    horizonclient.ClientInterface
	passphrase string
}

// New creates a new network client for the given Soroban RPC endpoint,
// Horizon endpoint and network passphrase.
func New(log zerolog.Logger, rpcURL string, horizonURL string, passphrase string) *Client {

	horizon := &horizonclient.Client{
		HorizonURL: horizonURL,
		HTTP:       &http.Client{Timeout: 30 * time.Second},
	}
	horizon.SetHorizonTimeout(30 * time.Second)

	c := Client{
		log:        log.With().Str("component", "network").Logger(),
		rpcURL:     rpcURL,
		http:       &http.Client{Timeout: 30 * time.Second},
		horizon:    horizon,
		passphrase: passphrase,
	}

	return &c
}

// Passphrase returns the network passphrase of the target network.
func (c *Client) Passphrase() string {
	return c.passphrase
}

// Account fetches the current snapshot of the account with the given address,
// including its up-to-date sequence number. Snapshots are always fetched
// fresh and never cached, so that stale sequence numbers cannot leak into a
// transaction build.
func (c *Client) Account(_ context.Context, address string) (txnbuild.SimpleAccount, error) {

	record, err := c.horizon.AccountDetail(horizonclient.AccountRequest{AccountID: address})
	if horizonclient.IsNotFoundError(err) {
		return txnbuild.SimpleAccount{}, failure.UnknownAccount{
			Description: failure.NewDescription("account does not exist on ledger",
				failure.WithString("address", address),
			),
			Address: address,
		}
	}
	if err != nil {
		return txnbuild.SimpleAccount{}, fmt.Errorf("could not fetch account: %w", err)
	}

	sequence, err := record.GetSequenceNumber()
	if err != nil {
		return txnbuild.SimpleAccount{}, fmt.Errorf("could not parse account sequence number: %w", err)
	}

	account := txnbuild.SimpleAccount{
		AccountID: record.AccountID,
		Sequence:  sequence,
	}

	return account, nil
}

// Balances fetches the trustline balances of the account with the given
// address, including the native balance.
func (c *Client) Balances(_ context.Context, address string) ([]horizon.Balance, error) {

	record, err := c.horizon.AccountDetail(horizonclient.AccountRequest{AccountID: address})
	if horizonclient.IsNotFoundError(err) {
		return nil, failure.UnknownAccount{
			Description: failure.NewDescription("account does not exist on ledger",
				failure.WithString("address", address),
			),
			Address: address,
		}
	}
	if err != nil {
		return nil, fmt.Errorf("could not fetch account: %w", err)
	}

	return record.Balances, nil
}
