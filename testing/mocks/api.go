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

package mocks

import (
	"context"
	"testing"

	"github.com/stellar/go/txnbuild"

	"github.com/lumenkit/blend-agent/network"
)

type API struct {
	AccountFunc             func(ctx context.Context, address string) (txnbuild.SimpleAccount, error)
	SimulateTransactionFunc func(ctx context.Context, envelope string) (network.Simulation, error)
	SendTransactionFunc     func(ctx context.Context, envelope string) (network.Submission, error)
	GetTransactionFunc      func(ctx context.Context, hash string) (network.Confirmation, error)
}

func (a *API) Account(ctx context.Context, address string) (txnbuild.SimpleAccount, error) {
	return a.AccountFunc(ctx, address)
}

func (a *API) SimulateTransaction(ctx context.Context, envelope string) (network.Simulation, error) {
	return a.SimulateTransactionFunc(ctx, envelope)
}

func (a *API) SendTransaction(ctx context.Context, envelope string) (network.Submission, error) {
	return a.SendTransactionFunc(ctx, envelope)
}

func (a *API) GetTransaction(ctx context.Context, hash string) (network.Confirmation, error) {
	return a.GetTransactionFunc(ctx, hash)
}

func BaselineAPI(t *testing.T) *API {
	t.Helper()

	data := GenericSorobanData

	a := API{
		AccountFunc: func(context.Context, string) (txnbuild.SimpleAccount, error) {
			return GenericAccount(), nil
		},
		SimulateTransactionFunc: func(context.Context, string) (network.Simulation, error) {
			return network.Simulation{
				MinResourceFee:  100,
				TransactionData: &data,
			}, nil
		},
		SendTransactionFunc: func(context.Context, string) (network.Submission, error) {
			return network.Submission{
				Status: network.SubmissionPending,
				Hash:   GenericHash,
			}, nil
		},
		GetTransactionFunc: func(context.Context, string) (network.Confirmation, error) {
			return network.Confirmation{
				Status: network.ConfirmationSuccess,
			}, nil
		},
	}

	return &a
}
