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
	"testing"

	"github.com/stellar/go/txnbuild"

	"github.com/lumenkit/blend-agent/engine"
	"github.com/lumenkit/blend-agent/signer"
	"github.com/lumenkit/blend-agent/testing/mocks"
)

// executorStub satisfies the Executor interface without driving a real
// lifecycle. It lives here instead of the shared mocks to keep the mock
// package free of an engine dependency.
type executorStub struct {
	ExecuteFunc            func(ctx context.Context, source string, operations []txnbuild.Operation, sign signer.Signer, parse engine.ResultParser) (engine.Receipt, error)
	ExecuteWithRestoreFunc func(ctx context.Context, source string, operations []txnbuild.Operation, sign signer.Signer, parse engine.ResultParser) (engine.Receipt, error)
}

func baselineExecutor(t *testing.T) *executorStub {
	t.Helper()

	run := func(context.Context, string, []txnbuild.Operation, signer.Signer, engine.ResultParser) (engine.Receipt, error) {
		return engine.Receipt{Hash: mocks.GenericHash}, nil
	}

	e := executorStub{
		ExecuteFunc:            run,
		ExecuteWithRestoreFunc: run,
	}

	return &e
}

func (e *executorStub) Execute(ctx context.Context, source string, operations []txnbuild.Operation, sign signer.Signer, parse engine.ResultParser) (engine.Receipt, error) {
	return e.ExecuteFunc(ctx, source, operations, sign, parse)
}

func (e *executorStub) ExecuteWithRestore(ctx context.Context, source string, operations []txnbuild.Operation, sign signer.Signer, parse engine.ResultParser) (engine.Receipt, error) {
	return e.ExecuteWithRestoreFunc(ctx, source, operations, sign, parse)
}

func testClient(t *testing.T, run Executor, api API) *Client {
	t.Helper()

	c := Client{
		log:     mocks.NoopLogger,
		run:     run,
		api:     api,
		factory: mocks.GenericContract,
		cache:   mocks.BaselineCache(t),
	}

	return &c
}
