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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/go/txnbuild"

	"github.com/lumenkit/blend-agent/engine"
	"github.com/lumenkit/blend-agent/failure"
	"github.com/lumenkit/blend-agent/signer"
	"github.com/lumenkit/blend-agent/testing/mocks"
)

func TestClient_CreatePool(t *testing.T) {

	req := CreatePoolRequest{
		Admin:         mocks.GenericAddress,
		Name:          "Test Pool",
		Oracle:        mocks.GenericContract,
		BackstopRate:  200_000,
		MaxPositions:  4,
		MinCollateral: "10",
	}

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		run := baselineExecutor(t)
		run.ExecuteWithRestoreFunc = func(_ context.Context, source string, operations []txnbuild.Operation, _ signer.Signer, parse engine.ResultParser) (engine.Receipt, error) {

			assert.Equal(t, mocks.GenericAddress, source)

			function, args := invocationArgs(t, operations)
			assert.Equal(t, "deploy", function)
			require.Len(t, args, 7)

			// The deployment salt is 32 random bytes.
			require.NotNil(t, args[2].Bytes)
			assert.Len(t, []byte(*args[2].Bytes), 32)

			// The deployed pool address comes from the parsed return value.
			deployed, err := addressVal(mocks.GenericContract)
			require.NoError(t, err)
			result, err := parse(deployed)
			require.NoError(t, err)

			return engine.Receipt{Hash: mocks.GenericHash, Result: result}, nil
		}

		c := testClient(t, run, mocks.BaselineReader(t))

		pool, err := c.CreatePool(context.Background(), req, mocks.BaselineSigner(t))

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericContract, pool.Address)
		assert.Equal(t, mocks.GenericHash, pool.Hash)
	})

	t.Run("handles missing fields", func(t *testing.T) {
		t.Parallel()

		c := testClient(t, baselineExecutor(t), mocks.BaselineReader(t))

		_, err := c.CreatePool(context.Background(), CreatePoolRequest{}, mocks.BaselineSigner(t))

		assert.Error(t, err)
		assert.ErrorAs(t, err, &failure.InvalidInput{})
	})

	t.Run("handles backstop rate out of range", func(t *testing.T) {
		t.Parallel()

		c := testClient(t, baselineExecutor(t), mocks.BaselineReader(t))

		invalid := req
		invalid.BackstopRate = 1_000_001
		_, err := c.CreatePool(context.Background(), invalid, mocks.BaselineSigner(t))

		assert.Error(t, err)
		assert.ErrorAs(t, err, &failure.InvalidInput{})
	})

	t.Run("handles maximum positions out of range", func(t *testing.T) {
		t.Parallel()

		c := testClient(t, baselineExecutor(t), mocks.BaselineReader(t))

		invalid := req
		invalid.MaxPositions = 256
		_, err := c.CreatePool(context.Background(), invalid, mocks.BaselineSigner(t))

		assert.Error(t, err)
		assert.ErrorAs(t, err, &failure.InvalidInput{})
	})

	t.Run("handles missing pool address in result", func(t *testing.T) {
		t.Parallel()

		run := baselineExecutor(t)
		run.ExecuteWithRestoreFunc = func(context.Context, string, []txnbuild.Operation, signer.Signer, engine.ResultParser) (engine.Receipt, error) {
			return engine.Receipt{Hash: mocks.GenericHash}, nil
		}

		c := testClient(t, run, mocks.BaselineReader(t))

		_, err := c.CreatePool(context.Background(), req, mocks.BaselineSigner(t))

		assert.Error(t, err)
	})

	t.Run("handles missing factory configuration", func(t *testing.T) {
		t.Parallel()

		c := testClient(t, baselineExecutor(t), mocks.BaselineReader(t))
		c.factory = ""

		_, err := c.CreatePool(context.Background(), req, mocks.BaselineSigner(t))

		assert.Error(t, err)
		assert.ErrorAs(t, err, &failure.InvalidInput{})
	})
}
