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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/go/xdr"

	"github.com/lumenkit/blend-agent/testing/mocks"
)

func TestAddressVal(t *testing.T) {

	t.Run("round-trips account address", func(t *testing.T) {
		t.Parallel()

		value, err := addressVal(mocks.GenericAddress)
		require.NoError(t, err)

		address, err := addressString(value)
		require.NoError(t, err)
		assert.Equal(t, mocks.GenericAddress, address)
	})

	t.Run("round-trips contract address", func(t *testing.T) {
		t.Parallel()

		value, err := addressVal(mocks.GenericContract)
		require.NoError(t, err)

		address, err := addressString(value)
		require.NoError(t, err)
		assert.Equal(t, mocks.GenericContract, address)
	})

	t.Run("handles invalid address", func(t *testing.T) {
		t.Parallel()

		_, err := addressVal("not-an-address")

		assert.Error(t, err)
	})
}

func TestAddressString(t *testing.T) {
	t.Parallel()

	_, err := addressString(u32Val(42))

	assert.Error(t, err)
}

func TestI128Val(t *testing.T) {

	t.Run("encodes positive amount", func(t *testing.T) {
		t.Parallel()

		value := i128Val(1_000_000_000)

		require.NotNil(t, value.I128)
		assert.Equal(t, xdr.Int64(0), value.I128.Hi)
		assert.Equal(t, xdr.Uint64(1_000_000_000), value.I128.Lo)
	})

	t.Run("sign-extends negative amount", func(t *testing.T) {
		t.Parallel()

		value := i128Val(-1)

		require.NotNil(t, value.I128)
		assert.Equal(t, xdr.Int64(-1), value.I128.Hi)
		assert.Equal(t, xdr.Uint64(0xffffffffffffffff), value.I128.Lo)
	})
}

func TestInvoke(t *testing.T) {

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		op, err := invoke(mocks.GenericContract, "transfer", u32Val(1), boolVal(true))

		require.NoError(t, err)
		require.NotNil(t, op.HostFunction.InvokeContract)
		assert.Equal(t, xdr.ScSymbol("transfer"), op.HostFunction.InvokeContract.FunctionName)
		assert.Len(t, op.HostFunction.InvokeContract.Args, 2)
	})

	t.Run("handles invalid contract address", func(t *testing.T) {
		t.Parallel()

		_, err := invoke("not-a-contract", "transfer")

		assert.Error(t, err)
	})
}
