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

package store_test

import (
	"testing"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenkit/blend-agent/codec/zbor"
	"github.com/lumenkit/blend-agent/store"
	"github.com/lumenkit/blend-agent/testing/mocks"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	return store.New(mocks.NoopLogger, db, zbor.NewCodec())
}

func TestStore_Cursor(t *testing.T) {
	t.Parallel()

	s := testStore(t)

	t.Run("missing cursor", func(t *testing.T) {
		_, err := s.Cursor(mocks.GenericContract)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, s.SaveCursor(mocks.GenericContract, 42))

		ledger, err := s.Cursor(mocks.GenericContract)
		require.NoError(t, err)
		assert.Equal(t, uint32(42), ledger)
	})

	t.Run("overwrite advances cursor", func(t *testing.T) {
		require.NoError(t, s.SaveCursor(mocks.GenericContract, 100))

		ledger, err := s.Cursor(mocks.GenericContract)
		require.NoError(t, err)
		assert.Equal(t, uint32(100), ledger)
	})
}

func TestStore_Receipt(t *testing.T) {
	t.Parallel()

	s := testStore(t)

	t.Run("missing receipt", func(t *testing.T) {
		_, err := s.Receipt(mocks.GenericHash)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		in := store.Receipt{
			Hash:      mocks.GenericHash,
			Source:    mocks.GenericAddress,
			Tool:      "lend",
			Pool:      mocks.GenericContract,
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}
		require.NoError(t, s.SaveReceipt(in))

		out, err := s.Receipt(mocks.GenericHash)
		require.NoError(t, err)
		assert.Equal(t, in.Hash, out.Hash)
		assert.Equal(t, in.Source, out.Source)
		assert.Equal(t, in.Tool, out.Tool)
		assert.Equal(t, in.Pool, out.Pool)
		assert.True(t, in.CreatedAt.Equal(out.CreatedAt))
	})
}
