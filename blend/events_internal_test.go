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

	"github.com/lumenkit/blend-agent/failure"
	"github.com/lumenkit/blend-agent/network"
	"github.com/lumenkit/blend-agent/testing/mocks"
)

func TestClient_PoolEvents(t *testing.T) {

	t.Run("nominal case with second generation topics", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineReader(t)
		api.GetEventsFunc = func(_ context.Context, startLedger uint32, filters []network.EventFilter, limit uint) (network.Events, error) {

			assert.Equal(t, uint32(100), startLedger)
			assert.Equal(t, uint(eventPageLimit), limit)

			require.Len(t, filters, 1)
			assert.Equal(t, "contract", filters[0].Type)
			assert.Equal(t, []string{mocks.GenericContract}, filters[0].ContractIDs)

			// V2 auction events carry two data segments after the symbol.
			require.Len(t, filters[0].Topics, 3)
			for _, topic := range filters[0].Topics {
				assert.Len(t, topic, 3)
			}

			return network.Events{LatestLedger: 120}, nil
		}

		c := testClient(t, baselineExecutor(t), api)

		events, err := c.PoolEvents(context.Background(), mocks.GenericContract, VersionV2, 100)

		require.NoError(t, err)
		assert.Equal(t, uint32(120), events.LatestLedger)
	})

	t.Run("nominal case with first generation topics", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineReader(t)
		api.GetEventsFunc = func(_ context.Context, _ uint32, filters []network.EventFilter, _ uint) (network.Events, error) {

			require.Len(t, filters, 1)
			require.Len(t, filters[0].Topics, 4)

			// Only the fill event carries two data segments in V1.
			assert.Len(t, filters[0].Topics[0], 3)
			for _, topic := range filters[0].Topics[1:] {
				assert.Len(t, topic, 2)
			}

			return network.Events{}, nil
		}

		c := testClient(t, baselineExecutor(t), api)

		_, err := c.PoolEvents(context.Background(), mocks.GenericContract, VersionV1, 100)

		require.NoError(t, err)
	})

	t.Run("handles unknown version", func(t *testing.T) {
		t.Parallel()

		c := testClient(t, baselineExecutor(t), mocks.BaselineReader(t))

		_, err := c.PoolEvents(context.Background(), mocks.GenericContract, Version("V3"), 100)

		assert.Error(t, err)
		assert.ErrorAs(t, err, &failure.InvalidInput{})
	})

	t.Run("handles missing pool", func(t *testing.T) {
		t.Parallel()

		c := testClient(t, baselineExecutor(t), mocks.BaselineReader(t))

		_, err := c.PoolEvents(context.Background(), "", VersionV2, 100)

		assert.Error(t, err)
		assert.ErrorAs(t, err, &failure.InvalidInput{})
	})

	t.Run("handles network failure", func(t *testing.T) {
		t.Parallel()

		api := mocks.BaselineReader(t)
		api.GetEventsFunc = func(context.Context, uint32, []network.EventFilter, uint) (network.Events, error) {
			return network.Events{}, mocks.GenericError
		}

		c := testClient(t, baselineExecutor(t), api)

		_, err := c.PoolEvents(context.Background(), mocks.GenericContract, VersionV2, 100)

		assert.Error(t, err)
	})
}
