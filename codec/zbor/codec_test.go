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

package zbor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenkit/blend-agent/codec/zbor"
)

func TestCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := zbor.NewCodec()

	type record struct {
		Hash      string
		Ledger    uint32
		Timestamp time.Time
	}

	in := record{
		Hash:      "c2bbd6a8c2da92e61a9cb976a71e499989dcac24e2ed4118f3eb2103f78b4a5c",
		Ledger:    42,
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := codec.Marshal(in)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	var out record
	err = codec.Unmarshal(data, &out)
	require.NoError(t, err)

	assert.Equal(t, in.Hash, out.Hash)
	assert.Equal(t, in.Ledger, out.Ledger)
	assert.True(t, in.Timestamp.Equal(out.Timestamp))
}

func TestCodec_Unmarshal(t *testing.T) {
	t.Parallel()

	codec := zbor.NewCodec()

	var out struct{}
	err := codec.Unmarshal([]byte(`garbage`), &out)

	assert.Error(t, err)
}
