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

package failure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescription_String(t *testing.T) {

	t.Run("renders bare text without fields", func(t *testing.T) {
		t.Parallel()

		d := NewDescription("something went wrong")

		assert.Equal(t, "something went wrong", d.String())
	})

	t.Run("renders fields in insertion order", func(t *testing.T) {
		t.Parallel()

		d := NewDescription("something went wrong",
			WithString("hash", "abc123"),
			WithInt64("fee", 100),
			WithErr(errors.New("dummy error")),
		)

		assert.Equal(t, "something went wrong (hash: abc123, fee: 100, error: dummy error)", d.String())
	})
}

// Error messages are part of the package contract; downstream consumers match
// on their prefixes.
func TestFailure_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "invalid input",
			err:  InvalidInput{Description: NewDescription("operation list empty")},
			want: "invalid input: operation list empty",
		},
		{
			name: "unknown account",
			err: UnknownAccount{
				Description: NewDescription("account does not exist on ledger",
					WithString("address", "GAIH"),
				),
			},
			want: "account not found: account does not exist on ledger (address: GAIH)",
		},
		{
			name: "sequence mismatch",
			err:  SequenceMismatch{Description: NewDescription("stale sequence number")},
			want: "transaction sequence mismatch: stale sequence number",
		},
		{
			name: "submission timeout",
			err:  SubmissionTimeout{Description: NewDescription("submission deferred past budget")},
			want: "transaction submission timed out: submission deferred past budget",
		},
		{
			name: "confirmation timeout",
			err:  ConfirmationTimeout{Description: NewDescription("ledger inclusion not observed within budget")},
			want: "transaction confirmation timed out: ledger inclusion not observed within budget",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, test.want, test.err.Error())
		})
	}
}
