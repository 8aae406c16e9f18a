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
)

type Signer struct {
	SignFunc func(ctx context.Context, tx *txnbuild.Transaction) (*txnbuild.Transaction, error)
}

func (s *Signer) Sign(ctx context.Context, tx *txnbuild.Transaction) (*txnbuild.Transaction, error) {
	return s.SignFunc(ctx, tx)
}

func BaselineSigner(t *testing.T) *Signer {
	t.Helper()

	s := Signer{
		SignFunc: func(_ context.Context, tx *txnbuild.Transaction) (*txnbuild.Transaction, error) {
			return tx, nil
		},
	}

	return &s
}
