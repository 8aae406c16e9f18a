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

package signer

import (
	"context"
	"fmt"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"
)

// Signer turns an unsigned transaction into a signed one. Exactly one
// implementation is active per engine invocation: a local keypair or an
// external callback. Implementations must not mutate the given transaction;
// signing always produces a new value.
type Signer interface {
	Sign(ctx context.Context, tx *txnbuild.Transaction) (*txnbuild.Transaction, error)
}

// Local signs transactions with a keypair held in process memory.
type Local struct {
	key        *keypair.Full
	passphrase string
}

// NewLocal creates a local signer from the given secret seed, signing for the
// network identified by the given passphrase.
func NewLocal(secret string, passphrase string) (*Local, error) {

	key, err := keypair.ParseFull(secret)
	if err != nil {
		return nil, fmt.Errorf("could not parse secret seed: %w", err)
	}

	l := Local{
		key:        key,
		passphrase: passphrase,
	}

	return &l, nil
}

// Address returns the public address of the signing keypair, so that callers
// can verify it matches the transaction source account before submitting.
func (l *Local) Address() string {
	return l.key.Address()
}

// Sign implements the Signer interface.
func (l *Local) Sign(_ context.Context, tx *txnbuild.Transaction) (*txnbuild.Transaction, error) {

	signed, err := tx.Sign(l.passphrase, l.key)
	if err != nil {
		return nil, fmt.Errorf("could not sign transaction: %w", err)
	}

	return signed, nil
}

// SignFunc is a caller-supplied callback that signs a base64-encoded
// transaction envelope out of process and returns the signed envelope.
type SignFunc func(ctx context.Context, envelope string) (string, error)

// External signs transactions through a caller-supplied callback, for setups
// where the key never enters this process.
type External struct {
	sign SignFunc
}

// NewExternal creates an external signer from the given callback.
func NewExternal(sign SignFunc) *External {

	e := External{
		sign: sign,
	}

	return &e
}

// Sign implements the Signer interface.
func (e *External) Sign(ctx context.Context, tx *txnbuild.Transaction) (*txnbuild.Transaction, error) {

	envelope, err := tx.Base64()
	if err != nil {
		return nil, fmt.Errorf("could not encode transaction: %w", err)
	}

	signed, err := e.sign(ctx, envelope)
	if err != nil {
		return nil, fmt.Errorf("could not sign transaction: %w", err)
	}

	generic, err := txnbuild.TransactionFromXDR(signed)
	if err != nil {
		return nil, fmt.Errorf("could not decode signed transaction: %w", err)
	}
	parsed, ok := generic.Transaction()
	if !ok {
		return nil, fmt.Errorf("signed envelope is not a simple transaction")
	}

	return parsed, nil
}
