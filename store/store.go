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

package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"
)

// Key prefixes for the store namespaces.
const (
	prefixCursor  = 1
	prefixReceipt = 2
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Codec encodes and decodes the values kept in the store.
type Codec interface {
	Marshal(value interface{}) ([]byte, error)
	Unmarshal(data []byte, value interface{}) error
}

// Receipt records a confirmed submission for later lookup. Losing receipts
// affects nothing; the store is a convenience cache, never a work queue.
type Receipt struct {
	Hash      string
	Source    string
	Tool      string
	Pool      string
	CreatedAt time.Time
}

// Store persists pool event cursors and submission receipts in a local
// key/value database.
type Store struct {
	log   zerolog.Logger
	db    *badger.DB
	codec Codec
}

// New creates a new store on top of the given database handle and codec.
func New(log zerolog.Logger, db *badger.DB, codec Codec) *Store {

	s := Store{
		log:   log.With().Str("component", "store").Logger(),
		db:    db,
		codec: codec,
	}

	return &s
}

// SaveCursor writes the latest ledger seen for the given pool's event stream.
func (s *Store) SaveCursor(pool string, ledger uint32) error {
	return s.save(encodeKey(prefixCursor, pool), ledger)
}

// Cursor reads the latest ledger seen for the given pool's event stream.
func (s *Store) Cursor(pool string) (uint32, error) {

	var ledger uint32
	err := s.retrieve(encodeKey(prefixCursor, pool), &ledger)
	if err != nil {
		return 0, err
	}

	return ledger, nil
}

// SaveReceipt writes the given submission receipt, keyed by its transaction
// hash.
func (s *Store) SaveReceipt(receipt Receipt) error {
	return s.save(encodeKey(prefixReceipt, receipt.Hash), receipt)
}

// Receipt reads the submission receipt for the given transaction hash.
func (s *Store) Receipt(hash string) (Receipt, error) {

	var receipt Receipt
	err := s.retrieve(encodeKey(prefixReceipt, hash), &receipt)
	if err != nil {
		return Receipt{}, err
	}

	return receipt, nil
}

func (s *Store) save(key []byte, value interface{}) error {

	val, err := s.codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode value (key: %x): %w", key, err)
	}

	err = s.db.Update(func(tx *badger.Txn) error {
		return tx.Set(key, val)
	})
	if err != nil {
		return fmt.Errorf("could not set value (key: %x): %w", key, err)
	}

	return nil
}

func (s *Store) retrieve(key []byte, value interface{}) error {

	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return s.codec.Unmarshal(val, value)
		})
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("could not get value (key: %x): %w", key, err)
	}

	return nil
}

func encodeKey(prefix uint8, segment string) []byte {
	key := make([]byte, 0, 1+len(segment))
	key = append(key, prefix)
	key = append(key, segment...)
	return key
}
