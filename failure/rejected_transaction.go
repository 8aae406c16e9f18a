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
	"fmt"
)

// SequenceMismatch is the error for a transaction rejected because it carried
// a stale sequence number. Two concurrent invocations from the same account
// race on the sequence number and the ledger rejects the stale one; the
// engine surfaces this without retrying.
type SequenceMismatch struct {
	Description Description
	Address     string
}

// Error implements the error interface.
func (s SequenceMismatch) Error() string {
	return fmt.Sprintf("transaction sequence mismatch: %s", s.Description)
}

// InsufficientFee is the error for a transaction rejected because its fee was
// below what the ledger currently demands.
type InsufficientFee struct {
	Description Description
	Fee         int64
}

// Error implements the error interface.
func (i InsufficientFee) Error() string {
	return fmt.Sprintf("transaction fee insufficient: %s", i.Description)
}

// MissingSourceAccount is the error for a transaction rejected because its
// source account does not exist at submission time.
type MissingSourceAccount struct {
	Description Description
	Address     string
}

// Error implements the error interface.
func (m MissingSourceAccount) Error() string {
	return fmt.Sprintf("transaction source account missing: %s", m.Description)
}

// RejectedTransaction is the error for any other deterministic submission
// rejection that does not map to a more specific kind. It carries the raw
// transaction result codes for downstream consumers.
type RejectedTransaction struct {
	Description Description
	ResultCodes []string
}

// Error implements the error interface.
func (r RejectedTransaction) Error() string {
	return fmt.Sprintf("transaction rejected: %s", r.Description)
}
