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
	"time"
)

// SubmissionTimeout is the error for a transaction whose submission kept
// being deferred by the network past the submission budget.
type SubmissionTimeout struct {
	Description Description
	Budget      time.Duration
}

// Error implements the error interface.
func (s SubmissionTimeout) Error() string {
	return fmt.Sprintf("transaction submission timed out: %s", s.Description)
}

// ConfirmationTimeout is the error for a submitted transaction whose ledger
// inclusion was not observed within the confirmation budget. It is distinct
// from SubmissionTimeout: the network accepted the transaction, but inclusion
// is delayed. The hash remains valid and the transaction may still apply.
type ConfirmationTimeout struct {
	Description Description
	Hash        string
	Budget      time.Duration
}

// Error implements the error interface.
func (c ConfirmationTimeout) Error() string {
	return fmt.Sprintf("transaction confirmation timed out: %s", c.Description)
}
