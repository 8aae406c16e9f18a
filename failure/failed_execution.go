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

// FailedExecution is the error for a transaction that was included in a
// ledger but did not execute successfully. It carries the ledger-side
// diagnostics so callers can act on the concrete contract failure.
type FailedExecution struct {
	Description Description
	Hash        string
	Diagnostics []string
}

// Error implements the error interface.
func (f FailedExecution) Error() string {
	return fmt.Sprintf("transaction execution failed: %s", f.Description)
}
