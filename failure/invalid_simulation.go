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

// InvalidSimulation is the error for a transaction that was deterministically
// rejected by the simulation endpoint. Simulation rejections are never
// retried, since replaying the same operations yields the same outcome.
type InvalidSimulation struct {
	Description Description
}

// Error implements the error interface.
func (i InvalidSimulation) Error() string {
	return fmt.Sprintf("transaction simulation failed: %s", i.Description)
}

// RestoreUnresolved is the error for a simulation that still demands ledger
// state restoration after a restore transaction has already been confirmed.
// Restoration runs at most once per invocation, so this is fatal.
type RestoreUnresolved struct {
	Description Description
	RestoreHash string
}

// Error implements the error interface.
func (r RestoreUnresolved) Error() string {
	return fmt.Sprintf("ledger state restoration unresolved: %s", r.Description)
}
