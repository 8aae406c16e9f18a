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

package engine

import (
	"context"
	"fmt"

	"github.com/lumenkit/blend-agent/failure"
	"github.com/lumenkit/blend-agent/network"
)

// confirm polls for ledger inclusion of the transaction with the given hash
// until it reaches a terminal status or the confirmation budget runs out. A
// successful execution with a return value is decoded through the given
// parser; a missing return value or a nil parser yields no result, which is
// valid for state-changing calls without a return type.
func (e *Engine) confirm(ctx context.Context, hash string, parse ResultParser) (interface{}, error) {

	start := e.now()
	var result interface{}
	done, err := e.repeat(ctx, e.cfg.ConfirmPolicy, func(ctx context.Context) (bool, error) {

		con, err := e.api.GetTransaction(ctx, hash)
		if err != nil {
			return false, fmt.Errorf("could not get transaction status: %w", err)
		}

		switch con.Status {

		case network.ConfirmationNotFound:
			return false, nil

		case network.ConfirmationSuccess:
			e.metrics.Confirmation("success")
			value, ok, err := con.ReturnValue()
			if err != nil {
				return false, fmt.Errorf("could not extract return value: %w", err)
			}
			if !ok || parse == nil {
				return true, nil
			}
			result, err = parse(value)
			if err != nil {
				return false, fmt.Errorf("could not parse return value: %w", err)
			}
			return true, nil

		// Any terminal status other than success means the transaction was
		// included but did not execute.
		default:
			e.metrics.Confirmation("failed")
			return false, classifyConfirmation(con, hash)
		}
	})
	e.metrics.Duration("confirm", e.now().Sub(start))
	if err != nil {
		return nil, Classify(err)
	}
	if !done {
		e.metrics.Confirmation("timeout")
		return nil, failure.ConfirmationTimeout{
			Description: failure.NewDescription("ledger inclusion not observed within budget",
				failure.WithString("hash", hash),
				failure.WithString("budget", e.cfg.ConfirmPolicy.Budget.String()),
			),
			Hash:   hash,
			Budget: e.cfg.ConfirmPolicy.Budget,
		}
	}

	return result, nil
}
