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

	"github.com/stellar/go/txnbuild"

	"github.com/lumenkit/blend-agent/failure"
	"github.com/lumenkit/blend-agent/network"
	"github.com/lumenkit/blend-agent/signer"
)

// submit signs the given transaction and dispatches it to the network. A
// try-again-later response is retried at a fixed interval within the
// submission budget; any other non-pending outcome is a deterministic
// rejection and is classified and raised immediately. On success it returns
// the transaction hash reported by the network, which becomes the sole
// handle for confirmation polling.
func (e *Engine) submit(ctx context.Context, tx *txnbuild.Transaction, sign signer.Signer) (string, error) {

	signed, err := sign.Sign(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("could not sign transaction: %w", err)
	}

	envelope, err := signed.Base64()
	if err != nil {
		return "", fmt.Errorf("could not encode transaction: %w", err)
	}

	start := e.now()
	var hash string
	done, err := e.repeat(ctx, e.cfg.SubmitPolicy, func(ctx context.Context) (bool, error) {

		sub, err := e.api.SendTransaction(ctx, envelope)
		if err != nil {
			return false, fmt.Errorf("could not send transaction: %w", err)
		}

		switch sub.Status {

		case network.SubmissionPending:
			e.metrics.Submission("pending")
			hash = sub.Hash
			return true, nil

		// A duplicate means this envelope is already in flight, so its hash
		// is just as valid a handle for confirmation polling.
		case network.SubmissionDupe:
			e.metrics.Submission("duplicate")
			hash = sub.Hash
			return true, nil

		case network.SubmissionTryAgain:
			e.metrics.Submission("try_again")
			e.log.Debug().Msg("submission deferred by network, retrying")
			return false, nil

		default:
			e.metrics.Submission("rejected")
			return false, classifySubmission(sub)
		}
	})
	e.metrics.Duration("submit", e.now().Sub(start))
	if err != nil {
		return "", Classify(err)
	}
	if !done {
		e.metrics.Submission("timeout")
		return "", failure.SubmissionTimeout{
			Description: failure.NewDescription("submission deferred past budget",
				failure.WithString("budget", e.cfg.SubmitPolicy.Budget.String()),
			),
			Budget: e.cfg.SubmitPolicy.Budget,
		}
	}

	return hash, nil
}
