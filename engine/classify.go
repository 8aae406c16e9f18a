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
	"strings"

	"github.com/stellar/go/xdr"

	"github.com/lumenkit/blend-agent/failure"
	"github.com/lumenkit/blend-agent/network"
)

// All error classification lives in this file. Structured fields from the
// network responses are matched first; substring matching on raw messages is
// the fallback of last resort and happens nowhere else.

// classifySubmission maps a rejected submission onto the engine error
// taxonomy. The transaction result carried by the rejection is decoded and
// matched on its result code before falling back to a generic rejection
// carrying the raw result codes.
func classifySubmission(sub network.Submission) error {

	if sub.ErrorResult != "" {
		var result xdr.TransactionResult
		err := xdr.SafeUnmarshalBase64(sub.ErrorResult, &result)
		if err == nil {
			switch result.Result.Code {
			case xdr.TransactionResultCodeTxBadSeq:
				return failure.SequenceMismatch{
					Description: failure.NewDescription("transaction carried stale sequence number",
						failure.WithString("hash", sub.Hash),
					),
				}
			case xdr.TransactionResultCodeTxInsufficientFee:
				return failure.InsufficientFee{
					Description: failure.NewDescription("transaction fee below network minimum",
						failure.WithString("hash", sub.Hash),
					),
				}
			case xdr.TransactionResultCodeTxNoAccount:
				return failure.MissingSourceAccount{
					Description: failure.NewDescription("source account absent at submission",
						failure.WithString("hash", sub.Hash),
					),
				}
			}
		}
	}

	return failure.RejectedTransaction{
		Description: failure.NewDescription("network rejected transaction",
			failure.WithString("hash", sub.Hash),
			failure.WithStrings("result_codes", sub.ResultCodes()...),
		),
		ResultCodes: sub.ResultCodes(),
	}
}

// classifyConfirmation maps a transaction that was included in a ledger but
// did not execute successfully onto the engine error taxonomy, carrying the
// ledger-side diagnostics.
func classifyConfirmation(con network.Confirmation, hash string) error {

	return failure.FailedExecution{
		Description: failure.NewDescription("transaction included but execution failed",
			failure.WithString("hash", hash),
			failure.WithString("status", con.Status),
			failure.WithStrings("result_codes", con.ResultCodes()...),
		),
		Hash:        hash,
		Diagnostics: con.ResultCodes(),
	}
}

// Classify maps a raw network or SDK error onto the engine error taxonomy.
// Errors that already carry a taxonomy kind pass through unchanged, so
// classification is idempotent. Raw errors are matched on known message
// fragments before falling back to a generic rejection wrapping the original
// message.
func Classify(err error) error {

	switch err.(type) {
	case failure.InvalidInput, failure.UnknownAccount, failure.UnknownContract,
		failure.InvalidSimulation, failure.RestoreUnresolved,
		failure.SequenceMismatch, failure.InsufficientFee, failure.MissingSourceAccount,
		failure.RejectedTransaction, failure.SubmissionTimeout,
		failure.ConfirmationTimeout, failure.FailedExecution:
		return err
	}

	message := err.Error()
	switch {
	case strings.Contains(message, "tx_bad_seq"):
		return failure.SequenceMismatch{
			Description: failure.NewDescription("transaction carried stale sequence number",
				failure.WithErr(err),
			),
		}
	case strings.Contains(message, "tx_insufficient_fee"):
		return failure.InsufficientFee{
			Description: failure.NewDescription("transaction fee below network minimum",
				failure.WithErr(err),
			),
		}
	case strings.Contains(message, "tx_no_source_account"):
		return failure.MissingSourceAccount{
			Description: failure.NewDescription("source account absent at submission",
				failure.WithErr(err),
			),
		}
	case strings.Contains(message, "account not found"):
		return failure.UnknownAccount{
			Description: failure.NewDescription("account does not exist on ledger",
				failure.WithErr(err),
			),
		}
	case strings.Contains(message, "contract not found"):
		return failure.UnknownContract{
			Description: failure.NewDescription("contract does not exist on ledger",
				failure.WithErr(err),
			),
		}
	}

	return failure.RejectedTransaction{
		Description: failure.NewDescription("network rejected transaction",
			failure.WithErr(err),
		),
	}
}
