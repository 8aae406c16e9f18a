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

package network

import (
	"fmt"

	"github.com/stellar/go/xdr"
)

// Submission statuses returned by the Soroban RPC `sendTransaction` call.
const (
	SubmissionPending  = "PENDING"
	SubmissionDupe     = "DUPLICATE"
	SubmissionTryAgain = "TRY_AGAIN_LATER"
	SubmissionError    = "ERROR"
)

// Confirmation statuses returned by the Soroban RPC `getTransaction` call.
const (
	ConfirmationNotFound = "NOT_FOUND"
	ConfirmationSuccess  = "SUCCESS"
	ConfirmationFailed   = "FAILED"
)

// Simulation is the parsed result of a transaction simulation. Exactly one of
// three shapes applies: an error message, a restore requirement, or a success
// carrying the minimum resource fee and the resource footprint data.
type Simulation struct {
	Error           string
	MinResourceFee  int64
	TransactionData *xdr.SorobanTransactionData
	Events          []string
	Result          *xdr.ScVal
	Restore         *RestorePlan
}

// RestorePlan carries the footprint and minimum fee for the restore
// transaction a simulation demands before the simulated transaction can
// succeed.
type RestorePlan struct {
	TransactionData xdr.SorobanTransactionData
	MinResourceFee  int64
}

// Submission is the parsed result of a transaction submission.
type Submission struct {
	Status           string
	Hash             string
	ErrorResult      string
	DiagnosticEvents []string
}

// ResultCodes decodes the transaction result carried by a rejected
// submission into its transaction-level and operation-level result codes.
func (s Submission) ResultCodes() []string {
	return resultCodes(s.ErrorResult)
}

// Confirmation is the parsed result of a transaction status query.
type Confirmation struct {
	Status     string
	ResultXDR  string
	ResultMeta string
	Ledger     uint32
}

// ResultCodes decodes the transaction result of an included transaction into
// its transaction-level and operation-level result codes.
func (c Confirmation) ResultCodes() []string {
	return resultCodes(c.ResultXDR)
}

// ReturnValue extracts the smart contract return value from the result meta
// of a successfully executed transaction. The second return value reports
// whether a return value is present at all; state-changing calls without a
// return type legitimately have none.
func (c Confirmation) ReturnValue() (xdr.ScVal, bool, error) {

	if c.ResultMeta == "" {
		return xdr.ScVal{}, false, nil
	}

	var meta xdr.TransactionMeta
	err := xdr.SafeUnmarshalBase64(c.ResultMeta, &meta)
	if err != nil {
		return xdr.ScVal{}, false, fmt.Errorf("could not decode result meta: %w", err)
	}

	switch meta.V {
	case 3:
		if meta.V3 == nil || meta.V3.SorobanMeta == nil {
			return xdr.ScVal{}, false, nil
		}
		return meta.V3.SorobanMeta.ReturnValue, true, nil
	case 4:
		if meta.V4 == nil || meta.V4.SorobanMeta == nil || meta.V4.SorobanMeta.ReturnValue == nil {
			return xdr.ScVal{}, false, nil
		}
		return *meta.V4.SorobanMeta.ReturnValue, true, nil
	default:
		return xdr.ScVal{}, false, nil
	}
}

func resultCodes(encoded string) []string {

	if encoded == "" {
		return nil
	}

	var result xdr.TransactionResult
	err := xdr.SafeUnmarshalBase64(encoded, &result)
	if err != nil {
		return nil
	}

	codes := []string{result.Result.Code.String()}
	if result.Result.Results != nil {
		for _, opResult := range *result.Result.Results {
			codes = append(codes, opResult.Code.String())
		}
	}

	return codes
}
