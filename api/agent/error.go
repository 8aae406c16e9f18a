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

package agent

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumenkit/blend-agent/failure"
)

// httpError maps an error from the engine taxonomy onto the matching HTTP
// status: bad input is the caller's fault, missing ledger entities are not
// found, rejected or unprocessable transactions are unprocessable entities,
// exhausted budgets are gateway timeouts and on-ledger execution failures are
// bad gateway responses.
func httpError(err error) error {

	var invalidInput failure.InvalidInput
	if errors.As(err, &invalidInput) {
		return echo.NewHTTPError(http.StatusBadRequest, invalidInput.Error())
	}

	var unknownAccount failure.UnknownAccount
	if errors.As(err, &unknownAccount) {
		return echo.NewHTTPError(http.StatusNotFound, unknownAccount.Error())
	}

	var unknownContract failure.UnknownContract
	if errors.As(err, &unknownContract) {
		return echo.NewHTTPError(http.StatusNotFound, unknownContract.Error())
	}

	var invalidSimulation failure.InvalidSimulation
	if errors.As(err, &invalidSimulation) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, invalidSimulation.Error())
	}

	var restoreUnresolved failure.RestoreUnresolved
	if errors.As(err, &restoreUnresolved) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, restoreUnresolved.Error())
	}

	var sequenceMismatch failure.SequenceMismatch
	if errors.As(err, &sequenceMismatch) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, sequenceMismatch.Error())
	}

	var insufficientFee failure.InsufficientFee
	if errors.As(err, &insufficientFee) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, insufficientFee.Error())
	}

	var missingSource failure.MissingSourceAccount
	if errors.As(err, &missingSource) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, missingSource.Error())
	}

	var rejected failure.RejectedTransaction
	if errors.As(err, &rejected) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, rejected.Error())
	}

	var submissionTimeout failure.SubmissionTimeout
	if errors.As(err, &submissionTimeout) {
		return echo.NewHTTPError(http.StatusGatewayTimeout, submissionTimeout.Error())
	}

	var confirmationTimeout failure.ConfirmationTimeout
	if errors.As(err, &confirmationTimeout) {
		return echo.NewHTTPError(http.StatusGatewayTimeout, confirmationTimeout.Error())
	}

	var failedExecution failure.FailedExecution
	if errors.As(err, &failedExecution) {
		return echo.NewHTTPError(http.StatusBadGateway, failedExecution.Error())
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
