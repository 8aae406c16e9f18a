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
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/rpc/v2/json2"

	"github.com/stellar/go/xdr"
)

// call performs a single JSON-RPC 2.0 round trip against the Soroban RPC
// endpoint, decoding the result into the given value.
func (c *Client) call(ctx context.Context, method string, params interface{}, result interface{}) error {

	body, err := json2.EncodeClientRequest(method, params)
	if err != nil {
		return fmt.Errorf("could not encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("could not execute request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected response status (%d)", res.StatusCode)
	}

	err = json2.DecodeClientResponse(res.Body, result)
	if err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}

	return nil
}

type simulateRequest struct {
	Transaction string `json:"transaction"`
}

type simulateResponse struct {
	Error           string           `json:"error,omitempty"`
	TransactionData string           `json:"transactionData,omitempty"`
	MinResourceFee  int64            `json:"minResourceFee,string,omitempty"`
	Events          []string         `json:"events,omitempty"`
	Results         []simulateResult `json:"results,omitempty"`
	RestorePreamble *restorePreamble `json:"restorePreamble,omitempty"`
	LatestLedger    uint32           `json:"latestLedger"`
}

type simulateResult struct {
	XDR  string   `json:"xdr"`
	Auth []string `json:"auth,omitempty"`
}

type restorePreamble struct {
	TransactionData string `json:"transactionData"`
	MinResourceFee  int64  `json:"minResourceFee,string"`
}

// SimulateTransaction dry-runs the given base64-encoded transaction envelope
// against current ledger state and returns the raw simulation result.
func (c *Client) SimulateTransaction(ctx context.Context, envelope string) (Simulation, error) {

	var res simulateResponse
	err := c.call(ctx, "simulateTransaction", simulateRequest{Transaction: envelope}, &res)
	if err != nil {
		return Simulation{}, fmt.Errorf("could not simulate transaction: %w", err)
	}

	sim := Simulation{
		Error:          res.Error,
		MinResourceFee: res.MinResourceFee,
		Events:         res.Events,
	}

	if res.TransactionData != "" {
		var data xdr.SorobanTransactionData
		err = xdr.SafeUnmarshalBase64(res.TransactionData, &data)
		if err != nil {
			return Simulation{}, fmt.Errorf("could not decode transaction data: %w", err)
		}
		sim.TransactionData = &data
	}

	if len(res.Results) > 0 && res.Results[0].XDR != "" {
		var value xdr.ScVal
		err = xdr.SafeUnmarshalBase64(res.Results[0].XDR, &value)
		if err != nil {
			return Simulation{}, fmt.Errorf("could not decode simulation result: %w", err)
		}
		sim.Result = &value
	}

	if res.RestorePreamble != nil {
		var data xdr.SorobanTransactionData
		err = xdr.SafeUnmarshalBase64(res.RestorePreamble.TransactionData, &data)
		if err != nil {
			return Simulation{}, fmt.Errorf("could not decode restore transaction data: %w", err)
		}
		sim.Restore = &RestorePlan{
			TransactionData: data,
			MinResourceFee:  res.RestorePreamble.MinResourceFee,
		}
	}

	return sim, nil
}

type sendRequest struct {
	Transaction string `json:"transaction"`
}

type sendResponse struct {
	Status                string   `json:"status"`
	Hash                  string   `json:"hash"`
	ErrorResultXDR        string   `json:"errorResultXdr,omitempty"`
	DiagnosticEventsXDR   []string `json:"diagnosticEventsXdr,omitempty"`
	LatestLedger          uint32   `json:"latestLedger"`
	LatestLedgerCloseTime int64    `json:"latestLedgerCloseTime,string"`
}

// SendTransaction dispatches the given base64-encoded signed transaction
// envelope to the network and returns the raw submission result.
func (c *Client) SendTransaction(ctx context.Context, envelope string) (Submission, error) {

	var res sendResponse
	err := c.call(ctx, "sendTransaction", sendRequest{Transaction: envelope}, &res)
	if err != nil {
		return Submission{}, fmt.Errorf("could not send transaction: %w", err)
	}

	sub := Submission{
		Status:           res.Status,
		Hash:             res.Hash,
		ErrorResult:      res.ErrorResultXDR,
		DiagnosticEvents: res.DiagnosticEventsXDR,
	}

	return sub, nil
}

type getTransactionRequest struct {
	Hash string `json:"hash"`
}

type getTransactionResponse struct {
	Status        string `json:"status"`
	EnvelopeXDR   string `json:"envelopeXdr,omitempty"`
	ResultXDR     string `json:"resultXdr,omitempty"`
	ResultMetaXDR string `json:"resultMetaXdr,omitempty"`
	Ledger        uint32 `json:"ledger,omitempty"`
	CreatedAt     int64  `json:"createdAt,string,omitempty"`
}

// GetTransaction queries the inclusion status of the transaction with the
// given hex-encoded hash.
func (c *Client) GetTransaction(ctx context.Context, hash string) (Confirmation, error) {

	var res getTransactionResponse
	err := c.call(ctx, "getTransaction", getTransactionRequest{Hash: hash}, &res)
	if err != nil {
		return Confirmation{}, fmt.Errorf("could not get transaction: %w", err)
	}

	con := Confirmation{
		Status:     res.Status,
		ResultXDR:  res.ResultXDR,
		ResultMeta: res.ResultMetaXDR,
		Ledger:     res.Ledger,
	}

	return con, nil
}
