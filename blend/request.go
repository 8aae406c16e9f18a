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

package blend

import (
	"github.com/stellar/go/xdr"
)

// RequestType identifies the position change a pool submission requests, as
// defined by the pool contract.
type RequestType uint32

const (
	RequestSupply             RequestType = 0
	RequestWithdraw           RequestType = 1
	RequestSupplyCollateral   RequestType = 2
	RequestWithdrawCollateral RequestType = 3
	RequestBorrow             RequestType = 4
	RequestRepay              RequestType = 5
)

// request is a single position change within a pool submission.
type request struct {
	Asset  string
	Amount int64
	Type   RequestType
}

func (r request) encode() (xdr.ScVal, error) {

	asset, err := addressVal(r.Asset)
	if err != nil {
		return xdr.ScVal{}, err
	}

	return mapVal(
		mapEntry("address", asset),
		mapEntry("amount", i128Val(r.Amount)),
		mapEntry("request_type", u32Val(uint32(r.Type))),
	), nil
}

