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
	"context"

	"github.com/stellar/go/amount"
)

// TokenBalance looks up the balance the account holds in the given token,
// in stroops. The token is either `native` (or `XLM`) for the native asset,
// or an asset code or issuer address for issued assets. The lookup is
// best-effort: missing accounts, missing trustlines and lookup errors all
// yield zero.
func (c *Client) TokenBalance(ctx context.Context, account string, token string) int64 {

	balances, err := c.api.Balances(ctx, account)
	if err != nil {
		c.log.Debug().Err(err).Str("account", account).Msg("could not fetch balances")
		return 0
	}

	native := token == "native" || token == "XLM"
	for _, balance := range balances {
		if native && balance.Type == "native" {
			return parseBalance(balance.Balance)
		}
		if !native && (balance.Code == token || balance.Issuer == token) {
			return parseBalance(balance.Balance)
		}
	}

	return 0
}

func parseBalance(balance string) int64 {
	stroops, err := amount.ParseInt64(balance)
	if err != nil {
		return 0
	}
	return stroops
}
