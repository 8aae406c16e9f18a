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
	"encoding/hex"
	"fmt"

	"github.com/stellar/go/xdr"

	"github.com/lumenkit/blend-agent/failure"
)

// Version identifies the deployed pool contract generation.
type Version string

const (
	VersionV1 Version = "V1"
	VersionV2 Version = "V2"
)

// Known pool contract code hashes per generation.
const (
	wasmHashV1        = "baf978f10efdbcd85747868bef8832845ea6809f7643b67a4ac0cd669327fc2c"
	wasmHashV2        = "a41fc53d6753b6c04eb15b021c55052366a4c8e0e21bc72700f461264ec1350e"
	wasmHashV2Testnet = "6a7c67449f6bad0d5f641cfbdf03f430ec718faa85107ecb0b97df93410d1c43"
)

// Meta describes a deployed lending pool: its contract code hash and the pool
// contract generation derived from it.
type Meta struct {
	Pool     string
	WasmHash string
	Version  Version
}

// PoolMeta resolves the metadata of the pool with the given contract address
// by reading its contract instance from the ledger. Resolved metadata is
// cached; a pool never changes generation in place.
func (c *Client) PoolMeta(ctx context.Context, pool string) (Meta, error) {

	cached, ok := c.cache.Get(pool)
	if ok {
		meta, ok := cached.(Meta)
		if ok {
			return meta, nil
		}
	}

	contract, err := scAddress(pool)
	if err != nil {
		return Meta{}, failure.InvalidInput{
			Description: failure.NewDescription("invalid pool address",
				failure.WithString("address", pool),
				failure.WithErr(err),
			),
		}
	}

	key := xdr.LedgerKey{
		Type: xdr.LedgerEntryTypeContractData,
		ContractData: &xdr.LedgerKeyContractData{
			Contract:   contract,
			Key:        xdr.ScVal{Type: xdr.ScValTypeScvLedgerKeyContractInstance},
			Durability: xdr.ContractDataDurabilityPersistent,
		},
	}
	encoded, err := xdr.MarshalBase64(key)
	if err != nil {
		return Meta{}, fmt.Errorf("could not encode ledger key: %w", err)
	}

	entries, err := c.api.GetLedgerEntries(ctx, []string{encoded})
	if err != nil {
		return Meta{}, fmt.Errorf("could not get contract instance: %w", err)
	}
	if len(entries) == 0 {
		return Meta{}, failure.UnknownContract{
			Description: failure.NewDescription("contract does not exist on ledger",
				failure.WithString("address", pool),
			),
		}
	}

	var data xdr.LedgerEntryData
	err = xdr.SafeUnmarshalBase64(entries[0].XDR, &data)
	if err != nil {
		return Meta{}, fmt.Errorf("could not decode contract instance: %w", err)
	}

	if data.ContractData == nil || data.ContractData.Val.Instance == nil {
		return Meta{}, fmt.Errorf("ledger entry carries no contract instance")
	}
	executable := data.ContractData.Val.Instance.Executable
	if executable.WasmHash == nil {
		return Meta{}, fmt.Errorf("contract instance carries no code hash")
	}

	hash := hex.EncodeToString(executable.WasmHash[:])

	var version Version
	switch hash {
	case wasmHashV1:
		version = VersionV1
	case wasmHashV2, wasmHashV2Testnet:
		version = VersionV2
	default:
		return Meta{}, fmt.Errorf("could not determine pool version (hash: %s)", hash)
	}

	meta := Meta{
		Pool:     pool,
		WasmHash: hash,
		Version:  version,
	}

	_ = c.cache.Set(pool, meta, 1)

	return meta, nil
}
