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
	"fmt"

	"github.com/stellar/go/strkey"
	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"
)

// Helpers for building and decoding the host value representation of
// contract invocation arguments. Contract struct arguments are encoded as
// maps; the host requires map keys in ascending order.

func addressVal(address string) (xdr.ScVal, error) {

	scAddress, err := scAddress(address)
	if err != nil {
		return xdr.ScVal{}, err
	}

	return xdr.ScVal{Type: xdr.ScValTypeScvAddress, Address: &scAddress}, nil
}

func scAddress(address string) (xdr.ScAddress, error) {

	switch {
	case strkey.IsValidEd25519PublicKey(address):
		accountID, err := xdr.AddressToAccountId(address)
		if err != nil {
			return xdr.ScAddress{}, fmt.Errorf("could not convert account address: %w", err)
		}
		return xdr.ScAddress{
			Type:      xdr.ScAddressTypeScAddressTypeAccount,
			AccountId: &accountID,
		}, nil

	case strkey.IsValidContractAddress(address):
		raw, err := strkey.Decode(strkey.VersionByteContract, address)
		if err != nil {
			return xdr.ScAddress{}, fmt.Errorf("could not decode contract address: %w", err)
		}
		var contractID xdr.ContractId
		copy(contractID[:], raw)
		return xdr.ScAddress{
			Type:       xdr.ScAddressTypeScAddressTypeContract,
			ContractId: &contractID,
		}, nil

	default:
		return xdr.ScAddress{}, fmt.Errorf("invalid address (%s)", address)
	}
}

// addressString decodes an address host value back into its strkey string
// form.
func addressString(value xdr.ScVal) (string, error) {

	if value.Type != xdr.ScValTypeScvAddress || value.Address == nil {
		return "", fmt.Errorf("value is not an address (%s)", value.Type)
	}

	address := *value.Address
	switch address.Type {
	case xdr.ScAddressTypeScAddressTypeAccount:
		return address.AccountId.Address(), nil
	case xdr.ScAddressTypeScAddressTypeContract:
		return strkey.Encode(strkey.VersionByteContract, address.ContractId[:])
	default:
		return "", fmt.Errorf("unsupported address type (%d)", address.Type)
	}
}

func symbolVal(symbol string) xdr.ScVal {
	sym := xdr.ScSymbol(symbol)
	return xdr.ScVal{Type: xdr.ScValTypeScvSymbol, Sym: &sym}
}

func stringVal(str string) xdr.ScVal {
	s := xdr.ScString(str)
	return xdr.ScVal{Type: xdr.ScValTypeScvString, Str: &s}
}

func u32Val(value uint32) xdr.ScVal {
	v := xdr.Uint32(value)
	return xdr.ScVal{Type: xdr.ScValTypeScvU32, U32: &v}
}

func boolVal(value bool) xdr.ScVal {
	b := value
	return xdr.ScVal{Type: xdr.ScValTypeScvBool, B: &b}
}

func bytesVal(value []byte) xdr.ScVal {
	b := xdr.ScBytes(value)
	return xdr.ScVal{Type: xdr.ScValTypeScvBytes, Bytes: &b}
}

// i128Val sign-extends the given 64-bit amount into a 128-bit host integer.
func i128Val(value int64) xdr.ScVal {

	var hi int64
	if value < 0 {
		hi = -1
	}

	parts := xdr.Int128Parts{
		Hi: xdr.Int64(hi),
		Lo: xdr.Uint64(value),
	}

	return xdr.ScVal{Type: xdr.ScValTypeScvI128, I128: &parts}
}

func vecVal(values ...xdr.ScVal) xdr.ScVal {
	vec := xdr.ScVec(values)
	vecPtr := &vec
	return xdr.ScVal{Type: xdr.ScValTypeScvVec, Vec: &vecPtr}
}

func mapVal(entries ...xdr.ScMapEntry) xdr.ScVal {
	m := xdr.ScMap(entries)
	mPtr := &m
	return xdr.ScVal{Type: xdr.ScValTypeScvMap, Map: &mPtr}
}

func mapEntry(key string, val xdr.ScVal) xdr.ScMapEntry {
	return xdr.ScMapEntry{Key: symbolVal(key), Val: val}
}

// invoke builds the host function invocation operation for a contract method
// call with the given arguments.
func invoke(contract string, function string, args ...xdr.ScVal) (*txnbuild.InvokeHostFunction, error) {

	contractAddress, err := scAddress(contract)
	if err != nil {
		return nil, fmt.Errorf("could not convert contract address: %w", err)
	}

	op := txnbuild.InvokeHostFunction{
		HostFunction: xdr.HostFunction{
			Type: xdr.HostFunctionTypeHostFunctionTypeInvokeContract,
			InvokeContract: &xdr.InvokeContractArgs{
				ContractAddress: contractAddress,
				FunctionName:    xdr.ScSymbol(function),
				Args:            args,
			},
		},
	}

	return &op, nil
}
