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

package mocks

import (
	"encoding/hex"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/stellar/go/txnbuild"
	"github.com/stellar/go/xdr"
)

// Global fixtures usable across tests. They are non-nil valid values for the
// types commonly needed when testing agent components.
var (
	NoopLogger = zerolog.New(io.Discard)

	GenericError = errors.New("dummy error")

	GenericAddress = "GAIH3ULLFQ4DGSECF2AR555KZ4KNDGEKN4AFI4SU2M7B43MGK3QJZNSR"

	GenericContract = "CDIE73IJJKOWXWCPU5GWQ745FUKWCSH3YKZRF5IQW7GE3G7YAZ773MYK"

	GenericHash = "c2bbd6a8c2da92e61a9cb976a71e499989dcac24e2ed4118f3eb2103f78b4a5c"

	GenericSequence = int64(414234)

	GenericSorobanData = xdr.SorobanTransactionData{
		Resources: xdr.SorobanResources{
			Instructions: 4200,
		},
		ResourceFee: 100,
	}
)

// GenericAccount returns a fresh account snapshot for the generic address.
func GenericAccount() txnbuild.SimpleAccount {
	return txnbuild.SimpleAccount{
		AccountID: GenericAddress,
		Sequence:  GenericSequence,
	}
}

// GenericOperations returns the given number of valid contract invocation
// operations.
func GenericOperations(number int) []txnbuild.Operation {

	var contractID xdr.ContractId
	copy(contractID[:], []byte(`generic-contract-id-but-32-bytes`))

	operations := make([]txnbuild.Operation, 0, number)
	for i := 0; i < number; i++ {
		operation := txnbuild.InvokeHostFunction{
			HostFunction: xdr.HostFunction{
				Type: xdr.HostFunctionTypeHostFunctionTypeInvokeContract,
				InvokeContract: &xdr.InvokeContractArgs{
					ContractAddress: xdr.ScAddress{
						Type:       xdr.ScAddressTypeScAddressTypeContract,
						ContractId: &contractID,
					},
					FunctionName: "generic_fn",
				},
			},
			SourceAccount: GenericAddress,
		}
		operations = append(operations, &operation)
	}

	return operations
}

// GenericResultMeta returns a base64-encoded transaction result meta carrying
// the given smart contract return value.
func GenericResultMeta(value xdr.ScVal) string {

	meta := xdr.TransactionMeta{
		V: 3,
		V3: &xdr.TransactionMetaV3{
			SorobanMeta: &xdr.SorobanTransactionMeta{
				ReturnValue: value,
			},
		},
	}

	encoded, err := xdr.MarshalBase64(meta)
	if err != nil {
		panic(err)
	}

	return encoded
}

// GenericScSymbol returns the given string as a smart contract symbol value.
func GenericScSymbol(symbol string) xdr.ScVal {
	sym := xdr.ScSymbol(symbol)
	return xdr.ScVal{Type: xdr.ScValTypeScvSymbol, Sym: &sym}
}

// GenericInstanceEntry returns a base64-encoded contract instance ledger
// entry whose contract code hash is the given hex-encoded hash.
func GenericInstanceEntry(wasmHash string) string {

	raw, err := hex.DecodeString(wasmHash)
	if err != nil {
		panic(err)
	}
	var hash xdr.Hash
	copy(hash[:], raw)

	var contractID xdr.ContractId
	copy(contractID[:], []byte(`generic-contract-id-but-32-bytes`))

	data := xdr.LedgerEntryData{
		Type: xdr.LedgerEntryTypeContractData,
		ContractData: &xdr.ContractDataEntry{
			Contract: xdr.ScAddress{
				Type:       xdr.ScAddressTypeScAddressTypeContract,
				ContractId: &contractID,
			},
			Key:        xdr.ScVal{Type: xdr.ScValTypeScvLedgerKeyContractInstance},
			Durability: xdr.ContractDataDurabilityPersistent,
			Val: xdr.ScVal{
				Type: xdr.ScValTypeScvContractInstance,
				Instance: &xdr.ScContractInstance{
					Executable: xdr.ContractExecutable{
						Type:     xdr.ContractExecutableTypeContractExecutableWasm,
						WasmHash: &hash,
					},
				},
			},
		},
	}

	encoded, err := xdr.MarshalBase64(data)
	if err != nil {
		panic(err)
	}

	return encoded
}
