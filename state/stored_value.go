// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"fmt"

	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/types"
)

// StoredValueTag identifies the variant of a StoredValue on the wire.
type StoredValueTag uint8

const (
	StoredValueTagCLValue StoredValueTag = iota
	StoredValueTagAccount
	StoredValueTagContract
	numStoredValueTags
)

// StoredValue is a value stored under a key of the global state. It is one
// of a CLValue, an Account or a Contract.
type StoredValue struct {
	tag      StoredValueTag
	clValue  types.CLValue
	account  Account
	contract Contract
}

func NewCLValue(value types.CLValue) StoredValue {
	return StoredValue{tag: StoredValueTagCLValue, clValue: value}
}

func NewAccountValue(account Account) StoredValue {
	return StoredValue{tag: StoredValueTagAccount, account: account}
}

func NewContractValue(contract Contract) StoredValue {
	return StoredValue{tag: StoredValueTagContract, contract: contract}
}

func (v StoredValue) Tag() StoredValueTag {
	return v.tag
}

func (v StoredValue) AsCLValue() (types.CLValue, bool) {
	return v.clValue, v.tag == StoredValueTagCLValue
}

func (v StoredValue) AsAccount() (Account, bool) {
	return v.account, v.tag == StoredValueTagAccount
}

func (v StoredValue) AsContract() (Contract, bool) {
	return v.contract, v.tag == StoredValueTagContract
}

func (v StoredValue) Equal(other StoredValue) bool {
	if v.tag != other.tag {
		return false
	}
	switch v.tag {
	case StoredValueTagCLValue:
		return v.clValue.Equal(other.clValue)
	case StoredValueTagAccount:
		return v.account.Equal(other.account)
	}
	return v.contract.Equal(other.contract)
}

func (v StoredValue) String() string {
	switch v.tag {
	case StoredValueTagCLValue:
		return fmt.Sprintf("StoredValue::CLValue(%v)", v.clValue)
	case StoredValueTagAccount:
		return fmt.Sprintf("StoredValue::%v", v.account)
	}
	return fmt.Sprintf("StoredValue::%v", v.contract)
}

func (v StoredValue) payload() bytesrepr.Encoder {
	switch v.tag {
	case StoredValueTagCLValue:
		return v.clValue
	case StoredValueTagAccount:
		return v.account
	}
	return v.contract
}

func (v StoredValue) SerializedLength() int {
	return bytesrepr.U8SerializedLength + v.payload().SerializedLength()
}

func (v StoredValue) AppendBytes(dst []byte) []byte {
	return v.payload().AppendBytes(append(dst, byte(v.tag)))
}

func (v *StoredValue) FromBytes(b []byte) ([]byte, error) {
	tag, rest, err := bytesrepr.ReadTag(b, uint8(numStoredValueTags))
	if err != nil {
		return nil, err
	}
	res := StoredValue{tag: StoredValueTag(tag)}
	switch res.tag {
	case StoredValueTagCLValue:
		rest, err = res.clValue.FromBytes(rest)
	case StoredValueTagAccount:
		rest, err = res.account.FromBytes(rest)
	case StoredValueTagContract:
		rest, err = res.contract.FromBytes(rest)
	}
	if err != nil {
		return nil, err
	}
	*v = res
	return rest, nil
}
