// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package types

import (
	"fmt"

	"github.com/Fantom-foundation/clstate/bytesrepr"
)

// AccessRights is the set of operations a URef permits on the data it
// addresses.
type AccessRights uint8

const (
	AccessRightsNone         AccessRights = 0
	AccessRightsRead         AccessRights = 1
	AccessRightsWrite        AccessRights = 2
	AccessRightsAdd          AccessRights = 4
	AccessRightsReadWrite                 = AccessRightsRead | AccessRightsWrite
	AccessRightsReadAdd                   = AccessRightsRead | AccessRightsAdd
	AccessRightsAddWrite                  = AccessRightsAdd | AccessRightsWrite
	AccessRightsReadAddWrite              = AccessRightsRead | AccessRightsAdd | AccessRightsWrite
)

const AccessRightsSerializedLength = 1

func (a AccessRights) IsReadable() bool {
	return a&AccessRightsRead == AccessRightsRead
}

func (a AccessRights) IsWriteable() bool {
	return a&AccessRightsWrite == AccessRightsWrite
}

func (a AccessRights) IsAddable() bool {
	return a&AccessRightsAdd == AccessRightsAdd
}

// IsValid reports whether only READ, WRITE and ADD bits are set.
func (a AccessRights) IsValid() bool {
	return a&^AccessRightsReadAddWrite == 0
}

func (a AccessRights) String() string {
	switch a {
	case AccessRightsNone:
		return "NONE"
	case AccessRightsRead:
		return "READ"
	case AccessRightsWrite:
		return "WRITE"
	case AccessRightsAdd:
		return "ADD"
	case AccessRightsReadAdd:
		return "READ_ADD"
	case AccessRightsReadWrite:
		return "READ_WRITE"
	case AccessRightsAddWrite:
		return "ADD_WRITE"
	case AccessRightsReadAddWrite:
		return "READ_ADD_WRITE"
	}
	return "UNKNOWN"
}

func (a AccessRights) SerializedLength() int {
	return AccessRightsSerializedLength
}

func (a AccessRights) AppendBytes(dst []byte) []byte {
	return append(dst, byte(a))
}

func (a *AccessRights) FromBytes(b []byte) ([]byte, error) {
	bits, rest, err := bytesrepr.ReadU8(b)
	if err != nil {
		return nil, err
	}
	res := AccessRights(bits)
	if !res.IsValid() {
		return nil, fmt.Errorf("%w: invalid access rights %#02x", bytesrepr.ErrFormatting, bits)
	}
	*a = res
	return rest, nil
}
