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
	"bytes"
	"cmp"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/cltype"
	"github.com/Fantom-foundation/clstate/common"
)

const (
	URefAddrLength       = 32
	URefSerializedLength = URefAddrLength + AccessRightsSerializedLength

	urefPrefix = "uref-"
)

const ErrInvalidFormattedString = common.ConstError("invalid formatted string")

// URef is an unforgeable reference: an address together with the access
// rights granted on it. URefs are values, rights are changed by deriving
// new URefs.
type URef struct {
	addr   [URefAddrLength]byte
	rights AccessRights
}

func NewURef(addr [URefAddrLength]byte, rights AccessRights) URef {
	return URef{addr: addr, rights: rights}
}

func (u URef) Addr() [URefAddrLength]byte {
	return u.addr
}

func (u URef) AccessRights() AccessRights {
	return u.rights
}

func (u URef) WithAccessRights(rights AccessRights) URef {
	return URef{addr: u.addr, rights: rights}
}

// RemoveAccessRights drops all rights.
func (u URef) RemoveAccessRights() URef {
	return u.WithAccessRights(AccessRightsNone)
}

func (u URef) IntoRead() URef {
	return u.WithAccessRights(AccessRightsRead)
}

func (u URef) IntoReadAddWrite() URef {
	return u.WithAccessRights(AccessRightsReadAddWrite)
}

func (u URef) IsReadable() bool {
	return u.rights.IsReadable()
}

func (u URef) IsWriteable() bool {
	return u.rights.IsWriteable()
}

func (u URef) IsAddable() bool {
	return u.rights.IsAddable()
}

// AsString renders the URef as uref-<hex address>-<octal rights>. The form is
// used as a key of named key stores.
func (u URef) AsString() string {
	return fmt.Sprintf("%s%x-%03o", urefPrefix, u.addr[:], uint8(u.rights))
}

// ParseURef parses the output of AsString.
func ParseURef(s string) (URef, error) {
	rest, found := strings.CutPrefix(s, urefPrefix)
	if !found {
		return URef{}, fmt.Errorf("%w: %q lacks prefix %q", ErrInvalidFormattedString, s, urefPrefix)
	}
	addrHex, rightsOctal, found := strings.Cut(rest, "-")
	if !found || len(addrHex) != 2*URefAddrLength || len(rightsOctal) != 3 {
		return URef{}, fmt.Errorf("%w: %q", ErrInvalidFormattedString, s)
	}
	var res URef
	if _, err := hex.Decode(res.addr[:], []byte(addrHex)); err != nil {
		return URef{}, fmt.Errorf("%w: %v", ErrInvalidFormattedString, err)
	}
	rights, err := strconv.ParseUint(rightsOctal, 8, 8)
	if err != nil || !AccessRights(rights).IsValid() {
		return URef{}, fmt.Errorf("%w: invalid access rights %q", ErrInvalidFormattedString, rightsOctal)
	}
	res.rights = AccessRights(rights)
	return res, nil
}

// Compare orders URefs by address, then by access rights.
func (u URef) Compare(other URef) int {
	if c := bytes.Compare(u.addr[:], other.addr[:]); c != 0 {
		return c
	}
	return cmp.Compare(u.rights, other.rights)
}

func (u URef) String() string {
	return fmt.Sprintf("URef(%x, %v)", u.addr[:], u.rights)
}

func (URef) CLType() cltype.CLType { return cltype.URef }
func (URef) SerializedLength() int { return URefSerializedLength }
func (URef) URefOffsets() []uint32 { return []uint32{0} }
func (URef) isValue()              {}

func (u URef) AppendBytes(dst []byte) []byte {
	dst = append(dst, u.addr[:]...)
	return u.rights.AppendBytes(dst)
}

func (u *URef) FromBytes(b []byte) ([]byte, error) {
	addr, rest, err := bytesrepr.Read32(b)
	if err != nil {
		return nil, err
	}
	var rights AccessRights
	if rest, err = rights.FromBytes(rest); err != nil {
		return nil, err
	}
	*u = URef{addr: addr, rights: rights}
	return rest, nil
}
