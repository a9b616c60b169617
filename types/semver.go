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
	"cmp"
	"fmt"

	"github.com/Fantom-foundation/clstate/bytesrepr"
)

const SemVerSerializedLength = 3 * bytesrepr.U32SerializedLength

// SemVer is a semantic version without pre-release or build metadata.
type SemVer struct {
	Major, Minor, Patch uint32
}

func NewSemVer(major, minor, patch uint32) SemVer {
	return SemVer{Major: major, Minor: minor, Patch: patch}
}

func (v SemVer) Compare(other SemVer) int {
	if res := cmp.Compare(v.Major, other.Major); res != 0 {
		return res
	}
	if res := cmp.Compare(v.Minor, other.Minor); res != 0 {
		return res
	}
	return cmp.Compare(v.Patch, other.Patch)
}

func (v SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (SemVer) SerializedLength() int {
	return SemVerSerializedLength
}

func (v SemVer) AppendBytes(dst []byte) []byte {
	dst = bytesrepr.AppendU32(dst, v.Major)
	dst = bytesrepr.AppendU32(dst, v.Minor)
	return bytesrepr.AppendU32(dst, v.Patch)
}

func (v *SemVer) FromBytes(b []byte) ([]byte, error) {
	var res SemVer
	var err error
	if res.Major, b, err = bytesrepr.ReadU32(b); err != nil {
		return nil, err
	}
	if res.Minor, b, err = bytesrepr.ReadU32(b); err != nil {
		return nil, err
	}
	if res.Patch, b, err = bytesrepr.ReadU32(b); err != nil {
		return nil, err
	}
	*v = res
	return b, nil
}

// ProtocolVersion is the version of the rules a state was written under.
type ProtocolVersion struct {
	SemVer
}

func NewProtocolVersion(major, minor, patch uint32) ProtocolVersion {
	return ProtocolVersion{NewSemVer(major, minor, patch)}
}

func (v ProtocolVersion) Compare(other ProtocolVersion) int {
	return v.SemVer.Compare(other.SemVer)
}
