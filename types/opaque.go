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
	"slices"

	"github.com/Fantom-foundation/clstate/cltype"
)

// Opaque is a payload of type Any. Its structure is unknown, so it is kept
// as raw bytes together with the offsets of the URefs it is known to hold.
type Opaque struct {
	data        []byte
	urefOffsets []uint32
}

// NewOpaque wraps raw bytes. Every offset must leave room for a full URef.
func NewOpaque(data []byte, urefOffsets ...uint32) (Opaque, error) {
	for _, offset := range urefOffsets {
		if uint64(offset)+URefSerializedLength > uint64(len(data)) {
			return Opaque{}, fmt.Errorf("%w: offset %d in %d bytes", ErrInvalidURefOffset, offset, len(data))
		}
	}
	return Opaque{data: slices.Clone(data), urefOffsets: slices.Clone(urefOffsets)}, nil
}

func (o Opaque) Bytes() []byte {
	return slices.Clone(o.data)
}

func (o Opaque) String() string {
	return fmt.Sprintf("Opaque(%x)", o.data)
}

func (Opaque) CLType() cltype.CLType           { return cltype.Any }
func (o Opaque) SerializedLength() int         { return len(o.data) }
func (o Opaque) AppendBytes(dst []byte) []byte { return append(dst, o.data...) }
func (o Opaque) URefOffsets() []uint32         { return slices.Clone(o.urefOffsets) }
func (Opaque) isValue()                        {}
