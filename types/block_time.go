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
	"github.com/Fantom-foundation/clstate/bytesrepr"
)

// BlockTime is a block timestamp in milliseconds.
type BlockTime uint64

const BlockTimeSerializedLength = bytesrepr.U64SerializedLength

// SaturatingSub returns t - other, or zero if other is later than t.
func (t BlockTime) SaturatingSub(other BlockTime) BlockTime {
	if other > t {
		return 0
	}
	return t - other
}

func (BlockTime) SerializedLength() int {
	return BlockTimeSerializedLength
}

func (t BlockTime) AppendBytes(dst []byte) []byte {
	return bytesrepr.AppendU64(dst, uint64(t))
}

func (t *BlockTime) FromBytes(b []byte) ([]byte, error) {
	v, rest, err := bytesrepr.ReadU64(b)
	if err != nil {
		return nil, err
	}
	*t = BlockTime(v)
	return rest, nil
}

// Weight is the voting weight of an associated key.
type Weight uint8

const WeightSerializedLength = bytesrepr.U8SerializedLength

func (Weight) SerializedLength() int {
	return WeightSerializedLength
}

func (w Weight) AppendBytes(dst []byte) []byte {
	return append(dst, byte(w))
}

func (w *Weight) FromBytes(b []byte) ([]byte, error) {
	v, rest, err := bytesrepr.ReadU8(b)
	if err != nil {
		return nil, err
	}
	*w = Weight(v)
	return rest, nil
}
