// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package bytesrepr implements the deterministic binary representation of
// values stored in the global state. All integers are little endian, all
// variable sized sequences carry a 4 byte u32 count prefix.
package bytesrepr

import (
	"fmt"
	"math"
)

const (
	BoolSerializedLength = 1
	U8SerializedLength   = 1
	I32SerializedLength  = 4
	U32SerializedLength  = 4
	I64SerializedLength  = 8
	U64SerializedLength  = 8
	U128SerializedLength = 16
	U256SerializedLength = 32
	U512SerializedLength = 64

	OptionTagLength = 1
	ResultTagLength = 1
)

// MaxSerializedLength is the largest encoding representable with a u32 length field.
const MaxSerializedLength = math.MaxUint32

// MaxZeroWidthElements bounds the number of decoded sequence elements that
// consume no input. Such elements are not limited by the input size, so
// larger counts are rejected with ErrOutOfMemory.
const MaxZeroWidthElements = 1 << 16

// maxLength is the largest count prefix that fits an int.
var maxLength uint64 = math.MaxInt

// LengthToInt converts a decoded u32 count to an int. Counts that do not fit
// an int on the current platform are rejected with ErrFormatting.
func LengthToInt(n uint32) (int, error) {
	if uint64(n) > maxLength {
		return 0, fmt.Errorf("%w: length %d exceeds the platform int range", ErrFormatting, n)
	}
	return int(n), nil
}

// ZeroWidthBudget tracks decoded elements that consumed no input. The zero
// value is ready to use.
type ZeroWidthBudget struct {
	used int
}

// Charge records the decoding of an element from before to after. It fails
// once more than MaxZeroWidthElements elements consumed no input.
func (z *ZeroWidthBudget) Charge(before, after []byte) error {
	if len(after) != len(before) {
		return nil
	}
	z.used++
	if z.used > MaxZeroWidthElements {
		return fmt.Errorf("%w: more than %d zero width elements", ErrOutOfMemory, MaxZeroWidthElements)
	}
	return nil
}

// Encoder is implemented by values with a canonical binary encoding.
// AppendBytes must append exactly SerializedLength() bytes.
type Encoder interface {
	SerializedLength() int
	AppendBytes(dst []byte) []byte
}

// Decoder is implemented by pointers to values that can be parsed from a
// prefix of the input. It returns the unconsumed remainder.
type Decoder interface {
	FromBytes(b []byte) ([]byte, error)
}

// Serialize encodes the given value. It fails only if the encoding would
// exceed MaxSerializedLength.
func Serialize(value Encoder) ([]byte, error) {
	size := value.SerializedLength()
	if err := CheckSize(size); err != nil {
		return nil, err
	}
	return value.AppendBytes(make([]byte, 0, size)), nil
}

// Deserialize decodes a value that must span the full input.
func Deserialize(b []byte, value Decoder) error {
	rest, err := value.FromBytes(b)
	if err != nil {
		return err
	}
	return CheckEmpty(rest)
}

// CheckSize verifies that an encoding of the given size fits the u32 limit.
func CheckSize(size int) error {
	if size < 0 || uint64(size) > MaxSerializedLength {
		return fmt.Errorf("%w: serialized length %d exceeds %d", ErrOutOfMemory, size, uint64(MaxSerializedLength))
	}
	return nil
}

// CheckEmpty fails with ErrLeftOverBytes if rest is not empty.
func CheckEmpty(rest []byte) error {
	if len(rest) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrLeftOverBytes, len(rest))
	}
	return nil
}

// SafeSplitAt splits the first n bytes off b.
func SafeSplitAt(b []byte, n int) ([]byte, []byte, error) {
	if n < 0 || n > len(b) {
		return nil, nil, fmt.Errorf("%w: need %d bytes, have %d", ErrEarlyEndOfStream, n, len(b))
	}
	return b[:n], b[n:], nil
}
