// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package bytesrepr

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/Fantom-foundation/clstate/common"
)

func AppendBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

// ReadBool decodes a single byte boolean. Only 0 and 1 are accepted.
func ReadBool(b []byte) (bool, []byte, error) {
	v, rest, err := ReadU8(b)
	if err != nil {
		return false, nil, err
	}
	switch v {
	case 0:
		return false, rest, nil
	case 1:
		return true, rest, nil
	}
	return false, nil, fmt.Errorf("%w: invalid bool value %d", ErrFormatting, v)
}

func AppendU8(dst []byte, v uint8) []byte {
	return append(dst, v)
}

func ReadU8(b []byte) (uint8, []byte, error) {
	if len(b) < U8SerializedLength {
		return 0, nil, fmt.Errorf("%w: need 1 byte, have 0", ErrEarlyEndOfStream)
	}
	return b[0], b[1:], nil
}

func AppendI32(dst []byte, v int32) []byte {
	return binary.LittleEndian.AppendUint32(dst, uint32(v))
}

func ReadI32(b []byte) (int32, []byte, error) {
	v, rest, err := ReadU32(b)
	return int32(v), rest, err
}

func AppendU32(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

func ReadU32(b []byte) (uint32, []byte, error) {
	data, rest, err := SafeSplitAt(b, U32SerializedLength)
	if err != nil {
		return 0, nil, err
	}
	return binary.LittleEndian.Uint32(data), rest, nil
}

func AppendI64(dst []byte, v int64) []byte {
	return binary.LittleEndian.AppendUint64(dst, uint64(v))
}

func ReadI64(b []byte) (int64, []byte, error) {
	v, rest, err := ReadU64(b)
	return int64(v), rest, err
}

func AppendU64(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}

func ReadU64(b []byte) (uint64, []byte, error) {
	data, rest, err := SafeSplitAt(b, U64SerializedLength)
	if err != nil {
		return 0, nil, err
	}
	return binary.LittleEndian.Uint64(data), rest, nil
}

// AppendLength appends a u32 count prefix. Lengths beyond the u32 range are
// rejected by Serialize before any bytes are produced.
func AppendLength(dst []byte, n int) []byte {
	return AppendU32(dst, uint32(n))
}

// ReadLength decodes a u32 count prefix.
func ReadLength(b []byte) (int, []byte, error) {
	n, rest, err := ReadU32(b)
	if err != nil {
		return 0, nil, err
	}
	length, err := LengthToInt(n)
	if err != nil {
		return 0, nil, err
	}
	return length, rest, nil
}

// BytesSerializedLength is the encoded size of a length prefixed byte sequence.
func BytesSerializedLength(v []byte) int {
	return U32SerializedLength + len(v)
}

// AppendBytes appends a length prefixed byte sequence.
func AppendBytes(dst []byte, v []byte) []byte {
	dst = AppendLength(dst, len(v))
	return append(dst, v...)
}

// ReadBytes decodes a length prefixed byte sequence. The result does not
// alias the input.
func ReadBytes(b []byte) ([]byte, []byte, error) {
	n, rest, err := ReadLength(b)
	if err != nil {
		return nil, nil, err
	}
	data, rest, err := SafeSplitAt(rest, n)
	if err != nil {
		return nil, nil, err
	}
	return bytes.Clone(data), rest, nil
}

// ReadFixedBytes decodes n raw bytes without a prefix.
func ReadFixedBytes(b []byte, n int) ([]byte, []byte, error) {
	data, rest, err := SafeSplitAt(b, n)
	if err != nil {
		return nil, nil, err
	}
	return bytes.Clone(data), rest, nil
}

// Read32 decodes a raw 32 byte array.
func Read32(b []byte) ([32]byte, []byte, error) {
	var res [32]byte
	data, rest, err := SafeSplitAt(b, len(res))
	if err != nil {
		return res, nil, err
	}
	copy(res[:], data)
	return res, rest, nil
}

func ReadHash(b []byte) (common.Hash, []byte, error) {
	h, rest, err := Read32(b)
	return common.Hash(h), rest, err
}

func StringSerializedLength(v string) int {
	return U32SerializedLength + len(v)
}

func AppendString(dst []byte, v string) []byte {
	dst = AppendLength(dst, len(v))
	return append(dst, v...)
}

// ReadString decodes a length prefixed UTF-8 string.
func ReadString(b []byte) (string, []byte, error) {
	n, rest, err := ReadLength(b)
	if err != nil {
		return "", nil, err
	}
	data, rest, err := SafeSplitAt(rest, n)
	if err != nil {
		return "", nil, err
	}
	if !utf8.Valid(data) {
		return "", nil, fmt.Errorf("%w: invalid UTF-8 string", ErrFormatting)
	}
	return string(data), rest, nil
}

// ReadTag decodes a one byte discriminant and checks it is below limit.
func ReadTag(b []byte, limit uint8) (uint8, []byte, error) {
	tag, rest, err := ReadU8(b)
	if err != nil {
		return 0, nil, err
	}
	if tag >= limit {
		return 0, nil, fmt.Errorf("%w: invalid tag %d", ErrFormatting, tag)
	}
	return tag, rest, nil
}
