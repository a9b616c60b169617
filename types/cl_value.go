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
	"fmt"
	"slices"

	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/cltype"
)

// CLValue is a type erased value: the encoding of a Value together with its
// CLType and the positions of the URefs embedded in the encoding. The zero
// value is not valid; use FromT or decode one with FromBytes.
type CLValue struct {
	clType      cltype.CLType
	bytes       []byte
	urefOffsets []uint32
}

// FromT captures the encoding of the given value. It fails for values that
// could not be decoded again: values with missing members, composites with
// a nested Any member, and encodings exceeding the size limit.
func FromT(value Value) (CLValue, error) {
	if err := checkComplete(value); err != nil {
		return CLValue{}, &SerializationError{Err: fmt.Errorf("%w: %w", err, bytesrepr.ErrFormatting)}
	}
	if t := value.CLType(); t.ContainsNestedAny() {
		return CLValue{}, &SerializationError{Err: fmt.Errorf("%w: %w: %v", ErrNestedAny, bytesrepr.ErrFormatting, t)}
	}
	data, err := bytesrepr.Serialize(value)
	if err != nil {
		return CLValue{}, &SerializationError{Err: err}
	}
	return CLValue{
		clType:      value.CLType(),
		bytes:       data,
		urefOffsets: value.URefOffsets(),
	}, nil
}

// IntoT decodes the contained value, which must be of the expected type.
func (v CLValue) IntoT(expected cltype.CLType) (Value, error) {
	if !v.clType.Equal(expected) {
		return nil, &TypeMismatch{Expected: expected, Found: v.clType}
	}
	res, err := DecodeAll(v.clType, v.bytes)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}
	return res, nil
}

// Into decodes the contained value as the Go type T.
func Into[T Value](v CLValue, expected cltype.CLType) (T, error) {
	var zero T
	res, err := v.IntoT(expected)
	if err != nil {
		return zero, err
	}
	typed, ok := res.(T)
	if !ok {
		return zero, &TypeMismatch{Expected: expected, Found: res.CLType()}
	}
	return typed, nil
}

// IntoPrimitive decodes a value whose type follows from T alone.
func IntoPrimitive[T Scalar](v CLValue) (T, error) {
	var zero T
	return Into[T](v, zero.CLType())
}

func (v CLValue) CLType() cltype.CLType {
	return v.clType
}

// Bytes returns a copy of the encoded value.
func (v CLValue) Bytes() []byte {
	return slices.Clone(v.bytes)
}

func (v CLValue) URefOffsets() []uint32 {
	return slices.Clone(v.urefOffsets)
}

// ContainedURefs returns the URefs embedded in the value in encoding order.
// Only the URefs are decoded; the rest of the payload is not inspected.
func (v CLValue) ContainedURefs() ([]URef, error) {
	res := make([]URef, 0, len(v.urefOffsets))
	for _, offset := range v.urefOffsets {
		if uint64(offset) > uint64(len(v.bytes)) {
			return nil, fmt.Errorf("%w: offset %d in %d bytes", ErrInvalidURefOffset, offset, len(v.bytes))
		}
		var uref URef
		if _, err := uref.FromBytes(v.bytes[offset:]); err != nil {
			return nil, &SerializationError{Err: err}
		}
		res = append(res, uref)
	}
	return res, nil
}

func (v CLValue) Equal(other CLValue) bool {
	return v.clType.Equal(other.clType) &&
		bytes.Equal(v.bytes, other.bytes) &&
		slices.Equal(v.urefOffsets, other.urefOffsets)
}

func (v CLValue) String() string {
	return fmt.Sprintf("CLValue(%v, 0x%x)", v.clType, v.bytes)
}

func (v CLValue) SerializedLength() int {
	return bytesrepr.BytesSerializedLength(v.bytes) + v.clType.SerializedLength()
}

func (v CLValue) AppendBytes(dst []byte) []byte {
	dst = bytesrepr.AppendBytes(dst, v.bytes)
	return v.clType.AppendBytes(dst)
}

// FromBytes decodes a CLValue. The payload is checked against the declared
// type and the URef offsets are recovered from the decoded value. Payloads of
// type Any are kept as they are.
func (v *CLValue) FromBytes(b []byte) ([]byte, error) {
	data, rest, err := bytesrepr.ReadBytes(b)
	if err != nil {
		return nil, err
	}
	clType, rest, err := cltype.Read(rest)
	if err != nil {
		return nil, err
	}
	value, err := DecodeAll(clType, data)
	if err != nil {
		return nil, err
	}
	*v = CLValue{clType: clType, bytes: data, urefOffsets: value.URefOffsets()}
	return rest, nil
}
