// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package types implements the values that can be stored in the global
// state: the closed set of CL values, URefs and keys, and the type erased
// CLValue container.
package types

import (
	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/cltype"
)

// CLTyped is implemented by everything that knows its CLType.
type CLTyped interface {
	CLType() cltype.CLType
}

// Value is a value of a CLType. The set of implementations is closed, all of
// them are defined in this package.
type Value interface {
	CLTyped
	bytesrepr.Encoder
	// URefOffsets lists the offset of every URef embedded in the encoding
	// of the value, in encoding order.
	URefOffsets() []uint32
	isValue()
}

// Scalar is the set of value types whose CLType does not depend on their
// content, so it can be derived from the zero value.
type Scalar interface {
	Value
	Bool | I32 | I64 | U8 | U32 | U64 | U128 | U256 | U512 | Unit | String | Key | URef
}

type Bool bool

func (Bool) CLType() cltype.CLType { return cltype.Bool }
func (Bool) SerializedLength() int { return bytesrepr.BoolSerializedLength }
func (v Bool) AppendBytes(dst []byte) []byte { return bytesrepr.AppendBool(dst, bool(v)) }
func (Bool) URefOffsets() []uint32 { return nil }
func (Bool) isValue() {}

func (v *Bool) FromBytes(b []byte) ([]byte, error) {
	res, rest, err := bytesrepr.ReadBool(b)
	*v = Bool(res)
	return rest, err
}

type I32 int32

func (I32) CLType() cltype.CLType { return cltype.I32 }
func (I32) SerializedLength() int { return bytesrepr.I32SerializedLength }
func (v I32) AppendBytes(dst []byte) []byte { return bytesrepr.AppendI32(dst, int32(v)) }
func (I32) URefOffsets() []uint32 { return nil }
func (I32) isValue() {}

func (v *I32) FromBytes(b []byte) ([]byte, error) {
	res, rest, err := bytesrepr.ReadI32(b)
	*v = I32(res)
	return rest, err
}

type I64 int64

func (I64) CLType() cltype.CLType { return cltype.I64 }
func (I64) SerializedLength() int { return bytesrepr.I64SerializedLength }
func (v I64) AppendBytes(dst []byte) []byte { return bytesrepr.AppendI64(dst, int64(v)) }
func (I64) URefOffsets() []uint32 { return nil }
func (I64) isValue() {}

func (v *I64) FromBytes(b []byte) ([]byte, error) {
	res, rest, err := bytesrepr.ReadI64(b)
	*v = I64(res)
	return rest, err
}

type U8 uint8

func (U8) CLType() cltype.CLType { return cltype.U8 }
func (U8) SerializedLength() int { return bytesrepr.U8SerializedLength }
func (v U8) AppendBytes(dst []byte) []byte { return bytesrepr.AppendU8(dst, uint8(v)) }
func (U8) URefOffsets() []uint32 { return nil }
func (U8) isValue() {}

func (v *U8) FromBytes(b []byte) ([]byte, error) {
	res, rest, err := bytesrepr.ReadU8(b)
	*v = U8(res)
	return rest, err
}

type U32 uint32

func (U32) CLType() cltype.CLType { return cltype.U32 }
func (U32) SerializedLength() int { return bytesrepr.U32SerializedLength }
func (v U32) AppendBytes(dst []byte) []byte { return bytesrepr.AppendU32(dst, uint32(v)) }
func (U32) URefOffsets() []uint32 { return nil }
func (U32) isValue() {}

func (v *U32) FromBytes(b []byte) ([]byte, error) {
	res, rest, err := bytesrepr.ReadU32(b)
	*v = U32(res)
	return rest, err
}

type U64 uint64

func (U64) CLType() cltype.CLType { return cltype.U64 }
func (U64) SerializedLength() int { return bytesrepr.U64SerializedLength }
func (v U64) AppendBytes(dst []byte) []byte { return bytesrepr.AppendU64(dst, uint64(v)) }
func (U64) URefOffsets() []uint32 { return nil }
func (U64) isValue() {}

func (v *U64) FromBytes(b []byte) ([]byte, error) {
	res, rest, err := bytesrepr.ReadU64(b)
	*v = U64(res)
	return rest, err
}

// Unit is the empty value, encoded as zero bytes.
type Unit struct{}

func (Unit) CLType() cltype.CLType { return cltype.Unit }
func (Unit) SerializedLength() int { return 0 }
func (Unit) AppendBytes(dst []byte) []byte { return dst }
func (Unit) URefOffsets() []uint32 { return nil }
func (Unit) isValue() {}
func (*Unit) FromBytes(b []byte) ([]byte, error) { return b, nil }

type String string

func (String) CLType() cltype.CLType { return cltype.String }
func (v String) SerializedLength() int {
	return bytesrepr.StringSerializedLength(string(v))
}
func (v String) AppendBytes(dst []byte) []byte { return bytesrepr.AppendString(dst, string(v)) }
func (String) URefOffsets() []uint32 { return nil }
func (String) isValue() {}

func (v *String) FromBytes(b []byte) ([]byte, error) {
	res, rest, err := bytesrepr.ReadString(b)
	*v = String(res)
	return rest, err
}
