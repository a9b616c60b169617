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
	"github.com/Fantom-foundation/clstate/cltype"
)

// Decode decodes a value of type t from a prefix of b and returns the
// remainder. Values of type Any can not be delimited and are rejected.
func Decode(t cltype.CLType, b []byte) (Value, []byte, error) {
	var d decoder
	return d.decode(t, b)
}

// decoder carries the zero width element budget shared by all nested
// sequences and tuples of one decoded value.
type decoder struct {
	zeroWidth bytesrepr.ZeroWidthBudget
}

func (d *decoder) decode(t cltype.CLType, b []byte) (Value, []byte, error) {
	switch t.Tag() {
	case cltype.TagBool:
		return decodeScalar[Bool](b)
	case cltype.TagI32:
		return decodeScalar[I32](b)
	case cltype.TagI64:
		return decodeScalar[I64](b)
	case cltype.TagU8:
		return decodeScalar[U8](b)
	case cltype.TagU32:
		return decodeScalar[U32](b)
	case cltype.TagU64:
		return decodeScalar[U64](b)
	case cltype.TagU128:
		return decodeScalar[U128](b)
	case cltype.TagU256:
		return decodeScalar[U256](b)
	case cltype.TagU512:
		return decodeScalar[U512](b)
	case cltype.TagUnit:
		return Unit{}, b, nil
	case cltype.TagString:
		return decodeScalar[String](b)
	case cltype.TagKey:
		return decodeScalar[Key](b)
	case cltype.TagURef:
		return decodeScalar[URef](b)
	case cltype.TagOption:
		return d.decodeOption(t, b)
	case cltype.TagList:
		return d.decodeList(t, b)
	case cltype.TagFixedList:
		return d.decodeFixedList(t, b)
	case cltype.TagResult:
		return d.decodeResult(t, b)
	case cltype.TagMap:
		return d.decodeMap(t, b)
	case cltype.TagTuple1, cltype.TagTuple2, cltype.TagTuple3:
		return d.decodeTuple(t, b)
	case cltype.TagAny:
		return nil, nil, fmt.Errorf("%w: values of type Any have no known length", bytesrepr.ErrFormatting)
	}
	return nil, nil, fmt.Errorf("%w: unknown type %v", bytesrepr.ErrFormatting, t)
}

// DecodeAll decodes a value of type t occupying all of b. Values of type
// Any are returned as Opaque.
func DecodeAll(t cltype.CLType, b []byte) (Value, error) {
	if t.Tag() == cltype.TagAny {
		return NewOpaque(b)
	}
	value, rest, err := Decode(t, b)
	if err != nil {
		return nil, err
	}
	if err := bytesrepr.CheckEmpty(rest); err != nil {
		return nil, err
	}
	return value, nil
}

func decodeScalar[T Value, P interface {
	*T
	bytesrepr.Decoder
}](b []byte) (Value, []byte, error) {
	var value T
	rest, err := P(&value).FromBytes(b)
	if err != nil {
		return nil, nil, err
	}
	return value, rest, nil
}
