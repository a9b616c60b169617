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

// Option is a value that may be absent.
type Option struct {
	elem  cltype.CLType
	value Value // nil if absent
}

func None(elem cltype.CLType) Option {
	return Option{elem: elem}
}

func Some(value Value) Option {
	return Option{elem: value.CLType(), value: value}
}

func (o Option) IsSome() bool {
	return o.value != nil
}

// Get returns the contained value, if present.
func (o Option) Get() (Value, bool) {
	return o.value, o.value != nil
}

func (o Option) String() string {
	if o.value == nil {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

func (o Option) CLType() cltype.CLType { return cltype.Option(o.elem) }
func (Option) isValue()                {}

func (o Option) SerializedLength() int {
	if o.value == nil {
		return bytesrepr.OptionTagLength
	}
	return bytesrepr.OptionTagLength + o.value.SerializedLength()
}

func (o Option) AppendBytes(dst []byte) []byte {
	if o.value == nil {
		return append(dst, 0)
	}
	return o.value.AppendBytes(append(dst, 1))
}

func (o Option) URefOffsets() []uint32 {
	if o.value == nil {
		return nil
	}
	return appendShifted(nil, bytesrepr.OptionTagLength, o.value.URefOffsets())
}

func (d *decoder) decodeOption(t cltype.CLType, b []byte) (Value, []byte, error) {
	tag, rest, err := bytesrepr.ReadTag(b, 2)
	if err != nil {
		return nil, nil, err
	}
	if tag == 0 {
		return None(t.Elem()), rest, nil
	}
	value, rest, err := d.decode(t.Elem(), rest)
	if err != nil {
		return nil, nil, err
	}
	return Option{elem: t.Elem(), value: value}, rest, nil
}
