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
	"strings"

	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/cltype"
)

// List is a variable length sequence of values of one type.
type List struct {
	elem  cltype.CLType
	items []Value
}

// NewList creates a list of the given element type. All items must be of
// that type.
func NewList(elem cltype.CLType, items ...Value) (List, error) {
	if err := checkTypes(elem, items); err != nil {
		return List{}, err
	}
	return List{elem: elem, items: slices.Clone(items)}, nil
}

func (l List) Elem() cltype.CLType {
	return l.elem
}

func (l List) Len() int {
	return len(l.items)
}

func (l List) At(i int) Value {
	return l.items[i]
}

func (l List) Items() []Value {
	return slices.Clone(l.items)
}

func (l List) String() string {
	return formatSequence("[", l.items, "]")
}

func (l List) CLType() cltype.CLType { return cltype.List(l.elem) }
func (List) isValue()                {}

func (l List) SerializedLength() int {
	return bytesrepr.U32SerializedLength + sumLengths(l.items)
}

func (l List) AppendBytes(dst []byte) []byte {
	return appendAll(bytesrepr.AppendLength(dst, len(l.items)), l.items)
}

func (l List) URefOffsets() []uint32 {
	return sequenceOffsets(bytesrepr.U32SerializedLength, l.items)
}

// FixedList is a sequence whose length is part of its type. Byte arrays,
// fixed lists of U8, are encoded as raw bytes without a length prefix.
type FixedList struct {
	elem  cltype.CLType
	items []Value
}

func NewFixedList(elem cltype.CLType, items ...Value) (FixedList, error) {
	if err := checkTypes(elem, items); err != nil {
		return FixedList{}, err
	}
	return FixedList{elem: elem, items: slices.Clone(items)}, nil
}

// NewByteArray creates a fixed list of U8 holding the given bytes.
func NewByteArray(data []byte) FixedList {
	items := make([]Value, len(data))
	for i, b := range data {
		items[i] = U8(b)
	}
	return FixedList{elem: cltype.U8, items: items}
}

func (l FixedList) Elem() cltype.CLType {
	return l.elem
}

func (l FixedList) Len() int {
	return len(l.items)
}

func (l FixedList) At(i int) Value {
	return l.items[i]
}

func (l FixedList) Items() []Value {
	return slices.Clone(l.items)
}

func (l FixedList) String() string {
	return formatSequence("[", l.items, "]")
}

func (l FixedList) isByteArray() bool {
	return l.elem.Tag() == cltype.TagU8
}

func (l FixedList) CLType() cltype.CLType { return cltype.FixedList(l.elem, uint32(len(l.items))) }
func (FixedList) isValue()                {}

func (l FixedList) SerializedLength() int {
	if l.isByteArray() {
		return len(l.items)
	}
	return bytesrepr.U32SerializedLength + sumLengths(l.items)
}

func (l FixedList) AppendBytes(dst []byte) []byte {
	if !l.isByteArray() {
		dst = bytesrepr.AppendLength(dst, len(l.items))
	}
	return appendAll(dst, l.items)
}

func (l FixedList) URefOffsets() []uint32 {
	if l.isByteArray() {
		return nil
	}
	return sequenceOffsets(bytesrepr.U32SerializedLength, l.items)
}

func sumLengths(items []Value) int {
	size := 0
	for _, item := range items {
		size += item.SerializedLength()
	}
	return size
}

func appendAll(dst []byte, items []Value) []byte {
	for _, item := range items {
		dst = item.AppendBytes(dst)
	}
	return dst
}

// sequenceOffsets collects the uref offsets of consecutively encoded items
// starting at the given position.
func sequenceOffsets(start int, items []Value) []uint32 {
	var res []uint32
	pos := start
	for _, item := range items {
		res = appendShifted(res, pos, item.URefOffsets())
		pos += item.SerializedLength()
	}
	return res
}

func formatSequence(prefix string, items []Value, suffix string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprint(item)
	}
	return prefix + strings.Join(parts, ", ") + suffix
}

func (d *decoder) decodeList(t cltype.CLType, b []byte) (Value, []byte, error) {
	n, rest, err := bytesrepr.ReadLength(b)
	if err != nil {
		return nil, nil, err
	}
	items, rest, err := d.decodeItems(t.Elem(), n, rest)
	if err != nil {
		return nil, nil, err
	}
	return List{elem: t.Elem(), items: items}, rest, nil
}

func (d *decoder) decodeFixedList(t cltype.CLType, b []byte) (Value, []byte, error) {
	n, err := bytesrepr.LengthToInt(t.Len())
	if err != nil {
		return nil, nil, err
	}
	if t.Elem().Tag() == cltype.TagU8 {
		data, rest, err := bytesrepr.SafeSplitAt(b, n)
		if err != nil {
			return nil, nil, err
		}
		return NewByteArray(data), rest, nil
	}
	count, rest, err := bytesrepr.ReadLength(b)
	if err != nil {
		return nil, nil, err
	}
	if count != n {
		return nil, nil, fmt.Errorf("%w: fixed list of length %d, want %d", bytesrepr.ErrFormatting, count, n)
	}
	items, rest, err := d.decodeItems(t.Elem(), n, rest)
	if err != nil {
		return nil, nil, err
	}
	return FixedList{elem: t.Elem(), items: items}, rest, nil
}

// decodeItems decodes n values into a growable slice. Nothing is returned
// unless all of them decode. Elements consuming no input are charged to the
// zero width budget, so the result stays bounded by the input size.
func (d *decoder) decodeItems(elem cltype.CLType, n int, b []byte) ([]Value, []byte, error) {
	items := make([]Value, 0, min(n, len(b)))
	for i := 0; i < n; i++ {
		item, rest, err := d.decode(elem, b)
		if err != nil {
			return nil, nil, err
		}
		if err := d.zeroWidth.Charge(b, rest); err != nil {
			return nil, nil, err
		}
		items = append(items, item)
		b = rest
	}
	return items, b, nil
}
