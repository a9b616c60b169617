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
	"github.com/Fantom-foundation/clstate/cltype"
)

// Tuple1 is a one element tuple. Tuples are encoded as the concatenation of
// their members. Tuples are created with their constructors; zero values
// have no members and are rejected by FromT.
type Tuple1 struct {
	a Value
}

func NewTuple1(a Value) Tuple1 {
	return Tuple1{a: a}
}

func (t Tuple1) First() Value { return t.a }

func (t Tuple1) String() string                { return formatSequence("(", t.members(), ",)") }
func (t Tuple1) CLType() cltype.CLType         { return cltype.Tuple1(t.a.CLType()) }
func (t Tuple1) SerializedLength() int         { return sumLengths(t.members()) }
func (t Tuple1) AppendBytes(dst []byte) []byte { return appendAll(dst, t.members()) }
func (t Tuple1) URefOffsets() []uint32         { return sequenceOffsets(0, t.members()) }
func (Tuple1) isValue()                        {}

func (t Tuple1) members() []Value {
	return []Value{t.a}
}

type Tuple2 struct {
	a, b Value
}

func NewTuple2(a, b Value) Tuple2 {
	return Tuple2{a: a, b: b}
}

func (t Tuple2) First() Value  { return t.a }
func (t Tuple2) Second() Value { return t.b }

func (t Tuple2) String() string                { return formatSequence("(", t.members(), ")") }
func (t Tuple2) CLType() cltype.CLType         { return cltype.Tuple2(t.a.CLType(), t.b.CLType()) }
func (t Tuple2) SerializedLength() int         { return sumLengths(t.members()) }
func (t Tuple2) AppendBytes(dst []byte) []byte { return appendAll(dst, t.members()) }
func (t Tuple2) URefOffsets() []uint32         { return sequenceOffsets(0, t.members()) }
func (Tuple2) isValue()                        {}

func (t Tuple2) members() []Value {
	return []Value{t.a, t.b}
}

type Tuple3 struct {
	a, b, c Value
}

func NewTuple3(a, b, c Value) Tuple3 {
	return Tuple3{a: a, b: b, c: c}
}

func (t Tuple3) First() Value  { return t.a }
func (t Tuple3) Second() Value { return t.b }
func (t Tuple3) Third() Value  { return t.c }

func (t Tuple3) String() string { return formatSequence("(", t.members(), ")") }
func (t Tuple3) CLType() cltype.CLType {
	return cltype.Tuple3(t.a.CLType(), t.b.CLType(), t.c.CLType())
}
func (t Tuple3) SerializedLength() int         { return sumLengths(t.members()) }
func (t Tuple3) AppendBytes(dst []byte) []byte { return appendAll(dst, t.members()) }
func (t Tuple3) URefOffsets() []uint32         { return sequenceOffsets(0, t.members()) }
func (Tuple3) isValue()                        {}

func (t Tuple3) members() []Value {
	return []Value{t.a, t.b, t.c}
}

func (d *decoder) decodeTuple(t cltype.CLType, b []byte) (Value, []byte, error) {
	members := t.Members()
	values, rest, err := d.decodeMembers(members, b)
	if err != nil {
		return nil, nil, err
	}
	// nested zero width tuples count against the same budget as list items
	if err := d.zeroWidth.Charge(b, rest); err != nil {
		return nil, nil, err
	}
	switch len(values) {
	case 1:
		return NewTuple1(values[0]), rest, nil
	case 2:
		return NewTuple2(values[0], values[1]), rest, nil
	}
	return NewTuple3(values[0], values[1], values[2]), rest, nil
}

func (d *decoder) decodeMembers(members []cltype.CLType, b []byte) ([]Value, []byte, error) {
	values := make([]Value, 0, len(members))
	for _, member := range members {
		value, rest, err := d.decode(member, b)
		if err != nil {
			return nil, nil, err
		}
		values = append(values, value)
		b = rest
	}
	return values, b, nil
}
