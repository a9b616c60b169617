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
	"cmp"
	"strings"
)

// Compare defines the total order used for map keys. Values of different
// types are ordered by their type tag. Within a type, numbers compare by
// magnitude, strings and opaque payloads by bytes, None before Some, Ok
// before Err, and sequences lexicographically.
func Compare(a, b Value) int {
	if res := cmp.Compare(a.CLType().Tag(), b.CLType().Tag()); res != 0 {
		return res
	}
	switch x := a.(type) {
	case Bool:
		return compareBool(bool(x), bool(b.(Bool)))
	case I32:
		return cmp.Compare(x, b.(I32))
	case I64:
		return cmp.Compare(x, b.(I64))
	case U8:
		return cmp.Compare(x, b.(U8))
	case U32:
		return cmp.Compare(x, b.(U32))
	case U64:
		return cmp.Compare(x, b.(U64))
	case U128:
		y := b.(U128)
		return x.v.Cmp(&y.v)
	case U256:
		y := b.(U256)
		return x.v.Cmp(&y.v)
	case U512:
		y := b.(U512)
		if res := x.hi.Cmp(&y.hi); res != 0 {
			return res
		}
		return x.lo.Cmp(&y.lo)
	case Unit:
		return 0
	case String:
		return strings.Compare(string(x), string(b.(String)))
	case Key:
		return x.Compare(b.(Key))
	case URef:
		return x.Compare(b.(URef))
	case Option:
		y := b.(Option)
		switch {
		case x.value == nil && y.value == nil:
			return 0
		case x.value == nil:
			return -1
		case y.value == nil:
			return 1
		}
		return Compare(x.value, y.value)
	case Result:
		y := b.(Result)
		if x.isOk != y.isOk {
			if x.isOk {
				return -1
			}
			return 1
		}
		return Compare(x.value, y.value)
	case List:
		return compareSequence(x.items, b.(List).items)
	case FixedList:
		return compareSequence(x.items, b.(FixedList).items)
	case Map:
		return compareEntries(x.entries, b.(Map).entries)
	case Tuple1:
		return compareSequence(x.members(), b.(Tuple1).members())
	case Tuple2:
		return compareSequence(x.members(), b.(Tuple2).members())
	case Tuple3:
		return compareSequence(x.members(), b.(Tuple3).members())
	case Opaque:
		return bytes.Compare(x.data, b.(Opaque).data)
	}
	panic("unsupported value type " + a.CLType().String())
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	}
	return 1
}

func compareSequence(a, b []Value) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if res := Compare(a[i], b[i]); res != 0 {
			return res
		}
	}
	return cmp.Compare(len(a), len(b))
}

func compareEntries(a, b []MapEntry) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if res := Compare(a[i].Key, b[i].Key); res != 0 {
			return res
		}
		if res := Compare(a[i].Value, b[i].Value); res != 0 {
			return res
		}
	}
	return cmp.Compare(len(a), len(b))
}

// Equal reports whether two values have the same type and content.
func Equal(a, b Value) bool {
	return a.CLType().Equal(b.CLType()) && Compare(a, b) == 0
}

