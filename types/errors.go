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

	"github.com/Fantom-foundation/clstate/cltype"
	"github.com/Fantom-foundation/clstate/common"
)

const (
	ErrDuplicateMapKey   = common.ConstError("duplicate map key")
	ErrInvalidURefOffset = common.ConstError("uref offset out of range")
	ErrIncompleteValue   = common.ConstError("value has a missing member")
	ErrNestedAny         = common.ConstError("value of type Any nested in a composite")
)

// TypeMismatch is returned if a value does not have the requested CLType.
type TypeMismatch struct {
	Expected cltype.CLType
	Found    cltype.CLType
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("type mismatch: expected %v, found %v", e.Expected, e.Found)
}

// SerializationError wraps a codec failure encountered while converting a
// CLValue.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization error: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

func checkType(expected cltype.CLType, value Value) error {
	if found := value.CLType(); !found.Equal(expected) {
		return &TypeMismatch{Expected: expected, Found: found}
	}
	return nil
}

func checkTypes(expected cltype.CLType, values []Value) error {
	for _, value := range values {
		if err := checkType(expected, value); err != nil {
			return err
		}
	}
	return nil
}

// appendShifted appends offsets moved by base.
func appendShifted(dst []uint32, base int, offsets []uint32) []uint32 {
	for _, offset := range offsets {
		dst = append(dst, uint32(base)+offset)
	}
	return dst
}

// checkComplete rejects values holding nil members. Only the zero values of
// Result and the tuples carry them.
func checkComplete(value Value) error {
	switch v := value.(type) {
	case nil:
		return ErrIncompleteValue
	case Option:
		if v.value != nil {
			return checkComplete(v.value)
		}
	case Result:
		return checkComplete(v.value)
	case List:
		return checkAllComplete(v.items)
	case FixedList:
		return checkAllComplete(v.items)
	case Map:
		for _, entry := range v.entries {
			if err := checkAllComplete([]Value{entry.Key, entry.Value}); err != nil {
				return err
			}
		}
	case Tuple1:
		return checkAllComplete(v.members())
	case Tuple2:
		return checkAllComplete(v.members())
	case Tuple3:
		return checkAllComplete(v.members())
	}
	return nil
}

func checkAllComplete(values []Value) error {
	for _, value := range values {
		if err := checkComplete(value); err != nil {
			return err
		}
	}
	return nil
}
