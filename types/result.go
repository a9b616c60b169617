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

const (
	resultErrTag = 0
	resultOkTag  = 1
)

// Result is either a success value or an error value. Results are created
// with Ok or Err; the zero value holds no value and is rejected by FromT.
type Result struct {
	ok, err cltype.CLType
	isOk    bool
	value   Value
}

func Ok(value Value, errType cltype.CLType) Result {
	return Result{ok: value.CLType(), err: errType, isOk: true, value: value}
}

func Err(okType cltype.CLType, value Value) Result {
	return Result{ok: okType, err: value.CLType(), value: value}
}

func (r Result) IsOk() bool {
	return r.isOk
}

// Value returns the success or error value.
func (r Result) Value() Value {
	return r.value
}

func (r Result) String() string {
	if r.isOk {
		return fmt.Sprintf("Ok(%v)", r.value)
	}
	return fmt.Sprintf("Err(%v)", r.value)
}

func (r Result) CLType() cltype.CLType { return cltype.Result(r.ok, r.err) }
func (Result) isValue()                {}

func (r Result) SerializedLength() int {
	return bytesrepr.ResultTagLength + r.value.SerializedLength()
}

func (r Result) AppendBytes(dst []byte) []byte {
	if r.isOk {
		dst = append(dst, resultOkTag)
	} else {
		dst = append(dst, resultErrTag)
	}
	return r.value.AppendBytes(dst)
}

func (r Result) URefOffsets() []uint32 {
	return appendShifted(nil, bytesrepr.ResultTagLength, r.value.URefOffsets())
}

func (d *decoder) decodeResult(t cltype.CLType, b []byte) (Value, []byte, error) {
	tag, rest, err := bytesrepr.ReadTag(b, 2)
	if err != nil {
		return nil, nil, err
	}
	res := Result{ok: t.Ok(), err: t.Err(), isOk: tag == resultOkTag}
	valueType := t.Err()
	if res.isOk {
		valueType = t.Ok()
	}
	if res.value, rest, err = d.decode(valueType, rest); err != nil {
		return nil, nil, err
	}
	return res, rest, nil
}
