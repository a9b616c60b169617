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
	"github.com/Fantom-foundation/clstate/bytesrepr"
)

var runtimeArgsSerializer = bytesrepr.NewOrderedMapSerializer[string, CLValue](
	bytesrepr.StringSerializer{},
	bytesrepr.Codec[CLValue, *CLValue]{},
)

// RuntimeArgs are the named arguments passed to a contract call.
type RuntimeArgs struct {
	args map[string]CLValue
}

func NewRuntimeArgs() RuntimeArgs {
	return RuntimeArgs{args: map[string]CLValue{}}
}

// Insert encodes value and stores it under name, replacing any previous
// argument of that name.
func (a *RuntimeArgs) Insert(name string, value Value) error {
	cv, err := FromT(value)
	if err != nil {
		return err
	}
	a.InsertCLValue(name, cv)
	return nil
}

func (a *RuntimeArgs) InsertCLValue(name string, value CLValue) {
	if a.args == nil {
		a.args = map[string]CLValue{}
	}
	a.args[name] = value
}

func (a RuntimeArgs) Get(name string) (CLValue, bool) {
	value, found := a.args[name]
	return value, found
}

func (a RuntimeArgs) Len() int {
	return len(a.args)
}

// Names returns the argument names in ascending order.
func (a RuntimeArgs) Names() []string {
	return runtimeArgsSerializer.SortedKeys(a.args)
}

func (a RuntimeArgs) Equal(other RuntimeArgs) bool {
	if len(a.args) != len(other.args) {
		return false
	}
	for name, value := range a.args {
		if o, found := other.args[name]; !found || !value.Equal(o) {
			return false
		}
	}
	return true
}

func (a RuntimeArgs) SerializedLength() int {
	return runtimeArgsSerializer.SerializedLength(a.args)
}

func (a RuntimeArgs) AppendBytes(dst []byte) []byte {
	return runtimeArgsSerializer.Append(dst, a.args)
}

func (a *RuntimeArgs) FromBytes(b []byte) ([]byte, error) {
	args, rest, err := runtimeArgsSerializer.Read(b)
	if err != nil {
		return nil, err
	}
	a.args = args
	return rest, nil
}
