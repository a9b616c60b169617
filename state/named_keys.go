// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package state defines the values held by the global state: CL values,
// accounts and contracts, addressed by types.Key.
package state

import (
	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/types"
)

// NamedKeys maps human readable names to keys.
type NamedKeys map[string]types.Key

var namedKeysSerializer = bytesrepr.NewOrderedMapSerializer[string, types.Key](
	bytesrepr.StringSerializer{},
	KeySerializer{},
)

// Names returns the names in ascending order.
func (n NamedKeys) Names() []string {
	return namedKeysSerializer.SortedKeys(n)
}

func (n NamedKeys) Equal(other NamedKeys) bool {
	if len(n) != len(other) {
		return false
	}
	for name, key := range n {
		if o, found := other[name]; !found || o != key {
			return false
		}
	}
	return true
}

func (n NamedKeys) SerializedLength() int {
	return namedKeysSerializer.SerializedLength(n)
}

func (n NamedKeys) AppendBytes(dst []byte) []byte {
	return namedKeysSerializer.Append(dst, n)
}

func (n *NamedKeys) FromBytes(b []byte) ([]byte, error) {
	res, rest, err := namedKeysSerializer.Read(b)
	if err != nil {
		return nil, err
	}
	*n = res
	return rest, nil
}
