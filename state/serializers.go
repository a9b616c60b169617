// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/types"
)

// KeySerializer is the bytesrepr.Serializer of trie keys.
type KeySerializer = bytesrepr.Codec[types.Key, *types.Key]

// StoredValueSerializer is the bytesrepr.Serializer of trie values.
type StoredValueSerializer = bytesrepr.Codec[StoredValue, *StoredValue]
