// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package store

//go:generate mockgen -source store.go -destination store_mocks.go -package store

import (
	"github.com/Fantom-foundation/clstate/common"
)

// Store is a content addressed blob store holding encoded trie nodes. Blobs
// are keyed by their Blake2b hash, the store itself does not verify that the
// key matches the content.
type Store interface {
	// Get returns the blob stored under the given hash, or nil if there is none.
	Get(hash common.Hash) ([]byte, error)

	// Put stores the blob under the given hash. Storing a blob twice is a no-op.
	Put(hash common.Hash, data []byte) error

	// Has reports whether a blob is stored under the given hash.
	Has(hash common.Hash) (bool, error)

	common.FlushAndCloser
	common.MemoryFootprintProvider
}
