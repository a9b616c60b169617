// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cache

import (
	"bytes"
	"unsafe"

	"github.com/Fantom-foundation/clstate/backend/store"
	"github.com/Fantom-foundation/clstate/common"
)

// Store wraps a store.Store with an LRU cache of recently used blobs. Reads
// are served from the cache when possible, writes go to both the cache and
// the wrapped store.
type Store struct {
	store store.Store
	cache *common.LruCache[common.Hash, []byte]
}

var _ store.Store = (*Store)(nil)

// NewStore constructs a Store caching up to capacity blobs of the wrapped store.
func NewStore(wrapped store.Store, capacity int) *Store {
	return &Store{
		store: wrapped,
		cache: common.NewLruCache[common.Hash, []byte](capacity),
	}
}

func (m *Store) Get(hash common.Hash) ([]byte, error) {
	if data, exists := m.cache.Get(hash); exists {
		return data, nil
	}
	data, err := m.store.Get(hash)
	if err != nil {
		return nil, err
	}
	if data != nil {
		m.cache.Set(hash, data)
	}
	return data, nil
}

func (m *Store) Put(hash common.Hash, data []byte) error {
	if err := m.store.Put(hash, data); err != nil {
		return err
	}
	m.cache.Set(hash, bytes.Clone(data))
	return nil
}

func (m *Store) Has(hash common.Hash) (bool, error) {
	if _, exists := m.cache.Get(hash); exists {
		return true, nil
	}
	return m.store.Has(hash)
}

func (m *Store) Flush() error {
	return m.store.Flush()
}

func (m *Store) Close() error {
	return m.store.Close()
}

// GetMemoryFootprint provides the size of the store in memory in bytes
func (m *Store) GetMemoryFootprint() *common.MemoryFootprint {
	var cached uintptr
	m.cache.Iterate(func(_ common.Hash, data []byte) bool {
		cached += uintptr(len(data))
		return true
	})
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*m))
	mf.AddChild("cache", m.cache.GetMemoryFootprint(cached))
	mf.AddChild("sourceStore", m.store.GetMemoryFootprint())
	return mf
}
