// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package memory

import (
	"bytes"
	"unsafe"

	"github.com/Fantom-foundation/clstate/backend/store"
	"github.com/Fantom-foundation/clstate/common"
)

// Store is an in-memory store.Store implementation.
type Store struct {
	data map[common.Hash][]byte
	size uintptr // total size of the stored blobs
}

var _ store.Store = (*Store)(nil)

// NewStore constructs a new empty Store.
func NewStore() *Store {
	return &Store{data: map[common.Hash][]byte{}}
}

// Get returns the blob stored under the hash, or nil if there is none. The
// returned slice must not be modified.
func (m *Store) Get(hash common.Hash) ([]byte, error) {
	return m.data[hash], nil
}

// Put stores a copy of the blob.
func (m *Store) Put(hash common.Hash, data []byte) error {
	if old, exists := m.data[hash]; exists {
		if bytes.Equal(old, data) {
			return nil
		}
		m.size -= uintptr(len(old))
	}
	m.data[hash] = bytes.Clone(data)
	m.size += uintptr(len(data))
	return nil
}

func (m *Store) Has(hash common.Hash) (bool, error) {
	_, exists := m.data[hash]
	return exists, nil
}

// Len returns the number of stored blobs.
func (m *Store) Len() int {
	return len(m.data)
}

func (m *Store) Flush() error {
	return nil // no-op for in-memory database
}

func (m *Store) Close() error {
	return nil
}

// GetMemoryFootprint provides the size of the store in memory in bytes
func (m *Store) GetMemoryFootprint() *common.MemoryFootprint {
	entrySize := unsafe.Sizeof(common.Hash{}) + unsafe.Sizeof([]byte(nil))
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*m))
	mf.AddChild("entries", common.NewMemoryFootprint(uintptr(len(m.data))*entrySize))
	mf.AddChild("blobs", common.NewMemoryFootprint(m.size))
	return mf
}
