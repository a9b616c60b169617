// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package trie

import (
	"fmt"
	"unsafe"

	"github.com/Fantom-foundation/clstate/backend/store"
	"github.com/Fantom-foundation/clstate/common"
)

const ErrCorruptedNode = common.ConstError("corrupted node")

// NodeStore persists trie nodes in a store.Store, keyed by the hash of their
// encoding. Reads verify that the loaded bytes match the requested hash.
type NodeStore[K any, V any] struct {
	store store.Store
	codec Codec[K, V]
}

func NewNodeStore[K any, V any](store store.Store, codec Codec[K, V]) *NodeStore[K, V] {
	return &NodeStore[K, V]{store: store, codec: codec}
}

// Put stores the node and returns its hash.
func (s *NodeStore[K, V]) Put(node Trie[K, V]) (common.Hash, error) {
	data, err := s.codec.ToBytes(node)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode node: %w", err)
	}
	hash := common.Blake2b(data)
	if err := s.store.Put(hash, data); err != nil {
		return common.Hash{}, fmt.Errorf("failed to store node %v: %w", hash, err)
	}
	return hash, nil
}

// Get loads the node with the given hash. The boolean is false if no such
// node is stored.
func (s *NodeStore[K, V]) Get(hash common.Hash) (Trie[K, V], bool, error) {
	data, err := s.store.Get(hash)
	if err != nil {
		return Trie[K, V]{}, false, fmt.Errorf("failed to load node %v: %w", hash, err)
	}
	if data == nil {
		return Trie[K, V]{}, false, nil
	}
	if got := common.Blake2b(data); got != hash {
		return Trie[K, V]{}, false, fmt.Errorf("%w: node %v has hash %v", ErrCorruptedNode, hash, got)
	}
	node, err := s.codec.FromBytes(data)
	if err != nil {
		return Trie[K, V]{}, false, fmt.Errorf("failed to decode node %v: %w", hash, err)
	}
	return node, true, nil
}

func (s *NodeStore[K, V]) Has(hash common.Hash) (bool, error) {
	return s.store.Has(hash)
}

func (s *NodeStore[K, V]) Flush() error {
	return s.store.Flush()
}

func (s *NodeStore[K, V]) Close() error {
	return s.store.Close()
}

// GetMemoryFootprint provides the size of the node store in memory in bytes
func (s *NodeStore[K, V]) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*s))
	mf.AddChild("store", s.store.GetMemoryFootprint())
	return mf
}
