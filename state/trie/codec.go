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

	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/common"
	"github.com/Fantom-foundation/clstate/state"
	"github.com/Fantom-foundation/clstate/types"
)

// Codec encodes trie nodes using the serializers of their keys and values. It
// is itself a bytesrepr.Serializer of nodes.
type Codec[K any, V any] struct {
	Key   bytesrepr.Serializer[K]
	Value bytesrepr.Serializer[V]
}

// StateCodec is the codec of the nodes of the global state trie.
type StateCodec = Codec[types.Key, state.StoredValue]

// NewStateCodec creates the codec of the global state trie.
func NewStateCodec() StateCodec {
	return StateCodec{Key: state.KeySerializer{}, Value: state.StoredValueSerializer{}}
}

func (c Codec[K, V]) SerializedLength(node Trie[K, V]) int {
	size := bytesrepr.U8SerializedLength
	switch node.tag {
	case TagLeaf:
		size += c.Key.SerializedLength(node.key) + c.Value.SerializedLength(node.value)
	case TagNode:
		size += node.pointers.SerializedLength()
	case TagExtension:
		size += bytesrepr.BytesSerializedLength(node.affix) + PointerSerializedLength
	}
	return size
}

func (c Codec[K, V]) Append(dst []byte, node Trie[K, V]) []byte {
	dst = append(dst, byte(node.tag))
	switch node.tag {
	case TagLeaf:
		dst = c.Key.Append(dst, node.key)
		return c.Value.Append(dst, node.value)
	case TagNode:
		return node.pointers.AppendBytes(dst)
	}
	dst = bytesrepr.AppendBytes(dst, node.affix)
	return node.pointer.AppendBytes(dst)
}

func (c Codec[K, V]) Read(b []byte) (Trie[K, V], []byte, error) {
	var res Trie[K, V]
	tag, rest, err := bytesrepr.ReadTag(b, uint8(numTags))
	if err != nil {
		return res, nil, err
	}
	res.tag = Tag(tag)
	switch res.tag {
	case TagLeaf:
		if res.key, rest, err = c.Key.Read(rest); err != nil {
			return res, nil, err
		}
		res.value, rest, err = c.Value.Read(rest)
	case TagNode:
		res.pointers = NewPointerBlock()
		rest, err = res.pointers.FromBytes(rest)
	case TagExtension:
		if res.affix, rest, err = bytesrepr.ReadBytes(rest); err != nil {
			return res, nil, err
		}
		rest, err = res.pointer.FromBytes(rest)
	}
	if err != nil {
		return Trie[K, V]{}, nil, err
	}
	return res, rest, nil
}

// ToBytes returns the canonical encoding of the node.
func (c Codec[K, V]) ToBytes(node Trie[K, V]) ([]byte, error) {
	return bytesrepr.SerializeWith[Trie[K, V]](c, node)
}

// FromBytes decodes a node spanning all of b.
func (c Codec[K, V]) FromBytes(b []byte) (Trie[K, V], error) {
	return bytesrepr.DeserializeWith[Trie[K, V]](c, b)
}

// Hash computes the Blake2b hash of the canonical encoding of the node.
func (c Codec[K, V]) Hash(node Trie[K, V]) (common.Hash, error) {
	data, err := c.ToBytes(node)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode node: %w", err)
	}
	return common.Blake2b(data), nil
}

// CreateHashedEmptyTrie returns the root of an empty trie, a branch node
// without children, together with its hash.
func CreateHashedEmptyTrie[K any, V any](codec Codec[K, V]) (common.Hash, Trie[K, V], error) {
	root := NewNode[K, V]()
	hash, err := codec.Hash(root)
	if err != nil {
		return common.Hash{}, Trie[K, V]{}, err
	}
	return hash, root, nil
}
