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
	"slices"
)

// Tag identifies the kind of a trie node on the wire.
type Tag uint8

const (
	TagLeaf Tag = iota
	TagNode
	TagExtension
	numTags
)

func (t Tag) String() string {
	switch t {
	case TagLeaf:
		return "Leaf"
	case TagNode:
		return "Node"
	case TagExtension:
		return "Extension"
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// Trie is a node of the Merkle radix trie. A leaf holds a key and its value,
// a branch node holds a PointerBlock, and an extension holds a shared key
// affix followed by a pointer to the next node.
type Trie[K any, V any] struct {
	tag      Tag
	key      K
	value    V
	pointers *PointerBlock
	affix    []byte
	pointer  Pointer
}

func NewLeaf[K any, V any](key K, value V) Trie[K, V] {
	return Trie[K, V]{tag: TagLeaf, key: key, value: value}
}

// NewNode creates a branch node with the given children. It panics if an
// index is out of range.
func NewNode[K any, V any](pointers ...IndexedPointer) Trie[K, V] {
	return Trie[K, V]{tag: TagNode, pointers: FromIndexedPointers(pointers...)}
}

// NewNodeFromBlock creates a branch node owning the given block.
func NewNodeFromBlock[K any, V any](block *PointerBlock) Trie[K, V] {
	return Trie[K, V]{tag: TagNode, pointers: block}
}

func NewExtension[K any, V any](affix []byte, pointer Pointer) Trie[K, V] {
	return Trie[K, V]{tag: TagExtension, affix: slices.Clone(affix), pointer: pointer}
}

func (t Trie[K, V]) Tag() Tag {
	return t.tag
}

// Key returns the key of a leaf.
func (t Trie[K, V]) Key() (K, bool) {
	return t.key, t.tag == TagLeaf
}

// Value returns the value of a leaf.
func (t Trie[K, V]) Value() (V, bool) {
	return t.value, t.tag == TagLeaf
}

// PointerBlock returns the children of a branch node.
func (t Trie[K, V]) PointerBlock() (*PointerBlock, bool) {
	return t.pointers, t.tag == TagNode
}

// Extension returns the affix and the pointer of an extension node.
func (t Trie[K, V]) Extension() ([]byte, Pointer, bool) {
	return slices.Clone(t.affix), t.pointer, t.tag == TagExtension
}

func (t Trie[K, V]) String() string {
	switch t.tag {
	case TagLeaf:
		return fmt.Sprintf("Trie::Leaf{key: %v, value: %v}", t.key, t.value)
	case TagNode:
		return fmt.Sprintf("Trie::Node{%v}", t.pointers)
	}
	return fmt.Sprintf("Trie::Extension{affix: %x, pointer: %v}", t.affix, t.pointer)
}
