// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package trie implements the nodes of the Merkle radix trie holding the
// global state, their canonical encoding and a content addressed node store.
package trie

import (
	"fmt"

	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/common"
)

// Radix is the number of children of a branch node; one per byte value.
const Radix = 256

// PointerTag tells whether a pointer refers to a leaf or to an inner node.
type PointerTag uint8

const (
	LeafPointer PointerTag = iota
	NodePointer
	numPointerTags
)

const PointerSerializedLength = bytesrepr.U8SerializedLength + common.HashSize

// Pointer references a child node by its hash.
type Pointer struct {
	tag  PointerTag
	hash common.Hash
}

func NewLeafPointer(hash common.Hash) Pointer {
	return Pointer{tag: LeafPointer, hash: hash}
}

func NewNodePointer(hash common.Hash) Pointer {
	return Pointer{tag: NodePointer, hash: hash}
}

func (p Pointer) Tag() PointerTag {
	return p.tag
}

func (p Pointer) Hash() common.Hash {
	return p.hash
}

func (p Pointer) IsLeaf() bool {
	return p.tag == LeafPointer
}

// Update returns a pointer of the same kind referring to the given hash.
func (p Pointer) Update(hash common.Hash) Pointer {
	return Pointer{tag: p.tag, hash: hash}
}

func (p Pointer) String() string {
	if p.tag == LeafPointer {
		return fmt.Sprintf("LeafPointer(%v)", p.hash)
	}
	return fmt.Sprintf("NodePointer(%v)", p.hash)
}

func (Pointer) SerializedLength() int {
	return PointerSerializedLength
}

func (p Pointer) AppendBytes(dst []byte) []byte {
	return p.hash.AppendBytes(append(dst, byte(p.tag)))
}

func (p *Pointer) FromBytes(b []byte) ([]byte, error) {
	tag, rest, err := bytesrepr.ReadTag(b, uint8(numPointerTags))
	if err != nil {
		return nil, err
	}
	hash, rest, err := bytesrepr.ReadHash(rest)
	if err != nil {
		return nil, err
	}
	*p = Pointer{tag: PointerTag(tag), hash: hash}
	return rest, nil
}
