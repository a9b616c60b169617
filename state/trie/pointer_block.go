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
	"strings"

	"github.com/Fantom-foundation/clstate/bytesrepr"
)

// IndexedPointer is a pointer together with its position in a PointerBlock.
type IndexedPointer struct {
	Index   int
	Pointer Pointer
}

// PointerBlock holds the optional child pointers of a branch node, one slot
// per byte value.
type PointerBlock struct {
	pointers [Radix]*Pointer
}

var pointerOptionSerializer = bytesrepr.OptionSerializer[Pointer]{
	Elem: bytesrepr.Codec[Pointer, *Pointer]{},
}

// NewPointerBlock creates a block with all slots empty.
func NewPointerBlock() *PointerBlock {
	return &PointerBlock{}
}

// FromIndexedPointers creates a block with the given slots set. It panics if
// an index is out of range.
func FromIndexedPointers(pointers ...IndexedPointer) *PointerBlock {
	res := NewPointerBlock()
	for _, cur := range pointers {
		res.Set(cur.Index, &cur.Pointer)
	}
	return res
}

// Get returns the pointer at the given index or nil if the slot is empty.
// It panics if the index is not in [0, Radix).
func (b *PointerBlock) Get(index int) *Pointer {
	checkIndex(index)
	if b.pointers[index] == nil {
		return nil
	}
	res := *b.pointers[index]
	return &res
}

// Set stores a copy of the pointer at the given index; nil clears the slot.
// It panics if the index is not in [0, Radix).
func (b *PointerBlock) Set(index int, pointer *Pointer) {
	checkIndex(index)
	if pointer == nil {
		b.pointers[index] = nil
		return
	}
	copied := *pointer
	b.pointers[index] = &copied
}

func checkIndex(index int) {
	if index < 0 || index >= Radix {
		panic(fmt.Sprintf("pointer block index out of range: %d not in [0, %d)", index, Radix))
	}
}

// ChildCount returns the number of occupied slots.
func (b *PointerBlock) ChildCount() int {
	count := 0
	for _, pointer := range b.pointers {
		if pointer != nil {
			count++
		}
	}
	return count
}

// AsIndexedPointers lists the occupied slots in index order.
func (b *PointerBlock) AsIndexedPointers() []IndexedPointer {
	var res []IndexedPointer
	for i, pointer := range b.pointers {
		if pointer != nil {
			res = append(res, IndexedPointer{Index: i, Pointer: *pointer})
		}
	}
	return res
}

func (b *PointerBlock) Equal(other *PointerBlock) bool {
	for i := range b.pointers {
		x, y := b.pointers[i], other.pointers[i]
		if (x == nil) != (y == nil) || (x != nil && *x != *y) {
			return false
		}
	}
	return true
}

func (b *PointerBlock) String() string {
	var sb strings.Builder
	sb.WriteString("PointerBlock{")
	for i, cur := range b.AsIndexedPointers() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d: %v", cur.Index, cur.Pointer)
	}
	sb.WriteString("}")
	return sb.String()
}

func (b *PointerBlock) SerializedLength() int {
	size := bytesrepr.U32SerializedLength
	for _, pointer := range b.pointers {
		size += pointerOptionSerializer.SerializedLength(pointer)
	}
	return size
}

// AppendBytes encodes the block as a fixed list of Radix optional pointers.
func (b *PointerBlock) AppendBytes(dst []byte) []byte {
	dst = bytesrepr.AppendLength(dst, Radix)
	for _, pointer := range b.pointers {
		dst = pointerOptionSerializer.Append(dst, pointer)
	}
	return dst
}

func (b *PointerBlock) FromBytes(data []byte) ([]byte, error) {
	n, rest, err := bytesrepr.ReadLength(data)
	if err != nil {
		return nil, err
	}
	if n != Radix {
		return nil, fmt.Errorf("%w: pointer block of length %d", bytesrepr.ErrFormatting, n)
	}
	var res PointerBlock
	for i := range res.pointers {
		if res.pointers[i], rest, err = pointerOptionSerializer.Read(rest); err != nil {
			return nil, err
		}
	}
	*b = res
	return rest, nil
}
