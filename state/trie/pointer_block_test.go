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
	"errors"
	"testing"

	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/common"
)

func TestPointerBlock_AssignmentAndIndexing(t *testing.T) {
	pointer := NewLeafPointer(common.Blake2b([]byte("TrieTrieAgain")))
	block := NewPointerBlock()
	block.Set(0, &pointer)
	block.Set(Radix-1, &pointer)

	if got := block.Get(0); got == nil || *got != pointer {
		t.Errorf("unexpected pointer at 0: %v", got)
	}
	if got := block.Get(Radix - 1); got == nil || *got != pointer {
		t.Errorf("unexpected pointer at %d: %v", Radix-1, got)
	}
	if got := block.Get(1); got != nil {
		t.Errorf("unexpected pointer at 1: %v", got)
	}
	if got := block.Get(Radix - 2); got != nil {
		t.Errorf("unexpected pointer at %d: %v", Radix-2, got)
	}
	if got := block.ChildCount(); got != 2 {
		t.Errorf("unexpected child count %d", got)
	}

	block.Set(0, nil)
	if got := block.Get(0); got != nil {
		t.Errorf("slot not cleared: %v", got)
	}
}

func TestPointerBlock_StoresCopies(t *testing.T) {
	pointer := NewLeafPointer(common.Hash{1})
	block := NewPointerBlock()
	block.Set(3, &pointer)
	pointer = NewNodePointer(common.Hash{2})
	block.Get(3).hash = common.Hash{3}
	if got := block.Get(3); *got != NewLeafPointer(common.Hash{1}) {
		t.Errorf("block modified from outside: %v", got)
	}
}

func expectPanic(t *testing.T, name string, op func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s should panic", name)
		}
	}()
	op()
}

func TestPointerBlock_IndexOutOfRangePanics(t *testing.T) {
	block := NewPointerBlock()
	pointer := NewLeafPointer(common.Hash{})
	expectPanic(t, "get at Radix", func() { block.Get(Radix) })
	expectPanic(t, "set at Radix", func() { block.Set(Radix, &pointer) })
	expectPanic(t, "get at -1", func() { block.Get(-1) })
	expectPanic(t, "from indexed pointers", func() {
		FromIndexedPointers(IndexedPointer{Index: Radix, Pointer: pointer})
	})
}

func TestPointerBlock_FromIndexedPointers(t *testing.T) {
	a := IndexedPointer{Index: 7, Pointer: NewLeafPointer(common.Hash{1})}
	b := IndexedPointer{Index: 200, Pointer: NewNodePointer(common.Hash{2})}
	block := FromIndexedPointers(b, a)
	got := block.AsIndexedPointers()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("unexpected pointers %v", got)
	}

	other := NewPointerBlock()
	other.Set(7, &a.Pointer)
	if block.Equal(other) {
		t.Errorf("blocks with different content reported equal")
	}
	other.Set(200, &b.Pointer)
	if !block.Equal(other) {
		t.Errorf("blocks with same content reported different")
	}
}

func TestPointerBlock_Encoding(t *testing.T) {
	block := FromIndexedPointers(IndexedPointer{Index: 1, Pointer: NewNodePointer(common.Hash{9})})
	data, err := bytesrepr.Serialize(block)
	if err != nil {
		t.Fatalf("failed to encode; %s", err)
	}
	if got, want := len(data), 4+Radix+PointerSerializedLength; got != want {
		t.Errorf("unexpected length, wanted %d, got %d", want, got)
	}
	// length 256, None, then Some(NodePointer(9...))
	if data[0] != 0 || data[1] != 1 || data[4] != 0 || data[5] != 1 || data[6] != byte(NodePointer) || data[7] != 9 {
		t.Errorf("unexpected encoding %x", data[:8])
	}
	restored := NewPointerBlock()
	if err := bytesrepr.Deserialize(data, restored); err != nil {
		t.Fatalf("failed to decode; %s", err)
	}
	if !block.Equal(restored) {
		t.Errorf("round trip failed, wanted %v, got %v", block, restored)
	}
}

func TestPointerBlock_WrongLengthIsRejected(t *testing.T) {
	data := append([]byte{255, 0, 0, 0}, make([]byte, 255)...)
	if err := bytesrepr.Deserialize(data, NewPointerBlock()); !errors.Is(err, bytesrepr.ErrFormatting) {
		t.Errorf("expected formatting error, got %v", err)
	}
}
