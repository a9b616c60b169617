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

	"github.com/Fantom-foundation/clstate/backend/store"
	"github.com/Fantom-foundation/clstate/backend/store/memory"
	"github.com/Fantom-foundation/clstate/common"
	"github.com/Fantom-foundation/clstate/state"
	"github.com/Fantom-foundation/clstate/types"
	"go.uber.org/mock/gomock"
)

func TestNodeStore_PutAndGet(t *testing.T) {
	codec := NewStateCodec()
	nodes := NewNodeStore(memory.NewStore(), codec)
	for _, node := range sampleNodes(t) {
		hash, err := nodes.Put(node)
		if err != nil {
			t.Fatalf("failed to put node; %s", err)
		}
		want, err := codec.Hash(node)
		if err != nil {
			t.Fatalf("failed to hash node; %s", err)
		}
		if hash != want {
			t.Errorf("unexpected hash, wanted %v, got %v", want, hash)
		}
		restored, found, err := nodes.Get(hash)
		if err != nil || !found {
			t.Fatalf("failed to get node; %v", err)
		}
		if got, err := codec.Hash(restored); err != nil || got != hash {
			t.Errorf("restored node differs from stored node")
		}
		if has, err := nodes.Has(hash); err != nil || !has {
			t.Errorf("stored node not reported as present")
		}
	}
}

func TestNodeStore_MissingNodeIsNotFound(t *testing.T) {
	nodes := NewNodeStore(memory.NewStore(), NewStateCodec())
	_, found, err := nodes.Get(common.Hash{1})
	if err != nil {
		t.Fatalf("failed to get node; %s", err)
	}
	if found {
		t.Errorf("missing node reported as found")
	}
}

func TestNodeStore_CorruptedNodeIsDetected(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := store.NewMockStore(ctrl)
	hash, root, err := CreateHashedEmptyTrie(NewStateCodec())
	if err != nil {
		t.Fatalf("failed to create empty trie; %s", err)
	}
	data, err := NewStateCodec().ToBytes(root)
	if err != nil {
		t.Fatalf("failed to encode; %s", err)
	}
	data[len(data)-1] = 1
	backend.EXPECT().Get(hash).Return(data, nil)

	nodes := NewNodeStore(backend, NewStateCodec())
	if _, _, err := nodes.Get(hash); !errors.Is(err, ErrCorruptedNode) {
		t.Errorf("expected corrupted node error, got %v", err)
	}
}

func TestNodeStore_UndecodableNodeIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := store.NewMockStore(ctrl)
	data := []byte{7}
	hash := common.Blake2b(data)
	backend.EXPECT().Get(hash).Return(data, nil)

	nodes := NewNodeStore(backend, NewStateCodec())
	_, found, err := nodes.Get(hash)
	if err == nil || found {
		t.Errorf("expected decoding error, got %v", err)
	}
}

func TestNodeStore_StoreErrorsArePropagated(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := store.NewMockStore(ctrl)
	injected := errors.New("injected error")
	backend.EXPECT().Put(gomock.Any(), gomock.Any()).Return(injected)
	backend.EXPECT().Get(gomock.Any()).Return(nil, injected)
	backend.EXPECT().Flush().Return(nil)
	backend.EXPECT().Close().Return(injected)

	nodes := NewNodeStore(backend, NewStateCodec())
	if _, err := nodes.Put(NewNode[types.Key, state.StoredValue]()); !errors.Is(err, injected) {
		t.Errorf("expected injected error, got %v", err)
	}
	if _, _, err := nodes.Get(common.Hash{}); !errors.Is(err, injected) {
		t.Errorf("expected injected error, got %v", err)
	}
	if err := nodes.Flush(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if err := nodes.Close(); !errors.Is(err, injected) {
		t.Errorf("expected injected error, got %v", err)
	}
}
