// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package store_test

import (
	"bytes"
	"testing"

	"github.com/Fantom-foundation/clstate/backend/store"
	"github.com/Fantom-foundation/clstate/backend/store/cache"
	"github.com/Fantom-foundation/clstate/backend/store/ldb"
	"github.com/Fantom-foundation/clstate/backend/store/memory"
	"github.com/Fantom-foundation/clstate/common"
)

type storeFactory struct {
	label    string
	getStore func(tempDir string) store.Store
}

func getStoreFactories(tb testing.TB) []storeFactory {
	return []storeFactory{
		{
			label: "Memory",
			getStore: func(string) store.Store {
				return memory.NewStore()
			},
		},
		{
			label: "LevelDb",
			getStore: func(tempDir string) store.Store {
				s, err := ldb.Open(ldb.Config{Path: tempDir})
				if err != nil {
					tb.Fatalf("failed to open LevelDB store; %s", err)
				}
				return s
			},
		},
		{
			label: "CachedMemory",
			getStore: func(string) store.Store {
				return cache.NewStore(memory.NewStore(), 2)
			},
		},
		{
			label: "CachedLevelDb",
			getStore: func(tempDir string) store.Store {
				s, err := ldb.Open(ldb.Config{Path: tempDir, CacheSizeMiB: 1})
				if err != nil {
					tb.Fatalf("failed to open LevelDB store; %s", err)
				}
				return cache.NewStore(s, 2)
			},
		},
	}
}

var (
	A = []byte{0xAA}
	B = []byte{0xBB, 0xBB}
	C = []byte{0xCC}
)

func TestStore_PutGet(t *testing.T) {
	for _, factory := range getStoreFactories(t) {
		t.Run(factory.label, func(t *testing.T) {
			s := factory.getStore(t.TempDir())
			defer s.Close()

			for _, blob := range [][]byte{A, B, C} {
				if err := s.Put(common.Blake2b(blob), blob); err != nil {
					t.Fatalf("failed to put blob; %s", err)
				}
			}
			for _, blob := range [][]byte{A, B, C} {
				got, err := s.Get(common.Blake2b(blob))
				if err != nil {
					t.Fatalf("failed to get blob; %s", err)
				}
				if !bytes.Equal(got, blob) {
					t.Errorf("unexpected blob, wanted %x, got %x", blob, got)
				}
				if has, err := s.Has(common.Blake2b(blob)); err != nil || !has {
					t.Errorf("stored blob not reported as present; %v", err)
				}
			}
		})
	}
}

func TestStore_MissingBlobIsNil(t *testing.T) {
	for _, factory := range getStoreFactories(t) {
		t.Run(factory.label, func(t *testing.T) {
			s := factory.getStore(t.TempDir())
			defer s.Close()

			got, err := s.Get(common.Hash{1})
			if err != nil {
				t.Fatalf("failed to get blob; %s", err)
			}
			if got != nil {
				t.Errorf("not-existing blob is not reported as not-existing")
			}
			if has, err := s.Has(common.Hash{1}); err != nil || has {
				t.Errorf("not-existing blob reported as present; %v", err)
			}
		})
	}
}

func TestStore_PutCopiesInput(t *testing.T) {
	for _, factory := range []storeFactory{getStoreFactories(t)[0], getStoreFactories(t)[1]} {
		t.Run(factory.label, func(t *testing.T) {
			s := factory.getStore(t.TempDir())
			defer s.Close()

			blob := []byte{1, 2, 3}
			hash := common.Blake2b(blob)
			if err := s.Put(hash, blob); err != nil {
				t.Fatalf("failed to put blob; %s", err)
			}
			blob[0] = 9
			got, err := s.Get(hash)
			if err != nil {
				t.Fatalf("failed to get blob; %s", err)
			}
			if !bytes.Equal(got, []byte{1, 2, 3}) {
				t.Errorf("stored blob modified through input slice: %x", got)
			}
		})
	}
}

func TestStore_FlushAndMemoryFootprint(t *testing.T) {
	for _, factory := range getStoreFactories(t) {
		t.Run(factory.label, func(t *testing.T) {
			s := factory.getStore(t.TempDir())
			if err := s.Put(common.Blake2b(A), A); err != nil {
				t.Fatalf("failed to put blob; %s", err)
			}
			if err := s.Flush(); err != nil {
				t.Errorf("failed to flush; %s", err)
			}
			if mf := s.GetMemoryFootprint(); mf == nil || mf.Total() == 0 {
				t.Errorf("missing memory footprint")
			}
			if err := s.Close(); err != nil {
				t.Errorf("failed to close; %s", err)
			}
		})
	}
}
