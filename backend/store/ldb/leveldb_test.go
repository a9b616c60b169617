// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ldb

import (
	"bytes"
	"testing"

	"github.com/Fantom-foundation/clstate/common"
)

func TestLdbStore_ContentSurvivesReopening(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(Config{Path: dir, CacheSizeMiB: 4})
	if err != nil {
		t.Fatalf("failed to open store; %s", err)
	}
	blob := []byte("node")
	hash := common.Blake2b(blob)
	if err := s.Put(hash, blob); err != nil {
		t.Fatalf("failed to put blob; %s", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("failed to close store; %s", err)
	}

	s, err = Open(Config{Path: dir, ReadOnly: true})
	if err != nil {
		t.Fatalf("failed to reopen store; %s", err)
	}
	defer s.Close()
	got, err := s.Get(hash)
	if err != nil {
		t.Fatalf("failed to get blob; %s", err)
	}
	if !bytes.Equal(got, blob) {
		t.Errorf("unexpected blob after reopening, wanted %x, got %x", blob, got)
	}
}

func TestLdbStore_KeysArePrefixedByTableSpace(t *testing.T) {
	s, err := Open(Config{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("failed to open store; %s", err)
	}
	defer s.Close()

	hash := common.Hash{1, 2, 3}
	if err := s.Put(hash, []byte{7}); err != nil {
		t.Fatalf("failed to put blob; %s", err)
	}
	key := append([]byte{byte(TrieNodeKey)}, hash[:]...)
	got, err := s.db.Get(key, nil)
	if err != nil {
		t.Fatalf("blob not stored under prefixed key; %s", err)
	}
	if !bytes.Equal(got, []byte{7}) {
		t.Errorf("unexpected blob %x", got)
	}
}

func TestLdbStore_OpenReadOnlyFailsOnMissingDatabase(t *testing.T) {
	if _, err := Open(Config{Path: t.TempDir(), ReadOnly: true}); err == nil {
		t.Errorf("opening a missing database read-only should fail")
	}
}
