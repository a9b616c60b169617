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
	"errors"
	"fmt"
	"unsafe"

	"github.com/Fantom-foundation/clstate/backend/store"
	"github.com/Fantom-foundation/clstate/common"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// TableSpace divides the key space of a LevelDB instance by prefixing keys.
type TableSpace byte

// TrieNodeKey is the table space of encoded trie nodes.
const TrieNodeKey TableSpace = 'T'

// dbKey is a table space prefix followed by a node hash.
type dbKey [1 + common.HashSize]byte

func (t TableSpace) toDBKey(hash common.Hash) dbKey {
	var key dbKey
	key[0] = byte(t)
	copy(key[1:], hash[:])
	return key
}

// Config describes the LevelDB instance backing a Store.
type Config struct {
	// Path is the directory of the database. It is created if missing.
	Path string
	// CacheSizeMiB is the size of the LevelDB block cache; zero keeps the
	// LevelDB default.
	CacheSizeMiB int
	// ReadOnly opens the database without write access.
	ReadOnly bool
}

func (c Config) options() *opt.Options {
	options := &opt.Options{ReadOnly: c.ReadOnly}
	if c.CacheSizeMiB > 0 {
		options.BlockCacheCapacity = c.CacheSizeMiB * opt.MiB
	}
	return options
}

// Store is a LevelDB backed store.Store implementation.
type Store struct {
	db      *leveldb.DB
	table   TableSpace
	options *opt.Options
}

var _ store.Store = (*Store)(nil)

// Open opens or creates the database described by the config.
func Open(config Config) (*Store, error) {
	options := config.options()
	db, err := leveldb.OpenFile(config.Path, options)
	if err != nil {
		return nil, fmt.Errorf("failed to open LevelDB at %s: %w", config.Path, err)
	}
	return &Store{db: db, table: TrieNodeKey, options: options}, nil
}

// Get returns the blob stored under the hash, or nil if there is none.
func (s *Store) Get(hash common.Hash) ([]byte, error) {
	key := s.table.toDBKey(hash)
	data, err := s.db.Get(key[:], nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	return data, err
}

func (s *Store) Put(hash common.Hash, data []byte) error {
	key := s.table.toDBKey(hash)
	return s.db.Put(key[:], data, nil)
}

func (s *Store) Has(hash common.Hash) (bool, error) {
	key := s.table.toDBKey(hash)
	return s.db.Has(key[:], nil)
}

// Flush is a no-op, LevelDB persists writes through its own journal.
func (s *Store) Flush() error {
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GetMemoryFootprint provides the size of the store in memory in bytes
func (s *Store) GetMemoryFootprint() *common.MemoryFootprint {
	mf := common.NewMemoryFootprint(unsafe.Sizeof(*s))
	mf.AddChild("writeBuffer", common.NewMemoryFootprint(uintptr(s.options.GetWriteBuffer())))
	mf.AddChild("blockCache", common.NewMemoryFootprint(uintptr(s.options.GetBlockCacheCapacity())))
	return mf
}
