// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/clstate/backend/store"
	"github.com/Fantom-foundation/clstate/backend/store/cache"
	"github.com/Fantom-foundation/clstate/backend/store/ldb"
	"github.com/Fantom-foundation/clstate/common"
	"github.com/Fantom-foundation/clstate/state"
	"github.com/Fantom-foundation/clstate/state/trie"
	"github.com/Fantom-foundation/clstate/types"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var StoreCmd = cli.Command{
	Name:  "store",
	Usage: "reads and writes trie nodes of a LevelDB node store",
	Flags: []cli.Flag{
		&dbFlag,
		&cacheSizeFlag,
		&cacheEntriesFlag,
	},
	Subcommands: []*cli.Command{
		{
			Action:    storePut,
			Name:      "put",
			Usage:     "stores a serialized trie node and prints its hash",
			ArgsUsage: "<hex>",
		},
		{
			Action:    storeGet,
			Name:      "get",
			Usage:     "loads and prints the trie node with the given hash",
			ArgsUsage: "<hash>",
		},
	},
}

var (
	dbFlag = cli.StringFlag{
		Name:     "db",
		Usage:    "directory of the LevelDB node store",
		Required: true,
	}
	cacheSizeFlag = cli.IntFlag{
		Name:  "cache-size",
		Usage: "LevelDB block cache size in MiB, 0 for the LevelDB default",
		Value: 0,
	}
	cacheEntriesFlag = cli.IntFlag{
		Name:  "cache-entries",
		Usage: "number of nodes kept in the in-memory node cache",
		Value: 1024,
	}
)

type stateNodeStore = trie.NodeStore[types.Key, state.StoredValue]

func openNodeStore(context *cli.Context, readOnly bool) (*stateNodeStore, error) {
	config := ldb.Config{
		Path:         context.String(dbFlag.Name),
		CacheSizeMiB: context.Int(cacheSizeFlag.Name),
		ReadOnly:     readOnly,
	}
	db, err := ldb.Open(config)
	if err != nil {
		return nil, err
	}
	getLogger(context).Info("opened node store",
		zap.String("path", config.Path),
		zap.Int("cacheSizeMiB", config.CacheSizeMiB),
		zap.Bool("readOnly", readOnly),
	)
	var backing store.Store = db
	if entries := context.Int(cacheEntriesFlag.Name); entries > 0 {
		backing = cache.NewStore(db, entries)
	}
	return trie.NewNodeStore(backing, trie.NewStateCodec()), nil
}

func storePut(context *cli.Context) (err error) {
	data, err := hexArgument(context)
	if err != nil {
		return err
	}
	node, err := trie.NewStateCodec().FromBytes(data)
	if err != nil {
		return fmt.Errorf("failed to decode trie node: %w", err)
	}
	nodes, err := openNodeStore(context, false)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, nodes.Close())
	}()
	hash, err := nodes.Put(node)
	if err != nil {
		return err
	}
	getLogger(context).Debug("stored node", zap.Stringer("hash", hash), zap.Stringer("kind", node.Tag()))
	fmt.Fprintf(context.App.Writer, "%v\n", hash)
	return nil
}

func storeGet(context *cli.Context) (err error) {
	if context.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one node hash")
	}
	hash, err := common.HashFromHex(context.Args().Get(0))
	if err != nil {
		return fmt.Errorf("invalid node hash: %w", err)
	}
	nodes, err := openNodeStore(context, true)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, nodes.Close())
	}()
	node, found, err := nodes.Get(hash)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("node %v not found", hash)
	}
	printNode(context, hash, node)
	return nil
}
