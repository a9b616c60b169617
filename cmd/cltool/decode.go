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
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/common"
	"github.com/Fantom-foundation/clstate/state"
	"github.com/Fantom-foundation/clstate/state/trie"
	"github.com/Fantom-foundation/clstate/types"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var EmptyRoot = cli.Command{
	Action: emptyRoot,
	Name:   "empty-root",
	Usage:  "prints the root hash of the empty global state trie",
}

var DecodeValue = cli.Command{
	Action:    decodeValue,
	Name:      "decode-value",
	Usage:     "decodes a serialized CLValue",
	ArgsUsage: "<hex>",
}

var DecodeNode = cli.Command{
	Action:    decodeNode,
	Name:      "decode-node",
	Usage:     "decodes a serialized global state trie node",
	ArgsUsage: "<hex>",
}

var Hash = cli.Command{
	Action:    hash,
	Name:      "hash",
	Usage:     "computes the Blake2b-256 digest of the given bytes",
	ArgsUsage: "<hex>",
}

func emptyRoot(context *cli.Context) error {
	root, node, err := trie.CreateHashedEmptyTrie(trie.NewStateCodec())
	if err != nil {
		return err
	}
	id, err := root.CID()
	if err != nil {
		return err
	}
	getLogger(context).Debug("created empty trie", zap.Stringer("node", node))
	fmt.Fprintf(context.App.Writer, "hash: %v\n", root)
	fmt.Fprintf(context.App.Writer, "cid:  %v\n", id)
	return nil
}

func decodeValue(context *cli.Context) error {
	data, err := hexArgument(context)
	if err != nil {
		return err
	}
	var value types.CLValue
	if err := bytesrepr.Deserialize(data, &value); err != nil {
		return fmt.Errorf("failed to decode CLValue: %w", err)
	}
	decoded, err := value.IntoT(value.CLType())
	if err != nil {
		return err
	}
	urefs, err := value.ContainedURefs()
	if err != nil {
		return err
	}
	getLogger(context).Debug("decoded value", zap.Int("bytes", len(data)), zap.Int("urefs", len(urefs)))

	out := context.App.Writer
	fmt.Fprintf(out, "type:  %v\n", value.CLType())
	fmt.Fprintf(out, "value: %v\n", decoded)
	for _, uref := range urefs {
		fmt.Fprintf(out, "uref:  %s\n", uref.AsString())
	}
	return nil
}

func decodeNode(context *cli.Context) error {
	data, err := hexArgument(context)
	if err != nil {
		return err
	}
	node, err := trie.NewStateCodec().FromBytes(data)
	if err != nil {
		return fmt.Errorf("failed to decode trie node: %w", err)
	}
	printNode(context, common.Blake2b(data), node)
	return nil
}

func hash(context *cli.Context) error {
	data, err := hexArgument(context)
	if err != nil {
		return err
	}
	fmt.Fprintf(context.App.Writer, "%v\n", common.Blake2b(data))
	return nil
}

func printNode(context *cli.Context, digest common.Hash, node trie.Trie[types.Key, state.StoredValue]) {
	out := context.App.Writer
	fmt.Fprintf(out, "hash: %v\n", digest)
	fmt.Fprintf(out, "kind: %v\n", node.Tag())
	switch node.Tag() {
	case trie.TagLeaf:
		key, _ := node.Key()
		value, _ := node.Value()
		fmt.Fprintf(out, "key:   %s\n", key.AsString())
		fmt.Fprintf(out, "value: %v\n", value)
	case trie.TagNode:
		pointers, _ := node.PointerBlock()
		for _, child := range pointers.AsIndexedPointers() {
			fmt.Fprintf(out, "  [%3d] %v\n", child.Index, child.Pointer)
		}
	case trie.TagExtension:
		affix, pointer, _ := node.Extension()
		fmt.Fprintf(out, "affix:   %x\n", affix)
		fmt.Fprintf(out, "pointer: %v\n", pointer)
	}
}

func hexArgument(context *cli.Context) ([]byte, error) {
	if context.Args().Len() != 1 {
		return nil, fmt.Errorf("expected exactly one hex encoded argument")
	}
	arg := strings.TrimPrefix(context.Args().Get(0), "0x")
	data, err := hex.DecodeString(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid hex argument: %w", err)
	}
	return data, nil
}
