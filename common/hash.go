// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"hash"
	"sync"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"golang.org/x/crypto/blake2b"
)

// HashSize is the number of bytes of a Blake2b-256 digest.
const HashSize = 32

const ErrInvalidHashLength = ConstError("invalid hash length")

// Hash is a Blake2b-256 digest. It is used as the content address of
// trie nodes and as the state root identifier.
type Hash [HashSize]byte

var blake2bHasherPool = sync.Pool{New: func() any {
	hasher, err := blake2b.New256(nil)
	if err != nil {
		panic(fmt.Sprintf("failed to create blake2b hasher: %v", err))
	}
	return hasher
}}

// Blake2b computes the unkeyed Blake2b-256 digest of the given data.
func Blake2b(data []byte) Hash {
	hasher := blake2bHasherPool.Get().(hash.Hash)
	hasher.Reset()
	hasher.Write(data)
	var res Hash
	hasher.Sum(res[:0])
	blake2bHasherPool.Put(hasher)
	return res
}

// HashFromBytes reinterprets a raw 32 byte digest as a Hash. It is meant
// for decoding stored digests, new hashes should be produced by Blake2b.
func HashFromBytes(b []byte) (Hash, error) {
	var res Hash
	if len(b) != HashSize {
		return res, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidHashLength, len(b), HashSize)
	}
	copy(res[:], b)
	return res, nil
}

// HashFromHex parses a hex encoded digest. An optional 0x prefix is accepted.
func HashFromHex(s string) (Hash, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, err
	}
	return HashFromBytes(b)
}

// Compare orders hashes by their raw bytes.
func (h Hash) Compare(other Hash) int {
	return bytes.Compare(h[:], other[:])
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) GoString() string {
	return fmt.Sprintf("Blake2bHash(0x%x)", h[:])
}

// SerializedLength is the size of the raw digest, hashes carry no length prefix.
func (h Hash) SerializedLength() int {
	return HashSize
}

func (h Hash) AppendBytes(dst []byte) []byte {
	return append(dst, h[:]...)
}

// CID renders the hash as a CIDv1 using the raw codec and the blake2b-256
// multihash code.
func (h Hash) CID() (cid.Cid, error) {
	mh, err := multihash.Encode(h[:], multihash.BLAKE2B_MIN+HashSize-1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, multihash.Multihash(mh)), nil
}
