// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package types

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/cltype"
	"github.com/Fantom-foundation/clstate/common"
)

// KeyTag identifies the variant of a Key. The values are part of the wire format.
type KeyTag uint8

const (
	KeyTagAccount KeyTag = iota
	KeyTagHash
	KeyTagURef
	KeyTagLocal
	numKeyTags
)

const (
	KeyHashLength          = 32
	KeyLocalSeedLength     = 32
	KeyLocalLength         = KeyLocalSeedLength + common.HashSize
	KeyTagLength           = 1
	KeyMaxSerializedLength = KeyTagLength + KeyLocalLength

	accountPrefix = "account-ed25519-"
	hashPrefix    = "hash-"
	localPrefix   = "local-"
)

// Key addresses a value in the global state.
type Key struct {
	tag KeyTag
	// addr is the account or hash address, or the seed of a local key.
	addr [32]byte
	// hash is the hash of the local key bytes.
	hash common.Hash
	uref URef
}

func NewAccountKey(addr [32]byte) Key {
	return Key{tag: KeyTagAccount, addr: addr}
}

func NewHashKey(addr [KeyHashLength]byte) Key {
	return Key{tag: KeyTagHash, addr: addr}
}

func NewURefKey(uref URef) Key {
	return Key{tag: KeyTagURef, uref: uref}
}

// NewLocalKey creates a key local to the context identified by seed. The
// key bytes are hashed.
func NewLocalKey(seed [KeyLocalSeedLength]byte, keyBytes []byte) Key {
	return Key{tag: KeyTagLocal, addr: seed, hash: common.Blake2b(keyBytes)}
}

func (k Key) Tag() KeyTag {
	return k.tag
}

func (k Key) AsAccount() ([32]byte, bool) {
	return k.addr, k.tag == KeyTagAccount
}

func (k Key) AsHash() ([KeyHashLength]byte, bool) {
	return k.addr, k.tag == KeyTagHash
}

func (k Key) AsURef() (URef, bool) {
	return k.uref, k.tag == KeyTagURef
}

// AsLocal returns the seed followed by the hash of a local key.
func (k Key) AsLocal() ([KeyLocalLength]byte, bool) {
	var res [KeyLocalLength]byte
	if k.tag != KeyTagLocal {
		return res, false
	}
	copy(res[:], k.addr[:])
	copy(res[KeyLocalSeedLength:], k.hash[:])
	return res, true
}

// Normalize strips the access rights of URef keys. Other keys are returned
// unchanged.
func (k Key) Normalize() Key {
	if k.tag == KeyTagURef {
		return NewURefKey(k.uref.RemoveAccessRights())
	}
	return k
}

// AsString renders the key in the form used by named key stores.
func (k Key) AsString() string {
	switch k.tag {
	case KeyTagAccount:
		return accountPrefix + hex.EncodeToString(k.addr[:])
	case KeyTagHash:
		return hashPrefix + hex.EncodeToString(k.addr[:])
	case KeyTagURef:
		return k.uref.AsString()
	case KeyTagLocal:
		return localPrefix + k.hash.String()
	}
	panic(fmt.Sprintf("unknown key tag %d", k.tag))
}

// ParseKey parses the output of AsString. Local keys can not be parsed,
// their formatted form lacks the seed.
func ParseKey(s string) (Key, error) {
	if rest, found := strings.CutPrefix(s, accountPrefix); found {
		addr, err := parseAddr(rest)
		return NewAccountKey(addr), err
	}
	if rest, found := strings.CutPrefix(s, hashPrefix); found {
		addr, err := parseAddr(rest)
		return NewHashKey(addr), err
	}
	if strings.HasPrefix(s, urefPrefix) {
		uref, err := ParseURef(s)
		return NewURefKey(uref), err
	}
	return Key{}, fmt.Errorf("%w: unsupported key %q", ErrInvalidFormattedString, s)
}

func parseAddr(s string) ([32]byte, error) {
	var res [32]byte
	if len(s) != 2*len(res) {
		return res, fmt.Errorf("%w: address %q has wrong length", ErrInvalidFormattedString, s)
	}
	if _, err := hex.Decode(res[:], []byte(s)); err != nil {
		return res, fmt.Errorf("%w: %v", ErrInvalidFormattedString, err)
	}
	return res, nil
}

func (k Key) String() string {
	switch k.tag {
	case KeyTagAccount:
		return fmt.Sprintf("Key::Account(%x)", k.addr[:])
	case KeyTagHash:
		return fmt.Sprintf("Key::Hash(%x)", k.addr[:])
	case KeyTagURef:
		return fmt.Sprintf("Key::URef(%x, %v)", k.uref.addr[:], k.uref.rights)
	case KeyTagLocal:
		return fmt.Sprintf("Key::Local(%x)", k.hash[:])
	}
	return fmt.Sprintf("Key::Unknown(%d)", k.tag)
}

// Compare orders keys by variant first, then by their content.
func (k Key) Compare(other Key) int {
	if k.tag != other.tag {
		if k.tag < other.tag {
			return -1
		}
		return 1
	}
	switch k.tag {
	case KeyTagURef:
		return k.uref.Compare(other.uref)
	case KeyTagLocal:
		if c := bytes.Compare(k.addr[:], other.addr[:]); c != 0 {
			return c
		}
		return k.hash.Compare(other.hash)
	}
	return bytes.Compare(k.addr[:], other.addr[:])
}

func (Key) CLType() cltype.CLType { return cltype.Key }
func (Key) isValue()              {}

// URefOffsets reports the URef embedded in URef keys.
func (k Key) URefOffsets() []uint32 {
	if k.tag == KeyTagURef {
		return []uint32{KeyTagLength}
	}
	return nil
}

func (k Key) SerializedLength() int {
	switch k.tag {
	case KeyTagURef:
		return KeyTagLength + URefSerializedLength
	case KeyTagLocal:
		return KeyTagLength + KeyLocalLength
	}
	return KeyTagLength + KeyHashLength
}

func (k Key) AppendBytes(dst []byte) []byte {
	dst = append(dst, byte(k.tag))
	switch k.tag {
	case KeyTagURef:
		return k.uref.AppendBytes(dst)
	case KeyTagLocal:
		dst = append(dst, k.addr[:]...)
		return k.hash.AppendBytes(dst)
	}
	return append(dst, k.addr[:]...)
}

func (k *Key) FromBytes(b []byte) ([]byte, error) {
	tag, rest, err := bytesrepr.ReadTag(b, uint8(numKeyTags))
	if err != nil {
		return nil, err
	}
	res := Key{tag: KeyTag(tag)}
	switch res.tag {
	case KeyTagURef:
		rest, err = res.uref.FromBytes(rest)
	case KeyTagLocal:
		if res.addr, rest, err = bytesrepr.Read32(rest); err == nil {
			res.hash, rest, err = bytesrepr.ReadHash(rest)
		}
	default:
		res.addr, rest, err = bytesrepr.Read32(rest)
	}
	if err != nil {
		return nil, err
	}
	*k = res
	return rest, nil
}
