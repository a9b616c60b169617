// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"bytes"
	"fmt"

	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/types"
)

// PublicKey is the ed25519 public key identifying an account.
type PublicKey [32]byte

// AssociatedKeys are the keys permitted to act on behalf of an account,
// together with their weights.
type AssociatedKeys map[PublicKey]types.Weight

var associatedKeysSerializer = bytesrepr.MapSerializer[PublicKey, types.Weight]{
	Key:   publicKeySerializer{},
	Value: bytesrepr.Codec[types.Weight, *types.Weight]{},
	Compare: func(a, b PublicKey) int {
		return bytes.Compare(a[:], b[:])
	},
}

// TotalWeight sums the weights of all associated keys.
func (a AssociatedKeys) TotalWeight() int {
	total := 0
	for _, weight := range a {
		total += int(weight)
	}
	return total
}

// ActionThresholds are the weights required to deploy and to manage keys.
type ActionThresholds struct {
	Deployment    types.Weight
	KeyManagement types.Weight
}

const ActionThresholdsSerializedLength = 2 * types.WeightSerializedLength

// Account is the state of an account.
type Account struct {
	PublicKey        PublicKey
	NamedKeys        NamedKeys
	MainPurse        types.URef
	AssociatedKeys   AssociatedKeys
	ActionThresholds ActionThresholds
}

// NewAccount creates an account controlled by its own key alone.
func NewAccount(publicKey PublicKey, mainPurse types.URef) Account {
	return Account{
		PublicKey:        publicKey,
		NamedKeys:        NamedKeys{},
		MainPurse:        mainPurse,
		AssociatedKeys:   AssociatedKeys{publicKey: 1},
		ActionThresholds: ActionThresholds{Deployment: 1, KeyManagement: 1},
	}
}

func (a Account) Equal(other Account) bool {
	if a.PublicKey != other.PublicKey || a.MainPurse != other.MainPurse || a.ActionThresholds != other.ActionThresholds {
		return false
	}
	if !a.NamedKeys.Equal(other.NamedKeys) || len(a.AssociatedKeys) != len(other.AssociatedKeys) {
		return false
	}
	for key, weight := range a.AssociatedKeys {
		if o, found := other.AssociatedKeys[key]; !found || o != weight {
			return false
		}
	}
	return true
}

func (a Account) String() string {
	return fmt.Sprintf("Account(%x, purse: %v, named keys: %d, associated keys: %d)",
		a.PublicKey[:], a.MainPurse, len(a.NamedKeys), len(a.AssociatedKeys))
}

func (a Account) SerializedLength() int {
	return len(a.PublicKey) +
		a.NamedKeys.SerializedLength() +
		types.URefSerializedLength +
		associatedKeysSerializer.SerializedLength(a.AssociatedKeys) +
		ActionThresholdsSerializedLength
}

func (a Account) AppendBytes(dst []byte) []byte {
	dst = append(dst, a.PublicKey[:]...)
	dst = a.NamedKeys.AppendBytes(dst)
	dst = a.MainPurse.AppendBytes(dst)
	dst = associatedKeysSerializer.Append(dst, a.AssociatedKeys)
	dst = a.ActionThresholds.Deployment.AppendBytes(dst)
	return a.ActionThresholds.KeyManagement.AppendBytes(dst)
}

func (a *Account) FromBytes(b []byte) ([]byte, error) {
	var res Account
	var err error
	if res.PublicKey, b, err = bytesrepr.Read32(b); err != nil {
		return nil, err
	}
	if b, err = res.NamedKeys.FromBytes(b); err != nil {
		return nil, err
	}
	if b, err = res.MainPurse.FromBytes(b); err != nil {
		return nil, err
	}
	if res.AssociatedKeys, b, err = associatedKeysSerializer.Read(b); err != nil {
		return nil, err
	}
	if b, err = res.ActionThresholds.Deployment.FromBytes(b); err != nil {
		return nil, err
	}
	if b, err = res.ActionThresholds.KeyManagement.FromBytes(b); err != nil {
		return nil, err
	}
	*a = res
	return b, nil
}

type publicKeySerializer struct{}

func (publicKeySerializer) SerializedLength(PublicKey) int {
	return len(PublicKey{})
}

func (publicKeySerializer) Append(dst []byte, key PublicKey) []byte {
	return append(dst, key[:]...)
}

func (publicKeySerializer) Read(b []byte) (PublicKey, []byte, error) {
	key, rest, err := bytesrepr.Read32(b)
	return PublicKey(key), rest, err
}
