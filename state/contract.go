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

// Contract is stored contract code together with its named keys.
type Contract struct {
	Bytes           []byte
	NamedKeys       NamedKeys
	ProtocolVersion types.ProtocolVersion
}

func (c Contract) Equal(other Contract) bool {
	return bytes.Equal(c.Bytes, other.Bytes) &&
		c.NamedKeys.Equal(other.NamedKeys) &&
		c.ProtocolVersion == other.ProtocolVersion
}

func (c Contract) String() string {
	return fmt.Sprintf("Contract(%d bytes, named keys: %d, protocol version: %v)",
		len(c.Bytes), len(c.NamedKeys), c.ProtocolVersion)
}

func (c Contract) SerializedLength() int {
	return bytesrepr.BytesSerializedLength(c.Bytes) +
		c.NamedKeys.SerializedLength() +
		c.ProtocolVersion.SerializedLength()
}

func (c Contract) AppendBytes(dst []byte) []byte {
	dst = bytesrepr.AppendBytes(dst, c.Bytes)
	dst = c.NamedKeys.AppendBytes(dst)
	return c.ProtocolVersion.AppendBytes(dst)
}

func (c *Contract) FromBytes(b []byte) ([]byte, error) {
	var res Contract
	var err error
	if res.Bytes, b, err = bytesrepr.ReadBytes(b); err != nil {
		return nil, err
	}
	if b, err = res.NamedKeys.FromBytes(b); err != nil {
		return nil, err
	}
	if b, err = res.ProtocolVersion.FromBytes(b); err != nil {
		return nil, err
	}
	*c = res
	return b, nil
}
