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
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/cltype"
	"github.com/Fantom-foundation/clstate/common"
	"github.com/holiman/uint256"
)

const ErrIntegerOverflow = common.ConstError("integer out of range")

// U128 is an unsigned 128 bit integer, encoded as 16 little endian bytes.
type U128 struct {
	v uint256.Int
}

// NewU128 converts x, which must fit into 128 bits.
func NewU128(x *uint256.Int) (U128, error) {
	if x.BitLen() > 128 {
		return U128{}, fmt.Errorf("%w: %v does not fit into 128 bits", ErrIntegerOverflow, x)
	}
	return U128{v: *x}, nil
}

func U128From64(x uint64) U128 {
	return U128{v: *uint256.NewInt(x)}
}

// Int returns a copy of the value.
func (v U128) Int() *uint256.Int {
	res := v.v
	return &res
}

func (v U128) String() string {
	return v.v.ToBig().String()
}

func (U128) CLType() cltype.CLType { return cltype.U128 }
func (U128) SerializedLength() int { return bytesrepr.U128SerializedLength }
func (U128) URefOffsets() []uint32 { return nil }
func (U128) isValue() {}

func (v U128) AppendBytes(dst []byte) []byte {
	return appendLimbs(dst, v.v[:2])
}

func (v *U128) FromBytes(b []byte) ([]byte, error) {
	var res uint256.Int
	rest, err := readLimbs(b, res[:2])
	if err != nil {
		return nil, err
	}
	v.v = res
	return rest, nil
}

// U256 is an unsigned 256 bit integer, encoded as 32 little endian bytes.
type U256 struct {
	v uint256.Int
}

func NewU256(x *uint256.Int) U256 {
	return U256{v: *x}
}

func U256From64(x uint64) U256 {
	return U256{v: *uint256.NewInt(x)}
}

// Int returns a copy of the value.
func (v U256) Int() *uint256.Int {
	res := v.v
	return &res
}

func (v U256) String() string {
	return v.v.ToBig().String()
}

func (U256) CLType() cltype.CLType { return cltype.U256 }
func (U256) SerializedLength() int { return bytesrepr.U256SerializedLength }
func (U256) URefOffsets() []uint32 { return nil }
func (U256) isValue() {}

func (v U256) AppendBytes(dst []byte) []byte {
	return appendLimbs(dst, v.v[:])
}

func (v *U256) FromBytes(b []byte) ([]byte, error) {
	var res uint256.Int
	rest, err := readLimbs(b, res[:])
	if err != nil {
		return nil, err
	}
	v.v = res
	return rest, nil
}

// U512 is an unsigned 512 bit integer, encoded as 64 little endian bytes.
// It is kept as two 256 bit halves.
type U512 struct {
	lo, hi uint256.Int
}

var maxU256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// NewU512 converts x, which must be non-negative and fit into 512 bits.
func NewU512(x *big.Int) (U512, error) {
	if x.Sign() < 0 || x.BitLen() > 512 {
		return U512{}, fmt.Errorf("%w: %v does not fit into 512 bits", ErrIntegerOverflow, x)
	}
	lo, _ := uint256.FromBig(new(big.Int).And(x, maxU256))
	hi, _ := uint256.FromBig(new(big.Int).Rsh(x, 256))
	return U512{lo: *lo, hi: *hi}, nil
}

func U512From64(x uint64) U512 {
	return U512{lo: *uint256.NewInt(x)}
}

// Big returns the value as a big integer.
func (v U512) Big() *big.Int {
	res := v.hi.ToBig()
	res.Lsh(res, 256)
	return res.Or(res, v.lo.ToBig())
}

func (v U512) String() string {
	return v.Big().String()
}

func (U512) CLType() cltype.CLType { return cltype.U512 }
func (U512) SerializedLength() int { return bytesrepr.U512SerializedLength }
func (U512) URefOffsets() []uint32 { return nil }
func (U512) isValue() {}

func (v U512) AppendBytes(dst []byte) []byte {
	dst = appendLimbs(dst, v.lo[:])
	return appendLimbs(dst, v.hi[:])
}

func (v *U512) FromBytes(b []byte) ([]byte, error) {
	var lo, hi uint256.Int
	rest, err := readLimbs(b, lo[:])
	if err != nil {
		return nil, err
	}
	if rest, err = readLimbs(rest, hi[:]); err != nil {
		return nil, err
	}
	v.lo, v.hi = lo, hi
	return rest, nil
}

// uint256.Int keeps its 64 bit limbs least significant first, so writing
// them in order yields the little endian encoding.
func appendLimbs(dst []byte, limbs []uint64) []byte {
	for _, limb := range limbs {
		dst = binary.LittleEndian.AppendUint64(dst, limb)
	}
	return dst
}

func readLimbs(b []byte, limbs []uint64) ([]byte, error) {
	data, rest, err := bytesrepr.SafeSplitAt(b, 8*len(limbs))
	if err != nil {
		return nil, err
	}
	for i := range limbs {
		limbs[i] = binary.LittleEndian.Uint64(data[8*i:])
	}
	return rest, nil
}
