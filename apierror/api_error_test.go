// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package apierror

import (
	"fmt"
	"testing"

	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/cltype"
	"github.com/Fantom-foundation/clstate/types"
	"github.com/stretchr/testify/require"
)

func TestApiError_ReservedCodesAreContiguous(t *testing.T) {
	require.Equal(t, uint32(1), None.Code())
	require.Equal(t, uint32(8), GetKey.Code())
	require.Equal(t, uint32(16), CLTypeMismatch.Code())
	require.Equal(t, uint32(38), Unhandled.Code())
	require.Equal(t, uint32(42), AllocLayout.Code())
	for code := uint32(1); code <= 42; code++ {
		require.Equal(t, ApiError(code), FromCode(code))
	}
}

func TestApiError_RangeBoundaries(t *testing.T) {
	require.Equal(t, uint32(65024), Mint(0).Code())
	require.Equal(t, uint32(65279), Mint(255).Code())
	require.Equal(t, uint32(65280), ProofOfStake(0).Code())
	require.Equal(t, uint32(65535), ProofOfStake(255).Code())
	require.Equal(t, uint32(65536), User(0).Code())
	require.Equal(t, uint32(131071), User(65535).Code())

	for _, code := range []uint32{0, 43, 65023, 131072, 1 << 31} {
		require.Equal(t, Unhandled, FromCode(code), "code %d", code)
	}
}

func TestApiError_RangeAccessors(t *testing.T) {
	m, ok := Mint(7).AsMint()
	require.True(t, ok)
	require.Equal(t, uint8(7), m)
	_, ok = Mint(7).AsProofOfStake()
	require.False(t, ok)

	p, ok := ProofOfStake(255).AsProofOfStake()
	require.True(t, ok)
	require.Equal(t, uint8(255), p)
	_, ok = ProofOfStake(255).AsUser()
	require.False(t, ok)

	u, ok := User(65535).AsUser()
	require.True(t, ok)
	require.Equal(t, uint16(65535), u)
	_, ok = GetKey.AsUser()
	require.False(t, ok)
}

func TestApiError_Formatting(t *testing.T) {
	tests := []struct {
		err     ApiError
		debug   string
		display string
	}{
		{GetKey, "ApiError::GetKey [8]", "ApiError::GetKey [8]"},
		{Mint(0), "ApiError::Mint(0) [65024]", "Mint error: 0"},
		{ProofOfStake(3), "ApiError::ProofOfStake(3) [65283]", "PoS error: 3"},
		{User(12), "ApiError::User(12) [65548]", "User error: 12"},
	}
	for _, test := range tests {
		require.Equal(t, test.debug, test.err.String())
		require.Equal(t, test.display, test.err.Error())
	}
}

func TestApiError_FromCodecError(t *testing.T) {
	require.Equal(t, EncodingEndOfSlice, FromCodecError(bytesrepr.ErrEarlyEndOfStream))
	require.Equal(t, EncodingLeftOverBytes, FromCodecError(fmt.Errorf("decoding: %w", bytesrepr.ErrLeftOverBytes)))
	require.Equal(t, EncodingSizeLimit, FromCodecError(bytesrepr.ErrOutOfMemory))
	require.Equal(t, Deserialize, FromCodecError(bytesrepr.ErrFormatting))
	require.Equal(t, Unhandled, FromCodecError(fmt.Errorf("something else")))
}

func TestApiError_FromCLValueError(t *testing.T) {
	value, err := types.FromT(types.U8(5))
	require.NoError(t, err)

	_, err = value.IntoT(cltype.Bool)
	require.Error(t, err)
	require.Equal(t, CLTypeMismatch, FromCLValueError(err))

	var decoded types.CLValue
	err = bytesrepr.Deserialize([]byte{1, 0, 0}, &decoded)
	require.Error(t, err)
	require.Equal(t, EncodingEndOfSlice, FromCLValueError(err))
}

func TestApiError_Int32RoundTrip(t *testing.T) {
	require.Equal(t, int32(0), ToInt32(nil))
	require.NoError(t, FromInt32(0))
	require.Equal(t, Unhandled, FromInt32(-1))
	require.Equal(t, int32(Unhandled), ToInt32(fmt.Errorf("not a revert code")))

	for _, e := range []ApiError{None, GetKey, AllocLayout, Mint(0), Mint(255), ProofOfStake(0), ProofOfStake(255), User(0), User(65535)} {
		code := ToInt32(fmt.Errorf("wrapped: %w", e))
		require.Equal(t, int32(e.Code()), code)
		require.Equal(t, e, FromInt32(code))
	}
}
