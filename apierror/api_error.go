// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package apierror maps execution failures onto the u32 revert codes
// reported by contract code to the host.
package apierror

import (
	"errors"
	"fmt"

	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/types"
)

// ApiError is a revert code. Codes 1 to 42 are reserved, the remaining
// valid codes are partitioned into Mint, ProofOfStake and User ranges.
type ApiError uint32

const (
	None ApiError = iota + 1
	MissingArgument
	InvalidArgument
	Deserialize
	Read
	ValueNotFound
	ContractNotFound
	GetKey
	UnexpectedKeyVariant
	UnexpectedContractRefVariant
	InvalidPurseName
	InvalidPurse
	UpgradeContractAtURef
	Transfer
	NoAccessRights
	CLTypeMismatch
	EncodingExcessiveDiscriminants
	EncodingEndOfSlice
	EncodingLeftOverBytes
	EncodingInvalidUtf8
	EncodingInvalidBool
	EncodingInvalidChar
	EncodingInvalidTag
	EncodingUnsupported
	EncodingSizeLimit
	EncodingSequenceMustHaveLength
	EncodingCustom
	MaxKeysLimit
	DuplicateKey
	PermissionDenied
	MissingKey
	ThresholdViolation
	KeyManagementThreshold
	DeploymentThreshold
	InsufficientTotalWeight
	InvalidSystemContract
	PurseNotCreated
	Unhandled
	BufferTooSmall
	HostBufferEmpty
	HostBufferFull
	AllocLayout
)

const (
	mintOffset         = 65024
	proofOfStakeOffset = 65280
	userOffset         = 65536
	userEnd            = userOffset + 1<<16
)

var reservedNames = [...]string{
	None:                           "None",
	MissingArgument:                "MissingArgument",
	InvalidArgument:                "InvalidArgument",
	Deserialize:                    "Deserialize",
	Read:                           "Read",
	ValueNotFound:                  "ValueNotFound",
	ContractNotFound:               "ContractNotFound",
	GetKey:                         "GetKey",
	UnexpectedKeyVariant:           "UnexpectedKeyVariant",
	UnexpectedContractRefVariant:   "UnexpectedContractRefVariant",
	InvalidPurseName:               "InvalidPurseName",
	InvalidPurse:                   "InvalidPurse",
	UpgradeContractAtURef:          "UpgradeContractAtURef",
	Transfer:                       "Transfer",
	NoAccessRights:                 "NoAccessRights",
	CLTypeMismatch:                 "CLTypeMismatch",
	EncodingExcessiveDiscriminants: "EncodingExcessiveDiscriminants",
	EncodingEndOfSlice:             "EncodingEndOfSlice",
	EncodingLeftOverBytes:          "EncodingLeftOverBytes",
	EncodingInvalidUtf8:            "EncodingInvalidUtf8",
	EncodingInvalidBool:            "EncodingInvalidBool",
	EncodingInvalidChar:            "EncodingInvalidChar",
	EncodingInvalidTag:             "EncodingInvalidTag",
	EncodingUnsupported:            "EncodingUnsupported",
	EncodingSizeLimit:              "EncodingSizeLimit",
	EncodingSequenceMustHaveLength: "EncodingSequenceMustHaveLength",
	EncodingCustom:                 "EncodingCustom",
	MaxKeysLimit:                   "MaxKeysLimit",
	DuplicateKey:                   "DuplicateKey",
	PermissionDenied:               "PermissionDenied",
	MissingKey:                     "MissingKey",
	ThresholdViolation:             "ThresholdViolation",
	KeyManagementThreshold:         "KeyManagementThreshold",
	DeploymentThreshold:            "DeploymentThreshold",
	InsufficientTotalWeight:        "InsufficientTotalWeight",
	InvalidSystemContract:          "InvalidSystemContract",
	PurseNotCreated:                "PurseNotCreated",
	Unhandled:                      "Unhandled",
	BufferTooSmall:                 "BufferTooSmall",
	HostBufferEmpty:                "HostBufferEmpty",
	HostBufferFull:                 "HostBufferFull",
	AllocLayout:                    "AllocLayout",
}

// Mint returns the error code of a mint contract failure.
func Mint(code uint8) ApiError {
	return ApiError(mintOffset + uint32(code))
}

// ProofOfStake returns the error code of a proof-of-stake contract failure.
func ProofOfStake(code uint8) ApiError {
	return ApiError(proofOfStakeOffset + uint32(code))
}

// User returns a contract defined error code.
func User(code uint16) ApiError {
	return ApiError(userOffset + uint32(code))
}

// FromCode maps a raw code to an error. Codes outside of all known ranges
// are reported as Unhandled.
func FromCode(code uint32) ApiError {
	switch {
	case code >= uint32(None) && code <= uint32(AllocLayout):
		return ApiError(code)
	case code >= mintOffset && code < userEnd:
		return ApiError(code)
	default:
		return Unhandled
	}
}

// Code returns the numeric revert code.
func (e ApiError) Code() uint32 {
	return uint32(e)
}

// AsMint returns the mint specific code if e is in the mint range.
func (e ApiError) AsMint() (uint8, bool) {
	if e >= mintOffset && e < proofOfStakeOffset {
		return uint8(e - mintOffset), true
	}
	return 0, false
}

// AsProofOfStake returns the proof-of-stake specific code if e is in its range.
func (e ApiError) AsProofOfStake() (uint8, bool) {
	if e >= proofOfStakeOffset && e < userOffset {
		return uint8(e - proofOfStakeOffset), true
	}
	return 0, false
}

// AsUser returns the user code if e is in the user range.
func (e ApiError) AsUser() (uint16, bool) {
	if e >= userOffset && e < userEnd {
		return uint16(e - userOffset), true
	}
	return 0, false
}

// String renders the variant name and code, e.g. "ApiError::GetKey [8]".
func (e ApiError) String() string {
	if code, ok := e.AsMint(); ok {
		return fmt.Sprintf("ApiError::Mint(%d) [%d]", code, e.Code())
	}
	if code, ok := e.AsProofOfStake(); ok {
		return fmt.Sprintf("ApiError::ProofOfStake(%d) [%d]", code, e.Code())
	}
	if code, ok := e.AsUser(); ok {
		return fmt.Sprintf("ApiError::User(%d) [%d]", code, e.Code())
	}
	if int(e) < len(reservedNames) && reservedNames[e] != "" {
		return fmt.Sprintf("ApiError::%s [%d]", reservedNames[e], e.Code())
	}
	return fmt.Sprintf("ApiError::Unhandled [%d]", e.Code())
}

func (e ApiError) Error() string {
	if code, ok := e.AsMint(); ok {
		return fmt.Sprintf("Mint error: %d", code)
	}
	if code, ok := e.AsProofOfStake(); ok {
		return fmt.Sprintf("PoS error: %d", code)
	}
	if code, ok := e.AsUser(); ok {
		return fmt.Sprintf("User error: %d", code)
	}
	return e.String()
}

// FromCodecError maps a bytesrepr failure to its revert code.
func FromCodecError(err error) ApiError {
	switch {
	case errors.Is(err, bytesrepr.ErrEarlyEndOfStream):
		return EncodingEndOfSlice
	case errors.Is(err, bytesrepr.ErrLeftOverBytes):
		return EncodingLeftOverBytes
	case errors.Is(err, bytesrepr.ErrOutOfMemory):
		return EncodingSizeLimit
	case errors.Is(err, bytesrepr.ErrFormatting):
		return Deserialize
	default:
		return Unhandled
	}
}

// FromCLValueError maps a failed CLValue conversion to its revert code.
func FromCLValueError(err error) ApiError {
	var mismatch *types.TypeMismatch
	if errors.As(err, &mismatch) {
		return CLTypeMismatch
	}
	return FromCodecError(err)
}

// ToInt32 converts the outcome of a host call into the code returned to the
// caller. Success is 0; errors that are not revert codes are Unhandled.
func ToInt32(err error) int32 {
	if err == nil {
		return 0
	}
	var apiErr ApiError
	if !errors.As(err, &apiErr) {
		apiErr = Unhandled
	}
	return int32(apiErr)
}

// FromInt32 is the inverse of ToInt32.
func FromInt32(code int32) error {
	switch {
	case code == 0:
		return nil
	case code < 0:
		return Unhandled
	default:
		return FromCode(uint32(code))
	}
}
