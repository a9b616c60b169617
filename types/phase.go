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
	"fmt"

	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/cltype"
)

// Phase is the stage of a deploy's execution.
type Phase uint8

const (
	PhaseSystem Phase = iota
	PhasePayment
	PhaseSession
	PhaseFinalizePayment
	numPhases
)

const PhaseSerializedLength = bytesrepr.U8SerializedLength

func (p Phase) String() string {
	switch p {
	case PhaseSystem:
		return "System"
	case PhasePayment:
		return "Payment"
	case PhaseSession:
		return "Session"
	case PhaseFinalizePayment:
		return "FinalizePayment"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

func (Phase) CLType() cltype.CLType {
	return cltype.U8
}

func (Phase) SerializedLength() int {
	return PhaseSerializedLength
}

func (p Phase) AppendBytes(dst []byte) []byte {
	return append(dst, byte(p))
}

func (p *Phase) FromBytes(b []byte) ([]byte, error) {
	tag, rest, err := bytesrepr.ReadTag(b, uint8(numPhases))
	if err != nil {
		return nil, err
	}
	*p = Phase(tag)
	return rest, nil
}
