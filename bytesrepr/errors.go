// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package bytesrepr

import "github.com/Fantom-foundation/clstate/common"

const (
	// ErrEarlyEndOfStream is returned when the input ends before a value is complete.
	ErrEarlyEndOfStream = common.ConstError("early end of stream")
	// ErrFormatting is returned for structurally invalid input, e.g. a bad tag,
	// boolean or UTF-8 sequence.
	ErrFormatting = common.ConstError("formatting error")
	// ErrLeftOverBytes is returned by top-level decodes if input remains.
	ErrLeftOverBytes = common.ConstError("left over bytes")
	// ErrOutOfMemory is returned if an encoding would exceed the u32 size limit.
	ErrOutOfMemory = common.ConstError("out of memory")
)
