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
	"slices"
	"strings"

	"github.com/Fantom-foundation/clstate/bytesrepr"
	"github.com/Fantom-foundation/clstate/cltype"
)

type MapEntry struct {
	Key   Value
	Value Value
}

// Map is an ordered map. Entries are kept sorted by key, which is also the
// order they are encoded in.
type Map struct {
	key, value cltype.CLType
	entries    []MapEntry
}

// NewMap creates a map with the given key and value types. Keys must be unique.
func NewMap(key, value cltype.CLType, entries ...MapEntry) (Map, error) {
	for _, entry := range entries {
		if err := checkType(key, entry.Key); err != nil {
			return Map{}, err
		}
		if err := checkType(value, entry.Value); err != nil {
			return Map{}, err
		}
	}
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b MapEntry) int {
		return Compare(a.Key, b.Key)
	})
	for i := 1; i < len(sorted); i++ {
		if Compare(sorted[i-1].Key, sorted[i].Key) == 0 {
			return Map{}, fmt.Errorf("%w: %v", ErrDuplicateMapKey, sorted[i].Key)
		}
	}
	return Map{key: key, value: value, entries: sorted}, nil
}

func (m Map) KeyType() cltype.CLType {
	return m.key
}

func (m Map) ValueType() cltype.CLType {
	return m.value
}

func (m Map) Len() int {
	return len(m.entries)
}

// Get looks up the value stored for key.
func (m Map) Get(key Value) (Value, bool) {
	pos, found := slices.BinarySearchFunc(m.entries, key, func(entry MapEntry, key Value) int {
		return Compare(entry.Key, key)
	})
	if !found {
		return nil, false
	}
	return m.entries[pos].Value, true
}

// Entries returns the entries in ascending key order.
func (m Map) Entries() []MapEntry {
	return slices.Clone(m.entries)
}

func (m Map) String() string {
	parts := make([]string, len(m.entries))
	for i, entry := range m.entries {
		parts[i] = fmt.Sprintf("%v: %v", entry.Key, entry.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (m Map) CLType() cltype.CLType { return cltype.Map(m.key, m.value) }
func (Map) isValue()                {}

func (m Map) SerializedLength() int {
	size := bytesrepr.U32SerializedLength
	for _, entry := range m.entries {
		size += entry.Key.SerializedLength() + entry.Value.SerializedLength()
	}
	return size
}

func (m Map) AppendBytes(dst []byte) []byte {
	dst = bytesrepr.AppendLength(dst, len(m.entries))
	for _, entry := range m.entries {
		dst = entry.Key.AppendBytes(dst)
		dst = entry.Value.AppendBytes(dst)
	}
	return dst
}

func (m Map) URefOffsets() []uint32 {
	var res []uint32
	pos := bytesrepr.U32SerializedLength
	for _, entry := range m.entries {
		res = appendShifted(res, pos, entry.Key.URefOffsets())
		pos += entry.Key.SerializedLength()
		res = appendShifted(res, pos, entry.Value.URefOffsets())
		pos += entry.Value.SerializedLength()
	}
	return res
}

// decodeMap accepts keys in strictly ascending order only, so every decoded
// map encodes back to the input.
func (d *decoder) decodeMap(t cltype.CLType, b []byte) (Value, []byte, error) {
	n, rest, err := bytesrepr.ReadLength(b)
	if err != nil {
		return nil, nil, err
	}
	entries := make([]MapEntry, 0, min(n, len(rest)))
	for i := 0; i < n; i++ {
		var entry MapEntry
		if entry.Key, rest, err = d.decode(t.Key(), rest); err != nil {
			return nil, nil, err
		}
		if i > 0 && Compare(entries[i-1].Key, entry.Key) >= 0 {
			return nil, nil, fmt.Errorf("%w: map keys not in strictly ascending order", bytesrepr.ErrFormatting)
		}
		if entry.Value, rest, err = d.decode(t.Value(), rest); err != nil {
			return nil, nil, err
		}
		entries = append(entries, entry)
	}
	return Map{key: t.Key(), value: t.Value(), entries: entries}, rest, nil
}
