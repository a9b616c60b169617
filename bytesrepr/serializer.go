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

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Fantom-foundation/clstate/common"
	"golang.org/x/exp/constraints"
)

// Serializer encodes and decodes values of type T. Implementations are
// stateless and may be shared.
type Serializer[T any] interface {
	// SerializedLength is the exact number of bytes Append produces for value.
	SerializedLength(value T) int
	// Append appends the encoding of value to dst.
	Append(dst []byte, value T) []byte
	// Read decodes a value from a prefix of b and returns the remainder.
	Read(b []byte) (T, []byte, error)
}

// SerializeWith encodes value using the given serializer.
func SerializeWith[T any](s Serializer[T], value T) ([]byte, error) {
	size := s.SerializedLength(value)
	if err := CheckSize(size); err != nil {
		return nil, err
	}
	return s.Append(make([]byte, 0, size), value), nil
}

// DeserializeWith decodes a value that must span the full input.
func DeserializeWith[T any](s Serializer[T], b []byte) (T, error) {
	value, rest, err := s.Read(b)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := CheckEmpty(rest); err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}

// Codec adapts a type with an Encoder value receiver and a Decoder pointer
// receiver to the Serializer interface.
type Codec[T Encoder, P interface {
	*T
	Decoder
}] struct{}

func (Codec[T, P]) SerializedLength(value T) int {
	return value.SerializedLength()
}

func (Codec[T, P]) Append(dst []byte, value T) []byte {
	return value.AppendBytes(dst)
}

func (Codec[T, P]) Read(b []byte) (T, []byte, error) {
	var value T
	rest, err := P(&value).FromBytes(b)
	return value, rest, err
}

// BoolSerializer is a Serializer of the bool type.
type BoolSerializer struct{}

func (BoolSerializer) SerializedLength(bool) int { return BoolSerializedLength }
func (BoolSerializer) Append(dst []byte, value bool) []byte { return AppendBool(dst, value) }
func (BoolSerializer) Read(b []byte) (bool, []byte, error) { return ReadBool(b) }

// U8Serializer is a Serializer of the uint8 type.
type U8Serializer struct{}

func (U8Serializer) SerializedLength(uint8) int { return U8SerializedLength }
func (U8Serializer) Append(dst []byte, value uint8) []byte { return AppendU8(dst, value) }
func (U8Serializer) Read(b []byte) (uint8, []byte, error) { return ReadU8(b) }

// U32Serializer is a Serializer of the uint32 type.
type U32Serializer struct{}

func (U32Serializer) SerializedLength(uint32) int { return U32SerializedLength }
func (U32Serializer) Append(dst []byte, value uint32) []byte { return AppendU32(dst, value) }
func (U32Serializer) Read(b []byte) (uint32, []byte, error) { return ReadU32(b) }

// U64Serializer is a Serializer of the uint64 type.
type U64Serializer struct{}

func (U64Serializer) SerializedLength(uint64) int { return U64SerializedLength }
func (U64Serializer) Append(dst []byte, value uint64) []byte { return AppendU64(dst, value) }
func (U64Serializer) Read(b []byte) (uint64, []byte, error) { return ReadU64(b) }

// StringSerializer is a Serializer of length prefixed UTF-8 strings.
type StringSerializer struct{}

func (StringSerializer) SerializedLength(value string) int { return StringSerializedLength(value) }
func (StringSerializer) Append(dst []byte, value string) []byte { return AppendString(dst, value) }
func (StringSerializer) Read(b []byte) (string, []byte, error) { return ReadString(b) }

// BytesSerializer is a Serializer of length prefixed byte sequences.
type BytesSerializer struct{}

func (BytesSerializer) SerializedLength(value []byte) int { return BytesSerializedLength(value) }
func (BytesSerializer) Append(dst []byte, value []byte) []byte { return AppendBytes(dst, value) }
func (BytesSerializer) Read(b []byte) ([]byte, []byte, error) { return ReadBytes(b) }

// ByteArraySerializer is a Serializer of raw 32 byte arrays.
type ByteArraySerializer struct{}

func (ByteArraySerializer) SerializedLength([32]byte) int { return 32 }
func (ByteArraySerializer) Append(dst []byte, value [32]byte) []byte {
	return append(dst, value[:]...)
}
func (ByteArraySerializer) Read(b []byte) ([32]byte, []byte, error) { return Read32(b) }

// HashSerializer is a Serializer of raw hashes.
type HashSerializer struct{}

func (HashSerializer) SerializedLength(common.Hash) int { return common.HashSize }
func (HashSerializer) Append(dst []byte, value common.Hash) []byte {
	return value.AppendBytes(dst)
}
func (HashSerializer) Read(b []byte) (common.Hash, []byte, error) { return ReadHash(b) }

// ListSerializer encodes slices as a u32 count followed by the elements.
type ListSerializer[T any] struct {
	Elem Serializer[T]
}

func (s ListSerializer[T]) SerializedLength(value []T) int {
	size := U32SerializedLength
	for _, item := range value {
		size += s.Elem.SerializedLength(item)
	}
	return size
}

func (s ListSerializer[T]) Append(dst []byte, value []T) []byte {
	dst = AppendLength(dst, len(value))
	for _, item := range value {
		dst = s.Elem.Append(dst, item)
	}
	return dst
}

func (s ListSerializer[T]) Read(b []byte) ([]T, []byte, error) {
	n, rest, err := ReadLength(b)
	if err != nil {
		return nil, nil, err
	}
	return readElements(s.Elem, n, rest)
}

// FixedListSerializer encodes slices of exactly Len elements. The count
// prefix is redundant but kept for uniformity with ListSerializer.
type FixedListSerializer[T any] struct {
	Elem Serializer[T]
	Len  int
}

func (s FixedListSerializer[T]) SerializedLength(value []T) int {
	return ListSerializer[T]{s.Elem}.SerializedLength(value)
}

func (s FixedListSerializer[T]) Append(dst []byte, value []T) []byte {
	if len(value) != s.Len {
		panic(fmt.Sprintf("fixed list of length %d holds %d elements", s.Len, len(value)))
	}
	return ListSerializer[T]{s.Elem}.Append(dst, value)
}

func (s FixedListSerializer[T]) Read(b []byte) ([]T, []byte, error) {
	n, rest, err := ReadLength(b)
	if err != nil {
		return nil, nil, err
	}
	if n != s.Len {
		return nil, nil, fmt.Errorf("%w: fixed list length %d, want %d", ErrFormatting, n, s.Len)
	}
	return readElements(s.Elem, n, rest)
}

// readElements decodes n elements into a growable slice. The result is only
// handed out once all elements are decoded.
func readElements[T any](elem Serializer[T], n int, b []byte) ([]T, []byte, error) {
	res := make([]T, 0, min(n, len(b)))
	var budget ZeroWidthBudget
	for i := 0; i < n; i++ {
		item, rest, err := elem.Read(b)
		if err != nil {
			return nil, nil, err
		}
		if err := budget.Charge(b, rest); err != nil {
			return nil, nil, err
		}
		res = append(res, item)
		b = rest
	}
	return res, b, nil
}

// OptionSerializer encodes optional values as a tag (0 = None, 1 = Some)
// followed by the value if present. A nil pointer represents None.
type OptionSerializer[T any] struct {
	Elem Serializer[T]
}

func (s OptionSerializer[T]) SerializedLength(value *T) int {
	if value == nil {
		return OptionTagLength
	}
	return OptionTagLength + s.Elem.SerializedLength(*value)
}

func (s OptionSerializer[T]) Append(dst []byte, value *T) []byte {
	if value == nil {
		return append(dst, 0)
	}
	return s.Elem.Append(append(dst, 1), *value)
}

func (s OptionSerializer[T]) Read(b []byte) (*T, []byte, error) {
	tag, rest, err := ReadTag(b, 2)
	if err != nil {
		return nil, nil, err
	}
	if tag == 0 {
		return nil, rest, nil
	}
	value, rest, err := s.Elem.Read(rest)
	if err != nil {
		return nil, nil, err
	}
	return &value, rest, nil
}

// MapSerializer encodes maps as a u32 count followed by the key/value pairs
// in ascending key order. Decoding rejects keys that are not strictly
// ascending, so every decoded map re-encodes to the same bytes.
type MapSerializer[K comparable, V any] struct {
	Key     Serializer[K]
	Value   Serializer[V]
	Compare func(a, b K) int
}

// NewOrderedMapSerializer creates a MapSerializer for naturally ordered keys.
func NewOrderedMapSerializer[K constraints.Ordered, V any](key Serializer[K], value Serializer[V]) MapSerializer[K, V] {
	return MapSerializer[K, V]{Key: key, Value: value, Compare: cmp.Compare[K]}
}

// SortedKeys returns the keys of m in ascending order.
func (s MapSerializer[K, V]) SortedKeys(m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, s.Compare)
	return keys
}

func (s MapSerializer[K, V]) SerializedLength(value map[K]V) int {
	size := U32SerializedLength
	for key, val := range value {
		size += s.Key.SerializedLength(key) + s.Value.SerializedLength(val)
	}
	return size
}

func (s MapSerializer[K, V]) Append(dst []byte, value map[K]V) []byte {
	dst = AppendLength(dst, len(value))
	for _, key := range s.SortedKeys(value) {
		dst = s.Key.Append(dst, key)
		dst = s.Value.Append(dst, value[key])
	}
	return dst
}

func (s MapSerializer[K, V]) Read(b []byte) (map[K]V, []byte, error) {
	n, rest, err := ReadLength(b)
	if err != nil {
		return nil, nil, err
	}
	res := make(map[K]V, min(n, len(rest)))
	var last K
	for i := 0; i < n; i++ {
		key, r, err := s.Key.Read(rest)
		if err != nil {
			return nil, nil, err
		}
		if i > 0 && s.Compare(last, key) >= 0 {
			return nil, nil, fmt.Errorf("%w: map keys not in strictly ascending order", ErrFormatting)
		}
		val, r, err := s.Value.Read(r)
		if err != nil {
			return nil, nil, err
		}
		res[key] = val
		last = key
		rest = r
	}
	return res, rest, nil
}
