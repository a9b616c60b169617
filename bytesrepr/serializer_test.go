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
	"bytes"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

// checkSerializer verifies the round trip, length and truncation properties.
func checkSerializer[T any](t *testing.T, s Serializer[T], value T) []byte {
	t.Helper()
	encoded, err := SerializeWith(s, value)
	if err != nil {
		t.Fatalf("failed to encode %v; %s", value, err)
	}
	if got := s.SerializedLength(value); got != len(encoded) {
		t.Errorf("serialized length %d does not match encoding length %d", got, len(encoded))
	}
	decoded, err := DeserializeWith(s, encoded)
	if err != nil {
		t.Fatalf("failed to decode %v; %s", encoded, err)
	}
	if !reflect.DeepEqual(value, decoded) {
		t.Errorf("round trip failed, wanted %v, got %v", value, decoded)
	}
	for i := 0; i < len(encoded); i++ {
		if _, err := DeserializeWith(s, encoded[:i]); err == nil {
			t.Errorf("decoding of truncated input %v did not fail", encoded[:i])
		}
	}
	if _, err := DeserializeWith(s, append(bytes.Clone(encoded), 0)); !errors.Is(err, ErrLeftOverBytes) {
		t.Errorf("expected ErrLeftOverBytes, got %v", err)
	}
	return encoded
}

func TestSerializers_RoundTrip(t *testing.T) {
	checkSerializer[bool](t, BoolSerializer{}, true)
	checkSerializer[uint8](t, U8Serializer{}, 200)
	checkSerializer[uint32](t, U32Serializer{}, 0xdeadbeef)
	checkSerializer[uint64](t, U64Serializer{}, 1<<63)
	checkSerializer[string](t, StringSerializer{}, "hello")
	checkSerializer[[]byte](t, BytesSerializer{}, []byte{1, 2, 3})
	checkSerializer[[32]byte](t, ByteArraySerializer{}, [32]byte{1, 31: 2})
	checkSerializer[[]uint32](t, ListSerializer[uint32]{U32Serializer{}}, []uint32{1, 2, 3})
	checkSerializer[[]string](t, ListSerializer[string]{StringSerializer{}}, []string{"a", "", "bc"})
}

func TestOptionSerializer_Encoding(t *testing.T) {
	s := OptionSerializer[uint8]{U8Serializer{}}
	five := uint8(5)
	if got := checkSerializer[*uint8](t, s, &five); !bytes.Equal(got, []byte{1, 5}) {
		t.Errorf("unexpected encoding of Some(5), got %v", got)
	}
	got, err := SerializeWith[*uint8](s, nil)
	if err != nil || !bytes.Equal(got, []byte{0}) {
		t.Errorf("unexpected encoding of None, got %v, %v", got, err)
	}
	if _, err := DeserializeWith[*uint8](s, []byte{2, 5}); !errors.Is(err, ErrFormatting) {
		t.Errorf("expected ErrFormatting for invalid tag, got %v", err)
	}
}

func TestFixedListSerializer_RejectsLengthMismatch(t *testing.T) {
	s := FixedListSerializer[uint8]{Elem: U8Serializer{}, Len: 3}
	encoded := checkSerializer[[]uint8](t, s, []uint8{1, 2, 3})
	if !bytes.Equal(encoded, []byte{3, 0, 0, 0, 1, 2, 3}) {
		t.Errorf("unexpected encoding %v", encoded)
	}
	other := FixedListSerializer[uint8]{Elem: U8Serializer{}, Len: 2}
	if _, err := DeserializeWith[[]uint8](other, encoded); !errors.Is(err, ErrFormatting) {
		t.Errorf("expected ErrFormatting, got %v", err)
	}
}

func TestFixedListSerializer_PartialFailureReturnsNoElements(t *testing.T) {
	s := FixedListSerializer[bool]{Elem: BoolSerializer{}, Len: 3}
	res, _, err := s.Read([]byte{3, 0, 0, 0, 1, 0, 7})
	if !errors.Is(err, ErrFormatting) {
		t.Errorf("expected ErrFormatting, got %v", err)
	}
	if res != nil {
		t.Errorf("partially decoded elements leaked: %v", res)
	}
}

func TestFixedListSerializer_PanicsOnWrongLengthEncode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected encoding of a wrongly sized list to panic")
		}
	}()
	FixedListSerializer[uint8]{Elem: U8Serializer{}, Len: 2}.Append(nil, []uint8{1})
}

func TestMapSerializer_EncodesInKeyOrder(t *testing.T) {
	s := NewOrderedMapSerializer[string, uint8](StringSerializer{}, U8Serializer{})
	encoded := checkSerializer[map[string]uint8](t, s, map[string]uint8{"b": 2, "a": 1, "c": 3})
	want := []byte{3, 0, 0, 0,
		1, 0, 0, 0, 'a', 1,
		1, 0, 0, 0, 'b', 2,
		1, 0, 0, 0, 'c', 3,
	}
	if !bytes.Equal(encoded, want) {
		t.Errorf("unexpected encoding, wanted %v, got %v", want, encoded)
	}
	checkSerializer[map[string]uint8](t, s, map[string]uint8{})
}

func TestMapSerializer_RejectsUnorderedOrDuplicateKeys(t *testing.T) {
	s := NewOrderedMapSerializer[string, uint8](StringSerializer{}, U8Serializer{})
	unordered := []byte{2, 0, 0, 0, 1, 0, 0, 0, 'b', 2, 1, 0, 0, 0, 'a', 1}
	if _, err := DeserializeWith[map[string]uint8](s, unordered); !errors.Is(err, ErrFormatting) {
		t.Errorf("expected ErrFormatting for unordered keys, got %v", err)
	}
	duplicate := []byte{2, 0, 0, 0, 1, 0, 0, 0, 'a', 2, 1, 0, 0, 0, 'a', 1}
	if _, err := DeserializeWith[map[string]uint8](s, duplicate); !errors.Is(err, ErrFormatting) {
		t.Errorf("expected ErrFormatting for duplicate keys, got %v", err)
	}
}

func TestMapSerializer_SortedKeysUsesCompare(t *testing.T) {
	s := MapSerializer[string, bool]{
		Key:     StringSerializer{},
		Value:   BoolSerializer{},
		Compare: func(a, b string) int { return strings.Compare(b, a) },
	}
	keys := s.SortedKeys(map[string]bool{"a": true, "c": true, "b": false})
	if !reflect.DeepEqual(keys, []string{"c", "b", "a"}) {
		t.Errorf("unexpected key order %v", keys)
	}
}

func TestCodec_AdaptsEncoderAndDecoder(t *testing.T) {
	s := Codec[u32Value, *u32Value]{}
	if got := checkSerializer[u32Value](t, s, 7); !bytes.Equal(got, []byte{7, 0, 0, 0}) {
		t.Errorf("unexpected encoding %v", got)
	}
	checkSerializer[[]u32Value](t, ListSerializer[u32Value]{s}, []u32Value{1, 2})
}

type emptySerializer struct{}

func (emptySerializer) SerializedLength(struct{}) int           { return 0 }
func (emptySerializer) Append(dst []byte, _ struct{}) []byte    { return dst }
func (emptySerializer) Read(b []byte) (struct{}, []byte, error) { return struct{}{}, b, nil }

func TestListSerializer_BoundsZeroWidthElements(t *testing.T) {
	s := ListSerializer[struct{}]{emptySerializer{}}
	if _, err := DeserializeWith[[]struct{}](s, AppendU32(nil, math.MaxUint32)); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("expected ErrOutOfMemory, got %v", err)
	}
	if _, err := DeserializeWith[[]struct{}](s, AppendU32(nil, MaxZeroWidthElements+1)); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("expected ErrOutOfMemory, got %v", err)
	}
	got, err := DeserializeWith[[]struct{}](s, AppendU32(nil, MaxZeroWidthElements))
	if err != nil {
		t.Fatalf("failed to decode list of empty elements; %s", err)
	}
	if len(got) != MaxZeroWidthElements {
		t.Errorf("unexpected number of elements %d", len(got))
	}
}

func TestListSerializer_NonEmptyElementsAreNotCharged(t *testing.T) {
	s := ListSerializer[uint8]{U8Serializer{}}
	encoded := append(AppendU32(nil, MaxZeroWidthElements+1), make([]byte, MaxZeroWidthElements+1)...)
	got, err := DeserializeWith[[]uint8](s, encoded)
	if err != nil {
		t.Fatalf("failed to decode list of bytes; %s", err)
	}
	if len(got) != MaxZeroWidthElements+1 {
		t.Errorf("unexpected number of elements %d", len(got))
	}
}
