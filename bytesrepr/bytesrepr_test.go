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
	"testing"
)

type sizedEncoder struct {
	size int
}

func (e sizedEncoder) SerializedLength() int { return e.size }
func (e sizedEncoder) AppendBytes(dst []byte) []byte {
	return append(dst, make([]byte, e.size)...)
}

type u32Value uint32

func (v u32Value) SerializedLength() int         { return U32SerializedLength }
func (v u32Value) AppendBytes(dst []byte) []byte { return AppendU32(dst, uint32(v)) }
func (v *u32Value) FromBytes(b []byte) ([]byte, error) {
	res, rest, err := ReadU32(b)
	*v = u32Value(res)
	return rest, err
}

func TestSerialize_ProducesExactLength(t *testing.T) {
	for _, size := range []int{0, 1, 17, 1024} {
		b, err := Serialize(sizedEncoder{size})
		if err != nil {
			t.Fatalf("failed to serialize; %s", err)
		}
		if len(b) != size {
			t.Errorf("unexpected length, wanted %d, got %d", size, len(b))
		}
	}
}

func TestSerialize_RejectsEncodingsBeyondU32Limit(t *testing.T) {
	if math.MaxInt <= math.MaxUint32 {
		t.Skip("platform int can not exceed the u32 range")
	}
	var limit uint64 = math.MaxUint32
	_, err := Serialize(sizedEncoder{size: int(limit + 1)})
	if !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("expected ErrOutOfMemory, got %v", err)
	}
}

func TestDeserialize_RejectsTrailingBytes(t *testing.T) {
	var v u32Value
	if err := Deserialize([]byte{1, 0, 0, 0}, &v); err != nil || v != 1 {
		t.Fatalf("failed to decode value; %v, %d", err, v)
	}
	if err := Deserialize([]byte{1, 0, 0, 0, 0}, &v); !errors.Is(err, ErrLeftOverBytes) {
		t.Errorf("expected ErrLeftOverBytes, got %v", err)
	}
	if err := Deserialize([]byte{1, 0, 0}, &v); !errors.Is(err, ErrEarlyEndOfStream) {
		t.Errorf("expected ErrEarlyEndOfStream, got %v", err)
	}
}

func TestPrimitives_ConcreteEncodings(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want []byte
	}{
		{"u32(1)", AppendU32(nil, 1), []byte{1, 0, 0, 0}},
		{"i32(-1)", AppendI32(nil, -1), []byte{0xff, 0xff, 0xff, 0xff}},
		{"u64(258)", AppendU64(nil, 258), []byte{2, 1, 0, 0, 0, 0, 0, 0}},
		{"i64(-2)", AppendI64(nil, -2), []byte{0xfe, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		{"true", AppendBool(nil, true), []byte{1}},
		{"false", AppendBool(nil, false), []byte{0}},
		{"u8(7)", AppendU8(nil, 7), []byte{7}},
		{"string", AppendString(nil, "ab"), []byte{2, 0, 0, 0, 'a', 'b'}},
		{"bytes", AppendBytes(nil, []byte{9}), []byte{1, 0, 0, 0, 9}},
		{"empty string", AppendString(nil, ""), []byte{0, 0, 0, 0}},
	}
	for _, test := range tests {
		if !bytes.Equal(test.got, test.want) {
			t.Errorf("unexpected encoding of %s, wanted %v, got %v", test.name, test.want, test.got)
		}
	}
}

func TestReadBool_RejectsInvalidValues(t *testing.T) {
	for i := 2; i < 256; i++ {
		if _, _, err := ReadBool([]byte{byte(i)}); !errors.Is(err, ErrFormatting) {
			t.Errorf("expected ErrFormatting for %d, got %v", i, err)
		}
	}
	if _, _, err := ReadBool(nil); !errors.Is(err, ErrEarlyEndOfStream) {
		t.Errorf("expected ErrEarlyEndOfStream, got %v", err)
	}
}

func TestReadString_RejectsInvalidUtf8(t *testing.T) {
	input := []byte{2, 0, 0, 0, 0xc3, 0x28}
	if _, _, err := ReadString(input); !errors.Is(err, ErrFormatting) {
		t.Errorf("expected ErrFormatting, got %v", err)
	}
	s, rest, err := ReadString(AppendString(nil, "grüße"))
	if err != nil || s != "grüße" || len(rest) != 0 {
		t.Errorf("failed to decode string: %q, %v, %v", s, rest, err)
	}
}

func TestReadBytes_DoesNotAliasInput(t *testing.T) {
	input := AppendBytes(nil, []byte{1, 2, 3})
	res, _, err := ReadBytes(input)
	if err != nil {
		t.Fatalf("failed to decode bytes; %s", err)
	}
	input[4] = 42
	if res[0] != 1 {
		t.Errorf("decoded bytes alias the input buffer")
	}
}

func TestReadBytes_RejectsLengthBeyondInput(t *testing.T) {
	input := []byte{0xff, 0xff, 0xff, 0xff, 1, 2}
	if _, _, err := ReadBytes(input); !errors.Is(err, ErrEarlyEndOfStream) {
		t.Errorf("expected ErrEarlyEndOfStream, got %v", err)
	}
}

func TestReadTag_RejectsOutOfRangeTags(t *testing.T) {
	if tag, _, err := ReadTag([]byte{2}, 3); err != nil || tag != 2 {
		t.Errorf("failed to read valid tag: %d, %v", tag, err)
	}
	if _, _, err := ReadTag([]byte{3}, 3); !errors.Is(err, ErrFormatting) {
		t.Errorf("expected ErrFormatting, got %v", err)
	}
}

func TestReadLength_RejectsCountsBeyondIntRange(t *testing.T) {
	defer func(limit uint64) { maxLength = limit }(maxLength)
	maxLength = math.MaxInt32

	if n, _, err := ReadLength(AppendU32(nil, math.MaxInt32)); err != nil || n != math.MaxInt32 {
		t.Errorf("failed to read length in range: %d, %v", n, err)
	}
	if _, _, err := ReadLength(AppendU32(nil, 0x80000000)); !errors.Is(err, ErrFormatting) {
		t.Errorf("expected ErrFormatting, got %v", err)
	}
}
