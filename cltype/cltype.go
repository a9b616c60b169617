// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package cltype defines CLType, the recursive descriptor of the shape of a
// value stored in a CLValue.
package cltype

import (
	"fmt"
	"strings"

	"github.com/Fantom-foundation/clstate/bytesrepr"
)

// Tag is the one byte discriminant of a CLType node. The values are part of
// the wire format.
type Tag uint8

const (
	TagBool Tag = iota
	TagI32
	TagI64
	TagU8
	TagU32
	TagU64
	TagU128
	TagU256
	TagU512
	TagUnit
	TagString
	TagKey
	TagURef
	TagOption
	TagList
	TagFixedList
	TagResult
	TagMap
	TagTuple1
	TagTuple2
	TagTuple3
	TagAny
	numTags
)

var tagNames = [...]string{
	TagBool:      "Bool",
	TagI32:       "I32",
	TagI64:       "I64",
	TagU8:        "U8",
	TagU32:       "U32",
	TagU64:       "U64",
	TagU128:      "U128",
	TagU256:      "U256",
	TagU512:      "U512",
	TagUnit:      "Unit",
	TagString:    "String",
	TagKey:       "Key",
	TagURef:      "URef",
	TagOption:    "Option",
	TagList:      "List",
	TagFixedList: "FixedList",
	TagResult:    "Result",
	TagMap:       "Map",
	TagTuple1:    "Tuple1",
	TagTuple2:    "Tuple2",
	TagTuple3:    "Tuple3",
	TagAny:       "Any",
}

func (t Tag) String() string {
	if t < numTags {
		return tagNames[t]
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// MaxDepth bounds the nesting of decoded types.
const MaxDepth = 64

// CLType describes the shape of a value. CLTypes are immutable and compared
// structurally with Equal. The zero value describes Bool.
type CLType struct {
	tag Tag
	// sub holds the element of Option, List and FixedList, ok and err of
	// Result, key and value of Map, and the members of tuples.
	sub    []CLType
	length uint32
}

var (
	Bool   = CLType{tag: TagBool}
	I32    = CLType{tag: TagI32}
	I64    = CLType{tag: TagI64}
	U8     = CLType{tag: TagU8}
	U32    = CLType{tag: TagU32}
	U64    = CLType{tag: TagU64}
	U128   = CLType{tag: TagU128}
	U256   = CLType{tag: TagU256}
	U512   = CLType{tag: TagU512}
	Unit   = CLType{tag: TagUnit}
	String = CLType{tag: TagString}
	Key    = CLType{tag: TagKey}
	URef   = CLType{tag: TagURef}
	Any    = CLType{tag: TagAny}
)

func Option(elem CLType) CLType {
	return CLType{tag: TagOption, sub: []CLType{elem}}
}

func List(elem CLType) CLType {
	return CLType{tag: TagList, sub: []CLType{elem}}
}

func FixedList(elem CLType, length uint32) CLType {
	return CLType{tag: TagFixedList, sub: []CLType{elem}, length: length}
}

func Result(ok, err CLType) CLType {
	return CLType{tag: TagResult, sub: []CLType{ok, err}}
}

func Map(key, value CLType) CLType {
	return CLType{tag: TagMap, sub: []CLType{key, value}}
}

func Tuple1(a CLType) CLType {
	return CLType{tag: TagTuple1, sub: []CLType{a}}
}

func Tuple2(a, b CLType) CLType {
	return CLType{tag: TagTuple2, sub: []CLType{a, b}}
}

func Tuple3(a, b, c CLType) CLType {
	return CLType{tag: TagTuple3, sub: []CLType{a, b, c}}
}

func (t CLType) Tag() Tag {
	return t.tag
}

// Elem is the element type of Option, List and FixedList types.
func (t CLType) Elem() CLType {
	t.expect(TagOption, TagList, TagFixedList)
	return t.sub[0]
}

// Len is the length of a FixedList type.
func (t CLType) Len() uint32 {
	t.expect(TagFixedList)
	return t.length
}

// Ok is the success type of a Result type.
func (t CLType) Ok() CLType {
	t.expect(TagResult)
	return t.sub[0]
}

// Err is the failure type of a Result type.
func (t CLType) Err() CLType {
	t.expect(TagResult)
	return t.sub[1]
}

// Key is the key type of a Map type.
func (t CLType) Key() CLType {
	t.expect(TagMap)
	return t.sub[0]
}

// Value is the value type of a Map type.
func (t CLType) Value() CLType {
	t.expect(TagMap)
	return t.sub[1]
}

// Members are the member types of a tuple type.
func (t CLType) Members() []CLType {
	t.expect(TagTuple1, TagTuple2, TagTuple3)
	return append([]CLType(nil), t.sub...)
}

func (t CLType) expect(tags ...Tag) {
	for _, tag := range tags {
		if t.tag == tag {
			return
		}
	}
	panic(fmt.Sprintf("accessor not defined for CLType %v", t))
}

// ContainsNestedAny reports whether Any occurs below the top level of t.
// Nested Any payloads are not delimited, so values of such types can not be
// decoded.
func (t CLType) ContainsNestedAny() bool {
	for _, sub := range t.sub {
		if sub.tag == TagAny || sub.ContainsNestedAny() {
			return true
		}
	}
	return false
}

// Equal reports whether both types describe the same shape.
func (t CLType) Equal(other CLType) bool {
	if t.tag != other.tag || t.length != other.length || len(t.sub) != len(other.sub) {
		return false
	}
	for i := range t.sub {
		if !t.sub[i].Equal(other.sub[i]) {
			return false
		}
	}
	return true
}

func (t CLType) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t CLType) write(sb *strings.Builder) {
	sb.WriteString(t.tag.String())
	if len(t.sub) == 0 {
		return
	}
	sb.WriteRune('(')
	for i, sub := range t.sub {
		if i > 0 {
			sb.WriteString(", ")
		}
		sub.write(sb)
	}
	if t.tag == TagFixedList {
		fmt.Fprintf(sb, ", %d", t.length)
	}
	sb.WriteRune(')')
}

// SerializedLength is the size of the encoded type, computed without encoding it.
func (t CLType) SerializedLength() int {
	size := 1
	for _, sub := range t.sub {
		size += sub.SerializedLength()
	}
	if t.tag == TagFixedList {
		size += bytesrepr.U32SerializedLength
	}
	return size
}

// AppendBytes writes the tag followed by the sub types. FixedList types are
// followed by their u32 length.
func (t CLType) AppendBytes(dst []byte) []byte {
	dst = append(dst, byte(t.tag))
	for _, sub := range t.sub {
		dst = sub.AppendBytes(dst)
	}
	if t.tag == TagFixedList {
		dst = bytesrepr.AppendU32(dst, t.length)
	}
	return dst
}

func (t *CLType) FromBytes(b []byte) ([]byte, error) {
	res, rest, err := read(b, 0)
	if err != nil {
		return nil, err
	}
	*t = res
	return rest, nil
}

// Read decodes a CLType from a prefix of b.
func Read(b []byte) (CLType, []byte, error) {
	return read(b, 0)
}

func read(b []byte, depth int) (CLType, []byte, error) {
	if depth > MaxDepth {
		return CLType{}, nil, fmt.Errorf("%w: CLType nested deeper than %d", bytesrepr.ErrFormatting, MaxDepth)
	}
	raw, rest, err := bytesrepr.ReadTag(b, uint8(numTags))
	if err != nil {
		return CLType{}, nil, err
	}
	res := CLType{tag: Tag(raw)}
	var subs int
	switch res.tag {
	case TagOption, TagList, TagFixedList, TagTuple1:
		subs = 1
	case TagResult, TagMap, TagTuple2:
		subs = 2
	case TagTuple3:
		subs = 3
	}
	if subs > 0 {
		res.sub = make([]CLType, subs)
		for i := range res.sub {
			if res.sub[i], rest, err = read(rest, depth+1); err != nil {
				return CLType{}, nil, err
			}
		}
	}
	if res.tag == TagFixedList {
		if res.length, rest, err = bytesrepr.ReadU32(rest); err != nil {
			return CLType{}, nil, err
		}
	}
	return res, rest, nil
}
