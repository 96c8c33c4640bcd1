// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pb decodes the handful of OSMPBF wire messages (fileformat.proto's
// BlobHeader/Blob, osmformat.proto's HeaderBlock/PrimitiveBlock and their
// nested messages) directly off the wire with protowire, rather than through
// generated, reflection-backed message types. Field numbers and wire types
// below follow the published OSMPBF schema.
package pb

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// field is one decoded (number, wiretype, value) triple from a message.
// Exactly one of u64/buf is meaningful, selected by typ.
type field struct {
	num protowire.Number
	typ protowire.Type
	u64 uint64
	buf []byte
}

// consumeField parses a single tag+value pair from the head of b and reports
// how many bytes it consumed.
func consumeField(b []byte) (f field, n int, err error) {
	num, typ, tn := protowire.ConsumeTag(b)
	if tn < 0 {
		return field{}, 0, fmt.Errorf("pb: bad tag: %w", protowire.ParseError(tn))
	}

	rest := b[tn:]

	switch typ {
	case protowire.VarintType:
		v, vn := protowire.ConsumeVarint(rest)
		if vn < 0 {
			return field{}, 0, fmt.Errorf("pb: bad varint field %d: %w", num, protowire.ParseError(vn))
		}

		return field{num: num, typ: typ, u64: v}, tn + vn, nil

	case protowire.Fixed32Type:
		v, vn := protowire.ConsumeFixed32(rest)
		if vn < 0 {
			return field{}, 0, fmt.Errorf("pb: bad fixed32 field %d: %w", num, protowire.ParseError(vn))
		}

		return field{num: num, typ: typ, u64: uint64(v)}, tn + vn, nil

	case protowire.Fixed64Type:
		v, vn := protowire.ConsumeFixed64(rest)
		if vn < 0 {
			return field{}, 0, fmt.Errorf("pb: bad fixed64 field %d: %w", num, protowire.ParseError(vn))
		}

		return field{num: num, typ: typ, u64: v}, tn + vn, nil

	case protowire.BytesType:
		v, vn := protowire.ConsumeBytes(rest)
		if vn < 0 {
			return field{}, 0, fmt.Errorf("pb: bad bytes field %d: %w", num, protowire.ParseError(vn))
		}

		return field{num: num, typ: typ, buf: v}, tn + vn, nil

	default:
		vn := protowire.ConsumeFieldValue(num, typ, rest)
		if vn < 0 {
			return field{}, 0, fmt.Errorf("pb: bad field %d of wire type %d: %w", num, typ, protowire.ParseError(vn))
		}

		return field{num: num, typ: typ}, tn + vn, nil
	}
}

// forEachField walks every top-level field of a message body.
func forEachField(b []byte, fn func(f field) error) error {
	for len(b) > 0 {
		f, n, err := consumeField(b)
		if err != nil {
			return err
		}

		if err := fn(f); err != nil {
			return err
		}

		b = b[n:]
	}

	return nil
}

// packedVarints decodes a packed-repeated varint field, or a single unpacked
// value, into a slice of raw uint64s.
func packedVarints(f field, out []uint64) ([]uint64, error) {
	if f.typ == protowire.VarintType {
		return append(out, f.u64), nil
	}

	buf := f.buf
	for len(buf) > 0 {
		v, n := protowire.ConsumeVarint(buf)
		if n < 0 {
			return nil, fmt.Errorf("pb: bad packed varint in field %d: %w", f.num, protowire.ParseError(n))
		}

		out = append(out, v)
		buf = buf[n:]
	}

	return out, nil
}

func appendZigZags(dst []int64, raw []uint64) []int64 {
	for _, v := range raw {
		dst = append(dst, protowire.DecodeZigZag(v))
	}

	return dst
}

func appendInt64s(dst []int64, raw []uint64) []int64 {
	for _, v := range raw {
		dst = append(dst, int64(v))
	}

	return dst
}

func appendInt32s(dst []int32, raw []uint64) []int32 {
	for _, v := range raw {
		dst = append(dst, int32(v))
	}

	return dst
}

func appendUint32s(dst []uint32, raw []uint64) []uint32 {
	for _, v := range raw {
		dst = append(dst, uint32(v))
	}

	return dst
}

func appendBools(dst []bool, raw []uint64) []bool {
	for _, v := range raw {
		dst = append(dst, v != 0)
	}

	return dst
}
