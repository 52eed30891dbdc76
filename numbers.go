// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import (
	"math"
	"math/bits"
	"strconv"
)

// Multi-byte integers default to big-endian network order; variants with
// an LE suffix use little-endian. A primitive that straddles a segment
// boundary is assembled one byte at a time, never reading past a segment.

// WriteUint16 appends v in big-endian order.
func (b *Buffer) WriteUint16(v uint16) {
	tail := b.writableSegment(2)
	d := tail.block.data[:]
	d[tail.limit] = byte(v >> 8)
	d[tail.limit+1] = byte(v)
	tail.limit += 2
	b.size += 2
}

// WriteUint16LE appends v in little-endian order.
func (b *Buffer) WriteUint16LE(v uint16) {
	b.WriteUint16(bits.ReverseBytes16(v))
}

// WriteUint32 appends v in big-endian order.
func (b *Buffer) WriteUint32(v uint32) {
	tail := b.writableSegment(4)
	d := tail.block.data[:]
	d[tail.limit] = byte(v >> 24)
	d[tail.limit+1] = byte(v >> 16)
	d[tail.limit+2] = byte(v >> 8)
	d[tail.limit+3] = byte(v)
	tail.limit += 4
	b.size += 4
}

// WriteUint32LE appends v in little-endian order.
func (b *Buffer) WriteUint32LE(v uint32) {
	b.WriteUint32(bits.ReverseBytes32(v))
}

// WriteUint64 appends v in big-endian order.
func (b *Buffer) WriteUint64(v uint64) {
	tail := b.writableSegment(8)
	d := tail.block.data[:]
	for i := 0; i < 8; i++ {
		d[tail.limit+i] = byte(v >> (56 - 8*i))
	}
	tail.limit += 8
	b.size += 8
}

// WriteUint64LE appends v in little-endian order.
func (b *Buffer) WriteUint64LE(v uint64) {
	b.WriteUint64(bits.ReverseBytes64(v))
}

// WriteInt16 appends v in big-endian order.
func (b *Buffer) WriteInt16(v int16) { b.WriteUint16(uint16(v)) }

// WriteInt32 appends v in big-endian order.
func (b *Buffer) WriteInt32(v int32) { b.WriteUint32(uint32(v)) }

// WriteInt64 appends v in big-endian order.
func (b *Buffer) WriteInt64(v int64) { b.WriteUint64(uint64(v)) }

// WriteFloat32 appends the IEEE 754 bits of v in big-endian order.
func (b *Buffer) WriteFloat32(v float32) { b.WriteUint32(math.Float32bits(v)) }

// WriteFloat32LE appends the IEEE 754 bits of v in little-endian order.
func (b *Buffer) WriteFloat32LE(v float32) { b.WriteUint32LE(math.Float32bits(v)) }

// WriteFloat64 appends the IEEE 754 bits of v in big-endian order.
func (b *Buffer) WriteFloat64(v float64) { b.WriteUint64(math.Float64bits(v)) }

// WriteFloat64LE appends the IEEE 754 bits of v in little-endian order.
func (b *Buffer) WriteFloat64LE(v float64) { b.WriteUint64LE(math.Float64bits(v)) }

// ReadUint16 consumes two bytes as a big-endian value.
func (b *Buffer) ReadUint16() (uint16, error) {
	if b.size < 2 {
		return 0, ErrEndOfStream
	}
	s := b.head
	if s.size() < 2 {
		hi, _ := b.ReadByte()
		lo, _ := b.ReadByte()
		return uint16(hi)<<8 | uint16(lo), nil
	}
	d := s.block.data
	v := uint16(d[s.pos])<<8 | uint16(d[s.pos+1])
	s.pos += 2
	b.size -= 2
	if s.pos == s.limit {
		b.popHead()
	}
	return v, nil
}

// ReadUint16LE consumes two bytes as a little-endian value.
func (b *Buffer) ReadUint16LE() (uint16, error) {
	v, err := b.ReadUint16()
	return bits.ReverseBytes16(v), err
}

// ReadUint32 consumes four bytes as a big-endian value.
func (b *Buffer) ReadUint32() (uint32, error) {
	if b.size < 4 {
		return 0, ErrEndOfStream
	}
	s := b.head
	if s.size() < 4 {
		var v uint32
		for range 4 {
			c, _ := b.ReadByte()
			v = v<<8 | uint32(c)
		}
		return v, nil
	}
	d := s.block.data
	v := uint32(d[s.pos])<<24 | uint32(d[s.pos+1])<<16 |
		uint32(d[s.pos+2])<<8 | uint32(d[s.pos+3])
	s.pos += 4
	b.size -= 4
	if s.pos == s.limit {
		b.popHead()
	}
	return v, nil
}

// ReadUint32LE consumes four bytes as a little-endian value.
func (b *Buffer) ReadUint32LE() (uint32, error) {
	v, err := b.ReadUint32()
	return bits.ReverseBytes32(v), err
}

// ReadUint64 consumes eight bytes as a big-endian value.
func (b *Buffer) ReadUint64() (uint64, error) {
	if b.size < 8 {
		return 0, ErrEndOfStream
	}
	s := b.head
	if s.size() < 8 {
		var v uint64
		for range 8 {
			c, _ := b.ReadByte()
			v = v<<8 | uint64(c)
		}
		return v, nil
	}
	d := s.block.data
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(d[s.pos+i])
	}
	s.pos += 8
	b.size -= 8
	if s.pos == s.limit {
		b.popHead()
	}
	return v, nil
}

// ReadUint64LE consumes eight bytes as a little-endian value.
func (b *Buffer) ReadUint64LE() (uint64, error) {
	v, err := b.ReadUint64()
	return bits.ReverseBytes64(v), err
}

// ReadInt16 consumes two bytes as a big-endian signed value.
func (b *Buffer) ReadInt16() (int16, error) {
	v, err := b.ReadUint16()
	return int16(v), err
}

// ReadInt32 consumes four bytes as a big-endian signed value.
func (b *Buffer) ReadInt32() (int32, error) {
	v, err := b.ReadUint32()
	return int32(v), err
}

// ReadInt64 consumes eight bytes as a big-endian signed value.
func (b *Buffer) ReadInt64() (int64, error) {
	v, err := b.ReadUint64()
	return int64(v), err
}

// ReadFloat32 consumes four bytes as big-endian IEEE 754 bits.
func (b *Buffer) ReadFloat32() (float32, error) {
	v, err := b.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat32LE consumes four bytes as little-endian IEEE 754 bits.
func (b *Buffer) ReadFloat32LE() (float32, error) {
	v, err := b.ReadUint32LE()
	return math.Float32frombits(v), err
}

// ReadFloat64 consumes eight bytes as big-endian IEEE 754 bits.
func (b *Buffer) ReadFloat64() (float64, error) {
	v, err := b.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadFloat64LE consumes eight bytes as little-endian IEEE 754 bits.
func (b *Buffer) ReadFloat64LE() (float64, error) {
	v, err := b.ReadUint64LE()
	return math.Float64frombits(v), err
}

// WriteDecimalInt64 appends v as ASCII decimal digits with a leading '-'
// for negative values.
func (b *Buffer) WriteDecimalInt64(v int64) {
	// A 64-bit decimal needs at most 20 bytes including the sign, so the
	// digits always land in one segment without allocating.
	tail := b.writableSegment(20)
	out := strconv.AppendInt(tail.block.data[tail.limit:tail.limit], v, 10)
	tail.limit += len(out)
	b.size += int64(len(out))
}

// WriteHexUint64 appends v as lowercase ASCII hexadecimal digits without
// a prefix or leading zeros.
func (b *Buffer) WriteHexUint64(v uint64) {
	tail := b.writableSegment(16)
	out := strconv.AppendUint(tail.block.data[tail.limit:tail.limit], v, 16)
	tail.limit += len(out)
	b.size += int64(len(out))
}

// decimalOverflowZone is the running negated value past which appending
// any further digit overflows int64. The value runs negated so that the
// minimum signed value parses without special casing.
const decimalOverflowZone = math.MinInt64 / 10

// ReadDecimalInt64 parses a signed decimal from the head: an optional '-'
// followed by ASCII digits, stopping at the first non-digit. Overflow or
// a missing digit fails with a NumberFormatError naming the literal as
// far as it was recognized; the offending digit is not consumed.
func (b *Buffer) ReadDecimalInt64() (int64, error) {
	if b.size == 0 {
		return 0, ErrEndOfStream
	}
	var value int64
	seen := 0
	negative := false
	overflowDigit := int64(-7)
	lit := make([]byte, 0, 20)

	if b.Get(0) == '-' {
		negative = true
		overflowDigit--
		lit = append(lit, '-')
		_ = b.Skip(1)
	}
	for b.size > 0 {
		c := b.Get(0)
		if c < '0' || c > '9' {
			break
		}
		digit := int64(c - '0')
		if value < decimalOverflowZone ||
			(value == decimalOverflowZone && -digit < overflowDigit) {
			lit = append(lit, c)
			return 0, &NumberFormatError{Literal: string(lit)}
		}
		value = value*10 - digit
		lit = append(lit, c)
		seen++
		_ = b.Skip(1)
	}
	if seen == 0 {
		if b.size > 0 {
			lit = append(lit, b.Get(0))
		}
		return 0, &NumberFormatError{Literal: string(lit)}
	}
	if negative {
		return value, nil
	}
	return -value, nil
}

// ReadHexUint64 parses an unsigned hexadecimal from the head, stopping at
// the first byte that is not a hex digit. Overflow past 64 bits or a
// missing digit fails with a NumberFormatError naming the literal.
func (b *Buffer) ReadHexUint64() (uint64, error) {
	if b.size == 0 {
		return 0, ErrEndOfStream
	}
	var value uint64
	seen := 0
	lit := make([]byte, 0, 17)
	for b.size > 0 {
		c := b.Get(0)
		var digit uint64
		switch {
		case c >= '0' && c <= '9':
			digit = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			digit = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			digit = uint64(c-'A') + 10
		default:
			if seen == 0 {
				lit = append(lit, c)
				return 0, &NumberFormatError{Literal: string(lit)}
			}
			return value, nil
		}
		if value&0xF000000000000000 != 0 {
			lit = append(lit, c)
			return 0, &NumberFormatError{Literal: string(lit)}
		}
		value = value<<4 | digit
		lit = append(lit, c)
		seen++
		_ = b.Skip(1)
	}
	return value, nil
}
