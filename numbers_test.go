// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"code.hybscloud.com/segio"
)

func TestBufferUint16RoundTrip(t *testing.T) {
	values := []uint16{0, 1, 0x7FFF, 0x8000, 0xABCD, math.MaxUint16}

	t.Run("big endian", func(t *testing.T) {
		var b segio.Buffer
		for _, v := range values {
			b.WriteUint16(v)
		}
		if c := b.Get(0); c != 0x00 {
			t.Fatalf("first byte = %#x, want high byte first", c)
		}
		for _, v := range values {
			got, err := b.ReadUint16()
			if err != nil {
				t.Fatal(err)
			}
			if got != v {
				t.Fatalf("got %#x, want %#x", got, v)
			}
		}
	})

	t.Run("little endian", func(t *testing.T) {
		var b segio.Buffer
		b.WriteUint16LE(0x1122)
		if c := b.Get(0); c != 0x22 {
			t.Fatalf("first byte = %#x, want low byte first", c)
		}
		got, err := b.ReadUint16LE()
		if err != nil {
			t.Fatal(err)
		}
		if got != 0x1122 {
			t.Fatalf("got %#x", got)
		}
	})
}

func TestBufferUint32RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 0x11223344, 0x80000000, math.MaxUint32}
	var b segio.Buffer
	for _, v := range values {
		b.WriteUint32(v)
		b.WriteUint32LE(v)
	}
	for _, v := range values {
		be, err := b.ReadUint32()
		if err != nil {
			t.Fatal(err)
		}
		le, err := b.ReadUint32LE()
		if err != nil {
			t.Fatal(err)
		}
		if be != v || le != v {
			t.Fatalf("got %#x/%#x, want %#x", be, le, v)
		}
	}
}

func TestBufferUint64RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0x1122334455667788, 1 << 63, math.MaxUint64}
	var b segio.Buffer
	for _, v := range values {
		b.WriteUint64(v)
		b.WriteUint64LE(v)
	}
	for _, v := range values {
		be, err := b.ReadUint64()
		if err != nil {
			t.Fatal(err)
		}
		le, err := b.ReadUint64LE()
		if err != nil {
			t.Fatal(err)
		}
		if be != v || le != v {
			t.Fatalf("got %#x/%#x, want %#x", be, le, v)
		}
	}
}

func TestBufferSignedRoundTrip(t *testing.T) {
	var b segio.Buffer
	b.WriteInt16(-2)
	b.WriteInt32(-3)
	b.WriteInt64(math.MinInt64)
	b.WriteInt64(math.MaxInt64)

	if v, _ := b.ReadInt16(); v != -2 {
		t.Fatalf("int16 = %d", v)
	}
	if v, _ := b.ReadInt32(); v != -3 {
		t.Fatalf("int32 = %d", v)
	}
	if v, _ := b.ReadInt64(); v != math.MinInt64 {
		t.Fatalf("int64 = %d", v)
	}
	if v, _ := b.ReadInt64(); v != math.MaxInt64 {
		t.Fatalf("int64 = %d", v)
	}
}

func TestBufferFloatRoundTrip(t *testing.T) {
	f64s := []float64{0, 1.5, -math.Pi, math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(1)}
	var b segio.Buffer
	for _, v := range f64s {
		b.WriteFloat64(v)
		b.WriteFloat64LE(v)
	}
	for _, v := range f64s {
		be, err := b.ReadFloat64()
		if err != nil {
			t.Fatal(err)
		}
		le, err := b.ReadFloat64LE()
		if err != nil {
			t.Fatal(err)
		}
		if be != v || le != v {
			t.Fatalf("got %v/%v, want %v", be, le, v)
		}
	}

	b.WriteFloat64(math.NaN())
	if v, _ := b.ReadFloat64(); !math.IsNaN(v) {
		t.Fatalf("NaN round trip = %v", v)
	}

	b.WriteFloat32(2.75)
	b.WriteFloat32LE(-0.5)
	if v, _ := b.ReadFloat32(); v != 2.75 {
		t.Fatalf("float32 = %v", v)
	}
	if v, _ := b.ReadFloat32LE(); v != -0.5 {
		t.Fatalf("float32le = %v", v)
	}
}

func TestBufferPrimitiveShortRead(t *testing.T) {
	var b segio.Buffer
	_ = b.WriteByte(0x01)
	if _, err := b.ReadUint32(); !errors.Is(err, segio.ErrEndOfStream) {
		t.Fatalf("short ReadUint32 = %v, want ErrEndOfStream", err)
	}
}

func TestBufferPrimitivesAcrossSegmentBoundary(t *testing.T) {
	// Write the value byte-wise so its encoding physically spans two
	// segments: four bytes at the end of the first, four in the second.
	var b segio.Buffer
	_, _ = b.WriteString(strings.Repeat("p", segio.SegmentSize-4))
	const v = uint64(0x0102030405060708)
	for i := 0; i < 8; i++ {
		_ = b.WriteByte(byte(v >> (56 - 8*i)))
	}
	if err := b.Skip(segio.SegmentSize - 4); err != nil {
		t.Fatal(err)
	}
	got, err := b.ReadUint64()
	if err != nil {
		t.Fatal(err)
	}
	if got != v {
		t.Fatalf("straddled ReadUint64 = %#x", got)
	}
}

func TestBufferReadDecimalInt64(t *testing.T) {
	read := func(t *testing.T, s string) (int64, error) {
		t.Helper()
		var b segio.Buffer
		_, _ = b.WriteString(s)
		return b.ReadDecimalInt64()
	}

	t.Run("values", func(t *testing.T) {
		cases := map[string]int64{
			"0":                    0,
			"1":                    1,
			"-1":                   -1,
			"42":                   42,
			"00042":                42,
			"9223372036854775807":  math.MaxInt64,
			"-9223372036854775807": math.MinInt64 + 1,
			"-9223372036854775808": math.MinInt64,
		}
		for s, want := range cases {
			got, err := read(t, s)
			if err != nil {
				t.Fatalf("%q: %v", s, err)
			}
			if got != want {
				t.Fatalf("%q = %d, want %d", s, got, want)
			}
		}
	})

	t.Run("stops at non-digit", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.WriteString("123abc")
		got, err := b.ReadDecimalInt64()
		if err != nil || got != 123 {
			t.Fatalf("got %d, %v", got, err)
		}
		if rest, _ := b.ReadString(b.Size()); rest != "abc" {
			t.Fatalf("remainder %q, want %q", rest, "abc")
		}
	})

	t.Run("positive overflow names literal", func(t *testing.T) {
		_, err := read(t, "9223372036854775808")
		var nfe *segio.NumberFormatError
		if !errors.As(err, &nfe) {
			t.Fatalf("overflow = %v, want NumberFormatError", err)
		}
		if !strings.Contains(err.Error(), "9223372036854775808") {
			t.Fatalf("message %q does not name the literal", err)
		}
	})

	t.Run("negative overflow", func(t *testing.T) {
		_, err := read(t, "-9223372036854775809")
		var nfe *segio.NumberFormatError
		if !errors.As(err, &nfe) {
			t.Fatalf("overflow = %v, want NumberFormatError", err)
		}
	})

	t.Run("huge overflow", func(t *testing.T) {
		_, err := read(t, "123456789012345678901234567890")
		var nfe *segio.NumberFormatError
		if !errors.As(err, &nfe) {
			t.Fatalf("overflow = %v, want NumberFormatError", err)
		}
	})

	t.Run("missing digits", func(t *testing.T) {
		for _, s := range []string{"-", "abc", "-x"} {
			_, err := read(t, s)
			var nfe *segio.NumberFormatError
			if !errors.As(err, &nfe) {
				t.Fatalf("%q = %v, want NumberFormatError", s, err)
			}
		}
	})

	t.Run("empty buffer", func(t *testing.T) {
		var b segio.Buffer
		if _, err := b.ReadDecimalInt64(); !errors.Is(err, segio.ErrEndOfStream) {
			t.Fatalf("empty = %v, want ErrEndOfStream", err)
		}
	})
}

func TestBufferWriteDecimalInt64(t *testing.T) {
	cases := []int64{0, 1, -1, 42, 9999999, math.MaxInt64, math.MinInt64}
	for _, v := range cases {
		var b segio.Buffer
		b.WriteDecimalInt64(v)
		got, err := b.ReadDecimalInt64()
		if err != nil {
			t.Fatalf("%d: %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip %d = %d", v, got)
		}
	}

	var b segio.Buffer
	b.WriteDecimalInt64(-1234)
	if s, _ := b.ReadString(5); s != "-1234" {
		t.Fatalf("formatted as %q", s)
	}
}

func TestBufferWriteHexUint64(t *testing.T) {
	cases := []uint64{0, 1, 0xDEADBEEF, math.MaxUint64}
	for _, v := range cases {
		var b segio.Buffer
		b.WriteHexUint64(v)
		got, err := b.ReadHexUint64()
		if err != nil {
			t.Fatalf("%#x: %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip %#x = %#x", v, got)
		}
	}

	var b segio.Buffer
	b.WriteHexUint64(0xCAFE)
	if s, _ := b.ReadString(4); s != "cafe" {
		t.Fatalf("formatted as %q", s)
	}
}

func TestBufferWriteDecimalNearSegmentEnd(t *testing.T) {
	// The formatter needs contiguous room; a nearly full tail forces a
	// fresh segment without corrupting anything.
	var b segio.Buffer
	_, _ = b.WriteString(strings.Repeat("x", segio.SegmentSize-3))
	b.WriteDecimalInt64(math.MinInt64)
	if err := b.Skip(segio.SegmentSize - 3); err != nil {
		t.Fatal(err)
	}
	v, err := b.ReadDecimalInt64()
	if err != nil || v != math.MinInt64 {
		t.Fatalf("got %d, %v", v, err)
	}
}

func TestBufferReadHexUint64(t *testing.T) {
	read := func(t *testing.T, s string) (uint64, error) {
		t.Helper()
		var b segio.Buffer
		_, _ = b.WriteString(s)
		return b.ReadHexUint64()
	}

	t.Run("values", func(t *testing.T) {
		cases := map[string]uint64{
			"0":                0,
			"f":                15,
			"F":                15,
			"dead":             0xDEAD,
			"DeadBeef":         0xDEADBEEF,
			"ffffffffffffffff": math.MaxUint64,
			"0000000000000001": 1,
		}
		for s, want := range cases {
			got, err := read(t, s)
			if err != nil {
				t.Fatalf("%q: %v", s, err)
			}
			if got != want {
				t.Fatalf("%q = %#x, want %#x", s, got, want)
			}
		}
	})

	t.Run("stops at non-hex", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.WriteString("1fg")
		got, err := b.ReadHexUint64()
		if err != nil || got != 0x1F {
			t.Fatalf("got %#x, %v", got, err)
		}
		if rest, _ := b.ReadString(b.Size()); rest != "g" {
			t.Fatalf("remainder %q", rest)
		}
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := read(t, "10000000000000000")
		var nfe *segio.NumberFormatError
		if !errors.As(err, &nfe) {
			t.Fatalf("overflow = %v, want NumberFormatError", err)
		}
	})

	t.Run("missing digits", func(t *testing.T) {
		_, err := read(t, "xyz")
		var nfe *segio.NumberFormatError
		if !errors.As(err, &nfe) {
			t.Fatalf("missing digits = %v, want NumberFormatError", err)
		}
	})
}
