// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio_test

import (
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf16"

	"code.hybscloud.com/segio"
)

func TestBufferUTF8RoundTrip(t *testing.T) {
	cases := []string{
		"",
		"hello",
		"héllo wörld",
		"こんにちは世界",
		"mixed ascii と 漢字 and €",
		" ߿ࠀ�",
		"emoji \U0001F600\U0001F680",
	}
	for _, s := range cases {
		var b segio.Buffer
		n, err := b.WriteString(s)
		if err != nil {
			t.Fatal(err)
		}
		if n != len(s) {
			t.Fatalf("%q: wrote %d bytes, want %d", s, n, len(s))
		}
		got, err := b.ReadString(int64(n))
		if err != nil {
			t.Fatal(err)
		}
		if got != s {
			t.Fatalf("round trip %q = %q", s, got)
		}
	}
}

func TestBufferUTF8RoundTripAcrossSegments(t *testing.T) {
	var b segio.Buffer
	s := strings.Repeat("界", 10000) // 30000 bytes, straddles segments
	_, _ = b.WriteString(s)
	got, err := b.ReadString(30000)
	if err != nil {
		t.Fatal(err)
	}
	if got != s {
		t.Fatal("multi-segment text corrupted")
	}
}

func TestBufferWriteRune(t *testing.T) {
	var b segio.Buffer
	for _, c := range []struct {
		r    rune
		want string
	}{
		{'a', "a"},
		{'é', "é"},
		{'界', "界"},
		{'\U0001F600', "\U0001F600"},
		{0xD800, "?"}, // lone surrogate
		{0xDFFF, "?"},
		{0x110000, "?"}, // past the Unicode range
		{-1, "?"},
	} {
		b.Clear()
		n, err := b.WriteRune(c.r)
		if err != nil {
			t.Fatal(err)
		}
		if n != len(c.want) {
			t.Fatalf("%#x: wrote %d bytes, want %d", c.r, n, len(c.want))
		}
		got, _ := b.ReadString(b.Size())
		if got != c.want {
			t.Fatalf("%#x encoded to %q, want %q", c.r, got, c.want)
		}
	}
}

func TestBufferWriteUTF16(t *testing.T) {
	t.Run("well formed", func(t *testing.T) {
		var b segio.Buffer
		s := "pair \U0001F600 and text 界"
		n := b.WriteUTF16(utf16.Encode([]rune(s)))
		if n != len(s) {
			t.Fatalf("wrote %d bytes, want %d", n, len(s))
		}
		got, _ := b.ReadString(int64(n))
		if got != s {
			t.Fatalf("got %q, want %q", got, s)
		}
	})

	t.Run("lone high surrogate", func(t *testing.T) {
		var b segio.Buffer
		n := b.WriteUTF16([]uint16{'a', 0xD800, 'b'})
		if n != 3 {
			t.Fatalf("wrote %d bytes, want 3", n)
		}
		got, _ := b.ReadString(3)
		if got != "a?b" {
			t.Fatalf("got %q, want %q", got, "a?b")
		}
	})

	t.Run("lone low surrogate", func(t *testing.T) {
		var b segio.Buffer
		_ = b.WriteUTF16([]uint16{0xDC00})
		got, _ := b.ReadString(1)
		if got != "?" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("reversed pair", func(t *testing.T) {
		var b segio.Buffer
		n := b.WriteUTF16([]uint16{0xDC00, 0xD800})
		if n != 2 {
			t.Fatalf("wrote %d bytes, want 2", n)
		}
		got, _ := b.ReadString(2)
		if got != "??" {
			t.Fatalf("got %q, want %q", got, "??")
		}
	})

	t.Run("high surrogate at end", func(t *testing.T) {
		var b segio.Buffer
		_ = b.WriteUTF16([]uint16{'x', 0xD83D})
		got, _ := b.ReadString(2)
		if got != "x?" {
			t.Fatalf("got %q", got)
		}
	})
}

func TestBufferReadRune(t *testing.T) {
	t.Run("ascii", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.WriteString("A")
		r, n, err := b.ReadRune()
		if err != nil || r != 'A' || n != 1 {
			t.Fatalf("got %#x/%d/%v", r, n, err)
		}
	})

	t.Run("four byte scalar", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.Write([]byte{0xF0, 0x9F, 0x98, 0x80})
		r, n, err := b.ReadRune()
		if err != nil || r != 0x1F600 || n != 4 {
			t.Fatalf("got %#x/%d/%v, want 0x1F600/4", r, n, err)
		}
		if b.Size() != 0 {
			t.Fatal("did not consume the full sequence")
		}
	})

	t.Run("overlong two byte", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.Write([]byte{0xC0, 0x81})
		r, n, err := b.ReadRune()
		if err != nil || r != '�' || n != 2 {
			t.Fatalf("got %#x/%d/%v, want U+FFFD/2", r, n, err)
		}
		if b.Size() != 0 {
			t.Fatal("overlong sequence must consume both bytes")
		}
	})

	t.Run("continuation as lead", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.Write([]byte{0x80, 'x'})
		r, n, _ := b.ReadRune()
		if r != '�' || n != 1 {
			t.Fatalf("got %#x/%d, want U+FFFD/1", r, n)
		}
		r, _, _ = b.ReadRune()
		if r != 'x' {
			t.Fatalf("next rune = %#x", r)
		}
	})

	t.Run("broken continuation", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.Write([]byte{0xE2, 0x28, 0xA1}) // 0x28 is not a continuation
		r, n, _ := b.ReadRune()
		if r != '�' || n != 1 {
			t.Fatalf("got %#x/%d, want U+FFFD/1", r, n)
		}
		r, _, _ = b.ReadRune()
		if r != 0x28 {
			t.Fatalf("next rune = %#x, want 0x28", r)
		}
	})

	t.Run("surrogate encoding", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.Write([]byte{0xED, 0xA0, 0x80}) // U+D800
		r, n, _ := b.ReadRune()
		if r != '�' || n != 3 {
			t.Fatalf("got %#x/%d, want U+FFFD/3", r, n)
		}
	})

	t.Run("out of range", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.Write([]byte{0xF4, 0x90, 0x80, 0x80}) // U+110000
		r, n, _ := b.ReadRune()
		if r != '�' || n != 4 {
			t.Fatalf("got %#x/%d, want U+FFFD/4", r, n)
		}
	})

	t.Run("truncated advances one byte", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.Write([]byte{0xF0, 0x9F})
		r, n, _ := b.ReadRune()
		if r != '�' || n != 1 {
			t.Fatalf("got %#x/%d, want U+FFFD/1", r, n)
		}
		if b.Size() != 1 {
			t.Fatalf("remaining = %d, want 1", b.Size())
		}
	})

	t.Run("empty buffer", func(t *testing.T) {
		var b segio.Buffer
		if _, _, err := b.ReadRune(); !errors.Is(err, segio.ErrEndOfStream) {
			t.Fatalf("got %v, want ErrEndOfStream", err)
		}
	})
}

func TestBufferReadStringReplacement(t *testing.T) {
	var b segio.Buffer
	_, _ = b.Write([]byte{'o', 'k', 0xC0, 0x81, 'x', 0xF0, 0x9F})
	got, err := b.ReadString(7)
	if err != nil {
		t.Fatal(err)
	}
	// Overlong pair collapses to one replacement; the trailing truncated
	// lead and continuation yield one replacement each.
	if got != "ok�x��" {
		t.Fatalf("got %q", got)
	}
}

func TestBufferWriteStringSanitizesInvalidBytes(t *testing.T) {
	var b segio.Buffer
	_, _ = b.WriteString("a\x80b") // bare continuation byte inside a Go string
	got, _ := b.ReadString(b.Size())
	if got != "a�b" {
		t.Fatalf("got %q", got)
	}
}

func TestBufferReadUTF8Line(t *testing.T) {
	t.Run("lf and crlf", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.WriteString("one\ntwo\r\nthree")

		line, err := b.ReadUTF8Line()
		if err != nil || line != "one" {
			t.Fatalf("got %q, %v", line, err)
		}
		line, err = b.ReadUTF8Line()
		if err != nil || line != "two" {
			t.Fatalf("got %q, %v", line, err)
		}
		line, err = b.ReadUTF8Line()
		if err != nil || line != "three" {
			t.Fatalf("got %q, %v", line, err)
		}
		if _, err = b.ReadUTF8Line(); err != io.EOF {
			t.Fatalf("exhausted = %v, want io.EOF", err)
		}
	})

	t.Run("empty lines", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.WriteString("\n\r\n")
		for range 2 {
			line, err := b.ReadUTF8Line()
			if err != nil || line != "" {
				t.Fatalf("got %q, %v", line, err)
			}
		}
	})
}

func TestBufferReadUTF8LineStrict(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.WriteString("abcd\nrest")
		line, err := b.ReadUTF8LineStrict(10)
		if err != nil || line != "abcd" {
			t.Fatalf("got %q, %v", line, err)
		}
		if rest, _ := b.ReadString(b.Size()); rest != "rest" {
			t.Fatalf("remainder %q", rest)
		}
	})

	t.Run("newline exactly at limit", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.WriteString("abcd\n")
		line, err := b.ReadUTF8LineStrict(4)
		if err != nil || line != "abcd" {
			t.Fatalf("got %q, %v", line, err)
		}
	})

	t.Run("crlf straddling limit", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.WriteString("abcd\r\nx")
		line, err := b.ReadUTF8LineStrict(4)
		if err != nil || line != "abcd" {
			t.Fatalf("got %q, %v", line, err)
		}
	})

	t.Run("no newline within limit", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.WriteString("abcdefgh\n")
		if _, err := b.ReadUTF8LineStrict(3); !errors.Is(err, segio.ErrEndOfStream) {
			t.Fatalf("got %v, want ErrEndOfStream", err)
		}
	})

	t.Run("no newline at all", func(t *testing.T) {
		var b segio.Buffer
		_, _ = b.WriteString("no terminator")
		if _, err := b.ReadUTF8LineStrict(1 << 40); !errors.Is(err, segio.ErrEndOfStream) {
			t.Fatalf("got %v, want ErrEndOfStream", err)
		}
	})
}
