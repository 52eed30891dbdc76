// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import (
	"bytes"
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// ByteString is an immutable sequence of bytes. Unlike a Buffer it has no
// cursors and never changes, which makes it safe to share across
// goroutines, use as a map key through its Hash, and hand out without
// defensive copying. The zero value is the empty byte string.
type ByteString struct {
	data []byte
}

// NewByteString returns a byte string holding a copy of p.
func NewByteString(p []byte) ByteString {
	if len(p) == 0 {
		return ByteString{}
	}
	return ByteString{data: bytes.Clone(p)}
}

// ByteStringFromString returns a byte string of the UTF-8 bytes of s.
func ByteStringFromString(s string) ByteString {
	return ByteString{data: []byte(s)}
}

// DecodeHexByteString decodes a lowercase or uppercase hex string.
func DecodeHexByteString(s string) (ByteString, error) {
	p, err := hex.DecodeString(s)
	if err != nil {
		return ByteString{}, err
	}
	return ByteString{data: p}, nil
}

// DecodeBase64ByteString decodes standard base64 with or without padding.
func DecodeBase64ByteString(s string) (ByteString, error) {
	enc := base64.StdEncoding
	if len(s)%4 != 0 {
		enc = base64.RawStdEncoding
	}
	p, err := enc.DecodeString(s)
	if err != nil {
		return ByteString{}, err
	}
	return ByteString{data: p}, nil
}

// Len returns the number of bytes.
func (s ByteString) Len() int {
	return len(s.data)
}

// Get returns the byte at index i. It panics when i is out of range.
func (s ByteString) Get(i int) byte {
	if i < 0 || i >= len(s.data) {
		panic("segio: index out of range")
	}
	return s.data[i]
}

// Bytes returns a copy of the content as a mutable slice.
func (s ByteString) Bytes() []byte {
	return bytes.Clone(s.data)
}

// Hex returns the content as lowercase hexadecimal.
func (s ByteString) Hex() string {
	return hex.EncodeToString(s.data)
}

// Base64 returns the content as standard padded base64.
func (s ByteString) Base64() string {
	return base64.StdEncoding.EncodeToString(s.data)
}

// UTF8 decodes the content as UTF-8 text with the replacement rules.
func (s ByteString) UTF8() string {
	return decodeString(s.data)
}

// Equal reports whether two byte strings hold the same bytes.
func (s ByteString) Equal(other ByteString) bool {
	return bytes.Equal(s.data, other.data)
}

// Compare orders byte strings lexicographically like bytes.Compare.
func (s ByteString) Compare(other ByteString) int {
	return bytes.Compare(s.data, other.data)
}

// StartsWith reports whether the content begins with prefix.
func (s ByteString) StartsWith(prefix ByteString) bool {
	return bytes.HasPrefix(s.data, prefix.data)
}

// EndsWith reports whether the content ends with suffix.
func (s ByteString) EndsWith(suffix ByteString) bool {
	return bytes.HasSuffix(s.data, suffix.data)
}

// IndexOfByte returns the index of the first occurrence of c at or after
// from, or -1.
func (s ByteString) IndexOfByte(c byte, from int) int {
	if from < 0 {
		panic("segio: index negative")
	}
	if from >= len(s.data) {
		return -1
	}
	i := bytes.IndexByte(s.data[from:], c)
	if i < 0 {
		return -1
	}
	return from + i
}

// Index returns the index of the first occurrence of sub, or -1.
func (s ByteString) Index(sub ByteString) int {
	return bytes.Index(s.data, sub.data)
}

// Substring returns the bytes in [from, to). The result shares storage
// with s; immutability makes the aliasing safe.
func (s ByteString) Substring(from, to int) ByteString {
	if from < 0 || to < from || to > len(s.data) {
		panic("segio: substring range out of range")
	}
	return ByteString{data: s.data[from:to:to]}
}

// SHA256 returns the SHA-256 digest of the content.
func (s ByteString) SHA256() ByteString {
	sum := sha256.Sum256(s.data)
	return ByteString{data: sum[:]}
}

// MD5 returns the MD5 digest of the content.
func (s ByteString) MD5() ByteString {
	sum := md5.Sum(s.data)
	return ByteString{data: sum[:]}
}

// XXH64 returns the 64-bit xxHash of the content.
func (s ByteString) XXH64() uint64 {
	return xxhash.Sum64(s.data)
}

// Hash returns h over the content where h starts at 1 and each byte folds
// in as h = 31*h + byte, matching Buffer.Hash for equal bytes.
func (s ByteString) Hash() uint32 {
	h := uint32(1)
	for _, c := range s.data {
		h = 31*h + uint32(c)
	}
	return h
}

// String returns the same description form as Buffer.String.
func (s ByteString) String() string {
	if len(s.data) == 0 {
		return "[size=0]"
	}
	text, printable := describeText(s.data)
	if printable {
		return text
	}
	n := min(64, len(s.data))
	if len(s.data) > n {
		return fmt.Sprintf("[size=%d hex=%s…]", len(s.data), hex.EncodeToString(s.data[:n]))
	}
	return fmt.Sprintf("[size=%d hex=%s]", len(s.data), hex.EncodeToString(s.data[:n]))
}

// describeText renders up to 64 leading code points of p, reporting
// whether they are all printable.
func describeText(p []byte) (string, bool) {
	var text []rune
	shown := 0
	for cps := 0; shown < len(p) && cps < 64; cps++ {
		r, n := decodeScalar(p[shown:min(shown+4, len(p))])
		if r == replacementRune || (unicode.IsControl(r) && r != '\n' && r != '\r') {
			return "", false
		}
		text = append(text, r)
		shown += n
	}
	escaped := describeEscaper.Replace(string(text))
	if shown < len(p) {
		return fmt.Sprintf("[size=%d text=%s…]", len(p), escaped), true
	}
	return fmt.Sprintf("[size=%d text=%s]", len(p), escaped), true
}

// WriteByteString appends the content of bs to the buffer.
func (b *Buffer) WriteByteString(bs ByteString) {
	_, _ = b.Write(bs.data)
}

// ReadByteString consumes exactly n bytes as an immutable byte string.
func (b *Buffer) ReadByteString(n int64) (ByteString, error) {
	p, err := b.ReadBytes(n)
	if err != nil {
		return ByteString{}, err
	}
	return ByteString{data: p}, nil
}

// Snapshot returns the buffer's content as an immutable byte string
// without consuming it.
func (b *Buffer) Snapshot() ByteString {
	if b.size == 0 {
		return ByteString{}
	}
	p := make([]byte, 0, b.size)
	s := b.head
	for {
		p = append(p, s.block.data[s.pos:s.limit]...)
		s = s.next
		if s == b.head {
			break
		}
	}
	return ByteString{data: p}
}

// ReadByteString consumes exactly n bytes as an immutable byte string,
// pulling from the raw source as needed.
func (s *BufferedSource) ReadByteString(n int64) (ByteString, error) {
	if err := s.Require(n); err != nil {
		return ByteString{}, err
	}
	return s.buf.ReadByteString(n)
}

// WriteByteString stages the content of bs and emits completed segments.
func (s *BufferedSink) WriteByteString(bs ByteString) error {
	if s.closed {
		return ErrClosed
	}
	s.buf.WriteByteString(bs)
	return s.EmitCompleteSegments()
}
