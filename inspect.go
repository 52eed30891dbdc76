// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
)

// Equal reports whether b and other hold the same byte sequence. The
// comparison walks both segment lists in lockstep, so buffers chunked
// differently still compare equal byte for byte.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == other {
		return true
	}
	if other == nil || b.size != other.size {
		return false
	}
	if b.size == 0 {
		return true
	}
	sa, sb := b.head, other.head
	pa, pb := sa.pos, sb.pos
	var pos int64
	for pos < b.size {
		n := min(sa.limit-pa, sb.limit-pb)
		if !bytes.Equal(sa.block.data[pa:pa+n], sb.block.data[pb:pb+n]) {
			return false
		}
		pa += n
		pb += n
		pos += int64(n)
		if pa == sa.limit {
			sa = sa.next
			pa = sa.pos
		}
		if pb == sb.limit {
			sb = sb.next
			pb = sb.pos
		}
	}
	return true
}

// Hash returns h over all readable bytes where h starts at 1 and each
// byte folds in as h = 31*h + byte. Equal buffers hash equal regardless
// of chunking.
func (b *Buffer) Hash() uint32 {
	h := uint32(1)
	if b.head == nil {
		return h
	}
	s := b.head
	for {
		for _, c := range s.block.data[s.pos:s.limit] {
			h = 31*h + uint32(c)
		}
		s = s.next
		if s == b.head {
			break
		}
	}
	return h
}

// RangeEquals reports whether the bytes at absolute offset match bs in
// full, without consuming anything. Offsets past the end simply report
// false.
func (b *Buffer) RangeEquals(offset int64, bs ByteString) bool {
	if offset < 0 {
		panic("segio: offset negative")
	}
	n := int64(len(bs.data))
	if n == 0 {
		return offset <= b.size
	}
	if offset+n > b.size {
		return false
	}
	s, start := b.seek(offset)
	matched := int64(0)
	for matched < n {
		i := s.pos + int(offset+matched-start)
		span := int(min(n-matched, int64(s.limit-i)))
		if !bytes.Equal(s.block.data[i:i+span], bs.data[matched:matched+int64(span)]) {
			return false
		}
		matched += int64(span)
		start += int64(s.size())
		s = s.next
	}
	return true
}

var describeEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	"\r", `\r`,
)

// String returns a human-readable description of the buffer without
// consuming it: "[size=N text=...]" when the first code points (at most
// 64) are printable text, otherwise "[size=N hex=...]" with the first 64
// bytes in lowercase hex. A trailing "…" marks truncation. Printable
// means no control characters other than '\n' and '\r' and no
// replacement code points.
func (b *Buffer) String() string {
	if b.size == 0 {
		return "[size=0]"
	}
	var text strings.Builder
	printable := true
	shown := int64(0)
	for cps := 0; shown < b.size && cps < 64; cps++ {
		var tmp [4]byte
		k := int(min(4, b.size-shown))
		for j := range k {
			tmp[j] = b.Get(shown + int64(j))
		}
		r, n := decodeScalar(tmp[:k])
		if r == replacementRune || (unicode.IsControl(r) && r != '\n' && r != '\r') {
			printable = false
			break
		}
		text.WriteRune(r)
		shown += int64(n)
	}
	if printable {
		escaped := describeEscaper.Replace(text.String())
		if shown < b.size {
			return fmt.Sprintf("[size=%d text=%s…]", b.size, escaped)
		}
		return fmt.Sprintf("[size=%d text=%s]", b.size, escaped)
	}
	n := min(64, b.size)
	const digits = "0123456789abcdef"
	hexed := make([]byte, 0, 2*n)
	for i := int64(0); i < n; i++ {
		c := b.Get(i)
		hexed = append(hexed, digits[c>>4], digits[c&0xF])
	}
	if b.size > n {
		return fmt.Sprintf("[size=%d hex=%s…]", b.size, hexed)
	}
	return fmt.Sprintf("[size=%d hex=%s]", b.size, hexed)
}
