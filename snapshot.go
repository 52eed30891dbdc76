// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

// CopyTo appends n bytes of b starting at absolute offset to dst without
// consuming them and without copying storage: dst receives shared-copy
// segments viewing b's blocks, and the blocks stay alive until every view
// releases them. It panics when dst is b itself or the range falls
// outside [0, Size].
func (b *Buffer) CopyTo(dst *Buffer, offset, n int64) {
	if dst == b {
		panic("segio: cannot copy a buffer into itself")
	}
	if offset < 0 || n < 0 || offset+n > b.size {
		panic("segio: copy range out of range")
	}
	if n == 0 {
		return
	}
	s := b.head
	for offset >= int64(s.size()) {
		offset -= int64(s.size())
		s = s.next
	}
	remaining := n
	for remaining > 0 {
		c := s.sharedCopy()
		c.pos += int(offset)
		if limit := c.pos + int(min(remaining, int64(s.limit-c.pos))); limit < c.limit {
			c.limit = limit
		}
		if dst.head == nil {
			c.prev = c
			c.next = c
			dst.head = c
		} else {
			dst.head.prev.push(c)
		}
		remaining -= int64(c.size())
		offset = 0
		s = s.next
	}
	dst.size += n
}

// Clone returns a snapshot holding the same byte sequence as b. The two
// buffers share segment storage but consume independently; no bytes are
// copied.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{}
	if b.size > 0 {
		b.CopyTo(c, 0, b.size)
	}
	return c
}
