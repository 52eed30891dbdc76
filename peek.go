// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import "io"

// peekSource reads ahead of a BufferedSource without consuming it. Bytes
// are served as shared snapshots of the upstream buffer, and further
// bytes are pulled from the raw source through the upstream buffer. The
// peek stays valid only while the upstream does not consume: its head
// segment and head position are captured at first observation and checked
// on every read.
type peekSource struct {
	upstream    *BufferedSource
	expected    *segment
	expectedPos int
	pos         int64
	closed      bool
}

func newPeekSource(upstream *BufferedSource) *peekSource {
	p := &peekSource{upstream: upstream}
	if head := upstream.buf.head; head != nil {
		p.expected = head
		p.expectedPos = head.pos
	}
	return p
}

func (p *peekSource) ReadTo(sink *Buffer, max int64) (int64, error) {
	if max < 0 {
		panic("segio: read count negative")
	}
	if p.closed {
		return 0, ErrClosed
	}
	buf := &p.upstream.buf
	if p.expected != nil &&
		(buf.head != p.expected || p.expected.pos != p.expectedPos) {
		return 0, ErrPeekInvalid
	}
	if max == 0 {
		return 0, nil
	}
	ok, err := p.upstream.Request(p.pos + 1)
	if err != nil {
		return 0, err
	}
	if p.expected == nil && buf.head != nil {
		p.expected = buf.head
		p.expectedPos = buf.head.pos
	}
	if !ok && p.pos >= buf.size {
		return 0, io.EOF
	}
	n := min(max, buf.size-p.pos)
	buf.CopyTo(sink, p.pos, n)
	p.pos += n
	return n, nil
}

func (p *peekSource) Close() error {
	p.closed = true
	return nil
}
