// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import (
	"io"

	"github.com/pkg/errors"
)

// Buffer is an in-memory byte queue backed by a circular list of pooled
// segments. Bytes are appended at the tail and consumed at the head, so a
// Buffer serves as a writable queue and a readable queue at the same time.
// Moving data between buffers reassigns whole segments instead of copying
// bytes wherever segment-level transfer suffices.
//
// A Buffer implements both raw capabilities (Source and Sink) as well as
// io.Reader, io.Writer, io.ByteReader, io.ByteWriter, io.RuneReader,
// io.StringWriter, io.WriterTo and io.ReaderFrom. Buffer operations never
// fail with I/O errors of their own: a read that wants more bytes than are
// buffered fails with ErrEndOfStream, a malformed numeric literal with
// NumberFormatError, and WriteTo and ReadFrom pass on the errors of the
// io.Writer or io.Reader they drive.
//
// A Buffer must not be used from multiple goroutines at once and must not
// be copied after first use.
type Buffer struct {
	_ noCopy

	head *segment
	size int64
}

// Size returns the number of readable bytes in the buffer.
func (b *Buffer) Size() int64 {
	return b.size
}

// writableSegment returns a tail segment with at least min writable
// bytes, taking a pooled segment when the current tail is absent, frozen,
// or too full. Appends go only to an unshared owner.
func (b *Buffer) writableSegment(min int) *segment {
	if min < 1 || min > SegmentSize {
		panic("segio: writable byte count out of range")
	}
	if b.head == nil {
		s := takeSegment()
		b.head = s
		s.prev = s
		s.next = s
		return s
	}
	tail := b.head.prev
	if tail.limit+min > SegmentSize || !tail.owner || tail.shared {
		return tail.push(takeSegment())
	}
	return tail
}

// popHead unlinks and recycles the exhausted head segment.
func (b *Buffer) popHead() {
	s := b.head
	b.head = s.pop()
	recycleSegment(s)
}

// WriteByte appends one byte. It implements io.ByteWriter and never
// returns an error.
func (b *Buffer) WriteByte(c byte) error {
	tail := b.writableSegment(1)
	tail.block.data[tail.limit] = c
	tail.limit++
	b.size++
	return nil
}

// Write appends all of p. It implements io.Writer and never returns an
// error.
func (b *Buffer) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		tail := b.writableSegment(1)
		n := copy(tail.block.data[tail.limit:], p)
		tail.limit += n
		b.size += int64(n)
		p = p[n:]
	}
	return total, nil
}

// ReadByte consumes and returns the byte at the head. It fails with
// ErrEndOfStream on an empty buffer.
func (b *Buffer) ReadByte() (byte, error) {
	if b.size == 0 {
		return 0, ErrEndOfStream
	}
	s := b.head
	c := s.block.data[s.pos]
	s.pos++
	b.size--
	if s.pos == s.limit {
		b.popHead()
	}
	return c, nil
}

// Read consumes up to len(p) bytes into p. It implements io.Reader and
// reports io.EOF on an empty buffer.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.size == 0 {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	total := 0
	for len(p) > 0 && b.head != nil {
		s := b.head
		n := copy(p, s.block.data[s.pos:s.limit])
		s.pos += n
		b.size -= int64(n)
		total += n
		p = p[n:]
		if s.pos == s.limit {
			b.popHead()
		}
	}
	return total, nil
}

// ReadBytes consumes exactly n bytes and returns them as a fresh slice.
func (b *Buffer) ReadBytes(n int64) ([]byte, error) {
	if n < 0 || n > int64(maxInt) {
		panic("segio: byte count out of range")
	}
	if b.size < n {
		return nil, ErrEndOfStream
	}
	p := make([]byte, n)
	for i := 0; i < len(p); {
		s := b.head
		c := copy(p[i:], s.block.data[s.pos:s.limit])
		s.pos += c
		b.size -= int64(c)
		i += c
		if s.pos == s.limit {
			b.popHead()
		}
	}
	return p, nil
}

// Skip discards n bytes from the head. When fewer bytes are buffered it
// discards what is there and fails with ErrEndOfStream.
func (b *Buffer) Skip(n int64) error {
	if n < 0 {
		panic("segio: skip count negative")
	}
	for n > 0 {
		if b.head == nil {
			return ErrEndOfStream
		}
		s := b.head
		step := int(min(n, int64(s.size())))
		s.pos += step
		b.size -= int64(step)
		n -= int64(step)
		if s.pos == s.limit {
			b.popHead()
		}
	}
	return nil
}

// Clear discards all readable bytes and returns every segment to the
// pool, leaving the buffer empty.
func (b *Buffer) Clear() {
	_ = b.Skip(b.size)
}

// Get returns the byte at absolute offset i without consuming it.
// It panics when i is outside [0, Size).
func (b *Buffer) Get(i int64) byte {
	if i < 0 || i >= b.size {
		panic("segio: index out of range")
	}
	s, start := b.seek(i)
	return s.block.data[s.pos+int(i-start)]
}

// seek locates the segment containing absolute offset and returns it with
// the absolute offset at which the segment begins. It scans from the head
// or from the tail, whichever is closer.
func (b *Buffer) seek(offset int64) (*segment, int64) {
	s := b.head
	if offset < b.size-offset {
		start := int64(0)
		for offset >= start+int64(s.size()) {
			start += int64(s.size())
			s = s.next
		}
		return s, start
	}
	start := b.size
	for start > offset {
		s = s.prev
		start -= int64(s.size())
	}
	return s, start
}

// IndexOf returns the absolute offset of the first occurrence of c in
// [from, to), or -1. to is clamped to Size. It panics when from is
// negative or the range is out of order.
func (b *Buffer) IndexOf(c byte, from, to int64) int64 {
	if from < 0 || to < from {
		panic("segio: index range out of order")
	}
	if to > b.size {
		to = b.size
	}
	if from >= to {
		return -1
	}
	s, start := b.seek(from)
	for start < to {
		data := s.block.data[:s.limit]
		i := s.pos
		if from > start {
			i += int(from - start)
		}
		end := s.pos + int(min(int64(s.size()), to-start))
		for ; i < end; i++ {
			if data[i] == c {
				return start + int64(i-s.pos)
			}
		}
		start += int64(s.size())
		from = start
		s = s.next
	}
	return -1
}

// WriteFrom moves n bytes from the head of src onto the tail of b.
// It implements the Sink capability for in-memory splicing and never
// returns an error.
//
// Whole segments move by relinking; a prefix of the source head either
// copies into b's absorbing tail or forces a split. After every relink
// the new tail is compacted into its predecessor when both fit in one
// segment, so that interior segments stay at least half full.
//
// It panics when src is b itself, n is negative, or src holds fewer than
// n bytes.
func (b *Buffer) WriteFrom(src *Buffer, n int64) error {
	if src == b {
		panic("segio: cannot write a buffer into itself")
	}
	if n < 0 || n > src.size {
		panic("segio: write count out of range")
	}
	for n > 0 {
		head := src.head
		if n < int64(head.size()) {
			var tail *segment
			if b.head != nil {
				tail = b.head.prev
			}
			if tail != nil && tail.owner && !tail.shared &&
				n <= int64(SegmentSize-tail.limit+tail.pos) {
				head.writeTo(tail, int(n))
				src.size -= n
				b.size += n
				return nil
			}
			src.head = head.split(int(n))
			continue
		}
		moved := int64(head.size())
		src.head = head.pop()
		if b.head == nil {
			b.head = head
			head.prev = head
			head.next = head
		} else {
			b.head.prev.push(head)
			head.compact()
		}
		src.size -= moved
		b.size += moved
		n -= moved
	}
	return nil
}

// TransferFrom moves every byte of src onto the tail of b and returns the
// number of bytes moved.
func (b *Buffer) TransferFrom(src *Buffer) int64 {
	n := src.size
	_ = b.WriteFrom(src, n)
	return n
}

// ReadTo moves up to max bytes from b into sink. It implements the Source
// capability and reports io.EOF on an empty buffer.
func (b *Buffer) ReadTo(sink *Buffer, max int64) (int64, error) {
	if max < 0 {
		panic("segio: read count negative")
	}
	if b.size == 0 {
		return 0, io.EOF
	}
	n := min(max, b.size)
	_ = sink.WriteFrom(b, n)
	return n, nil
}

// Flush implements the Sink capability. A buffer holds no downstream
// state, so Flush does nothing.
func (b *Buffer) Flush() error {
	return nil
}

// Close implements the Source and Sink capabilities. Buffers have no
// close state; the buffer stays usable.
func (b *Buffer) Close() error {
	return nil
}

// WriteTo drains the buffer into w. It implements io.WriterTo.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for b.head != nil {
		s := b.head
		n, err := w.Write(s.block.data[s.pos:s.limit])
		s.pos += n
		b.size -= int64(n)
		total += int64(n)
		if s.pos == s.limit {
			b.popHead()
		}
		if err != nil {
			return total, errors.Wrap(err, "segio: write to")
		}
	}
	return total, nil
}

// ReadFrom appends everything r produces until io.EOF. It implements
// io.ReaderFrom.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		tail := b.writableSegment(1)
		n, err := r.Read(tail.block.data[tail.limit:])
		tail.limit += n
		b.size += int64(n)
		total += int64(n)
		if err != nil {
			b.dropEmptyTail()
			if err == io.EOF {
				return total, nil
			}
			return total, errors.Wrap(err, "segio: read from")
		}
	}
}

// dropEmptyTail recycles a tail segment that ended up with no readable
// bytes, keeping the segment list free of empty interior nodes.
func (b *Buffer) dropEmptyTail() {
	if b.head == nil {
		return
	}
	tail := b.head.prev
	if tail.pos != tail.limit {
		return
	}
	if tail == b.head {
		b.head = tail.pop()
	} else {
		tail.pop()
	}
	recycleSegment(tail)
}

// completeSegmentByteCount returns the number of buffered bytes in
// segments that are safe to hand off: everything except a still-writable
// tail, which may yet absorb more bytes before it is worth emitting.
func (b *Buffer) completeSegmentByteCount() int64 {
	n := b.size
	if n == 0 {
		return 0
	}
	tail := b.head.prev
	if tail.owner && tail.limit < SegmentSize {
		n -= int64(tail.size())
	}
	return n
}

const maxInt = int(^uint(0) >> 1)
