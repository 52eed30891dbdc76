// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import "io"

// BufferedSink wraps a raw Sink behind an internal buffer. Typed writes
// stage bytes in the buffer, and whole completed segments are handed to
// the raw sink; a still-writable tail stays buffered so small writes
// coalesce into segment-sized raw writes.
//
// A BufferedSink is not safe for concurrent use; calls on one instance
// must be serialized by the caller.
type BufferedSink struct {
	dst    Sink
	buf    Buffer
	closed bool
}

// NewBufferedSink returns a buffered sink writing to dst.
func NewBufferedSink(dst Sink) *BufferedSink {
	if dst == nil {
		panic("segio: nil sink")
	}
	return &BufferedSink{dst: dst}
}

// Buffer exposes the staging buffer. Bytes written to it directly are
// emitted on the next Emit, Flush or Close, or on the next write once
// their segment is complete.
func (s *BufferedSink) Buffer() *Buffer {
	return &s.buf
}

// EmitCompleteSegments forwards every buffered byte outside the
// still-writable tail segment to the raw sink.
func (s *BufferedSink) EmitCompleteSegments() error {
	if s.closed {
		return ErrClosed
	}
	n := s.buf.completeSegmentByteCount()
	if n == 0 {
		return nil
	}
	return s.dst.WriteFrom(&s.buf, n)
}

// Emit forwards all buffered bytes to the raw sink without asking the
// raw sink to flush.
func (s *BufferedSink) Emit() error {
	if s.closed {
		return ErrClosed
	}
	if s.buf.size == 0 {
		return nil
	}
	return s.dst.WriteFrom(&s.buf, s.buf.size)
}

// Flush forwards all buffered bytes and flushes the raw sink.
func (s *BufferedSink) Flush() error {
	if err := s.Emit(); err != nil {
		return err
	}
	return s.dst.Flush()
}

// Write appends p to the staging buffer and emits completed segments.
// It implements io.Writer.
func (s *BufferedSink) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	n, _ := s.buf.Write(p)
	return n, s.EmitCompleteSegments()
}

// WriteByte stages one byte. It implements io.ByteWriter.
func (s *BufferedSink) WriteByte(c byte) error {
	if s.closed {
		return ErrClosed
	}
	_ = s.buf.WriteByte(c)
	return s.EmitCompleteSegments()
}

// WriteString stages str as UTF-8 text. It implements io.StringWriter.
func (s *BufferedSink) WriteString(str string) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	n, _ := s.buf.WriteString(str)
	return n, s.EmitCompleteSegments()
}

// WriteRune stages the UTF-8 encoding of r.
func (s *BufferedSink) WriteRune(r rune) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	n, _ := s.buf.WriteRune(r)
	return n, s.EmitCompleteSegments()
}

// WriteUTF16 stages the UTF-16 code units of u as UTF-8 text, emitting
// one '?' byte per unpaired surrogate.
func (s *BufferedSink) WriteUTF16(u []uint16) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	n := s.buf.WriteUTF16(u)
	return n, s.EmitCompleteSegments()
}

// WriteUint16 stages v in big-endian order.
func (s *BufferedSink) WriteUint16(v uint16) error {
	if s.closed {
		return ErrClosed
	}
	s.buf.WriteUint16(v)
	return s.EmitCompleteSegments()
}

// WriteUint16LE stages v in little-endian order.
func (s *BufferedSink) WriteUint16LE(v uint16) error {
	if s.closed {
		return ErrClosed
	}
	s.buf.WriteUint16LE(v)
	return s.EmitCompleteSegments()
}

// WriteUint32 stages v in big-endian order.
func (s *BufferedSink) WriteUint32(v uint32) error {
	if s.closed {
		return ErrClosed
	}
	s.buf.WriteUint32(v)
	return s.EmitCompleteSegments()
}

// WriteUint32LE stages v in little-endian order.
func (s *BufferedSink) WriteUint32LE(v uint32) error {
	if s.closed {
		return ErrClosed
	}
	s.buf.WriteUint32LE(v)
	return s.EmitCompleteSegments()
}

// WriteUint64 stages v in big-endian order.
func (s *BufferedSink) WriteUint64(v uint64) error {
	if s.closed {
		return ErrClosed
	}
	s.buf.WriteUint64(v)
	return s.EmitCompleteSegments()
}

// WriteUint64LE stages v in little-endian order.
func (s *BufferedSink) WriteUint64LE(v uint64) error {
	if s.closed {
		return ErrClosed
	}
	s.buf.WriteUint64LE(v)
	return s.EmitCompleteSegments()
}

// WriteInt64 stages v in big-endian order.
func (s *BufferedSink) WriteInt64(v int64) error {
	return s.WriteUint64(uint64(v))
}

// WriteDecimalInt64 stages v as ASCII decimal digits.
func (s *BufferedSink) WriteDecimalInt64(v int64) error {
	if s.closed {
		return ErrClosed
	}
	s.buf.WriteDecimalInt64(v)
	return s.EmitCompleteSegments()
}

// WriteHexUint64 stages v as lowercase ASCII hexadecimal digits.
func (s *BufferedSink) WriteHexUint64(v uint64) error {
	if s.closed {
		return ErrClosed
	}
	s.buf.WriteHexUint64(v)
	return s.EmitCompleteSegments()
}

// WriteFloat64 stages the IEEE 754 bits of v in big-endian order.
func (s *BufferedSink) WriteFloat64(v float64) error {
	if s.closed {
		return ErrClosed
	}
	s.buf.WriteFloat64(v)
	return s.EmitCompleteSegments()
}

// WriteFrom implements Sink by staging n bytes of src and emitting
// completed segments.
func (s *BufferedSink) WriteFrom(src *Buffer, n int64) error {
	if s.closed {
		return ErrClosed
	}
	_ = s.buf.WriteFrom(src, n)
	return s.EmitCompleteSegments()
}

// WriteAll drains src into the sink and returns the number of bytes
// moved.
func (s *BufferedSink) WriteAll(src Source) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	var total int64
	for {
		n, err := src.ReadTo(&s.buf, SegmentSize)
		total += n
		if err == io.EOF {
			return total, s.EmitCompleteSegments()
		}
		if err != nil {
			return total, err
		}
		if err := s.EmitCompleteSegments(); err != nil {
			return total, err
		}
	}
}

// Close emits remaining bytes and closes the raw sink. An emit failure
// is remembered, the raw close still runs, and the first failure is
// returned with any second one suppressed. Close is idempotent; every
// other operation on a closed sink fails with ErrClosed.
func (s *BufferedSink) Close() error {
	if s.closed {
		return nil
	}
	var first error
	if s.buf.size > 0 {
		first = s.dst.WriteFrom(&s.buf, s.buf.size)
	}
	if err := s.dst.Close(); first == nil {
		first = err
	}
	s.closed = true
	s.buf.Clear()
	return first
}
