// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import "io"

// Source is the raw byte-producer capability: a segment-oriented stream
// that fills a buffer and reports io.EOF when exhausted. Files, sockets
// and in-memory buffers all plug in through this interface; see NewSource
// for adapting an io.Reader.
type Source interface {
	// ReadTo moves up to max bytes into sink and returns the number
	// moved, or io.EOF once the source is exhausted.
	ReadTo(sink *Buffer, max int64) (int64, error)

	// Close releases the source. Whether later reads fail depends on the
	// implementation: BufferedSource, peek and decompressing sources fail
	// them with ErrClosed, while a Buffer stays usable.
	Close() error
}

// Sink is the raw byte-consumer capability, symmetric to Source.
type Sink interface {
	// WriteFrom moves n bytes out of src into the sink.
	WriteFrom(src *Buffer, n int64) error

	// Flush pushes any downstream-buffered bytes to their destination.
	Flush() error

	// Close flushes and releases the sink. Whether later writes fail
	// depends on the implementation: BufferedSink and compressing sinks
	// fail them with ErrClosed, while a Buffer stays usable.
	Close() error
}

// BufferedSource wraps a raw Source behind an internal buffer so that
// byte-at-a-time and typed reads stay cheap: bytes are pulled from the
// raw source one segment at a time regardless of how little the caller
// asked for.
//
// A BufferedSource is not safe for concurrent use; calls on one instance
// must be serialized by the caller.
type BufferedSource struct {
	src    Source
	buf    Buffer
	closed bool
}

// NewBufferedSource returns a buffered source reading from src.
func NewBufferedSource(src Source) *BufferedSource {
	if src == nil {
		panic("segio: nil source")
	}
	return &BufferedSource{src: src}
}

// Buffer exposes the internal buffer. Bytes read into it count as
// consumed from the raw source; draining it is up to the caller.
func (s *BufferedSource) Buffer() *Buffer {
	return &s.buf
}

// Request pulls from the raw source until at least n bytes are buffered,
// reporting false when the source ends first. The internal buffer may
// then hold fewer than n bytes.
func (s *BufferedSource) Request(n int64) (bool, error) {
	if n < 0 {
		panic("segio: request count negative")
	}
	if s.closed {
		return false, ErrClosed
	}
	for s.buf.size < n {
		if _, err := s.src.ReadTo(&s.buf, SegmentSize); err != nil {
			if err == io.EOF {
				return false, nil
			}
			return false, err
		}
	}
	return true, nil
}

// Require is Request with a hard expectation: fewer than n available
// bytes fail with ErrEndOfStream.
func (s *BufferedSource) Require(n int64) error {
	ok, err := s.Request(n)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEndOfStream
	}
	return nil
}

// Exhausted reports whether the buffer is empty and the raw source has
// ended.
func (s *BufferedSource) Exhausted() (bool, error) {
	if s.closed {
		return false, ErrClosed
	}
	ok, err := s.Request(1)
	return !ok, err
}

// ReadByte consumes one byte, pulling from the raw source as needed.
func (s *BufferedSource) ReadByte() (byte, error) {
	if err := s.Require(1); err != nil {
		return 0, err
	}
	return s.buf.ReadByte()
}

// ReadUint16 consumes two bytes as a big-endian value.
func (s *BufferedSource) ReadUint16() (uint16, error) {
	if err := s.Require(2); err != nil {
		return 0, err
	}
	return s.buf.ReadUint16()
}

// ReadUint16LE consumes two bytes as a little-endian value.
func (s *BufferedSource) ReadUint16LE() (uint16, error) {
	if err := s.Require(2); err != nil {
		return 0, err
	}
	return s.buf.ReadUint16LE()
}

// ReadUint32 consumes four bytes as a big-endian value.
func (s *BufferedSource) ReadUint32() (uint32, error) {
	if err := s.Require(4); err != nil {
		return 0, err
	}
	return s.buf.ReadUint32()
}

// ReadUint32LE consumes four bytes as a little-endian value.
func (s *BufferedSource) ReadUint32LE() (uint32, error) {
	if err := s.Require(4); err != nil {
		return 0, err
	}
	return s.buf.ReadUint32LE()
}

// ReadUint64 consumes eight bytes as a big-endian value.
func (s *BufferedSource) ReadUint64() (uint64, error) {
	if err := s.Require(8); err != nil {
		return 0, err
	}
	return s.buf.ReadUint64()
}

// ReadUint64LE consumes eight bytes as a little-endian value.
func (s *BufferedSource) ReadUint64LE() (uint64, error) {
	if err := s.Require(8); err != nil {
		return 0, err
	}
	return s.buf.ReadUint64LE()
}

// ReadInt16 consumes two bytes as a big-endian signed value.
func (s *BufferedSource) ReadInt16() (int16, error) {
	v, err := s.ReadUint16()
	return int16(v), err
}

// ReadInt32 consumes four bytes as a big-endian signed value.
func (s *BufferedSource) ReadInt32() (int32, error) {
	v, err := s.ReadUint32()
	return int32(v), err
}

// ReadInt64 consumes eight bytes as a big-endian signed value.
func (s *BufferedSource) ReadInt64() (int64, error) {
	v, err := s.ReadUint64()
	return int64(v), err
}

// ReadFloat32 consumes four bytes as big-endian IEEE 754 bits.
func (s *BufferedSource) ReadFloat32() (float32, error) {
	if err := s.Require(4); err != nil {
		return 0, err
	}
	return s.buf.ReadFloat32()
}

// ReadFloat64 consumes eight bytes as big-endian IEEE 754 bits.
func (s *BufferedSource) ReadFloat64() (float64, error) {
	if err := s.Require(8); err != nil {
		return 0, err
	}
	return s.buf.ReadFloat64()
}

// ReadFloat64LE consumes eight bytes as little-endian IEEE 754 bits.
func (s *BufferedSource) ReadFloat64LE() (float64, error) {
	if err := s.Require(8); err != nil {
		return 0, err
	}
	return s.buf.ReadFloat64LE()
}

// ReadFully moves exactly n bytes into sink, pulling from the raw source
// as needed. It fails with ErrEndOfStream when the stream ends first; the
// bytes read so far stay in the internal buffer for a later retry.
func (s *BufferedSource) ReadFully(sink *Buffer, n int64) error {
	if err := s.Require(n); err != nil {
		return err
	}
	return sink.WriteFrom(&s.buf, n)
}

// ReadDecimalInt64 parses a signed decimal literal, pulling more bytes
// from the raw source for as long as they continue the literal.
func (s *BufferedSource) ReadDecimalInt64() (int64, error) {
	if err := s.Require(1); err != nil {
		return 0, err
	}
	pos := int64(0)
	for {
		ok, err := s.Request(pos + 1)
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		c := s.buf.Get(pos)
		if (c < '0' || c > '9') && !(pos == 0 && c == '-') {
			break
		}
		pos++
	}
	return s.buf.ReadDecimalInt64()
}

// ReadHexUint64 parses an unsigned hexadecimal literal, pulling more
// bytes from the raw source for as long as they continue the literal.
func (s *BufferedSource) ReadHexUint64() (uint64, error) {
	if err := s.Require(1); err != nil {
		return 0, err
	}
	pos := int64(0)
	for {
		ok, err := s.Request(pos + 1)
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		c := s.buf.Get(pos)
		if !(c >= '0' && c <= '9') && !(c >= 'a' && c <= 'f') && !(c >= 'A' && c <= 'F') {
			break
		}
		pos++
	}
	return s.buf.ReadHexUint64()
}

// ReadBytes consumes exactly n bytes as a fresh slice.
func (s *BufferedSource) ReadBytes(n int64) ([]byte, error) {
	if err := s.Require(n); err != nil {
		return nil, err
	}
	return s.buf.ReadBytes(n)
}

// ReadString consumes exactly n bytes as UTF-8 text with the replacement
// rules.
func (s *BufferedSource) ReadString(n int64) (string, error) {
	if err := s.Require(n); err != nil {
		return "", err
	}
	return s.buf.ReadString(n)
}

// ReadRune consumes one UTF-8 code point, requesting enough bytes to
// cover the longest encoding first.
func (s *BufferedSource) ReadRune() (rune, int, error) {
	if err := s.Require(1); err != nil {
		return 0, 0, err
	}
	// Best effort: a 4-byte sequence at the segment boundary needs more
	// buffered bytes, a shorter or truncated one does not.
	if _, err := s.Request(4); err != nil {
		return 0, 0, err
	}
	return s.buf.ReadRune()
}

// IndexOf scans buffered and upstream bytes for the first occurrence of
// c in [from, to), pulling from the raw source as the scan outruns the
// buffer. It returns -1 when the stream ends (or to is reached) first.
func (s *BufferedSource) IndexOf(c byte, from, to int64) (int64, error) {
	if s.closed {
		return -1, ErrClosed
	}
	if from < 0 || to < from {
		panic("segio: index range out of order")
	}
	for from < to {
		if i := s.buf.IndexOf(c, from, to); i != -1 {
			return i, nil
		}
		last := s.buf.size
		if last >= to {
			return -1, nil
		}
		if _, err := s.src.ReadTo(&s.buf, SegmentSize); err != nil {
			if err == io.EOF {
				return -1, nil
			}
			return -1, err
		}
		from = max(from, last)
	}
	return -1, nil
}

// ReadUTF8Line consumes text through the next '\n', returning the line
// without its terminator. The rest of the stream without a newline is
// the final line; an exhausted stream reports io.EOF.
func (s *BufferedSource) ReadUTF8Line() (string, error) {
	nl, err := s.IndexOf('\n', 0, int64(^uint64(0)>>1))
	if err != nil {
		return "", err
	}
	if nl == -1 {
		if s.buf.size == 0 {
			return "", io.EOF
		}
		return s.buf.ReadString(s.buf.size)
	}
	return s.buf.readLine(nl)
}

// ReadUTF8LineStrict behaves like ReadUTF8Line but requires a newline
// within limit bytes, failing with ErrEndOfStream when the stream or the
// limit is exhausted first.
func (s *BufferedSource) ReadUTF8LineStrict(limit int64) (string, error) {
	if limit < 0 {
		panic("segio: line limit negative")
	}
	scan := int64(^uint64(0) >> 1)
	if limit < scan {
		scan = limit + 1
	}
	nl, err := s.IndexOf('\n', 0, scan)
	if err != nil {
		return "", err
	}
	if nl != -1 {
		return s.buf.readLine(nl)
	}
	if scan < s.buf.size && scan > 0 &&
		s.buf.Get(scan-1) == '\r' && s.buf.Get(scan) == '\n' {
		return s.buf.readLine(scan)
	}
	return "", ErrEndOfStream
}

// Skip discards n bytes, pulling from the raw source as needed. It fails
// with ErrEndOfStream when the stream ends first.
func (s *BufferedSource) Skip(n int64) error {
	if n < 0 {
		panic("segio: skip count negative")
	}
	if s.closed {
		return ErrClosed
	}
	for n > 0 {
		if s.buf.size == 0 {
			if _, err := s.src.ReadTo(&s.buf, SegmentSize); err != nil {
				if err == io.EOF {
					return ErrEndOfStream
				}
				return err
			}
		}
		step := min(n, s.buf.size)
		if err := s.buf.Skip(step); err != nil {
			return err
		}
		n -= step
	}
	return nil
}

// ReadTo implements Source. With an empty internal buffer it pulls one
// segment-sized chunk from the raw source, then moves at most max
// buffered bytes into sink.
func (s *BufferedSource) ReadTo(sink *Buffer, max int64) (int64, error) {
	if max < 0 {
		panic("segio: read count negative")
	}
	if s.closed {
		return 0, ErrClosed
	}
	if s.buf.size == 0 {
		if max == 0 {
			return 0, nil
		}
		if _, err := s.src.ReadTo(&s.buf, SegmentSize); err != nil {
			return 0, err
		}
	}
	return s.buf.ReadTo(sink, max)
}

// Read consumes up to len(p) bytes. It implements io.Reader.
func (s *BufferedSource) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	if s.buf.size == 0 {
		if _, err := s.src.ReadTo(&s.buf, SegmentSize); err != nil {
			return 0, err
		}
	}
	return s.buf.Read(p)
}

// Peek returns a new source that reads ahead of this one without
// consuming it. The peek source pulls further bytes through this source's
// buffer as needed; it fails with ErrPeekInvalid once this source
// consumes past the peeked position.
func (s *BufferedSource) Peek() *BufferedSource {
	return NewBufferedSource(newPeekSource(s))
}

// Close closes the raw source and drops buffered bytes. It is
// idempotent; every other operation on a closed source fails with
// ErrClosed.
func (s *BufferedSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.src.Close()
	s.buf.Clear()
	return err
}
