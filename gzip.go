// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// GzipSource decompresses an RFC 1952 gzip stream read from a raw
// source. The gzip header is consumed lazily on the first read, so
// constructing the wrapper performs no I/O.
type GzipSource struct {
	source *BufferedSource
	zr     *gzip.Reader
	closed bool
}

// NewGzipSource returns a source yielding the inflated bytes of src.
func NewGzipSource(src Source) *GzipSource {
	return &GzipSource{source: NewBufferedSource(src)}
}

// ReadTo implements Source.
func (g *GzipSource) ReadTo(sink *Buffer, max int64) (int64, error) {
	if max < 0 {
		panic("segio: read count negative")
	}
	if g.closed {
		return 0, ErrClosed
	}
	if max == 0 {
		return 0, nil
	}
	if g.zr == nil {
		zr, err := gzip.NewReader(g.source)
		if err != nil {
			if err == io.EOF {
				return 0, io.EOF
			}
			return 0, errors.Wrap(err, "segio: gzip header")
		}
		g.zr = zr
	}
	tail := sink.writableSegment(1)
	span := min(max, int64(SegmentSize-tail.limit))
	n, err := g.zr.Read(tail.block.data[tail.limit : tail.limit+int(span)])
	tail.limit += n
	sink.size += int64(n)
	if n == 0 {
		sink.dropEmptyTail()
	}
	if err != nil {
		// Deliver bytes first; the error recurs on the next call.
		if n > 0 {
			return int64(n), nil
		}
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, errors.Wrap(err, "segio: gzip inflate")
	}
	return int64(n), nil
}

// Close closes the inflater, then the underlying source. The first
// failure is returned; a second one is suppressed.
func (g *GzipSource) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	var first error
	if g.zr != nil {
		first = errors.Wrap(g.zr.Close(), "segio: gzip close")
	}
	if err := g.source.Close(); first == nil {
		first = err
	}
	return first
}

// GzipSink compresses written bytes as an RFC 1952 gzip stream and
// forwards completed segments to a raw sink.
type GzipSink struct {
	sink   *BufferedSink
	zw     *gzip.Writer
	closed bool
}

// NewGzipSink returns a sink deflating into dst.
func NewGzipSink(dst Sink) *GzipSink {
	bs := NewBufferedSink(dst)
	return &GzipSink{sink: bs, zw: gzip.NewWriter(bs)}
}

// WriteFrom implements Sink, consuming n bytes of src through the
// deflater.
func (g *GzipSink) WriteFrom(src *Buffer, n int64) error {
	if n < 0 || n > src.Size() {
		panic("segio: write count out of range")
	}
	if g.closed {
		return ErrClosed
	}
	for n > 0 {
		head := src.head
		span := int(min(n, int64(head.size())))
		wn, err := g.zw.Write(head.block.data[head.pos : head.pos+span])
		head.pos += wn
		src.size -= int64(wn)
		n -= int64(wn)
		if head.pos == head.limit {
			src.popHead()
		}
		if err != nil {
			return errors.Wrap(err, "segio: gzip deflate")
		}
	}
	return nil
}

// Flush pushes a deflate sync point and flushes the raw sink.
func (g *GzipSink) Flush() error {
	if g.closed {
		return ErrClosed
	}
	if err := g.zw.Flush(); err != nil {
		return errors.Wrap(err, "segio: gzip flush")
	}
	return g.sink.Flush()
}

// Close finishes the gzip stream, then closes the raw sink. The first
// failure is returned; a second one is suppressed.
func (g *GzipSink) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	first := errors.Wrap(g.zw.Close(), "segio: gzip close")
	if err := g.sink.Close(); first == nil {
		first = err
	}
	return first
}
