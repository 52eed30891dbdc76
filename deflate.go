// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import (
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/pkg/errors"
)

// DeflateSource decompresses a raw DEFLATE (RFC 1951) stream read from a
// raw source. Use GzipSource for streams with the gzip framing.
type DeflateSource struct {
	source *BufferedSource
	fr     io.ReadCloser
	closed bool
}

// NewDeflateSource returns a source yielding the inflated bytes of src.
func NewDeflateSource(src Source) *DeflateSource {
	bs := NewBufferedSource(src)
	return &DeflateSource{source: bs, fr: flate.NewReader(bs)}
}

// ReadTo implements Source.
func (d *DeflateSource) ReadTo(sink *Buffer, max int64) (int64, error) {
	if max < 0 {
		panic("segio: read count negative")
	}
	if d.closed {
		return 0, ErrClosed
	}
	if max == 0 {
		return 0, nil
	}
	tail := sink.writableSegment(1)
	span := min(max, int64(SegmentSize-tail.limit))
	n, err := d.fr.Read(tail.block.data[tail.limit : tail.limit+int(span)])
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
		return 0, errors.Wrap(err, "segio: inflate")
	}
	return int64(n), nil
}

// Close closes the inflater, then the underlying source. The first
// failure is returned; a second one is suppressed.
func (d *DeflateSource) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	first := errors.Wrap(d.fr.Close(), "segio: inflate close")
	if err := d.source.Close(); first == nil {
		first = err
	}
	return first
}

// DeflateSink compresses written bytes as a raw DEFLATE stream and
// forwards completed segments to a raw sink.
type DeflateSink struct {
	sink   *BufferedSink
	fw     *flate.Writer
	closed bool
}

// NewDeflateSink returns a sink deflating into dst at the default
// compression level.
func NewDeflateSink(dst Sink) *DeflateSink {
	bs := NewBufferedSink(dst)
	fw, err := flate.NewWriter(bs, flate.DefaultCompression)
	if err != nil {
		// Only an invalid level fails, and the default level is valid.
		panic(err)
	}
	return &DeflateSink{sink: bs, fw: fw}
}

// WriteFrom implements Sink, consuming n bytes of src through the
// deflater.
func (d *DeflateSink) WriteFrom(src *Buffer, n int64) error {
	if n < 0 || n > src.Size() {
		panic("segio: write count out of range")
	}
	if d.closed {
		return ErrClosed
	}
	for n > 0 {
		head := src.head
		span := int(min(n, int64(head.size())))
		wn, err := d.fw.Write(head.block.data[head.pos : head.pos+span])
		head.pos += wn
		src.size -= int64(wn)
		n -= int64(wn)
		if head.pos == head.limit {
			src.popHead()
		}
		if err != nil {
			return errors.Wrap(err, "segio: deflate")
		}
	}
	return nil
}

// Flush pushes a deflate sync point and flushes the raw sink.
func (d *DeflateSink) Flush() error {
	if d.closed {
		return ErrClosed
	}
	if err := d.fw.Flush(); err != nil {
		return errors.Wrap(err, "segio: deflate flush")
	}
	return d.sink.Flush()
}

// Close finishes the deflate stream, then closes the raw sink. The first
// failure is returned; a second one is suppressed.
func (d *DeflateSink) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	first := errors.Wrap(d.fw.Close(), "segio: deflate close")
	if err := d.sink.Close(); first == nil {
		first = err
	}
	return first
}
