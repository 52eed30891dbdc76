// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import (
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// ZstdSource decompresses a Zstandard stream read from a raw source.
// The decoder is created lazily on the first read.
type ZstdSource struct {
	source *BufferedSource
	dec    *zstd.Decoder
	closed bool
}

// NewZstdSource returns a source yielding the decompressed bytes of src.
func NewZstdSource(src Source) *ZstdSource {
	return &ZstdSource{source: NewBufferedSource(src)}
}

// ReadTo implements Source.
func (z *ZstdSource) ReadTo(sink *Buffer, max int64) (int64, error) {
	if max < 0 {
		panic("segio: read count negative")
	}
	if z.closed {
		return 0, ErrClosed
	}
	if max == 0 {
		return 0, nil
	}
	if z.dec == nil {
		dec, err := zstd.NewReader(z.source)
		if err != nil {
			return 0, errors.Wrap(err, "segio: zstd decoder")
		}
		z.dec = dec
	}
	tail := sink.writableSegment(1)
	span := min(max, int64(SegmentSize-tail.limit))
	n, err := z.dec.Read(tail.block.data[tail.limit : tail.limit+int(span)])
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
		return 0, errors.Wrap(err, "segio: zstd decompress")
	}
	return int64(n), nil
}

// Close releases the decoder and closes the underlying source.
func (z *ZstdSource) Close() error {
	if z.closed {
		return nil
	}
	z.closed = true
	if z.dec != nil {
		z.dec.Close()
	}
	return z.source.Close()
}

// ZstdSink compresses written bytes as a Zstandard stream and forwards
// completed segments to a raw sink.
type ZstdSink struct {
	sink   *BufferedSink
	enc    *zstd.Encoder
	closed bool
}

// NewZstdSink returns a sink compressing into dst.
func NewZstdSink(dst Sink) *ZstdSink {
	bs := NewBufferedSink(dst)
	enc, err := zstd.NewWriter(bs)
	if err != nil {
		// Only option misuse fails here, and no options are passed.
		panic(err)
	}
	return &ZstdSink{sink: bs, enc: enc}
}

// WriteFrom implements Sink, consuming n bytes of src through the
// encoder.
func (z *ZstdSink) WriteFrom(src *Buffer, n int64) error {
	if n < 0 || n > src.Size() {
		panic("segio: write count out of range")
	}
	if z.closed {
		return ErrClosed
	}
	for n > 0 {
		head := src.head
		span := int(min(n, int64(head.size())))
		wn, err := z.enc.Write(head.block.data[head.pos : head.pos+span])
		head.pos += wn
		src.size -= int64(wn)
		n -= int64(wn)
		if head.pos == head.limit {
			src.popHead()
		}
		if err != nil {
			return errors.Wrap(err, "segio: zstd compress")
		}
	}
	return nil
}

// Flush pushes the data written so far through the encoder, without
// ending the zstd frame, and flushes the raw sink.
func (z *ZstdSink) Flush() error {
	if z.closed {
		return ErrClosed
	}
	if err := z.enc.Flush(); err != nil {
		return errors.Wrap(err, "segio: zstd flush")
	}
	return z.sink.Flush()
}

// Close finishes the zstd stream, then closes the raw sink. The first
// failure is returned; a second one is suppressed.
func (z *ZstdSink) Close() error {
	if z.closed {
		return nil
	}
	z.closed = true
	first := errors.Wrap(z.enc.Close(), "segio: zstd close")
	if err := z.sink.Close(); first == nil {
		first = err
	}
	return first
}
