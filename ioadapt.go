// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import (
	"io"

	"github.com/pkg/errors"
)

// NewSource adapts an io.Reader to the Source capability. Each ReadTo
// issues at most one Read into the sink's tail segment, so files,
// sockets and any other Go stream feed buffers without an intermediate
// copy. Close closes r when it implements io.Closer.
func NewSource(r io.Reader) Source {
	if r == nil {
		panic("segio: nil reader")
	}
	return &readerSource{r: r}
}

type readerSource struct {
	r io.Reader
}

func (s *readerSource) ReadTo(sink *Buffer, max int64) (int64, error) {
	if max < 0 {
		panic("segio: read count negative")
	}
	if max == 0 {
		return 0, nil
	}
	tail := sink.writableSegment(1)
	span := min(max, int64(SegmentSize-tail.limit))
	n, err := s.r.Read(tail.block.data[tail.limit : tail.limit+int(span)])
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
		return 0, errors.Wrap(err, "segio: source read")
	}
	return int64(n), nil
}

func (s *readerSource) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return errors.Wrap(c.Close(), "segio: source close")
	}
	return nil
}

// NewSink adapts an io.Writer to the Sink capability. WriteFrom consumes
// the moved bytes out of the source buffer segment by segment. Flush and
// Close forward to w when it implements them.
func NewSink(w io.Writer) Sink {
	if w == nil {
		panic("segio: nil writer")
	}
	return &writerSink{w: w}
}

type writerSink struct {
	w io.Writer
}

func (s *writerSink) WriteFrom(src *Buffer, n int64) error {
	if n < 0 || n > src.size {
		panic("segio: write count out of range")
	}
	for n > 0 {
		head := src.head
		span := int(min(n, int64(head.size())))
		wn, err := s.w.Write(head.block.data[head.pos : head.pos+span])
		head.pos += wn
		src.size -= int64(wn)
		n -= int64(wn)
		if head.pos == head.limit {
			src.popHead()
		}
		if err != nil {
			return errors.Wrap(err, "segio: sink write")
		}
	}
	return nil
}

func (s *writerSink) Flush() error {
	if f, ok := s.w.(interface{ Flush() error }); ok {
		return errors.Wrap(f.Flush(), "segio: sink flush")
	}
	return nil
}

func (s *writerSink) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		return errors.Wrap(c.Close(), "segio: sink close")
	}
	return nil
}
