// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import (
	"crypto/md5"
	"crypto/sha256"
	"hash"

	"github.com/cespare/xxhash/v2"
)

// HashingSink forwards writes to a raw sink while folding every byte
// that crosses it into a digest. The digest observes bytes in stream
// order regardless of segment chunking.
type HashingSink struct {
	dst Sink
	h   hash.Hash
}

// NewHashingSink returns a sink digesting into h while writing to dst.
func NewHashingSink(dst Sink, h hash.Hash) *HashingSink {
	if dst == nil || h == nil {
		panic("segio: nil sink or hash")
	}
	return &HashingSink{dst: dst, h: h}
}

// NewSHA256HashingSink returns a HashingSink computing SHA-256.
func NewSHA256HashingSink(dst Sink) *HashingSink {
	return NewHashingSink(dst, sha256.New())
}

// NewMD5HashingSink returns a HashingSink computing MD5.
func NewMD5HashingSink(dst Sink) *HashingSink {
	return NewHashingSink(dst, md5.New())
}

// NewXXH64HashingSink returns a HashingSink computing 64-bit xxHash.
func NewXXH64HashingSink(dst Sink) *HashingSink {
	return NewHashingSink(dst, xxhash.New())
}

// WriteFrom implements Sink: the first n bytes of src fold into the
// digest, then move to the underlying sink.
func (s *HashingSink) WriteFrom(src *Buffer, n int64) error {
	if n < 0 || n > src.Size() {
		panic("segio: write count out of range")
	}
	remaining := n
	for seg := src.head; remaining > 0; seg = seg.next {
		span := int(min(remaining, int64(seg.size())))
		_, _ = s.h.Write(seg.block.data[seg.pos : seg.pos+span])
		remaining -= int64(span)
	}
	return s.dst.WriteFrom(src, n)
}

// Flush implements Sink.
func (s *HashingSink) Flush() error {
	return s.dst.Flush()
}

// Close implements Sink.
func (s *HashingSink) Close() error {
	return s.dst.Close()
}

// Sum returns the digest of all bytes written so far.
func (s *HashingSink) Sum() []byte {
	return s.h.Sum(nil)
}

// HashingSource forwards reads from a raw source while folding every
// byte that crosses it into a digest.
type HashingSource struct {
	src     Source
	h       hash.Hash
	staging Buffer
}

// NewHashingSource returns a source digesting into h while reading from
// src.
func NewHashingSource(src Source, h hash.Hash) *HashingSource {
	if src == nil || h == nil {
		panic("segio: nil source or hash")
	}
	return &HashingSource{src: src, h: h}
}

// NewSHA256HashingSource returns a HashingSource computing SHA-256.
func NewSHA256HashingSource(src Source) *HashingSource {
	return NewHashingSource(src, sha256.New())
}

// NewMD5HashingSource returns a HashingSource computing MD5.
func NewMD5HashingSource(src Source) *HashingSource {
	return NewHashingSource(src, md5.New())
}

// NewXXH64HashingSource returns a HashingSource computing 64-bit xxHash.
func NewXXH64HashingSource(src Source) *HashingSource {
	return NewHashingSource(src, xxhash.New())
}

// ReadTo implements Source: bytes stage through an internal buffer so
// the digest sees exactly what the caller receives.
func (s *HashingSource) ReadTo(sink *Buffer, max int64) (int64, error) {
	n, err := s.src.ReadTo(&s.staging, max)
	if n > 0 {
		for seg, remaining := s.staging.head, n; remaining > 0; seg = seg.next {
			span := int(min(remaining, int64(seg.size())))
			_, _ = s.h.Write(seg.block.data[seg.pos : seg.pos+span])
			remaining -= int64(span)
		}
		_ = sink.WriteFrom(&s.staging, n)
	}
	return n, err
}

// Close implements Source.
func (s *HashingSource) Close() error {
	return s.src.Close()
}

// Sum returns the digest of all bytes read so far.
func (s *HashingSource) Sum() []byte {
	return s.h.Sum(nil)
}
