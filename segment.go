// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import "sync/atomic"

// block is the reference-counted storage behind one or more segments.
// refs counts the segments viewing the block; storage is reusable only
// when the count drops to zero.
type block struct {
	refs atomic.Int32
	data [SegmentSize]byte
}

func newBlock() *block {
	b := &block{}
	b.refs.Store(1)
	return b
}

// segment is one fixed-capacity node in a buffer's circular list.
//
// pos indexes the first readable byte and limit the first writable byte,
// with 0 <= pos <= limit <= SegmentSize. owner marks the segment allowed
// to append at its tail; shared marks storage visible through more than
// one segment. A shared segment is frozen: its content and limit never
// change again, and appends require owner && !shared.
//
// prev and next are only followed inside buffer methods, which hold
// exclusive access to the buffer that links the segment.
type segment struct {
	block *block

	pos   int
	limit int

	owner  bool
	shared bool

	prev *segment
	next *segment
}

func newSegment() *segment {
	return &segment{block: newBlock(), owner: true}
}

// size returns the number of readable bytes.
func (s *segment) size() int {
	return s.limit - s.pos
}

// push inserts next immediately after s in the circle and returns it.
func (s *segment) push(next *segment) *segment {
	next.prev = s
	next.next = s.next
	s.next.prev = next
	s.next = next
	return next
}

// pop removes s from the circle and returns its successor, or nil if s
// was the only node. The removed segment keeps no links.
func (s *segment) pop() *segment {
	result := s.next
	if result == s {
		result = nil
	}
	s.prev.next = s.next
	s.next.prev = s.prev
	s.prev = nil
	s.next = nil
	return result
}

// sharedCopy returns a segment viewing the same block over the same byte
// range. Both s and the copy become shared; the copy is never an owner.
func (s *segment) sharedCopy() *segment {
	s.shared = true
	s.block.refs.Add(1)
	return &segment{
		block:  s.block,
		pos:    s.pos,
		limit:  s.limit,
		owner:  false,
		shared: true,
	}
}

// split moves the first n readable bytes of s into a new segment inserted
// immediately before s in the circle, and returns that prefix segment.
//
// Large prefixes share the block to avoid copying; prefixes under
// shareThreshold are copied into a pooled segment so that a short-lived
// split does not pin SegmentSize bytes. A shared source always shares.
func (s *segment) split(n int) *segment {
	if n <= 0 || n > s.size() {
		panic("segio: split count out of range")
	}
	var prefix *segment
	if n >= shareThreshold || s.shared {
		prefix = s.sharedCopy()
	} else {
		prefix = takeSegment()
		copy(prefix.block.data[:], s.block.data[s.pos:s.pos+n])
	}
	prefix.limit = prefix.pos + n
	s.pos += n
	s.prev.push(prefix)
	return prefix
}

// writeTo moves n bytes from s's readable range into sink's writable
// range. The sink must be an unshared owner. When the bytes do not fit
// past limit but would fit after reclaiming the consumed prefix, the
// sink's content slides back to pos 0 first.
func (s *segment) writeTo(sink *segment, n int) {
	if !sink.owner || sink.shared {
		panic("segio: writeTo requires an unshared owner sink")
	}
	if n < 0 || n > s.size() {
		panic("segio: writeTo count out of range")
	}
	if sink.limit+n > SegmentSize {
		if sink.limit+n-sink.pos > SegmentSize {
			panic("segio: writeTo count exceeds sink capacity")
		}
		copy(sink.block.data[:], sink.block.data[sink.pos:sink.limit])
		sink.limit -= sink.pos
		sink.pos = 0
	}
	copy(sink.block.data[sink.limit:sink.limit+n], s.block.data[s.pos:s.pos+n])
	sink.limit += n
	s.pos += n
}

// compact absorbs s into its predecessor when the predecessor is an
// unshared owner with room for all of s's bytes, then unlinks and
// recycles s. Called after splicing a segment onto a tail to keep
// interior segments at least half full.
func (s *segment) compact() {
	if s.prev == s {
		panic("segio: cannot compact a solitary segment")
	}
	prev := s.prev
	if !prev.owner || prev.shared {
		return
	}
	n := s.size()
	if n > SegmentSize-prev.limit+prev.pos {
		return
	}
	s.writeTo(prev, n)
	s.pop()
	recycleSegment(s)
}
