// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import (
	"math/rand/v2"
	"runtime"
	"sync/atomic"
	"unsafe"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"

	"code.hybscloud.com/segio/internal"
)

// The segment pool amortizes block allocation across all buffers in the
// process. It has two tiers: a set of hash-bucketed lock-free stacks, each
// bounded to bucketByteBudget, and a single bounded reserve that absorbs
// bursts when a caller's bucket is full. A segment that fits neither tier
// is dropped. Pool operations never block and never fail; a tier miss is
// signalled internally with iox.ErrWouldBlock and the next tier (or the
// allocator) takes over.
//
// Each stack is guarded by a door sentinel: an operation swaps the door
// into the head pointer, and a concurrent operation observing the door
// backs off to the next tier instead of spinning on the bucket. The door
// also gives an operation exclusive ownership of the popped node, so no
// field of an in-stack segment is ever accessed concurrently.

// poolDoor marks a bucket whose head is momentarily held by another
// operation. It is never linked into a buffer.
var poolDoor = new(segment)

// poolStack is one lock-free stack of recycled segments. While a segment
// is stacked, its limit field holds the cumulative byte count of the stack
// from that node down, which bounds the stack without a separate counter.
// Padding keeps neighboring stacks on distinct cache lines.
type poolStack struct {
	head atomic.Pointer[segment]
	_    [internal.CacheLineSize - unsafe.Sizeof(atomic.Pointer[segment]{})]byte
}

// take pops a segment, or reports iox.ErrWouldBlock when the stack is
// empty or momentarily held by another operation.
func (st *poolStack) take() (*segment, error) {
	first := st.head.Swap(poolDoor)
	switch first {
	case poolDoor:
		return nil, iox.ErrWouldBlock
	case nil:
		st.head.Store(nil)
		return nil, iox.ErrWouldBlock
	default:
		st.head.Store(first.next)
		first.next = nil
		first.limit = 0
		return first, nil
	}
}

// recycle pushes a segment, or reports iox.ErrWouldBlock when the stack
// is over budget or momentarily held by another operation.
func (st *poolStack) recycle(s *segment, budget int) error {
	first := st.head.Swap(poolDoor)
	if first == poolDoor {
		return iox.ErrWouldBlock
	}
	stacked := 0
	if first != nil {
		stacked = first.limit
	}
	if stacked+SegmentSize > budget {
		st.head.Store(first)
		return iox.ErrWouldBlock
	}
	s.next = first
	s.limit = stacked + SegmentSize
	st.head.Store(s)
	return nil
}

// segmentPool is the process-wide two-tier segment cache.
type segmentPool struct {
	_ noCopy

	buckets []poolStack
	mask    uint32
	reserve poolStack
}

var pool = newSegmentPool()

func newSegmentPool() *segmentPool {
	n := 1
	for n < runtime.NumCPU() {
		n <<= 1
	}
	return &segmentPool{
		buckets: make([]poolStack, n),
		mask:    uint32(n - 1),
	}
}

// bucket selects the caller's first-tier stack. Go exposes no stable
// thread or CPU identity to user code, so the per-thread cheap generator
// serves as the identity surrogate; spreading callers across buckets is
// what bounds contention, not affinity.
func (p *segmentPool) bucket() *poolStack {
	return &p.buckets[rand.Uint32()&p.mask]
}

// take returns a segment ready for appending: pos == limit == 0, an
// unshared owner, with no links and unaliased storage.
func (p *segmentPool) take() *segment {
	if s, err := p.bucket().take(); err == nil {
		return s
	}
	sw := spin.Wait{}
	for range 2 {
		if s, err := p.reserve.take(); err == nil {
			return s
		}
		sw.Once()
	}
	return newSegment()
}

// recycle accepts a detached segment. The last referrer of the block
// resets it and offers it to the caller's bucket, then the reserve; both
// full means the segment is dropped.
func (p *segmentPool) recycle(s *segment) {
	if s.prev != nil || s.next != nil {
		panic("segio: recycled segment is still linked")
	}
	if s.block.refs.Add(-1) > 0 {
		// Another segment still views the block.
		return
	}
	s.block.refs.Store(1)
	s.pos = 0
	s.limit = 0
	s.owner = true
	s.shared = false
	if p.bucket().recycle(s, bucketByteBudget) == nil {
		return
	}
	sw := spin.Wait{}
	for range 2 {
		if p.reserve.recycle(s, reserveByteBudget) == nil {
			return
		}
		sw.Once()
	}
	// Both tiers full or contended: drop the segment.
}

func takeSegment() *segment {
	return pool.take()
}

func recycleSegment(s *segment) {
	pool.recycle(s)
}
