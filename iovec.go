// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import (
	"unsafe"
)

// IoVec represents a scatter/gather I/O descriptor compatible with the
// standard Linux struct iovec. It is used to pass multiple non-contiguous
// buffers to the kernel in a single vectored I/O system call (readv,
// writev, preadv, pwritev, io_uring operations).
//
// Memory layout matches the C struct iovec exactly:
//
//	struct iovec {
//	    void  *iov_base;  // Starting address
//	    size_t iov_len;   // Number of bytes
//	};
//
// The caller must ensure Base points to valid memory for the lifetime of
// any I/O operation using this IoVec.
type IoVec struct {
	Base *byte  // Starting address of the memory block
	Len  uint64 // Number of bytes to transfer
}

// IoVecs returns one IoVec per segment covering the buffer's readable
// bytes, pointing directly at segment storage without copying.
//
// The descriptors are valid only until the next operation that mutates
// the buffer; writing a gathered range and then consuming it with Skip
// is the intended pattern.
func (b *Buffer) IoVecs() []IoVec {
	if b.size == 0 {
		return nil
	}
	var vec []IoVec
	s := b.head
	for {
		if s.size() > 0 {
			vec = append(vec, IoVec{
				Base: &s.block.data[s.pos],
				Len:  uint64(s.size()),
			})
		}
		s = s.next
		if s == b.head {
			break
		}
	}
	return vec
}

// Buffers returns the buffer's readable segment ranges as a net.Buffers
// value for use with vectored writers. The slices alias segment storage
// and are valid only until the next operation that mutates the buffer.
func (b *Buffer) Buffers() Buffers {
	if b.size == 0 {
		return Buffers{}
	}
	var ret Buffers
	s := b.head
	for {
		if s.size() > 0 {
			ret = append(ret, s.block.data[s.pos:s.limit])
		}
		s = s.next
		if s == b.head {
			break
		}
	}
	return ret
}

// IoVecAddrLen extracts the raw pointer and length from an IoVec slice
// for direct syscall consumption (readv, writev, io_uring submission).
//
// Returns (0, 0) for empty or nil slices.
func IoVecAddrLen(vec []IoVec) (addr uintptr, n int) {
	if len(vec) == 0 {
		return 0, 0
	}
	addr, n = uintptr(unsafe.Pointer(unsafe.SliceData(vec))), len(vec)
	return
}
