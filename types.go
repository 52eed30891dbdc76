// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import "net"

// SegmentSize is the fixed capacity in bytes of every segment.
// All segments in the process share this capacity; a buffer grows and
// shrinks in whole SegmentSize-sized blocks.
const SegmentSize = 8192

// shareThreshold is the minimum prefix length for which a split shares
// storage instead of copying. Splitting off fewer bytes copies them into a
// fresh segment so that a tiny snapshot does not pin a whole block.
const shareThreshold = SegmentSize / 2

const (
	// bucketByteBudget bounds each first-tier pool bucket to 64 KiB of
	// recycled segment storage.
	bucketByteBudget = 64 << 10

	// reserveByteBudget bounds the shared second-tier reserve to 4 MiB.
	// A recycled segment that fits neither tier is dropped and its
	// storage returned to the allocator.
	reserveByteBudget = 4 << 20
)

// Buffers is an alias for net.Buffers, providing a standard way to group
// multiple byte slices for vectored I/O operations.
type Buffers = net.Buffers

// noCopy is a sentinel used to prevent copying of structures that embed it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
