// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package segio provides a segmented byte buffer with pooled storage and
// buffered source/sink wrappers for high-throughput stream processing.
//
// The package is built around three ideas: a Buffer is a ring of
// fixed-size segments that works as a writable and a readable queue at
// the same time; moving bytes between buffers relinks whole segments
// instead of copying them; and snapshots share segment storage through
// reference counts instead of duplicating bytes.
//
// # Buffer
//
// Buffer is the central type. It supports primitive reads and writes
// (bytes, big- and little-endian integers, floats, ASCII decimal and
// hexadecimal literals), UTF-8 text with well-defined replacement
// behavior for malformed input, byte search, equality and hashing, and
// structural operations:
//
//	var a, b Buffer
//	a.WriteString("hello world")
//	b.WriteFrom(&a, 5)     // relinks whole segments, copies small prefixes
//	snap := b.Clone()      // zero-copy snapshot sharing storage
//
// Buffer-to-buffer transfer balances CPU against memory: whole segments
// move by pointer relinking, small prefixes copy into the destination
// tail, and a compaction pass keeps interior segments at least half
// full so spliced buffers do not fragment.
//
// # Segment Pool
//
// Segments come from a process-wide two-tier pool. The first tier is a
// set of hash-bucketed lock-free stacks bounded to 64 KiB each; the
// second tier is a single 4 MiB reserve absorbing bursts. All pool
// operations use only atomic swaps and stores on the stack heads and never
// block: a contended or full tier is simply skipped, falling through to
// the next tier or the allocator.
//
// # Sources and Sinks
//
// Raw streams are modeled by two small capabilities: Source fills a
// buffer and reports io.EOF when exhausted, Sink drains one. NewSource
// and NewSink adapt any io.Reader or io.Writer. BufferedSource and
// BufferedSink add an internal buffer so that byte-at-a-time and typed
// access stay cheap, pulling and emitting in whole-segment units:
//
//	src := segio.NewBufferedSource(segio.NewSource(conn))
//	line, err := src.ReadUTF8LineStrict(4096)
//
// Wrappers compose over the same capabilities: GzipSource, GzipSink,
// ZstdSource and ZstdSink compress and decompress streams, and
// HashingSource and HashingSink digest the bytes that cross them.
//
// # Errors
//
// Operational failures are semantic error values: ErrEndOfStream when a
// read outruns the available bytes, ErrClosed after Close, and
// NumberFormatError for malformed numeric literals. API misuse such as
// negative counts, out-of-range indices, or writing a buffer into
// itself panics.
//
// # Thread Safety
//
// Individual buffers, sources and sinks are single-owner values and must
// not be used from two goroutines at once. The segment pool and the
// reference counts on shared segment storage are safe for concurrent use
// from any number of goroutines.
package segio
