// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio

import (
	"errors"
	"fmt"
	"io"
)

// Package error values follow a semantic-error convention: operational
// conditions (stream ended early, endpoint closed, malformed numeric
// literal) are reported as error values matched with errors.Is, while API
// misuse (negative counts, out-of-range indices, writing a buffer into
// itself) panics.

// ErrEndOfStream reports that a read required more bytes than the buffer
// and its source together could supply. It matches io.EOF under errors.Is
// so that generic stream consumers treat it as end of input.
var ErrEndOfStream = fmt.Errorf("segio: unexpected end of stream: %w", io.EOF)

// ErrClosed reports an operation other than Close on a closed buffered
// source or sink.
var ErrClosed = errors.New("segio: closed")

// ErrPeekInvalid reports a read from a peek source after the source it
// peeks into consumed bytes past the peeked position.
var ErrPeekInvalid = errors.New("segio: peek source invalidated by upstream read")

// NumberFormatError reports a decimal or hexadecimal parse that overflowed
// a 64-bit value or found no digits. Literal holds the offending text as
// far as it was recognized, including the digit that overflowed.
type NumberFormatError struct {
	Literal string
}

func (e *NumberFormatError) Error() string {
	return fmt.Sprintf("segio: invalid number %q", e.Literal)
}
