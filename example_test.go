// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package segio_test

import (
	"fmt"
	"strings"

	"code.hybscloud.com/segio"
)

func ExampleBuffer() {
	var b segio.Buffer
	_, _ = b.WriteString("hello, ")
	_, _ = b.WriteString("segments")

	line, _ := b.ReadString(b.Size())
	fmt.Println(line)
	// Output: hello, segments
}

func ExampleBuffer_WriteFrom() {
	var a, b segio.Buffer
	_, _ = a.WriteString("spliced bytes move without copying")

	// Move the first 13 bytes; whole segments transfer by relinking.
	_ = b.WriteFrom(&a, 13)

	got, _ := b.ReadString(b.Size())
	rest, _ := a.ReadString(a.Size())
	fmt.Println(got)
	fmt.Println(rest)
	// Output:
	// spliced bytes
	//  move without copying
}

func ExampleBuffer_Clone() {
	var b segio.Buffer
	_, _ = b.WriteString("snapshot")

	snap := b.Clone()
	_ = b.Skip(4)

	fmt.Println(b.Size(), snap.Size())
	// Output: 4 8
}

func ExampleNewBufferedSource() {
	raw := segio.NewSource(strings.NewReader("length:42 rest"))
	src := segio.NewBufferedSource(raw)

	prefix, _ := src.ReadString(7)
	n, _ := src.ReadDecimalInt64()
	fmt.Println(prefix, n)
	// Output: length: 42
}

func ExampleNewBufferedSink() {
	var wire segio.Buffer
	sink := segio.NewBufferedSink(&wire)

	_, _ = sink.WriteString("staged ")
	sink.WriteUint16(0x3130) // "10"
	_ = sink.Close()

	got, _ := wire.ReadString(wire.Size())
	fmt.Println(got)
	// Output: staged 10
}
