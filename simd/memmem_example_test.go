package simd_test

import (
	"fmt"

	"github.com/coregx/btregex/simd"
)

func ExampleMemmem() {
	pos := simd.Memmem([]byte("hello world"), []byte("world"))
	fmt.Println(pos)
	// Output: 6
}

func ExampleMemchrDigit() {
	pos := simd.MemchrDigit([]byte("Server at 192.168.1.1"))
	fmt.Println(pos)
	// Output: 10
}
