// Package simd provides the byte search primitives behind the prefilters.
//
// The package picks an implementation once, at init, from the CPU features
// reported by golang.org/x/sys/cpu. When the CPU has wide vector units the
// runtime's assembly routines in package bytes are the fastest single-needle
// scanners available to pure Go, so they are used directly. Otherwise, and
// for the multi-needle and class scans that package bytes has no vectorised
// form for, the SWAR (SIMD Within A Register) loops in swar.go process eight
// bytes per iteration.
package simd

import "golang.org/x/sys/cpu"

// vectorized reports whether the runtime byte routines run on vector units.
var vectorized = cpu.X86.HasAVX2 || cpu.X86.HasSSE42 || cpu.ARM64.HasASIMD

// minVectorLen is the input length below which the setup cost of the
// runtime routines outweighs the vector loop.
const minVectorLen = 16
