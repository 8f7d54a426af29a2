// Copyright 2025 Tenso Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package isa selects the float32 lane width used by the Operation Table's
// optional vector path (spec.md §4.3, §4.4). Unlike the teacher pack's
// go-highway, which dispatches to hand-written AVX2/NEON/SME assembly, this
// package never emits or calls assembly: this module is written without
// running an assembler or the Go toolchain, so lane processing here is a
// plain Go loop of width K. The width itself is still chosen from real CPU
// feature detection, grounded on go-highway's dispatch_amd64.go /
// dispatch_arm64.go pattern, because spec.md §4.4 ties elempack's natural
// SIMD lane width to the platform and §9 only requires that SIMD (if
// present) not change results — it does not require actual vector
// instructions.
package isa

import (
	"os"

	"golang.org/x/sys/cpu"
)

// Width is the number of float32 lanes the vector path processes together.
type Width int

var currentWidth Width

func init() {
	currentWidth = detectWidth()
}

// NoSIMDEnv reports whether TENSO_NO_SIMD disables lane detection, mirroring
// go-highway's HWY_NO_SIMD override.
func NoSIMDEnv() bool {
	return os.Getenv("TENSO_NO_SIMD") != ""
}

func detectWidth() Width {
	if NoSIMDEnv() {
		return 1
	}
	switch {
	case cpu.X86.HasAVX512F:
		return 16
	case cpu.X86.HasAVX2:
		return 8
	case cpu.X86.HasSSE2:
		return 4
	case cpu.ARM64.HasASIMD:
		return 4
	default:
		return 1
	}
}

// LaneWidth returns the current process-wide lane width. It never changes
// after init, so callers may cache it freely.
func LaneWidth() Width {
	return currentWidth
}
