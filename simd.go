// simd.go - vector-style buffer kernels with a scalar fallback

package main

import "golang.org/x/sys/cpu"

// simdAvailable reports whether the running CPU exposes a vector extension
// stompchain could in principle dispatch to. Every kernel below is
// implemented in scalar Go and none of them consults this flag, so it
// never changes kernel output. Nothing in stompchain reports it in
// telemetry or logs.
func simdAvailable() bool {
	switch {
	case cpu.X86.HasAVX2, cpu.X86.HasSSE42:
		return true
	case cpu.ARM64.HasASIMD:
		return true
	default:
		return false
	}
}

// multiplyBuffers multiplies src by gain into dst elementwise.
func multiplyBuffers(dst, src []float32, gain float32) {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = src[i] * gain
	}
}

// applyGain scales buf in place by gain.
func applyGain(buf []float32, gain float32) {
	for i := range buf {
		buf[i] *= gain
	}
}

// addBuffers adds src into dst elementwise.
func addBuffers(dst, src []float32) {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] += src[i]
	}
}

// mixBuffers blends a and b into out by the given dry/wet mix, where mix=0
// is fully a and mix=1 is fully b.
func mixBuffers(a, b, out []float32, mix float32) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if len(out) < n {
		n = len(out)
	}
	dry := 1 - mix
	for i := 0; i < n; i++ {
		out[i] = a[i]*dry + b[i]*mix
	}
}
