package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiplyBuffers(t *testing.T) {
	dst := make([]float32, 4)
	multiplyBuffers(dst, []float32{1, 2, 3, 4}, 2)
	assert.Equal(t, []float32{2, 4, 6, 8}, dst)
}

func TestApplyGain(t *testing.T) {
	buf := []float32{1, 2, 3}
	applyGain(buf, 0.5)
	assert.Equal(t, []float32{0.5, 1, 1.5}, buf)
}

func TestAddBuffers(t *testing.T) {
	dst := []float32{1, 1, 1}
	addBuffers(dst, []float32{1, 2, 3})
	assert.Equal(t, []float32{2, 3, 4}, dst)
}

func TestMixBuffers(t *testing.T) {
	out := make([]float32, 2)
	mixBuffers([]float32{0, 0}, []float32{10, 10}, out, 0.25)
	assert.InDeltaSlice(t, []float64{2.5, 2.5}, toFloat64(out), 1e-6)
}

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
