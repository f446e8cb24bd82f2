package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPool_AcquireReleaseRoundTrip(t *testing.T) {
	p := NewBufferPool(16, 2)
	require.Equal(t, 2, p.AvailableCount())

	b := p.Acquire()
	require.Len(t, *b, 16)
	assert.Equal(t, 1, p.AvailableCount())
	assert.Equal(t, 1, p.UsedCount())

	(*b)[0] = 42
	p.Release(b)
	assert.Equal(t, 2, p.AvailableCount())

	b2 := p.Acquire()
	assert.Equal(t, float32(0), (*b2)[0], "released buffers must be zero-filled")
}

func TestBufferPool_GrowsWhenExhausted(t *testing.T) {
	p := NewBufferPool(8, 1)
	b1 := p.Acquire()
	b2 := p.Acquire()
	assert.NotNil(t, b1)
	assert.NotNil(t, b2)
	assert.Equal(t, 2, p.UsedCount())
}

func TestBufferPool_ReleaseIgnoresForeignBuffer(t *testing.T) {
	p := NewBufferPool(8, 1)
	foreign := make([]float32, 8)
	p.Release(&foreign)
	assert.Equal(t, 1, p.AvailableCount())
}
