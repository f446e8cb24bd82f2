package main

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRingBuffer_CapacityRoundsToPowerOfTwo(t *testing.T) {
	rb := NewRingBuffer(100)
	assert.Equal(t, 128, rb.Capacity())
}

func TestRingBuffer_WriteReadRoundTrip(t *testing.T) {
	rb := NewRingBuffer(8)
	n := rb.Write([]float32{1, 2, 3, 4})
	require.Equal(t, 4, n)
	assert.Equal(t, 4, rb.Available())

	dst := make([]float32, 4)
	n = rb.Read(dst)
	require.Equal(t, 4, n)
	assert.Equal(t, []float32{1, 2, 3, 4}, dst)
	assert.Equal(t, 0, rb.Available())
}

func TestRingBuffer_WrapAround(t *testing.T) {
	rb := NewRingBuffer(4)
	rb.Write([]float32{1, 2, 3})
	out := make([]float32, 3)
	rb.Read(out)

	rb.Write([]float32{4, 5, 6})
	out = make([]float32, 3)
	n := rb.Read(out)
	require.Equal(t, 3, n)
	assert.Equal(t, []float32{4, 5, 6}, out)
}

func TestRingBuffer_WriteTruncatesWhenFull(t *testing.T) {
	rb := NewRingBuffer(4)
	n := rb.Write([]float32{1, 2, 3, 4, 5, 6})
	assert.Equal(t, 4, n)
	assert.Equal(t, 0, rb.Free())
}

func TestRingBuffer_ConcurrentProducerConsumerConservesSamples(t *testing.T) {
	rb := NewRingBuffer(64)
	const total = 100000

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		i := 0
		for i < total {
			chunk := []float32{float32(i)}
			if rb.Write(chunk) == 1 {
				i++
			}
		}
	}()

	received := make([]float32, 0, total)
	go func() {
		defer wg.Done()
		buf := make([]float32, 1)
		for len(received) < total {
			if rb.Read(buf) == 1 {
				received = append(received, buf[0])
			}
		}
	}()

	wg.Wait()
	require.Len(t, received, total)
	for i, v := range received {
		assert.Equal(t, float32(i), v)
	}
}

// RingBuffer never reports more available samples than its capacity and
// never double-counts what was already drained.
func TestRingBuffer_AvailableNeverExceedsCapacity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		capacity := rapid.IntRange(1, 64).Draw(rt, "capacity")
		rb := NewRingBuffer(capacity)

		ops := rapid.SliceOfN(rapid.IntRange(-32, 32), 0, 50).Draw(rt, "ops")
		for _, op := range ops {
			if op >= 0 {
				rb.Write(make([]float32, op))
			} else {
				rb.Read(make([]float32, -op))
			}
			if rb.Available() > rb.Capacity() {
				rt.Fatalf("available %d exceeds capacity %d", rb.Available(), rb.Capacity())
			}
		}
	})
}
