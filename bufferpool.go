// bufferpool.go - fixed-size scratch buffer pool for the audio path

package main

import "sync"

// BufferPool hands out zero-filled []float32 scratch buffers of a fixed
// size so the audio callback never has to allocate. Acquire grows the pool
// on demand rather than blocking; a pool that is undersized for the
// workload will simply allocate more, which is safe but defeats the
// purpose, so callers should size the pool for their worst-case
// concurrency.
type BufferPool struct {
	mu         sync.Mutex
	bufferSize int
	owned      []*[]float32
	available  []*[]float32
}

// NewBufferPool creates a pool of poolSize buffers, each bufferSize
// samples long.
func NewBufferPool(bufferSize, poolSize int) *BufferPool {
	p := &BufferPool{bufferSize: bufferSize}
	p.owned = make([]*[]float32, 0, poolSize)
	p.available = make([]*[]float32, 0, poolSize)
	for i := 0; i < poolSize; i++ {
		buf := make([]float32, bufferSize)
		p.owned = append(p.owned, &buf)
		p.available = append(p.available, &buf)
	}
	return p
}

// Acquire returns a zero-filled buffer owned by the pool. If the pool is
// exhausted a new buffer is allocated and added to the pool's ownership.
func (p *BufferPool) Acquire() *[]float32 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.available) == 0 {
		buf := make([]float32, p.bufferSize)
		p.owned = append(p.owned, &buf)
		return &buf
	}

	last := len(p.available) - 1
	buf := p.available[last]
	p.available = p.available[:last]
	return buf
}

// Release returns buf to the pool, zero-filling it first. Buffers not
// originally obtained from this pool are ignored.
func (p *BufferPool) Release(buf *[]float32) {
	if buf == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	owned := false
	for _, b := range p.owned {
		if b == buf {
			owned = true
			break
		}
	}
	if !owned {
		return
	}

	for i := range *buf {
		(*buf)[i] = 0
	}
	p.available = append(p.available, buf)
}

// AvailableCount returns the number of buffers currently checked in.
func (p *BufferPool) AvailableCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.available)
}

// UsedCount returns the number of buffers currently checked out.
func (p *BufferPool) UsedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.owned) - len(p.available)
}
