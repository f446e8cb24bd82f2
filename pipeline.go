// pipeline.go - the per-callback DSP pipeline: gain staging, chain, tone, stats

package main

import (
	"math"
	"sync/atomic"
	"time"
)

// atomicFloat32 stores a float32 behind an atomic.Uint32 bit pattern so the
// audio thread can read gain settings the control thread writes without
// ever blocking.
type atomicFloat32 struct {
	bits atomic.Uint32
}

func (a *atomicFloat32) Store(v float32) {
	a.bits.Store(math.Float32bits(v))
}

func (a *atomicFloat32) Load() float32 {
	return math.Float32frombits(a.bits.Load())
}

// Pipeline owns the signal path for one callback: input gain -> chain ->
// output gain, with the test tone generator substitutable for live input.
type Pipeline struct {
	sampleRate int
	bufferSize int

	inputGainDB  atomicFloat32
	outputGainDB atomicFloat32

	pool  *BufferPool
	chain *EffectChain
	tone  *ToneGenerator

	stats *telemetryStore
}

// NewPipeline constructs a pipeline at the given sample rate and buffer
// size, owning its own effect chain, buffer pool and test tone generator.
func NewPipeline(sampleRate, bufferSize int) *Pipeline {
	p := &Pipeline{
		sampleRate: sampleRate,
		bufferSize: bufferSize,
		pool:       NewBufferPool(bufferSize*2, 4),
		chain:      NewEffectChain(bufferSize),
		tone:       NewToneGenerator(sampleRate),
		stats:      newTelemetryStore(),
	}
	return p
}

// Chain returns the pipeline's effect chain for mutation via EffectManager.
func (p *Pipeline) Chain() *EffectChain { return p.chain }

// Tone returns the pipeline's test tone generator.
func (p *Pipeline) Tone() *ToneGenerator { return p.tone }

// SetInputGainDB / SetOutputGainDB set gain staging in decibels; safe to
// call from any goroutine.
func (p *Pipeline) SetInputGainDB(db float32)  { p.inputGainDB.Store(db) }
func (p *Pipeline) SetOutputGainDB(db float32) { p.outputGainDB.Store(db) }

// Reinitialize resizes internal buffers for a new sample rate/buffer size.
// Must not be called concurrently with Process.
func (p *Pipeline) Reinitialize(sampleRate, bufferSize int) {
	p.sampleRate = sampleRate
	p.bufferSize = bufferSize
	p.pool = NewBufferPool(bufferSize*2, 4)
	p.chain.Resize(bufferSize)
	p.tone.SetSampleRate(sampleRate)
}

// Process runs one callback's worth of audio: frames stereo frames of
// input produce frames stereo frames of output. Both scratch buffers come
// from the pool and are returned to it, so steady-state calls do not
// allocate. The chain mutex is taken only inside EffectChain.Process and
// is held there for the whole effect loop.
func (p *Pipeline) Process(input, output []float32, frames int) {
	start := time.Now()
	n := frames * 2

	workBuf := p.pool.Acquire()
	defer p.pool.Release(workBuf)
	work := (*workBuf)[:n]

	inputGain := dbToLinear(p.inputGainDB.Load())
	outputGain := dbToLinear(p.outputGainDB.Load())

	if p.tone.Enabled() {
		p.tone.Generate(work, frames, 2)
		applyGain(work, inputGain)
	} else {
		multiplyBuffers(work, input[:n], inputGain)
	}

	chainedBuf := p.pool.Acquire()
	defer p.pool.Release(chainedBuf)
	chained := (*chainedBuf)[:n]
	p.chain.Process(work, chained, frames)

	applyGain(chained, outputGain)

	nanHits := sanitizeInPlace(chained)
	copy(output[:n], chained)

	p.updateStats(input, output, frames, start, nanHits)
}

func sanitizeInPlace(buf []float32) uint64 {
	var hits uint64
	for i, v := range buf {
		s := sanitize(v)
		if s != v {
			hits++
		}
		buf[i] = s
	}
	return hits
}

func peakDB(buf []float32) float32 {
	var peak float32
	for _, v := range buf {
		a := v
		if a < 0 {
			a = -a
		}
		if a > peak {
			peak = a
		}
	}
	return linearToDb(peak)
}

func (p *Pipeline) updateStats(input, output []float32, frames int, start time.Time, nanHits uint64) {
	elapsed := time.Since(start)
	periodSeconds := float64(frames) / float64(p.sampleRate)
	cpuTimePercent := float32(0)
	if periodSeconds > 0 {
		cpuTimePercent = float32(elapsed.Seconds()/periodSeconds) * 100
	}

	p.stats.update(func(t *Telemetry) {
		t.PeakInputDB = peakDB(input[:frames*2])
		t.PeakOutputDB = peakDB(output[:frames*2])
		t.CPUUsage = updateCPUUsage(t.CPUUsage, cpuTimePercent)
		t.LatencyMs = float32(frames) / float32(p.sampleRate) * 1000
		t.SamplesProcessed += uint64(frames)
		t.NaNGuardHits += nanHits
	})
}

// Stats returns a snapshot of the pipeline's current telemetry.
func (p *Pipeline) Stats() Telemetry {
	return p.stats.snapshot()
}
