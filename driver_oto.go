// driver_oto.go - real audio output via ebitengine/oto

package main

import (
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

// otoDriver plays audio through the host's default output device via oto.
// The Read hot path loads its callback atomically and never takes the
// setup mutex, matching the teacher's own oto backend.
type otoDriver struct {
	mu       sync.Mutex
	ctx      *oto.Context
	player   *oto.Player
	cb       atomic.Pointer[func(output []float32, frames int)]
	sampleRate int
	bufferSize int
	sampleBuf  []float32
	started    bool
}

func newOtoDriver() *otoDriver { return &otoDriver{} }

func (d *otoDriver) Name() string { return "oto" }

func (d *otoDriver) Initialize(sampleRate, bufferSize int) (int, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(bufferSize) * time.Second / time.Duration(sampleRate),
	})
	if err != nil {
		return 0, 0, ErrDriverUnavailable
	}
	<-ready

	d.ctx = ctx
	d.sampleRate = sampleRate
	d.bufferSize = bufferSize
	d.sampleBuf = make([]float32, bufferSize*2)
	d.player = ctx.NewPlayer(d)
	return sampleRate, bufferSize, nil
}

func (d *otoDriver) SetCallback(cb func(output []float32, frames int)) {
	d.cb.Store(&cb)
}

// Read is invoked by oto's internal mixer goroutine. It pulls one
// callback's worth of audio from the pipeline and converts it to the
// little-endian float32 byte stream oto expects.
func (d *otoDriver) Read(p []byte) (int, error) {
	cbPtr := d.cb.Load()
	if cbPtr == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	frames := len(p) / 4 / 2
	if cap(d.sampleBuf) < frames*2 {
		d.sampleBuf = make([]float32, frames*2)
	}
	buf := d.sampleBuf[:frames*2]

	(*cbPtr)(buf, frames)

	n := frames * 2 * 4
	if n > len(p) {
		n = len(p)
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(&buf[0])), n)
	copy(p[:n], src)
	return n, nil
}

func (d *otoDriver) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player == nil {
		return ErrDriverUnavailable
	}
	d.player.Play()
	d.started = true
	return nil
}

func (d *otoDriver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player != nil {
		d.player.Pause()
	}
	d.started = false
	return nil
}

func (d *otoDriver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.player != nil {
		_ = d.player.Close()
	}
	return nil
}

func (d *otoDriver) Latency() time.Duration {
	if d.sampleRate == 0 {
		return 0
	}
	return time.Duration(d.bufferSize) * time.Second / time.Duration(d.sampleRate)
}
