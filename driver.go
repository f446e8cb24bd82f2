// driver.go - audio driver contract and the headless/null driver

package main

import (
	"errors"
	"time"
)

// ErrDriverUnavailable is returned when a named driver cannot be
// initialized on the current platform (missing hardware, missing OS
// support, or explicit opt-out).
var ErrDriverUnavailable = errors.New("stompchain: driver unavailable")

// Driver abstracts a platform audio backend. Concrete drivers for
// CoreAudio, WASAPI, ASIO and PipeWire are platform-specific native
// integrations outside this module's scope; stompchain ships two portable
// drivers: otoDriver (real output, cross-platform, no cgo) and nullDriver
// (no hardware, used for headless operation and tests).
type Driver interface {
	Name() string
	Initialize(sampleRate, bufferSize int) (negotiatedSampleRate, negotiatedBufferSize int, err error)
	SetCallback(cb func(output []float32, frames int))
	Start() error
	Stop() error
	Close() error
	Latency() time.Duration
}

// nullDriver never touches real hardware. It is used for CLI invocations
// with no audio output (e.g. batch preset validation) and throughout the
// test suite, grounded on the teacher's own headless backend stub.
type nullDriver struct {
	sampleRate int
	bufferSize int
	cb         func(output []float32, frames int)
	running    bool
}

func newNullDriver() *nullDriver { return &nullDriver{} }

func (d *nullDriver) Name() string { return "null" }

func (d *nullDriver) Initialize(sampleRate, bufferSize int) (int, int, error) {
	d.sampleRate = sampleRate
	d.bufferSize = bufferSize
	return sampleRate, bufferSize, nil
}

func (d *nullDriver) SetCallback(cb func(output []float32, frames int)) { d.cb = cb }

func (d *nullDriver) Start() error { d.running = true; return nil }
func (d *nullDriver) Stop() error  { d.running = false; return nil }
func (d *nullDriver) Close() error { return nil }

func (d *nullDriver) Latency() time.Duration { return 0 }

// Pump drives one callback period manually. Only the null driver exposes
// this; it exists so tests and headless tooling can exercise the audio
// path deterministically without a real clock.
func (d *nullDriver) Pump() {
	if !d.running || d.cb == nil {
		return
	}
	buf := make([]float32, d.bufferSize*2)
	d.cb(buf, d.bufferSize)
}
