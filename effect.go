// effect.go - effect node contract, parameter descriptors and the effect factory

package main

import (
	"errors"
	"fmt"
)

// ErrUnknownEffectType is returned by NewEffect for an unrecognised type
// string.
var ErrUnknownEffectType = errors.New("stompchain: unknown effect type")

// EffectType names one of the ten built-in effect algorithms.
type EffectType string

const (
	EffectDistortion    EffectType = "distortion"
	EffectOverdrive     EffectType = "overdrive"
	EffectFuzz          EffectType = "fuzz"
	EffectChorus        EffectType = "chorus"
	EffectFlanger       EffectType = "flanger"
	EffectTremolo       EffectType = "tremolo"
	EffectEQ            EffectType = "eq"
	EffectDelay         EffectType = "delay"
	EffectReverb        EffectType = "reverb"
	EffectIRConvolution EffectType = "ir-convolution"
)

// ParamDescriptor describes one automatable parameter of an effect: its
// name, display range, default and current value.
type ParamDescriptor struct {
	Name    string
	Label   string
	Min     float32
	Max     float32
	Default float32
	Value   float32
}

// Effect is the contract every effect node implements. Process must be
// real-time safe: no allocation, no locking beyond what the caller already
// holds, no blocking I/O. input and output are interleaved stereo buffers
// of equal length (frames*2 samples); an effect may process output
// in place only if output and input alias the same slice, which chain
// ping-pong buffers guarantee they never do.
type Effect interface {
	Type() EffectType
	Process(input, output []float32, frames int)
	SetSampleRate(sampleRate int)
	SetBypass(bypass bool)
	Bypassed() bool
	Parameters() []ParamDescriptor
	SetParameter(name string, value float32) error
	GetParameter(name string) (float32, error)
}

// NewEffect constructs a fresh effect of the given type at the given
// sample rate.
func NewEffect(t EffectType, sampleRate int) (Effect, error) {
	switch t {
	case EffectDistortion:
		return newDistortion(sampleRate), nil
	case EffectOverdrive:
		return newOverdrive(sampleRate), nil
	case EffectFuzz:
		return newFuzz(sampleRate), nil
	case EffectChorus:
		return newChorus(sampleRate), nil
	case EffectFlanger:
		return newFlanger(sampleRate), nil
	case EffectTremolo:
		return newTremolo(sampleRate), nil
	case EffectEQ:
		return newEQ(sampleRate), nil
	case EffectDelay:
		return newDelay(sampleRate), nil
	case EffectReverb:
		return newReverb(sampleRate), nil
	case EffectIRConvolution:
		return newIRConvolution(sampleRate), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffectType, t)
	}
}

// clampF32 restricts v to [lo, hi].
func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sanitize replaces NaN/Inf with silence, matching the spec's contract
// that an effect must never propagate non-finite samples downstream.
func sanitize(v float32) float32 {
	if v != v { // NaN
		return 0
	}
	if v > 3.4e38 || v < -3.4e38 { // overflow toward +/-Inf
		return 0
	}
	return v
}

// bypassBase is embedded by every concrete effect to provide the shared
// bypass flag and sample rate bookkeeping.
type bypassBase struct {
	sampleRate int
	bypass     bool
}

func (b *bypassBase) SetSampleRate(sr int) { b.sampleRate = sr }
func (b *bypassBase) SetBypass(v bool)     { b.bypass = v }
func (b *bypassBase) Bypassed() bool       { return b.bypass }

// copyStereo writes input into output verbatim — used by bypassed effects.
func copyStereo(input, output []float32, frames int) {
	n := frames * 2
	if n > len(input) {
		n = len(input)
	}
	if n > len(output) {
		n = len(output)
	}
	copy(output[:n], input[:n])
}
