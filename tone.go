// tone.go - test-tone generator used for effect preview and self-test

package main

import "math"

type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSawtooth
	WaveTriangle
	WaveNoise
)

// ToneGenerator produces a single test waveform duplicated across every
// output channel. Disabled by default; the control dispatcher enables it
// when an effect with a preview id is added and disables it when the last
// such effect is removed.
type ToneGenerator struct {
	enabled        bool
	frequency      float32
	amplitude      float32
	sampleRate     int
	waveType       WaveType
	phase          float64
	phaseIncrement float64
	noiseSeed      int32
}

// NewToneGenerator returns a generator at 440Hz/0.3 amplitude, disabled by
// default.
func NewToneGenerator(sampleRate int) *ToneGenerator {
	t := &ToneGenerator{
		frequency:  440.0,
		amplitude:  0.3,
		sampleRate: sampleRate,
		waveType:   WaveSine,
		noiseSeed:  12345,
	}
	t.updatePhaseIncrement()
	return t
}

func (t *ToneGenerator) updatePhaseIncrement() {
	if t.sampleRate > 0 {
		t.phaseIncrement = 2 * math.Pi * float64(t.frequency) / float64(t.sampleRate)
	}
}

func (t *ToneGenerator) SetEnabled(v bool)         { t.enabled = v }
func (t *ToneGenerator) Enabled() bool             { return t.enabled }
func (t *ToneGenerator) SetWaveType(w WaveType)    { t.waveType = w }
func (t *ToneGenerator) SetAmplitude(a float32)    { t.amplitude = clampF32(a, 0, 1) }

func (t *ToneGenerator) SetFrequency(f float32) {
	t.frequency = f
	t.updatePhaseIncrement()
}

func (t *ToneGenerator) SetSampleRate(sr int) {
	t.sampleRate = sr
	t.updatePhaseIncrement()
}

// Generate writes frameCount frames of channels-wide interleaved samples
// into output. No-op when disabled.
func (t *ToneGenerator) Generate(output []float32, frameCount, channels int) {
	if !t.enabled || frameCount == 0 || len(output) == 0 {
		return
	}
	for i := 0; i < frameCount; i++ {
		sample := t.generateSample() * t.amplitude
		for ch := 0; ch < channels; ch++ {
			idx := i*channels + ch
			if idx >= len(output) {
				break
			}
			output[idx] = sample
		}
		if t.waveType != WaveNoise {
			t.phase += t.phaseIncrement
			if t.phase >= 2*math.Pi {
				t.phase -= 2 * math.Pi
			}
		}
	}
}

func (t *ToneGenerator) generateSample() float32 {
	switch t.waveType {
	case WaveSine:
		return float32(math.Sin(t.phase))
	case WaveSquare:
		if math.Sin(t.phase) >= 0 {
			return 1
		}
		return -1
	case WaveSawtooth:
		return float32((t.phase/(2*math.Pi))*2 - 1)
	case WaveTriangle:
		normalized := t.phase / (2 * math.Pi)
		if normalized < 0.5 {
			return float32(normalized*4 - 1)
		}
		return float32(3 - normalized*4)
	case WaveNoise:
		t.noiseSeed = (t.noiseSeed*1103515245 + 12345) & 0x7fffffff
		return float32(float64(t.noiseSeed)/2147483648.0 - 1.0)
	default:
		return 0
	}
}
