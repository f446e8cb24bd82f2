// effect_tremolo.go - amplitude modulation with a sine/square blend LFO

package main

import (
	"fmt"
	"math"
)

type tremolo struct {
	bypassBase
	rate, depth, volume, wave float32
	phaseInc                  float32
	phase                     float32
}

func newTremolo(sampleRate int) *tremolo {
	t := &tremolo{
		bypassBase: bypassBase{sampleRate: sampleRate},
		rate:       2.0,
		depth:      0.5,
		volume:     0.5,
		wave:       0.0,
	}
	t.updateRate()
	return t
}

func (t *tremolo) updateRate() {
	if t.sampleRate > 0 {
		t.phaseInc = float32(2 * math.Pi * float64(t.rate) / float64(t.sampleRate))
	}
}

func (t *tremolo) Type() EffectType { return EffectTremolo }

func (t *tremolo) lfo() float32 {
	sine := float32(math.Sin(float64(t.phase)))
	square := float32(1)
	if t.phase >= math.Pi {
		square = -1
	}
	return sine*(1-t.wave) + square*t.wave
}

func (t *tremolo) Process(input, output []float32, frames int) {
	if t.bypass {
		copyStereo(input, output, frames)
		return
	}
	volumeGain := t.volume * 2
	for i := 0; i < frames; i++ {
		mod := clampF32(1-t.depth*t.lfo(), 0, 1)
		for ch := 0; ch < 2; ch++ {
			idx := i*2 + ch
			if idx >= len(input) || idx >= len(output) {
				continue
			}
			output[idx] = sanitize(input[idx] * mod * volumeGain)
		}
		t.phase += t.phaseInc
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}
}

func (t *tremolo) SetSampleRate(sr int) {
	t.bypassBase.SetSampleRate(sr)
	t.updateRate()
}

func (t *tremolo) Parameters() []ParamDescriptor {
	return []ParamDescriptor{
		{Name: "rate", Label: "Rate", Min: 0.1, Max: 20, Default: 2.0, Value: t.rate},
		{Name: "depth", Label: "Depth", Min: 0, Max: 1, Default: 0.5, Value: t.depth},
		{Name: "volume", Label: "Volume", Min: 0, Max: 1, Default: 0.5, Value: t.volume},
		{Name: "wave", Label: "Wave", Min: 0, Max: 1, Default: 0.0, Value: t.wave},
	}
}

func (t *tremolo) SetParameter(name string, value float32) error {
	switch name {
	case "rate":
		t.rate = clampF32(value, 0.1, 20)
		t.updateRate()
	case "depth":
		t.depth = clampF32(value, 0, 1)
	case "volume":
		t.volume = clampF32(value, 0, 1)
	case "wave":
		t.wave = clampF32(value, 0, 1)
	default:
		return fmt.Errorf("tremolo: unknown parameter %q", name)
	}
	return nil
}

func (t *tremolo) GetParameter(name string) (float32, error) {
	switch name {
	case "rate":
		return t.rate, nil
	case "depth":
		return t.depth, nil
	case "volume":
		return t.volume, nil
	case "wave":
		return t.wave, nil
	default:
		return 0, fmt.Errorf("tremolo: unknown parameter %q", name)
	}
}
