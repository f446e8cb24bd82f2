// effect_eq.go - three-band peaking equalizer

package main

import "fmt"

type eqBand struct {
	freq, gain float32
	coeffs     biquadCoeffs
	state      [2]biquadState // one delay line per channel
}

type equalizer struct {
	bypassBase
	low, mid, high eqBand
	level          float32
}

func newEQ(sampleRate int) *equalizer {
	e := &equalizer{
		bypassBase: bypassBase{sampleRate: sampleRate},
		low:        eqBand{freq: 100},
		mid:        eqBand{freq: 1000},
		high:       eqBand{freq: 5000},
		level:      0.5,
	}
	e.updateFilters()
	return e
}

func (e *equalizer) updateFilters() {
	e.low.coeffs = biquadPeakingEQ(float64(e.low.freq), 1.0, float64(e.low.gain), e.sampleRate)
	e.mid.coeffs = biquadPeakingEQ(float64(e.mid.freq), 1.0, float64(e.mid.gain), e.sampleRate)
	e.high.coeffs = biquadPeakingEQ(float64(e.high.freq), 1.0, float64(e.high.gain), e.sampleRate)
}

func (e *equalizer) Type() EffectType { return EffectEQ }

func (e *equalizer) Process(input, output []float32, frames int) {
	if e.bypass {
		copyStereo(input, output, frames)
		return
	}
	levelGain := e.level * 2
	for i := 0; i < frames; i++ {
		for ch := 0; ch < 2; ch++ {
			idx := i*2 + ch
			if idx >= len(input) || idx >= len(output) {
				continue
			}
			x := input[idx]
			x = e.low.state[ch].process(e.low.coeffs, x)
			x = e.mid.state[ch].process(e.mid.coeffs, x)
			x = e.high.state[ch].process(e.high.coeffs, x)
			output[idx] = sanitize(x * levelGain)
		}
	}
}

func (e *equalizer) Parameters() []ParamDescriptor {
	return []ParamDescriptor{
		{Name: "low", Label: "Low (100Hz)", Min: -12, Max: 12, Default: 0, Value: e.low.gain},
		{Name: "mid", Label: "Mid (1kHz)", Min: -12, Max: 12, Default: 0, Value: e.mid.gain},
		{Name: "high", Label: "High (5kHz)", Min: -12, Max: 12, Default: 0, Value: e.high.gain},
		{Name: "level", Label: "Level", Min: 0, Max: 1, Default: 0.5, Value: e.level},
	}
}

func (e *equalizer) SetParameter(name string, value float32) error {
	switch name {
	case "low":
		e.low.gain = clampF32(value, -12, 12)
		e.updateFilters()
	case "mid":
		e.mid.gain = clampF32(value, -12, 12)
		e.updateFilters()
	case "high":
		e.high.gain = clampF32(value, -12, 12)
		e.updateFilters()
	case "level":
		e.level = clampF32(value, 0, 1)
	default:
		return fmt.Errorf("eq: unknown parameter %q", name)
	}
	return nil
}

func (e *equalizer) GetParameter(name string) (float32, error) {
	switch name {
	case "low":
		return e.low.gain, nil
	case "mid":
		return e.mid.gain, nil
	case "high":
		return e.high.gain, nil
	case "level":
		return e.level, nil
	default:
		return 0, fmt.Errorf("eq: unknown parameter %q", name)
	}
}

func (e *equalizer) SetSampleRate(sr int) {
	e.bypassBase.SetSampleRate(sr)
	e.updateFilters()
}
