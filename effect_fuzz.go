// effect_fuzz.go - asymmetric-feeling clipping fuzz with a tone lowpass

package main

import "fmt"

type fuzz struct {
	bypassBase
	fuzz, tone, volume float32
	lpCoeff            float32
	lp                 [2]float32
}

func newFuzz(sampleRate int) *fuzz {
	f := &fuzz{
		bypassBase: bypassBase{sampleRate: sampleRate},
		fuzz:       0.5,
		tone:       0.5,
		volume:     0.5,
	}
	f.updateTone()
	return f
}

func (f *fuzz) updateTone() {
	cutoff := 20000 - float64(f.tone)*15000
	if cutoff < 20 {
		cutoff = 20
	}
	f.lpCoeff = onePoleLowpassCoeff(cutoff, f.sampleRate)
}

func (f *fuzz) Type() EffectType { return EffectFuzz }

func fuzzClip(x float32) float32 {
	c := clampF32(x, -1, 1)
	return c * (1 - 0.3*absF32(c))
}

func absF32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func (f *fuzz) Process(input, output []float32, frames int) {
	if f.bypass {
		copyStereo(input, output, frames)
		return
	}
	fuzzGain := f.fuzz*10 + 1
	volumeGain := f.volume * 2
	for i := 0; i < frames; i++ {
		for ch := 0; ch < 2; ch++ {
			idx := i*2 + ch
			if idx >= len(input) || idx >= len(output) {
				continue
			}
			x := fuzzClip(input[idx] * fuzzGain)
			f.lp[ch] += f.lpCoeff * (x - f.lp[ch])
			output[idx] = sanitize(f.lp[ch] * volumeGain)
		}
	}
}

func (f *fuzz) SetSampleRate(sr int) {
	f.bypassBase.SetSampleRate(sr)
	f.updateTone()
}

func (f *fuzz) Parameters() []ParamDescriptor {
	return []ParamDescriptor{
		{Name: "fuzz", Label: "Fuzz", Min: 0, Max: 1, Default: 0.5, Value: f.fuzz},
		{Name: "tone", Label: "Tone", Min: 0, Max: 1, Default: 0.5, Value: f.tone},
		{Name: "volume", Label: "Volume", Min: 0, Max: 1, Default: 0.5, Value: f.volume},
	}
}

func (f *fuzz) SetParameter(name string, value float32) error {
	switch name {
	case "fuzz":
		f.fuzz = clampF32(value, 0, 1)
	case "tone":
		f.tone = clampF32(value, 0, 1)
		f.updateTone()
	case "volume":
		f.volume = clampF32(value, 0, 1)
	default:
		return fmt.Errorf("fuzz: unknown parameter %q", name)
	}
	return nil
}

func (f *fuzz) GetParameter(name string) (float32, error) {
	switch name {
	case "fuzz":
		return f.fuzz, nil
	case "tone":
		return f.tone, nil
	case "volume":
		return f.volume, nil
	default:
		return 0, fmt.Errorf("fuzz: unknown parameter %q", name)
	}
}
