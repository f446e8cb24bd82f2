// effect_distortion.go - hard-clipping distortion with a tone lowpass

package main

import "fmt"

type distortion struct {
	bypassBase
	gain, tone, level float32
	lpCoeff           float32
	lp                [2]float32 // one filter state per channel
}

func newDistortion(sampleRate int) *distortion {
	d := &distortion{
		bypassBase: bypassBase{sampleRate: sampleRate},
		gain:       50,
		tone:       50,
		level:      50,
	}
	d.updateTone()
	return d
}

func (d *distortion) updateTone() {
	cutoff := 2000 + (float64(d.tone)/100)*18000
	d.lpCoeff = onePoleLowpassCoeff(cutoff, d.sampleRate)
}

func (d *distortion) Type() EffectType { return EffectDistortion }

func (d *distortion) Process(input, output []float32, frames int) {
	if d.bypass {
		copyStereo(input, output, frames)
		return
	}
	gainLinear := d.gain / 50 * 10
	levelLinear := d.level / 100
	for i := 0; i < frames; i++ {
		for ch := 0; ch < 2; ch++ {
			idx := i*2 + ch
			if idx >= len(input) || idx >= len(output) {
				continue
			}
			x := input[idx] * gainLinear
			x = clampF32(x, -1, 1)
			d.lp[ch] += d.lpCoeff * (x - d.lp[ch])
			output[idx] = sanitize(d.lp[ch] * levelLinear)
		}
	}
}

func (d *distortion) SetSampleRate(sr int) {
	d.bypassBase.SetSampleRate(sr)
	d.updateTone()
}

func (d *distortion) Parameters() []ParamDescriptor {
	return []ParamDescriptor{
		{Name: "gain", Label: "Gain", Min: 0, Max: 100, Default: 50, Value: d.gain},
		{Name: "tone", Label: "Tone", Min: 0, Max: 100, Default: 50, Value: d.tone},
		{Name: "level", Label: "Level", Min: 0, Max: 100, Default: 50, Value: d.level},
	}
}

func (d *distortion) SetParameter(name string, value float32) error {
	switch name {
	case "gain":
		d.gain = clampF32(value, 0, 100)
	case "tone":
		d.tone = clampF32(value, 0, 100)
		d.updateTone()
	case "level":
		d.level = clampF32(value, 0, 100)
	default:
		return fmt.Errorf("distortion: unknown parameter %q", name)
	}
	return nil
}

func (d *distortion) GetParameter(name string) (float32, error) {
	switch name {
	case "gain":
		return d.gain, nil
	case "tone":
		return d.tone, nil
	case "level":
		return d.level, nil
	default:
		return 0, fmt.Errorf("distortion: unknown parameter %q", name)
	}
}
