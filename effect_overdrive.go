// effect_overdrive.go - soft-clipping overdrive with a tone lowpass

package main

import (
	"fmt"
	"math"
)

type overdrive struct {
	bypassBase
	drive, tone, level float32
	lpCoeff            float32
	lp                 [2]float32
}

func newOverdrive(sampleRate int) *overdrive {
	o := &overdrive{
		bypassBase: bypassBase{sampleRate: sampleRate},
		drive:      0.5,
		tone:       0.5,
		level:      0.5,
	}
	o.updateTone()
	return o
}

func (o *overdrive) updateTone() {
	cutoff := 20000 - float64(o.tone)*18000
	if cutoff < 20 {
		cutoff = 20
	}
	o.lpCoeff = onePoleLowpassCoeff(cutoff, o.sampleRate)
}

func (o *overdrive) Type() EffectType { return EffectOverdrive }

func softClip(x float32) float32 {
	return float32(math.Tanh(float64(x)*2)) * 0.5
}

func (o *overdrive) Process(input, output []float32, frames int) {
	if o.bypass {
		copyStereo(input, output, frames)
		return
	}
	driveGain := o.drive*3 + 1
	levelGain := o.level * 2
	for i := 0; i < frames; i++ {
		for ch := 0; ch < 2; ch++ {
			idx := i*2 + ch
			if idx >= len(input) || idx >= len(output) {
				continue
			}
			x := softClip(input[idx] * driveGain)
			o.lp[ch] += o.lpCoeff * (x - o.lp[ch])
			output[idx] = sanitize(o.lp[ch] * levelGain)
		}
	}
}

func (o *overdrive) SetSampleRate(sr int) {
	o.bypassBase.SetSampleRate(sr)
	o.updateTone()
}

func (o *overdrive) Parameters() []ParamDescriptor {
	return []ParamDescriptor{
		{Name: "drive", Label: "Drive", Min: 0, Max: 1, Default: 0.5, Value: o.drive},
		{Name: "tone", Label: "Tone", Min: 0, Max: 1, Default: 0.5, Value: o.tone},
		{Name: "level", Label: "Level", Min: 0, Max: 1, Default: 0.5, Value: o.level},
	}
}

func (o *overdrive) SetParameter(name string, value float32) error {
	switch name {
	case "drive":
		o.drive = clampF32(value, 0, 1)
	case "tone":
		o.tone = clampF32(value, 0, 1)
		o.updateTone()
	case "level":
		o.level = clampF32(value, 0, 1)
	default:
		return fmt.Errorf("overdrive: unknown parameter %q", name)
	}
	return nil
}

func (o *overdrive) GetParameter(name string) (float32, error) {
	switch name {
	case "drive":
		return o.drive, nil
	case "tone":
		return o.tone, nil
	case "level":
		return o.level, nil
	default:
		return 0, fmt.Errorf("overdrive: unknown parameter %q", name)
	}
}
