// effect_flanger.go - short modulated delay line with feedback, additive output

package main

import (
	"fmt"
	"math"
)

type flanger struct {
	bypassBase
	rate, depth, feedback, manual, resonance float32
	phaseInc                                 float32
	phase                                    [2]float32
	buf                                      [2][]float32
	writeIdx                                 [2]int
}

func newFlanger(sampleRate int) *flanger {
	f := &flanger{
		bypassBase: bypassBase{sampleRate: sampleRate},
		rate:       0.5,
		depth:      0.5,
		feedback:   0.3,
		manual:     0.5,
		resonance:  0.5,
	}
	f.allocate()
	f.updateRate()
	return f
}

func (f *flanger) allocate() {
	size := int(float64(f.sampleRate) * 0.01)
	if size < 1 {
		size = 1
	}
	f.buf[0] = make([]float32, size)
	f.buf[1] = make([]float32, size)
}

func (f *flanger) updateRate() {
	if f.sampleRate > 0 {
		f.phaseInc = float32(2 * math.Pi * float64(f.rate) / float64(f.sampleRate))
	}
}

func (f *flanger) Type() EffectType { return EffectFlanger }

func (f *flanger) delayTimeSeconds(phase float32) float32 {
	baseDelay := 0.001 + f.manual*0.004
	const modRange = 0.002
	return baseDelay + modRange*f.depth*float32(math.Sin(float64(phase)))
}

func (f *flanger) Process(input, output []float32, frames int) {
	if f.bypass {
		copyStereo(input, output, frames)
		return
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < 2; ch++ {
			idx := i*2 + ch
			if idx >= len(input) || idx >= len(output) {
				continue
			}
			buf := f.buf[ch]
			size := len(buf)

			delaySec := f.delayTimeSeconds(f.phase[ch])
			delaySamples := delaySec * float32(f.sampleRate)

			readPos := float32(f.writeIdx[ch]) - delaySamples
			for readPos < 0 {
				readPos += float32(size)
			}
			index1 := int(readPos) % size
			index2 := (index1 + 1) % size
			frac := readPos - float32(int(readPos))
			delayed := lerp(buf[index1], buf[index2], frac)

			x := input[idx]
			buf[f.writeIdx[ch]] = sanitize(x + delayed*f.feedback)
			f.writeIdx[ch] = (f.writeIdx[ch] + 1) % size

			output[idx] = sanitize(x + delayed*f.depth)

			f.phase[ch] += f.phaseInc
			if f.phase[ch] >= 2*math.Pi {
				f.phase[ch] -= 2 * math.Pi
			}
		}
	}
}

func (f *flanger) SetSampleRate(sr int) {
	f.bypassBase.SetSampleRate(sr)
	f.allocate()
	f.updateRate()
}

func (f *flanger) Parameters() []ParamDescriptor {
	return []ParamDescriptor{
		{Name: "rate", Label: "Rate", Min: 0.05, Max: 5, Default: 0.5, Value: f.rate},
		{Name: "depth", Label: "Depth", Min: 0, Max: 1, Default: 0.5, Value: f.depth},
		{Name: "feedback", Label: "Feedback", Min: 0, Max: 0.95, Default: 0.3, Value: f.feedback},
		{Name: "manual", Label: "Manual", Min: 0, Max: 1, Default: 0.5, Value: f.manual},
		{Name: "resonance", Label: "Resonance", Min: 0, Max: 1, Default: 0.5, Value: f.resonance},
	}
}

func (f *flanger) SetParameter(name string, value float32) error {
	switch name {
	case "rate":
		f.rate = clampF32(value, 0.05, 5)
		f.updateRate()
	case "depth":
		f.depth = clampF32(value, 0, 1)
	case "feedback":
		f.feedback = clampF32(value, 0, 0.95)
	case "manual":
		f.manual = clampF32(value, 0, 1)
	case "resonance":
		// exposed for UI parity; the flanger's core comb-filter equation
		// does not use it.
		f.resonance = clampF32(value, 0, 1)
	default:
		return fmt.Errorf("flanger: unknown parameter %q", name)
	}
	return nil
}

func (f *flanger) GetParameter(name string) (float32, error) {
	switch name {
	case "rate":
		return f.rate, nil
	case "depth":
		return f.depth, nil
	case "feedback":
		return f.feedback, nil
	case "manual":
		return f.manual, nil
	case "resonance":
		return f.resonance, nil
	default:
		return 0, fmt.Errorf("flanger: unknown parameter %q", name)
	}
}
