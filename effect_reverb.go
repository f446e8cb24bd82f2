// effect_reverb.go - Schroeder reverb: parallel combs feeding series allpasses

package main

import "fmt"

var combDelays44k = [4]int{1116, 1188, 1277, 1356}
var allpassDelays44k = [2]int{556, 441}

type combFilter struct {
	buf      []float32
	writeIdx int
	feedback float32
}

func (c *combFilter) process(x float32) float32 {
	out := c.buf[c.writeIdx]
	c.buf[c.writeIdx] = sanitize(x + out*c.feedback)
	c.writeIdx = (c.writeIdx + 1) % len(c.buf)
	return out
}

type allpassFilter struct {
	buf      []float32
	writeIdx int
	coef     float32
}

func (a *allpassFilter) process(x float32) float32 {
	bufOut := a.buf[a.writeIdx]
	y := -a.coef*x + bufOut
	a.buf[a.writeIdx] = sanitize(x + bufOut*a.coef)
	a.writeIdx = (a.writeIdx + 1) % len(a.buf)
	return y
}

type reverb struct {
	bypassBase
	room, decay, mix float32
	combs            [2][4]combFilter
	allpasses        [2][2]allpassFilter
}

func newReverb(sampleRate int) *reverb {
	r := &reverb{
		bypassBase: bypassBase{sampleRate: sampleRate},
		room:       0.5,
		decay:      0.5,
		mix:        0.3,
	}
	r.updateReverbParameters()
	return r
}

func (r *reverb) updateReverbParameters() {
	scale := float64(r.sampleRate) / 44100
	combFeedback := clampF32(r.decay*0.7, 0, 0.7)
	for ch := 0; ch < 2; ch++ {
		for i, base := range combDelays44k {
			size := int(float64(base)*scale) + 1
			if size < 1 {
				size = 1
			}
			buf := make([]float32, size)
			r.combs[ch][i] = combFilter{buf: buf, feedback: combFeedback}
		}
		for i, base := range allpassDelays44k {
			size := int(float64(base)*scale) + 1
			if size < 1 {
				size = 1
			}
			buf := make([]float32, size)
			r.allpasses[ch][i] = allpassFilter{buf: buf, coef: 0.5}
		}
	}
}

func (r *reverb) Type() EffectType { return EffectReverb }

func (r *reverb) Process(input, output []float32, frames int) {
	if r.bypass {
		copyStereo(input, output, frames)
		return
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < 2; ch++ {
			idx := i*2 + ch
			if idx >= len(input) || idx >= len(output) {
				continue
			}
			x := input[idx] * r.room

			var combSum float32
			for c := range r.combs[ch] {
				combSum += r.combs[ch][c].process(x)
			}
			combSum /= float32(len(r.combs[ch]))

			wet := combSum
			for a := range r.allpasses[ch] {
				wet = r.allpasses[ch][a].process(wet)
			}

			output[idx] = sanitize(input[idx]*(1-r.mix) + wet*r.mix)
		}
	}
}

func (r *reverb) SetSampleRate(sr int) {
	r.bypassBase.SetSampleRate(sr)
	r.updateReverbParameters()
}

func (r *reverb) Parameters() []ParamDescriptor {
	return []ParamDescriptor{
		{Name: "room", Label: "Room", Min: 0, Max: 1, Default: 0.5, Value: r.room},
		{Name: "decay", Label: "Decay", Min: 0, Max: 1, Default: 0.5, Value: r.decay},
		{Name: "mix", Label: "Mix", Min: 0, Max: 1, Default: 0.3, Value: r.mix},
	}
}

func (r *reverb) SetParameter(name string, value float32) error {
	switch name {
	case "room":
		r.room = clampF32(value, 0, 1)
	case "decay":
		r.decay = clampF32(value, 0, 1)
		r.updateReverbParameters()
	case "mix":
		r.mix = clampF32(value, 0, 1)
	default:
		return fmt.Errorf("reverb: unknown parameter %q", name)
	}
	return nil
}

func (r *reverb) GetParameter(name string) (float32, error) {
	switch name {
	case "room":
		return r.room, nil
	case "decay":
		return r.decay, nil
	case "mix":
		return r.mix, nil
	default:
		return 0, fmt.Errorf("reverb: unknown parameter %q", name)
	}
}
