// effect_delay.go - feedback delay line (echo)

package main

import "fmt"

const delayMaxSeconds = 2.0 // buffer sized for up to 2s of delay at any sample rate

type delay struct {
	bypassBase
	timeMs, feedback, mix float32
	bufSize               int
	buf                   [2][]float32
	writeIdx              [2]int
	delaySamples          int
}

func newDelay(sampleRate int) *delay {
	d := &delay{
		bypassBase: bypassBase{sampleRate: sampleRate},
		timeMs:     300,
		feedback:   0.3,
		mix:        0.5,
	}
	d.allocate()
	d.updateDelayBuffer()
	return d
}

func (d *delay) allocate() {
	d.bufSize = int(float64(d.sampleRate) * delayMaxSeconds)
	if d.bufSize < 1 {
		d.bufSize = 1
	}
	d.buf[0] = make([]float32, d.bufSize)
	d.buf[1] = make([]float32, d.bufSize)
}

func (d *delay) updateDelayBuffer() {
	d.delaySamples = int(d.timeMs / 1000 * float32(d.sampleRate))
	if d.delaySamples < 1 {
		d.delaySamples = 1
	}
	if d.delaySamples >= d.bufSize {
		d.delaySamples = d.bufSize - 1
	}
}

func (d *delay) Type() EffectType { return EffectDelay }

func (d *delay) Process(input, output []float32, frames int) {
	if d.bypass {
		copyStereo(input, output, frames)
		return
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < 2; ch++ {
			idx := i*2 + ch
			if idx >= len(input) || idx >= len(output) {
				continue
			}
			buf := d.buf[ch]
			readIdx := (d.writeIdx[ch] - d.delaySamples + d.bufSize) % d.bufSize
			delayed := buf[readIdx]

			x := input[idx]
			buf[d.writeIdx[ch]] = sanitize(x + delayed*d.feedback)
			d.writeIdx[ch] = (d.writeIdx[ch] + 1) % d.bufSize

			output[idx] = sanitize(x*(1-d.mix) + delayed*d.mix)
		}
	}
}

func (d *delay) SetSampleRate(sr int) {
	d.bypassBase.SetSampleRate(sr)
	d.allocate()
	d.updateDelayBuffer()
}

func (d *delay) Parameters() []ParamDescriptor {
	return []ParamDescriptor{
		{Name: "time", Label: "Time (ms)", Min: 1, Max: 2000, Default: 300, Value: d.timeMs},
		{Name: "feedback", Label: "Feedback", Min: 0, Max: 0.95, Default: 0.3, Value: d.feedback},
		{Name: "mix", Label: "Mix", Min: 0, Max: 1, Default: 0.5, Value: d.mix},
	}
}

func (d *delay) SetParameter(name string, value float32) error {
	switch name {
	case "time":
		d.timeMs = clampF32(value, 1, 2000)
		d.updateDelayBuffer()
	case "feedback":
		d.feedback = clampF32(value, 0, 0.95)
	case "mix":
		d.mix = clampF32(value, 0, 1)
	default:
		return fmt.Errorf("delay: unknown parameter %q", name)
	}
	return nil
}

func (d *delay) GetParameter(name string) (float32, error) {
	switch name {
	case "time":
		return d.timeMs, nil
	case "feedback":
		return d.feedback, nil
	case "mix":
		return d.mix, nil
	default:
		return 0, fmt.Errorf("delay: unknown parameter %q", name)
	}
}
