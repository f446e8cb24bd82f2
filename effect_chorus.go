// effect_chorus.go - LFO-modulated delay line chorus

package main

import (
	"fmt"
	"math"
)

type chorus struct {
	bypassBase
	rate, depth, mix float32
	phaseInc         float32
	phase            [2]float32
	buf              [2][]float32
	writeIdx         [2]int
}

func newChorus(sampleRate int) *chorus {
	c := &chorus{
		bypassBase: bypassBase{sampleRate: sampleRate},
		rate:       1.0,
		depth:      0.5,
		mix:        0.5,
	}
	c.allocate()
	c.updateRate()
	return c
}

func (c *chorus) allocate() {
	size := int(float64(c.sampleRate) * 0.05)
	if size < 1 {
		size = 1
	}
	c.buf[0] = make([]float32, size)
	c.buf[1] = make([]float32, size)
}

func (c *chorus) updateRate() {
	if c.sampleRate > 0 {
		c.phaseInc = float32(2 * math.Pi * float64(c.rate) / float64(c.sampleRate))
	}
}

func (c *chorus) Type() EffectType { return EffectChorus }

// delayTimeSeconds returns the current modulated delay time: a 10ms base
// plus up to +/-5ms*depth of sinusoidal modulation.
func (c *chorus) delayTimeSeconds(phase float32) float32 {
	const baseDelay = 0.010
	const modRange = 0.005
	return baseDelay + modRange*c.depth*float32(math.Sin(float64(phase)))
}

func (c *chorus) Process(input, output []float32, frames int) {
	if c.bypass {
		copyStereo(input, output, frames)
		return
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < 2; ch++ {
			idx := i*2 + ch
			if idx >= len(input) || idx >= len(output) {
				continue
			}
			buf := c.buf[ch]
			size := len(buf)

			delaySec := c.delayTimeSeconds(c.phase[ch])
			delaySamples := delaySec * float32(c.sampleRate)

			readPos := float32(c.writeIdx[ch]) - delaySamples
			for readPos < 0 {
				readPos += float32(size)
			}
			index1 := int(readPos) % size
			index2 := (index1 + 1) % size
			frac := readPos - float32(int(readPos))
			delayed := lerp(buf[index1], buf[index2], frac)

			x := input[idx]
			buf[c.writeIdx[ch]] = x
			c.writeIdx[ch] = (c.writeIdx[ch] + 1) % size

			wet := x*(1-c.mix) + delayed*c.mix
			output[idx] = sanitize(wet)

			c.phase[ch] += c.phaseInc
			if c.phase[ch] >= 2*math.Pi {
				c.phase[ch] -= 2 * math.Pi
			}
		}
	}
}

func (c *chorus) SetSampleRate(sr int) {
	c.bypassBase.SetSampleRate(sr)
	c.allocate()
	c.updateRate()
}

func (c *chorus) Parameters() []ParamDescriptor {
	return []ParamDescriptor{
		{Name: "rate", Label: "Rate", Min: 0.1, Max: 10, Default: 1.0, Value: c.rate},
		{Name: "depth", Label: "Depth", Min: 0, Max: 1, Default: 0.5, Value: c.depth},
		{Name: "mix", Label: "Mix", Min: 0, Max: 1, Default: 0.5, Value: c.mix},
	}
}

func (c *chorus) SetParameter(name string, value float32) error {
	switch name {
	case "rate":
		c.rate = clampF32(value, 0.1, 10)
		c.updateRate()
	case "depth":
		c.depth = clampF32(value, 0, 1)
	case "mix":
		c.mix = clampF32(value, 0, 1)
	default:
		return fmt.Errorf("chorus: unknown parameter %q", name)
	}
	return nil
}

func (c *chorus) GetParameter(name string) (float32, error) {
	switch name {
	case "rate":
		return c.rate, nil
	case "depth":
		return c.depth, nil
	case "mix":
		return c.mix, nil
	default:
		return 0, fmt.Errorf("chorus: unknown parameter %q", name)
	}
}
