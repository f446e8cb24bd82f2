// effect_irconvolution.go - impulse-response convolution (cabinet/room sims)

package main

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// fftConvolutionThreshold is the IR tap count above which block FFT
// overlap-add is used instead of direct time-domain convolution.
const fftConvolutionThreshold = 128

const irHistorySize = 4096

type irConvolution struct {
	bypassBase
	mix      float32
	ir       []float32
	history  [2][]float32
	histPos  [2]int
	fft      *fourier.FFT
	fftN     int
}

func newIRConvolution(sampleRate int) *irConvolution {
	c := &irConvolution{
		bypassBase: bypassBase{sampleRate: sampleRate},
		mix:        1.0,
	}
	c.history[0] = make([]float32, irHistorySize)
	c.history[1] = make([]float32, irHistorySize)
	return c
}

func (c *irConvolution) Type() EffectType { return EffectIRConvolution }

// LoadIR installs a new impulse response. Reading the IR from a file or
// NAM-style container is an external concern; callers provide raw taps.
func (c *irConvolution) LoadIR(samples []float32) {
	c.ir = samples
	blockSize := 512
	n := blockSize + len(samples)
	size := 1
	for size < n {
		size <<= 1
	}
	c.fftN = size
	c.fft = fourier.NewFFT(size)
}

func (c *irConvolution) Process(input, output []float32, frames int) {
	if c.bypass || len(c.ir) == 0 {
		copyStereo(input, output, frames)
		return
	}

	dryMix := 1 - c.mix
	if len(c.ir) > fftConvolutionThreshold {
		c.processFFT(input, output, frames, dryMix)
	} else {
		c.processDirect(input, output, frames, dryMix)
	}
}

func (c *irConvolution) processDirect(input, output []float32, frames int, dryMix float32) {
	for i := 0; i < frames; i++ {
		for ch := 0; ch < 2; ch++ {
			idx := i*2 + ch
			if idx >= len(input) || idx >= len(output) {
				continue
			}
			hist := c.history[ch]
			size := len(hist)
			hist[c.histPos[ch]] = input[idx]

			var acc float32
			for j, tap := range c.ir {
				readPos := (c.histPos[ch] - j + size) % size
				acc += hist[readPos] * tap
			}
			c.histPos[ch] = (c.histPos[ch] + 1) % size

			output[idx] = sanitize(input[idx]*dryMix + acc*c.mix)
		}
	}
}

// processFFT convolves each channel's current block against the IR using
// zero-padded FFT multiplication, keeping the first frames outputs and
// discarding the tail that extends past the block — a block-wise
// approximation of continuous overlap-add, adequate for long cabinet/room
// impulse responses where per-sample streaming state would cost more than
// it buys.
func (c *irConvolution) processFFT(input, output []float32, frames int, dryMix float32) {
	if c.fft == nil {
		c.processDirect(input, output, frames, dryMix)
		return
	}
	for ch := 0; ch < 2; ch++ {
		block := make([]float64, c.fftN)
		for i := 0; i < frames; i++ {
			idx := i*2 + ch
			if idx < len(input) {
				block[i] = float64(input[idx])
			}
		}
		irPadded := make([]float64, c.fftN)
		for i, tap := range c.ir {
			irPadded[i] = float64(tap)
		}

		blockSpec := c.fft.Coefficients(nil, block)
		irSpec := c.fft.Coefficients(nil, irPadded)
		for i := range blockSpec {
			blockSpec[i] *= irSpec[i]
		}
		convolved := c.fft.Sequence(nil, blockSpec)

		for i := 0; i < frames; i++ {
			idx := i*2 + ch
			if idx >= len(input) || idx >= len(output) {
				continue
			}
			wet := float32(convolved[i]) / float32(c.fftN)
			output[idx] = sanitize(input[idx]*dryMix + wet*c.mix)
		}
	}
}

func (c *irConvolution) Parameters() []ParamDescriptor {
	return []ParamDescriptor{
		{Name: "mix", Label: "Mix", Min: 0, Max: 1, Default: 1.0, Value: c.mix},
	}
}

func (c *irConvolution) SetParameter(name string, value float32) error {
	switch name {
	case "mix":
		c.mix = clampF32(value, 0, 1)
	default:
		return fmt.Errorf("ir-convolution: unknown parameter %q", name)
	}
	return nil
}

func (c *irConvolution) GetParameter(name string) (float32, error) {
	switch name {
	case "mix":
		return c.mix, nil
	default:
		return 0, fmt.Errorf("ir-convolution: unknown parameter %q", name)
	}
}
