// dsp_helpers.go - small math helpers shared across effect implementations

package main

import "math"

// onePoleLowpassCoeff returns the feedback coefficient for a one-pole
// lowpass filter with the given cutoff at the given sample rate.
func onePoleLowpassCoeff(cutoffHz float64, sampleRate int) float32 {
	if sampleRate <= 0 {
		return 0
	}
	rc := 1.0 / (2.0 * math.Pi * cutoffHz)
	dt := 1.0 / float64(sampleRate)
	return float32(dt / (rc + dt))
}

// biquadCoeffs holds a direct-form-I biquad's normalized coefficients.
type biquadCoeffs struct {
	b0, b1, b2 float32
	a1, a2     float32
}

// biquadPeakingEQ computes RBJ peaking-EQ coefficients for the given
// center frequency, Q and gain (dB) at the given sample rate.
func biquadPeakingEQ(freqHz float64, q float64, gainDB float64, sampleRate int) biquadCoeffs {
	a := math.Pow(10, gainDB/40)
	w := 2 * math.Pi * freqHz / float64(sampleRate)
	sinW := math.Sin(w)
	cosW := math.Cos(w)
	alpha := sinW / (2 * q)

	b0 := 1 + alpha*a
	b1 := -2 * cosW
	b2 := 1 - alpha*a
	a0 := 1 + alpha/a
	a1 := -2 * cosW
	a2 := 1 - alpha/a

	return biquadCoeffs{
		b0: float32(b0 / a0),
		b1: float32(b1 / a0),
		b2: float32(b2 / a0),
		a1: float32(a1 / a0),
		a2: float32(a2 / a0),
	}
}

// biquadState is the delay line a biquad filter needs between calls.
type biquadState struct {
	x1, x2, y1, y2 float32
}

func (s *biquadState) process(c biquadCoeffs, x float32) float32 {
	y := c.b0*x + c.b1*s.x1 + c.b2*s.x2 - c.a1*s.y1 - c.a2*s.y2
	s.x2 = s.x1
	s.x1 = x
	s.y2 = s.y1
	s.y1 = y
	return y
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func dbToLinear(db float32) float32 {
	return float32(math.Pow(10, float64(db)/20))
}

func linearToDb(linear float32) float32 {
	if linear <= 0 {
		return -96.0
	}
	return float32(20 * math.Log10(float64(linear)))
}
