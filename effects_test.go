package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var allEffectTypes = []EffectType{
	EffectDistortion, EffectOverdrive, EffectFuzz, EffectChorus,
	EffectFlanger, EffectTremolo, EffectEQ, EffectDelay, EffectReverb,
	EffectIRConvolution,
}

func TestNewEffect_AllTypesConstruct(t *testing.T) {
	for _, et := range allEffectTypes {
		e, err := NewEffect(et, 48000)
		require.NoError(t, err, "type %s", et)
		assert.Equal(t, et, e.Type())
	}
}

func TestNewEffect_UnknownTypeErrors(t *testing.T) {
	_, err := NewEffect("not-a-real-effect", 48000)
	require.ErrorIs(t, err, ErrUnknownEffectType)
}

func TestEffects_BypassIsPassthrough(t *testing.T) {
	for _, et := range allEffectTypes {
		e, err := NewEffect(et, 48000)
		require.NoError(t, err)
		e.SetBypass(true)

		input := []float32{0.1, -0.2, 0.3, -0.4}
		output := make([]float32, 4)
		e.Process(input, output, 2)
		assert.Equal(t, input, output, "type %s", et)
	}
}

func TestEffects_NeverEmitNaNOrInf(t *testing.T) {
	for _, et := range allEffectTypes {
		e, err := NewEffect(et, 48000)
		require.NoError(t, err)
		if et == EffectIRConvolution {
			e.(*irConvolution).LoadIR([]float32{1, 0.5, 0.25})
		}

		input := make([]float32, 256)
		for i := range input {
			input[i] = float32(math.Sin(float64(i)))
		}
		output := make([]float32, 256)
		e.Process(input, output, 128)

		for _, v := range output {
			assert.False(t, math.IsNaN(float64(v)), "type %s produced NaN", et)
			assert.False(t, math.IsInf(float64(v), 0), "type %s produced Inf", et)
		}
	}
}

func TestEffects_SetParameterClampsToDescriptorRange(t *testing.T) {
	for _, et := range allEffectTypes {
		e, err := NewEffect(et, 48000)
		require.NoError(t, err)

		for _, p := range e.Parameters() {
			require.NoError(t, e.SetParameter(p.Name, p.Max+1000))
			v, err := e.GetParameter(p.Name)
			require.NoError(t, err)
			assert.LessOrEqualf(t, v, p.Max, "type %s param %s", et, p.Name)

			require.NoError(t, e.SetParameter(p.Name, p.Min-1000))
			v, err = e.GetParameter(p.Name)
			require.NoError(t, err)
			assert.GreaterOrEqualf(t, v, p.Min, "type %s param %s", et, p.Name)
		}
	}
}

func TestEffects_UnknownParameterErrors(t *testing.T) {
	for _, et := range allEffectTypes {
		e, err := NewEffect(et, 48000)
		require.NoError(t, err)
		require.Error(t, e.SetParameter("does-not-exist", 1))
		_, err = e.GetParameter("does-not-exist")
		require.Error(t, err)
	}
}

// Every effect parameter always ends up within [Min, Max] no matter what
// value is requested, for any of the ten effect types.
func TestEffects_ParameterClampIsUniversal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		et := allEffectTypes[rapid.IntRange(0, len(allEffectTypes)-1).Draw(rt, "type")]
		e, err := NewEffect(et, 48000)
		if err != nil {
			rt.Fatal(err)
		}
		params := e.Parameters()
		if len(params) == 0 {
			return
		}
		p := params[rapid.IntRange(0, len(params)-1).Draw(rt, "param")]
		requested := float32(rapid.Float64Range(-1e6, 1e6).Draw(rt, "value"))

		if err := e.SetParameter(p.Name, requested); err != nil {
			rt.Fatal(err)
		}
		got, err := e.GetParameter(p.Name)
		if err != nil {
			rt.Fatal(err)
		}
		if got < p.Min || got > p.Max {
			rt.Fatalf("%s.%s = %v out of range [%v, %v]", et, p.Name, got, p.Min, p.Max)
		}
	})
}

func TestEQ_GainAtCenterFrequencyIsAudible(t *testing.T) {
	e := newEQ(48000)
	require.NoError(t, e.SetParameter("mid", 12))
	require.NoError(t, e.SetParameter("level", 0.5))

	frames := 2048
	input := make([]float32, frames*2)
	for i := 0; i < frames; i++ {
		s := float32(math.Sin(2 * math.Pi * 1000 * float64(i) / 48000))
		input[i*2] = s
		input[i*2+1] = s
	}
	output := make([]float32, frames*2)
	e.Process(input, output, frames)

	var inEnergy, outEnergy float64
	for i := frames / 2; i < frames; i++ {
		inEnergy += float64(input[i*2] * input[i*2])
		outEnergy += float64(output[i*2] * output[i*2])
	}
	assert.Greater(t, outEnergy, inEnergy, "boosted 1kHz band should have more energy than input")
}

func TestDelay_EchoAppearsAtExpectedOffset(t *testing.T) {
	d := newDelay(1000) // 1kHz sample rate so 10 samples == 10ms, easy to reason about
	require.NoError(t, d.SetParameter("time", 10))
	require.NoError(t, d.SetParameter("feedback", 0))
	require.NoError(t, d.SetParameter("mix", 1.0))

	frames := 30
	input := make([]float32, frames*2)
	input[0], input[1] = 1, 1 // single impulse on frame 0

	output := make([]float32, frames*2)
	d.Process(input, output, frames)

	assert.InDelta(t, 1.0, output[10*2], 1e-4, "echo should appear 10 samples later")
	assert.InDelta(t, 0.0, output[5*2], 1e-4)
}
