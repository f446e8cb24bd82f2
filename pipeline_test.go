package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_PassthroughAtUnityGain(t *testing.T) {
	p := NewPipeline(48000, 64)
	input := make([]float32, 128)
	for i := range input {
		input[i] = float32(i%5) / 10
	}
	output := make([]float32, 128)
	p.Process(input, output, 64)
	assert.InDeltaSlice(t, toFloat64(input), toFloat64(output), 1e-5)
}

func TestPipeline_InputGainScalesSignal(t *testing.T) {
	p := NewPipeline(48000, 64)
	p.SetInputGainDB(20) // 10x linear
	input := make([]float32, 128)
	for i := range input {
		input[i] = 0.01
	}
	output := make([]float32, 128)
	p.Process(input, output, 64)
	assert.InDelta(t, 0.1, output[0], 1e-3)
}

func TestPipeline_StatsAccumulateSamples(t *testing.T) {
	p := NewPipeline(48000, 64)
	input := make([]float32, 128)
	output := make([]float32, 128)
	p.Process(input, output, 64)
	p.Process(input, output, 64)
	stats := p.Stats()
	assert.Equal(t, uint64(128), stats.SamplesProcessed)
}

func TestPipeline_ToneGeneratorSubstitutesForInput(t *testing.T) {
	p := NewPipeline(48000, 64)
	p.Tone().SetEnabled(true)
	input := make([]float32, 128) // silence
	output := make([]float32, 128)
	p.Process(input, output, 64)

	var nonzero bool
	for _, v := range output {
		if v != 0 {
			nonzero = true
			break
		}
	}
	assert.True(t, nonzero, "tone generator should produce signal even with silent input")
}

func TestPipeline_ProcessesChainPopulatedByManager(t *testing.T) {
	p := NewPipeline(48000, 64)
	mgr := NewEffectManager(p.Chain(), 48000)
	_, err := mgr.AddEffect(EffectDistortion, "", -1, "")
	require.NoError(t, err)

	input := make([]float32, 128)
	output := make([]float32, 128)
	p.Process(input, output, 64)
	assert.Equal(t, 1, p.Chain().Count())
}
