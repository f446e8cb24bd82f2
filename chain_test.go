package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectChain_EmptyChainIsPassthrough(t *testing.T) {
	c := NewEffectChain(64)
	input := make([]float32, 128)
	for i := range input {
		input[i] = float32(i) / 128
	}
	output := make([]float32, 128)
	c.Process(input, output, 64)
	assert.Equal(t, input, output)
}

func TestEffectChain_AddRespectsMax(t *testing.T) {
	c := NewEffectChain(64)
	for i := 0; i < MaxChainEffects; i++ {
		e, _ := NewEffect(EffectDistortion, 48000)
		require.NoError(t, c.Add(e, -1))
	}
	e, _ := NewEffect(EffectDistortion, 48000)
	require.ErrorIs(t, c.Add(e, -1), ErrChainFull)
	assert.Equal(t, MaxChainEffects, c.Count())
}

func TestEffectChain_BypassedChainOfDistortionIsUnityGain(t *testing.T) {
	c := NewEffectChain(64)
	for i := 0; i < 20; i++ {
		e, err := NewEffect(EffectDistortion, 48000)
		require.NoError(t, err)
		e.SetBypass(true)
		require.NoError(t, c.Add(e, -1))
	}

	input := make([]float32, 128)
	for i := range input {
		input[i] = float32(i%7) / 10
	}
	output := make([]float32, 128)
	c.Process(input, output, 64)
	assert.Equal(t, input, output)
}

func TestEffectChain_AddAtPositionInserts(t *testing.T) {
	c := NewEffectChain(64)
	d, _ := NewEffect(EffectDelay, 48000)
	o, _ := NewEffect(EffectOverdrive, 48000)
	r, _ := NewEffect(EffectReverb, 48000)
	require.NoError(t, c.Add(d, -1))
	require.NoError(t, c.Add(o, -1))
	require.NoError(t, c.Add(r, 1))

	types := make([]EffectType, c.Count())
	for i := range types {
		e, err := c.At(i)
		require.NoError(t, err)
		types[i] = e.Type()
	}
	assert.Equal(t, []EffectType{EffectDelay, EffectReverb, EffectOverdrive}, types)
}

func TestEffectChain_Swap(t *testing.T) {
	c := NewEffectChain(64)
	d, _ := NewEffect(EffectDelay, 48000)
	o, _ := NewEffect(EffectOverdrive, 48000)
	require.NoError(t, c.Add(d, -1))
	require.NoError(t, c.Add(o, -1))

	require.NoError(t, c.Swap(0, 1))
	first, err := c.At(0)
	require.NoError(t, err)
	assert.Equal(t, EffectOverdrive, first.Type())

	require.Error(t, c.Swap(0, 5))
}

func TestEffectChain_RemoveAtAndMoveTo(t *testing.T) {
	c := NewEffectChain(64)
	d, _ := NewEffect(EffectDelay, 48000)
	o, _ := NewEffect(EffectOverdrive, 48000)
	require.NoError(t, c.Add(d, -1))
	require.NoError(t, c.Add(o, -1))

	require.NoError(t, c.MoveTo(1, 0))
	first, err := c.At(0)
	require.NoError(t, err)
	assert.Equal(t, EffectOverdrive, first.Type())

	require.NoError(t, c.RemoveAt(0))
	assert.Equal(t, 1, c.Count())
}

func TestEffectChain_SnapshotRestoreRoundTrip(t *testing.T) {
	c := NewEffectChain(64)
	e, _ := NewEffect(EffectDistortion, 48000)
	require.NoError(t, e.SetParameter("gain", 75))
	require.NoError(t, c.Add(e, -1))

	snap := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, EffectDistortion, snap[0].Type)
	assert.Equal(t, float32(75), snap[0].Parameters["gain"])

	c2 := NewEffectChain(64)
	c2.Restore(snap, 48000)
	require.Equal(t, 1, c2.Count())
	restored, err := c2.At(0)
	require.NoError(t, err)
	v, err := restored.GetParameter("gain")
	require.NoError(t, err)
	assert.Equal(t, float32(75), v)
}

func TestEffectChain_RestoreSkipsUnknownTypes(t *testing.T) {
	c := NewEffectChain(64)
	c.Restore([]ChainEffectSnapshot{
		{Type: "not-a-type"},
		{Type: EffectFuzz},
	}, 48000)
	assert.Equal(t, 1, c.Count())
}

// panicEffect always panics from Process, used to exercise the chain's
// recover guard.
type panicEffect struct {
	bypassBase
}

func (panicEffect) Type() EffectType                      { return "panic" }
func (panicEffect) Process(_, _ []float32, _ int)         { panic("boom") }
func (panicEffect) Parameters() []ParamDescriptor         { return nil }
func (panicEffect) SetParameter(_ string, _ float32) error { return nil }
func (panicEffect) GetParameter(_ string) (float32, error) { return 0, nil }

func TestEffectChain_PanickingEffectFallsBackToPassthrough(t *testing.T) {
	c := NewEffectChain(64)
	require.NoError(t, c.Add(&panicEffect{}, -1))

	input := make([]float32, 128)
	for i := range input {
		input[i] = float32(i) / 128
	}
	output := make([]float32, 128)
	require.NotPanics(t, func() {
		c.Process(input, output, 64)
	})
	assert.Equal(t, input, output)
}
