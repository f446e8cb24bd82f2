package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_InitializeWithNullDriver(t *testing.T) {
	e := NewEngine(48000, 64)
	require.NoError(t, e.Initialize("null", 48000, 64))
	assert.Equal(t, "null", e.ActiveDriverName())
}

func TestEngine_StartStopIdempotent(t *testing.T) {
	e := NewEngine(48000, 64)
	require.NoError(t, e.Initialize("null", 48000, 64))
	require.NoError(t, e.Start())
	require.NoError(t, e.Start())
	assert.True(t, e.IsRunning())

	require.NoError(t, e.Stop())
	require.NoError(t, e.Stop())
	assert.False(t, e.IsRunning())
}

func TestEngine_UnknownDriverNameErrors(t *testing.T) {
	e := NewEngine(48000, 64)
	err := e.Initialize("not-a-driver", 48000, 64)
	require.Error(t, err)
}

func TestEngine_StartWithoutInitializeErrors(t *testing.T) {
	e := NewEngine(48000, 64)
	err := e.Start()
	require.ErrorIs(t, err, ErrDriverUnavailable)
}

func TestEngine_ManagerOperatesOnPipelineChain(t *testing.T) {
	e := NewEngine(48000, 64)
	require.NoError(t, e.Initialize("null", 48000, 64))
	_, err := e.Manager().AddEffect(EffectChorus, "", -1, "")
	require.NoError(t, err)
	assert.Equal(t, 1, e.Pipeline().Chain().Count())
}
