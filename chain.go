// chain.go - ordered, live-mutable sequence of effects

package main

import (
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// MaxChainEffects bounds how many effects a single chain processes per
// callback, matching the ceiling the original engine enforced to keep a
// worst-case callback bounded.
const MaxChainEffects = 20

var ErrChainFull = errors.New("stompchain: effect chain is full")

// ChainEffectSnapshot captures one effect's type, bypass state and
// parameter values for preset save/load.
type ChainEffectSnapshot struct {
	Type       EffectType
	Bypassed   bool
	Parameters map[string]float32
}

// EffectChain is a mutex-guarded, ordered sequence of effects processed
// front to back with ping-pong scratch buffers so no intermediate
// allocation happens on the audio thread.
type EffectChain struct {
	mu      sync.Mutex
	effects []Effect

	scratchA []float32
	scratchB []float32
}

// NewEffectChain returns an empty chain whose scratch buffers are sized
// for bufferSize interleaved-stereo samples.
func NewEffectChain(bufferSize int) *EffectChain {
	return &EffectChain{
		scratchA: make([]float32, bufferSize*2),
		scratchB: make([]float32, bufferSize*2),
	}
}

// Resize reallocates scratch buffers for a new buffer size. Safe to call
// concurrently with Process; both hold c.mu for their full duration.
func (c *EffectChain) Resize(bufferSize int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scratchA = make([]float32, bufferSize*2)
	c.scratchB = make([]float32, bufferSize*2)
}

// Add inserts e at position pos. A negative pos, or one at or beyond the
// current length, appends to the end — matching the original engine's
// "insert at size_t(-1) means append" convention. Returns ErrChainFull
// once MaxChainEffects is reached.
func (c *EffectChain) Add(e Effect, pos int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.effects) >= MaxChainEffects {
		return ErrChainFull
	}
	if pos < 0 || pos >= len(c.effects) {
		c.effects = append(c.effects, e)
		return nil
	}
	c.effects = append(c.effects, nil)
	copy(c.effects[pos+1:], c.effects[pos:])
	c.effects[pos] = e
	return nil
}

// Swap exchanges the effects at positions i and j.
func (c *EffectChain) Swap(i, j int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.effects) || j < 0 || j >= len(c.effects) {
		return fmt.Errorf("stompchain: chain index out of range")
	}
	c.effects[i], c.effects[j] = c.effects[j], c.effects[i]
	return nil
}

// RemoveAt removes the effect at position i.
func (c *EffectChain) RemoveAt(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.effects) {
		return fmt.Errorf("stompchain: chain index %d out of range", i)
	}
	c.effects = append(c.effects[:i], c.effects[i+1:]...)
	return nil
}

// MoveTo relocates the effect at position from to position to.
func (c *EffectChain) MoveTo(from, to int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if from < 0 || from >= len(c.effects) || to < 0 || to >= len(c.effects) {
		return fmt.Errorf("stompchain: chain index out of range")
	}
	e := c.effects[from]
	c.effects = append(c.effects[:from], c.effects[from+1:]...)
	c.effects = append(c.effects[:to], append([]Effect{e}, c.effects[to:]...)...)
	return nil
}

// Clear empties the chain.
func (c *EffectChain) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.effects = nil
}

// At returns the effect at position i.
func (c *EffectChain) At(i int) (Effect, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.effects) {
		return nil, fmt.Errorf("stompchain: chain index %d out of range", i)
	}
	return c.effects[i], nil
}

// Count returns the number of effects currently in the chain.
func (c *EffectChain) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.effects)
}

// Process runs input through every effect in order and writes the result
// to output, ping-ponging between the chain's two preallocated scratch
// buffers so no effect ever allocates. The mutex is held for the entire
// call, not just the effects-slice read: mutation methods reuse the
// backing array in place (RemoveAt, MoveTo, Add's insert-shift), so a
// reader holding a stale slice header while a mutation runs concurrently
// would be a data race, not just a logic bug. One buffer's worth of DSP
// work — on the order of a millisecond — is an acceptable upper bound on
// how long a mutation call may block, matching the original engine's
// lock_guard scope.
//
// A recover guard wraps the per-effect loop as a last-resort safety net:
// it is never expected to fire, and a panicking effect is a bug, but the
// audio thread must keep producing a buffer every callback regardless, so
// a panic degrades to a silent passthrough rather than killing the engine.
func (c *EffectChain) Process(input, output []float32, frames int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := frames * 2
	if len(c.effects) == 0 {
		copyStereo(input, output, frames)
		return
	}

	limit := len(c.effects)
	if limit > MaxChainEffects {
		limit = MaxChainEffects
	}

	result, ok := c.runEffects(c.effects[:limit], input, n, frames)
	if !ok {
		copyStereo(input, output, frames)
		return
	}
	copy(output[:n], result[:n])
}

func (c *EffectChain) runEffects(effects []Effect, input []float32, n, frames int) (result []float32, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("effect chain panicked, falling back to passthrough")
			result, ok = nil, false
		}
	}()

	scratch := [2][]float32{c.scratchA, c.scratchB}
	current := input
	dstIdx := 0
	for _, e := range effects {
		dst := scratch[dstIdx]
		if e.Bypassed() {
			copy(dst[:n], current[:n])
		} else {
			e.Process(current, dst, frames)
		}
		current = dst
		dstIdx = 1 - dstIdx
	}
	return current, true
}

// Snapshot captures the chain's current state for preset serialization.
func (c *EffectChain) Snapshot() []ChainEffectSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]ChainEffectSnapshot, 0, len(c.effects))
	for _, e := range c.effects {
		params := make(map[string]float32)
		for _, p := range e.Parameters() {
			params[p.Name] = p.Value
		}
		out = append(out, ChainEffectSnapshot{
			Type:       e.Type(),
			Bypassed:   e.Bypassed(),
			Parameters: params,
		})
	}
	return out
}

// Restore replaces the chain's contents with the effects described by
// snapshots. Unknown effect types are skipped, matching the original
// preset loader's silent-drop behavior for unrecognized entries.
func (c *EffectChain) Restore(snapshots []ChainEffectSnapshot, sampleRate int) {
	effects := make([]Effect, 0, len(snapshots))
	for _, s := range snapshots {
		e, err := NewEffect(s.Type, sampleRate)
		if err != nil {
			continue
		}
		e.SetBypass(s.Bypassed)
		for name, value := range s.Parameters {
			_ = e.SetParameter(name, value)
		}
		effects = append(effects, e)
	}

	c.mu.Lock()
	c.effects = effects
	c.mu.Unlock()
}
