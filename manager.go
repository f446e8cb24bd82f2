// manager.go - stable external effect IDs layered over an effect chain

package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var ErrUnknownEffectID = errors.New("stompchain: unknown effect id")

// PreviewIDPrefix marks an effect id as a preview-only insert: adding one
// enables the test tone generator so a user can audition an effect chain
// with no live input signal; removing the last one disables it again.
const PreviewIDPrefix = "preview-"

// EffectManager maps stable string ids onto positions in an EffectChain.
// The chain itself is unaware of ids; the manager keeps a
// position cache that is refreshed on every mutation and falls back to a
// linear scan if a cached index goes stale.
type EffectManager struct {
	mu         sync.Mutex
	chain      *EffectChain
	sampleRate int
	ids        []string // ids[i] is the id of the effect at chain position i
	positions  map[string]int
}

// NewEffectManager wraps chain with id-based addressing.
func NewEffectManager(chain *EffectChain, sampleRate int) *EffectManager {
	return &EffectManager{
		chain:      chain,
		sampleRate: sampleRate,
		positions:  make(map[string]int),
	}
}

func (m *EffectManager) reindexLocked() {
	m.positions = make(map[string]int, len(m.ids))
	for i, id := range m.ids {
		m.positions[id] = i
	}
}

// AddEffect creates an effect of the given type, inserts it at position
// (a negative or out-of-range position appends to the end), and returns
// the id it was stored under. pedalID identifies which physical control
// surface the effect belongs to from the client's point of view; the
// manager does not interpret it, only carries it through, matching the
// original engine's addEffect signature. If requestedID is non-empty and
// not already in use, it is reused verbatim; otherwise a fresh UUID is
// generated.
func (m *EffectManager) AddEffect(effectType EffectType, pedalID string, position int, requestedID string) (string, error) {
	e, err := NewEffect(effectType, m.sampleRate)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := requestedID
	if id == "" {
		id = uuid.NewString()
	} else if _, exists := m.positions[id]; exists {
		id = uuid.NewString()
	}

	if err := m.chain.Add(e, position); err != nil {
		return "", err
	}

	if position < 0 || position >= len(m.ids) {
		m.ids = append(m.ids, id)
	} else {
		m.ids = append(m.ids, "")
		copy(m.ids[position+1:], m.ids[position:])
		m.ids[position] = id
	}
	m.reindexLocked()
	return id, nil
}

// RemoveEffect removes the effect with the given id.
func (m *EffectManager) RemoveEffect(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, err := m.indexOfLocked(id)
	if err != nil {
		return err
	}
	if err := m.chain.RemoveAt(idx); err != nil {
		return err
	}
	m.ids = append(m.ids[:idx], m.ids[idx+1:]...)
	m.reindexLocked()
	return nil
}

// MoveEffect relocates the effect with the given id to position to.
func (m *EffectManager) MoveEffect(id string, to int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, err := m.indexOfLocked(id)
	if err != nil {
		return err
	}
	if to < 0 || to >= len(m.ids) {
		return fmt.Errorf("stompchain: move target %d out of range", to)
	}
	if err := m.chain.MoveTo(idx, to); err != nil {
		return err
	}
	movedID := m.ids[idx]
	m.ids = append(m.ids[:idx], m.ids[idx+1:]...)
	m.ids = append(m.ids[:to], append([]string{movedID}, m.ids[to:]...)...)
	m.reindexLocked()
	return nil
}

// SetParameter sets a named parameter on the effect with the given id.
func (m *EffectManager) SetParameter(id, name string, value float32) error {
	m.mu.Lock()
	idx, err := m.indexOfLocked(id)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	e, err := m.chain.At(idx)
	if err != nil {
		return err
	}
	return e.SetParameter(name, value)
}

// ToggleBypass sets the bypass flag of the effect with the given id to
// bypass.
func (m *EffectManager) ToggleBypass(id string, bypass bool) error {
	m.mu.Lock()
	idx, err := m.indexOfLocked(id)
	m.mu.Unlock()
	if err != nil {
		return err
	}
	e, err := m.chain.At(idx)
	if err != nil {
		return err
	}
	e.SetBypass(bypass)
	return nil
}

// IsPreviewID reports whether id follows the preview-insert naming
// convention.
func IsPreviewID(id string) bool {
	return strings.HasPrefix(id, PreviewIDPrefix)
}

// HasAnyPreviewEffect reports whether any currently-registered id is a
// preview id.
func (m *EffectManager) HasAnyPreviewEffect() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.ids {
		if IsPreviewID(id) {
			return true
		}
	}
	return false
}

// indexOfLocked resolves id to a chain position, trying the position
// cache first and falling back to a linear scan if it is stale. Caller
// must hold m.mu.
func (m *EffectManager) indexOfLocked(id string) (int, error) {
	if idx, ok := m.positions[id]; ok && idx < len(m.ids) && m.ids[idx] == id {
		return idx, nil
	}
	for i, candidate := range m.ids {
		if candidate == id {
			m.positions[id] = i
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEffectID, id)
}

// IDs returns the ids of every effect currently in the chain, in order.
func (m *EffectManager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.ids))
	copy(out, m.ids)
	return out
}
