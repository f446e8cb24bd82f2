// preset.go - preset save/load using real JSON instead of a hand-rolled parser

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// presetFileEffect mirrors ChainEffectSnapshot in a JSON-friendly shape.
type presetFileEffect struct {
	Type       EffectType         `json:"type"`
	Bypassed   bool               `json:"bypassed"`
	Parameters map[string]float32 `json:"parameters"`
}

// presetFile is the on-disk representation of a preset.
type presetFile struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Effects     []presetFileEffect `json:"effects"`
}

// PresetDir is the default directory presets are read from and written to.
const PresetDir = "presets"

// SavePreset serializes the chain's current state to
// <dir>/<name>.json.
func SavePreset(dir, name, description string, chain *EffectChain) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("stompchain: creating preset dir: %w", err)
	}

	snap := chain.Snapshot()
	file := presetFile{Name: name, Description: description}
	for _, s := range snap {
		file.Effects = append(file.Effects, presetFileEffect{
			Type:       s.Type,
			Bypassed:   s.Bypassed,
			Parameters: s.Parameters,
		})
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("stompchain: encoding preset: %w", err)
	}

	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("stompchain: writing preset: %w", err)
	}
	return nil
}

// LoadPreset reads <dir>/<name>.json and restores chain's contents from
// it. Unknown effect types in the file are silently dropped, matching the
// original preset loader's behavior for unrecognized entries.
func LoadPreset(dir, name string, chain *EffectChain, sampleRate int) error {
	path := filepath.Join(dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("stompchain: reading preset: %w", err)
	}

	var file presetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("stompchain: decoding preset: %w", err)
	}

	snap := make([]ChainEffectSnapshot, 0, len(file.Effects))
	for _, e := range file.Effects {
		snap = append(snap, ChainEffectSnapshot{
			Type:       e.Type,
			Bypassed:   e.Bypassed,
			Parameters: e.Parameters,
		})
	}
	chain.Restore(snap, sampleRate)
	return nil
}
