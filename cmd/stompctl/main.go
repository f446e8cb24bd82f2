// stompctl - standalone preset inspection and validation tool
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

type presetFileEffect struct {
	Type       string             `json:"type"`
	Bypassed   bool               `json:"bypassed"`
	Parameters map[string]float32 `json:"parameters"`
}

type presetFile struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Effects     []presetFileEffect `json:"effects"`
}

var knownEffectTypes = map[string]bool{
	"distortion": true, "overdrive": true, "fuzz": true, "chorus": true,
	"flanger": true, "tremolo": true, "eq": true, "delay": true,
	"reverb": true, "ir-convolution": true,
}

func main() {
	verbose := pflag.BoolP("verbose", "v", false, "print every effect's parameters")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: stompctl [options] preset.json\n\nValidates a stompchain preset file and reports its effect chain.\n\nOptions:\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(1)
	}

	path := pflag.Arg(0)
	if err := run(path, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, verbose bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var preset presetFile
	if err := json.Unmarshal(data, &preset); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(preset.Effects) > 20 {
		return fmt.Errorf("preset has %d effects, exceeds the 20-effect chain limit", len(preset.Effects))
	}

	fmt.Printf("preset: %s\n", preset.Name)
	if preset.Description != "" {
		fmt.Printf("description: %s\n", preset.Description)
	}
	fmt.Printf("effects: %d\n", len(preset.Effects))

	for i, e := range preset.Effects {
		status := "active"
		if e.Bypassed {
			status = "bypassed"
		}
		marker := ""
		if !knownEffectTypes[e.Type] {
			marker = " (unknown type - will be dropped on load)"
		}
		fmt.Printf("  %2d. %-16s %s%s\n", i+1, e.Type, status, marker)
		if verbose {
			for name, value := range e.Parameters {
				fmt.Printf("        %s = %v\n", name, value)
			}
		}
	}
	return nil
}
