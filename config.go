// config.go - CLI flags layered over an optional YAML config file

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds every knob stompchain's CLI surface exposes. CLI flags
// take precedence over a loaded config file, which in turn takes
// precedence over the hardcoded defaults below.
type Config struct {
	Driver      string `yaml:"driver"`
	SampleRate  int    `yaml:"sampleRate"`
	BufferSize  int    `yaml:"bufferSize"`
	ControlAddr string `yaml:"controlAddr"`
	LogLevel    string `yaml:"logLevel"`
	Preset      string `yaml:"preset"`
}

func defaultConfig() Config {
	return Config{
		Driver:      "auto",
		SampleRate:  48000,
		BufferSize:  64,
		ControlAddr: ":8765",
		LogLevel:    "info",
	}
}

// ParseConfig builds a Config from defaults, an optional --config YAML
// file, and CLI flags (highest precedence), plus the positional driver
// name argument the original CLI accepted.
func ParseConfig(args []string) (Config, error) {
	cfg := defaultConfig()

	fs := pflag.NewFlagSet("stompchain", pflag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file")
	fs.StringVar(&cfg.Driver, "driver", cfg.Driver, "audio driver: auto, oto, null")
	fs.IntVar(&cfg.SampleRate, "sample-rate", cfg.SampleRate, "sample rate in Hz")
	fs.IntVar(&cfg.BufferSize, "buffer-size", cfg.BufferSize, "callback buffer size in frames")
	fs.StringVar(&cfg.ControlAddr, "control-addr", cfg.ControlAddr, "WebSocket control server listen address")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.Preset, "preset", cfg.Preset, "preset name to load at startup")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *configPath != "" {
		fileCfg, err := loadConfigFile(*configPath)
		if err != nil {
			return cfg, err
		}
		mergeConfigFile(&cfg, fileCfg)
		// re-parse flags so explicit CLI values still win over the file.
		if err := fs.Parse(args); err != nil {
			return cfg, err
		}
	}

	if positional := fs.Args(); len(positional) > 0 {
		cfg.Driver = positional[0]
	}

	return cfg, nil
}

func loadConfigFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("stompchain: reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("stompchain: parsing config file: %w", err)
	}
	return cfg, nil
}

// mergeConfigFile copies every non-zero field of file over cfg.
// ParseConfig re-parses the flags afterwards so explicit CLI values win.
func mergeConfigFile(cfg *Config, file Config) {
	if file.Driver != "" {
		cfg.Driver = file.Driver
	}
	if file.SampleRate != 0 {
		cfg.SampleRate = file.SampleRate
	}
	if file.BufferSize != 0 {
		cfg.BufferSize = file.BufferSize
	}
	if file.ControlAddr != "" {
		cfg.ControlAddr = file.ControlAddr
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.Preset != "" {
		cfg.Preset = file.Preset
	}
}
