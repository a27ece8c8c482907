package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go-keybed/binding"
)

// KeyboardConfig holds the on-screen keyboard geometry and note anchoring.
type KeyboardConfig struct {
	BaseNote       int     `json:"baseNote"`
	WhiteKeyWidth  float64 `json:"whiteKeyWidth"`
	WhiteKeyHeight float64 `json:"whiteKeyHeight"`
	MarginX        float64 `json:"marginX,omitempty"`
	MarginY        float64 `json:"marginY,omitempty"`
}

// BindingConfig selects the physical-key layout. CustomOffsets are semitone
// offsets from the C below the base note and apply to the extended layouts.
type BindingConfig struct {
	Layout        binding.Layout `json:"layout"`
	CustomOffsets map[string]int `json:"customOffsets,omitempty"`
}

// MIDIConfig names the preferred output port (substring match).
type MIDIConfig struct {
	PortName string `json:"portName,omitempty"`
}

// UIConfig stores UI preferences.
type UIConfig struct {
	Palette string `json:"palette,omitempty"`
	Debug   bool   `json:"debug,omitempty"`
}

// Config is the main configuration structure.
type Config struct {
	Keyboard KeyboardConfig `json:"keyboard"`
	Binding  BindingConfig  `json:"binding"`
	MIDI     MIDIConfig     `json:"midi,omitempty"`
	UI       UIConfig       `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults: terminal-cell key
// sizes anchored at middle C with the double-row qwerty layout.
func DefaultConfig() *Config {
	return &Config{
		Keyboard: KeyboardConfig{
			BaseNote:       60,
			WhiteKeyWidth:  6,
			WhiteKeyHeight: 10,
		},
		Binding: BindingConfig{
			Layout: binding.LayoutDoubleRow,
		},
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-keybed"), nil
}

// ConfigPath returns the full path to config.json.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path, falling back to
// defaults when the file does not exist.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
