package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// EncodeTOML renders cfg as a TOML document
func EncodeTOML(cfg *Config) (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.String(), nil
}

// encodeSection renders one top-level table, e.g. [scorer]
func encodeSection(name string, section any) (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(map[string]any{name: section}); err != nil {
		return "", fmt.Errorf("failed to encode %s section: %w", name, err)
	}
	return buf.String(), nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(cfg *Config, path string) error {
	content, err := EncodeTOML(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
