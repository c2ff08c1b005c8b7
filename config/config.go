// Package config loads the optional .sourcelang.yaml driver settings
// file, the way davidkellis-able's driver package loads package.yml:
// decode with unknown fields rejected, but treat a missing file as "use
// defaults" rather than an error.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultFileName = ".sourcelang.yaml"

// Config holds driver-level settings that are not part of the language
// itself: a call-depth ceiling the interpreter uses to turn runaway
// recursion into a reported Runtime Error instead of a process crash, the
// REPL's prompt and startup banner, and whether double-to-string
// rendering trims trailing zeros.
type Config struct {
	MaxCallDepth      int    `yaml:"max_call_depth"`
	Prompt            string `yaml:"prompt"`
	REPLBanner        bool   `yaml:"repl_banner"`
	TrimTrailingZeros bool   `yaml:"trim_trailing_zeros"`
}

// Default returns the settings used when no config file is present.
func Default() Config {
	return Config{MaxCallDepth: 1000, Prompt: "> ", REPLBanner: true, TrimTrailingZeros: true}
}

// Load reads path, falling back to Default() if the file does not
// exist. Any other error (permissions, malformed YAML, unknown field)
// is returned to the caller.
func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	cfg := Default()
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
