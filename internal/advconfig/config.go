// Package advconfig loads the small JSON settings file the validator CLI
// accepts via --config, adapted from a user/project settings.json loader
// down to the single-file case that tool needs.
package advconfig

import (
	"encoding/json"
	"os"

	"github.com/commelec/agent-core/pkg/wire"
)

// Config holds the decode resource limits and log level a CLI invocation
// may override from their package defaults.
type Config struct {
	TraversalLimitWords int    `json:"traversal_limit_words,omitempty"`
	MaxNestingDepth     int    `json:"max_nesting_depth,omitempty"`
	LogLevel            string `json:"log_level,omitempty"`
}

// Default returns the package defaults every field falls back to when a
// config file omits it or none is supplied.
func Default() Config {
	return Config{
		TraversalLimitWords: wire.DefaultTraversalLimitWords,
		MaxNestingDepth:     wire.DefaultMaxNestingDepth,
		LogLevel:            "info",
	}
}

// Load reads a JSON config file at path and overlays it on top of Default().
// A missing file is not an error — callers that never pass --config get the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DecodeOptions converts the loaded config into wire.DecodeOptions.
func (c Config) DecodeOptions() wire.DecodeOptions {
	return wire.DecodeOptions{
		TraversalLimitWords: c.TraversalLimitWords,
		MaxNestingDepth:     c.MaxNestingDepth,
	}
}
