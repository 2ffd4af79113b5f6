package board

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a board description from a YAML file and validates it, turning
// a pre-baked board file on disk into the validated Config the profiler
// requires. Matching a device-tree model string to one of these files is an
// external collaborator's job, not this package's.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("board: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("board: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("board: %s: %w", path, err)
	}
	return cfg, nil
}
