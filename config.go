package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "blockscan.yaml"

// Bounds restricts the scan to a chunk-grid rectangle, inclusive on all
// sides. Nil bounds means the whole world.
type Bounds struct {
	MinX int `yaml:"minX"`
	MaxX int `yaml:"maxX"`
	MinZ int `yaml:"minZ"`
	MaxZ int `yaml:"maxZ"`
}

func (b *Bounds) Contains(cx, cz int) bool {
	if b == nil {
		return true
	}
	return cx >= b.MinX && cx <= b.MaxX && cz >= b.MinZ && cz <= b.MaxZ
}

// Config maps world names to their region directories, plus optional file
// name filters and chunk bounds.
type Config struct {
	Worlds  map[string]string `yaml:"worlds"`
	Filters []string          `yaml:"filters"`
	Bounds  *Bounds           `yaml:"bounds"`
}

func (c *Config) regionDir(world string) (string, error) {
	dir, ok := c.Worlds[world]
	if !ok {
		return "", errors.Errorf("world %q is not configured (add it to the worlds map or pass -regions)", world)
	}
	return dir, nil
}

// loadConfig reads a YAML config. A missing file at the default path is not
// an error, so flag-only runs work without one.
func loadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == defaultConfigPath {
			return &Config{Worlds: map[string]string{}}, nil
		}
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if cfg.Worlds == nil {
		cfg.Worlds = map[string]string{}
	}
	return cfg, nil
}
