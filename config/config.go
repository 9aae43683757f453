package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/ridership/core/metrics"
	"github.com/kilianp07/ridership/infra/mqtt"
	"github.com/kilianp07/ridership/infra/store"
)

type Config struct {
	Simulation SimulationConfig `json:"simulation"`
	Line       LineConfig       `json:"line"`
	Metrics    metrics.Config   `json:"metrics"`
	Store      store.Config     `json:"store"`
	// MQTT enables the run publisher when a broker is set.
	MQTT  mqtt.Config `json:"mqtt"`
	Serve ServeConfig `json:"serve"`
}

// Load reads the configuration file at path, applies K_ prefixed
// environment overrides and defaults, then validates the result. An empty
// path loads defaults and environment overrides only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// SetDefaults applies the defaults of every section.
func (c *Config) SetDefaults() {
	c.Simulation.SetDefaults()
	c.Line.SetDefaults()
	c.Metrics.SetDefaults()
	c.Store.SetDefaults()
	if c.MQTT.Broker != "" {
		c.MQTT.SetDefaults()
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	if err := c.Line.Validate(); err != nil {
		return fmt.Errorf("line: %w", err)
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if c.MQTT.Broker != "" {
		if err := c.MQTT.Validate(); err != nil {
			return err
		}
	}
	return nil
}
