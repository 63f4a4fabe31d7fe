package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultAddr           = ":8080"
	DefaultModelsDir      = "~/models/fasttext"
	DefaultMaxQueueDepth  = 32
	DefaultMaxInflight    = 4
	DefaultMaxWaitMS      = 30000
	DefaultDrainTimeoutMS = 5000
	DefaultMaxK           = 100
	DefaultMaxBatch       = 512
	DefaultMaxBodyBytes   = 1 << 20
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
)

// CORS configures the opt-in CORS middleware.
type CORS struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	Addr         string   `json:"addr" yaml:"addr" toml:"addr"`
	ModelsDir    string   `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	DefaultModel string   `json:"default_model" yaml:"default_model" toml:"default_model"`
	Preload      []string `json:"preload" yaml:"preload" toml:"preload"`

	// Memory budget for loaded models, estimated from file sizes. 0 = unlimited.
	BudgetMB int `json:"budget_mb" yaml:"budget_mb" toml:"budget_mb"`
	MarginMB int `json:"margin_mb" yaml:"margin_mb" toml:"margin_mb"`

	MaxQueueDepth  int `json:"max_queue_depth" yaml:"max_queue_depth" toml:"max_queue_depth"`
	MaxInflight    int `json:"max_inflight" yaml:"max_inflight" toml:"max_inflight"`
	MaxWaitMS      int `json:"max_wait_ms" yaml:"max_wait_ms" toml:"max_wait_ms"`
	DrainTimeoutMS int `json:"drain_timeout_ms" yaml:"drain_timeout_ms" toml:"drain_timeout_ms"`
	// Per-request deadline for read endpoints. 0 = none.
	RequestTimeoutMS int `json:"request_timeout_ms" yaml:"request_timeout_ms" toml:"request_timeout_ms"`

	MaxK     int `json:"max_k" yaml:"max_k" toml:"max_k"`
	MaxBatch int `json:"max_batch" yaml:"max_batch" toml:"max_batch"`
	// Unicode normalization of request text: "", "nfc" or "nfkc".
	Normalize string `json:"normalize" yaml:"normalize" toml:"normalize"`

	LogLevel     string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogFormat    string `json:"log_format" yaml:"log_format" toml:"log_format"`
	MaxBodyBytes int64  `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORS         CORS   `json:"cors" yaml:"cors" toml:"cors"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.ModelsDir == "" {
		c.ModelsDir = DefaultModelsDir
	}
	if c.MaxQueueDepth <= 0 {
		c.MaxQueueDepth = DefaultMaxQueueDepth
	}
	if c.MaxInflight <= 0 {
		c.MaxInflight = DefaultMaxInflight
	}
	if c.MaxWaitMS <= 0 {
		c.MaxWaitMS = DefaultMaxWaitMS
	}
	if c.DrainTimeoutMS <= 0 {
		c.DrainTimeoutMS = DefaultDrainTimeoutMS
	}
	if c.MaxK <= 0 {
		c.MaxK = DefaultMaxK
	}
	if c.MaxBatch <= 0 {
		c.MaxBatch = DefaultMaxBatch
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	c.Normalize = strings.ToLower(c.Normalize)
}

// Validate rejects values ApplyDefaults cannot repair.
func (c Config) Validate() error {
	switch c.Normalize {
	case "", "nfc", "nfkc":
	default:
		return fmt.Errorf("normalize: unsupported form %q (want nfc or nfkc)", c.Normalize)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format: unsupported %q (want console or json)", c.LogFormat)
	}
	if c.BudgetMB < 0 || c.MarginMB < 0 {
		return fmt.Errorf("budget_mb and margin_mb must not be negative")
	}
	if c.BudgetMB > 0 && c.MarginMB >= c.BudgetMB {
		return fmt.Errorf("margin_mb (%d) must be below budget_mb (%d)", c.MarginMB, c.BudgetMB)
	}
	return nil
}

// MaxWait returns MaxWaitMS as a duration.
func (c Config) MaxWait() time.Duration { return time.Duration(c.MaxWaitMS) * time.Millisecond }

// DrainTimeout returns DrainTimeoutMS as a duration.
func (c Config) DrainTimeout() time.Duration {
	return time.Duration(c.DrainTimeoutMS) * time.Millisecond
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}
