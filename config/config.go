// Package config loads the dashboard's YAML configuration.
//
// Loading is two-phase: the raw document is validated against a JSON schema
// first (structure, types, enum values), then unmarshalled and filled with
// defaults. Schema failures report every violation at once rather than the
// first one hit.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile storage backends.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
)

// BackendConfig locates the inference backend.
type BackendConfig struct {
	// BaseURL is the backend's REST root, e.g. "http://localhost:8080/api".
	BaseURL string `yaml:"base_url"`
	// TimeoutSeconds overrides the default API request timeout.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// TrackingConfig tunes progress tracking.
type TrackingConfig struct {
	// PollIntervalSeconds is the polling cadence when streaming is unavailable.
	PollIntervalSeconds int `yaml:"poll_interval_seconds,omitempty"`
	// DefaultSecondsPerVideo seeds ETA estimation before throughput is known.
	DefaultSecondsPerVideo int `yaml:"default_seconds_per_video,omitempty"`
}

// ProfilesConfig selects where custom profiles persist.
type ProfilesConfig struct {
	// Storage is one of memory, file, redis.
	Storage string `yaml:"storage,omitempty"`
	// Path is the JSON file location when Storage is file.
	Path string `yaml:"path,omitempty"`
	// RedisAddr is the host:port when Storage is redis.
	RedisAddr string `yaml:"redis_addr,omitempty"`
	// RedisKey overrides the default profile list key.
	RedisKey string `yaml:"redis_key,omitempty"`
}

// LoggingConfig tunes log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level,omitempty"`
}

// Config is the full dashboard configuration.
type Config struct {
	Backend  BackendConfig  `yaml:"backend"`
	Tracking TrackingConfig `yaml:"tracking,omitempty"`
	Profiles ProfilesConfig `yaml:"profiles,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:        "http://localhost:8080/api",
			TimeoutSeconds: 30,
		},
		Tracking: TrackingConfig{
			PollIntervalSeconds:    2,
			DefaultSecondsPerVideo: 180,
		},
		Profiles: ProfilesConfig{
			Storage: StorageFile,
			Path:    defaultProfilePath(),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads, schema-validates, and unmarshals a config file, then applies
// defaults for everything the file leaves unset. Environment variable
// PIPEDASH_BACKEND_URL overrides the backend URL last.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse validates and unmarshals raw YAML configuration.
func Parse(data []byte) (*Config, error) {
	if err := validateConfigSchema(data); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = def.Backend.BaseURL
	}
	if c.Backend.TimeoutSeconds == 0 {
		c.Backend.TimeoutSeconds = def.Backend.TimeoutSeconds
	}
	if c.Tracking.PollIntervalSeconds == 0 {
		c.Tracking.PollIntervalSeconds = def.Tracking.PollIntervalSeconds
	}
	if c.Tracking.DefaultSecondsPerVideo == 0 {
		c.Tracking.DefaultSecondsPerVideo = def.Tracking.DefaultSecondsPerVideo
	}
	if c.Profiles.Storage == "" {
		c.Profiles.Storage = def.Profiles.Storage
	}
	if c.Profiles.Storage == StorageFile && c.Profiles.Path == "" {
		c.Profiles.Path = def.Profiles.Path
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PIPEDASH_BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
}

// check covers the cross-field rules the schema cannot express.
func (c *Config) check() error {
	if c.Profiles.Storage == StorageRedis && c.Profiles.RedisAddr == "" {
		return fmt.Errorf("profiles.redis_addr is required when profiles.storage is %q", StorageRedis)
	}
	return nil
}

// PollInterval returns the polling cadence as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Tracking.PollIntervalSeconds) * time.Second
}

// APITimeout returns the backend request timeout as a duration.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

func defaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pipedash-profiles.json"
	}
	return home + "/.pipedash/profiles.json"
}
