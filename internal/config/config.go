// Package config loads the host configuration of a sceneflow installation.
//
// Values are layered: defaults, then the YAML file, then SCENEFLOW_* environment
// variables. The result is checked by Validate.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/sceneflow/internal/logging"
	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = "sceneflow.yaml"

// Config is the host configuration.
type Config struct {
	// Catalog is a scene directory (Loam) or a single .yaml catalog file.
	Catalog string `mapstructure:"catalog" env:"SCENEFLOW_CATALOG"`
	// Entry overrides the is_entry flag of the catalog.
	Entry    string  `mapstructure:"entry" env:"SCENEFLOW_ENTRY"`
	TickRate float64 `mapstructure:"tick_rate" env:"SCENEFLOW_TICK_RATE"`
	LogLevel string  `mapstructure:"log_level" env:"SCENEFLOW_LOG_LEVEL"`

	Audio AudioConfig `mapstructure:"audio"`
	HTTP  HTTPConfig  `mapstructure:"http"`
	Redis RedisConfig `mapstructure:"redis"`
	MQTT  MQTTConfig  `mapstructure:"mqtt"`
}

type AudioConfig struct {
	Enabled    bool `mapstructure:"enabled" env:"SCENEFLOW_AUDIO_ENABLED"`
	SampleRate int  `mapstructure:"sample_rate" env:"SCENEFLOW_AUDIO_SAMPLE_RATE"`
}

// HTTPConfig enables the operator API when Addr is set.
type HTTPConfig struct {
	Addr string `mapstructure:"addr" env:"SCENEFLOW_HTTP_ADDR"`
}

// RedisConfig enables remote buttons and the status mirror when Addr is set.
type RedisConfig struct {
	Addr      string        `mapstructure:"addr" env:"SCENEFLOW_REDIS_ADDR"`
	Prefix    string        `mapstructure:"prefix" env:"SCENEFLOW_REDIS_PREFIX"`
	StatusTTL time.Duration `mapstructure:"status_ttl" env:"SCENEFLOW_REDIS_STATUS_TTL"`
}

// MQTTConfig enables MQTT buttons when Broker is set.
type MQTTConfig struct {
	Broker      string `mapstructure:"broker" env:"SCENEFLOW_MQTT_BROKER"`
	TopicPrefix string `mapstructure:"topic_prefix" env:"SCENEFLOW_MQTT_TOPIC_PREFIX"`
	ClientID    string `mapstructure:"client_id" env:"SCENEFLOW_MQTT_CLIENT_ID"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Catalog:  ".",
		TickRate: 60,
		LogLevel: "info",
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
		},
		Redis: RedisConfig{
			Prefix:    "sceneflow:",
			StatusTTL: 30 * time.Second,
		},
		MQTT: MQTTConfig{
			TopicPrefix: "sceneflow",
			ClientID:    "sceneflow",
		},
	}
}

// Load reads path (when not empty) over the defaults, then applies the environment.
// When path is empty, DefaultFile is used if it exists.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := Decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode merges YAML data into cfg. Unknown keys are rejected; durations
// are written as strings ("30s").
func Decode(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if raw == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.Catalog == "" {
		errs = append(errs, errors.New("catalog is required"))
	}
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %v", c.TickRate))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate))
	}
	if c.Redis.StatusTTL < 0 {
		errs = append(errs, fmt.Errorf("redis.status_ttl must not be negative, got %s", c.Redis.StatusTTL))
	}
	if c.MQTT.Broker != "" && c.MQTT.TopicPrefix == "" {
		errs = append(errs, errors.New("mqtt.topic_prefix is required when mqtt.broker is set"))
	}
	return errors.Join(errs...)
}
