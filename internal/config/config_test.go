package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sceneflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
catalog: ./exhibit
tick_rate: "30"
audio:
  enabled: false
redis:
  addr: localhost:6379
  status_ttl: 1m
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./exhibit", cfg.Catalog)
	assert.Equal(t, 30.0, cfg.TickRate)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 44100, cfg.Audio.SampleRate, "untouched keys keep their default")
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "sceneflow:", cfg.Redis.Prefix)
	assert.Equal(t, time.Minute, cfg.Redis.StatusTTL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "catalog: ./exhibit\nlog_level: info\n")
	t.Setenv("SCENEFLOW_LOG_LEVEL", "debug")
	t.Setenv("SCENEFLOW_MQTT_BROKER", "tcp://broker:1883")
	t.Setenv("SCENEFLOW_REDIS_STATUS_TTL", "5s")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "./exhibit", cfg.Catalog)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "tcp://broker:1883", cfg.MQTT.Broker)
	assert.Equal(t, 5*time.Second, cfg.Redis.StatusTTL)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown key":   "catalgo: ./exhibit\n",
		"bad duration":  "redis:\n  status_ttl: soon\n",
		"bad tick rate": "tick_rate: 0\n",
		"bad log level": "log_level: loud\n",
		"not yaml":      "catalog: [",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Catalog = ""
	cfg.TickRate = -1
	cfg.MQTT.Broker = "tcp://broker:1883"
	cfg.MQTT.TopicPrefix = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog is required")
	assert.Contains(t, err.Error(), "tick_rate")
	assert.Contains(t, err.Error(), "mqtt.topic_prefix")
}
