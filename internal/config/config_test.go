package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "./public", cfg.StaticPath)
	assert.Equal(t, 30*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, int64(4096), cfg.ReadLimit)
	assert.Equal(t, 54*time.Second, cfg.PingPeriod)
	assert.Equal(t, 60*time.Second, cfg.PongWait)
	assert.Equal(t, 10*time.Second, cfg.WriteWait)
	assert.Equal(t, 64, cfg.SendBuffer)
	assert.False(t, cfg.Game.SharedServeAngle)
	assert.Equal(t, LogConfig{Level: "info", Format: "console", MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 28}, cfg.Log)
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
mode: debug
port: 8081
tick_interval: 16ms
game:
  shared_serve_angle: true
log:
  level: debug
  format: json
  file: /tmp/pong.log
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Mode)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, 16*time.Millisecond, cfg.TickInterval)
	assert.True(t, cfg.Game.SharedServeAngle)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/pong.log", cfg.Log.File)
	assert.Equal(t, 64, cfg.SendBuffer, "unset keys keep defaults")
}

func TestLoadFileEnvOverride(t *testing.T) {
	t.Setenv("PONG_PORT", "9999")
	t.Setenv("PONG_LOG_LEVEL", "warn")

	cfg, err := LoadFile(writeConfig(t, "port: 8081\n"))
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFileRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"broken yaml", "port: [1, 2\n"},
		{"bad port", "port: 70000\n"},
		{"zero tick", "tick_interval: 0s\n"},
		{"ping after pong", "ping_period: 2m\n"},
		{"unknown mode", "mode: turbo\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadUsesConfigEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.staging.yaml"), []byte("port: 4321\n"), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("CONFIG_ENV", "staging")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4321, cfg.Port)
}
