package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sierpinski/internal/demo"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)

	r := cfg.Resolve()
	assert.Equal(t, demo.DefaultOptions(), r.Options)
	assert.Equal(t, DefaultFrame, r.Frame)
	assert.Empty(t, r.Theme)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
slow_down: false
delay: 2ms
tick: 500ms
frame: 33ms
theme: dark.css
`)
	cfg, err := LoadOptional(path)
	require.NoError(t, err)

	r := cfg.Resolve()
	assert.False(t, r.Options.SlowDown)
	assert.Equal(t, 2*time.Millisecond, r.Options.Delay)
	assert.Equal(t, 500*time.Millisecond, r.Options.Tick)
	assert.Equal(t, 33*time.Millisecond, r.Frame)
	assert.Equal(t, "dark.css", r.Theme)
}

func TestPartialFileKeepsOtherDefaults(t *testing.T) {
	cfg, err := LoadOptional(writeConfig(t, "delay: 100us\n"))
	require.NoError(t, err)

	r := cfg.Resolve()
	assert.True(t, r.Options.SlowDown)
	assert.Equal(t, 100*time.Microsecond, r.Options.Delay)
	assert.Equal(t, time.Second, r.Options.Tick)
}

func TestLoadErrors(t *testing.T) {
	_, err := LoadOptional(writeConfig(t, "delay: [oops\n"))
	assert.ErrorContains(t, err, "failed to parse")

	_, err = LoadOptional(writeConfig(t, "tick: -1s\n"))
	assert.ErrorContains(t, err, "tick must not be negative")
}
