package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerCachesPerComponent(t *testing.T) {
	a := NewLogger("registry")
	b := NewLogger("registry")
	c := NewLogger("dropdown")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, "dropdown", c.Data["component"])
}

func TestConfigureWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dropnav.log")
	t.Setenv("DROPNAV_LOG_LEVEL", "")
	t.Setenv("DROPNAV_LOG_FILE", "")
	Configure(Config{Level: "debug", File: path})
	t.Cleanup(func() { Configure(Config{}) })

	log := NewLogger("file-test")
	assert.Equal(t, logrus.DebugLevel, log.Logger.GetLevel())
	log.Debug("opened")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "component=file-test")
	assert.Contains(t, string(data), "opened")
}

func TestEnvLevelOverridesConfig(t *testing.T) {
	t.Setenv("DROPNAV_LOG_LEVEL", "warn")
	Configure(Config{Level: "debug"})
	t.Cleanup(func() { Configure(Config{}) })

	assert.Equal(t, logrus.WarnLevel, NewLogger("env-test").Logger.GetLevel())
}

func TestConfigureJSONFormatter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dropnav.json")
	t.Setenv("DROPNAV_LOG_LEVEL", "")
	t.Setenv("DROPNAV_LOG_FILE", "")
	Configure(Config{Level: "info", File: path, JSON: true})
	t.Cleanup(func() { Configure(Config{}) })

	NewLogger("json-test").Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"json-test"`)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestConfigureClosesPreviousFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DROPNAV_LOG_LEVEL", "")
	t.Setenv("DROPNAV_LOG_FILE", "")
	Configure(Config{File: filepath.Join(dir, "first.log")})
	t.Cleanup(func() { Configure(Config{}) })
	NewLogger("rotate-test")

	first, ok := sink.(*os.File)
	require.True(t, ok, "expected an open log file")

	Configure(Config{File: filepath.Join(dir, "second.log")})
	_, err := first.WriteString("late\n")
	assert.Error(t, err, "first log file should be closed")

	Configure(Config{})
	assert.Nil(t, sink)
}
