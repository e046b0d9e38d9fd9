package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))

	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, "./npcedlogs", GetString("logsDir"))
	assert.Equal(t, "bot_spawn_commands.txt", GetString("dataFile"))
	assert.Equal(t, "workspace.json", GetString("workspaceFile"))
	assert.Equal(t, true, GetBool("history.enabled"))
	assert.Equal(t, 50, GetInt("history.keep"))
	assert.Equal(t, "sqlite", GetString("history.db.type"))
	assert.Equal(t, "./npced_history.db", GetString("history.db.path"))
	assert.Equal(t, "localhost", GetString("history.db.host"))
	assert.Equal(t, "5432", GetString("history.db.port"))
	assert.Equal(t, false, GetBool("influx.enabled"))
	assert.Equal(t, false, GetBool("graylog.enabled"))
	assert.Equal(t, "localhost:12201", GetString("graylog.address"))
	assert.Equal(t, false, GetBool("telemetry.enabled"))
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"dataFile": "maps/outpost.txt",
		"history": { "enabled": false, "db": { "type": "postgres", "host": "10.0.0.1" } }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "npced.cfg.json"), []byte(cfg), 0644))

	require.NoError(t, Load(dir))

	assert.Equal(t, "debug", GetString("logLevel"))
	assert.Equal(t, "maps/outpost.txt", GetString("dataFile"))
	assert.Equal(t, false, GetBool("history.enabled"))
	assert.Equal(t, "postgres", GetString("history.db.type"))
	assert.Equal(t, "10.0.0.1", GetString("history.db.host"))
	// Untouched keys keep their defaults.
	assert.Equal(t, "5432", GetString("history.db.port"))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))
	assert.Equal(t, "info", GetString("logLevel"))
}

func TestLoad_RejectsBadLogLevel(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "npced.cfg.json"), []byte(`{"logLevel": "loud"}`), 0644))

	assert.Error(t, Load(dir))
}

func TestLoad_RejectsBadDBType(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{"history": {"db": {"type": "oracle"}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "npced.cfg.json"), []byte(cfg), 0644))

	assert.Error(t, Load(dir))
}

func TestGetString(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	assert.Equal(t, "testValue", GetString("testKey"))
}

func TestGetInt(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testInt", 42)
	assert.Equal(t, 42, GetInt("testInt"))
}

func TestGetBool(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testBool", true)
	assert.Equal(t, true, GetBool("testBool"))
}
