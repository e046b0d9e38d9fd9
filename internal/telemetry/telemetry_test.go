package telemetry

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)

	// No meter provider installed, so these are no-ops and must not panic.
	m.RecordParse(context.Background(), "spawns.txt", 10, 7, 3, 1)
	m.RecordSerialize(context.Background(), "spawns.txt")
}

func TestInfluxConnectDisabled(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("influx.enabled", false)

	m := NewInfluxManager(zerolog.Nop(), "")
	assert.Error(t, m.Connect())
}

func TestInfluxBackupWriter(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("influx.enabled", true)
	viper.Set("influx.protocol", "http")
	viper.Set("influx.host", "127.0.0.1")
	// Nothing listens here, so Connect falls back to the backup file.
	viper.Set("influx.port", "1")
	viper.Set("influx.token", "")
	viper.Set("influx.org", "npced-metrics")

	backup := filepath.Join(t.TempDir(), "influx_backup.gz")
	m := NewInfluxManager(zerolog.Nop(), backup)

	require.NoError(t, m.Connect())
	assert.False(t, m.IsValid)

	require.NoError(t, m.WriteSessionStats("spawns.txt", 12, 2, 1))
	require.NoError(t, m.Close())

	f, err := os.Open(backup)
	require.NoError(t, err)
	defer f.Close()

	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)

	line := string(data)
	assert.True(t, strings.HasPrefix(line, "session,"), "line protocol: %q", line)
	assert.Contains(t, line, "map_file=spawns.txt")
	assert.Contains(t, line, "points=12i")
}

func TestWritePointWithoutConnect(t *testing.T) {
	m := NewInfluxManager(zerolog.Nop(), "")
	assert.Error(t, m.WriteSessionStats("spawns.txt", 1, 0, 0))
}
