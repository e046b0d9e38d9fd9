package history

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhrm-tools/npced/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	t.Cleanup(viper.Reset)
	viper.Set("history.db.type", "sqlite")
	viper.Set("history.db.path", filepath.Join(t.TempDir(), "history.db"))

	m := NewManager(zerolog.Nop())
	require.NoError(t, m.Connect())
	require.True(t, m.IsValid)

	s := NewStore(m)
	require.NoError(t, s.Init())
	return s
}

func testPoints(n int) []model.Point {
	points := make([]model.Point, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, model.Point{
			Command:  model.CommandBotSpawn,
			Type:     "Guard",
			Position: model.Position3D{X: float64(i), Y: 0, Z: 0},
			Heading:  90,
			Order:    i,
		})
	}
	return points
}

func TestRecordAndGet(t *testing.T) {
	s := testStore(t)

	points := testPoints(3)
	points = append(points, model.Point{Command: model.CommandRaw, Raw: "// note", Order: 3})

	rev, err := s.Record("spawns.txt", points)
	require.NoError(t, err)
	assert.Equal(t, 4, rev.PointCount)
	assert.Equal(t, 1, rev.RawCount)

	got, err := s.Get(rev.ID)
	require.NoError(t, err)

	restored, err := got.Points()
	require.NoError(t, err)
	require.Len(t, restored, 4)
	assert.Equal(t, "Guard", restored[0].Type)
	assert.Equal(t, 90.0, restored[0].Heading)
	assert.Equal(t, "// note", restored[3].Raw)
}

func TestListNewestFirstPerMapFile(t *testing.T) {
	s := testStore(t)

	first, err := s.Record("a.txt", testPoints(1))
	require.NoError(t, err)
	second, err := s.Record("a.txt", testPoints(2))
	require.NoError(t, err)
	_, err = s.Record("b.txt", testPoints(5))
	require.NoError(t, err)

	revs, err := s.List("a.txt", 0)
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, second.ID, revs[0].ID)
	assert.Equal(t, first.ID, revs[1].ID)

	limited, err := s.List("a.txt", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second.ID, limited[0].ID)
}

func TestPrune(t *testing.T) {
	s := testStore(t)

	for i := 0; i < 5; i++ {
		_, err := s.Record("a.txt", testPoints(i + 1))
		require.NoError(t, err)
	}
	other, err := s.Record("b.txt", testPoints(1))
	require.NoError(t, err)

	pruned, err := s.Prune("a.txt", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pruned)

	revs, err := s.List("a.txt", 0)
	require.NoError(t, err)
	assert.Len(t, revs, 2)
	assert.Equal(t, 5, revs[0].PointCount)
	assert.Equal(t, 4, revs[1].PointCount)

	// Other map files are untouched.
	_, err = s.Get(other.ID)
	assert.NoError(t, err)
}

func TestPruneKeepZeroIsNoOp(t *testing.T) {
	s := testStore(t)

	_, err := s.Record("a.txt", testPoints(1))
	require.NoError(t, err)

	pruned, err := s.Prune("a.txt", 0)
	require.NoError(t, err)
	assert.Zero(t, pruned)
}

func TestGetMissingRevision(t *testing.T) {
	s := testStore(t)
	_, err := s.Get(9999)
	assert.Error(t, err)
}
