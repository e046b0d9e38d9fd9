package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bhrm-tools/npced/internal/model"
)

func TestSerializeEmpty(t *testing.T) {
	assert.Equal(t, "", Serialize(nil))
	assert.Equal(t, "", Serialize([]model.Point{}))
}

func TestFormatCommandLine(t *testing.T) {
	tests := []struct {
		name  string
		point model.Point
		want  string
	}{
		{
			name: "bot spawn with heading",
			point: model.Point{
				Command:  model.CommandBotSpawn,
				Type:     "Rifleman",
				Position: model.Position3D{X: 10.5, Y: 0, Z: -5.25},
				Heading:  90,
			},
			want: "bot spawn 1 Rifleman 10.5 0 -5.25 90",
		},
		{
			name: "prop spawn with rotation",
			point: model.Point{
				Command:     model.CommandSpawn,
				Type:        "Crate",
				Position:    model.Position3D{X: 4, Y: 5, Z: 6},
				Rotation:    model.Rotation3D{X: 10, Y: 20, Z: 30},
				HasRotation: true,
			},
			want: "spawn 1 Crate 4 5 6 10 20 30",
		},
		{
			name: "prop spawn with heading only",
			point: model.Point{
				Command:  model.CommandSpawn,
				Type:     "Guard",
				Position: model.Position3D{X: 10, Y: 0, Z: 5},
				Heading:  90,
			},
			want: "spawn 1 Guard 10 0 5 90",
		},
		{
			name:  "raw record verbatim",
			point: model.Point{Command: model.CommandRaw, Raw: "// do not touch"},
			want:  "// do not touch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCommandLine(tt.point))
		})
	}
}

func TestSerializeEmitsDirectivesOnPathChange(t *testing.T) {
	points := []model.Point{
		{Command: model.CommandBotSpawn, Type: "Guard", Position: model.Position3D{X: 1, Y: 1, Z: 1}, Path: "A", Order: 0},
		{Command: model.CommandBotSpawn, Type: "Guard", Position: model.Position3D{X: 2, Y: 2, Z: 2}, Path: "A", Order: 1},
		{Command: model.CommandBotSpawn, Type: "Guard", Position: model.Position3D{X: 3, Y: 3, Z: 3}, Path: "B", Order: 0},
	}

	want := "# A\n" +
		"bot spawn 1 Guard 1 1 1 0\n" +
		"bot spawn 1 Guard 2 2 2 0\n" +
		"# B\n" +
		"bot spawn 1 Guard 3 3 3 0\n"
	assert.Equal(t, want, Serialize(points))
}

func TestSerializeNestedFolderDiffing(t *testing.T) {
	points := []model.Point{
		{Command: model.CommandBotSpawn, Type: "G", Position: model.Position3D{X: 1, Y: 1, Z: 1}, Path: "Base/North"},
		{Command: model.CommandBotSpawn, Type: "G", Position: model.Position3D{X: 2, Y: 2, Z: 2}, Path: "Base/South"},
	}

	want := "# Base\n" +
		"## North\n" +
		"bot spawn 1 G 1 1 1 0\n" +
		"## South\n" +
		"bot spawn 1 G 2 2 2 0\n"
	assert.Equal(t, want, Serialize(points))
}

func TestSerializeRootRecordsComeFirst(t *testing.T) {
	p := newTestParser()
	points := []model.Point{
		{Command: model.CommandBotSpawn, Type: "G", Position: model.Position3D{X: 1, Y: 1, Z: 1}, Path: "A"},
		{Command: model.CommandBotSpawn, Type: "G", Position: model.Position3D{X: 2, Y: 2, Z: 2}, Path: ""},
	}

	out := Serialize(points)
	reparsed := p.Parse(out)
	require.Len(t, reparsed, 2)
	assert.Equal(t, "", reparsed[0].Path)
	assert.Equal(t, "A", reparsed[1].Path)
}

func TestSerializeParentAfterSubfolder(t *testing.T) {
	p := newTestParser()
	points := []model.Point{
		{Command: model.CommandBotSpawn, Type: "G", Position: model.Position3D{X: 1, Y: 1, Z: 1}, Path: "A/Sub"},
		{Command: model.CommandBotSpawn, Type: "G", Position: model.Position3D{X: 2, Y: 2, Z: 2}, Path: "A"},
	}

	reparsed := p.Parse(Serialize(points))
	require.Len(t, reparsed, 2)
	assert.Equal(t, "A/Sub", reparsed[0].Path)
	assert.Equal(t, "A", reparsed[1].Path)
}

func TestSerializeWithFoldersPreservesEmptyFolders(t *testing.T) {
	p := newTestParser()
	points := []model.Point{
		{Command: model.CommandBotSpawn, Type: "G", Position: model.Position3D{X: 1, Y: 1, Z: 1}, Path: "A"},
	}
	folders := [][]string{{"A"}, {"B"}, {"B", "Deep"}}

	out := SerializeWithFolders(points, folders)
	assert.Contains(t, out, "# B\n")
	assert.Contains(t, out, "## Deep\n")

	// Empty folders do not disturb record paths on reparse.
	reparsed := p.Parse(out)
	require.Len(t, reparsed, 1)
	assert.Equal(t, "A", reparsed[0].Path)
}

func TestRoundTripIdempotence(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name  string
		input string
	}{
		{
			name: "mixed commands and folders",
			input: "bot spawn 1 Guard 1 2 3 45\n" +
				"# Base\n" +
				"spawn 1 Crate 4 5 6 0 90 0\n" +
				"## Inner\n" +
				"bot spawn 1 Sniper 7 8 9\n",
		},
		{
			name: "raw lines preserved",
			input: "// header comment\n" +
				"\n" +
				"bot spawn 1 Guard 1 2 3 0\n" +
				"not a command at all\n",
		},
		{
			name: "comma separated input canonicalized",
			input: "spawn, Guard, 10, 0, 5, 90\n" +
				"bot spawn, 1, Guard, 1, 2, 3, 4\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := p.Parse(tt.input)
			out := Serialize(first)
			second := p.Parse(out)

			if diff := cmp.Diff(stripRaw(first), stripRaw(second)); diff != "" {
				t.Errorf("round trip mismatch (-first +second):\n%s", diff)
			}

			// A second round trip is byte-stable.
			assert.Equal(t, out, Serialize(second))
		})
	}
}

// stripRaw clears the Raw field on spawn records so canonicalized
// whitespace does not fail structural comparison. Raw records keep it:
// their text is their content.
func stripRaw(points []model.Point) []model.Point {
	out := make([]model.Point, len(points))
	copy(out, points)
	for i := range out {
		if !out[i].IsRaw() {
			out[i].Raw = ""
		}
	}
	return out
}

func TestSerializeReorderedGroups(t *testing.T) {
	p := newTestParser()

	input := "# A\n" +
		"bot spawn 1 Guard 1 1 1 0\n" +
		"# B\n" +
		"bot spawn 1 Guard 2 2 2 0\n"
	pts := p.Parse(input)
	require.Len(t, pts, 2)

	// Swap the groups: B before A.
	reordered := []model.Point{pts[1], pts[0]}
	out := Serialize(reordered)

	reparsed := p.Parse(out)
	require.Len(t, reparsed, 2)
	assert.Equal(t, "B", reparsed[0].Path)
	assert.Equal(t, "A", reparsed[1].Path)
}
