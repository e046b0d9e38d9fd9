package parser

import (
	"sort"
	"strings"

	"github.com/bhrm-tools/npced/internal/model"
	"github.com/bhrm-tools/npced/internal/util"
)

// Serialize renders records back to command file text. Records are grouped
// by path in the order each path first appears in the slice; within a
// group they are emitted in ascending order. Folder directives are written
// whenever the path changes, diffing against the previously emitted path
// so shared parents are not repeated. Raw records are emitted verbatim.
//
// Serialize(Parse(text)) reparses to a structurally identical record
// sequence; whitespace and number formatting are canonicalized.
func Serialize(points []model.Point) string {
	return SerializeWithFolders(points, nil)
}

// SerializeWithFolders additionally writes directives for the given folder
// paths (each a segment slice) before any records, so folders that
// currently hold no points survive a save. The editor's tree view passes
// every known folder here.
func SerializeWithFolders(points []model.Point, folders [][]string) string {
	var b strings.Builder
	var last []string

	groups := groupByPath(points)
	// The directive format cannot express "return to root" after a folder,
	// so the root group is always emitted first, before any directives.
	for i, g := range groups {
		if g.path != "" {
			continue
		}
		for _, pt := range g.points {
			b.WriteString(FormatCommandLine(pt))
			b.WriteByte('\n')
		}
		groups = append(groups[:i], groups[i+1:]...)
		break
	}

	if len(folders) > 0 {
		sorted := make([][]string, len(folders))
		copy(sorted, folders)
		sort.SliceStable(sorted, func(i, j int) bool {
			if len(sorted[i]) != len(sorted[j]) {
				return len(sorted[i]) < len(sorted[j])
			}
			return util.JoinPath(sorted[i]) < util.JoinPath(sorted[j])
		})
		for _, folder := range sorted {
			writeDirectives(&b, last, folder)
			last = folder
		}
	}

	for _, group := range groups {
		parts := util.SplitPath(group.path)
		writeDirectives(&b, last, parts)
		last = parts
		for _, pt := range group.points {
			b.WriteString(FormatCommandLine(pt))
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// FormatCommandLine renders a single record as one command file line
// (without the trailing newline). Raw records return their original text.
func FormatCommandLine(pt model.Point) string {
	if pt.IsRaw() {
		return pt.Raw
	}

	fields := []string{
		string(pt.Command),
		"1", // spawn count, always one per line in map files
		pt.Type,
		util.FormatFloat(pt.Position.X),
		util.FormatFloat(pt.Position.Y),
		util.FormatFloat(pt.Position.Z),
	}
	if pt.HasRotation {
		fields = append(fields,
			util.FormatFloat(pt.Rotation.X),
			util.FormatFloat(pt.Rotation.Y),
			util.FormatFloat(pt.Rotation.Z),
		)
	} else {
		fields = append(fields, util.FormatFloat(pt.Heading))
	}
	return strings.Join(fields, " ")
}

type pathGroup struct {
	path   string
	points []model.Point
}

// groupByPath buckets records by path, preserving first-encounter group
// order, and sorts each bucket by record order.
func groupByPath(points []model.Point) []pathGroup {
	index := map[string]int{}
	var groups []pathGroup
	for _, pt := range points {
		i, ok := index[pt.Path]
		if !ok {
			i = len(groups)
			index[pt.Path] = i
			groups = append(groups, pathGroup{path: pt.Path})
		}
		groups[i].points = append(groups[i].points, pt)
	}
	for i := range groups {
		pts := groups[i].points
		sort.SliceStable(pts, func(a, b int) bool { return pts[a].Order < pts[b].Order })
	}
	return groups
}

// writeDirectives emits "#"-directive lines for every segment of next that
// differs from the already-emitted prev path.
func writeDirectives(b *strings.Builder, prev, next []string) {
	common := 0
	for common < len(prev) && common < len(next) && prev[common] == next[common] {
		common++
	}
	// Moving from a subfolder back up to its parent produces no differing
	// segment, but the parser's folder stack must still be truncated, so
	// the parent's last segment is re-emitted.
	if len(next) > 0 && common == len(next) && len(prev) > len(next) {
		common = len(next) - 1
	}
	for i := common; i < len(next); i++ {
		b.WriteString(strings.Repeat("#", i+1))
		b.WriteByte(' ')
		b.WriteString(next[i])
		b.WriteByte('\n')
	}
}
