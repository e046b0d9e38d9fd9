package scene

import (
	"sort"

	"github.com/bhrm-tools/npced/internal/model"
)

// palette is the tab10 qualitative color cycle, the same one the editor's
// legend uses. Types wrap around when there are more than ten.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// UniqueTypes returns the sorted set of spawn type labels present in the
// record list. Raw records carry no type and are skipped.
func UniqueTypes(points []model.Point) []string {
	seen := map[string]bool{}
	var out []string
	for _, pt := range points {
		if !pt.IsSpawn() || seen[pt.Type] {
			continue
		}
		seen[pt.Type] = true
		out = append(out, pt.Type)
	}
	sort.Strings(out)
	return out
}

// TypeColors assigns a stable display color to every unique type. The
// assignment depends only on the sorted type set, so reloading a file does
// not shuffle colors.
func TypeColors(points []model.Point) map[string]string {
	colors := map[string]string{}
	for i, t := range UniqueTypes(points) {
		colors[t] = palette[i%len(palette)]
	}
	return colors
}
