// Package parser converts spawn command file text into ordered Point
// records and back. Parsing never fails on content: any line that does not
// match a recognized command pattern degrades to a raw passthrough record,
// because these files are hand-edited and must always load.
package parser

import (
	"log/slog"
	"strings"

	"github.com/bhrm-tools/npced/internal/model"
	"github.com/bhrm-tools/npced/internal/util"
)

// Stats summarizes one parse pass.
type Stats struct {
	Lines      int // total input lines
	Directives int // folder directive lines consumed
	Spawns     int // recognized spawn commands
	Raws       int // raw passthrough records
	NearMisses int // lines that started with a spawn keyword but failed to parse
}

// Parser provides pure text -> record conversion. Its only dependency is a
// logger, used for near-miss warnings.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new parser.
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse converts the full text of a command file into an ordered record
// sequence. Empty input produces no records.
func (p *Parser) Parse(text string) []model.Point {
	points, _ := p.ParseWithStats(text)
	return points
}

// ParseWithStats is Parse plus counters for telemetry.
func (p *Parser) ParseWithStats(text string) ([]model.Point, Stats) {
	var (
		points      []model.Point
		stats       Stats
		folderStack []string
	)
	counters := map[string]int{}

	if text == "" {
		return nil, stats
	}

	lines := strings.Split(text, "\n")
	// A trailing newline is a line terminator, not an extra blank line.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	appendRaw := func(line string) {
		path := util.JoinPath(folderStack)
		points = append(points, model.Point{
			Command: model.CommandRaw,
			Raw:     line,
			Path:    path,
			Order:   counters[path],
		})
		counters[path]++
		stats.Raws++
	}

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		stats.Lines++
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#") {
			level, name := splitDirective(trimmed)
			if name == "" {
				// A bare "#" carries no folder name; pass it through.
				appendRaw(line)
				continue
			}
			if level-1 < len(folderStack) {
				folderStack = folderStack[:level-1]
			}
			folderStack = append(folderStack, name)
			stats.Directives++
			continue
		}

		pt, matched, err := parseSpawnLine(trimmed)
		if err != nil {
			// Keyword matched but arity or numeric conversion failed.
			// Degrade to raw rather than refusing the file, but make the
			// near-miss visible: it usually means a typo in a hand edit.
			p.logger.Warn("spawn line did not parse, keeping as raw text",
				"line", trimmed, "error", err)
			stats.NearMisses++
			appendRaw(line)
			continue
		}
		if !matched {
			appendRaw(line)
			continue
		}

		path := util.JoinPath(folderStack)
		pt.Path = path
		pt.Order = counters[path]
		counters[path]++
		points = append(points, pt)
		stats.Spawns++
	}

	return points, stats
}

// splitDirective splits a "#"-prefixed line into nesting level and folder
// name. Level is the number of leading '#' characters.
func splitDirective(line string) (level int, name string) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	return level, strings.TrimSpace(line[level:])
}
