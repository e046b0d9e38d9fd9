// Package session owns the in-memory record list for one editing session:
// the current map file, its parsed points, and every mutation the editor
// exposes (edit, reorder, delete, append, folder rename). Persistence only
// happens on an explicit Save.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/bhrm-tools/npced/internal/model"
	"github.com/bhrm-tools/npced/internal/parser"
	"github.com/bhrm-tools/npced/internal/scene"
	"github.com/bhrm-tools/npced/internal/storage"
	"github.com/bhrm-tools/npced/internal/undo"
	"github.com/bhrm-tools/npced/internal/util"
)

// undoDepth caps how many mutations can be rolled back.
const undoDepth = 100

// ErrIndexOutOfRange is returned when a point index does not exist.
var ErrIndexOutOfRange = errors.New("point index out of range")

// ErrNoFileLoaded is returned by Save and Reload before a Load.
var ErrNoFileLoaded = errors.New("no map file loaded")

// Placement assigns one existing point to a path, in sequence. A slice of
// placements describes the full tree layout after a drag-and-drop reorder.
type Placement struct {
	Index int
	Path  string
}

// Session is the single mutable document of the editor. The watcher may
// reload it from another goroutine, so access is guarded.
type Session struct {
	mu     sync.RWMutex
	logger *slog.Logger
	parser *parser.Parser

	file    string
	points  []model.Point
	stats   parser.Stats
	history *undo.Stack[[]model.Point]
}

// New creates an empty session.
func New(logger *slog.Logger) *Session {
	return &Session{
		logger:  logger,
		parser:  parser.NewParser(logger),
		history: undo.New[[]model.Point](undoDepth),
	}
}

// snapshot pushes a copy of the record list onto the undo stack. Callers
// must hold the write lock.
func (s *Session) snapshot() {
	cp := make([]model.Point, len(s.points))
	copy(cp, s.points)
	s.history.Push(cp)
}

// Undo rolls back the most recent mutation. ok is false when there is
// nothing to undo.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.history.Pop()
	if !ok {
		return false
	}
	s.points = prev
	return true
}

// CanUndo reports whether an Undo would do anything.
func (s *Session) CanUndo() bool {
	return s.history.Len() > 0
}

// Load reads and parses a map file, replacing the current record list.
func (s *Session) Load(path string) (parser.Stats, error) {
	text, err := storage.ReadCommandFile(path)
	if err != nil {
		return parser.Stats{}, err
	}

	points, stats := s.parser.ParseWithStats(text)

	s.mu.Lock()
	s.file = path
	s.points = points
	s.stats = stats
	s.history.Clear()
	s.mu.Unlock()

	s.logger.Info("loaded map file",
		"file", path, "points", stats.Spawns, "raw", stats.Raws)
	return stats, nil
}

// Reload re-reads the current file, discarding unsaved edits. The watcher
// calls this when the file changes on disk.
func (s *Session) Reload() (parser.Stats, error) {
	s.mu.RLock()
	path := s.file
	s.mu.RUnlock()
	if path == "" {
		return parser.Stats{}, ErrNoFileLoaded
	}
	return s.Load(path)
}

// Save serializes the record list back to the current file atomically.
func (s *Session) Save() error {
	return s.SaveWithFolders(nil)
}

// SaveWithFolders is Save with explicit folder paths so empty folders from
// a tree view survive the write.
func (s *Session) SaveWithFolders(folders [][]string) error {
	s.mu.RLock()
	path := s.file
	text := parser.SerializeWithFolders(s.points, folders)
	s.mu.RUnlock()

	if path == "" {
		return ErrNoFileLoaded
	}
	if err := storage.WriteCommandFile(path, text); err != nil {
		return err
	}
	s.logger.Info("saved map file", "file", path)
	return nil
}

// File returns the current map file path ("" before Load).
func (s *Session) File() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.file
}

// Points returns a copy of the record list.
func (s *Session) Points() []model.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Point, len(s.points))
	copy(out, s.points)
	return out
}

// Point returns the record at idx.
func (s *Session) Point(idx int) (model.Point, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx < 0 || idx >= len(s.points) {
		return model.Point{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, idx)
	}
	return s.points[idx], nil
}

// PointCount returns the number of records.
func (s *Session) PointCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

// Types returns the sorted set of spawn type labels in the record list.
func (s *Session) Types() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return scene.UniqueTypes(s.points)
}

// LastStats returns the parse stats of the most recent Load.
func (s *Session) LastStats() parser.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// UpdatePoint replaces the record at idx with pt, preserving the existing
// Order so an edit never reshuffles its folder.
func (s *Session) UpdatePoint(idx int, pt model.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < 0 || idx >= len(s.points) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, idx)
	}
	s.snapshot()
	pt.Order = s.points[idx].Order
	s.points[idx] = pt
	return nil
}

// MovePoint swaps the record at idx with its neighbor within the same
// folder, delta steps away (-1 = up, +1 = down). Moving past either end of
// the folder is a no-op.
func (s *Session) MovePoint(idx, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < 0 || idx >= len(s.points) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, idx)
	}

	folder := s.points[idx].Path
	var siblings []int
	for i, pt := range s.points {
		if pt.Path == folder {
			siblings = append(siblings, i)
		}
	}
	sort.SliceStable(siblings, func(a, b int) bool {
		return s.points[siblings[a]].Order < s.points[siblings[b]].Order
	})

	pos := -1
	for i, recIdx := range siblings {
		if recIdx == idx {
			pos = i
			break
		}
	}
	target := pos + delta
	if target < 0 || target >= len(siblings) {
		return nil
	}

	a, b := siblings[pos], siblings[target]
	s.snapshot()
	s.points[a].Order, s.points[b].Order = s.points[b].Order, s.points[a].Order
	return nil
}

// DeletePoints removes the records at the given indices and returns how
// many were removed. Duplicate and out-of-range indices are ignored.
func (s *Session) DeletePoints(indices []int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	unique := map[int]bool{}
	var sorted []int
	for _, idx := range indices {
		if idx >= 0 && idx < len(s.points) && !unique[idx] {
			unique[idx] = true
			sorted = append(sorted, idx)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	if len(sorted) > 0 {
		s.snapshot()
	}
	for _, idx := range sorted {
		s.points = append(s.points[:idx], s.points[idx+1:]...)
	}
	return len(sorted)
}

// AppendFromText parses pasted text and appends every recognized spawn
// command at the root path, continuing the root order counter. Raw and
// directive lines in the pasted text are ignored. Returns the number of
// points added.
func (s *Session) AppendFromText(text string) int {
	parsed := s.parser.Parse(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	rootOrder := 0
	for _, pt := range s.points {
		if pt.Path == "" {
			rootOrder++
		}
	}

	var incoming []model.Point
	for _, pt := range parsed {
		if pt.IsSpawn() {
			incoming = append(incoming, pt)
		}
	}
	if len(incoming) > 0 {
		s.snapshot()
	}

	added := 0
	for _, pt := range incoming {
		pt.Path = ""
		pt.Order = rootOrder + added
		s.points = append(s.points, pt)
		added++
	}

	if added > 0 {
		s.logger.Info("appended points from pasted text", "count", added)
	}
	return added
}

// RenameFolder rewrites the path prefix of every record at or below
// oldPath, returning the number of records touched.
func (s *Session) RenameFolder(oldPath, newPath string) int {
	oldParts := util.SplitPath(oldPath)
	newParts := util.SplitPath(newPath)
	if len(oldParts) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var affected []int
	for i, pt := range s.points {
		parts := util.SplitPath(pt.Path)
		if len(parts) >= len(oldParts) && equalPrefix(parts, oldParts) {
			affected = append(affected, i)
		}
	}
	if len(affected) > 0 {
		s.snapshot()
	}

	for _, i := range affected {
		parts := util.SplitPath(s.points[i].Path)
		rewritten := append(append([]string{}, newParts...), parts[len(oldParts):]...)
		s.points[i].Path = util.JoinPath(rewritten)
	}
	return len(affected)
}

// ReassignOrders rebuilds every record's path and order from a full tree
// layout, as produced after a drag-and-drop reorder. Each path's order
// counter restarts at zero in layout sequence.
func (s *Session) ReassignOrders(layout []Placement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, pl := range layout {
		if pl.Index < 0 || pl.Index >= len(s.points) {
			return fmt.Errorf("%w: %d", ErrIndexOutOfRange, pl.Index)
		}
	}

	s.snapshot()
	counters := map[string]int{}
	for _, pl := range layout {
		s.points[pl.Index].Path = pl.Path
		s.points[pl.Index].Order = counters[pl.Path]
		counters[pl.Path]++
	}
	return nil
}

// CommandLines renders the records at the given indices as command file
// lines, the format the editor puts on the clipboard for copy actions.
func (s *Session) CommandLines(indices []int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var lines []string
	for _, idx := range indices {
		if idx < 0 || idx >= len(s.points) {
			continue
		}
		lines = append(lines, parser.FormatCommandLine(s.points[idx]))
	}
	return lines
}

func equalPrefix(parts, prefix []string) bool {
	for i, p := range prefix {
		if parts[i] != p {
			return false
		}
	}
	return true
}
