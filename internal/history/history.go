package history

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bhrm-tools/npced/internal/model"
)

// Revision is one saved snapshot of a map file's records.
type Revision struct {
	gorm.Model
	MapFile    string `gorm:"size:512;index"`
	PointCount int
	RawCount   int
	Records    datatypes.JSON
}

// Store reads and writes revisions.
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewStore creates a revision store over a connected Manager.
func NewStore(m *Manager) *Store {
	return &Store{db: m.DB, logger: m.Logger}
}

// Init migrates the revision schema.
func (s *Store) Init() error {
	if err := s.db.AutoMigrate(&Revision{}); err != nil {
		return fmt.Errorf("failed to migrate history schema: %v", err)
	}
	return nil
}

// Record snapshots the given records for mapFile and returns the stored
// revision.
func (s *Store) Record(mapFile string, points []model.Point) (*Revision, error) {
	data, err := json.Marshal(points)
	if err != nil {
		return nil, fmt.Errorf("failed to encode revision: %v", err)
	}

	raws := 0
	for _, pt := range points {
		if pt.IsRaw() {
			raws++
		}
	}

	rev := &Revision{
		MapFile:    mapFile,
		PointCount: len(points),
		RawCount:   raws,
		Records:    datatypes.JSON(data),
	}
	if err := s.db.Create(rev).Error; err != nil {
		return nil, fmt.Errorf("failed to store revision: %v", err)
	}

	s.logger.Debug().
		Uint("revision", rev.ID).
		Str("map_file", mapFile).
		Int("points", len(points)).
		Msg("revision recorded")
	return rev, nil
}

// List returns the most recent revisions for mapFile, newest first, up to
// limit (0 means no limit).
func (s *Store) List(mapFile string, limit int) ([]Revision, error) {
	q := s.db.Where("map_file = ?", mapFile).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var revs []Revision
	if err := q.Find(&revs).Error; err != nil {
		return nil, fmt.Errorf("failed to list revisions: %v", err)
	}
	return revs, nil
}

// Get returns one revision by ID.
func (s *Store) Get(id uint) (*Revision, error) {
	var rev Revision
	if err := s.db.First(&rev, id).Error; err != nil {
		return nil, fmt.Errorf("failed to load revision %d: %v", id, err)
	}
	return &rev, nil
}

// Points decodes the snapshot back into records.
func (r *Revision) Points() ([]model.Point, error) {
	var points []model.Point
	if err := json.Unmarshal(r.Records, &points); err != nil {
		return nil, fmt.Errorf("failed to decode revision %d: %v", r.ID, err)
	}
	return points, nil
}

// Prune deletes all but the newest keep revisions for mapFile and returns
// how many were removed.
func (s *Store) Prune(mapFile string, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	var ids []uint
	err := s.db.Model(&Revision{}).
		Where("map_file = ?", mapFile).
		Order("id DESC").
		Limit(keep).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("failed to find revisions to keep: %v", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	res := s.db.Unscoped().
		Where("map_file = ? AND id NOT IN ?", mapFile, ids).
		Delete(&Revision{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune revisions: %v", res.Error)
	}

	if res.RowsAffected > 0 {
		s.logger.Debug().
			Str("map_file", mapFile).
			Int64("pruned", res.RowsAffected).
			Msg("old revisions pruned")
	}
	return res.RowsAffected, nil
}
