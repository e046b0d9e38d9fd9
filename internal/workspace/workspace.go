// Package workspace persists the editor's view state between sessions: the
// map file in use, camera pose, selection, and orientation marker settings.
// The file is plain JSON next to the user's data.
package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Camera is the scene camera pose.
type Camera struct {
	Position [3]float64 `json:"position"`
	Focal    [3]float64 `json:"focal"`
	Up       [3]float64 `json:"up"`
}

// Marker is the orientation marker state.
type Marker struct {
	Visible bool       `json:"visible"`
	Offset  [3]float64 `json:"offset"`
}

// Workspace is the persisted view state.
type Workspace struct {
	MapFile   string `json:"map_file"`
	Camera    Camera `json:"camera"`
	Selection []int  `json:"selection"`
	Marker    Marker `json:"orientation_marker"`
}

// Default returns a workspace for a fresh install.
func Default() Workspace {
	return Workspace{
		Camera: Camera{
			Position: [3]float64{0, -50, 50},
			Up:       [3]float64{0, 0, 1},
		},
		Marker: Marker{Visible: true},
	}
}

// Validate checks the workspace is usable before it is applied.
func (w Workspace) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.MapFile, validation.Required),
		validation.Field(&w.Marker, validation.By(markerOffsetFinite)),
	)
}

func markerOffsetFinite(value interface{}) error {
	m, ok := value.(Marker)
	if !ok {
		return errors.New("must be a marker")
	}
	for _, v := range m.Offset {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("offset must be finite")
		}
	}
	return nil
}

// Load reads a workspace file. A missing file is not an error and yields
// the defaults, so first launch needs no setup.
func Load(path string) (Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Workspace{}, fmt.Errorf("reading workspace file: %w", err)
	}

	w := Default()
	if err := json.Unmarshal(data, &w); err != nil {
		return Workspace{}, fmt.Errorf("parsing workspace file: %w", err)
	}
	return w, nil
}

// Save writes the workspace atomically via a temp file rename.
func Save(path string, w Workspace) error {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding workspace: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("writing workspace file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing workspace file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing workspace file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing workspace file: %w", err)
	}
	return nil
}
