// Package geo holds the coordinate math the 3D view and the stats command
// rely on: string parsing, the game-to-scene axis transform, orientation
// vectors, and group footprints.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/bhrm-tools/npced/internal/model"
)

// ErrInvalidCoordinates is returned when a coordinate string cannot be parsed.
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// Position3DFromString parses a "x,y,z" (or "x,y") string into a Position3D.
func Position3DFromString(coords string) (model.Position3D, error) {
	split := strings.Split(coords, ",")
	if len(split) < 2 {
		return model.Position3D{}, ErrInvalidCoordinates
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(split[0]), 64)
	if err != nil {
		return model.Position3D{}, ErrInvalidCoordinates
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(split[1]), 64)
	if err != nil {
		return model.Position3D{}, ErrInvalidCoordinates
	}
	var z float64
	if len(split) > 2 {
		z, err = strconv.ParseFloat(strings.TrimSpace(split[2]), 64)
		if err != nil {
			return model.Position3D{}, ErrInvalidCoordinates
		}
	}
	return model.Position3D{X: x, Y: y, Z: z}, nil
}

// SceneVector maps a game-space position into scene space. The game uses
// Y-up coordinates; the scene uses Z-up with X mirrored, so (x, y, z)
// becomes (-x, z, y).
func SceneVector(p model.Position3D) [3]float64 {
	return [3]float64{-p.X, p.Z, p.Y}
}

// HeadingVector converts a heading in degrees into a unit direction vector
// on the scene's ground plane.
func HeadingVector(deg float64) [3]float64 {
	rad := deg * math.Pi / 180
	return [3]float64{math.Sin(rad), -math.Cos(rad), 0}
}

// RotationMatrix builds the scene rotation matrix for a prop rotation
// triple. The game's Y and Z axes are swapped relative to the scene and X
// is inverted, so yaw comes from rot Z, pitch from -rot X, and roll from
// rot Y. The combined matrix is Rz(roll) * Rx(pitch) * Ry(yaw).
func RotationMatrix(rot model.Rotation3D) [3][3]float64 {
	yaw := rot.Z * math.Pi / 180
	pitch := -rot.X * math.Pi / 180
	roll := rot.Y * math.Pi / 180

	cy, sy := math.Cos(yaw), math.Sin(yaw)
	cp, sp := math.Cos(pitch), math.Sin(pitch)
	cr, sr := math.Cos(roll), math.Sin(roll)

	ry := [3][3]float64{{cy, 0, sy}, {0, 1, 0}, {-sy, 0, cy}}
	rx := [3][3]float64{{1, 0, 0}, {0, cp, -sp}, {0, sp, cp}}
	rz := [3][3]float64{{cr, -sr, 0}, {sr, cr, 0}, {0, 0, 1}}

	return matMul(rz, matMul(rx, ry))
}

// ApplyMatrix multiplies a 3x3 matrix with a vector.
func ApplyMatrix(m [3][3]float64, v [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}
	return out
}

func matMul(a, b [3][3]float64) [3][3]float64 {
	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				out[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return out
}

// Footprint returns the ground-plane envelope of a set of points. The
// ground plane in game space is (X, Z); Y is elevation. The returned
// envelope is empty when no spawn points are present. Non-finite
// coordinates (possible in hand-edited files) are rejected with an error.
func Footprint(points []model.Point) (geom.Envelope, error) {
	var xys []geom.XY
	for _, pt := range points {
		if !pt.IsSpawn() {
			continue
		}
		xys = append(xys, geom.XY{X: pt.Position.X, Y: pt.Position.Z})
	}
	env, err := geom.NewEnvelope(xys)
	if err != nil {
		return geom.Envelope{}, fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
	}
	return env, nil
}
