package scene

import (
	"github.com/bhrm-tools/npced/internal/geo"
	"github.com/bhrm-tools/npced/internal/model"
)

// Marker describes where the UP/NORTH orientation marker sits in scene
// space and how long its arrows are.
type Marker struct {
	Base     [3]float64
	UpLen    float64
	NorthLen float64
}

// ScenePositions maps every record into scene space.
func ScenePositions(points []model.Point) [][3]float64 {
	out := make([][3]float64, len(points))
	for i, pt := range points {
		out[i] = geo.SceneVector(pt.Position)
	}
	return out
}

// PlaceMarker anchors the orientation marker at the scene minima plus the
// user offset. Arrow lengths scale with the scene extents: 20% of the
// height for UP and 12% of the depth for NORTH, with fixed floors so the
// marker stays visible in flat scenes. ok is false when there are no
// points to anchor against.
func PlaceMarker(scenePositions [][3]float64, offset [3]float64) (m Marker, ok bool) {
	if len(scenePositions) == 0 {
		return m, false
	}

	min := scenePositions[0]
	max := scenePositions[0]
	for _, p := range scenePositions[1:] {
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}

	m.Base = [3]float64{min[0] + offset[0], min[1] + offset[1], min[2] + offset[2]}

	m.UpLen = (max[2] - min[2]) * 0.2
	if m.UpLen <= 0 {
		m.UpLen = 10
	}
	m.NorthLen = (max[1] - min[1]) * 0.12
	if m.NorthLen <= 0 {
		m.NorthLen = 6
	}
	return m, true
}
