// Package model defines the core record types shared by the parser,
// session, and storage layers.
package model

// Command identifies the kind of line a Point was parsed from.
type Command string

const (
	// CommandBotSpawn is an NPC spawn directive ("bot spawn").
	CommandBotSpawn Command = "bot spawn"
	// CommandSpawn is a prop/object spawn directive ("spawn").
	CommandSpawn Command = "spawn"
	// CommandRaw marks a line that matched no recognized pattern and is
	// preserved verbatim.
	CommandRaw Command = "raw"
)

// Position3D represents a 3D coordinate in game space.
type Position3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// IsEmpty returns true when all components are zero.
func (p Position3D) IsEmpty() bool {
	return p.X == 0 && p.Y == 0 && p.Z == 0
}

// Rotation3D is a full rotation triple in degrees, used by spawn commands
// that carry three orientation values instead of a single heading.
type Rotation3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Point is one record of a command file: a recognized spawn command or a
// raw passthrough line. Every Point carries a Path and an Order; Order is
// assigned per distinct Path in file order.
type Point struct {
	Command  Command    `json:"command"`
	Type     string     `json:"type,omitempty"`
	Position Position3D `json:"position"`

	// Heading is the single-value orientation in degrees. It is only
	// meaningful when HasRotation is false.
	Heading float64 `json:"heading,omitempty"`
	// Rotation is the three-value orientation. Meaningful only when
	// HasRotation is true.
	Rotation    Rotation3D `json:"rotation,omitempty"`
	HasRotation bool       `json:"hasRotation,omitempty"`

	// Path is a slash-delimited grouping key ("" is the root group).
	// It is a display key, not a filesystem path.
	Path  string `json:"path"`
	Order int    `json:"order"`

	// Raw holds the original line text for raw records.
	Raw string `json:"raw,omitempty"`
}

// IsRaw reports whether the point is a verbatim passthrough line.
func (p Point) IsRaw() bool {
	return p.Command == CommandRaw
}

// IsSpawn reports whether the point is a recognized spawn command.
func (p Point) IsSpawn() bool {
	return p.Command == CommandBotSpawn || p.Command == CommandSpawn
}
