package parser

import (
	"fmt"
	"strconv"

	"github.com/bhrm-tools/npced/internal/model"
	"github.com/bhrm-tools/npced/internal/util"
)

// parseSpawnLine recognizes the two spawn command forms:
//
//	bot spawn [count] <type> <x> <y> <z> [<heading>]
//	spawn [count] <type> <x> <y> <z> (<heading> | <rotX> <rotY> <rotZ>)
//
// Tokens may be separated by whitespace, commas, or both. matched is false
// when the line does not start with a spawn keyword. err is non-nil when
// the keyword matched but the argument list did not (a near-miss).
func parseSpawnLine(line string) (pt model.Point, matched bool, err error) {
	tokens := util.SplitTokens(line)

	var cmd model.Command
	switch {
	case len(tokens) >= 2 && tokens[0] == "bot" && tokens[1] == "spawn":
		cmd = model.CommandBotSpawn
		tokens = tokens[2:]
	case len(tokens) >= 1 && tokens[0] == "spawn":
		cmd = model.CommandSpawn
		tokens = tokens[1:]
	default:
		return pt, false, nil
	}

	tokens = stripCountToken(tokens)

	// type + x y z, then zero, one, or three orientation values
	switch len(tokens) {
	case 4, 5, 7:
	default:
		return pt, true, fmt.Errorf("expected 4, 5 or 7 arguments, got %d", len(tokens))
	}
	if cmd == model.CommandSpawn && len(tokens) == 4 {
		return pt, true, fmt.Errorf("spawn requires an orientation value")
	}

	pt.Command = cmd
	pt.Type = tokens[0]

	coords := make([]float64, len(tokens)-1)
	for i, tok := range tokens[1:] {
		coords[i], err = strconv.ParseFloat(tok, 64)
		if err != nil {
			return model.Point{}, true, fmt.Errorf("argument %d (%q) is not numeric", i+2, tok)
		}
	}

	pt.Position = model.Position3D{X: coords[0], Y: coords[1], Z: coords[2]}
	switch len(coords) {
	case 4:
		pt.Heading = coords[3]
	case 6:
		pt.Rotation = model.Rotation3D{X: coords[3], Y: coords[4], Z: coords[5]}
		pt.HasRotation = true
	}

	return pt, true, nil
}

// stripCountToken drops the spawn-count token that game files carry after
// the keyword ("bot spawn 1 Guard ..."). Pasted or hand-written lines may
// omit it, so it is only treated as a count when it is a plain integer and
// the remaining arguments still form a valid arity.
func stripCountToken(tokens []string) []string {
	if len(tokens) == 0 {
		return tokens
	}
	if _, err := strconv.ParseUint(tokens[0], 10, 32); err != nil {
		return tokens
	}
	switch rest := len(tokens) - 1; rest {
	case 4, 5, 7:
		return tokens[1:]
	}
	return tokens
}
