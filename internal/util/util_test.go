package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"spaces", "bot spawn 1 Guard", []string{"bot", "spawn", "1", "Guard"}},
		{"commas", "spawn,Guard,10,0,5,90", []string{"spawn", "Guard", "10", "0", "5", "90"}},
		{"mixed", "spawn, Guard,  10\t0", []string{"spawn", "Guard", "10", "0"}},
		// FieldsFunc yields an empty, non-nil slice when nothing matches.
		{"empty", "", []string{}},
		{"only separators", " ,\t, ", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTokens(tt.input))
		})
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0", FormatFloat(0))
	assert.Equal(t, "90", FormatFloat(90))
	assert.Equal(t, "-12.5", FormatFloat(-12.5))
	assert.Equal(t, "0.125", FormatFloat(0.125))
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, SplitPath("A/B"))
	assert.Nil(t, SplitPath(""))
	assert.Equal(t, []string{"A"}, SplitPath("/A/"))
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "A/B", JoinPath([]string{"A", "B"}))
	assert.Equal(t, "", JoinPath(nil))
}
