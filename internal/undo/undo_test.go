package undo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushPop(t *testing.T) {
	s := New[int](0)
	s.Push(1)
	s.Push(2)

	v, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = s.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = s.Pop()
	assert.False(t, ok)
}

func TestLimitEvictsOldest(t *testing.T) {
	s := New[int](2)
	s.Push(1)
	s.Push(2)
	s.Push(3)

	assert.Equal(t, 2, s.Len())
	v, _ := s.Pop()
	assert.Equal(t, 3, v)
	v, _ = s.Pop()
	assert.Equal(t, 2, v)
}

func TestClear(t *testing.T) {
	s := New[string](0)
	s.Push("a")
	s.Clear()
	assert.Zero(t, s.Len())
	_, ok := s.Pop()
	assert.False(t, ok)
}
