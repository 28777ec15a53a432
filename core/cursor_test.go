package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuffer(content string) Buffer {
	b := NewBuffer()
	b.SetContent([]byte(content))
	return b
}

func TestMoveLeftWrapsToPreviousLine(t *testing.T) {
	b := testBuffer("one\ntwo")
	c := Cursor{Position: Position{Row: 1, Col: 0}}

	require.NoError(t, c.MoveLeft(b))

	assert.Equal(t, Position{Row: 0, Col: 3}, c.Position)
}

func TestMoveLeftAtBufferStart(t *testing.T) {
	b := testBuffer("one")
	c := Cursor{}

	err := c.MoveLeft(b)

	assert.ErrorIs(t, err, ErrStartOfBuffer)
	assert.Equal(t, Position{}, c.Position)
}

func TestMoveRightWrapsToNextLine(t *testing.T) {
	b := testBuffer("one\ntwo")
	c := Cursor{Position: Position{Row: 0, Col: 3}}

	require.NoError(t, c.MoveRight(b))

	assert.Equal(t, Position{Row: 1, Col: 0}, c.Position)
}

func TestMoveRightAtBufferEnd(t *testing.T) {
	b := testBuffer("one")
	c := Cursor{Position: Position{Row: 0, Col: 3}}

	err := c.MoveRight(b)

	assert.ErrorIs(t, err, ErrEndOfBuffer)
	assert.Equal(t, Position{Row: 0, Col: 3}, c.Position)
}

func TestVerticalMovementKeepsPreferredColumn(t *testing.T) {
	b := testBuffer("long line here\nab\nanother long line")
	c := Cursor{Position: Position{Row: 0, Col: 10}, Preferred: 10}

	require.NoError(t, c.MoveDown(b))
	assert.Equal(t, Position{Row: 1, Col: 2}, c.Position, "clamped to short line")

	require.NoError(t, c.MoveDown(b))
	assert.Equal(t, Position{Row: 2, Col: 10}, c.Position, "preferred column restored")
}

func TestHorizontalMovementResetsPreferredColumn(t *testing.T) {
	b := testBuffer("abcdef\nabc")
	c := Cursor{Position: Position{Row: 0, Col: 6}, Preferred: 6}

	require.NoError(t, c.MoveLeft(b))
	require.NoError(t, c.MoveDown(b))

	assert.Equal(t, Position{Row: 1, Col: 3}, c.Position)
	require.NoError(t, c.MoveUp(b))
	assert.Equal(t, Position{Row: 0, Col: 5}, c.Position)
}

func TestMoveUpAtFirstLine(t *testing.T) {
	b := testBuffer("one\ntwo")
	c := Cursor{Position: Position{Row: 0, Col: 2}}

	assert.ErrorIs(t, c.MoveUp(b), ErrStartOfBuffer)
}

func TestMoveDownAtLastLine(t *testing.T) {
	b := testBuffer("one\ntwo")
	c := Cursor{Position: Position{Row: 1, Col: 0}}

	assert.ErrorIs(t, c.MoveDown(b), ErrEndOfBuffer)
}

func TestLineStartAndEnd(t *testing.T) {
	b := testBuffer("hello")
	c := Cursor{Position: Position{Row: 0, Col: 3}}

	c.MoveLineEnd(b)
	assert.Equal(t, 5, c.Position.Col)

	c.MoveLineStart()
	assert.Equal(t, 0, c.Position.Col)
	assert.Equal(t, 0, c.Preferred)
}

func TestClampToAfterShrinkingBuffer(t *testing.T) {
	b := testBuffer("one\ntwo\nthree")
	c := Cursor{Position: Position{Row: 2, Col: 5}}

	_, err := b.Delete(Range{
		Start: Position{Row: 1, Col: 0},
		End:   Position{Row: 2, Col: 5},
	})
	require.NoError(t, err)

	c.ClampTo(b)

	assert.Equal(t, 2, b.LineCount())
	assert.Equal(t, Position{Row: 1, Col: 0}, c.Position)
	assert.True(t, b.Valid(c.Position))
}

func TestClampToAdjustsAnchor(t *testing.T) {
	b := testBuffer("one\ntwo")
	anchor := Position{Row: 1, Col: 3}
	c := Cursor{Position: Position{Row: 0, Col: 1}, Anchor: &anchor}

	_, err := b.Delete(Range{
		Start: Position{Row: 0, Col: 3},
		End:   Position{Row: 1, Col: 3},
	})
	require.NoError(t, err)

	c.ClampTo(b)

	assert.Equal(t, Position{Row: 0, Col: 3}, *c.Anchor)
}

func TestSelectionNormalizesOrder(t *testing.T) {
	c := Cursor{Position: Position{Row: 0, Col: 2}}
	c.ExtendSelection(Position{Row: 0, Col: 5})

	sel, ok := c.Selection()
	require.True(t, ok)
	assert.Equal(t, Range{Start: Position{Row: 0, Col: 2}, End: Position{Row: 0, Col: 5}}, sel)

	// Extend backwards past the anchor; start and end swap.
	c.ExtendSelection(Position{Row: 0, Col: 0})
	sel, ok = c.Selection()
	require.True(t, ok)
	assert.Equal(t, Range{Start: Position{Row: 0, Col: 0}, End: Position{Row: 0, Col: 2}}, sel)
}

func TestClearSelection(t *testing.T) {
	c := Cursor{}
	c.ExtendSelection(Position{Row: 0, Col: 3})
	require.True(t, c.HasSelection())

	c.ClearSelection()

	assert.False(t, c.HasSelection())
	_, ok := c.Selection()
	assert.False(t, ok)
}
