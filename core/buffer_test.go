package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBufferHasOneEmptyLine(t *testing.T) {
	b := NewBuffer()

	assert.Equal(t, 1, b.LineCount())
	assert.True(t, b.IsEmpty())
	assert.Equal(t, "", b.Content())
}

func TestSetContentSplitsLines(t *testing.T) {
	b := NewBuffer()
	b.SetContent([]byte("one\ntwo\nthree"))

	assert.Equal(t, 3, b.LineCount())
	assert.Equal(t, []string{"one", "two", "three"}, b.Lines())
	assert.Equal(t, "one\ntwo\nthree", b.Content())
}

func TestSetContentPreservesTrailingNewline(t *testing.T) {
	b := NewBuffer()
	b.SetContent([]byte("one\ntwo\n"))

	assert.Equal(t, 3, b.LineCount())
	assert.Equal(t, "", b.Lines()[2])
	assert.Equal(t, "one\ntwo\n", b.Content())
}

func TestInsertSingleLine(t *testing.T) {
	b := NewBuffer()
	b.SetContent([]byte("hello world"))

	pos, err := b.Insert(Position{Row: 0, Col: 5}, ",")
	require.NoError(t, err)

	assert.Equal(t, Position{Row: 0, Col: 6}, pos)
	assert.Equal(t, "hello, world", b.Content())
}

func TestInsertNewlineAtEndOfLineSplits(t *testing.T) {
	b := NewBuffer()
	b.SetContent([]byte("ab"))

	pos, err := b.Insert(Position{Row: 0, Col: 2}, "\n")
	require.NoError(t, err)

	assert.Equal(t, Position{Row: 1, Col: 0}, pos)
	assert.Equal(t, 2, b.LineCount())
	assert.Equal(t, []string{"ab", ""}, b.Lines())
}

func TestInsertMultiLineInMiddle(t *testing.T) {
	b := NewBuffer()
	b.SetContent([]byte("head tail"))

	pos, err := b.Insert(Position{Row: 0, Col: 5}, "one\ntwo\nthree ")
	require.NoError(t, err)

	assert.Equal(t, Position{Row: 2, Col: 6}, pos)
	assert.Equal(t, []string{"head one", "two", "three tail"}, b.Lines())
}

func TestInsertOutOfBounds(t *testing.T) {
	b := NewBuffer()
	b.SetContent([]byte("ab"))

	_, err := b.Insert(Position{Row: 1, Col: 0}, "x")
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = b.Insert(Position{Row: 0, Col: 3}, "x")
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestDeleteWithinLine(t *testing.T) {
	b := NewBuffer()
	b.SetContent([]byte("hello, world"))

	removed, err := b.Delete(Range{
		Start: Position{Row: 0, Col: 5},
		End:   Position{Row: 0, Col: 7},
	})
	require.NoError(t, err)

	assert.Equal(t, ", ", removed)
	assert.Equal(t, "helloworld", b.Content())
}

func TestDeleteAcrossLinesMerges(t *testing.T) {
	b := NewBuffer()
	b.SetContent([]byte("one\ntwo\nthree"))

	removed, err := b.Delete(Range{
		Start: Position{Row: 0, Col: 2},
		End:   Position{Row: 2, Col: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, "e\ntwo\nth", removed)
	assert.Equal(t, 1, b.LineCount())
	assert.Equal(t, "onree", b.Content())
}

func TestDeleteLineBoundaryJoinsLines(t *testing.T) {
	b := NewBuffer()
	b.SetContent([]byte("one\ntwo"))

	removed, err := b.Delete(Range{
		Start: Position{Row: 0, Col: 3},
		End:   Position{Row: 1, Col: 0},
	})
	require.NoError(t, err)

	assert.Equal(t, "\n", removed)
	assert.Equal(t, "onetwo", b.Content())
}

func TestDeleteThenInsertRoundTrips(t *testing.T) {
	b := NewBuffer()
	b.SetContent([]byte("alpha\nbeta\ngamma"))
	original := b.Content()

	rng := Range{
		Start: Position{Row: 0, Col: 3},
		End:   Position{Row: 2, Col: 1},
	}
	removed, err := b.Delete(rng)
	require.NoError(t, err)

	end, err := b.Insert(rng.Start, removed)
	require.NoError(t, err)

	assert.Equal(t, original, b.Content())
	assert.Equal(t, rng.End, end)
}

func TestDeleteOutOfBoundsLeavesBufferIntact(t *testing.T) {
	b := NewBuffer()
	b.SetContent([]byte("ab"))

	_, err := b.Delete(Range{
		Start: Position{Row: 0, Col: 0},
		End:   Position{Row: 0, Col: 5},
	})
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, "ab", b.Content())
}

func TestTextInDoesNotMutate(t *testing.T) {
	b := NewBuffer()
	b.SetContent([]byte("one\ntwo"))

	text, err := b.TextIn(Range{
		Start: Position{Row: 0, Col: 1},
		End:   Position{Row: 1, Col: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, "ne\nt", text)
	assert.Equal(t, "one\ntwo", b.Content())
}

func TestUnicodeColumnsAreRunes(t *testing.T) {
	b := NewBuffer()
	b.SetContent([]byte("héllo"))

	assert.Equal(t, 5, b.LineRuneCount(0))

	pos, err := b.Insert(Position{Row: 0, Col: 2}, "日本")
	require.NoError(t, err)

	assert.Equal(t, Position{Row: 0, Col: 4}, pos)
	assert.Equal(t, "hé日本llo", b.Content())
}

func TestModifiedTracking(t *testing.T) {
	b := NewBufferFromBytes([]byte("one"))
	assert.False(t, b.IsModified())

	_, err := b.Insert(Position{Row: 0, Col: 3}, "!")
	require.NoError(t, err)
	assert.True(t, b.IsModified())

	b.MarkSaved()
	assert.False(t, b.IsModified())
	assert.Equal(t, "one!", b.SavedContent())

	// Editing past the checkpoint dirties the buffer again.
	_, err = b.Delete(Range{
		Start: Position{Row: 0, Col: 3},
		End:   Position{Row: 0, Col: 4},
	})
	require.NoError(t, err)
	assert.True(t, b.IsModified())
}
