package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFindsMatchesInReadingOrder(t *testing.T) {
	b := testBuffer("xaby\nab")
	s := NewSearch(b, Position{})

	s.UpdateQuery("ab")

	assert.Equal(t, []Position{{Row: 0, Col: 1}, {Row: 1, Col: 0}}, s.Matches())
}

func TestSearchEmptyQueryHasNoMatches(t *testing.T) {
	b := testBuffer("anything")
	s := NewSearch(b, Position{})

	s.UpdateQuery("a")
	require.NotEmpty(t, s.Matches())

	s.UpdateQuery("")

	assert.Empty(t, s.Matches())
	_, ok := s.Active()
	assert.False(t, ok)
}

func TestSearchMatchesAreNonOverlapping(t *testing.T) {
	b := testBuffer("aaaa")
	s := NewSearch(b, Position{})

	s.UpdateQuery("aa")

	assert.Equal(t, []Position{{Row: 0, Col: 0}, {Row: 0, Col: 2}}, s.Matches())
}

func TestSearchIsCaseSensitive(t *testing.T) {
	b := testBuffer("Ab ab AB")
	s := NewSearch(b, Position{})

	s.UpdateQuery("ab")

	assert.Equal(t, []Position{{Row: 0, Col: 3}}, s.Matches())
}

func TestActiveMatchStartsAtOrAfterOrigin(t *testing.T) {
	b := testBuffer("ab x ab x ab")
	s := NewSearch(b, Position{Row: 0, Col: 3})

	s.UpdateQuery("ab")

	pos, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, Position{Row: 0, Col: 5}, pos)
	assert.Equal(t, 1, s.ActiveIndex())
}

func TestActiveMatchWrapsWhenNoneFollowsOrigin(t *testing.T) {
	b := testBuffer("ab xxx\nyyy")
	s := NewSearch(b, Position{Row: 1, Col: 0})

	s.UpdateQuery("ab")

	pos, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, Position{Row: 0, Col: 0}, pos)
}

func TestNextAndPrevCycle(t *testing.T) {
	b := testBuffer("ab ab ab")
	s := NewSearch(b, Position{})
	s.UpdateQuery("ab")
	require.Equal(t, 0, s.ActiveIndex())

	pos, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, Position{Row: 0, Col: 3}, pos)

	s.Next()
	pos, ok = s.Next()
	require.True(t, ok)
	assert.Equal(t, Position{Row: 0, Col: 0}, pos, "next wraps to the first match")

	pos, ok = s.Prev()
	require.True(t, ok)
	assert.Equal(t, Position{Row: 0, Col: 6}, pos, "prev wraps to the last match")
}

func TestNextWithoutMatches(t *testing.T) {
	b := testBuffer("xyz")
	s := NewSearch(b, Position{})
	s.UpdateQuery("ab")

	_, ok := s.Next()
	assert.False(t, ok)
	_, ok = s.Prev()
	assert.False(t, ok)
}

func TestQueryGrowsAndShrinksIncrementally(t *testing.T) {
	b := testBuffer("cat catalog cats")
	s := NewSearch(b, Position{})

	s.AppendRune('c')
	s.AppendRune('a')
	s.AppendRune('t')
	assert.Len(t, s.Matches(), 3)

	s.AppendRune('s')
	assert.Equal(t, "cats", s.Query())
	assert.Len(t, s.Matches(), 1)

	s.DropRune()
	assert.Equal(t, "cat", s.Query())
	assert.Len(t, s.Matches(), 3)
}

func TestDropRuneOnEmptyQuery(t *testing.T) {
	b := testBuffer("text")
	s := NewSearch(b, Position{})

	s.DropRune()

	assert.Equal(t, "", s.Query())
}

func TestMatchRangesCoverQueryLength(t *testing.T) {
	b := testBuffer("ab cd ab")
	s := NewSearch(b, Position{})
	s.UpdateQuery("ab")

	ranges := s.MatchRanges()
	require.Len(t, ranges, 2)
	assert.Equal(t, Range{Start: Position{Row: 0, Col: 0}, End: Position{Row: 0, Col: 2}}, ranges[0])
	assert.Equal(t, Range{Start: Position{Row: 0, Col: 6}, End: Position{Row: 0, Col: 8}}, ranges[1])

	active, ok := s.ActiveRange()
	require.True(t, ok)
	assert.Equal(t, ranges[0], active)
}

func TestConfirmReportsActiveMatch(t *testing.T) {
	b := testBuffer("one two")
	s := NewSearch(b, Position{})
	s.UpdateQuery("two")

	pos, ok := s.Confirm()

	require.True(t, ok)
	assert.Equal(t, Position{Row: 0, Col: 4}, pos)
}

func TestCancelResetsEngine(t *testing.T) {
	b := testBuffer("one two")
	s := NewSearch(b, Position{})
	s.UpdateQuery("two")

	s.Cancel()

	assert.Empty(t, s.Matches())
	assert.Equal(t, "", s.Query())
	_, ok := s.Active()
	assert.False(t, ok)
}

func TestUnicodeQueryMatchesRuneColumns(t *testing.T) {
	b := testBuffer("日本語 語")
	s := NewSearch(b, Position{})

	s.UpdateQuery("語")

	assert.Equal(t, []Position{{Row: 0, Col: 2}, {Row: 0, Col: 4}}, s.Matches())
}
