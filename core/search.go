package core

// SearchEngine locates all occurrences of a live query string in a buffer
// and tracks which one is active. The match list is recomputed eagerly on
// every query change, which keeps ordering trivially correct; a naive scan
// is O(buffer size x query length) and fine for interactive file sizes.
//
// The engine holds the buffer by reference without owning it. It must not
// outlive a mutation: the session discards it when search mode ends or the
// buffer changes.
type SearchEngine struct {
	buffer  Buffer
	origin  Position
	query   []rune
	matches []Position
	active  int // index into matches, -1 when there is no active match
}

// NewSearch starts a search session over buffer. from is the cursor
// position search started at; the first match at or after it becomes the
// active match whenever the query changes.
func NewSearch(buffer Buffer, from Position) *SearchEngine {
	return &SearchEngine{
		buffer: buffer,
		origin: from,
		active: -1,
	}
}

// Query returns the current query string.
func (s *SearchEngine) Query() string {
	return string(s.query)
}

// Matches returns all match positions for the current query in
// top-to-bottom, left-to-right order.
func (s *SearchEngine) Matches() []Position {
	return s.matches
}

// UpdateQuery replaces the query and rescans the buffer for all
// case-sensitive literal occurrences. The active match resets to the first
// match at or after the position the search started from, wrapping to the
// first match in the buffer when none follows. An empty query yields an
// empty match list and no active match.
//
// Each rescan builds a fresh match slice: callers hand the previous one to
// consumers (signal channel, render view) that read it after the rescan.
func (s *SearchEngine) UpdateQuery(query string) {
	s.query = []rune(query)
	s.matches = nil
	s.active = -1

	if len(s.query) == 0 {
		return
	}

	for row := range s.buffer.LineCount() {
		line := s.buffer.LineRunes(row)
		for col := 0; col+len(s.query) <= len(line); {
			if runesMatch(line[col:], s.query) {
				s.matches = append(s.matches, Position{Row: row, Col: col})
				col += len(s.query)
			} else {
				col++
			}
		}
	}

	if len(s.matches) == 0 {
		return
	}

	s.active = 0
	for i, pos := range s.matches {
		if !pos.Before(s.origin) {
			s.active = i
			break
		}
	}
}

// AppendRune grows the query by one character, as typed at the search
// prompt, and rescans.
func (s *SearchEngine) AppendRune(r rune) {
	s.UpdateQuery(string(s.query) + string(r))
}

// DropRune removes the last query character (backspace at the prompt) and
// rescans.
func (s *SearchEngine) DropRune() {
	if len(s.query) == 0 {
		return
	}
	s.UpdateQuery(string(s.query[:len(s.query)-1]))
}

// Next advances the active match cyclically and returns it.
func (s *SearchEngine) Next() (Position, bool) {
	if len(s.matches) == 0 {
		return Position{}, false
	}
	s.active = (s.active + 1) % len(s.matches)
	return s.matches[s.active], true
}

// Prev retreats the active match cyclically and returns it.
func (s *SearchEngine) Prev() (Position, bool) {
	if len(s.matches) == 0 {
		return Position{}, false
	}
	s.active = (s.active - 1 + len(s.matches)) % len(s.matches)
	return s.matches[s.active], true
}

// Active returns the active match position, if any.
func (s *SearchEngine) Active() (Position, bool) {
	if s.active < 0 || s.active >= len(s.matches) {
		return Position{}, false
	}
	return s.matches[s.active], true
}

// ActiveIndex returns the active match index, -1 when there is none.
func (s *SearchEngine) ActiveIndex() int {
	return s.active
}

// ActiveRange returns the buffer range covered by the active match.
func (s *SearchEngine) ActiveRange() (Range, bool) {
	pos, ok := s.Active()
	if !ok {
		return Range{}, false
	}
	return s.matchRange(pos), true
}

// MatchRanges returns the ranges covered by all matches, in match order.
// Queries never contain line boundaries, so each range stays on one line.
func (s *SearchEngine) MatchRanges() []Range {
	ranges := make([]Range, len(s.matches))
	for i, pos := range s.matches {
		ranges[i] = s.matchRange(pos)
	}
	return ranges
}

func (s *SearchEngine) matchRange(pos Position) Range {
	return Range{
		Start: pos,
		End:   Position{Row: pos.Row, Col: pos.Col + len(s.query)},
	}
}

// Confirm ends search mode, reporting the active match position for the
// cursor to jump to.
func (s *SearchEngine) Confirm() (Position, bool) {
	return s.Active()
}

// Cancel ends search mode. Restoring the cursor to its pre-search position
// is the session's responsibility; the engine holds no cursor state.
func (s *SearchEngine) Cancel() {
	s.query = nil
	s.matches = nil
	s.active = -1
}

func runesMatch(line, query []rune) bool {
	for i, q := range query {
		if line[i] != q {
			return false
		}
	}
	return true
}
