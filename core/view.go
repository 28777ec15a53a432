package core

import "github.com/rivo/uniseg"

// View is a render-ready, read-only snapshot of the session: the visible
// line texts, where the cursor sits on screen, and the highlight ranges the
// renderer needs. It is produced on demand after each processed command and
// holds no references into mutable session state.
type View struct {
	Lines   []string // visible lines, starting at TopLine
	TopLine int      // buffer row of Lines[0]

	Cursor          Position // cursor in buffer coordinates
	CursorScreenRow int      // cursor row within Lines
	CursorScreenCol int      // cursor column in display cells (grapheme-aware)

	Selection   *Range  // active selection, normalized, nil when none
	Matches     []Range // search matches intersecting the visible window
	ActiveMatch *Range  // the active match, nil when none

	Searching bool
	Query     string
	Modified  bool
}

// View builds the snapshot for the current viewport.
func (s *Session) View() View {
	lineCount := s.buffer.LineCount()
	top := s.topLine
	if top >= lineCount {
		top = lineCount - 1
	}
	bottom := min(top+s.height, lineCount)

	lines := make([]string, 0, bottom-top)
	for row := top; row < bottom; row++ {
		lines = append(lines, string(s.buffer.LineRunes(row)))
	}

	v := View{
		Lines:           lines,
		TopLine:         top,
		Cursor:          s.cursor.Position,
		CursorScreenRow: s.cursor.Position.Row - top,
		CursorScreenCol: s.screenCol(s.cursor.Position),
		Searching:       s.search != nil,
		Modified:        s.buffer.IsModified(),
	}

	if sel, ok := s.cursor.Selection(); ok && !sel.IsEmpty() {
		v.Selection = &sel
	}

	if s.search != nil {
		v.Query = s.search.Query()
		for _, rng := range s.search.MatchRanges() {
			if rng.Start.Row >= top && rng.Start.Row < bottom {
				v.Matches = append(v.Matches, rng)
			}
		}
		if active, ok := s.search.ActiveRange(); ok {
			v.ActiveMatch = &active
		}
	}

	return v
}

// screenCol converts a buffer column into display cells, accounting for
// wide characters and grapheme clusters.
func (s *Session) screenCol(pos Position) int {
	line := s.buffer.LineRunes(pos.Row)
	if pos.Col > len(line) {
		pos.Col = len(line)
	}
	return uniseg.StringWidth(string(line[:pos.Col]))
}
