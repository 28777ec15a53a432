package core

const defaultMaxHistory = 1000

type editKind int

const (
	editInsert editKind = iota
	editDelete
	editReplace
)

// editRecord describes one atomic, reversible mutation: what kind it was,
// where it occurred, the exact text involved, and the cursor on either side
// of it so undo/redo can restore the caller's view. A replace record holds
// both sides: text is what went in, oldText what it displaced.
type editRecord struct {
	kind         editKind
	pos          Position
	text         string
	oldText      string
	cursorBefore Cursor
	cursorAfter  Cursor
}

// end returns the position just past the record's text, counting line
// boundaries the same way the buffer does.
func (r *editRecord) end() Position {
	return advance(r.pos, r.text)
}

// advance walks text from start, returning where the text ends in the
// buffer once present there.
func advance(start Position, text string) Position {
	row, col := start.Row, start.Col
	for _, ch := range text {
		if ch == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
	return Position{Row: row, Col: col}
}

// EditHistory records inverse operations for every buffer mutation,
// enabling undo/redo. Two stacks: records move from the undo stack to the
// redo stack on undo and back on redo; any new record clears the redo stack
// (linear history, undo branches are not preserved).
type EditHistory struct {
	undos      []*editRecord
	redos      []*editRecord
	maxEntries int
}

// NewHistory creates an edit history bounded to maxEntries records,
// dropping the oldest when the bound is exceeded. maxEntries <= 0 selects
// the default of 1000.
func NewHistory(maxEntries int) *EditHistory {
	if maxEntries <= 0 {
		maxEntries = defaultMaxHistory
	}
	return &EditHistory{maxEntries: maxEntries}
}

// RecordInsert pushes a record for an insertion of text at pos. When
// coalesce is set and the previous record is an insertion ending exactly at
// pos, the two merge into one undo unit. The coalesce decision belongs to
// the session (ordinary typing), never to the stacks themselves.
func (h *EditHistory) RecordInsert(pos Position, text string, before, after Cursor, coalesce bool) {
	if text == "" {
		return
	}

	if coalesce && len(h.undos) > 0 {
		last := h.undos[len(h.undos)-1]
		if (last.kind == editInsert || last.kind == editReplace) && last.end() == pos {
			last.text += text
			last.cursorAfter = after
			h.redos = nil
			return
		}
	}

	h.push(&editRecord{
		kind:         editInsert,
		pos:          pos,
		text:         text,
		cursorBefore: before,
		cursorAfter:  after,
	})
}

// RecordDelete pushes a record for a deletion whose removed text started at
// pos. With coalesce set, adjacent deletions merge: a new deletion ending
// where the previous one started (backspacing) prepends, and a new deletion
// at the previous record's position (forward delete) appends.
func (h *EditHistory) RecordDelete(pos Position, text string, before, after Cursor, coalesce bool) {
	if text == "" {
		return
	}

	if coalesce && len(h.undos) > 0 {
		last := h.undos[len(h.undos)-1]
		if last.kind == editDelete {
			switch {
			case advance(pos, text) == last.pos:
				last.pos = pos
				last.text = text + last.text
				last.cursorAfter = after
				h.redos = nil
				return
			case pos == last.pos:
				last.text += text
				last.cursorAfter = after
				h.redos = nil
				return
			}
		}
	}

	h.push(&editRecord{
		kind:         editDelete,
		pos:          pos,
		text:         text,
		cursorBefore: before,
		cursorAfter:  after,
	})
}

// RecordReplace pushes a record for a deletion and insertion performed at
// pos as one atomic unit, such as typing over a selection. Never coalesced
// with the previous record, but subsequent typing may coalesce onto it.
func (h *EditHistory) RecordReplace(pos Position, oldText, newText string, before, after Cursor) {
	if oldText == "" && newText == "" {
		return
	}

	h.push(&editRecord{
		kind:         editReplace,
		pos:          pos,
		text:         newText,
		oldText:      oldText,
		cursorBefore: before,
		cursorAfter:  after,
	})
}

func (h *EditHistory) push(rec *editRecord) {
	h.undos = append(h.undos, rec)
	h.redos = nil

	if len(h.undos) > h.maxEntries {
		excess := len(h.undos) - h.maxEntries
		h.undos = h.undos[excess:]
	}
}

// Undo reverts the most recent record against buf: an insertion is deleted,
// a deletion is re-inserted. The record moves to the redo stack and the
// cursor as it was before the mutation is returned for the caller to
// restore. Returns ErrNothingToUndo when the undo stack is empty.
func (h *EditHistory) Undo(buf Buffer) (Cursor, error) {
	if len(h.undos) == 0 {
		return Cursor{}, ErrNothingToUndo
	}

	rec := h.undos[len(h.undos)-1]
	h.undos = h.undos[:len(h.undos)-1]

	var err error
	switch rec.kind {
	case editInsert:
		_, err = buf.Delete(Range{Start: rec.pos, End: rec.end()})
	case editDelete:
		_, err = buf.Insert(rec.pos, rec.text)
	case editReplace:
		if _, err = buf.Delete(Range{Start: rec.pos, End: rec.end()}); err == nil {
			_, err = buf.Insert(rec.pos, rec.oldText)
		}
	}
	if err != nil {
		h.undos = append(h.undos, rec)
		return Cursor{}, err
	}

	h.redos = append(h.redos, rec)
	return rec.cursorBefore, nil
}

// Redo re-applies the most recently undone record, moves it back onto the
// undo stack, and returns the post-mutation cursor. Returns
// ErrNothingToRedo when the redo stack is empty.
func (h *EditHistory) Redo(buf Buffer) (Cursor, error) {
	if len(h.redos) == 0 {
		return Cursor{}, ErrNothingToRedo
	}

	rec := h.redos[len(h.redos)-1]
	h.redos = h.redos[:len(h.redos)-1]

	var err error
	switch rec.kind {
	case editInsert:
		_, err = buf.Insert(rec.pos, rec.text)
	case editDelete:
		_, err = buf.Delete(Range{Start: rec.pos, End: rec.end()})
	case editReplace:
		if _, err = buf.Delete(Range{Start: rec.pos, End: advance(rec.pos, rec.oldText)}); err == nil {
			_, err = buf.Insert(rec.pos, rec.text)
		}
	}
	if err != nil {
		h.redos = append(h.redos, rec)
		return Cursor{}, err
	}

	h.undos = append(h.undos, rec)
	return rec.cursorAfter, nil
}

// CanUndo returns true if undo is available.
func (h *EditHistory) CanUndo() bool {
	return len(h.undos) > 0
}

// CanRedo returns true if redo is available.
func (h *EditHistory) CanRedo() bool {
	return len(h.redos) > 0
}

// UndoCount returns the number of undo records available.
func (h *EditHistory) UndoCount() int {
	return len(h.undos)
}

// RedoCount returns the number of redo records available.
func (h *EditHistory) RedoCount() int {
	return len(h.redos)
}

// Clear removes all history.
func (h *EditHistory) Clear() {
	h.undos = nil
	h.redos = nil
}

// SetMaxEntries changes the history bound, trimming the oldest records if
// the stack is already larger.
func (h *EditHistory) SetMaxEntries(maxEntries int) {
	if maxEntries <= 0 {
		maxEntries = defaultMaxHistory
	}
	h.maxEntries = maxEntries
	if len(h.undos) > maxEntries {
		h.undos = h.undos[len(h.undos)-maxEntries:]
	}
}
