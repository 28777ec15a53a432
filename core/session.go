package core

import (
	"fmt"
	"strings"
)

// Clipboard abstracts the system clipboard so the core stays free of
// platform concerns. The adapter supplies an implementation.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// Session is the editing session: one buffer, one cursor, one edit history,
// and at most one active search engine. External key events arrive as
// Commands; the session translates them into component calls and keeps the
// central ordering invariant: every buffer mutation is immediately followed
// by a cursor revalidation and a history record, before the next command.
//
// The session is single-threaded by design. One sequence of key events
// mutates it one command at a time; no operation suspends or blocks.
type Session struct {
	buffer  Buffer
	cursor  Cursor
	history *EditHistory

	search    *SearchEngine
	preSearch Cursor // cursor to restore when search is cancelled

	clipboard Clipboard
	signals   chan Signal

	topLine int // first visible line of the viewport
	height  int // viewport height in lines

	lastCmd CommandKind // previous editing command, for coalescing
	quit    bool
}

// NewSession creates an editing session over an empty buffer. clipboard may
// be nil, in which case the clipboard commands report an error.
func NewSession(clipboard Clipboard) *Session {
	return &Session{
		buffer:    NewBuffer(),
		history:   NewHistory(0),
		clipboard: clipboard,
		signals:   make(chan Signal, 100),
		height:    24,
	}
}

// SetContent replaces the buffer content, resetting cursor, history and any
// active search.
func (s *Session) SetContent(content []byte) {
	s.buffer = NewBufferFromBytes(content)
	s.cursor = Cursor{}
	s.history.Clear()
	s.search = nil
	s.topLine = 0
}

// Buffer exposes the session's buffer for read-only collaborators such as
// renderers and highlighters.
func (s *Session) Buffer() Buffer {
	return s.buffer
}

// Cursor returns the current cursor.
func (s *Session) Cursor() Cursor {
	return s.cursor
}

// History exposes the edit history, mainly for status display.
func (s *Session) History() *EditHistory {
	return s.history
}

// Searching reports whether an incremental search is in progress.
func (s *Session) Searching() bool {
	return s.search != nil
}

// SearchQuery returns the live query while searching, "" otherwise.
func (s *Session) SearchQuery() string {
	if s.search == nil {
		return ""
	}
	return s.search.Query()
}

// Quitting reports whether a quit command was applied.
func (s *Session) Quitting() bool {
	return s.quit
}

// Signals returns the read-only update channel for the consumer.
func (s *Session) Signals() <-chan Signal {
	return s.signals
}

// SetMaxHistory bounds the number of undo records kept.
func (s *Session) SetMaxHistory(maxEntries int) {
	s.history.SetMaxEntries(maxEntries)
}

// SetViewportHeight tells the session how many lines are visible so it can
// keep the cursor scrolled into view.
func (s *Session) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	s.height = height
	s.scrollToCursor()
}

// Apply processes one logical command. Boundary conditions (start/end of
// buffer, nothing to undo) are returned as their sentinel errors for the
// caller to surface as status information; they leave the session valid.
func (s *Session) Apply(cmd Command) error {
	if s.search != nil {
		return s.applySearching(cmd)
	}

	err := s.applyEditing(cmd)
	s.lastCmd = cmd.Kind
	s.scrollToCursor()
	return err
}

func (s *Session) applyEditing(cmd Command) error {
	switch cmd.Kind {
	case CmdNone:
		return nil

	case CmdMoveLeft:
		s.cursor.ClearSelection()
		return s.cursor.MoveLeft(s.buffer)
	case CmdMoveRight:
		s.cursor.ClearSelection()
		return s.cursor.MoveRight(s.buffer)
	case CmdMoveUp:
		s.cursor.ClearSelection()
		return s.cursor.MoveUp(s.buffer)
	case CmdMoveDown:
		s.cursor.ClearSelection()
		return s.cursor.MoveDown(s.buffer)
	case CmdMoveLineStart:
		s.cursor.ClearSelection()
		s.cursor.MoveLineStart()
		return nil
	case CmdMoveLineEnd:
		s.cursor.ClearSelection()
		s.cursor.MoveLineEnd(s.buffer)
		return nil

	case CmdSelectLeft:
		return s.moveSelecting(func() error { return s.cursor.MoveLeft(s.buffer) })
	case CmdSelectRight:
		return s.moveSelecting(func() error { return s.cursor.MoveRight(s.buffer) })
	case CmdSelectUp:
		return s.moveSelecting(func() error { return s.cursor.MoveUp(s.buffer) })
	case CmdSelectDown:
		return s.moveSelecting(func() error { return s.cursor.MoveDown(s.buffer) })
	case CmdSelectLineStart:
		return s.moveSelecting(func() error { s.cursor.MoveLineStart(); return nil })
	case CmdSelectLineEnd:
		return s.moveSelecting(func() error { s.cursor.MoveLineEnd(s.buffer); return nil })

	case CmdInsertChar:
		if cmd.Rune == 0 {
			return nil
		}
		return s.insert(string(cmd.Rune), s.lastCmd == CmdInsertChar || s.lastCmd == CmdInsertNewline)
	case CmdInsertNewline:
		return s.insert("\n", s.lastCmd == CmdInsertChar || s.lastCmd == CmdInsertNewline)
	case CmdInsertText:
		if cmd.Text == "" {
			return nil
		}
		return s.insert(cmd.Text, false)

	case CmdDeleteBackward:
		return s.deleteBackward()
	case CmdDeleteForward:
		return s.deleteForward()
	case CmdDeleteSelection:
		if sel, ok := s.cursor.Selection(); ok && !sel.IsEmpty() {
			return s.deleteRange(sel, false)
		}
		s.cursor.ClearSelection()
		return nil
	case CmdKillToLineEnd:
		return s.killToLineEnd()

	case CmdUndo:
		return s.undo()
	case CmdRedo:
		return s.redo()

	case CmdCopy:
		return s.copySelection(false)
	case CmdCut:
		return s.copySelection(true)
	case CmdPaste:
		return s.paste()

	case CmdStartSearch:
		s.preSearch = s.cursor
		s.cursor.ClearSelection()
		s.search = NewSearch(s.buffer, s.cursor.Position)
		return nil

	case CmdSave:
		s.save()
		return nil
	case CmdQuit:
		s.quit = true
		s.DispatchSignal(QuitSignal{})
		return nil

	default:
		if cmd.isSearchCommand() {
			return ErrNoActiveSearch
		}
		return nil
	}
}

// applySearching routes commands while the search prompt is open. Any
// command that is not part of the search contract confirms the search (the
// cursor stays on the active match) and is otherwise dropped, matching the
// prompt behavior of the original editor.
func (s *Session) applySearching(cmd Command) error {
	switch cmd.Kind {
	case CmdSearchInput:
		if cmd.Rune == 0 {
			return nil
		}
		s.search.AppendRune(cmd.Rune)
		s.jumpToActiveMatch()
		s.DispatchSignal(SearchResultsSignal{positions: s.search.Matches()})
		return nil

	case CmdSearchBackspace:
		s.search.DropRune()
		s.jumpToActiveMatch()
		s.DispatchSignal(SearchResultsSignal{positions: s.search.Matches()})
		return nil

	case CmdSearchSetQuery:
		s.search.UpdateQuery(cmd.Text)
		s.jumpToActiveMatch()
		s.DispatchSignal(SearchResultsSignal{positions: s.search.Matches()})
		return nil

	case CmdSearchNext:
		if pos, ok := s.search.Next(); ok {
			s.moveCursorTo(pos)
		}
		return nil

	case CmdSearchPrevious:
		if pos, ok := s.search.Prev(); ok {
			s.moveCursorTo(pos)
		}
		return nil

	case CmdSearchConfirm:
		s.confirmSearch()
		return nil

	case CmdSearchCancel:
		s.search.Cancel()
		s.search = nil
		s.cursor = s.preSearch
		s.cursor.ClampTo(s.buffer)
		s.lastCmd = CmdSearchCancel
		s.scrollToCursor()
		return nil

	case CmdQuit:
		s.quit = true
		s.DispatchSignal(QuitSignal{})
		return nil

	case CmdStartSearch:
		return nil

	default:
		s.confirmSearch()
		return nil
	}
}

func (s *Session) confirmSearch() {
	if pos, ok := s.search.Confirm(); ok {
		s.moveCursorTo(pos)
	}
	s.search = nil
	// Confirming a search is an explicit coalescing boundary.
	s.lastCmd = CmdSearchConfirm
	s.scrollToCursor()
}

func (s *Session) jumpToActiveMatch() {
	if pos, ok := s.search.Active(); ok {
		s.moveCursorTo(pos)
	}
	s.scrollToCursor()
}

func (s *Session) moveCursorTo(pos Position) {
	s.cursor.Position = pos
	s.cursor.Preferred = pos.Col
	s.cursor.ClampTo(s.buffer)
}

func (s *Session) moveSelecting(move func() error) error {
	if s.cursor.Anchor == nil {
		anchor := s.cursor.Position
		s.cursor.Anchor = &anchor
	}
	return move()
}

// insert performs one atomic insertion at the cursor. An active selection
// turns it into a replacement. Mutation, clamp, record -- in that order.
func (s *Session) insert(text string, coalesce bool) error {
	if sel, ok := s.cursor.Selection(); ok && !sel.IsEmpty() {
		return s.replaceRange(sel, text)
	}
	s.cursor.ClearSelection()

	before := s.cursor
	pos := s.cursor.Position

	newPos, err := s.buffer.Insert(pos, text)
	if err != nil {
		return fmt.Errorf("insert: %w", err)
	}

	s.cursor.Position = newPos
	s.cursor.Preferred = newPos.Col
	s.cursor.ClampTo(s.buffer)
	s.history.RecordInsert(pos, text, before, s.cursor, coalesce)
	return nil
}

// replaceRange swaps the text covered by rng for text as a single undo
// unit, placing the cursor after the inserted text.
func (s *Session) replaceRange(rng Range, text string) error {
	before := s.cursor

	removed, err := s.buffer.Delete(rng)
	if err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	newPos, err := s.buffer.Insert(rng.Start, text)
	if err != nil {
		return fmt.Errorf("replace: %w", err)
	}

	s.cursor.Position = newPos
	s.cursor.Preferred = newPos.Col
	s.cursor.ClearSelection()
	s.cursor.ClampTo(s.buffer)
	s.history.RecordReplace(rng.Start, removed, text, before, s.cursor)
	return nil
}

// deleteRange performs one atomic deletion, placing the cursor at the range
// start. Mutation, clamp, record -- in that order.
func (s *Session) deleteRange(rng Range, coalesce bool) error {
	before := s.cursor

	removed, err := s.buffer.Delete(rng)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	s.cursor.Position = rng.Start
	s.cursor.Preferred = rng.Start.Col
	s.cursor.ClearSelection()
	s.cursor.ClampTo(s.buffer)
	s.history.RecordDelete(rng.Start, removed, before, s.cursor, coalesce)
	return nil
}

func (s *Session) deleteBackward() error {
	if sel, ok := s.cursor.Selection(); ok && !sel.IsEmpty() {
		return s.deleteRange(sel, false)
	}
	s.cursor.ClearSelection()

	pos := s.cursor.Position
	switch {
	case pos.Col > 0:
		rng := Range{
			Start: Position{Row: pos.Row, Col: pos.Col - 1},
			End:   pos,
		}
		return s.deleteRange(rng, s.lastCmd == CmdDeleteBackward)
	case pos.Row > 0:
		// At line start: delete the boundary, merging with the previous line.
		rng := Range{
			Start: Position{Row: pos.Row - 1, Col: s.buffer.LineRuneCount(pos.Row - 1)},
			End:   Position{Row: pos.Row, Col: 0},
		}
		return s.deleteRange(rng, s.lastCmd == CmdDeleteBackward)
	default:
		return ErrStartOfBuffer
	}
}

func (s *Session) deleteForward() error {
	if sel, ok := s.cursor.Selection(); ok && !sel.IsEmpty() {
		return s.deleteRange(sel, false)
	}
	s.cursor.ClearSelection()

	pos := s.cursor.Position
	switch {
	case pos.Col < s.buffer.LineRuneCount(pos.Row):
		rng := Range{
			Start: pos,
			End:   Position{Row: pos.Row, Col: pos.Col + 1},
		}
		return s.deleteRange(rng, s.lastCmd == CmdDeleteForward)
	case pos.Row < s.buffer.LineCount()-1:
		rng := Range{
			Start: pos,
			End:   Position{Row: pos.Row + 1, Col: 0},
		}
		return s.deleteRange(rng, s.lastCmd == CmdDeleteForward)
	default:
		return ErrEndOfBuffer
	}
}

// killToLineEnd deletes from the cursor to the end of the line as one undo
// unit. When the cursor already sits at the line end, it deletes the line
// boundary instead, joining with the next line.
func (s *Session) killToLineEnd() error {
	s.cursor.ClearSelection()

	pos := s.cursor.Position
	lineLen := s.buffer.LineRuneCount(pos.Row)

	if pos.Col < lineLen {
		rng := Range{Start: pos, End: Position{Row: pos.Row, Col: lineLen}}
		return s.deleteRange(rng, false)
	}
	if pos.Row < s.buffer.LineCount()-1 {
		rng := Range{Start: pos, End: Position{Row: pos.Row + 1, Col: 0}}
		return s.deleteRange(rng, false)
	}
	return ErrEndOfBuffer
}

func (s *Session) undo() error {
	cur, err := s.history.Undo(s.buffer)
	if err != nil {
		return err
	}
	s.cursor = cur
	s.cursor.ClearSelection()
	s.cursor.ClampTo(s.buffer)
	return nil
}

func (s *Session) redo() error {
	cur, err := s.history.Redo(s.buffer)
	if err != nil {
		return err
	}
	s.cursor = cur
	s.cursor.ClearSelection()
	s.cursor.ClampTo(s.buffer)
	return nil
}

// copySelection writes the selection (or the current line when nothing is
// selected) to the clipboard. With cut set, the selection is also deleted
// as one undo unit.
func (s *Session) copySelection(cut bool) error {
	if s.clipboard == nil {
		return fmt.Errorf("clipboard not available")
	}

	sel, ok := s.cursor.Selection()
	if !ok || sel.IsEmpty() {
		// Line-wise copy of the current line, trailing boundary included.
		row := s.cursor.Position.Row
		text, err := s.buffer.LineText(row)
		if err != nil {
			return err
		}
		if err := s.clipboard.Write(text + "\n"); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		s.DispatchSignal(CopySignal{content: text + "\n"})
		return nil
	}

	text, err := s.buffer.TextIn(sel)
	if err != nil {
		return err
	}
	if err := s.clipboard.Write(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	s.DispatchSignal(CopySignal{content: text})

	if cut {
		return s.deleteRange(sel, false)
	}
	return nil
}

func (s *Session) paste() error {
	if s.clipboard == nil {
		return fmt.Errorf("clipboard not available")
	}
	content, err := s.clipboard.Read()
	if err != nil {
		return fmt.Errorf("read clipboard: %w", err)
	}
	if content == "" {
		return nil
	}
	// Normalize foreign line endings; the buffer speaks "\n" only.
	content = strings.ReplaceAll(content, "\r\n", "\n")

	if err := s.insert(content, false); err != nil {
		return err
	}
	s.DispatchSignal(PasteSignal{content: content})
	return nil
}

// save snapshots the buffer and hands the content to the consumer. Saving
// marks the buffer clean but never clears the undo history, so an IO
// failure on the consumer side loses nothing.
func (s *Session) save() {
	s.buffer.MarkSaved()
	s.DispatchSignal(SaveSignal{content: s.buffer.SavedContent()})
}

// scrollToCursor keeps the cursor row inside the visible window.
func (s *Session) scrollToCursor() {
	row := s.cursor.Position.Row
	if row < s.topLine {
		s.topLine = row
	} else if row >= s.topLine+s.height {
		s.topLine = row - s.height + 1
	}
	if s.topLine < 0 {
		s.topLine = 0
	}
}
