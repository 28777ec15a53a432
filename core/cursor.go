package core

// Cursor represents the current position for editing operations, plus an
// optional selection anchor. When Anchor is nil there is no selection.
type Cursor struct {
	Position  Position
	Anchor    *Position
	Preferred int // Preferred column for vertical movement (sticky column)
}

// HasSelection reports whether a selection anchor is set.
func (c Cursor) HasSelection() bool {
	return c.Anchor != nil
}

// ExtendSelection sets the anchor at the current position if none exists,
// then moves the position to to, defining a selection from anchor to
// position. Consumers read it order-normalized via Selection.
func (c *Cursor) ExtendSelection(to Position) {
	if c.Anchor == nil {
		anchor := c.Position
		c.Anchor = &anchor
	}
	c.Position = to
}

// ClearSelection drops the anchor.
func (c *Cursor) ClearSelection() {
	c.Anchor = nil
}

// Selection returns the selected range in reading order, or false when no
// selection is active. An anchor equal to the position is an empty
// selection and still reported.
func (c Cursor) Selection() (Range, bool) {
	if c.Anchor == nil {
		return Range{}, false
	}
	return Range{Start: *c.Anchor, End: c.Position}.Normalize(), true
}

// --- Movement ---
//
// Movement operations read the buffer but never mutate it. Boundary
// conditions return a sentinel error and leave the cursor unchanged.

// MoveLeft moves one character left. At column 0 it moves to the end of the
// previous line when one exists, otherwise it reports ErrStartOfBuffer.
func (c *Cursor) MoveLeft(buffer Buffer) error {
	if c.Position.Col > 0 {
		c.Position.Col--
	} else if c.Position.Row > 0 {
		c.Position.Row--
		c.Position.Col = buffer.LineRuneCount(c.Position.Row)
	} else {
		return ErrStartOfBuffer
	}
	c.Preferred = c.Position.Col
	return nil
}

// MoveRight moves one character right. At end of line it moves to column 0
// of the next line when one exists, otherwise it reports ErrEndOfBuffer.
func (c *Cursor) MoveRight(buffer Buffer) error {
	if c.Position.Col < buffer.LineRuneCount(c.Position.Row) {
		c.Position.Col++
	} else if c.Position.Row < buffer.LineCount()-1 {
		c.Position.Row++
		c.Position.Col = 0
	} else {
		return ErrEndOfBuffer
	}
	c.Preferred = c.Position.Col
	return nil
}

// MoveUp moves one line up, restoring the preferred column where the target
// line allows it and clamping to the target line's length otherwise.
func (c *Cursor) MoveUp(buffer Buffer) error {
	if c.Position.Row <= 0 {
		return ErrStartOfBuffer
	}
	c.Position.Row--
	c.Position.Col = min(c.Preferred, buffer.LineRuneCount(c.Position.Row))
	return nil
}

// MoveDown moves one line down, restoring the preferred column where the
// target line allows it.
func (c *Cursor) MoveDown(buffer Buffer) error {
	if c.Position.Row >= buffer.LineCount()-1 {
		return ErrEndOfBuffer
	}
	c.Position.Row++
	c.Position.Col = min(c.Preferred, buffer.LineRuneCount(c.Position.Row))
	return nil
}

// MoveLineStart moves to column 0 of the current line.
func (c *Cursor) MoveLineStart() {
	c.Position.Col = 0
	c.Preferred = 0
}

// MoveLineEnd moves past the last character of the current line.
func (c *Cursor) MoveLineEnd(buffer Buffer) {
	c.Position.Col = buffer.LineRuneCount(c.Position.Row)
	c.Preferred = c.Position.Col
}

// ClampTo revalidates the position and the anchor against the buffer,
// moving any now-invalid coordinate to the nearest valid one. Called after
// every buffer mutation; it is the single place where silent correction is
// correct, so the cursor never references deleted content.
func (c *Cursor) ClampTo(buffer Buffer) {
	c.Position = clampPosition(buffer, c.Position)
	if c.Anchor != nil {
		anchor := clampPosition(buffer, *c.Anchor)
		c.Anchor = &anchor
	}
}

func clampPosition(buffer Buffer, pos Position) Position {
	if pos.Row < 0 {
		pos.Row = 0
	} else if pos.Row >= buffer.LineCount() {
		pos.Row = buffer.LineCount() - 1
	}

	lineLen := buffer.LineRuneCount(pos.Row)
	if pos.Col < 0 {
		pos.Col = 0
	} else if pos.Col > lineLen {
		pos.Col = lineLen
	}

	return pos
}
