package core

import "fmt"

// Position represents a specific location in the text buffer.
// Both coordinates are zero-based; Col is measured in characters (runes),
// never bytes. Col may equal the line length, meaning "at end of line".
type Position struct {
	Row int // Zero-indexed row (line number)
	Col int // Zero-indexed column (character position in the line)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Col)
}

// Compare returns -1 if p comes before other in reading order,
// 0 if they are equal, and 1 if p comes after other.
func (p Position) Compare(other Position) int {
	if p.Row < other.Row {
		return -1
	}
	if p.Row > other.Row {
		return 1
	}
	if p.Col < other.Col {
		return -1
	}
	if p.Col > other.Col {
		return 1
	}
	return 0
}

// Before returns true if p comes before other in reading order.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other in reading order.
func (p Position) After(other Position) bool {
	return p.Compare(other) > 0
}

// Range is a half-open span of buffer content: Start is included, End is not.
type Range struct {
	Start Position
	End   Position
}

func (r Range) String() string {
	return fmt.Sprintf("%s..%s", r.Start, r.End)
}

// IsEmpty returns true when the range covers no characters.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Normalize returns the range with its endpoints in reading order.
func (r Range) Normalize() Range {
	if r.Start.After(r.End) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// Contains reports whether pos falls inside the (normalized) range.
func (r Range) Contains(pos Position) bool {
	n := r.Normalize()
	return !pos.Before(n.Start) && pos.Before(n.End)
}
