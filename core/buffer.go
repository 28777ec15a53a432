package core

import (
	"bytes"
	"fmt"
	"strings"
)

// Buffer represents the text content being edited. Lines are stored as rune
// slices so that column addressing is always in characters, which keeps
// positions correct under multi-byte UTF-8.
type Buffer interface {
	// Content access
	LineCount() int                   // Number of lines (always >= 1)
	LineRuneCount(lineNum int) int    // Rune count for a line, 0 when out of range
	LineRunes(lineNum int) []rune     // Line as runes, nil when out of range
	LineLength(lineNum int) (int, error)
	LineText(lineNum int) (string, error)
	Lines() []string // All lines as strings (for saving/display)
	Content() string // Entire buffer content joined with "\n"

	// Modification. All mutations go through these two operations.
	Insert(pos Position, text string) (Position, error)
	Delete(rng Range) (string, error)

	// TextIn extracts the text covered by rng without mutating the buffer.
	TextIn(rng Range) (string, error)

	// Valid reports whether pos addresses an existing line with
	// col <= line length.
	Valid(pos Position) bool

	SetContent(content []byte) // Replace content (from file or other source)
	SavedContent() string      // Content as of the last MarkSaved
	MarkSaved()                // Record current content as the saved state
	IsModified() bool          // Whether content differs from the saved state
	IsEmpty() bool
}

// textBuffer implementation using rune slices per line.
type textBuffer struct {
	lines        [][]rune
	savedContent string
}

// NewBuffer creates a new empty buffer holding a single empty line.
func NewBuffer() Buffer {
	return &textBuffer{lines: [][]rune{{}}}
}

// NewBufferFromBytes creates a buffer from UTF-8 content and marks it saved.
func NewBufferFromBytes(content []byte) Buffer {
	b := &textBuffer{lines: [][]rune{{}}}
	b.SetContent(content)
	b.MarkSaved()
	return b
}

func (b *textBuffer) SetContent(content []byte) {
	runes := bytes.Runes(content)
	lines := make([][]rune, 0, 16)
	current := []rune{}

	for _, r := range runes {
		if r == '\n' {
			lines = append(lines, current)
			current = []rune{}
		} else {
			current = append(current, r)
		}
	}
	lines = append(lines, current)

	b.lines = lines
}

func (b *textBuffer) LineCount() int {
	return len(b.lines)
}

func (b *textBuffer) LineRuneCount(lineNum int) int {
	if lineNum < 0 || lineNum >= len(b.lines) {
		return 0
	}
	return len(b.lines[lineNum])
}

func (b *textBuffer) LineRunes(lineNum int) []rune {
	if lineNum < 0 || lineNum >= len(b.lines) {
		return nil
	}
	return b.lines[lineNum]
}

func (b *textBuffer) LineLength(lineNum int) (int, error) {
	if lineNum < 0 || lineNum >= len(b.lines) {
		return 0, fmt.Errorf("line %d: %w", lineNum, ErrOutOfBounds)
	}
	return len(b.lines[lineNum]), nil
}

func (b *textBuffer) LineText(lineNum int) (string, error) {
	if lineNum < 0 || lineNum >= len(b.lines) {
		return "", fmt.Errorf("line %d: %w", lineNum, ErrOutOfBounds)
	}
	return string(b.lines[lineNum]), nil
}

func (b *textBuffer) Lines() []string {
	lines := make([]string, len(b.lines))
	for i, r := range b.lines {
		lines[i] = string(r)
	}
	return lines
}

func (b *textBuffer) Content() string {
	return strings.Join(b.Lines(), "\n")
}

func (b *textBuffer) Valid(pos Position) bool {
	return pos.Row >= 0 && pos.Row < len(b.lines) &&
		pos.Col >= 0 && pos.Col <= len(b.lines[pos.Row])
}

func (b *textBuffer) IsEmpty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

func (b *textBuffer) SavedContent() string {
	return b.savedContent
}

func (b *textBuffer) MarkSaved() {
	b.savedContent = b.Content()
}

func (b *textBuffer) IsModified() bool {
	return b.savedContent != b.Content()
}

// Insert inserts text at pos, splitting lines wherever text contains "\n".
// It returns the position immediately after the inserted text, which is
// where the cursor belongs afterwards.
func (b *textBuffer) Insert(pos Position, text string) (Position, error) {
	if !b.Valid(pos) {
		return Position{}, fmt.Errorf("insert at %s: %w", pos, ErrOutOfBounds)
	}
	if text == "" {
		return pos, nil
	}

	line := b.lines[pos.Row]
	parts := strings.Split(text, "\n")

	if len(parts) == 1 {
		ins := []rune(text)
		newLine := make([]rune, 0, len(line)+len(ins))
		newLine = append(newLine, line[:pos.Col]...)
		newLine = append(newLine, ins...)
		newLine = append(newLine, line[pos.Col:]...)
		b.lines[pos.Row] = newLine
		return Position{Row: pos.Row, Col: pos.Col + len(ins)}, nil
	}

	// Text spans line boundaries: the current line splits at pos.Col, the
	// head keeps the first part, and the tail moves to the last new line.
	tail := make([]rune, len(line)-pos.Col)
	copy(tail, line[pos.Col:])

	head := make([]rune, 0, pos.Col+len(parts[0]))
	head = append(head, line[:pos.Col]...)
	head = append(head, []rune(parts[0])...)
	b.lines[pos.Row] = head

	newLines := make([][]rune, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		newLines[i-1] = []rune(parts[i])
	}
	endCol := len(newLines[len(newLines)-1])
	newLines[len(newLines)-1] = append(newLines[len(newLines)-1], tail...)

	rest := make([][]rune, len(b.lines)-(pos.Row+1))
	copy(rest, b.lines[pos.Row+1:])

	merged := b.lines[:pos.Row+1]
	merged = append(merged, newLines...)
	merged = append(merged, rest...)
	b.lines = merged

	return Position{Row: pos.Row + len(parts) - 1, Col: endCol}, nil
}

// Delete removes the characters covered by rng (start inclusive, end
// exclusive, start <= end in reading order) and returns the exact removed
// text, with "\n" standing in for each crossed line boundary. Deleting
// across a boundary merges the surrounding lines.
func (b *textBuffer) Delete(rng Range) (string, error) {
	removed, err := b.TextIn(rng)
	if err != nil {
		return "", fmt.Errorf("delete: %w", err)
	}
	if rng.IsEmpty() {
		return "", nil
	}

	if rng.Start.Row == rng.End.Row {
		line := b.lines[rng.Start.Row]
		newLine := make([]rune, 0, len(line)-(rng.End.Col-rng.Start.Col))
		newLine = append(newLine, line[:rng.Start.Col]...)
		newLine = append(newLine, line[rng.End.Col:]...)
		b.lines[rng.Start.Row] = newLine
		return removed, nil
	}

	head := b.lines[rng.Start.Row][:rng.Start.Col]
	tail := b.lines[rng.End.Row][rng.End.Col:]
	merged := make([]rune, 0, len(head)+len(tail))
	merged = append(merged, head...)
	merged = append(merged, tail...)

	b.lines[rng.Start.Row] = merged
	b.lines = append(b.lines[:rng.Start.Row+1], b.lines[rng.End.Row+1:]...)

	return removed, nil
}

func (b *textBuffer) TextIn(rng Range) (string, error) {
	if !b.Valid(rng.Start) || !b.Valid(rng.End) || rng.Start.After(rng.End) {
		return "", fmt.Errorf("range %s: %w", rng, ErrOutOfBounds)
	}

	if rng.Start.Row == rng.End.Row {
		return string(b.lines[rng.Start.Row][rng.Start.Col:rng.End.Col]), nil
	}

	var sb strings.Builder
	sb.WriteString(string(b.lines[rng.Start.Row][rng.Start.Col:]))
	sb.WriteByte('\n')
	for row := rng.Start.Row + 1; row < rng.End.Row; row++ {
		sb.WriteString(string(b.lines[row]))
		sb.WriteByte('\n')
	}
	sb.WriteString(string(b.lines[rng.End.Row][:rng.End.Col]))

	return sb.String(), nil
}
