package bubbleadapter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/quillpad/quill/core"
)

// renderContent builds the styled text for the visible window.
func (m *Model) renderContent() string {
	view := m.session.View()

	var highlighted []string
	if m.highlighter != nil {
		highlighted = m.highlighter.Lines(m.session.Buffer().Lines())
	}

	rendered := make([]string, 0, len(view.Lines))
	for i := range view.Lines {
		rendered = append(rendered, m.renderLine(view, highlighted, i))
	}

	return strings.Join(rendered, "\n")
}

func (m *Model) renderLine(view core.View, highlighted []string, i int) string {
	row := view.TopLine + i
	gutter := m.renderGutter(view, row)

	// A line with no overlays can use the highlighter's output directly.
	if m.highlighter != nil && !m.lineHasOverlay(view, row) {
		return gutter + highlighted[row]
	}

	runes := []rune(view.Lines[i])
	cursorHere := m.focused && row == view.Cursor.Row

	var sb strings.Builder
	var run []rune
	var runStyle *lipgloss.Style

	flush := func() {
		if len(run) == 0 {
			return
		}
		if runStyle != nil {
			sb.WriteString(runStyle.Render(string(run)))
		} else {
			sb.WriteString(string(run))
		}
		run = run[:0]
	}

	for col := 0; col <= len(runes); col++ {
		var style *lipgloss.Style
		if cursorHere && col == view.Cursor.Col {
			style = &m.theme.CursorStyle
		} else if col < len(runes) {
			style = m.styleAt(view, core.Position{Row: row, Col: col})
		}

		if !sameStyle(style, runStyle) {
			flush()
			runStyle = style
		}

		if col < len(runes) {
			run = append(run, runes[col])
		} else if cursorHere && col == view.Cursor.Col {
			// Cursor past the last character: render it on a padding cell.
			run = append(run, ' ')
		}
	}
	flush()

	return gutter + sb.String()
}

// styleAt resolves the overlay style for one buffer position. The active
// match wins over plain matches, which win over the selection.
func (m *Model) styleAt(view core.View, pos core.Position) *lipgloss.Style {
	if view.ActiveMatch != nil && view.ActiveMatch.Contains(pos) {
		return &m.theme.ActiveMatchStyle
	}
	for _, rng := range view.Matches {
		if rng.Contains(pos) {
			return &m.theme.MatchStyle
		}
	}
	if view.Selection != nil && view.Selection.Contains(pos) {
		return &m.theme.SelectionStyle
	}
	return nil
}

func (m *Model) lineHasOverlay(view core.View, row int) bool {
	if m.focused && row == view.Cursor.Row {
		return true
	}
	if view.Selection != nil && view.Selection.Start.Row <= row && row <= view.Selection.End.Row {
		return true
	}
	for _, rng := range view.Matches {
		if rng.Start.Row == row {
			return true
		}
	}
	return false
}

func (m *Model) renderGutter(view core.View, row int) string {
	if !m.showLineNumbers {
		return ""
	}
	num := strconv.Itoa(row + 1)
	if row == view.Cursor.Row {
		return m.theme.CurrentLineNumber.Render(num) + " "
	}
	return m.theme.LineNumberStyle.Render(num) + " "
}

func sameStyle(a, b *lipgloss.Style) bool {
	return a == b
}

func (m *Model) statusLine() string {
	if m.StatusLineFunc != nil {
		return m.StatusLineFunc()
	}

	var mode string
	if m.session.Searching() {
		mode = m.theme.SearchModeStyle.Render(" SEARCH ")
	} else {
		mode = m.theme.StatusModeStyle.Render(" EDIT ")
	}

	cursor := m.session.Cursor()
	modified := ""
	if m.session.Buffer().IsModified() {
		modified = "[+] "
	}
	info := fmt.Sprintf("%s%d:%d ", modified, cursor.Position.Row+1, cursor.Position.Col+1)

	gap := m.width - lipgloss.Width(mode) - lipgloss.Width(info)
	filler := m.theme.StatusLineStyle.Render(strings.Repeat(" ", max(0, gap)) + info)

	return mode + filler
}

func (m *Model) promptLine() string {
	var line string
	switch {
	case m.session.Searching():
		line = "/" + m.session.SearchQuery()
	case m.err != nil:
		line = m.theme.ErrorStyle.Render(m.err.Error())
	case m.message != "":
		line = m.theme.MessageStyle.Render(m.message)
	}

	padding := m.width - lipgloss.Width(line)
	if padding > 0 {
		line += m.theme.PromptStyle.Render(strings.Repeat(" ", padding))
	}
	return line
}
