// Package highlighter renders buffer lines with chroma syntax highlighting
// for the Bubble Tea adapter.
package highlighter

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter tokenizes buffer content and renders styled lines. Rendered
// lines are cached until the next Invalidate call.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style

	mu         sync.RWMutex
	rendered   []string
	styleCache map[chroma.TokenType]lipgloss.Style
}

// New creates a highlighter for the given language and chroma style name.
// Unknown names fall back to chroma's defaults.
func New(language, theme string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	return &Highlighter{
		lexer:      chroma.Coalesce(lexer),
		style:      styles.Get(theme),
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// Invalidate drops the rendered-line cache. Call it after every edit; the
// next Lines call re-tokenizes.
func (h *Highlighter) Invalidate() {
	h.mu.Lock()
	h.rendered = nil
	h.mu.Unlock()
}

// Lines returns one styled string per input line. The whole content is
// tokenized in one pass so multi-line constructs (block comments, raw
// strings) highlight correctly.
func (h *Highlighter) Lines(lines []string) []string {
	h.mu.RLock()
	if h.rendered != nil && len(h.rendered) == len(lines) {
		rendered := h.rendered
		h.mu.RUnlock()
		return rendered
	}
	h.mu.RUnlock()

	h.mu.Lock()
	defer h.mu.Unlock()

	h.rendered = h.render(lines)
	return h.rendered
}

func (h *Highlighter) render(lines []string) []string {
	rendered := make([]string, len(lines))

	iterator, err := h.lexer.Tokenise(nil, strings.Join(lines, "\n"))
	if err != nil {
		copy(rendered, lines)
		return rendered
	}

	var sb strings.Builder
	lineNum := 0

	flush := func() {
		if lineNum < len(rendered) {
			rendered[lineNum] = sb.String()
		}
		sb.Reset()
		lineNum++
	}

	for _, token := range iterator.Tokens() {
		value := token.Value
		for strings.Contains(value, "\n") {
			before, after, _ := strings.Cut(value, "\n")
			if before != "" {
				sb.WriteString(h.styleFor(token.Type).Render(before))
			}
			flush()
			value = after
		}
		if value != "" {
			sb.WriteString(h.styleFor(token.Type).Render(value))
		}
	}
	flush()

	// Tokenization can come up short on trailing empty lines.
	for i := lineNum; i < len(rendered); i++ {
		rendered[i] = lines[i]
	}

	return rendered
}

// styleFor maps a chroma token type to a lipgloss style, memoized per type.
// Callers must hold the write lock.
func (h *Highlighter) styleFor(tokenType chroma.TokenType) lipgloss.Style {
	if style, ok := h.styleCache[tokenType]; ok {
		return style
	}

	entry := h.style.Get(tokenType)

	style := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	h.styleCache[tokenType] = style
	return style
}
