package bubbleadapter

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillpad/quill/adapter-bubbletea/highlighter"
	"github.com/quillpad/quill/core"
)

const messageDuration = 3 * time.Second

// Theme collects the lipgloss styles the adapter renders with.
type Theme struct {
	StatusLineStyle   lipgloss.Style
	StatusModeStyle   lipgloss.Style
	SearchModeStyle   lipgloss.Style
	PromptStyle       lipgloss.Style
	MessageStyle      lipgloss.Style
	ErrorStyle        lipgloss.Style
	LineNumberStyle   lipgloss.Style
	CurrentLineNumber lipgloss.Style
	SelectionStyle    lipgloss.Style
	MatchStyle        lipgloss.Style
	ActiveMatchStyle  lipgloss.Style
	CursorStyle       lipgloss.Style
}

var DefaultTheme = Theme{
	StatusLineStyle:   lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	StatusModeStyle:   lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	SearchModeStyle:   lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("255")),
	PromptStyle:       lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	MessageStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	LineNumberStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(4).Align(lipgloss.Right),
	CurrentLineNumber: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Width(4).Align(lipgloss.Right),
	SelectionStyle:    lipgloss.NewStyle().Background(lipgloss.Color("237")),
	MatchStyle:        lipgloss.NewStyle().Background(lipgloss.Color("58")),
	ActiveMatchStyle:  lipgloss.NewStyle().Background(lipgloss.Color("220")).Foreground(lipgloss.Color("0")),
	CursorStyle:       lipgloss.NewStyle().Reverse(true),
}

// Messages the adapter emits for the embedding program.
type (
	// SaveMsg carries buffer content to persist; file IO is the program's job.
	SaveMsg struct{ Content string }
	// QuitMsg asks the program to exit.
	QuitMsg struct{}
	// ErrorMsg surfaces an error on the prompt line.
	ErrorMsg struct{ Err error }
	// SearchResultsMsg reports the match positions after a query change.
	SearchResultsMsg struct{ Positions []core.Position }
	// CopyMsg reports text written to the clipboard.
	CopyMsg struct{ Content string }

	messageMsg string
	clearMsg   struct{}
)

type atottoClipboard struct{}

func (c *atottoClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *atottoClipboard) Read() (string, error) {
	return clipboard.ReadAll()
}

// Model is a Bubble Tea component wrapping one editing session.
type Model struct {
	session  *core.Session
	viewport viewport.Model

	width  int
	height int

	showLineNumbers bool
	theme           Theme
	highlighter     *highlighter.Highlighter

	message string
	err     error
	focused bool

	// StatusLineFunc overrides the default status line when set.
	StatusLineFunc func() string
}

// New creates an adapter model with the system clipboard wired in.
func New(width, height int) Model {
	m := Model{
		session:         core.NewSession(&atottoClipboard{}),
		viewport:        viewport.New(width, max(1, height-2)),
		showLineNumbers: true,
		theme:           DefaultTheme,
		focused:         true,
	}
	m.SetSize(width, height)
	return m
}

// Session exposes the underlying editing session.
func (m *Model) Session() *core.Session {
	return m.session
}

// SetContent replaces the buffer content.
func (m *Model) SetContent(content []byte) {
	m.session.SetContent(content)
}

// Content returns the current (possibly unsaved) buffer content.
func (m *Model) Content() string {
	return m.session.Buffer().Content()
}

// HasChanges reports unsaved modifications.
func (m *Model) HasChanges() bool {
	return m.session.Buffer().IsModified()
}

// WithTheme sets a custom theme.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
}

// HideLineNumbers controls the line-number gutter.
func (m *Model) HideLineNumbers(hide bool) {
	m.showLineNumbers = !hide
}

// WithHighlighter enables syntax highlighting for the given language and
// chroma style name. The highlighting pass reads buffer lines only; it
// never feeds back into editing state.
func (m *Model) WithHighlighter(language, style string) {
	m.highlighter = highlighter.New(language, style)
}

// Focus directs key events to the editor.
func (m *Model) Focus() { m.focused = true }

// Blur stops the editor from handling key events.
func (m *Model) Blur() { m.focused = false }

// IsFocused reports whether the editor handles key events.
func (m *Model) IsFocused() bool { return m.focused }

// SetSize resizes the adapter; two rows are reserved for the status and
// prompt lines.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(1, height-2)
	m.session.SetViewportHeight(m.viewport.Height)
}

func (m Model) Init() tea.Cmd {
	return m.listenForSessionSignal()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if !m.focused {
			break
		}
		cmd := m.commandFor(msg)
		if cmd.Kind == core.CmdNone {
			break
		}
		if err := m.session.Apply(cmd); err != nil {
			m.message = ""
			m.err = err
			cmds = append(cmds, m.dispatchClear())
		}
		if m.highlighter != nil {
			m.highlighter.Invalidate()
		}

	case messageMsg:
		m.message = string(msg)
		m.err = nil
		cmds = append(cmds, m.dispatchClear())

	case ErrorMsg:
		m.message = ""
		m.err = msg.Err
		cmds = append(cmds, m.dispatchClear())

	case clearMsg:
		m.message = ""
		m.err = nil
	}

	cmds = append(cmds, m.listenForSessionSignal())

	var viewportCmd tea.Cmd
	m.viewport, viewportCmd = m.viewport.Update(msg)
	cmds = append(cmds, viewportCmd)

	m.viewport.SetContent(m.renderContent())

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewport.View(),
		m.statusLine(),
		m.promptLine(),
	)
}

// DispatchMessage shows a transient message on the prompt line.
func (m *Model) DispatchMessage(message string) tea.Cmd {
	return func() tea.Msg { return messageMsg(message) }
}

// DispatchError shows an error on the prompt line.
func (m *Model) DispatchError(err error) tea.Cmd {
	return func() tea.Msg { return ErrorMsg{Err: err} }
}

func (m *Model) dispatchClear() tea.Cmd {
	return tea.Tick(messageDuration, func(time.Time) tea.Msg {
		return clearMsg{}
	})
}

// listenForSessionSignal forwards session signals to the program as
// Bubble Tea messages.
func (m *Model) listenForSessionSignal() tea.Cmd {
	return func() tea.Msg {
		signal := <-m.session.Signals()

		switch signal := signal.(type) {
		case core.SaveSignal:
			return SaveMsg{Content: signal.Value()}
		case core.QuitSignal:
			return QuitMsg{}
		case core.MessageSignal:
			return messageMsg(signal.Value())
		case core.ErrorSignal:
			return ErrorMsg{Err: signal.Value()}
		case core.SearchResultsSignal:
			return SearchResultsMsg{Positions: signal.Value()}
		case core.CopySignal:
			return CopyMsg{Content: signal.Value()}
		case core.PasteSignal:
			return messageMsg(fmt.Sprintf("%d bytes pasted", len(signal.Value())))
		}

		return nil
	}
}

// commandFor translates a raw key event into a logical command. While the
// search prompt is open, printable input feeds the query instead of the
// buffer.
func (m *Model) commandFor(msg tea.KeyMsg) core.Command {
	if m.session.Searching() {
		switch msg.Type {
		case tea.KeyEnter:
			return core.Command{Kind: core.CmdSearchConfirm}
		case tea.KeyEsc:
			return core.Command{Kind: core.CmdSearchCancel}
		case tea.KeyBackspace:
			return core.Command{Kind: core.CmdSearchBackspace}
		case tea.KeyDown, tea.KeyCtrlN:
			return core.Command{Kind: core.CmdSearchNext}
		case tea.KeyUp, tea.KeyCtrlP:
			return core.Command{Kind: core.CmdSearchPrevious}
		case tea.KeySpace:
			return core.SearchInput(' ')
		case tea.KeyRunes:
			if len(msg.Runes) > 0 {
				return core.SearchInput(msg.Runes[0])
			}
		}
		return core.Command{Kind: core.CmdNone}
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return core.Command{Kind: core.CmdNone}
		}
		if len(msg.Runes) > 1 {
			// Bracketed paste arrives as one multi-rune event.
			return core.InsertText(string(msg.Runes))
		}
		return core.InsertChar(msg.Runes[0])
	case tea.KeySpace:
		return core.InsertChar(' ')
	case tea.KeyTab:
		return core.InsertChar('\t')
	case tea.KeyEnter:
		return core.Command{Kind: core.CmdInsertNewline}
	case tea.KeyBackspace:
		return core.Command{Kind: core.CmdDeleteBackward}
	case tea.KeyDelete:
		return core.Command{Kind: core.CmdDeleteForward}

	case tea.KeyLeft:
		return core.Command{Kind: core.CmdMoveLeft}
	case tea.KeyRight:
		return core.Command{Kind: core.CmdMoveRight}
	case tea.KeyUp:
		return core.Command{Kind: core.CmdMoveUp}
	case tea.KeyDown:
		return core.Command{Kind: core.CmdMoveDown}
	case tea.KeyHome:
		return core.Command{Kind: core.CmdMoveLineStart}
	case tea.KeyEnd:
		return core.Command{Kind: core.CmdMoveLineEnd}

	case tea.KeyShiftLeft:
		return core.Command{Kind: core.CmdSelectLeft}
	case tea.KeyShiftRight:
		return core.Command{Kind: core.CmdSelectRight}
	case tea.KeyShiftUp:
		return core.Command{Kind: core.CmdSelectUp}
	case tea.KeyShiftDown:
		return core.Command{Kind: core.CmdSelectDown}
	case tea.KeyShiftHome:
		return core.Command{Kind: core.CmdSelectLineStart}
	case tea.KeyShiftEnd:
		return core.Command{Kind: core.CmdSelectLineEnd}

	case tea.KeyCtrlZ:
		return core.Command{Kind: core.CmdUndo}
	case tea.KeyCtrlY:
		return core.Command{Kind: core.CmdRedo}
	case tea.KeyCtrlC:
		return core.Command{Kind: core.CmdCopy}
	case tea.KeyCtrlX:
		return core.Command{Kind: core.CmdCut}
	case tea.KeyCtrlV:
		return core.Command{Kind: core.CmdPaste}
	case tea.KeyCtrlK:
		return core.Command{Kind: core.CmdKillToLineEnd}
	case tea.KeyCtrlF:
		return core.Command{Kind: core.CmdStartSearch}
	case tea.KeyCtrlS:
		return core.Command{Kind: core.CmdSave}
	case tea.KeyCtrlQ:
		return core.Command{Kind: core.CmdQuit}
	}

	return core.Command{Kind: core.CmdNone}
}
