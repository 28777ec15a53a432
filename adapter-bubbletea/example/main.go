package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	editor "github.com/quillpad/quill/adapter-bubbletea"
)

type Model struct {
	editor editor.Model
	file   string
}

func (m Model) Init() tea.Cmd {
	return m.editor.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor.SetSize(msg.Width, msg.Height)

	case editor.SaveMsg:
		if err := writeFileAtomic(m.file, []byte(msg.Content)); err != nil {
			return m, m.editor.DispatchError(err)
		}
		return m, m.editor.DispatchMessage(fmt.Sprintf("saved %s (%d bytes)", m.file, len(msg.Content)))

	case editor.CopyMsg:
		return m, m.editor.DispatchMessage(fmt.Sprintf("%d bytes copied", len(msg.Content)))

	case editor.SearchResultsMsg:
		if len(msg.Positions) == 0 {
			return m, m.editor.DispatchError(errors.New("no matches"))
		}

	case editor.QuitMsg:
		return m, tea.Quit
	}

	editorModel, cmd := m.editor.Update(msg)
	m.editor = editorModel.(editor.Model)

	return m, cmd
}

func (m Model) View() string {
	return m.editor.View()
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it into place, so an interrupted save never truncates the original.
func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".quill-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: quill <file>")
		os.Exit(2)
	}
	file := os.Args[1]

	// The alternate screen owns stdout, so logs go to a file.
	if logFile, err := os.OpenFile("quill.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		log.SetOutput(logFile)
		defer logFile.Close()
	}

	textEditor := editor.New(80, 24)
	textEditor.Focus()

	if ext := filepath.Ext(file); ext != "" {
		textEditor.WithHighlighter(ext[1:], "catppuccin-mocha")
	}

	// A missing file opens as an empty buffer and is created on save.
	if content, err := os.ReadFile(file); err == nil {
		textEditor.SetContent(content)
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("read %s: %v", file, err)
	}

	m := Model{
		editor: textEditor,
		file:   file,
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("error running program: %v", err)
	}
}
