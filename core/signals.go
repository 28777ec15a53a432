package core

import "log"

// Signal is an update event the session pushes to its consumer (typically
// the rendering adapter) over a buffered channel.
type Signal any

// SaveSignal carries the buffer content to persist. File IO belongs to the
// consumer; the session only snapshots and marks the buffer saved.
type SaveSignal struct {
	content string
}

func (s SaveSignal) Value() string {
	return s.content
}

// QuitSignal asks the consumer to shut the editor down.
type QuitSignal struct{}

// MessageSignal carries a transient status message.
type MessageSignal struct {
	message string
}

func (m MessageSignal) Value() string {
	return m.message
}

// ErrorSignal carries an error to surface on the status line.
type ErrorSignal struct {
	err error
}

func (e ErrorSignal) Value() error {
	return e.err
}

// SearchResultsSignal carries the match positions after a query change.
type SearchResultsSignal struct {
	positions []Position
}

func (s SearchResultsSignal) Value() []Position {
	return s.positions
}

// CopySignal reports text written to the clipboard.
type CopySignal struct {
	content string
}

func (c CopySignal) Value() string {
	return c.content
}

// PasteSignal reports text inserted from the clipboard.
type PasteSignal struct {
	content string
}

func (p PasteSignal) Value() string {
	return p.content
}

// DispatchSignal sends a signal without blocking; a full channel drops it.
func (s *Session) DispatchSignal(signal Signal) {
	select {
	case s.signals <- signal:
	default:
		log.Println("session: signal channel full, dropping signal")
	}
}

// DispatchError sends an error signal without blocking.
func (s *Session) DispatchError(err error) {
	select {
	case s.signals <- ErrorSignal{err: err}:
	default:
		log.Println("session: signal channel full, dropping error:", err)
	}
}

// DispatchMessage sends a status message without blocking.
func (s *Session) DispatchMessage(message string) {
	select {
	case s.signals <- MessageSignal{message: message}:
	default:
		log.Println("session: signal channel full, dropping message:", message)
	}
}
