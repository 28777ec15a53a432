package core

import "errors"

var (
	// ErrOutOfBounds reports an invalid Position or Range handed to the
	// buffer. The session's post-mutation clamping is supposed to prevent
	// it, so seeing it indicates a caller bug, not a user-visible failure.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrNothingToUndo and ErrNothingToRedo are expected steady states of
	// the edit history, surfaced as status information rather than failures.
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrNoActiveSearch reports a search command applied while no search
	// session is open.
	ErrNoActiveSearch = errors.New("no active search")

	// Movement boundary conditions. Normal steady states: the cursor stays
	// put and the caller may show a status message.
	ErrStartOfBuffer = errors.New("start of buffer")
	ErrEndOfBuffer   = errors.New("end of buffer")
	ErrStartOfLine   = errors.New("start of line")
	ErrEndOfLine     = errors.New("end of line")
)

// IsBoundary reports whether err is one of the movement boundary conditions
// that leave the editor state untouched.
func IsBoundary(err error) bool {
	return errors.Is(err, ErrStartOfBuffer) ||
		errors.Is(err, ErrEndOfBuffer) ||
		errors.Is(err, ErrStartOfLine) ||
		errors.Is(err, ErrEndOfLine)
}
