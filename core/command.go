package core

import "fmt"

// CommandKind enumerates the logical editor commands. The key-event
// dispatcher translates raw terminal input into these; the session maps
// each onto buffer, cursor, history and search calls. The enumeration is
// closed: unknown input becomes no command at all.
type CommandKind int

const (
	CmdNone CommandKind = iota

	// Movement
	CmdMoveLeft
	CmdMoveRight
	CmdMoveUp
	CmdMoveDown
	CmdMoveLineStart
	CmdMoveLineEnd

	// Selection (movement that extends the selection anchor)
	CmdSelectLeft
	CmdSelectRight
	CmdSelectUp
	CmdSelectDown
	CmdSelectLineStart
	CmdSelectLineEnd

	// Editing
	CmdInsertChar    // Rune carries the character
	CmdInsertNewline
	CmdInsertText    // Text carries the block, e.g. a paste; never coalesced
	CmdDeleteBackward
	CmdDeleteForward
	CmdDeleteSelection
	CmdKillToLineEnd
	CmdUndo
	CmdRedo

	// Clipboard
	CmdCopy
	CmdCut
	CmdPaste

	// Incremental search
	CmdStartSearch
	CmdSearchInput     // Rune carries the typed query character
	CmdSearchBackspace
	CmdSearchSetQuery  // Text carries the whole replacement query
	CmdSearchNext
	CmdSearchPrevious
	CmdSearchConfirm
	CmdSearchCancel

	// Session
	CmdSave
	CmdQuit
)

// Command is one logical key event: a kind plus its payload, if any.
type Command struct {
	Kind CommandKind
	Rune rune   // payload for CmdInsertChar and CmdSearchInput
	Text string // payload for CmdInsertText and CmdSearchSetQuery
}

// InsertChar builds an insertion command for a single typed character.
func InsertChar(r rune) Command {
	return Command{Kind: CmdInsertChar, Rune: r}
}

// InsertText builds an insertion command for a block of text.
func InsertText(text string) Command {
	return Command{Kind: CmdInsertText, Text: text}
}

// SearchInput builds a search-prompt input command.
func SearchInput(r rune) Command {
	return Command{Kind: CmdSearchInput, Rune: r}
}

// SearchSetQuery builds a command replacing the whole search query.
func SearchSetQuery(query string) Command {
	return Command{Kind: CmdSearchSetQuery, Text: query}
}

var commandNames = map[CommandKind]string{
	CmdNone:            "None",
	CmdMoveLeft:        "MoveLeft",
	CmdMoveRight:       "MoveRight",
	CmdMoveUp:          "MoveUp",
	CmdMoveDown:        "MoveDown",
	CmdMoveLineStart:   "MoveLineStart",
	CmdMoveLineEnd:     "MoveLineEnd",
	CmdSelectLeft:      "SelectLeft",
	CmdSelectRight:     "SelectRight",
	CmdSelectUp:        "SelectUp",
	CmdSelectDown:      "SelectDown",
	CmdSelectLineStart: "SelectLineStart",
	CmdSelectLineEnd:   "SelectLineEnd",
	CmdInsertChar:      "InsertChar",
	CmdInsertNewline:   "InsertNewline",
	CmdInsertText:      "InsertText",
	CmdDeleteBackward:  "DeleteBackward",
	CmdDeleteForward:   "DeleteForward",
	CmdDeleteSelection: "DeleteSelection",
	CmdKillToLineEnd:   "KillToLineEnd",
	CmdUndo:            "Undo",
	CmdRedo:            "Redo",
	CmdCopy:            "Copy",
	CmdCut:             "Cut",
	CmdPaste:           "Paste",
	CmdStartSearch:     "StartSearch",
	CmdSearchInput:     "SearchInput",
	CmdSearchBackspace: "SearchBackspace",
	CmdSearchSetQuery:  "SearchSetQuery",
	CmdSearchNext:      "SearchNext",
	CmdSearchPrevious:  "SearchPrevious",
	CmdSearchConfirm:   "SearchConfirm",
	CmdSearchCancel:    "SearchCancel",
	CmdSave:            "Save",
	CmdQuit:            "Quit",
}

func (c Command) String() string {
	name, ok := commandNames[c.Kind]
	if !ok {
		name = fmt.Sprintf("Command(%d)", c.Kind)
	}
	switch c.Kind {
	case CmdInsertChar, CmdSearchInput:
		return fmt.Sprintf("%s(%q)", name, c.Rune)
	case CmdInsertText, CmdSearchSetQuery:
		return fmt.Sprintf("%s(%q)", name, c.Text)
	default:
		return name
	}
}

// isSearchCommand reports whether the command belongs to the search prompt.
func (c Command) isSearchCommand() bool {
	switch c.Kind {
	case CmdSearchInput, CmdSearchBackspace, CmdSearchSetQuery,
		CmdSearchNext, CmdSearchPrevious, CmdSearchConfirm, CmdSearchCancel:
		return true
	}
	return false
}
