package command

// Type identifies an editing command. The set mirrors the operations
// selection and doc/edit already implement; command is purely a
// dispatch layer over them, not an alternate way to perform edits.
type Type uint8

const (
	InsertText Type = iota
	DeleteCharacterForward
	DeleteCharacterBackward
	DeleteWord
	DeleteLine
	InsertParagraph
	InsertLineBreak
	FormatText
	Indent
	Outdent
	Paste
	Copy
	Cut
	SelectionChange
)

func (t Type) String() string {
	switch t {
	case InsertText:
		return "INSERT_TEXT"
	case DeleteCharacterForward:
		return "DELETE_CHARACTER_FORWARD"
	case DeleteCharacterBackward:
		return "DELETE_CHARACTER_BACKWARD"
	case DeleteWord:
		return "DELETE_WORD"
	case DeleteLine:
		return "DELETE_LINE"
	case InsertParagraph:
		return "INSERT_PARAGRAPH"
	case InsertLineBreak:
		return "INSERT_LINE_BREAK"
	case FormatText:
		return "FORMAT_TEXT"
	case Indent:
		return "INDENT"
	case Outdent:
		return "OUTDENT"
	case Paste:
		return "PASTE"
	case Copy:
		return "COPY"
	case Cut:
		return "CUT"
	case SelectionChange:
		return "SELECTION_CHANGE"
	default:
		return "UNKNOWN_COMMAND"
	}
}

// Priority orders listeners for the same command. Higher values run
// first; a listener registered at PriorityEditor only runs if nothing
// above it already handled the command, the same role a plugin system
// gives its own built-in fallback behavior.
type Priority int

const (
	PriorityEditor Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityCritical
)

// Command is a dispatched instance of Type carrying whatever payload
// that command needs; Dispatch passes Payload through unexamined.
type Command struct {
	Type    Type
	Payload any
}

// Listener reacts to a dispatched Command. Returning handled=true stops
// the dispatch walk for that command. Returning a non-nil error also
// stops the walk; Dispatch surfaces it to the caller.
type Listener func(cmd Command) (handled bool, err error)
