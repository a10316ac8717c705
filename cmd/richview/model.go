package main

import (
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/editor"
	"github.com/outlinelabs/richedit/frontend"
	"github.com/outlinelabs/richedit/reconcile"
	"github.com/outlinelabs/richedit/serialize"
)

// InputMode distinguishes plain navigation from text entry, the same
// split hiveexplorer's Model draws between NormalMode and its search/
// goto-path modes.
type InputMode int

const (
	NormalMode InputMode = iota
	InsertMode
)

// Model is richview's single bubbletea model: an Editor over one
// document, the flattened row list rendered from its current state,
// and the cursor/input-mode state the UI needs on top of that.
type Model struct {
	docPath string
	editor  *editor.Editor
	storage *frontend.MemoryStorage

	rows   []row
	cursor int

	keys      KeyMap
	inputMode InputMode
	input     textinput.Model

	width, height int
	showHelp      bool
	statusMessage string
	err           error
}

// NewModel loads docPath (or starts empty if it does not exist yet)
// and wires an Editor over it.
func NewModel(docPath string) (Model, error) {
	var state *doc.EditorState
	data, err := os.ReadFile(docPath)
	switch {
	case os.IsNotExist(err):
		state = doc.NewEmptyState()
	case err != nil:
		return Model{}, err
	default:
		state, err = serialize.FromJSON(data)
		if err != nil {
			return Model{}, err
		}
	}

	storage := frontend.NewMemoryStorage()
	e, err := editor.New(storage, editor.Config{Mode: reconcile.ModeOptimized, SanityChecks: true})
	if err != nil {
		return Model{}, err
	}
	if err := e.SetEditorState(state); err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "text to insert"
	ti.CharLimit = 0

	m := Model{
		docPath: docPath,
		editor:  e,
		storage: storage,
		keys:    DefaultKeyMap(),
		input:   ti,
	}
	m.refreshRows()
	return m, nil
}

func (m *Model) refreshRows() {
	m.rows = flattenTree(m.editor.GetEditorState())
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selectedKey() (doc.NodeKey, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return 0, false
	}
	return m.rows[m.cursor].key, true
}

func (m Model) Init() tea.Cmd {
	return nil
}
