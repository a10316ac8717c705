package main

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/outlinelabs/richedit/doc"
	"github.com/outlinelabs/richedit/doc/tx"
	"github.com/outlinelabs/richedit/selection"
	"github.com/outlinelabs/richedit/serialize"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Esc) || key.Matches(msg, m.keys.Quit) {
				m.showHelp = false
			}
			return m, nil
		}
		if m.inputMode == InsertMode {
			return m.updateInsertMode(msg)
		}
		return m.updateNormalMode(msg)
	}
	return m, nil
}

func (m Model) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Insert):
		if nodeKey, ok := m.selectedKey(); ok {
			if _, err := m.editor.GetEditorState().Text(nodeKey); err == nil {
				m.inputMode = InsertMode
				m.input.SetValue("")
				m.input.Focus()
			} else {
				m.statusMessage = "select a text node to insert into"
			}
		}
	case key.Matches(msg, m.keys.Delete):
		m.deleteAtCursor()
	case key.Matches(msg, m.keys.Save):
		m.save()
	}
	return m, nil
}

func (m Model) updateInsertMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Esc):
		m.inputMode = NormalMode
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		m.insertAtCursor(m.input.Value())
		m.inputMode = NormalMode
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) insertAtCursor(text string) {
	nodeKey, ok := m.selectedKey()
	if !ok || text == "" {
		return
	}
	tn, err := m.editor.GetEditorState().Text(nodeKey)
	if err != nil {
		m.statusMessage = err.Error()
		return
	}
	at := doc.TextPoint(nodeKey, uint32(tn.TextLength()))
	err = m.editor.Update(context.Background(), func(t *tx.Transaction) error {
		sel := &doc.RangeSelection{Anchor: at, Focus: at}
		newSel, ierr := selection.InsertText(t, m.editor.Index(), sel, text)
		if ierr != nil {
			return ierr
		}
		return t.SetSelection(newSel)
	})
	if err != nil {
		m.statusMessage = err.Error()
		return
	}
	m.refreshRows()
	m.statusMessage = "inserted"
}

func (m *Model) deleteAtCursor() {
	nodeKey, ok := m.selectedKey()
	if !ok {
		return
	}
	tn, err := m.editor.GetEditorState().Text(nodeKey)
	if err != nil {
		m.statusMessage = "select a text node to delete from"
		return
	}
	at := doc.TextPoint(nodeKey, uint32(tn.TextLength()))
	err = m.editor.Update(context.Background(), func(t *tx.Transaction) error {
		sel := &doc.RangeSelection{Anchor: at, Focus: at}
		newSel, derr := selection.DeleteCharacter(t, m.editor.Index(), sel, false)
		if derr != nil {
			return derr
		}
		return t.SetSelection(newSel)
	})
	if err != nil {
		m.statusMessage = err.Error()
		return
	}
	m.refreshRows()
	m.statusMessage = "deleted"
}

func (m *Model) save() {
	data, err := serialize.ToJSON(m.editor.GetEditorState())
	if err != nil {
		m.statusMessage = err.Error()
		return
	}
	if err := os.WriteFile(m.docPath, data, 0o644); err != nil {
		m.statusMessage = err.Error()
		return
	}
	m.statusMessage = "saved " + m.docPath
}
