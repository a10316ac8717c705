package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the entire UI, grounded on hiveexplorer's View: an error
// branch, a help-overlay branch, then header/content/status joined
// vertically for the normal case.
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.showHelp {
		return m.renderHelp()
	}

	header := headerStyle.Render(fmt.Sprintf("richview — %s", m.docPath))
	content := m.renderTree()
	status := m.renderStatus()

	return lipgloss.JoinVertical(lipgloss.Left, header, content, status)
}

func (m Model) renderTree() string {
	if len(m.rows) == 0 {
		return rowStyle.Render("(empty document)")
	}

	var b strings.Builder
	for i, r := range m.rows {
		line := strings.Repeat("  ", r.depth) + r.label
		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render("> " + line))
		} else {
			b.WriteString(rowStyle.Render("  " + line))
		}
		if i < len(m.rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderStatus() string {
	if m.inputMode == InsertMode {
		return statusStyle.Render("insert: " + m.input.View())
	}
	if m.statusMessage != "" {
		return statusStyle.Render(m.statusMessage)
	}
	return statusStyle.Render("↑/↓ move · i insert · backspace delete · ctrl+s save · ? help · q quit")
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, binding := range []struct {
		keys, desc string
	}{
		{"↑/k, ↓/j", "move the cursor"},
		{"i", "insert text after the selected node's text"},
		{"backspace", "delete the last character of the selected node's text"},
		{"ctrl+s", "save the document back to its file"},
		{"?", "toggle this help"},
		{"q, ctrl+c", "quit"},
	} {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", binding.keys, binding.desc))
	}
	b.WriteString(statusStyle.Render("press ? or esc to close"))
	return b.String()
}
