package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	args := os.Args[1:]
	if len(args) < 1 || args[0] == "--help" || args[0] == "-h" {
		printUsage()
		if len(args) < 1 {
			os.Exit(1)
		}
		os.Exit(0)
	}

	docPath := args[0]

	m, err := NewModel(docPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("richview - interactive document tree inspector")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  richview <doc.json>")
	fmt.Println()
	fmt.Println("NAVIGATION:")
	fmt.Println("  ↑/k, ↓/j    move the cursor")
	fmt.Println("  i           insert text after the selected node's text")
	fmt.Println("  backspace   delete the last character of the selected node's text")
	fmt.Println("  ctrl+s      save the document back to its file")
	fmt.Println("  ?           toggle help")
	fmt.Println("  q, ctrl+c   quit")
}
