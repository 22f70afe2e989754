package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cliprelay/internal/adapters/clipboard"
	"cliprelay/internal/adapters/sqlite"
	"cliprelay/internal/adapters/tui"
	"cliprelay/internal/config"
)

func main() {
	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "[fatal] %v\n", err)
		os.Exit(1)
	}

	journal, err := sqlite.OpenJournal(cfg.JournalFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[fatal] %v\n", err)
		os.Exit(1)
	}
	defer journal.Close()

	app := tui.NewApp(journal, clipboard.NewReader())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
