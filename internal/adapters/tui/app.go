// Package tui is the interactive delivery-history browser.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"cliprelay/internal/adapters/tui/views"
	"cliprelay/internal/ports"
)

// App is the main TUI application model
type App struct {
	history *views.HistoryModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(journal ports.Journal, clip views.ClipboardWriter) *App {
	return &App{
		history: views.NewHistoryModel(journal, clip),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.history.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = size.Width
		a.height = size.Height
		a.history.SetSize(size.Width, size.Height)
		return a, nil
	}

	_, cmd := a.history.Update(msg)
	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	return a.history.View()
}
