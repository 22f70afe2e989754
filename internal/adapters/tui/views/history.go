package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cliprelay/internal/adapters/tui/styles"
	"cliprelay/internal/domain"
	"cliprelay/internal/ports"
)

// historyPageSize is how many records one reload pulls from the journal.
const historyPageSize = 200

// ClipboardWriter copies text back to the system clipboard.
type ClipboardWriter interface {
	Write(text string) error
}

// HistoryKeyMap defines key bindings for the history view
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Copy   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

var HistoryKeys = HistoryKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy text"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// RecordsLoadedMsg carries a journal page into the view.
type RecordsLoadedMsg struct {
	Records []domain.Record
}

// LoadErrMsg reports a failed journal read.
type LoadErrMsg struct {
	Err error
}

// HistoryModel is the model for the delivery-history view
type HistoryModel struct {
	journal ports.Journal
	clip    ClipboardWriter

	records []domain.Record
	cursor  int
	offset  int
	message string
	isErr   bool

	width  int
	height int
}

// NewHistoryModel creates a new history view model
func NewHistoryModel(journal ports.Journal, clip ClipboardWriter) *HistoryModel {
	return &HistoryModel{journal: journal, clip: clip}
}

// Init triggers the initial journal load
func (m *HistoryModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload re-reads the journal
func (m *HistoryModel) Reload() tea.Cmd {
	return func() tea.Msg {
		records, err := m.journal.Recent(historyPageSize)
		if err != nil {
			return LoadErrMsg{Err: err}
		}
		return RecordsLoadedMsg{Records: records}
	}
}

// SetSize updates the view dimensions
func (m *HistoryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the history view
func (m *HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case RecordsLoadedMsg:
		m.records = msg.Records
		if m.cursor >= len(m.records) {
			m.cursor = max(0, len(m.records)-1)
		}
		return m, nil

	case LoadErrMsg:
		m.message = msg.Err.Error()
		m.isErr = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, HistoryKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, HistoryKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			m.scrollToCursor()
			return m, nil

		case key.Matches(msg, HistoryKeys.Down):
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
			m.scrollToCursor()
			return m, nil

		case key.Matches(msg, HistoryKeys.Reload):
			m.message = ""
			m.isErr = false
			return m, m.Reload()

		case key.Matches(msg, HistoryKeys.Copy):
			return m, m.copySelected()
		}
	}

	return m, nil
}

func (m *HistoryModel) copySelected() tea.Cmd {
	if m.clip == nil || m.cursor < 0 || m.cursor >= len(m.records) {
		return nil
	}
	rec := m.records[m.cursor]
	if err := m.clip.Write(rec.Text); err != nil {
		m.message = fmt.Sprintf("copy failed: %v", err)
		m.isErr = true
		return nil
	}
	m.message = fmt.Sprintf("copied: %s", rec.Text)
	m.isErr = false
	return nil
}

// visibleRows is how many records fit between header and status bar.
func (m *HistoryModel) visibleRows() int {
	rows := m.height - 6
	if rows < 1 {
		rows = 10
	}
	return rows
}

func (m *HistoryModel) scrollToCursor() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// View renders the history view
func (m *HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("cliprelay — delivery history"))
	b.WriteString("\n")

	if len(m.records) == 0 {
		b.WriteString(styles.Subtitle.Render("No deliveries recorded yet."))
		b.WriteString("\n")
	}

	rows := m.visibleRows()
	end := min(m.offset+rows, len(m.records))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	if m.message != "" {
		if m.isErr {
			b.WriteString(styles.ErrorMsg.Render(m.message))
		} else {
			b.WriteString(styles.SuccessMsg.Render(m.message))
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.statusBar())

	return styles.App.Render(b.String())
}

func (m *HistoryModel) renderRow(i int) string {
	rec := m.records[i]
	line := fmt.Sprintf("%s  %s  %s  %s",
		styles.Timestamp.Render(rec.CreatedAt.Local().Format("2006-01-02 15:04")),
		outcomeStyle(rec.Status).Render(fmt.Sprintf("%-17s", rec.Status)),
		styles.Tag.Render(fmt.Sprintf("%-5s", rec.Tag)),
		rec.Text,
	)
	if i == m.cursor {
		return styles.RowSelected.Render("> ") + line
	}
	return "  " + line
}

func (m *HistoryModel) statusBar() string {
	help := strings.Join([]string{
		styles.HelpKey.Render("j/k") + styles.HelpDesc.Render(" move"),
		styles.HelpKey.Render("y") + styles.HelpDesc.Render(" copy"),
		styles.HelpKey.Render("r") + styles.HelpDesc.Render(" reload"),
		styles.HelpKey.Render("q") + styles.HelpDesc.Render(" quit"),
	}, "  ")
	return styles.StatusBar.Render(help)
}

func outcomeStyle(status domain.OutcomeStatus) lipgloss.Style {
	switch status {
	case domain.OutcomeDelivered:
		return styles.OutcomeDelivered
	case domain.OutcomeRejected:
		return styles.OutcomeRejected
	default:
		return styles.OutcomeFailed
	}
}
