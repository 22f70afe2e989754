package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary = lipgloss.Color("#7C3AED") // Purple
	Success = lipgloss.Color("#10B981") // Green
	Muted   = lipgloss.Color("#6B7280") // Gray
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red
	White   = lipgloss.Color("#FFFFFF")

	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	Timestamp = lipgloss.NewStyle().
			Foreground(Muted)

	Tag = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#60A5FA")). // Blue
		Bold(true)

	OutcomeDelivered = lipgloss.NewStyle().
				Foreground(Success)

	OutcomeRejected = lipgloss.NewStyle().
			Foreground(Warning)

	OutcomeFailed = lipgloss.NewStyle().
			Foreground(Error)

	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	SuccessMsg = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)
