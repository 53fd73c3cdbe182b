package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/webcompat/internal/model"
)

// Color palette.
var (
	colorRed       = lipgloss.Color("#ff5555")
	colorGreen     = lipgloss.Color("#50fa7b")
	colorYellow    = lipgloss.Color("#f1fa8c")
	colorBlue      = lipgloss.Color("#8be9fd")
	colorPurple    = lipgloss.Color("#bd93f9")
	colorDim       = lipgloss.Color("#6272a4")
	colorBgLight   = lipgloss.Color("#343746")
	colorFg        = lipgloss.Color("#f8f8f2")
	colorOrange    = lipgloss.Color("#ffb86c")
	colorBorder    = lipgloss.Color("#44475a")
	colorHighlight = lipgloss.Color("#44475a")
)

var (
	// File list
	fileListStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	fileItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	fileItemSelectedStyle = lipgloss.NewStyle().
				Foreground(colorFg).
				Background(colorHighlight).
				Bold(true)

	fileItemCleanStyle = lipgloss.NewStyle().
				Foreground(colorGreen)

	fileItemFailedStyle = lipgloss.NewStyle().
				Foreground(colorRed)

	// Detail pane
	detailViewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	fileHeaderStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true).
			Padding(0, 0, 1, 0)

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Width(5).
			Align(lipgloss.Right)

	sourceLineStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	separatorStyle = lipgloss.NewStyle().
			Foreground(colorBorder)

	// Findings
	issueStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	performanceStyle = lipgloss.NewStyle().
				Foreground(colorOrange)

	recommendationStyle = lipgloss.NewStyle().
				Foreground(colorBlue)

	cleanStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorBgLight).
			Padding(0, 1)

	// Help
	helpTitleStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true).
			Padding(0, 0, 1, 0)

	helpBarStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)

func categoryStyle(c model.Category) lipgloss.Style {
	switch c {
	case model.CompatibilityIssue:
		return issueStyle
	case model.PerformanceConcern:
		return performanceStyle
	default:
		return recommendationStyle
	}
}

func tierStyle(t model.Tier) lipgloss.Style {
	switch t {
	case model.TierExcellent:
		return cleanStyle
	case model.TierGood:
		return recommendationStyle
	case model.TierFair:
		return lipgloss.NewStyle().Foreground(colorYellow)
	default:
		return issueStyle
	}
}
