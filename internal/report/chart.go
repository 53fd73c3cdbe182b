package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/webcompat/internal/analysis"
)

// chartWidth is the length in cells of the longest bar.
const chartWidth = 40

var (
	chartTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bd93f9")).
			Bold(true).
			Padding(0, 0, 1, 0)

	chartLabelStyle = lipgloss.NewStyle().
			Width(20)

	chartBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#44475a")).
			Padding(0, 1)

	issueBar          = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9999"))
	performanceBar    = lipgloss.NewStyle().Foreground(lipgloss.Color("#66b3ff"))
	recommendationBar = lipgloss.NewStyle().Foreground(lipgloss.Color("#99ff99"))
)

// Chart renders bar charts of the finding categories and, when a
// stylesheet was analyzed, of the fixed vs relative unit split.
type Chart struct{}

type bar struct {
	label string
	value int
	style lipgloss.Style
}

// Format implements Formatter.
func (Chart) Format(w io.Writer, r *analysis.Report) error {
	panels := []string{
		chartPanel("Findings by category", []bar{
			{"Compatibility", r.Summary.IssuesFound, issueBar},
			{"Performance", r.Summary.PerformanceConcernsFound, performanceBar},
			{"Recommendations", r.Summary.RecommendationsFound, recommendationBar},
		}),
	}
	if rd := r.ResponsiveDesign; rd != nil {
		panels = append(panels, chartPanel("Unit distribution", []bar{
			{"Fixed (px)", rd.FixedUnits, issueBar},
			{"Relative", rd.ResponsiveUnits, recommendationBar},
		}))
	}

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, panels...))
	return err
}

func chartPanel(title string, bars []bar) string {
	top := 0
	for _, b := range bars {
		if b.value > top {
			top = b.value
		}
	}

	lines := []string{chartTitleStyle.Render(title)}
	for _, b := range bars {
		n := 0
		if top > 0 {
			n = b.value * chartWidth / top
		}
		if n == 0 && b.value > 0 {
			n = 1
		}
		lines = append(lines, fmt.Sprintf("%s%s %d",
			chartLabelStyle.Render(b.label),
			b.style.Render(strings.Repeat("█", n)),
			b.value))
	}
	return chartBoxStyle.Render(strings.Join(lines, "\n"))
}
