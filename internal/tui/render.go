package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/webcompat/internal/analysis"
	"github.com/sprite-ai/webcompat/internal/model"
)

// renderedLine is a single line of the detail pane ready for display.
type renderedLine struct {
	Num     int // source line number; 0 for finding and separator lines
	Content string
	Tokens  highlightedLine

	Finding   *analysis.Finding
	Separator bool
}

// renderFile lays out the findings for f followed, when preview is set, by
// its highlighted source.
func renderFile(f File, findings []analysis.Finding, preview bool) []renderedLine {
	var lines []renderedLine

	if len(findings) == 0 {
		lines = append(lines, renderedLine{Content: "No findings for this file."})
	}
	for i := range findings {
		lines = append(lines, renderedLine{Content: findings[i].Message, Finding: &findings[i]})
	}

	if !preview {
		return lines
	}
	lines = append(lines, renderedLine{Separator: true})

	if f.Err != nil {
		return append(lines, renderedLine{Content: "source unavailable: " + f.Err.Error()})
	}
	for i, hl := range highlight(f.Name, f.Text) {
		lines = append(lines, renderedLine{Num: i + 1, Content: hl.plain(), Tokens: hl})
	}
	return lines
}

// styleLine renders rl clipped to width cells.
func styleLine(rl renderedLine, width int) string {
	switch {
	case rl.Separator:
		return separatorStyle.Render(strings.Repeat("─", max(width, 1)))

	case rl.Finding != nil:
		marker := categoryMarker(rl.Finding)
		style := categoryStyle(rl.Finding.Category)
		return style.Render(marker) + " " + clip(rl.Content, width-len(marker)-1)

	case rl.Num > 0:
		num := lineNumberStyle.Render(fmt.Sprintf("%d", rl.Num))
		return num + " " + renderTokens(rl, width-6)

	default:
		return cleanStyle.Render(clip(rl.Content, width))
	}
}

func categoryMarker(f *analysis.Finding) string {
	switch f.Category {
	case model.CompatibilityIssue:
		return "[issue]"
	case model.PerformanceConcern:
		return "[perf] "
	default:
		return "[rec]  "
	}
}

// renderTokens colours a source line, dropping whatever does not fit.
func renderTokens(rl renderedLine, width int) string {
	if len(rl.Tokens) == 0 {
		return sourceLineStyle.Render(clip(rl.Content, width))
	}

	var b strings.Builder
	left := width
	for _, tok := range rl.Tokens {
		if left <= 0 {
			break
		}
		text := strings.ReplaceAll(tok.text, "\t", "    ")
		if n := lipgloss.Width(text); n > left {
			text = clip(text, left)
		}
		left -= lipgloss.Width(text)
		if tok.color != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(tok.color)).Render(text))
		} else {
			b.WriteString(text)
		}
	}
	return b.String()
}

// clip shortens s to at most width cells, marking the cut with an ellipsis.
func clip(s string, width int) string {
	s = strings.ReplaceAll(s, "\t", "    ")
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
