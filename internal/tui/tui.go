// Package tui implements the Bubble Tea findings inspector.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/webcompat/internal/analysis"
	"github.com/sprite-ai/webcompat/internal/model"
)

// File is an artifact shown in the inspector. Err is set when its text
// could not be read.
type File struct {
	Kind model.ArtifactKind
	Name string
	Text string
	Err  error
}

type filter struct {
	label    string
	category model.Category
	all      bool
}

var filters = []filter{
	{label: "all", all: true},
	{label: "issues", category: model.CompatibilityIssue},
	{label: "performance", category: model.PerformanceConcern},
	{label: "recommendations", category: model.Recommendation},
}

// Model is the top-level Bubble Tea model for the inspector.
type Model struct {
	report *analysis.Report
	files  []File
	byFile map[string][]analysis.Finding

	// UI state
	width  int
	height int

	fileIndex int

	scrollOffset int
	viewHeight   int

	// Rendered lines for the current file
	lines []renderedLine

	filterIndex int
	preview     bool
	showHelp    bool
}

// New creates an inspector over r. Files whose findings appear in r but
// that are not listed in files are appended without a preview.
func New(r *analysis.Report, files []File) Model {
	m := Model{
		report:  r,
		files:   append([]File(nil), files...),
		byFile:  r.ByFile(),
		preview: true,
	}

	known := make(map[string]bool, len(files))
	for _, f := range files {
		known[f.Name] = true
	}
	var extra []string
	for name := range m.byFile {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		m.files = append(m.files, File{Name: name, Err: fmt.Errorf("not part of this run")})
	}

	m.updateLines()
	return m
}

func (m *Model) findings() []analysis.Finding {
	if len(m.files) == 0 {
		return nil
	}
	all := m.byFile[m.files[m.fileIndex].Name]
	f := filters[m.filterIndex]
	if f.all {
		return all
	}
	var out []analysis.Finding
	for _, finding := range all {
		if finding.Category == f.category {
			out = append(out, finding)
		}
	}
	return out
}

func (m *Model) updateLines() {
	if len(m.files) == 0 {
		m.lines = nil
		return
	}
	m.lines = renderFile(m.files[m.fileIndex], m.findings(), m.preview)
	if m.scrollOffset >= len(m.lines) {
		m.scrollOffset = max(len(m.lines)-1, 0)
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewHeight = m.height - 6 // status bar, borders, header
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Down):
			m.scroll(1)

		case key.Matches(msg, keys.Up):
			m.scroll(-1)

		case key.Matches(msg, keys.PageDown):
			m.scroll(max(m.viewHeight, 1))

		case key.Matches(msg, keys.PageUp):
			m.scroll(-max(m.viewHeight, 1))

		case key.Matches(msg, keys.NextFile):
			if m.fileIndex < len(m.files)-1 {
				m.fileIndex++
				m.scrollOffset = 0
				m.updateLines()
			}

		case key.Matches(msg, keys.PrevFile):
			if m.fileIndex > 0 {
				m.fileIndex--
				m.scrollOffset = 0
				m.updateLines()
			}

		case key.Matches(msg, keys.Filter):
			m.filterIndex = (m.filterIndex + 1) % len(filters)
			m.scrollOffset = 0
			m.updateLines()

		case key.Matches(msg, keys.Preview):
			m.preview = !m.preview
			m.updateLines()

		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
		}
	}

	return m, nil
}

func (m *Model) scroll(n int) {
	m.scrollOffset += n
	if m.scrollOffset > len(m.lines)-1 {
		m.scrollOffset = len(m.lines) - 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	listWidth := m.fileListWidth()
	detailWidth := m.width - listWidth - 1

	fileList := m.renderFileList(listWidth, m.height-2)
	detail := m.renderDetail(detailWidth, m.height-2)

	main := lipgloss.JoinHorizontal(lipgloss.Top, fileList, " ", detail)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) fileListWidth() int {
	longest := 20
	for _, f := range m.files {
		if len(f.Name) > longest {
			longest = len(f.Name)
		}
	}
	w := longest + 10
	if w > m.width/3 {
		w = m.width / 3
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) renderFileList(width, height int) string {
	var b strings.Builder

	for i, f := range m.files {
		name := f.Name
		maxName := width - 9
		if maxName > 0 && len(name) > maxName {
			name = "…" + name[len(name)-maxName+1:]
		}
		count := len(m.byFile[f.Name])
		line := fmt.Sprintf("%-*s %3d", maxName, name, count)

		var style lipgloss.Style
		switch {
		case i == m.fileIndex:
			style = fileItemSelectedStyle
		case f.Err != nil:
			style = fileItemFailedStyle
		case count == 0:
			style = fileItemCleanStyle
		default:
			style = fileItemStyle
		}

		b.WriteString(style.Width(width - 4).Render(line))
		if i < len(m.files)-1 {
			b.WriteByte('\n')
		}
	}

	return fileListStyle.Width(width).Height(height - 2).Render(b.String())
}

func (m Model) renderDetail(width, height int) string {
	innerHeight := height - 2
	if len(m.files) == 0 {
		return detailViewStyle.Width(width).Height(innerHeight).Render("No files analyzed")
	}

	f := m.files[m.fileIndex]
	innerWidth := width - 4

	title := f.Name
	if f.Kind != "" {
		title = fmt.Sprintf("%s (%s)", f.Name, f.Kind.Label())
	}

	visible := max(innerHeight-2, 1)
	end := min(m.scrollOffset+visible, len(m.lines))

	var b strings.Builder
	b.WriteString(fileHeaderStyle.Render(title))
	b.WriteByte('\n')
	for i := m.scrollOffset; i < end; i++ {
		b.WriteString(styleLine(m.lines[i], innerWidth))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}

	return detailViewStyle.Width(width).Height(innerHeight).Render(b.String())
}

func (m Model) renderStatusBar() string {
	left := fmt.Sprintf(" File %d/%d", min(m.fileIndex+1, len(m.files)), len(m.files))
	if len(m.lines) > 0 {
		left += fmt.Sprintf("  Line %d/%d", m.scrollOffset+1, len(m.lines))
	}

	tier := m.report.OverallAssessment
	right := fmt.Sprintf("%s  %d issues  filter: %s  ? help ",
		tierStyle(tier).Render(tier.String()),
		m.report.Summary.IssuesFound,
		filters[m.filterIndex].label)

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 0)
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	var b strings.Builder

	b.WriteString(helpTitleStyle.Render("webcompat inspect: Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, k := range helpKeys() {
		h := k.Help()
		fmt.Fprintf(&b, "  %s  %s\n", helpKeyStyle.Width(12).Render(h.Key), h.Desc)
	}

	b.WriteString("\n")
	b.WriteString(helpBarStyle.Render("Press ? to close help"))
	return b.String()
}

// Run starts the inspector.
func Run(r *analysis.Report, files []File) error {
	p := tea.NewProgram(New(r, files), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
