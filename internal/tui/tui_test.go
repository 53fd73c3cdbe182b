package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sprite-ai/webcompat/internal/analysis"
	"github.com/sprite-ai/webcompat/internal/model"
	"github.com/sprite-ai/webcompat/internal/source"
)

const (
	testMarkup = "<html>\n<body>\n<p>hello</p>\n</body>\n</html>\n"
	testScript = "function tick() {}\nsetInterval(tick, 16);\n"
)

func testFiles() []File {
	return []File{
		{Kind: model.Markup, Name: "index.html", Text: testMarkup},
		{Kind: model.Style, Name: "styles.css", Err: source.ErrNotFound},
		{Kind: model.Script, Name: "script.js", Text: testScript},
	}
}

func testReport() *analysis.Report {
	e := analysis.NewEngine(analysis.Options{Structure: analysis.HTMLStructure})
	s := analysis.NewState()
	s.Add(e.Analyze(model.Markup, "index.html", testMarkup))
	s.Add(analysis.Failed(model.Style, "styles.css", source.ErrNotFound))
	s.Add(e.Analyze(model.Script, "script.js", testScript))
	return analysis.Aggregate(s)
}

func setupModel(t *testing.T) Model {
	t.Helper()
	m := New(testReport(), testFiles())
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return newM.(Model)
}

func press(t *testing.T, m Model, r rune) Model {
	t.Helper()
	newM, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return newM.(Model)
}

func TestModelInit(t *testing.T) {
	m := setupModel(t)

	if m.fileIndex != 0 {
		t.Errorf("expected fileIndex 0, got %d", m.fileIndex)
	}
	if len(m.files) != 3 {
		t.Errorf("expected 3 files, got %d", len(m.files))
	}
	// 4 findings, separator, 5 source lines
	if len(m.lines) != 10 {
		t.Errorf("expected 10 rendered lines, got %d", len(m.lines))
	}
	if !m.preview {
		t.Error("expected source preview on by default")
	}
}

func TestNavigation(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, 'n')
	if m.fileIndex != 1 {
		t.Errorf("expected fileIndex 1 after next, got %d", m.fileIndex)
	}
	m = press(t, m, 'n')
	m = press(t, m, 'n')
	if m.fileIndex != 2 {
		t.Errorf("expected fileIndex 2 at end, got %d", m.fileIndex)
	}

	m = press(t, m, 'N')
	if m.fileIndex != 1 {
		t.Errorf("expected fileIndex 1 after prev, got %d", m.fileIndex)
	}
}

func TestScrolling(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, 'j')
	if m.scrollOffset != 1 {
		t.Errorf("expected scrollOffset 1, got %d", m.scrollOffset)
	}

	m = press(t, m, 'k')
	if m.scrollOffset != 0 {
		t.Errorf("expected scrollOffset 0, got %d", m.scrollOffset)
	}

	m = press(t, m, 'k')
	if m.scrollOffset != 0 {
		t.Errorf("expected scrollOffset 0 at top, got %d", m.scrollOffset)
	}

	for i := 0; i < 50; i++ {
		m = press(t, m, 'j')
	}
	if m.scrollOffset != len(m.lines)-1 {
		t.Errorf("expected scrollOffset clamped to %d, got %d", len(m.lines)-1, m.scrollOffset)
	}
}

func TestCategoryFilter(t *testing.T) {
	m := setupModel(t)
	m = press(t, m, 'n')
	m = press(t, m, 'n') // script.js

	count := func(m Model) int {
		n := 0
		for _, l := range m.lines {
			if l.Finding != nil {
				n++
			}
		}
		return n
	}

	if got := count(m); got != 3 {
		t.Fatalf("expected 3 script findings, got %d", got)
	}

	wants := []struct {
		label string
		n     int
	}{
		{"issues", 1},
		{"performance", 1},
		{"recommendations", 1},
		{"all", 3},
	}
	for _, w := range wants {
		m = press(t, m, 'c')
		if filters[m.filterIndex].label != w.label {
			t.Errorf("expected filter %q, got %q", w.label, filters[m.filterIndex].label)
		}
		if got := count(m); got != w.n {
			t.Errorf("filter %s: expected %d findings, got %d", w.label, w.n, got)
		}
	}
}

func TestTogglePreview(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, 'v')
	if m.preview {
		t.Error("expected preview off after toggle")
	}
	for _, l := range m.lines {
		if l.Num > 0 || l.Separator {
			t.Fatal("source lines rendered with preview off")
		}
	}

	m = press(t, m, 'v')
	if !m.preview {
		t.Error("expected preview on after second toggle")
	}
}

func TestViewRenders(t *testing.T) {
	m := setupModel(t)

	view := m.View()
	for _, want := range []string{"index.html", "Missing viewport meta tag", "hello", "Fair"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestUnreadableFile(t *testing.T) {
	m := setupModel(t)
	m = press(t, m, 'n')

	view := m.View()
	if !strings.Contains(view, "source unavailable") {
		t.Error("expected unreadable file to say so")
	}
	if !strings.Contains(view, "CSS file not found") {
		t.Error("expected the not-found finding for styles.css")
	}
}

func TestUnlistedFindingSourceAppended(t *testing.T) {
	m := New(testReport(), testFiles()[:1])
	if len(m.files) != 3 {
		t.Fatalf("expected finding sources to be appended, got %d files", len(m.files))
	}
	if m.files[1].Name != "script.js" || m.files[2].Name != "styles.css" {
		t.Errorf("unexpected order: %s, %s", m.files[1].Name, m.files[2].Name)
	}
}

func TestEmptyReport(t *testing.T) {
	m := New(analysis.Aggregate(analysis.NewState()), nil)
	newM, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = newM.(Model)
	if !strings.Contains(m.View(), "No files analyzed") {
		t.Error("expected empty placeholder")
	}
	m = press(t, m, 'j')
	m = press(t, m, 'n')
	if m.scrollOffset != 0 || m.fileIndex != 0 {
		t.Error("navigation on an empty model should be a no-op")
	}
}

func TestHelpToggle(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, '?')
	if !m.showHelp {
		t.Error("expected help to be shown")
	}

	view := m.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("expected help view to contain shortcuts")
	}
	if !strings.Contains(view, "cycle category") {
		t.Error("expected help to list the category filter")
	}
}

func TestQuit(t *testing.T) {
	m := setupModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
