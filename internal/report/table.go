package report

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/sprite-ai/webcompat/internal/analysis"
)

type tableMode int

const (
	asciiTable tableMode = iota
	markdownTable
)

func newTable(mode tableMode, header ...any) table.Writer {
	w := table.NewWriter()
	if mode == asciiTable {
		w.SetStyle(table.StyleLight)
	}
	w.AppendHeader(table.Row(header))
	return w
}

func render(w table.Writer, mode tableMode) string {
	if mode == markdownTable {
		return w.RenderMarkdown()
	}
	return w.Render()
}

func findingsTable(r *analysis.Report, mode tableMode) string {
	w := newTable(mode, "Category", "File", "Message")
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: 80},
	})
	for _, f := range r.Findings() {
		w.AppendRow(table.Row{f.Category.String(), f.Source, f.Message})
	}
	return render(w, mode)
}

func filesTable(r *analysis.Report, mode tableMode) string {
	w := newTable(mode, "Kind", "File", "Status", "Size", "Details")
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
	})
	for _, k := range sortedKinds(r) {
		m := r.FileAnalysis[k]
		w.AppendRow(table.Row{string(k), m.File, status(m), m.Size, details(m)})
	}
	return render(w, mode)
}

func summaryTable(r *analysis.Report, mode tableMode) string {
	w := newTable(mode, "Files analyzed", "Issues", "Performance", "Recommendations", "Assessment")
	w.AppendRow(table.Row{
		r.Summary.FilesAnalyzed,
		r.Summary.IssuesFound,
		r.Summary.PerformanceConcernsFound,
		r.Summary.RecommendationsFound,
		r.OverallAssessment.String(),
	})
	return render(w, mode)
}
