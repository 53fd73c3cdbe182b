package report

import (
	"html/template"
	"io"

	"github.com/sprite-ai/webcompat/internal/analysis"
	"github.com/sprite-ai/webcompat/internal/model"
)

// HTML renders a standalone HTML page.
type HTML struct{}

type htmlFile struct {
	Kind    string
	File    string
	Status  string
	Size    int
	Details string
}

type htmlView struct {
	*analysis.Report
	Description string
	TierClass   string
	Files       []htmlFile
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>webcompat Report</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 900px; margin: 40px auto; padding: 0 20px; background: #282a36; color: #f8f8f2; }
  h1, h2 { color: #bd93f9; }
  .summary { background: #343746; padding: 16px; border-radius: 8px; margin-bottom: 24px; }
  .summary span { margin-right: 24px; }
  .tier-excellent { color: #50fa7b; font-weight: bold; }
  .tier-good { color: #8be9fd; font-weight: bold; }
  .tier-fair { color: #f1fa8c; font-weight: bold; }
  .tier-poor { color: #ff5555; font-weight: bold; }
  .compatibility_issue { color: #ff5555; }
  .performance_concern { color: #ffb86c; }
  .recommendation { color: #8be9fd; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
  th { text-align: left; padding: 8px 12px; background: #44475a; color: #f8f8f2; }
  td { padding: 8px 12px; border-bottom: 1px solid #44475a; }
  tr:hover { background: #343746; }
  code { background: #343746; padding: 2px 6px; border-radius: 4px; font-size: 0.9em; }
  .clean { color: #50fa7b; font-size: 1.2em; }
  footer { margin-top: 32px; color: #6272a4; font-size: 0.85em; }
</style>
</head>
<body>
<h1>Browser Compatibility Report</h1>
<div class="summary">
  <span>Assessment: <span class="{{.TierClass}}">{{.Description}}</span></span><br>
  <span><strong>{{.Summary.FilesAnalyzed}}</strong> file(s) analyzed</span>
  <span>Issues: <strong>{{.Summary.IssuesFound}}</strong></span>
  <span>Performance: <strong>{{.Summary.PerformanceConcernsFound}}</strong></span>
  <span>Recommendations: <strong>{{.Summary.RecommendationsFound}}</strong></span>
  {{- with .ResponsiveDesign}}
  <br><span>Media queries: <strong>{{.MediaQueries}}</strong></span>
  <span>Fixed vs responsive units: <code>{{.Ratio}}</code></span>
  {{- end}}
</div>
{{if .Files}}
<h2>Files</h2>
<table>
<thead><tr><th>Kind</th><th>File</th><th>Status</th><th>Size</th><th>Details</th></tr></thead>
<tbody>
{{- range .Files}}
<tr><td>{{.Kind}}</td><td><code>{{.File}}</code></td><td>{{.Status}}</td><td>{{.Size}}</td><td>{{.Details}}</td></tr>
{{- end}}
</tbody></table>
{{end}}
<h2>Findings</h2>
{{- $findings := .Findings}}
{{if $findings}}
<table>
<thead><tr><th>Category</th><th>File</th><th>Message</th></tr></thead>
<tbody>
{{- range $findings}}
<tr><td class="{{.Category}}">{{.Category}}</td><td><code>{{.Source}}</code></td><td>{{.Message}}</td></tr>
{{- end}}
</tbody></table>
{{else}}
<p class="clean">No findings.</p>
{{end}}
<footer>Generated by <strong>webcompat</strong></footer>
</body>
</html>
`))

// Format implements Formatter.
func (HTML) Format(w io.Writer, r *analysis.Report) error {
	view := htmlView{
		Report:      r,
		Description: r.OverallAssessment.Description(),
		TierClass:   tierClass(r.OverallAssessment),
	}
	for _, k := range sortedKinds(r) {
		m := r.FileAnalysis[k]
		view.Files = append(view.Files, htmlFile{
			Kind:    string(k),
			File:    m.File,
			Status:  status(m),
			Size:    m.Size,
			Details: details(m),
		})
	}
	return htmlTemplate.Execute(w, view)
}

func tierClass(t model.Tier) string {
	switch t {
	case model.TierExcellent:
		return "tier-excellent"
	case model.TierGood:
		return "tier-good"
	case model.TierFair:
		return "tier-fair"
	default:
		return "tier-poor"
	}
}
