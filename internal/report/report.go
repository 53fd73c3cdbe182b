// Package report renders and persists analysis reports as text, JSON,
// Markdown, HTML and terminal charts.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sprite-ai/webcompat/internal/analysis"
	"github.com/sprite-ai/webcompat/internal/model"
)

// DefaultFile is where Save writes when no path is given.
const DefaultFile = "compatibility_report.json"

// Formatter renders a report to w.
type Formatter interface {
	Format(w io.Writer, r *analysis.Report) error
}

var formatters = map[string]Formatter{
	"text":     Text{},
	"json":     JSON{},
	"markdown": Markdown{},
	"html":     HTML{},
	"chart":    Chart{},
}

// Names returns the supported format names.
func Names() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForName returns the formatter registered under name.
func ForName(name string) (Formatter, error) {
	f, ok := formatters[name]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Save writes r as a JSON document to path, validating it against the
// report schema first.
func Save(path string, r *analysis.Report) error {
	if path == "" {
		path = DefaultFile
	}

	var buf bytes.Buffer
	if err := (JSON{}).Format(&buf, r); err != nil {
		return err
	}
	if err := Validate(buf.Bytes()); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// ExitCode maps a report to a process exit code: 0 when no compatibility
// issues were found, 2 when the assessment is Poor, 1 otherwise.
func ExitCode(r *analysis.Report) int {
	switch {
	case r.OverallAssessment == model.TierPoor:
		return 2
	case r.Summary.IssuesFound > 0:
		return 1
	default:
		return 0
	}
}

// sortedKinds returns the file_analysis keys in analysis order.
func sortedKinds(r *analysis.Report) []model.ArtifactKind {
	var kinds []model.ArtifactKind
	for _, k := range model.Kinds() {
		if _, ok := r.FileAnalysis[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func details(m analysis.ArtifactMetrics) string {
	switch {
	case !m.Analyzed:
		return m.Error
	case m.MarkupMetrics != nil:
		return fmt.Sprintf("findings: %d", m.IssuesCount)
	case m.StyleMetrics != nil:
		return fmt.Sprintf("media queries: %d, px:relative %s", m.MediaQueries, m.Ratio)
	case m.ScriptMetrics != nil:
		return fmt.Sprintf("feature detection: %s, try/catch: %s, rAF: %s",
			yesNo(m.HasFeatureDetection), yesNo(m.HasErrorHandling), yesNo(m.UsesAnimationFrame))
	default:
		return ""
	}
}

func status(m analysis.ArtifactMetrics) string {
	if m.Analyzed {
		return "analyzed"
	}
	return "not analyzed"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
