package analysis

import (
	"fmt"
	"strings"

	"github.com/sprite-ai/webcompat/internal/model"
)

// State accumulates results over one run. It is owned by a single run and
// is not safe for concurrent use.
type State struct {
	results []Result
}

// NewState returns an empty accumulator.
func NewState() *State {
	return &State{}
}

// Add appends a result. Order of calls determines finding order in the report.
func (s *State) Add(r Result) {
	s.results = append(s.results, r)
}

// Len returns the number of results added so far.
func (s *State) Len() int {
	return len(s.results)
}

// Summary holds the report headline counts.
type Summary struct {
	FilesAnalyzed            int `json:"files_analyzed"`
	IssuesFound              int `json:"issues_found"`
	PerformanceConcernsFound int `json:"performance_concerns_found"`
	RecommendationsFound     int `json:"recommendations_found"`
}

// Report is the read-only outcome of a run.
type Report struct {
	Summary             Summary                                `json:"summary"`
	Issues              []Finding                              `json:"issues"`
	PerformanceConcerns []Finding                              `json:"performance_concerns"`
	Recommendations     []Finding                              `json:"recommendations"`
	ResponsiveDesign    *StyleMetrics                          `json:"responsive_design"`
	FileAnalysis        map[model.ArtifactKind]ArtifactMetrics `json:"file_analysis"`
	OverallAssessment   model.Tier                             `json:"overall_assessment"`
}

// Aggregate builds a Report from s. It only reads s.
func Aggregate(s *State) *Report {
	r := &Report{
		Issues:              []Finding{},
		PerformanceConcerns: []Finding{},
		Recommendations:     []Finding{},
		FileAnalysis:        make(map[model.ArtifactKind]ArtifactMetrics),
	}

	for _, res := range s.results {
		for _, f := range res.Findings {
			switch f.Category {
			case model.CompatibilityIssue:
				r.Issues = append(r.Issues, f)
			case model.PerformanceConcern:
				r.PerformanceConcerns = append(r.PerformanceConcerns, f)
			case model.Recommendation:
				r.Recommendations = append(r.Recommendations, f)
			}
		}

		m := res.Metrics
		if prev, ok := r.FileAnalysis[m.Kind]; ok && prev.Analyzed && !m.Analyzed {
			continue
		}
		r.FileAnalysis[m.Kind] = m
	}

	for _, m := range r.FileAnalysis {
		if m.Analyzed {
			r.Summary.FilesAnalyzed++
		}
	}
	if style, ok := r.FileAnalysis[model.Style]; ok && style.StyleMetrics != nil {
		rd := *style.StyleMetrics
		r.ResponsiveDesign = &rd
	}

	r.Summary.IssuesFound = len(r.Issues)
	r.Summary.PerformanceConcernsFound = len(r.PerformanceConcerns)
	r.Summary.RecommendationsFound = len(r.Recommendations)
	r.OverallAssessment = model.TierFor(r.Summary.IssuesFound)
	return r
}

// Findings returns every finding, issues first, then performance concerns,
// then recommendations.
func (r *Report) Findings() []Finding {
	all := make([]Finding, 0, len(r.Issues)+len(r.PerformanceConcerns)+len(r.Recommendations))
	all = append(all, r.Issues...)
	all = append(all, r.PerformanceConcerns...)
	return append(all, r.Recommendations...)
}

// ByFile returns findings grouped by source artifact.
func (r *Report) ByFile() map[string][]Finding {
	m := make(map[string][]Finding)
	for _, f := range r.Findings() {
		m[f.Source] = append(m[f.Source], f)
	}
	return m
}

// Headline returns a one-line summary of the report.
func (r *Report) Headline() string {
	if len(r.Findings()) == 0 {
		return "No findings"
	}

	var parts []string
	for _, c := range []struct {
		n    int
		noun string
	}{
		{r.Summary.IssuesFound, "compatibility issue"},
		{r.Summary.PerformanceConcernsFound, "performance concern"},
		{r.Summary.RecommendationsFound, "recommendation"},
	} {
		if c.n == 1 {
			parts = append(parts, fmt.Sprintf("1 %s", c.noun))
		} else if c.n > 1 {
			parts = append(parts, fmt.Sprintf("%d %ss", c.n, c.noun))
		}
	}
	return strings.Join(parts, ", ")
}
