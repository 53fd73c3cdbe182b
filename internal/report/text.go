package report

import (
	"fmt"
	"io"

	"github.com/sprite-ai/webcompat/internal/analysis"
)

// Text renders box-drawn tables for terminals.
type Text struct{}

// Format implements Formatter.
func (Text) Format(w io.Writer, r *analysis.Report) error {
	if _, err := fmt.Fprintf(w, "Assessment: %s\nAnalysis: %s\n\n", r.OverallAssessment.Description(), r.Headline()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, summaryTable(r, asciiTable)); err != nil {
		return err
	}

	if rd := r.ResponsiveDesign; rd != nil {
		if _, err := fmt.Fprintf(w, "\nResponsive design: %d media queries, %d px vs %d relative units\n",
			rd.MediaQueries, rd.FixedUnits, rd.ResponsiveUnits); err != nil {
			return err
		}
	}

	if len(r.FileAnalysis) > 0 {
		if _, err := fmt.Fprintf(w, "\n%s\n", filesTable(r, asciiTable)); err != nil {
			return err
		}
	}

	if len(r.Findings()) == 0 {
		_, err := fmt.Fprintln(w, "\nNo findings.")
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", findingsTable(r, asciiTable))
	return err
}
