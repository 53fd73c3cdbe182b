package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/sprite-ai/webcompat/internal/analysis"
)

// Markdown renders GitHub-flavoured Markdown suitable for PR comments.
type Markdown struct{}

// Format implements Formatter.
func (Markdown) Format(w io.Writer, r *analysis.Report) error {
	var b strings.Builder

	b.WriteString("## Browser Compatibility Report\n\n")
	fmt.Fprintf(&b, "**Assessment:** %s\n\n", r.OverallAssessment.Description())
	b.WriteString(summaryTable(r, markdownTable))
	b.WriteString("\n\n")

	if rd := r.ResponsiveDesign; rd != nil {
		fmt.Fprintf(&b, "**Responsive design:** %d media queries, fixed vs responsive units `%s`\n\n",
			rd.MediaQueries, rd.Ratio)
	}

	if len(r.FileAnalysis) > 0 {
		b.WriteString("### Files\n\n")
		b.WriteString(filesTable(r, markdownTable))
		b.WriteString("\n\n")
	}

	b.WriteString("### Findings\n\n")
	if len(r.Findings()) == 0 {
		b.WriteString("No findings.\n")
	} else {
		b.WriteString(findingsTable(r, markdownTable))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
