package analysis

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sprite-ai/webcompat/internal/model"
	"github.com/sprite-ai/webcompat/internal/source"
)

// --- Markup tests ---

const goodMarkup = `<!DOCTYPE html>
<html lang="en">
<head>
<meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
<button aria-label="Start">Start</button>
<video src="intro.mp4" playsinline muted></video>
<img src="a.png" srcset="a@2x.png 2x">
<a href="#" role="button">Go</a>
</body>
</html>`

const bareMarkup = `<html>
<body>
<video src="intro.mp4"></video>
<img src="a.png">
<img src="b.png">
<a href="#">Go</a>
<a href="#">Stop</a>
</body>
</html>`

func newTestEngine(structure StructureParser, skip ...string) *Engine {
	return NewEngine(Options{Structure: structure, Skip: skip})
}

func TestMarkupClean(t *testing.T) {
	res := newTestEngine(HTMLStructure).Analyze(model.Markup, "index.html", goodMarkup)
	if len(res.Findings) != 0 {
		t.Fatalf("expected no findings, got %v", res.Findings)
	}
	if !res.Metrics.Analyzed {
		t.Error("expected artifact to be analyzed")
	}
	if res.Metrics.Size != len(goodMarkup) {
		t.Errorf("size = %d, want %d", res.Metrics.Size, len(goodMarkup))
	}
	if res.Metrics.MarkupMetrics == nil || res.Metrics.IssuesCount != 0 {
		t.Errorf("unexpected markup metrics %+v", res.Metrics.MarkupMetrics)
	}
}

func TestMarkupBare(t *testing.T) {
	res := newTestEngine(HTMLStructure).Analyze(model.Markup, "index.html", bareMarkup)

	want := []Finding{
		{model.CompatibilityIssue, "Missing viewport meta tag for responsive design", "index.html"},
		{model.CompatibilityIssue, "Missing HTML5 doctype declaration", "index.html"},
		{model.CompatibilityIssue, "Missing language attribute on html element", "index.html"},
		{model.CompatibilityIssue, "Missing 'playsinline' attribute on video element for iOS compatibility", "index.html"},
		{model.Recommendation, "Consider adding ARIA labels for better accessibility", "index.html"},
		{model.Recommendation, "Consider adding 'srcset' or 'loading' attributes to images for better performance", "index.html"},
		{model.Recommendation, "Links used as buttons should have role='button' attribute", "index.html"},
	}
	if diff := cmp.Diff(want, res.Findings); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
	if res.Metrics.IssuesCount != len(want) {
		t.Errorf("issues_count = %d, want %d", res.Metrics.IssuesCount, len(want))
	}
}

func TestMarkupWithoutStructure(t *testing.T) {
	res := newTestEngine(NoStructure).Analyze(model.Markup, "index.html", bareMarkup)
	for _, f := range res.Findings {
		if strings.Contains(f.Message, "srcset") || strings.Contains(f.Message, "role=") {
			t.Errorf("structural finding emitted without a parser: %s", f)
		}
	}
	if len(res.Findings) != 5 {
		t.Errorf("expected 5 text-only findings, got %d: %v", len(res.Findings), res.Findings)
	}
}

func TestMarkupEmptyAttributesCountAsMissing(t *testing.T) {
	markup := `<img src="a.png" srcset="" loading=""><a href="#" role="">Go</a>`
	res := newTestEngine(HTMLStructure).Analyze(model.Markup, "index.html", markup)
	if !hasMessage(res.Findings, model.Recommendation, "srcset") {
		t.Errorf("expected img recommendation for empty srcset/loading: %v", res.Findings)
	}
	if !hasMessage(res.Findings, model.Recommendation, "role='button'") {
		t.Errorf("expected anchor recommendation for empty role: %v", res.Findings)
	}
}

func TestMarkupNilStructureMeansNone(t *testing.T) {
	res := newTestEngine(nil).Analyze(model.Markup, "index.html", bareMarkup)
	if len(res.Findings) != 5 {
		t.Errorf("expected 5 findings with nil structure parser, got %d", len(res.Findings))
	}
}

func TestMarkupViewportProperty(t *testing.T) {
	inputs := []string{
		"",
		"<!DOCTYPE html><html lang=\"en\"></html>",
		"<meta name=\"description\" content=\"viewport\">",
		"<html><head><title>x</title></head></html>",
	}
	e := newTestEngine(HTMLStructure)
	for _, in := range inputs {
		res := e.Analyze(model.Markup, "index.html", in)
		found := false
		for _, f := range res.Findings {
			if f.Category == model.CompatibilityIssue && strings.Contains(f.Message, "viewport") {
				found = true
			}
		}
		if !found {
			t.Errorf("input %q: expected viewport issue", in)
		}
	}
}

func TestMarkupDoctypeProperty(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"<!DOCTYPE html>\n<html></html>", 0},
		{"   \n\t<!DOCTYPE html><html></html>", 0},
		{"<!doctype html><html></html>", 1},
		{"<html></html>", 1},
		{"", 1},
		{"<!-- c --><!DOCTYPE html>", 1},
	}
	e := newTestEngine(NoStructure)
	for _, tt := range tests {
		res := e.Analyze(model.Markup, "index.html", tt.text)
		got := 0
		for _, f := range res.Findings {
			if strings.Contains(f.Message, "doctype") {
				got++
			}
		}
		if got != tt.want {
			t.Errorf("%q: %d doctype findings, want %d", tt.text, got, tt.want)
		}
	}
}

func TestMarkupLangAttribute(t *testing.T) {
	e := newTestEngine(NoStructure)
	for text, wantIssue := range map[string]bool{
		`<html lang="en">`:              false,
		`<html class="x" lang='fr'>`:    false,
		`<html>`:                        true,
		`<html lang="english">`:         true,
		`<body lang="en"></body><html>`: true,
	} {
		res := e.Analyze(model.Markup, "index.html", text)
		got := false
		for _, f := range res.Findings {
			if strings.Contains(f.Message, "language attribute") {
				got = true
			}
		}
		if got != wantIssue {
			t.Errorf("%q: lang issue = %v, want %v", text, got, wantIssue)
		}
	}
}

// --- Style tests ---

func TestStyleUnitCounts(t *testing.T) {
	tests := []struct {
		css                 string
		fixed, responsive   int
		wantRelativeFinding bool
	}{
		{"10px 20px 1em", 2, 1, true},
		{"10px 10px 1em 50%", 2, 2, false},
		{"width: 2rem; height: 100vh; margin: 5vw", 0, 3, false},
		{"", 0, 0, false},
		{"border: 1px solid; padding: 3px 4px 5px", 4, 0, true},
	}
	e := newTestEngine(nil)
	for _, tt := range tests {
		res := e.Analyze(model.Style, "styles.css", tt.css)
		sm := res.Metrics.StyleMetrics
		if sm == nil {
			t.Fatalf("%q: missing style metrics", tt.css)
		}
		if sm.FixedUnits != tt.fixed || sm.ResponsiveUnits != tt.responsive {
			t.Errorf("%q: units = %d:%d, want %d:%d", tt.css, sm.FixedUnits, sm.ResponsiveUnits, tt.fixed, tt.responsive)
		}
		if want := fmt.Sprintf("%d:%d", tt.fixed, tt.responsive); sm.Ratio != want {
			t.Errorf("%q: ratio = %q, want %q", tt.css, sm.Ratio, want)
		}
		got := false
		for _, f := range res.Findings {
			if strings.Contains(f.Message, "responsive units") {
				got = true
			}
		}
		if got != tt.wantRelativeFinding {
			t.Errorf("%q: relative-units finding = %v, want %v", tt.css, got, tt.wantRelativeFinding)
		}
	}
}

func TestStyleMediaQueries(t *testing.T) {
	e := newTestEngine(nil)

	res := e.Analyze(model.Style, "styles.css", "body { margin: 0 }")
	if len(res.Findings) == 0 || res.Findings[0].Category != model.CompatibilityIssue ||
		!strings.Contains(res.Findings[0].Message, "No media queries") {
		t.Errorf("expected no-media-queries issue first, got %v", res.Findings)
	}

	css := "@media (max-width: 600px) { a { b: c } }\n@media screen and (orientation: portrait) { }"
	res = e.Analyze(model.Style, "styles.css", css)
	if res.Metrics.MediaQueries != 2 {
		t.Errorf("media_queries = %d, want 2", res.Metrics.MediaQueries)
	}
	for _, f := range res.Findings {
		if f.Category == model.CompatibilityIssue {
			t.Errorf("unexpected issue %s", f)
		}
	}
}

func TestStylePrefixRules(t *testing.T) {
	tests := []struct {
		name string
		css  string
		want []string
	}{
		{
			name: "flex without prefix",
			css:  ".a { display: flex; }",
			want: []string{"flexbox"},
		},
		{
			name: "flex with webkit fallback",
			css:  ".a { display: -webkit-flex; display: flex; }",
		},
		{
			name: "transform without prefix",
			css:  ".a { transform: scale(2); will-change: transform; }",
			want: []string{"transforms/transitions"},
		},
		{
			name: "prefixed transform only",
			css:  ".a { -webkit-transform: scale(2); }",
		},
		{
			name: "transition both prefixed and hinted",
			css:  ".a { -webkit-transition: all 1s; transition: all 1s; will-change: opacity; }",
		},
		{
			name: "animation without will-change",
			css:  ".a { animation: spin 1s infinite; }",
			want: []string{"will-change"},
		},
		{
			name: "transition without prefix or hint",
			css:  ".a {\ntransition: opacity 1s;\n}",
			want: []string{"transforms/transitions", "will-change"},
		},
	}

	e := newTestEngine(nil, "media-queries", "relative-units")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Analyze(model.Style, "styles.css", tt.css)
			if len(res.Findings) != len(tt.want) {
				t.Fatalf("expected %d findings, got %v", len(tt.want), res.Findings)
			}
			for i, w := range tt.want {
				if !strings.Contains(res.Findings[i].Message, w) {
					t.Errorf("finding %d = %q, want mention of %q", i, res.Findings[i].Message, w)
				}
				if res.Findings[i].Category != model.Recommendation {
					t.Errorf("finding %d should be a recommendation", i)
				}
			}
		})
	}
}

// --- Script tests ---

func TestScriptTimerOnly(t *testing.T) {
	res := newTestEngine(nil).Analyze(model.Script, "script.js", "setInterval(tick, 16);")

	want := []Finding{
		{model.CompatibilityIssue, "Missing try/catch blocks for error handling", "script.js"},
		{model.PerformanceConcern, "Consider using requestAnimationFrame instead of setInterval for animation timing", "script.js"},
		{model.Recommendation, "Consider adding polyfills for broader browser support", "script.js"},
	}
	if diff := cmp.Diff(want, res.Findings); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}

	sm := res.Metrics.ScriptMetrics
	if sm == nil || sm.HasErrorHandling || sm.UsesAnimationFrame || sm.HasFeatureDetection {
		t.Errorf("unexpected script metrics %+v", sm)
	}
}

func TestScriptMediaDevices(t *testing.T) {
	e := newTestEngine(nil)

	unguarded := `navigator.mediaDevices.getUserMedia({video: true});`
	res := e.Analyze(model.Script, "script.js", unguarded)
	if !hasMessage(res.Findings, model.CompatibilityIssue, "MediaDevices") {
		t.Errorf("expected MediaDevices issue, got %v", res.Findings)
	}
	if !hasMessage(res.Findings, model.Recommendation, "getUserMedia") {
		t.Errorf("expected getUserMedia recommendation, got %v", res.Findings)
	}

	guarded := `// polyfill loaded separately
if (navigator.mediaDevices && navigator.mediaDevices.getUserMedia) {
  try { navigator.mediaDevices.getUserMedia({video: true}); } catch (e) {}
}`
	res = e.Analyze(model.Script, "script.js", guarded)
	if len(res.Findings) != 0 {
		t.Errorf("expected no findings for guarded script, got %v", res.Findings)
	}
	if !res.Metrics.HasFeatureDetection || !res.Metrics.HasErrorHandling {
		t.Errorf("unexpected metrics %+v", res.Metrics.ScriptMetrics)
	}
}

func TestScriptCapabilities(t *testing.T) {
	js := `
try { run(); } catch (e) {}
const ctx = canvas.getContext('2d');
el.addEventListener('touchstart', onTouch);
if ('ontouchstart' in window) { enableTouch(); }
window.addEventListener('orientationchange', rotate);
requestAnimationFrame(loop);
// Polyfill: none needed
`
	res := newTestEngine(nil).Analyze(model.Script, "script.js", js)

	want := []Finding{
		{model.Recommendation, "Consider adding feature detection for Canvas API", "script.js"},
		{model.Recommendation, "Consider adding feature detection for Orientation", "script.js"},
	}
	if diff := cmp.Diff(want, res.Findings); diff != "" {
		t.Errorf("findings mismatch (-want +got):\n%s", diff)
	}
	if !res.Metrics.UsesAnimationFrame {
		t.Error("expected uses_animation_frame")
	}
}

func TestScriptRetryIsNotErrorHandling(t *testing.T) {
	res := newTestEngine(nil).Analyze(model.Script, "script.js", "retry(); catchUp();")
	if res.Metrics.HasErrorHandling {
		t.Error("retry/catchUp should not count as try/catch")
	}
}

// --- Engine tests ---

func TestSkipRules(t *testing.T) {
	res := newTestEngine(nil, "error-handling", "polyfills").Analyze(model.Script, "script.js", "x = 1;")
	if len(res.Findings) != 0 {
		t.Errorf("expected skipped rules to be silent, got %v", res.Findings)
	}
}

func TestRulesCatalogue(t *testing.T) {
	seen := make(map[string]bool)
	for _, r := range Rules() {
		if seen[r.Name] {
			t.Errorf("duplicate rule name %q", r.Name)
		}
		seen[r.Name] = true
		if !r.Kind.Valid() {
			t.Errorf("rule %q has invalid kind %q", r.Name, r.Kind)
		}
	}
	for _, want := range []string{"viewport", "doctype", "media-queries", "relative-units", "animation-timer", "detect-touch", "polyfills"} {
		if !seen[want] {
			t.Errorf("missing rule %q", want)
		}
	}
	if unknown := UnknownRules([]string{"viewport", "nope"}); len(unknown) != 1 || unknown[0] != "nope" {
		t.Errorf("UnknownRules = %v", unknown)
	}
}

type panickingStructure struct{}

func (panickingStructure) Parse(string) ([]Element, error) {
	panic("boom")
}

func TestAnalysisFaultIsContained(t *testing.T) {
	res := newTestEngine(panickingStructure{}).Analyze(model.Markup, "index.html", goodMarkup)
	if len(res.Findings) != 1 {
		t.Fatalf("expected exactly 1 finding, got %v", res.Findings)
	}
	f := res.Findings[0]
	if f.Category != model.CompatibilityIssue || !strings.Contains(f.Message, "Error analyzing HTML") {
		t.Errorf("unexpected fault finding %s", f)
	}
	if res.Metrics.Analyzed {
		t.Error("faulted artifact should not be marked analyzed")
	}
}

func TestFailed(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("index.html: %w", source.ErrNotFound), "HTML file not found: index.html"},
		{fmt.Errorf("index.html: %w", source.ErrDecode), "HTML file could not be decoded as text: index.html"},
		{errors.New("permission denied"), "Error reading HTML file index.html: permission denied"},
	}
	for _, tt := range tests {
		res := Failed(model.Markup, "index.html", tt.err)
		if len(res.Findings) != 1 {
			t.Fatalf("expected one finding, got %d", len(res.Findings))
		}
		if res.Findings[0].Message != tt.want {
			t.Errorf("message = %q, want %q", res.Findings[0].Message, tt.want)
		}
		if res.Findings[0].Category != model.CompatibilityIssue {
			t.Error("failure must be a compatibility issue")
		}
		if res.Metrics.Analyzed || res.Metrics.Error == "" {
			t.Errorf("unexpected metrics %+v", res.Metrics)
		}
	}
}

func TestHTMLStructure(t *testing.T) {
	elements, err := HTMLStructure.Parse(`<img SRC="a.png" Loading="lazy"><a href="#">x</a>`)
	if err != nil {
		t.Fatal(err)
	}
	var img *Element
	for i := range elements {
		if elements[i].Tag == "img" {
			img = &elements[i]
		}
	}
	if img == nil {
		t.Fatal("expected img element")
	}
	if !img.Has("loading") || !img.Has("src") {
		t.Errorf("expected lowercased attributes, got %v", img.Attrs)
	}
	if _, err := NoStructure.Parse("<p>"); !errors.Is(err, ErrNoStructure) {
		t.Errorf("expected ErrNoStructure, got %v", err)
	}
}

// --- Helpers ---

func hasMessage(findings []Finding, cat model.Category, substr string) bool {
	for _, f := range findings {
		if f.Category == cat && containsCI(f.Message, substr) {
			return true
		}
	}
	return false
}

func containsCI(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
