// Package analysis implements the static compatibility checks run over
// markup, stylesheet and script artifacts, and the aggregation of their
// findings into a report.
package analysis

import (
	"fmt"
	"regexp"

	"github.com/sprite-ai/webcompat/internal/model"
)

// Finding is a single detected issue, performance concern, or recommendation.
type Finding struct {
	Category model.Category `json:"category"`
	Message  string         `json:"message"`
	Source   string         `json:"source_file"`
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s", f.Category, f.Source, f.Message)
}

// MarkupMetrics are the facts gathered while analyzing a markup document.
type MarkupMetrics struct {
	IssuesCount int `json:"issues_count"`
}

// StyleMetrics are the responsive-design facts gathered from a stylesheet.
type StyleMetrics struct {
	MediaQueries    int    `json:"media_queries"`
	FixedUnits      int    `json:"fixed_units"`
	ResponsiveUnits int    `json:"responsive_units"`
	Ratio           string `json:"fixed_vs_responsive_ratio"`
}

// ScriptMetrics are the idiom-presence facts gathered from a script.
type ScriptMetrics struct {
	HasFeatureDetection bool `json:"has_feature_detection"`
	HasErrorHandling    bool `json:"has_error_handling"`
	UsesAnimationFrame  bool `json:"uses_animation_frame"`
}

// ArtifactMetrics describes one analyzed (or unanalyzable) artifact. Exactly
// one of the kind-specific embedded structs is set for an analyzed artifact.
type ArtifactMetrics struct {
	Kind     model.ArtifactKind `json:"kind"`
	File     string             `json:"file"`
	Analyzed bool               `json:"analyzed"`
	Size     int                `json:"size"`
	Error    string             `json:"error,omitempty"`

	*MarkupMetrics
	*StyleMetrics
	*ScriptMetrics
}

// Result is the output of analyzing a single artifact.
type Result struct {
	Findings []Finding
	Metrics  ArtifactMetrics
}

// Rule describes a named check. Rules can be skipped by name.
type Rule struct {
	Name        string
	Kind        model.ArtifactKind
	Category    model.Category
	Description string
	Structural  bool // requires a structured markup parse
}

// artifact is the input handed to every check.
type artifact struct {
	name       string
	text       string
	elements   []Element
	structured bool
}

// check is a named predicate over an artifact; true means the rule fires.
type check struct {
	Rule
	message string
	fires   func(a *artifact) bool
}

func (c check) finding(source string) Finding {
	return Finding{Category: c.Category, Message: c.message, Source: source}
}

// Rules returns the full rule catalogue in evaluation order.
func Rules() []Rule {
	var rules []Rule
	for _, kind := range model.Kinds() {
		for _, c := range checksFor(kind) {
			rules = append(rules, c.Rule)
		}
	}
	return rules
}

// UnknownRules returns the names that do not match any rule.
func UnknownRules(names []string) []string {
	known := make(map[string]bool)
	for _, r := range Rules() {
		known[r.Name] = true
	}
	var unknown []string
	for _, n := range names {
		if !known[n] {
			unknown = append(unknown, n)
		}
	}
	return unknown
}

func checksFor(kind model.ArtifactKind) []check {
	switch kind {
	case model.Markup:
		return markupChecks
	case model.Style:
		return styleChecks
	case model.Script:
		return scriptChecks
	default:
		return nil
	}
}

func matches(re *regexp.Regexp) func(a *artifact) bool {
	return func(a *artifact) bool { return re.MatchString(a.text) }
}

func lacks(re *regexp.Regexp) func(a *artifact) bool {
	return func(a *artifact) bool { return !re.MatchString(a.text) }
}
