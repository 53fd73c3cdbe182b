package analysis

import (
	"regexp"
	"strings"

	"github.com/sprite-ai/webcompat/internal/model"
)

const html5Doctype = "<!DOCTYPE html>"

var (
	viewportPattern    = regexp.MustCompile(`(?i)<meta\s+name=["']viewport["']`)
	langPattern        = regexp.MustCompile(`(?i)<html\s+[^>]*lang=["'][a-z]{2}["']`)
	videoPattern       = regexp.MustCompile(`(?i)<video\b`)
	playsInlinePattern = regexp.MustCompile(`(?i)\bplaysinline\b`)
	ariaLabelPattern   = regexp.MustCompile(`(?i)aria-label`)
)

var markupChecks = []check{
	{
		Rule: Rule{
			Name:        "viewport",
			Kind:        model.Markup,
			Category:    model.CompatibilityIssue,
			Description: "responsive viewport meta tag is declared",
		},
		message: "Missing viewport meta tag for responsive design",
		fires:   lacks(viewportPattern),
	},
	{
		Rule: Rule{
			Name:        "doctype",
			Kind:        model.Markup,
			Category:    model.CompatibilityIssue,
			Description: "document starts with the HTML5 doctype",
		},
		message: "Missing HTML5 doctype declaration",
		fires:   missingDoctype,
	},
	{
		Rule: Rule{
			Name:        "lang",
			Kind:        model.Markup,
			Category:    model.CompatibilityIssue,
			Description: "html element carries a two-letter lang attribute",
		},
		message: "Missing language attribute on html element",
		fires:   lacks(langPattern),
	},
	{
		Rule: Rule{
			Name:        "video-playsinline",
			Kind:        model.Markup,
			Category:    model.CompatibilityIssue,
			Description: "video elements allow inline playback on iOS Safari",
		},
		message: "Missing 'playsinline' attribute on video element for iOS compatibility",
		fires:   videoWithoutPlaysInline,
	},
	{
		Rule: Rule{
			Name:        "aria-label",
			Kind:        model.Markup,
			Category:    model.Recommendation,
			Description: "document uses ARIA labels",
		},
		message: "Consider adding ARIA labels for better accessibility",
		fires:   lacks(ariaLabelPattern),
	},
	{
		Rule: Rule{
			Name:        "img-responsive",
			Kind:        model.Markup,
			Category:    model.Recommendation,
			Description: "images declare srcset or loading",
			Structural:  true,
		},
		message: "Consider adding 'srcset' or 'loading' attributes to images for better performance",
		fires:   imageWithoutResponsiveHints,
	},
	{
		Rule: Rule{
			Name:        "anchor-role",
			Kind:        model.Markup,
			Category:    model.Recommendation,
			Description: "links used as buttons declare a role",
			Structural:  true,
		},
		message: "Links used as buttons should have role='button' attribute",
		fires:   anchorWithoutRole,
	},
}

func missingDoctype(a *artifact) bool {
	return !strings.HasPrefix(strings.TrimSpace(a.text), html5Doctype)
}

func videoWithoutPlaysInline(a *artifact) bool {
	return videoPattern.MatchString(a.text) && !playsInlinePattern.MatchString(a.text)
}

// Only the first offending image is reported.
func imageWithoutResponsiveHints(a *artifact) bool {
	for _, el := range a.elements {
		if el.Tag == "img" && !el.Has("srcset") && !el.Has("loading") {
			return true
		}
	}
	return false
}

func anchorWithoutRole(a *artifact) bool {
	for _, el := range a.elements {
		if el.Tag == "a" && !el.Has("role") {
			return true
		}
	}
	return false
}

func markupMetrics(findings []Finding) *MarkupMetrics {
	return &MarkupMetrics{IssuesCount: len(findings)}
}
