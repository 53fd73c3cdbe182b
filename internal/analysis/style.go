package analysis

import (
	"fmt"
	"regexp"

	"github.com/sprite-ai/webcompat/internal/model"
)

var (
	mediaQueryPattern     = regexp.MustCompile(`@media\s+[^{]+\{`)
	flexDisplayPattern    = regexp.MustCompile(`display\s*:\s*(?:inline-)?flex\b`)
	flexPrefixPattern     = regexp.MustCompile(`-webkit-(?:box|flex|inline-flex)|-ms-(?:inline-)?flexbox`)
	transformPattern      = unprefixedProperty("transform")
	transformPrefixed     = regexp.MustCompile(`-webkit-transform\s*:`)
	transitionPattern     = unprefixedProperty("transition")
	transitionPrefixed    = regexp.MustCompile(`-webkit-transition\s*:`)
	animationPattern      = unprefixedProperty("animation")
	willChangePattern     = regexp.MustCompile(`will-change\s*:`)
	fixedUnitPattern      = regexp.MustCompile(`\d+px`)
	responsiveUnitPattern = regexp.MustCompile(`\d+(?:em|rem|%|vh|vw)`)
)

// unprefixedProperty matches a declaration of prop that is not itself part of
// a longer (for example vendor-prefixed) property name.
func unprefixedProperty(prop string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)(?:^|[^-\w])` + prop + `\s*:`)
}

var styleChecks = []check{
	{
		Rule: Rule{
			Name:        "media-queries",
			Kind:        model.Style,
			Category:    model.CompatibilityIssue,
			Description: "stylesheet contains media queries",
		},
		message: "No media queries found for responsive design",
		fires:   lacks(mediaQueryPattern),
	},
	{
		Rule: Rule{
			Name:        "flexbox-prefix",
			Kind:        model.Style,
			Category:    model.Recommendation,
			Description: "flexbox layouts carry vendor-prefixed fallbacks",
		},
		message: "Consider adding vendor prefixes for flexbox for better compatibility",
		fires:   flexWithoutPrefix,
	},
	{
		Rule: Rule{
			Name:        "transform-prefix",
			Kind:        model.Style,
			Category:    model.Recommendation,
			Description: "transforms and transitions carry -webkit- counterparts",
		},
		message: "Consider adding vendor prefixes for transforms/transitions",
		fires:   transformWithoutPrefix,
	},
	{
		Rule: Rule{
			Name:        "will-change",
			Kind:        model.Style,
			Category:    model.Recommendation,
			Description: "animated properties are hinted with will-change",
		},
		message: "Consider using 'will-change' property for animation performance",
		fires:   animationWithoutWillChange,
	},
	{
		Rule: Rule{
			Name:        "relative-units",
			Kind:        model.Style,
			Category:    model.Recommendation,
			Description: "relative units are used at least as often as pixels",
		},
		message: "Consider using more responsive units (em, rem, %, vh, vw) instead of fixed pixels",
		fires:   pixelsDominate,
	},
}

func flexWithoutPrefix(a *artifact) bool {
	return flexDisplayPattern.MatchString(a.text) && !flexPrefixPattern.MatchString(a.text)
}

func transformWithoutPrefix(a *artifact) bool {
	if transformPattern.MatchString(a.text) && !transformPrefixed.MatchString(a.text) {
		return true
	}
	return transitionPattern.MatchString(a.text) && !transitionPrefixed.MatchString(a.text)
}

func animationWithoutWillChange(a *artifact) bool {
	animated := animationPattern.MatchString(a.text) || transitionPattern.MatchString(a.text)
	return animated && !willChangePattern.MatchString(a.text)
}

func pixelsDominate(a *artifact) bool {
	fixed, responsive := countUnits(a.text)
	return fixed > responsive
}

// countUnits returns the number of pixel and relative length literals.
func countUnits(text string) (fixed, responsive int) {
	fixed = len(fixedUnitPattern.FindAllStringIndex(text, -1))
	responsive = len(responsiveUnitPattern.FindAllStringIndex(text, -1))
	return fixed, responsive
}

func styleMetrics(text string) *StyleMetrics {
	fixed, responsive := countUnits(text)
	return &StyleMetrics{
		MediaQueries:    len(mediaQueryPattern.FindAllStringIndex(text, -1)),
		FixedUnits:      fixed,
		ResponsiveUnits: responsive,
		Ratio:           fmt.Sprintf("%d:%d", fixed, responsive),
	}
}
