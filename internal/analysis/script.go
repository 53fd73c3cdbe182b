package analysis

import (
	"regexp"
	"strings"

	"github.com/sprite-ai/webcompat/internal/model"
)

var (
	mediaDevicesPattern = regexp.MustCompile(`navigator\.mediaDevices`)
	mediaDevicesGuard   = regexp.MustCompile(`if\s*\([^)]*navigator\.mediaDevices|['"]mediaDevices['"]\s+in\s+navigator`)
	tryPattern          = regexp.MustCompile(`\btry\b`)
	catchPattern        = regexp.MustCompile(`\bcatch\b`)
	intervalPattern     = regexp.MustCompile(`\bsetInterval\s*\(`)
	animationFramePat   = regexp.MustCompile(`requestAnimationFrame`)
)

// capability is a browser API whose use should be guarded by feature detection.
type capability struct {
	rule      string
	name      string
	signature *regexp.Regexp
	guard     *regexp.Regexp
}

func newCapability(rule, name, signature string) capability {
	return capability{
		rule:      rule,
		name:      name,
		signature: regexp.MustCompile(signature),
		guard:     regexp.MustCompile(`if\s*\([^)]*(?:` + signature + `)`),
	}
}

// Evaluated in this order; one recommendation per unguarded capability.
var capabilities = []capability{
	newCapability("detect-getusermedia", "getUserMedia", `navigator\.getUserMedia|navigator\.mediaDevices\.getUserMedia`),
	newCapability("detect-canvas", "Canvas API", `getContext\s*\(\s*['"]2d['"]\s*\)`),
	newCapability("detect-touch", "Touch Events", `touchstart|touchmove|touchend`),
	newCapability("detect-orientation", "Orientation", `orientation|window\.matchMedia\s*\(\s*['"]orientation`),
}

func (c capability) unguarded(a *artifact) bool {
	return c.signature.MatchString(a.text) && !c.guard.MatchString(a.text)
}

var scriptChecks = buildScriptChecks()

func buildScriptChecks() []check {
	checks := []check{
		{
			Rule: Rule{
				Name:        "media-devices-guard",
				Kind:        model.Script,
				Category:    model.CompatibilityIssue,
				Description: "MediaDevices API use is guarded by feature detection",
			},
			message: "Missing feature detection for MediaDevices API",
			fires:   unguardedMediaDevices,
		},
		{
			Rule: Rule{
				Name:        "error-handling",
				Kind:        model.Script,
				Category:    model.CompatibilityIssue,
				Description: "script contains try/catch error handling",
			},
			message: "Missing try/catch blocks for error handling",
			fires:   func(a *artifact) bool { return !hasErrorHandling(a.text) },
		},
		{
			Rule: Rule{
				Name:        "animation-timer",
				Kind:        model.Script,
				Category:    model.PerformanceConcern,
				Description: "animation work uses requestAnimationFrame rather than setInterval",
			},
			message: "Consider using requestAnimationFrame instead of setInterval for animation timing",
			fires:   pollingAnimation,
		},
	}

	for _, c := range capabilities {
		checks = append(checks, check{
			Rule: Rule{
				Name:        c.rule,
				Kind:        model.Script,
				Category:    model.Recommendation,
				Description: c.name + " use is guarded by feature detection",
			},
			message: "Consider adding feature detection for " + c.name,
			fires:   c.unguarded,
		})
	}

	return append(checks, check{
		Rule: Rule{
			Name:        "polyfills",
			Kind:        model.Script,
			Category:    model.Recommendation,
			Description: "script references polyfills",
		},
		message: "Consider adding polyfills for broader browser support",
		fires:   func(a *artifact) bool { return !strings.Contains(strings.ToLower(a.text), "polyfill") },
	})
}

func unguardedMediaDevices(a *artifact) bool {
	return mediaDevicesPattern.MatchString(a.text) && !mediaDevicesGuard.MatchString(a.text)
}

func hasErrorHandling(text string) bool {
	return tryPattern.MatchString(text) && catchPattern.MatchString(text)
}

func pollingAnimation(a *artifact) bool {
	return intervalPattern.MatchString(a.text) && !animationFramePat.MatchString(a.text)
}

func hasFeatureDetection(text string) bool {
	if mediaDevicesGuard.MatchString(text) {
		return true
	}
	for _, c := range capabilities {
		if c.guard.MatchString(text) {
			return true
		}
	}
	return false
}

func scriptMetrics(text string) *ScriptMetrics {
	return &ScriptMetrics{
		HasFeatureDetection: hasFeatureDetection(text),
		HasErrorHandling:    hasErrorHandling(text),
		UsesAnimationFrame:  animationFramePat.MatchString(text),
	}
}
