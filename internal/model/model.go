// Package model defines the core data types shared across webcompat.
package model

import "fmt"

// Category classifies a finding.
type Category int

const (
	CompatibilityIssue Category = iota
	PerformanceConcern
	Recommendation
)

func (c Category) String() string {
	switch c {
	case CompatibilityIssue:
		return "compatibility_issue"
	case PerformanceConcern:
		return "performance_concern"
	case Recommendation:
		return "recommendation"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	for _, cand := range []Category{CompatibilityIssue, PerformanceConcern, Recommendation} {
		if cand.String() == string(b) {
			*c = cand
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", string(b))
}

// ArtifactKind identifies which of the three static files an artifact is.
type ArtifactKind string

const (
	Markup ArtifactKind = "markup"
	Style  ArtifactKind = "style"
	Script ArtifactKind = "script"
)

// Kinds lists the artifact kinds in analysis order.
func Kinds() []ArtifactKind {
	return []ArtifactKind{Markup, Style, Script}
}

// Label is the human-facing name used in finding messages.
func (k ArtifactKind) Label() string {
	switch k {
	case Markup:
		return "HTML"
	case Style:
		return "CSS"
	case Script:
		return "JavaScript"
	default:
		return string(k)
	}
}

// Valid reports whether k is one of the known kinds.
func (k ArtifactKind) Valid() bool {
	switch k {
	case Markup, Style, Script:
		return true
	}
	return false
}

// Tier is the qualitative overall assessment derived from the issue count.
type Tier int

const (
	TierExcellent Tier = iota
	TierGood
	TierFair
	TierPoor
)

// TierFor maps a compatibility issue count to its tier.
func TierFor(issues int) Tier {
	switch {
	case issues <= 0:
		return TierExcellent
	case issues <= 2:
		return TierGood
	case issues <= 5:
		return TierFair
	default:
		return TierPoor
	}
}

func (t Tier) String() string {
	switch t {
	case TierExcellent:
		return "Excellent"
	case TierGood:
		return "Good"
	case TierFair:
		return "Fair"
	case TierPoor:
		return "Poor"
	default:
		return "Unknown"
	}
}

// Description is the long form shown in human-readable reports.
func (t Tier) Description() string {
	switch t {
	case TierExcellent:
		return "Excellent - No compatibility issues detected"
	case TierGood:
		return "Good - Minor compatibility issues detected"
	case TierFair:
		return "Fair - Several compatibility issues detected"
	case TierPoor:
		return "Poor - Multiple compatibility issues detected"
	default:
		return t.String()
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	for _, cand := range []Tier{TierExcellent, TierGood, TierFair, TierPoor} {
		if cand.String() == string(b) {
			*t = cand
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", string(b))
}
