package analysis

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sprite-ai/webcompat/internal/model"
	"github.com/sprite-ai/webcompat/internal/source"
)

// ErrFault marks an unexpected failure inside a rule check.
var ErrFault = errors.New("analysis fault")

// Options configure an Engine.
type Options struct {
	// Structure enables the structural markup rules. Nil means NoStructure.
	Structure StructureParser
	// Skip lists rule names to leave out.
	Skip []string
	// Logger receives diagnostics; defaults to slog.Default().
	Logger *slog.Logger
}

// Engine runs the per-artifact rule sets. It holds no per-run state and is
// safe for concurrent use.
type Engine struct {
	structure StructureParser
	skip      map[string]bool
	logger    *slog.Logger
}

// NewEngine builds an Engine from opts.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		structure: opts.Structure,
		skip:      make(map[string]bool),
		logger:    opts.Logger,
	}
	if e.structure == nil {
		e.structure = NoStructure
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	for _, name := range opts.Skip {
		e.skip[name] = true
	}
	return e
}

// Analyze runs every enabled rule for kind over text. It never fails: a
// panic inside a rule is converted into a single compatibility issue.
func (e *Engine) Analyze(kind model.ArtifactKind, name, text string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: %v", ErrFault, r)
			e.logger.Error("rule check failed", "kind", kind, "file", name, "error", err)
			res = Failed(kind, name, err)
		}
	}()

	if !kind.Valid() {
		return Failed(kind, name, fmt.Errorf("%w: unknown artifact kind %q", ErrFault, kind))
	}

	a := &artifact{name: name, text: text}
	if kind == model.Markup {
		e.parseStructure(a)
	}

	var findings []Finding
	for _, c := range checksFor(kind) {
		if e.skip[c.Name] || (c.Structural && !a.structured) {
			continue
		}
		if c.fires(a) {
			findings = append(findings, c.finding(name))
		}
	}

	metrics := ArtifactMetrics{
		Kind:     kind,
		File:     name,
		Analyzed: true,
		Size:     len(text),
	}
	switch kind {
	case model.Markup:
		metrics.MarkupMetrics = markupMetrics(findings)
	case model.Style:
		metrics.StyleMetrics = styleMetrics(text)
	case model.Script:
		metrics.ScriptMetrics = scriptMetrics(text)
	}

	e.logger.Debug("artifact analyzed", "kind", kind, "file", name, "findings", len(findings))
	return Result{Findings: findings, Metrics: metrics}
}

func (e *Engine) parseStructure(a *artifact) {
	elements, err := e.structure.Parse(a.text)
	if err != nil {
		if !errors.Is(err, ErrNoStructure) {
			e.logger.Warn("structured parse failed, skipping structural rules", "file", a.name, "error", err)
		}
		return
	}
	a.elements = elements
	a.structured = true
}

// Failed converts an artifact-level failure into a result carrying exactly
// one compatibility issue and a not-analyzed marker.
func Failed(kind model.ArtifactKind, name string, err error) Result {
	var msg string
	switch {
	case errors.Is(err, source.ErrNotFound):
		msg = fmt.Sprintf("%s file not found: %s", kind.Label(), name)
	case errors.Is(err, source.ErrDecode):
		msg = fmt.Sprintf("%s file could not be decoded as text: %s", kind.Label(), name)
	case errors.Is(err, ErrFault):
		msg = fmt.Sprintf("Error analyzing %s: %v", kind.Label(), err)
	default:
		msg = fmt.Sprintf("Error reading %s file %s: %v", kind.Label(), name, err)
	}

	return Result{
		Findings: []Finding{{Category: model.CompatibilityIssue, Message: msg, Source: name}},
		Metrics: ArtifactMetrics{
			Kind:  kind,
			File:  name,
			Error: msg,
		},
	}
}
