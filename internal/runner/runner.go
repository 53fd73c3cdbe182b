// Package runner drives a full analysis run: it reads every artifact of every
// variant, analyzes each one, and folds the results into a single report.
package runner

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sprite-ai/webcompat/internal/analysis"
	"github.com/sprite-ai/webcompat/internal/model"
	"github.com/sprite-ai/webcompat/internal/source"
)

// Variant names one markup/style/script triple.
type Variant struct {
	Name   string `yaml:"name"`
	Markup string `yaml:"markup"`
	Style  string `yaml:"style"`
	Script string `yaml:"script"`
}

// Artifacts returns the variant's artifacts in analysis order, skipping
// empty names.
func (v Variant) Artifacts() []Artifact {
	var out []Artifact
	for _, a := range []Artifact{
		{Kind: model.Markup, Name: v.Markup},
		{Kind: model.Style, Name: v.Style},
		{Kind: model.Script, Name: v.Script},
	} {
		if a.Name != "" {
			out = append(out, a)
		}
	}
	return out
}

// Artifact is a single file to analyze.
type Artifact struct {
	Kind model.ArtifactKind
	Name string
}

// Plan is the ordered list of variants analyzed in one run.
type Plan []Variant

// DefaultPlan analyzes the baseline and the enhanced variant.
func DefaultPlan() Plan {
	return Plan{
		{Name: "baseline", Markup: "index.html", Style: "styles.css", Script: "script.js"},
		{Name: "enhanced", Markup: "enhanced_index.html", Style: "enhanced_styles.css", Script: "enhanced_script.js"},
	}
}

// Artifacts flattens the plan in order.
func (p Plan) Artifacts() []Artifact {
	var out []Artifact
	for _, v := range p {
		out = append(out, v.Artifacts()...)
	}
	return out
}

// Options tune a run.
type Options struct {
	// Parallel bounds concurrent artifact reads; <= 0 means one per artifact.
	Parallel int
	Logger   *slog.Logger
}

// Run analyzes every artifact in plan and aggregates the results. Artifact
// failures become findings; only context cancellation is returned as an error.
func Run(ctx context.Context, src source.Source, engine *analysis.Engine, plan Plan, opts Options) (*analysis.Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("run_id", uuid.NewString())

	artifacts := plan.Artifacts()
	results := make([]analysis.Result, len(artifacts))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	}
	for i, art := range artifacts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = analyzeOne(src, engine, art, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	state := analysis.NewState()
	for _, res := range results {
		state.Add(res)
	}
	report := analysis.Aggregate(state)

	logger.Info("analysis complete",
		"artifacts", len(artifacts),
		"issues", report.Summary.IssuesFound,
		"recommendations", report.Summary.RecommendationsFound,
		"assessment", report.OverallAssessment.String())
	return report, nil
}

func analyzeOne(src source.Source, engine *analysis.Engine, art Artifact, logger *slog.Logger) analysis.Result {
	text, err := src.Read(art.Kind, art.Name)
	if err != nil {
		logger.Warn("artifact not analyzed", "kind", art.Kind, "file", art.Name, "error", err)
		return analysis.Failed(art.Kind, art.Name, err)
	}
	return engine.Analyze(art.Kind, art.Name, text)
}
