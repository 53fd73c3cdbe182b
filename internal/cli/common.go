package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/webcompat/internal/analysis"
	"github.com/sprite-ai/webcompat/internal/logging"
	"github.com/sprite-ai/webcompat/internal/runner"
	"github.com/sprite-ai/webcompat/internal/server"
	"github.com/sprite-ai/webcompat/internal/source"
)

// analysisFlags are shared by every command that runs an analysis.
type analysisFlags struct {
	skip        []string
	noStructure bool
	patch       string
	parallel    int
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.skip, "skip", nil, "rule names to skip (see 'webcompat rules')")
	cmd.Flags().BoolVar(&f.noStructure, "no-structure", false, "skip rules that need parsed markup")
	cmd.Flags().StringVar(&f.patch, "patch", "", "unified diff applied in memory before analysis ('-' for stdin)")
	cmd.Flags().IntVar(&f.parallel, "parallel", 0, "max concurrent file reads (default: one per file)")
}

// engineOptions merges flags with the loaded config.
func (f *analysisFlags) engineOptions() (analysis.Options, error) {
	skip := append(append([]string(nil), cfg.Skip...), f.skip...)
	if unknown := analysis.UnknownRules(skip); len(unknown) > 0 {
		return analysis.Options{}, fmt.Errorf("unknown rules in skip: %s", strings.Join(unknown, ", "))
	}

	opts := analysis.Options{
		Skip:   skip,
		Logger: logging.New("analysis"),
	}
	if cfg.StructureEnabled() && !f.noStructure {
		opts.Structure = analysis.HTMLStructure
	}
	return opts, nil
}

func (f *analysisFlags) source(stdin io.Reader) (source.Source, error) {
	base := source.NewDir(flagDir)
	if f.patch == "" {
		return base, nil
	}

	var raw []byte
	var err error
	if f.patch == "-" {
		if stdin == nil {
			return nil, fmt.Errorf("patch from stdin can only be read once")
		}
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(f.patch)
	}
	if err != nil {
		return nil, fmt.Errorf("reading patch: %w", err)
	}
	patched, err := source.NewPatched(base, string(raw))
	if err != nil {
		return nil, err
	}
	logging.New("source").Debug("applying patch", "files", patched.Files())
	return patched, nil
}

func (f *analysisFlags) runOptions() runner.Options {
	parallel := f.parallel
	if parallel == 0 {
		parallel = cfg.Parallel
	}
	return runner.Options{Parallel: parallel, Logger: logging.New("runner")}
}

// analyze runs one full analysis of the configured plan.
func (f *analysisFlags) analyze(ctx context.Context, stdin io.Reader) (*analysis.Report, source.Source, error) {
	opts, err := f.engineOptions()
	if err != nil {
		return nil, nil, err
	}
	src, err := f.source(stdin)
	if err != nil {
		return nil, nil, err
	}
	report, err := runner.Run(ctx, src, analysis.NewEngine(opts), cfg.Plan(), f.runOptions())
	if err != nil {
		return nil, nil, err
	}
	return report, src, nil
}

// servePort resolves the test server port from flags and config.
func servePort(cmd *cobra.Command, flag int) int {
	if cmd.Flags().Changed("port") || cfg.Port == 0 {
		return flag
	}
	return cfg.Port
}

// entryPage is the page opened in browsers: the markup of the last variant,
// which is the enhanced one in the default plan.
func entryPage() string {
	plan := cfg.Plan()
	for i := len(plan) - 1; i >= 0; i-- {
		if plan[i].Markup != "" {
			return plan[i].Markup
		}
	}
	return ""
}

func newServer(addr string, opts analysis.Options) *server.Server {
	return server.New(server.Options{
		Addr:   addr,
		Root:   flagDir,
		Engine: opts,
		Logger: logging.New("server"),
	})
}

// localURL turns a bound listener address into a browsable URL for page.
func localURL(addr, page string) string {
	if strings.HasPrefix(addr, "[::]:") || strings.HasPrefix(addr, "0.0.0.0:") || strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr[strings.LastIndex(addr, ":"):]
	}
	return fmt.Sprintf("http://%s/%s", addr, strings.TrimPrefix(page, "/"))
}
