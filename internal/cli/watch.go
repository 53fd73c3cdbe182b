package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/webcompat/internal/logging"
	"github.com/sprite-ai/webcompat/internal/watch"
)

var (
	watchFlags   analysisFlags
	flagDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Serve the files and rerun the analysis whenever one changes",
	Long: `Start the test server, then rerun the analysis each time one of the
configured files changes. Every new report is printed as a one-line
summary and pushed to websocket clients of /api/ws.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchFlags.register(watchCmd)
	addServerFlags(watchCmd)
	watchCmd.Flags().DurationVar(&flagDebounce, "debounce", watch.DefaultDebounce, "quiet period before rerunning")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchFlags.patch == "-" {
		return fmt.Errorf("--patch - cannot be combined with watch")
	}

	srv, stop, err := startServer(cmd, &watchFlags)
	if err != nil {
		return err
	}
	defer stop()

	if r := srv.Latest(); r != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n",
			time.Now().Format(time.TimeOnly), r.OverallAssessment, r.Headline())
	}

	var files []string
	for _, a := range cfg.Plan().Artifacts() {
		files = append(files, a.Name)
	}
	w, err := watch.New(flagDir, watch.Options{
		Debounce: flagDebounce,
		Files:    files,
		Logger:   logging.New("watch"),
	})
	if err != nil {
		return err
	}

	logger := logging.New("cli")
	ctx := cmd.Context()
	err = w.Run(ctx, func(changes []watch.Change) {
		for _, c := range changes {
			logger.Debug("file changed", "path", c.Path, "op", c.Op)
		}
		r, err := publishAnalysis(ctx, srv, &watchFlags)
		if err != nil {
			logger.Warn("analysis failed", "error", err)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %d file(s) changed, %s: %s\n",
			time.Now().Format(time.TimeOnly), len(changes), r.OverallAssessment, r.Headline())
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
