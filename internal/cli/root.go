// Package cli implements the webcompat command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/webcompat/internal/config"
	"github.com/sprite-ai/webcompat/internal/logging"
)

var (
	flagDir       string
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
)

// cfg is loaded once per invocation before any command runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "webcompat",
	Short: "Static browser-compatibility checks for HTML, CSS and JavaScript",
	Long: `webcompat inspects a small web front-end (markup, stylesheet and script)
for browser-compatibility problems, performance concerns and recommended
improvements, and rates it Excellent, Good, Fair or Poor.

Configuration is read from .webcompat.yml in the base directory. Flags
override configured values.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "d", ".", "base directory containing the files to analyze")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: <dir>/.webcompat.yml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error (default info)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: text or json (default text)")

	rootCmd.AddCommand(checkCmd, serveCmd, watchCmd, inspectCmd, screenshotCmd, rulesCmd, versionCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var (
		loaded config.Config
		err    error
	)
	if flagConfig != "" {
		loaded, err = config.LoadFile(flagConfig)
	} else {
		loaded, err = config.Load(flagDir)
	}
	if err != nil {
		return err
	}
	cfg = loaded

	levelName := firstNonEmpty(flagLogLevel, cfg.LogLevel)
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}
	format := firstNonEmpty(flagLogFormat, cfg.LogFormat, "text")
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown log format %q (want text or json)", format)
	}
	logging.Init(level, format, cmd.ErrOrStderr())
	return nil
}

// ExitError reports a non-zero exit status that carries no message of its
// own, such as check finding compatibility issues.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	var exit *ExitError
	if err != nil && !errors.As(err, &exit) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
