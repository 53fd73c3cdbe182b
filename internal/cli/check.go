package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/webcompat/internal/logging"
	"github.com/sprite-ai/webcompat/internal/report"
)

var (
	checkFlags analysisFlags
	flagFormat string
	flagOutput string
	flagNoSave bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Analyze the front-end files and print a report (non-interactive)",
	Long: `Analyze every configured variant (by default index.html, styles.css and
script.js plus their enhanced_ counterparts) and print a report. The JSON
document is also saved to compatibility_report.json unless --no-save is set.

Exit codes:
  0 - no compatibility issues
  1 - compatibility issues found
  2 - assessment is Poor (more than five issues)`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkFlags.register(checkCmd)
	checkCmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "output format: text, json, markdown, html, chart")
	checkCmd.Flags().StringVarP(&flagOutput, "output", "o", report.DefaultFile, "where to save the JSON report")
	checkCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "do not save the JSON report")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format := flagFormat
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		format = cfg.Format
	}
	formatter, err := report.ForName(format)
	if err != nil {
		return err
	}

	r, _, err := checkFlags.analyze(cmd.Context(), cmd.InOrStdin())
	if err != nil {
		return err
	}

	if !flagNoSave {
		output := flagOutput
		if !cmd.Flags().Changed("output") && cfg.Output != "" {
			output = cfg.Output
		}
		if err := report.Save(output, r); err != nil {
			return err
		}
		logging.New("cli").Info("report saved", "path", output)
	}

	if err := formatter.Format(cmd.OutOrStdout(), r); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if code := report.ExitCode(r); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
