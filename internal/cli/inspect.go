package cli

import (
	"github.com/spf13/cobra"

	"github.com/sprite-ai/webcompat/internal/tui"
)

var inspectFlags analysisFlags

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Browse the findings interactively",
	Long: `Run the analysis and open a terminal UI listing each analyzed file with
its findings and a syntax-highlighted preview of its source.`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	inspectFlags.register(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	r, src, err := inspectFlags.analyze(cmd.Context(), cmd.InOrStdin())
	if err != nil {
		return err
	}

	var files []tui.File
	for _, a := range cfg.Plan().Artifacts() {
		text, err := src.Read(a.Kind, a.Name)
		files = append(files, tui.File{Kind: a.Kind, Name: a.Name, Text: text, Err: err})
	}
	return tui.Run(r, files)
}
