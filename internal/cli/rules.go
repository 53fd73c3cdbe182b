package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sprite-ai/webcompat/internal/analysis"
)

var flagRulesMarkdown bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the analysis rules",
	Long: `List every rule with the artifact kind it applies to and the category of
the finding it produces. Rule names can be passed to --skip or listed
under skip: in .webcompat.yml.`,
	Args: cobra.NoArgs,
	RunE: runRules,
}

func init() {
	rulesCmd.Flags().BoolVar(&flagRulesMarkdown, "markdown", false, "render as a Markdown table")
}

func runRules(cmd *cobra.Command, args []string) error {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Rule", "Kind", "Category", "Needs markup parse", "Checks that"})
	for _, r := range analysis.Rules() {
		structural := ""
		if r.Structural {
			structural = "yes"
		}
		t.AppendRow(table.Row{r.Name, r.Kind, r.Category, structural, r.Description})
	}

	if flagRulesMarkdown {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), t.RenderMarkdown())
		return err
	}
	t.SetStyle(table.StyleLight)
	_, err := fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	return err
}
