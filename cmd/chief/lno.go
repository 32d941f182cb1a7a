package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rchopra/chief/internal/lno"
	"github.com/rchopra/chief/internal/types"
)

var lnoCmd = &cobra.Command{
	Use:   "lno <task-title>",
	Short: "Classify a task as Leverage, Neutral, or Overhead",
	Long: `Classify a task title into the L/N/O effort framework.

Leverage work moves a strategic priority; Overhead is routine
administration; Neutral is everything in between. Project context
(--project, --priority) and the configured strategic priorities document
sharpen the call.

Examples:
  chief lno "Draft Q3 platform strategy"
  chief lno "Submit expense report" --project "Ops" --priority P3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectName, _ := cmd.Flags().GetString("project")
		priority, _ := cmd.Flags().GetString("priority")

		sctx, err := loadStrategicContext()
		if err != nil {
			return err
		}

		title := strings.Join(args, " ")
		result := lno.Classify(title, lno.Options{
			ProjectName:      projectName,
			ProjectPriority:  types.ParsePriority(priority),
			StrategicTerms:   sctx.Terms(),
			StrategicContent: sctx.Content,
		})

		if jsonOutput {
			return outputJSON(result)
		}

		fmt.Printf("%s  %s (confidence %.2f)\n", renderLNO(result.Classification), title, result.Confidence)
		fmt.Printf("  %s\n", result.Reasoning)
		for _, sig := range result.Signals {
			fmt.Printf("  - %s\n", sig)
		}
		return nil
	},
}

func init() {
	lnoCmd.Flags().String("project", "", "Project the task belongs to")
	lnoCmd.Flags().String("priority", "", "Project priority tier (P1, P2, P3, Monitoring)")
	rootCmd.AddCommand(lnoCmd)
}
