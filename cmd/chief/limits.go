package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rchopra/chief/internal/health"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Check project counts against the priority-tier caps",
	Long: `Check the live project portfolio against the tier caps: one P1,
three P2, five P3. Tiers over their cap get a violation plus demotion
candidates drawn from beyond the cap.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		projects, err := fetchAllProjects(cmd, store)
		if err != nil {
			return err
		}

		report := health.CheckPriorityLimits(projects)
		if jsonOutput {
			return outputJSON(report)
		}

		fmt.Printf("P1 %d/%d   P2 %d/%d   P3 %d/%d\n",
			report.P1Count, report.P1Limit,
			report.P2Count, report.P2Limit,
			report.P3Count, report.P3Limit)
		if len(report.Violations) == 0 {
			fmt.Printf("%s  all tiers within limits\n", renderPassIcon())
			return nil
		}
		for _, v := range report.Violations {
			fmt.Printf("%s  %s\n", renderSeverityIcon(v.Severity), v.Message)
		}
		for _, s := range report.Suggestions {
			fmt.Printf("   %s\n", s.Message)
			for _, c := range s.Candidates {
				fmt.Printf("     - %s\n", c.Title)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(limitsCmd)
}
