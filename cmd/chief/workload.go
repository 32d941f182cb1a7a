package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rchopra/chief/internal/health"
	"github.com/rchopra/chief/internal/notion"
)

var workloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Check the balance of this week's committed work",
	Long: `Analyze the distribution of This Week tasks across projects.

Flags projects carrying more than eight tasks, projects marked for the
week with nothing scheduled, and orphaned tasks, then rates the total
load as manageable, heavy, or overloaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		thisWeek := notion.StatusEquals("This Week")
		tasks, err := fetchTasks(cmd, store, &thisWeek, nil)
		if err != nil {
			return err
		}
		projects, err := fetchAllProjects(cmd, store)
		if err != nil {
			return err
		}

		w := health.AnalyzeWorkload(tasks, projects)
		if jsonOutput {
			return outputJSON(w)
		}

		fmt.Printf("This week: %d task(s) across %d project(s) (%s)\n",
			w.TotalThisWeek, len(w.Distribution), renderAssessment(w.Assessment))
		for _, d := range w.Distribution {
			fmt.Printf("  %3d  %s\n", d.TaskCount, d.ProjectTitle)
		}
		for _, issue := range w.Issues {
			fmt.Printf("%s  %s\n", renderSeverityIcon(issue.Severity), issue.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workloadCmd)
}
