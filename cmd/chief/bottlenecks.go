package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rchopra/chief/internal/metrics"
	"github.com/rchopra/chief/internal/types"
)

var bottlenecksCmd = &cobra.Command{
	Use:   "bottlenecks",
	Short: "Find where work is stuck",
	Long: `Report stuck work: waiting tasks ranked by age, overdue tasks ranked
by days late, stalled projects, and P1 projects drifting without
progress, plus the waiting-duration buckets used for follow-up nudges.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		tasks, err := fetchTasks(cmd, store, nil, nil)
		if err != nil {
			return err
		}
		projects, err := fetchActiveProjects(cmd, store)
		if err != nil {
			return err
		}

		now := today()
		grouped := tasksByProject(tasks)
		pms := make([]metrics.ProjectMetrics, 0, len(projects))
		for _, p := range projects {
			pms = append(pms, metrics.ProjectMetricsFor(p, grouped[p.ID], now))
		}

		var waiting []types.Task
		for _, t := range tasks {
			if t.Status == types.StatusWaiting {
				waiting = append(waiting, t)
			}
		}

		report := metrics.Bottlenecks(tasks, pms, now)
		aging := metrics.WaitingBuckets(waiting, projects, now)

		if jsonOutput {
			return outputJSON(struct {
				metrics.BottleneckReport
				Waiting metrics.WaitingAnalysis `json:"waiting_analysis"`
			}{report, aging})
		}

		fmt.Printf("Waiting: %d  Overdue: %d  Stalled: %d  Drifting P1s: %d\n",
			report.Summary.WaitingTasksCount, report.Summary.OverdueTasksCount,
			report.Summary.StalledProjectsCount, report.Summary.PriorityDriftCount)
		for _, wt := range report.WaitingTasks {
			fmt.Printf("%s  waiting %s: %s\n", renderWarnIcon(), renderDays(wt.WaitingDays), wt.Task.Title)
		}
		for _, ot := range report.OverdueTasks {
			fmt.Printf("%s  overdue %d day(s): %s\n", renderFailIcon(), ot.OverdueDays, ot.Task.Title)
		}
		for _, sp := range report.StalledProjects {
			fmt.Printf("%s  stalled: %s (%.0f%% done)\n", renderFailIcon(), sp.Title, sp.CompletionRate*100)
		}
		for _, dp := range report.PriorityDrift {
			fmt.Printf("%s  P1 drift: %s (%s)\n", renderWarnIcon(), dp.Title, dp.Issue)
		}
		if aging.NeedFollowupCount > 0 {
			fmt.Printf("%d waiting task(s) need a follow-up nudge\n", aging.NeedFollowupCount)
		}
		return nil
	},
}

func renderDays(days *int) string {
	if days == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d day(s)", *days)
}

func init() {
	rootCmd.AddCommand(bottlenecksCmd)
}
