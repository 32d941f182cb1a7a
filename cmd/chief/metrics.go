package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rchopra/chief/internal/metrics"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Productivity metrics over completed work",
	Long: `Bucket completed tasks by day, week, or month and report completion
counts, cycle times, and the trend across the two most recent buckets.

Examples:
  chief metrics
  chief metrics --period month --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		periodStr, _ := cmd.Flags().GetString("period")
		period, err := metrics.ParsePeriod(periodStr)
		if err != nil {
			return err
		}

		store, err := newStore()
		if err != nil {
			return err
		}
		tasks, err := fetchTasks(cmd, store, nil, nil)
		if err != nil {
			return err
		}

		report := metrics.Calculate(tasks, period)
		if jsonOutput {
			return outputJSON(report)
		}

		fmt.Printf("Completed %d of %d tasks (rate %.2f)\n",
			report.Overall.CompletedTasks, report.Overall.TotalTasks, report.Overall.CompletionRate)
		if report.Overall.AvgTimeToComplete != nil {
			fmt.Printf("Average cycle: %.1f day(s)\n", *report.Overall.AvgTimeToComplete)
		}
		for _, pm := range report.ByPeriod {
			fmt.Printf("  %-10s %3d completed", pm.Period, pm.CompletedTasks)
			if pm.AvgTimeToComplete != nil {
				fmt.Printf("  avg cycle %.1f", *pm.AvgTimeToComplete)
			}
			fmt.Println()
		}
		if report.Trends != nil {
			fmt.Printf("Trend: %s (%+d completed)\n", report.Trends.CompletedTasksTrend, report.Trends.CompletedTasksChange)
		}
		return nil
	},
}

func init() {
	metricsCmd.Flags().String("period", "week", "Bucket size: day, week, or month")
	rootCmd.AddCommand(metricsCmd)
}
