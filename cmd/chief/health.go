package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rchopra/chief/internal/health"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Score the health of every active project",
	Long: `Score every active P1/P2/P3 project from 100 down.

Deductions cover missing active tasks, overdue tasks, tasks due after the
project deadline, deadline pressure, and waiting pile-up. Projects print
worst first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		projects, err := fetchActiveProjects(cmd, store)
		if err != nil {
			return err
		}
		tasks, err := fetchTasks(cmd, store, nil, nil)
		if err != nil {
			return err
		}

		grouped := tasksByProject(tasks)
		now := today()
		reports := make([]health.ProjectHealth, 0, len(projects))
		for _, p := range projects {
			reports = append(reports, health.AnalyzeProject(p, grouped[p.ID], now))
		}
		sort.SliceStable(reports, func(i, j int) bool {
			return reports[i].Score < reports[j].Score
		})

		if jsonOutput {
			return outputJSON(reports)
		}
		for _, r := range reports {
			fmt.Printf("%s %3d  %s [%s]\n", renderHealthStatus(r.Status), r.Score, r.ProjectTitle, r.Priority)
			for _, f := range r.Factors {
				fmt.Printf("      - %s\n", f.Message)
			}
		}
		if len(reports) == 0 {
			fmt.Println("No active projects.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
