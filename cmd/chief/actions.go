package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rchopra/chief/internal/reconcile"
	"github.com/rchopra/chief/internal/timeparsing"
	"github.com/rchopra/chief/internal/transcripts"
	"github.com/rchopra/chief/internal/types"
)

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "Process and approve meeting action items",
}

var actionsProcessCmd = &cobra.Command{
	Use:   "process",
	Short: "Collect action items from recent meetings and reconcile them",
	Long: `Collect action items from recent meeting transcripts, check each one
against the open task population, auto-create the clean self-assigned
ones, and report the rest for review.

Examples:
  chief actions process               # yesterday's meetings
  chief actions process --days 7      # the last week
  chief actions process --since 3d    # compact duration form`,
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		sinceStr, _ := cmd.Flags().GetString("since")

		since := time.Now().AddDate(0, 0, -days)
		if sinceStr != "" {
			// "3d" means three days ago here, so flip an unsigned value.
			s := sinceStr
			if !strings.HasPrefix(s, "-") && !strings.HasPrefix(s, "+") {
				s = "-" + s
			}
			t, ok := timeparsing.ParseCompactDuration(s, time.Now())
			if !ok {
				return fmt.Errorf("invalid --since value %q (want e.g. 3d, 2w)", sinceStr)
			}
			since = t
		}

		p, err := newProcessor()
		if err != nil {
			return err
		}
		report, err := p.Process(cmd.Context(), since)
		if err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(report)
		}
		renderProcessReport(report)
		return nil
	},
}

var actionsApproveCmd = &cobra.Command{
	Use:   "approve",
	Short: "Create tasks from approved review items",
	Long: `Create tasks for review items approved out of a saved process report.

The --file argument is a JSON array of action items (the review buckets
from "chief actions process --json"). --approve lists the zero-based
indices to create; out-of-range indices are skipped.

Examples:
  chief actions approve --file review.json --approve 0,2,5
  chief actions approve --file review.json --approve 1 --status Backlog`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		approveStr, _ := cmd.Flags().GetString("approve")
		projectID, _ := cmd.Flags().GetString("project")
		statusStr, _ := cmd.Flags().GetString("status")

		if file == "" || approveStr == "" {
			return fmt.Errorf("both --file and --approve are required")
		}
		status := types.Status(statusStr)
		if statusStr != "" && !status.IsValid() {
			return fmt.Errorf("invalid status %q", statusStr)
		}

		raw, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read review file: %w", err)
		}
		var items []types.ActionItem
		if err := json.Unmarshal(raw, &items); err != nil {
			return fmt.Errorf("parse review file: %w", err)
		}

		var indices []int
		for _, part := range strings.Split(approveStr, ",") {
			idx, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return fmt.Errorf("invalid index %q in --approve", part)
			}
			indices = append(indices, idx)
		}

		p, err := newProcessor()
		if err != nil {
			return err
		}
		results := p.Approve(cmd.Context(), items, indices, projectID, status)

		if jsonOutput {
			return outputJSON(results)
		}
		for _, r := range results {
			if r.Error != "" {
				fmt.Printf("%s  %s: %s\n", renderFailIcon(), r.ActionItem.Action, r.Error)
				continue
			}
			fmt.Printf("%s  created %q (%s)\n", renderPassIcon(), r.Task.Title, r.Task.ID)
		}
		return nil
	},
}

// newProcessor wires the reconcile processor to the live store and the
// configured meetings data source.
func newProcessor() (*reconcile.Processor, error) {
	store, err := newStore()
	if err != nil {
		return nil, err
	}
	return &reconcile.Processor{
		Store:             store,
		TasksDataSourceID: cfg.TasksDataSource,
		Source:            &transcripts.NotionSource{Store: store, DataSourceID: cfg.MeetingsDataSource},
		SelfNames:         cfg.SelfNames,
	}, nil
}

func init() {
	actionsProcessCmd.Flags().Int("days", 1, "Days of meetings to look back")
	actionsProcessCmd.Flags().String("since", "", "Look back by compact duration (3d, 2w) instead of --days")

	actionsApproveCmd.Flags().String("file", "", "JSON file of review items")
	actionsApproveCmd.Flags().String("approve", "", "Comma-separated indices to approve (0-based)")
	actionsApproveCmd.Flags().String("project", "", "Project page id to attach created tasks to")
	actionsApproveCmd.Flags().String("status", "", "Status for created tasks (default Inbox)")

	actionsCmd.AddCommand(actionsProcessCmd)
	actionsCmd.AddCommand(actionsApproveCmd)
	rootCmd.AddCommand(actionsCmd)
}
