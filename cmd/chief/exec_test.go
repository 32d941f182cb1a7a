package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rchopra/chief/internal/strategic"
	"github.com/rchopra/chief/internal/types"
)

const execContextDoc = `### Priority 1: Atlas

**Also known as:** atlas
`

func TestBuildExecReport(t *testing.T) {
	sctx := strategic.ParseContext(execContextDoc)
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	completedAt := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)

	projects := []types.Project{
		{ID: "p1", Title: "Atlas migration", Priority: types.PriorityP1},
		{ID: "p2", Title: "Random burndown", Priority: types.PriorityP3},
	}
	tasks := []types.Task{
		{ID: "w1", Title: "Atlas follow-up", Status: types.StatusWaiting,
			Waiting: []string{"Sarah"}, ProjectIDs: []string{"p1"},
			CreatedTime: now.AddDate(0, 0, -10)},
		{ID: "w2", Title: "Misc vendor check", Status: types.StatusWaiting,
			CreatedTime: now.AddDate(0, 0, -2)},
	}
	completed := []types.Task{
		{ID: "c1", Title: "Ship atlas exporter", Status: types.StatusDone, CompletedDate: &completedAt},
	}

	report := buildExecReport(sctx, projects, tasks, completed, now)

	require.Len(t, report.StrategicPriorities, 1)
	atlas := report.StrategicPriorities[0]
	require.Equal(t, "atlas", atlas.Key)

	// The P1 project with no active tasks scores 70; the ten-day blocker
	// then escalates the priority to blocked.
	require.Len(t, atlas.Projects, 1)
	require.Equal(t, 70, atlas.Projects[0].HealthScore)
	require.Equal(t, "needs_attention", atlas.Projects[0].HealthStatus)
	require.Equal(t, "blocked", atlas.Status)

	require.Len(t, atlas.TasksCompleted, 1)
	require.Equal(t, "Ship atlas exporter", atlas.TasksCompleted[0].Title)
	require.Len(t, atlas.Blockers, 1)
	require.Equal(t, 10, atlas.Blockers[0].DaysWaiting)
	require.Equal(t, []string{"Sarah"}, atlas.Blockers[0].WaitingOn)

	// Unmatched work lands in the other bucket without touching the
	// strategic status counts.
	require.Len(t, report.Other.Projects, 1)
	require.Equal(t, "on_track", report.Other.Status)
	require.Len(t, report.Other.Blockers, 1)
	require.Equal(t, 2, report.Other.Blockers[0].DaysWaiting)

	require.Equal(t, execSummary{
		WeekEnding:          "2025-01-15",
		TotalTasksCompleted: 1,
		TotalBlockers:       2,
		PrioritiesOnTrack:   0,
		PrioritiesAtRisk:    0,
		PrioritiesBlocked:   1,
	}, report.Summary)
}

func TestRenderReviewItem(t *testing.T) {
	date := time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC)
	item := types.ActionItem{
		Person:               "Sarah",
		Action:               "Review security audit",
		Meeting:              "Weekly Sync",
		MeetingDate:          &date,
		DueDateText:          "Friday",
		SuggestedWaitingTask: "Follow up with Sarah on: Review security audit",
		PotentialDuplicates: []types.Task{
			{ID: "t1", Title: "Security audit prep"},
			{ID: "t2", Title: "Audit review notes"},
			{ID: "t3", Title: "Another audit task"},
		},
	}

	out := renderReviewItem(item, 3)
	require.Contains(t, out, "3. Review security audit")
	require.Contains(t, out, "Assigned to: Sarah")
	require.Contains(t, out, `"Weekly Sync" (2025-01-14)`)
	require.Contains(t, out, "Due: Friday")
	require.Contains(t, out, `Would create: "Follow up with Sarah on: Review security audit"`)
	// Potential matches cap at two.
	require.Contains(t, out, "Security audit prep")
	require.Contains(t, out, "Audit review notes")
	require.NotContains(t, out, "Another audit task")
}
