package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rchopra/chief/internal/health"
	"github.com/rchopra/chief/internal/notion"
	"github.com/rchopra/chief/internal/strategic"
	"github.com/rchopra/chief/internal/types"
)

// execProject is a project line in the rollup, health attached.
type execProject struct {
	Title        string          `json:"title"`
	Priority     types.Priority  `json:"priority"`
	HealthScore  int             `json:"health_score"`
	HealthStatus string          `json:"health_status"`
	ActiveTasks  int             `json:"active_tasks"`
	OverdueTasks int             `json:"overdue_tasks"`
	Factors      []health.Factor `json:"factors"`
}

type execCompleted struct {
	Title         string     `json:"title"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
}

type execBlocker struct {
	Title       string   `json:"title"`
	WaitingOn   []string `json:"waiting_on,omitempty"`
	DaysWaiting int      `json:"days_waiting"`
}

// execPriority is one strategic priority's week. Status escalates from
// on_track through at_risk to blocked and never de-escalates.
type execPriority struct {
	Key            string          `json:"key"`
	Name           string          `json:"name"`
	DisplayName    string          `json:"display_name"`
	Status         string          `json:"status"`
	Projects       []execProject   `json:"projects"`
	TasksCompleted []execCompleted `json:"tasks_completed_this_week"`
	Blockers       []execBlocker   `json:"blockers"`
}

type execSummary struct {
	WeekEnding          string `json:"week_ending"`
	TotalTasksCompleted int    `json:"total_tasks_completed"`
	TotalBlockers       int    `json:"total_blockers"`
	PrioritiesOnTrack   int    `json:"priorities_on_track"`
	PrioritiesAtRisk    int    `json:"priorities_at_risk"`
	PrioritiesBlocked   int    `json:"priorities_blocked"`
}

type execReport struct {
	Summary             execSummary    `json:"summary"`
	StrategicPriorities []execPriority `json:"strategic_priorities"`
	Other               execPriority   `json:"other_projects"`
}

var execCmd = &cobra.Command{
	Use:   "exec",
	Short: "Weekly executive rollup by strategic priority",
	Long: `Roll the week up for an executive update: per strategic priority, the
projects with their health, the tasks completed in the last seven days,
and the blockers (waiting tasks), with an on_track / at_risk / blocked
status call per priority.

Priorities come from the configured strategic context document.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		sctx, err := loadStrategicContext()
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

		now := today()
		weekAgo := now.AddDate(0, 0, -7)

		completedFilter := notion.And(
			notion.StatusEquals("Done"),
			notion.DateOnOrAfter("Completed", weekAgo.Format("2006-01-02")),
		)
		completed, err := fetchTasks(cmd, store, &completedFilter,
			[]notion.Sort{notion.Descending("Completed")})
		if err != nil {
			return err
		}

		report := buildExecReport(sctx, projects, tasks, completed, now)
		if jsonOutput {
			return outputJSON(report)
		}
		renderExecReport(report)
		return nil
	},
}

// buildExecReport groups projects, completions, and blockers under the
// strategic priorities the context document declares.
func buildExecReport(sctx *strategic.Context, projects []types.Project, tasks, completed []types.Task, now time.Time) execReport {
	buckets := make(map[string]*execPriority)
	var order []string
	for _, p := range sctx.Priorities {
		buckets[p.Key] = &execPriority{Key: p.Key, Name: p.Name, DisplayName: p.DisplayName, Status: "on_track"}
		order = append(order, p.Key)
	}
	buckets[strategic.OtherKey] = &execPriority{Key: strategic.OtherKey, Name: "Other", DisplayName: "Other", Status: "on_track"}

	bucketFor := func(key string) *execPriority {
		if b, ok := buckets[key]; ok {
			return b
		}
		return buckets[strategic.OtherKey]
	}
	projectName := func(ids []string) string {
		for _, p := range projects {
			for _, id := range ids {
				if p.ID == id {
					return p.Title
				}
			}
		}
		return ""
	}

	grouped := tasksByProject(tasks)
	for _, p := range projects {
		h := health.AnalyzeProject(p, grouped[p.ID], now)
		b := bucketFor(sctx.ClassifyTitle(p.Title, ""))
		b.Projects = append(b.Projects, execProject{
			Title:        p.Title,
			Priority:     p.Priority,
			HealthScore:  h.Score,
			HealthStatus: h.Status,
			ActiveTasks:  h.ActiveTasks,
			OverdueTasks: h.OverdueTasks,
			Factors:      h.Factors,
		})
		// Unhealthy projects put their priority at risk, but a blocked
		// call sticks.
		if (h.Status == "critical" || h.Status == "needs_attention") && b.Status == "on_track" {
			b.Status = "at_risk"
		}
	}

	for _, t := range completed {
		b := bucketFor(sctx.ClassifyTitle(t.Title, projectName(t.ProjectIDs)))
		b.TasksCompleted = append(b.TasksCompleted, execCompleted{Title: t.Title, CompletedDate: t.CompletedDate})
	}

	totalBlockers := 0
	for _, t := range tasks {
		if t.Status != types.StatusWaiting {
			continue
		}
		days := 0
		if !t.CreatedTime.IsZero() {
			days = types.DaysBetween(t.CreatedTime, now)
		}
		b := bucketFor(sctx.ClassifyTitle(t.Title, projectName(t.ProjectIDs)))
		b.Blockers = append(b.Blockers, execBlocker{Title: t.Title, WaitingOn: t.Waiting, DaysWaiting: days})
		totalBlockers++
		if days > 7 {
			b.Status = "blocked"
		}
	}

	report := execReport{Other: *buckets[strategic.OtherKey]}
	atRisk, blocked := 0, 0
	for _, key := range order {
		b := *buckets[key]
		report.StrategicPriorities = append(report.StrategicPriorities, b)
		switch b.Status {
		case "at_risk":
			atRisk++
		case "blocked":
			blocked++
		}
	}
	report.Summary = execSummary{
		WeekEnding:          now.Format("2006-01-02"),
		TotalTasksCompleted: len(completed),
		TotalBlockers:       totalBlockers,
		PrioritiesOnTrack:   len(order) - atRisk - blocked,
		PrioritiesAtRisk:    atRisk,
		PrioritiesBlocked:   blocked,
	}
	return report
}

func init() {
	rootCmd.AddCommand(execCmd)
}
