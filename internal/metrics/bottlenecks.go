package metrics

import (
	"sort"
	"time"

	"github.com/rchopra/chief/internal/types"
)

// ProjectMetrics is a project enriched with task throughput numbers.
type ProjectMetrics struct {
	Project           types.Project `json:"project"`
	TotalTasks        int           `json:"total_tasks"`
	CompletedTasks    int           `json:"completed_tasks"`
	ActiveTasks       int           `json:"active_tasks"`
	CompletionRate    float64       `json:"completion_rate"`
	AvgTimeToComplete *float64      `json:"avg_time_to_complete_days,omitempty"`
	ProjectAgeDays    *int          `json:"project_age_days,omitempty"`
}

// ProjectMetricsFor computes throughput numbers for one project's tasks.
func ProjectMetricsFor(project types.Project, tasks []types.Task, today time.Time) ProjectMetrics {
	var completed int
	var cycles []int
	for _, task := range tasks {
		if task.Status != types.StatusDone {
			continue
		}
		completed++
		if days, ok := cycleDays(task); ok {
			cycles = append(cycles, days)
		}
	}
	pm := ProjectMetrics{
		Project:           project,
		TotalTasks:        len(tasks),
		CompletedTasks:    completed,
		ActiveTasks:       len(tasks) - completed,
		CompletionRate:    rate(completed, len(tasks)),
		AvgTimeToComplete: avg(cycles),
	}
	if !project.CreatedTime.IsZero() {
		age := types.DaysBetween(project.CreatedTime, today)
		pm.ProjectAgeDays = &age
	}
	return pm
}

// WaitingTask is a waiting task with its age.
type WaitingTask struct {
	Task        types.Task `json:"task"`
	WaitingDays *int       `json:"waiting_days,omitempty"`
}

// OverdueTask is an overdue task with how far past due it is.
type OverdueTask struct {
	Task        types.Task `json:"task"`
	OverdueDays int        `json:"overdue_days"`
}

// StalledProject is a project under 50% complete with no recent edits.
type StalledProject struct {
	Title          string         `json:"title"`
	Priority       types.Priority `json:"priority"`
	CompletionRate float64        `json:"completion_rate"`
	TotalTasks     int            `json:"total_tasks"`
	CompletedTasks int            `json:"completed_tasks"`
	LastEdited     time.Time      `json:"last_edited,omitempty"`
}

// DriftingProject is a P1 project that is not getting P1 attention.
type DriftingProject struct {
	Title          string         `json:"title"`
	Priority       types.Priority `json:"priority"`
	CompletionRate float64        `json:"completion_rate"`
	TotalTasks     int            `json:"total_tasks"`
	Issue          string         `json:"issue"`
}

// BottleneckSummary aggregates bottleneck counts.
type BottleneckSummary struct {
	WaitingTasksCount    int     `json:"waiting_tasks_count"`
	OverdueTasksCount    int     `json:"overdue_tasks_count"`
	StalledProjectsCount int     `json:"stalled_projects_count"`
	PriorityDriftCount   int     `json:"priority_drift_count"`
	AvgWaitingDays       float64 `json:"avg_waiting_days"`
	AvgOverdueDays       float64 `json:"avg_overdue_days"`
}

// BottleneckReport names where work is stuck.
type BottleneckReport struct {
	WaitingTasks    []WaitingTask     `json:"waiting_tasks"`
	OverdueTasks    []OverdueTask     `json:"overdue_tasks"`
	StalledProjects []StalledProject  `json:"stalled_projects"`
	PriorityDrift   []DriftingProject `json:"priority_drift"`
	Summary         BottleneckSummary `json:"bottlenecks_summary"`
}

const stalledAfterDays = 30

// Bottlenecks finds stuck work: waiting tasks ranked by age, overdue
// tasks ranked by days late (both truncated to the worst ten), projects
// stalled below half done with a month of silence, and P1 projects
// drifting with under 30% completion or fewer than three tasks.
func Bottlenecks(tasks []types.Task, projects []ProjectMetrics, today time.Time) BottleneckReport {
	today = types.DateOf(today)
	var report BottleneckReport

	var totalWaitingDays int
	for _, task := range tasks {
		if task.Status != types.StatusWaiting {
			continue
		}
		wt := WaitingTask{Task: task}
		if !task.CreatedTime.IsZero() {
			days := types.DaysBetween(task.CreatedTime, today)
			wt.WaitingDays = &days
			totalWaitingDays += days
		}
		report.WaitingTasks = append(report.WaitingTasks, wt)
	}
	sort.SliceStable(report.WaitingTasks, func(i, j int) bool {
		return waitingDays(report.WaitingTasks[i]) > waitingDays(report.WaitingTasks[j])
	})

	var totalOverdueDays int
	for _, task := range tasks {
		if task.Status == types.StatusDone || task.DueDate == nil {
			continue
		}
		due := types.DateOf(*task.DueDate)
		if !due.Before(today) {
			continue
		}
		days := types.DaysBetween(due, today)
		totalOverdueDays += days
		report.OverdueTasks = append(report.OverdueTasks, OverdueTask{Task: task, OverdueDays: days})
	}
	sort.SliceStable(report.OverdueTasks, func(i, j int) bool {
		return report.OverdueTasks[i].OverdueDays > report.OverdueTasks[j].OverdueDays
	})

	cutoff := today.AddDate(0, 0, -stalledAfterDays)
	for _, pm := range projects {
		if pm.TotalTasks == 0 || pm.CompletionRate >= 0.5 {
			continue
		}
		lastEdited := pm.Project.LastEditedTime
		if !lastEdited.IsZero() && !types.DateOf(lastEdited).Before(cutoff) {
			continue
		}
		report.StalledProjects = append(report.StalledProjects, StalledProject{
			Title:          pm.Project.Title,
			Priority:       pm.Project.Priority,
			CompletionRate: pm.CompletionRate,
			TotalTasks:     pm.TotalTasks,
			CompletedTasks: pm.CompletedTasks,
			LastEdited:     lastEdited,
		})
	}

	for _, pm := range projects {
		if pm.Project.Priority != types.PriorityP1 {
			continue
		}
		if pm.CompletionRate >= 0.3 && pm.TotalTasks >= 3 {
			continue
		}
		issue := "Few tasks"
		if pm.CompletionRate < 0.3 {
			issue = "Low completion rate"
		}
		report.PriorityDrift = append(report.PriorityDrift, DriftingProject{
			Title:          pm.Project.Title,
			Priority:       pm.Project.Priority,
			CompletionRate: pm.CompletionRate,
			TotalTasks:     pm.TotalTasks,
			Issue:          issue,
		})
	}

	report.Summary = BottleneckSummary{
		WaitingTasksCount:    len(report.WaitingTasks),
		OverdueTasksCount:    len(report.OverdueTasks),
		StalledProjectsCount: len(report.StalledProjects),
		PriorityDriftCount:   len(report.PriorityDrift),
	}
	if n := len(report.WaitingTasks); n > 0 {
		report.Summary.AvgWaitingDays = float64(totalWaitingDays) / float64(n)
	}
	if n := len(report.OverdueTasks); n > 0 {
		report.Summary.AvgOverdueDays = float64(totalOverdueDays) / float64(n)
	}

	if len(report.WaitingTasks) > 10 {
		report.WaitingTasks = report.WaitingTasks[:10]
	}
	if len(report.OverdueTasks) > 10 {
		report.OverdueTasks = report.OverdueTasks[:10]
	}
	return report
}

func waitingDays(wt WaitingTask) int {
	if wt.WaitingDays == nil {
		return 0
	}
	return *wt.WaitingDays
}
