// Package health scores projects and workload against triage rules.
// Every analysis is a pure function over pre-fetched records and an
// explicit date, so results are reproducible and testable.
package health

import (
	"fmt"
	"time"

	"github.com/rchopra/chief/internal/types"
)

// Health status thresholds
const (
	healthyFloor        = 80
	needsAttentionFloor = 60
)

// Factor is one deduction applied to a project's health score.
type Factor struct {
	Factor   string `json:"factor"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Count    int    `json:"count,omitempty"`
	Days     int    `json:"days,omitempty"`
}

// ProjectHealth is the scored assessment of one project.
type ProjectHealth struct {
	ProjectID    string         `json:"project_id"`
	ProjectTitle string         `json:"project_title"`
	Priority     types.Priority `json:"priority"`
	Score        int            `json:"health_score"`
	Status       string         `json:"health_status"`
	Factors      []Factor       `json:"factors"`

	TotalTasks      int        `json:"total_tasks"`
	ActiveTasks     int        `json:"active_tasks_count"`
	DoneTasks       int        `json:"done_tasks_count"`
	OverdueTasks    int        `json:"overdue_tasks_count"`
	WaitingTasks    int        `json:"waiting_tasks_count"`
	DueAfterProject int        `json:"tasks_due_after_project"`
	ProjectDueDate  *time.Time `json:"project_due_date,omitempty"`
	ThisWeek        bool       `json:"this_week"`
}

// AnalyzeProject scores a project from 100 down by deducting for missing
// active tasks, overdue tasks, deadline misalignment, due-date pressure,
// and waiting pile-up. The score floors at zero.
func AnalyzeProject(project types.Project, tasks []types.Task, today time.Time) ProjectHealth {
	today = types.DateOf(today)
	var projectDue *time.Time
	if project.DueDate != nil {
		d := types.DateOf(*project.DueDate)
		projectDue = &d
	}

	var active, done, waiting int
	var overdue, dueAfterProject int
	for _, task := range tasks {
		switch {
		case task.Status == types.StatusDone:
			done++
			continue
		case task.Status == types.StatusWaiting:
			waiting++
		case task.Status.IsActive():
			active++
		}
		if task.DueDate == nil {
			continue
		}
		due := types.DateOf(*task.DueDate)
		if due.Before(today) {
			overdue++
		}
		if projectDue != nil && due.After(*projectDue) {
			dueAfterProject++
		}
	}

	score := 100
	var factors []Factor
	highPriority := project.Priority == types.PriorityP1 || project.Priority == types.PriorityP2

	if highPriority && active == 0 {
		score -= 30
		factors = append(factors, Factor{
			Factor:   "no_active_tasks",
			Severity: "high",
			Message:  fmt.Sprintf("%s project has no active tasks", project.Priority),
		})
	} else if active == 0 && len(tasks) > 0 {
		score -= 15
		factors = append(factors, Factor{
			Factor:   "no_active_tasks",
			Severity: "medium",
			Message:  "Project has no active tasks",
		})
	}

	if overdue > 0 {
		score -= minInt(20, overdue*5)
		severity := "medium"
		if overdue > 2 {
			severity = "high"
		}
		factors = append(factors, Factor{
			Factor:   "overdue_tasks",
			Severity: severity,
			Message:  fmt.Sprintf("%d overdue task(s)", overdue),
			Count:    overdue,
		})
	}

	if dueAfterProject > 0 {
		score -= minInt(15, dueAfterProject*3)
		factors = append(factors, Factor{
			Factor:   "tasks_after_deadline",
			Severity: "medium",
			Message:  fmt.Sprintf("%d task(s) due after project deadline", dueAfterProject),
			Count:    dueAfterProject,
		})
	}

	if projectDue != nil {
		daysUntilDue := types.DaysBetween(today, *projectDue)
		if daysUntilDue >= 0 && daysUntilDue <= 14 && active == 0 {
			score -= 25
			factors = append(factors, Factor{
				Factor:   "due_soon_no_active",
				Severity: "high",
				Message:  fmt.Sprintf("Project due in %d days but has no active tasks", daysUntilDue),
				Days:     daysUntilDue,
			})
		} else if daysUntilDue < 0 {
			score -= 30
			factors = append(factors, Factor{
				Factor:   "project_overdue",
				Severity: "critical",
				Message:  fmt.Sprintf("Project is %d days overdue", -daysUntilDue),
				Days:     -daysUntilDue,
			})
		}
	}

	if waiting > active && active > 0 {
		score -= 10
		factors = append(factors, Factor{
			Factor:   "too_many_waiting",
			Severity: "medium",
			Message:  fmt.Sprintf("More waiting tasks (%d) than active (%d)", waiting, active),
		})
	}

	if score < 0 {
		score = 0
	}

	status := "critical"
	switch {
	case score >= healthyFloor:
		status = "healthy"
	case score >= needsAttentionFloor:
		status = "needs_attention"
	}

	return ProjectHealth{
		ProjectID:       project.ID,
		ProjectTitle:    project.Title,
		Priority:        project.Priority,
		Score:           score,
		Status:          status,
		Factors:         factors,
		TotalTasks:      len(tasks),
		ActiveTasks:     active,
		DoneTasks:       done,
		OverdueTasks:    overdue,
		WaitingTasks:    waiting,
		DueAfterProject: dueAfterProject,
		ProjectDueDate:  project.DueDate,
		ThisWeek:        project.ThisWeek,
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
