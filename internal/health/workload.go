package health

import (
	"fmt"
	"sort"

	"github.com/rchopra/chief/internal/types"
)

// Workload assessment boundaries for This Week task counts
const (
	manageableMax = 8
	heavyMax      = 15
)

// ProjectLoad is the This Week task count for one project.
type ProjectLoad struct {
	ProjectID    string `json:"project_id"`
	ProjectTitle string `json:"project_title"`
	TaskCount    int    `json:"task_count"`
	Severity     string `json:"severity,omitempty"`
}

// Issue is one workload problem worth surfacing.
type Issue struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Workload is the week's load picture across projects.
type Workload struct {
	TotalThisWeek int    `json:"total_this_week_tasks"`
	Assessment    string `json:"workload_assessment"`

	Distribution          []ProjectLoad   `json:"distribution_by_project"`
	TooMany               []ProjectLoad   `json:"projects_with_too_many"`
	MarkedThisWeekNoTasks []types.Project `json:"projects_marked_this_week_no_tasks,omitempty"`
	Orphaned              []types.Task    `json:"orphaned_this_week,omitempty"`
	Issues                []Issue         `json:"issues"`
}

// AnalyzeWorkload distributes This Week tasks across projects and flags
// overloaded projects (more than 10 tasks, warning above 8), projects
// marked This Week with no tasks in that status, and tasks with no
// project at all. Up to 8 tasks is manageable, up to 15 heavy, beyond
// that overloaded.
func AnalyzeWorkload(thisWeekTasks []types.Task, allProjects []types.Project) Workload {
	byProject := make(map[string][]types.Task)
	var order []string
	var orphaned []types.Task
	for _, task := range thisWeekTasks {
		if len(task.ProjectIDs) == 0 {
			orphaned = append(orphaned, task)
			continue
		}
		for _, projectID := range task.ProjectIDs {
			if _, seen := byProject[projectID]; !seen {
				order = append(order, projectID)
			}
			byProject[projectID] = append(byProject[projectID], task)
		}
	}

	titles := make(map[string]string, len(allProjects))
	for _, p := range allProjects {
		titles[p.ID] = p.Title
	}
	titleOf := func(id string) string {
		if title, ok := titles[id]; ok && title != "" {
			return title
		}
		short := id
		if len(short) > 8 {
			short = short[:8]
		}
		return "Project " + short
	}

	var distribution, tooMany []ProjectLoad
	for _, projectID := range order {
		load := ProjectLoad{
			ProjectID:    projectID,
			ProjectTitle: titleOf(projectID),
			TaskCount:    len(byProject[projectID]),
		}
		distribution = append(distribution, load)
		if load.TaskCount > 10 {
			tooMany = append(tooMany, load)
		} else if load.TaskCount > 8 {
			load.Severity = "warning"
			tooMany = append(tooMany, load)
		}
	}
	sort.SliceStable(distribution, func(i, j int) bool {
		return distribution[i].TaskCount > distribution[j].TaskCount
	})

	var markedNoTasks []types.Project
	for _, p := range allProjects {
		if p.ThisWeek {
			if _, ok := byProject[p.ID]; !ok {
				markedNoTasks = append(markedNoTasks, p)
			}
		}
	}

	total := len(thisWeekTasks)
	assessment := "overloaded"
	switch {
	case total <= manageableMax:
		assessment = "manageable"
	case total <= heavyMax:
		assessment = "heavy"
	}

	var issues []Issue
	var critical, warnings int
	for _, load := range tooMany {
		if load.Severity == "warning" {
			warnings++
		} else {
			critical++
		}
	}
	if critical > 0 {
		issues = append(issues, Issue{
			Type:     "too_many_tasks",
			Severity: "high",
			Message:  fmt.Sprintf("%d project(s) have >10 tasks in This Week", critical),
		})
	}
	if warnings > 0 {
		issues = append(issues, Issue{
			Type:     "many_tasks",
			Severity: "medium",
			Message:  fmt.Sprintf("%d project(s) have 8-10 tasks in This Week", warnings),
		})
	}
	if len(markedNoTasks) > 0 {
		issues = append(issues, Issue{
			Type:     "marked_this_week_no_tasks",
			Severity: "medium",
			Message:  fmt.Sprintf("%d project(s) marked 'This Week' but have no tasks in that status", len(markedNoTasks)),
		})
	}
	if len(orphaned) > 0 {
		issues = append(issues, Issue{
			Type:     "orphaned_this_week",
			Severity: "low",
			Message:  fmt.Sprintf("%d task(s) in This Week without projects", len(orphaned)),
		})
	}

	return Workload{
		TotalThisWeek:         total,
		Assessment:            assessment,
		Distribution:          distribution,
		TooMany:               tooMany,
		MarkedThisWeekNoTasks: markedNoTasks,
		Orphaned:              orphaned,
		Issues:                issues,
	}
}
