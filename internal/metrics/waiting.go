package metrics

import (
	"time"

	"github.com/rchopra/chief/internal/types"
)

// Waiting duration bucket boundaries in days
const (
	recentMaxDays   = 3
	moderateMaxDays = 7
)

// AgedTask is a waiting task with its age in days. A nil age means the
// creation time was missing and the wait length is unknown.
type AgedTask struct {
	Task        types.Task `json:"task"`
	DaysWaiting *int       `json:"days_waiting"`
}

// ProjectWaiting groups one project's waiting tasks.
type ProjectWaiting struct {
	ProjectTitle string       `json:"project_title"`
	Tasks        []types.Task `json:"tasks"`
	Count        int          `json:"count"`
}

// WaitingAnalysis buckets waiting tasks by how long they have waited.
type WaitingAnalysis struct {
	TotalWaiting      int        `json:"total_waiting"`
	Recent            []AgedTask `json:"recent"`
	Moderate          []AgedTask `json:"moderate"`
	NeedFollowup      []AgedTask `json:"need_followup"`
	NeedFollowupCount int        `json:"need_followup_count"`

	ByProject map[string]ProjectWaiting `json:"waiting_by_project"`
}

// WaitingBuckets sorts waiting tasks into recent (under 3 days),
// moderate (3 to 7 days), and needs-follow-up (over 7 days) buckets.
// A task whose age cannot be determined lands in needs-follow-up. The
// per-project grouping keys orphaned tasks under "orphaned"; callers
// fill titles from the project records they hold.
func WaitingBuckets(waiting []types.Task, projects []types.Project, today time.Time) WaitingAnalysis {
	analysis := WaitingAnalysis{
		TotalWaiting: len(waiting),
		ByProject:    make(map[string]ProjectWaiting),
	}

	for _, task := range waiting {
		aged := AgedTask{Task: task}
		if task.CreatedTime.IsZero() {
			analysis.NeedFollowup = append(analysis.NeedFollowup, aged)
			continue
		}
		days := types.DaysBetween(task.CreatedTime, today)
		aged.DaysWaiting = &days
		switch {
		case days < recentMaxDays:
			analysis.Recent = append(analysis.Recent, aged)
		case days <= moderateMaxDays:
			analysis.Moderate = append(analysis.Moderate, aged)
		default:
			analysis.NeedFollowup = append(analysis.NeedFollowup, aged)
		}
	}
	analysis.NeedFollowupCount = len(analysis.NeedFollowup)

	titles := make(map[string]string, len(projects))
	for _, p := range projects {
		titles[p.ID] = p.Title
	}
	add := func(key, title string, task types.Task) {
		group := analysis.ByProject[key]
		if group.ProjectTitle == "" {
			group.ProjectTitle = title
		}
		group.Tasks = append(group.Tasks, task)
		group.Count = len(group.Tasks)
		analysis.ByProject[key] = group
	}
	for _, task := range waiting {
		if len(task.ProjectIDs) == 0 {
			add("orphaned", "No Project", task)
			continue
		}
		for _, projectID := range task.ProjectIDs {
			title := titles[projectID]
			if title == "" {
				short := projectID
				if len(short) > 8 {
					short = short[:8]
				}
				title = "Project " + short
			}
			add(projectID, title, task)
		}
	}
	return analysis
}
