package health

import (
	"fmt"
	"testing"
	"time"

	"github.com/rchopra/chief/internal/types"
)

var today = time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAnalyzeProjectHealthy(t *testing.T) {
	project := types.Project{ID: "p1", Title: "Launch", Priority: types.PriorityP1}
	tasks := []types.Task{
		{ID: "t1", Title: "a", Status: types.StatusThisWeek, DueDate: datePtr(2025, 1, 20)},
		{ID: "t2", Title: "b", Status: types.StatusDone},
	}
	h := AnalyzeProject(project, tasks, today)
	if h.Score != 100 || h.Status != "healthy" {
		t.Errorf("score=%d status=%s, want 100 healthy (factors: %v)", h.Score, h.Status, h.Factors)
	}
	if h.ActiveTasks != 1 || h.DoneTasks != 1 {
		t.Errorf("active=%d done=%d", h.ActiveTasks, h.DoneTasks)
	}
}

func TestAnalyzeProjectDueSoonNoActive(t *testing.T) {
	// P1 project due in 5 days with nothing active: -30 and -25.
	project := types.Project{
		ID:       "p1",
		Title:    "Launch",
		Priority: types.PriorityP1,
		DueDate:  datePtr(2025, 1, 20),
	}
	tasks := []types.Task{
		{ID: "t1", Title: "a", Status: types.StatusBacklog},
	}
	h := AnalyzeProject(project, tasks, today)
	if h.Score != 45 {
		t.Errorf("score = %d, want 45 (factors: %v)", h.Score, h.Factors)
	}
	if h.Status != "critical" {
		t.Errorf("status = %s, want critical", h.Status)
	}
	if len(h.Factors) != 2 {
		t.Errorf("factors = %v, want no_active_tasks and due_soon_no_active", h.Factors)
	}
}

func TestAnalyzeProjectOverdueTasksCapped(t *testing.T) {
	project := types.Project{ID: "p1", Title: "Launch", Priority: types.PriorityP3}
	var tasks []types.Task
	for i := 0; i < 5; i++ {
		tasks = append(tasks, types.Task{
			ID:      fmt.Sprintf("t%d", i),
			Title:   "late",
			Status:  types.StatusThisWeek,
			DueDate: datePtr(2025, 1, 10),
		})
	}
	h := AnalyzeProject(project, tasks, today)
	// Five overdue tasks deduct the 20-point cap, not 25.
	if h.Score != 80 {
		t.Errorf("score = %d, want 80", h.Score)
	}
	if h.OverdueTasks != 5 {
		t.Errorf("overdue = %d, want 5", h.OverdueTasks)
	}
}

func TestAnalyzeProjectOverdueProject(t *testing.T) {
	project := types.Project{
		ID:       "p1",
		Title:    "Launch",
		Priority: types.PriorityP2,
		DueDate:  datePtr(2025, 1, 5),
	}
	tasks := []types.Task{
		{ID: "t1", Title: "a", Status: types.StatusThisWeek},
	}
	h := AnalyzeProject(project, tasks, today)
	if h.Score != 70 || h.Status != "needs_attention" {
		t.Errorf("score=%d status=%s, want 70 needs_attention", h.Score, h.Status)
	}
	if len(h.Factors) != 1 || h.Factors[0].Factor != "project_overdue" {
		t.Errorf("factors = %v", h.Factors)
	}
	if h.Factors[0].Days != 10 {
		t.Errorf("days overdue = %d, want 10", h.Factors[0].Days)
	}
}

func TestAnalyzeProjectTasksAfterDeadline(t *testing.T) {
	project := types.Project{
		ID:       "p1",
		Title:    "Launch",
		Priority: types.PriorityP3,
		DueDate:  datePtr(2025, 1, 31),
	}
	tasks := []types.Task{
		{ID: "t1", Title: "a", Status: types.StatusThisWeek},
		{ID: "t2", Title: "b", Status: types.StatusBacklog, DueDate: datePtr(2025, 2, 10)},
	}
	h := AnalyzeProject(project, tasks, today)
	if h.Score != 97 {
		t.Errorf("score = %d, want 97", h.Score)
	}
	if h.DueAfterProject != 1 {
		t.Errorf("due after project = %d, want 1", h.DueAfterProject)
	}
}

func TestAnalyzeProjectWaitingPileUp(t *testing.T) {
	project := types.Project{ID: "p1", Title: "Launch", Priority: types.PriorityP3}
	tasks := []types.Task{
		{ID: "t1", Title: "a", Status: types.StatusThisWeek},
		{ID: "t2", Title: "b", Status: types.StatusWaiting},
		{ID: "t3", Title: "c", Status: types.StatusWaiting},
	}
	h := AnalyzeProject(project, tasks, today)
	if h.Score != 90 {
		t.Errorf("score = %d, want 90", h.Score)
	}
	if len(h.Factors) != 1 || h.Factors[0].Factor != "too_many_waiting" {
		t.Errorf("factors = %v", h.Factors)
	}
}

func TestAnalyzeProjectScoreFloor(t *testing.T) {
	project := types.Project{
		ID:       "p1",
		Title:    "Stalled",
		Priority: types.PriorityP1,
		DueDate:  datePtr(2024, 12, 1),
	}
	var tasks []types.Task
	for i := 0; i < 5; i++ {
		tasks = append(tasks, types.Task{
			ID:      fmt.Sprintf("t%d", i),
			Title:   "late",
			Status:  types.StatusBacklog,
			DueDate: datePtr(2024, 12, 10),
		})
	}
	tasks = append(tasks, types.Task{
		ID: "t9", Title: "later", Status: types.StatusBacklog, DueDate: datePtr(2025, 3, 1),
	})
	h := AnalyzeProject(project, tasks, today)
	if h.Score < 0 {
		t.Errorf("score must not go negative, got %d", h.Score)
	}
	if h.Status != "critical" {
		t.Errorf("status = %s, want critical", h.Status)
	}
}

func thisWeekTask(id, projectID string) types.Task {
	task := types.Task{ID: id, Title: id, Status: types.StatusThisWeek}
	if projectID != "" {
		task.ProjectIDs = []string{projectID}
	}
	return task
}

func TestAnalyzeWorkloadDistribution(t *testing.T) {
	var tasks []types.Task
	for i := 0; i < 9; i++ {
		tasks = append(tasks, thisWeekTask(fmt.Sprintf("a%d", i), "proj-a"))
	}
	tasks = append(tasks, thisWeekTask("b1", "proj-b"))
	tasks = append(tasks, thisWeekTask("orphan", ""))

	projects := []types.Project{
		{ID: "proj-a", Title: "Alpha"},
		{ID: "proj-b", Title: "Beta"},
		{ID: "proj-c", Title: "Gamma", ThisWeek: true},
	}

	w := AnalyzeWorkload(tasks, projects)
	if w.TotalThisWeek != 11 || w.Assessment != "heavy" {
		t.Errorf("total=%d assessment=%s, want 11 heavy", w.TotalThisWeek, w.Assessment)
	}
	if len(w.TooMany) != 1 || w.TooMany[0].ProjectID != "proj-a" || w.TooMany[0].Severity != "warning" {
		t.Errorf("too many = %+v, want proj-a at warning", w.TooMany)
	}
	if len(w.Orphaned) != 1 || w.Orphaned[0].ID != "orphan" {
		t.Errorf("orphaned = %+v", w.Orphaned)
	}
	if len(w.MarkedThisWeekNoTasks) != 1 || w.MarkedThisWeekNoTasks[0].ID != "proj-c" {
		t.Errorf("marked this week = %+v", w.MarkedThisWeekNoTasks)
	}
	if len(w.Distribution) != 2 || w.Distribution[0].ProjectID != "proj-a" {
		t.Errorf("distribution = %+v, want proj-a first", w.Distribution)
	}
	if len(w.Issues) != 3 {
		t.Errorf("issues = %+v, want many_tasks, marked_this_week, orphaned", w.Issues)
	}
}

func TestAnalyzeWorkloadAssessmentBoundaries(t *testing.T) {
	build := func(n int) []types.Task {
		var tasks []types.Task
		for i := 0; i < n; i++ {
			tasks = append(tasks, thisWeekTask(fmt.Sprintf("t%d", i), ""))
		}
		return tasks
	}
	tests := []struct {
		count int
		want  string
	}{
		{0, "manageable"},
		{8, "manageable"},
		{9, "heavy"},
		{15, "heavy"},
		{16, "overloaded"},
	}
	for _, tt := range tests {
		if got := AnalyzeWorkload(build(tt.count), nil).Assessment; got != tt.want {
			t.Errorf("%d tasks: assessment = %s, want %s", tt.count, got, tt.want)
		}
	}
}

func TestAnalyzeWorkloadOverloadedProject(t *testing.T) {
	var tasks []types.Task
	for i := 0; i < 11; i++ {
		tasks = append(tasks, thisWeekTask(fmt.Sprintf("t%d", i), "proj-a"))
	}
	w := AnalyzeWorkload(tasks, []types.Project{{ID: "proj-a", Title: "Alpha"}})
	if len(w.TooMany) != 1 || w.TooMany[0].Severity != "" {
		t.Errorf("too many = %+v, want proj-a critical (no severity tag)", w.TooMany)
	}
	if len(w.Issues) == 0 || w.Issues[0].Type != "too_many_tasks" || w.Issues[0].Severity != "high" {
		t.Errorf("issues = %+v", w.Issues)
	}
}

func projectWithPriority(id string, p types.Priority) types.Project {
	return types.Project{ID: id, Title: id, Priority: p}
}

func TestCheckPriorityLimitsWithinLimits(t *testing.T) {
	report := CheckPriorityLimits([]types.Project{
		projectWithPriority("a", types.PriorityP1),
		projectWithPriority("b", types.PriorityP2),
		projectWithPriority("c", types.PriorityP3),
		projectWithPriority("d", types.PriorityMonitoring),
	})
	if len(report.Violations) != 0 || len(report.Suggestions) != 0 {
		t.Errorf("violations=%v suggestions=%v, want none", report.Violations, report.Suggestions)
	}
	if report.P1Count != 1 || report.P2Count != 1 || report.P3Count != 1 {
		t.Errorf("counts = %d/%d/%d", report.P1Count, report.P2Count, report.P3Count)
	}
}

func TestCheckPriorityLimitsP2Exceeded(t *testing.T) {
	var projects []types.Project
	for i := 0; i < 6; i++ {
		projects = append(projects, projectWithPriority(fmt.Sprintf("p%d", i), types.PriorityP2))
	}
	report := CheckPriorityLimits(projects)
	if len(report.Violations) != 1 {
		t.Fatalf("violations = %v", report.Violations)
	}
	v := report.Violations[0]
	if v.Priority != types.PriorityP2 || v.Excess != 3 || v.Severity != "high" {
		t.Errorf("violation = %+v", v)
	}
	if len(report.Suggestions) != 1 {
		t.Fatalf("suggestions = %v", report.Suggestions)
	}
	s := report.Suggestions[0]
	if s.Action != "move_to_p3" || len(s.Candidates) != 3 {
		t.Errorf("suggestion = %+v, want 3 move_to_p3 candidates", s)
	}
	if s.Candidates[0].ID != "p3" {
		t.Errorf("first candidate = %s, want the project beyond the cap", s.Candidates[0].ID)
	}
}

func TestCheckPriorityLimitsP1KeepsFirst(t *testing.T) {
	report := CheckPriorityLimits([]types.Project{
		projectWithPriority("first", types.PriorityP1),
		projectWithPriority("second", types.PriorityP1),
	})
	if len(report.Suggestions) != 1 {
		t.Fatalf("suggestions = %v", report.Suggestions)
	}
	s := report.Suggestions[0]
	if s.Action != "move_to_p2" || len(s.Candidates) != 1 || s.Candidates[0].ID != "second" {
		t.Errorf("suggestion = %+v, want only the second project demoted", s)
	}
}

func TestCheckPriorityLimitsSkipsCompleted(t *testing.T) {
	done := projectWithPriority("done", types.PriorityP1)
	done.CompletedDate = datePtr(2025, 1, 1)
	report := CheckPriorityLimits([]types.Project{
		done,
		projectWithPriority("live", types.PriorityP1),
		projectWithPriority("tier-done", types.PriorityDone),
	})
	if report.P1Count != 1 {
		t.Errorf("p1 count = %d, want completed projects skipped", report.P1Count)
	}
	if len(report.Violations) != 0 {
		t.Errorf("violations = %v", report.Violations)
	}
}
