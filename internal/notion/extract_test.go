package notion

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/rchopra/chief/internal/types"
)

func TestExtractTask(t *testing.T) {
	page := Page{
		ID:             "task-1",
		URL:            "https://notion.example/task-1",
		CreatedTime:    "2025-01-10T09:00:00.000Z",
		LastEditedTime: "2025-01-12T10:30:00.000Z",
		Properties: json.RawMessage(`{
			"Task": {"title": [{"plain_text": "Send the "}, {"plain_text": "Q3 report"}]},
			"Status": {"status": {"name": "This Week"}},
			"Due": {"date": {"start": "2025-01-17"}},
			"Project": {"relation": [{"id": "proj-1"}, {"id": "proj-2"}]},
			"Waiting": {"multi_select": [{"name": "Megan"}]}
		}`),
	}

	task := ExtractTask(page)
	if task.ID != "task-1" || task.URL != "https://notion.example/task-1" {
		t.Errorf("identity fields: got %q %q", task.ID, task.URL)
	}
	if task.Title != "Send the Q3 report" {
		t.Errorf("title runs not concatenated: %q", task.Title)
	}
	if task.Status != types.StatusThisWeek {
		t.Errorf("status = %q", task.Status)
	}
	if task.DueDate == nil || task.DueDate.Format("2006-01-02") != "2025-01-17" {
		t.Errorf("due date = %v", task.DueDate)
	}
	if task.CompletedDate != nil {
		t.Errorf("completed date should be nil, got %v", task.CompletedDate)
	}
	if !reflect.DeepEqual(task.ProjectIDs, []string{"proj-1", "proj-2"}) {
		t.Errorf("project ids = %v", task.ProjectIDs)
	}
	if !reflect.DeepEqual(task.Waiting, []string{"Megan"}) {
		t.Errorf("waiting = %v", task.Waiting)
	}
	if task.CreatedTime.IsZero() || task.LastEditedTime.IsZero() {
		t.Error("timestamps not parsed")
	}
}

func TestExtractTaskTitleFallback(t *testing.T) {
	page := Page{
		ID:         "task-2",
		Properties: json.RawMessage(`{"Name": {"title": [{"plain_text": "Fallback title"}]}}`),
	}
	if got := ExtractTask(page).Title; got != "Fallback title" {
		t.Errorf("title = %q, want fallback to Name", got)
	}
}

func TestExtractTaskMissingProperties(t *testing.T) {
	// Pages with sparse or null properties must extract to zero values.
	pages := []Page{
		{ID: "empty", Properties: json.RawMessage(`{}`)},
		{ID: "nulls", Properties: json.RawMessage(`{
			"Task": {"title": []},
			"Status": {"status": null},
			"Due": {"date": null},
			"Project": {"relation": []},
			"Waiting": {"multi_select": []}
		}`)},
		{ID: "none"},
	}
	for _, page := range pages {
		task := ExtractTask(page)
		if task.Title != "" || task.Status != "" || task.DueDate != nil ||
			task.CompletedDate != nil || task.ProjectIDs != nil || task.Waiting != nil {
			t.Errorf("page %s: non-zero extraction: %+v", page.ID, task)
		}
	}
}

func TestExtractTaskDatetimeDueDate(t *testing.T) {
	page := Page{
		ID:         "task-3",
		Properties: json.RawMessage(`{"Due": {"date": {"start": "2025-01-17T09:00:00.000-08:00"}}}`),
	}
	task := ExtractTask(page)
	if task.DueDate == nil || task.DueDate.Format("2006-01-02") != "2025-01-17" {
		t.Errorf("datetime start should keep its calendar date, got %v", task.DueDate)
	}
}

func TestExtractProject(t *testing.T) {
	page := Page{
		ID:             "proj-1",
		URL:            "https://notion.example/proj-1",
		CreatedTime:    "2024-11-01T08:00:00.000Z",
		LastEditedTime: "2025-01-14T16:00:00.000Z",
		Properties: json.RawMessage(`{
			"Name": {"title": [{"plain_text": "Reporting Pod"}]},
			"Priority": {"select": {"name": "P1 - Reporting Pod"}},
			"Due": {"date": {"start": "2025-02-01"}},
			"This Week": {"checkbox": true},
			"Tasks": {"relation": [{"id": "task-1"}]},
			"Actionable Tasks": {"formula": {"number": 3}},
			"Waiting Tasks": {"formula": {"number": 0}}
		}`),
	}

	proj := ExtractProject(page)
	if proj.Title != "Reporting Pod" {
		t.Errorf("title = %q", proj.Title)
	}
	if proj.Priority != types.PriorityP1 {
		t.Errorf("decorated priority not parsed: %q", proj.Priority)
	}
	if !proj.ThisWeek {
		t.Error("this week checkbox not extracted")
	}
	if !reflect.DeepEqual(proj.TaskIDs, []string{"task-1"}) {
		t.Errorf("task ids = %v", proj.TaskIDs)
	}
	if proj.ActionableTasks == nil || *proj.ActionableTasks != 3 {
		t.Errorf("actionable count = %v", proj.ActionableTasks)
	}
	if proj.WaitingTasks == nil || *proj.WaitingTasks != 0 {
		t.Errorf("waiting count should be 0, not nil: %v", proj.WaitingTasks)
	}
}

func TestExtractProjectNullFormula(t *testing.T) {
	page := Page{
		ID:         "proj-2",
		Properties: json.RawMessage(`{"Actionable Tasks": {"formula": {"number": null}}}`),
	}
	proj := ExtractProject(page)
	if proj.ActionableTasks != nil {
		t.Errorf("null formula should extract as nil, got %v", proj.ActionableTasks)
	}
}

func TestTaskPropertiesRoundTrip(t *testing.T) {
	due := time.Date(2025, 1, 17, 0, 0, 0, 0, time.UTC)
	props, err := TaskProperties{
		Title:   "Follow up with Megan on: Send the numbers",
		Status:  types.StatusInbox,
		DueDate: &due,
		Waiting: []string{"Megan"},
	}.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	task := ExtractTask(Page{ID: "rt", Properties: props})
	if task.Title != "Follow up with Megan on: Send the numbers" {
		t.Errorf("title did not round-trip: %q", task.Title)
	}
	if task.Status != types.StatusInbox {
		t.Errorf("status did not round-trip: %q", task.Status)
	}
	if task.DueDate == nil || !task.DueDate.Equal(due) {
		t.Errorf("due date did not round-trip: %v", task.DueDate)
	}
	if !reflect.DeepEqual(task.Waiting, []string{"Megan"}) {
		t.Errorf("waiting did not round-trip: %v", task.Waiting)
	}
}

func TestTaskPropertiesRejectsInvalidStatus(t *testing.T) {
	if _, err := (TaskProperties{Title: "x", Status: "Sometime"}).JSON(); err == nil {
		t.Error("invalid status should be rejected before it reaches the store")
	}
}

func TestTaskPropertiesOmitsUnsetFields(t *testing.T) {
	props, err := TaskProperties{Status: types.StatusDone}.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(props, &m); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(m) != 1 {
		t.Errorf("partial update payload should carry one property, got %v", m)
	}
	if _, ok := m["Status"]; !ok {
		t.Error("status property missing from payload")
	}
}
