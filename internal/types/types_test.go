package types

import (
	"testing"
	"time"
)

func TestTaskValidation(t *testing.T) {
	done := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		task    Task
		wantErr bool
	}{
		{
			name: "valid inbox task",
			task: Task{ID: "t-1", Title: "Send the Q3 report", Status: StatusInbox},
		},
		{
			name:    "missing title",
			task:    Task{ID: "t-1", Status: StatusInbox},
			wantErr: true,
		},
		{
			name:    "unknown status",
			task:    Task{ID: "t-1", Title: "x", Status: Status("Someday")},
			wantErr: true,
		},
		{
			name:    "done without completed date",
			task:    Task{ID: "t-1", Title: "x", Status: StatusDone},
			wantErr: true,
		},
		{
			name: "done with completed date",
			task: Task{ID: "t-1", Title: "x", Status: StatusDone, CompletedDate: &done},
		},
		{
			name:    "completed date on non-done task",
			task:    Task{ID: "t-1", Title: "x", Status: StatusBacklog, CompletedDate: &done},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStatusIsActive(t *testing.T) {
	active := map[Status]bool{
		StatusThisWeek:    true,
		StatusTopPriority: true,
		StatusOnDeck:      true,
		StatusInbox:       false,
		StatusBacklog:     false,
		StatusWaiting:     false,
		StatusDone:        false,
	}
	for s, want := range active {
		if got := s.IsActive(); got != want {
			t.Errorf("%s.IsActive() = %v, want %v", s, got, want)
		}
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in   string
		want Priority
	}{
		{"P1", PriorityP1},
		{" P2 ", PriorityP2},
		{"P3", PriorityP3},
		{"Monitoring", PriorityMonitoring},
		{"Done", PriorityDone},
		{"P1 - Reporting Pod", PriorityP1},
		{"🔥 P2", PriorityP2},
		{"P10", ""},
		{"", ""},
		{"high", ""},
	}
	for _, tt := range tests {
		if got := ParsePriority(tt.in); got != tt.want {
			t.Errorf("ParsePriority(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsOverdue(t *testing.T) {
	today := time.Date(2026, 8, 30, 15, 4, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	overdue := Task{Title: "x", Status: StatusThisWeek, DueDate: &yesterday}
	if !overdue.IsOverdue(today) {
		t.Error("task due yesterday should be overdue")
	}

	future := Task{Title: "x", Status: StatusThisWeek, DueDate: &tomorrow}
	if future.IsOverdue(today) {
		t.Error("task due tomorrow should not be overdue")
	}

	// Due today is not overdue: plain-date comparison, time of day ignored.
	dueToday := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	sameDay := Task{Title: "x", Status: StatusThisWeek, DueDate: &dueToday}
	if sameDay.IsOverdue(today) {
		t.Error("task due today should not be overdue")
	}

	doneDate := yesterday
	done := Task{Title: "x", Status: StatusDone, DueDate: &yesterday, CompletedDate: &doneDate}
	if done.IsOverdue(today) {
		t.Error("done tasks are never overdue")
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2026, 1, 10, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 1, 15, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 5 {
		t.Errorf("DaysBetween = %d, want 5", got)
	}
	if got := DaysBetween(b, a); got != -5 {
		t.Errorf("DaysBetween reversed = %d, want -5", got)
	}
}
