// Package types defines core data structures for the chief assistant.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Task represents a unit of work in the task store.
type Task struct {
	ID             string     `json:"id"`
	URL            string     `json:"url,omitempty"`
	Title          string     `json:"title"`
	Status         Status     `json:"status,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CompletedDate  *time.Time `json:"completed_date,omitempty"`
	ProjectIDs     []string   `json:"project_ids,omitempty"`
	Waiting        []string   `json:"waiting,omitempty"`
	CreatedTime    time.Time  `json:"created_time"`
	LastEditedTime time.Time  `json:"last_edited_time"`
}

// Validate checks the task invariants that the store cannot enforce.
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("title is required")
	}
	if t.Status != "" && !t.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", t.Status)
	}
	// completed_at invariant: completed date is set if and only if status is Done
	if t.Status == StatusDone && t.CompletedDate == nil {
		return fmt.Errorf("done tasks must have a completed date")
	}
	if t.Status != StatusDone && t.CompletedDate != nil {
		return fmt.Errorf("non-done tasks cannot have a completed date")
	}
	return nil
}

// IsOverdue reports whether the task has a due date strictly before today
// and is not done. today is a calendar date (time component ignored).
func (t *Task) IsOverdue(today time.Time) bool {
	if t.Status == StatusDone || t.DueDate == nil {
		return false
	}
	return DateOf(*t.DueDate).Before(DateOf(today))
}

// Status represents the triage state of a task.
//
// Statuses are ordered by urgency for triage purposes but are not totally
// ordered: Waiting sits outside the Inbox->Top Priority progression.
type Status string

// Task status constants
const (
	StatusInbox       Status = "Inbox"
	StatusBacklog     Status = "Backlog"
	StatusOnDeck      Status = "On Deck"
	StatusThisWeek    Status = "This Week"
	StatusTopPriority Status = "Top Priority"
	StatusWaiting     Status = "Waiting"
	StatusDone        Status = "Done"
)

// IsValid checks if the status value is valid.
func (s Status) IsValid() bool {
	switch s {
	case StatusInbox, StatusBacklog, StatusOnDeck, StatusThisWeek,
		StatusTopPriority, StatusWaiting, StatusDone:
		return true
	}
	return false
}

// IsActive reports whether the status marks a task as actively worked:
// This Week, Top Priority, or On Deck.
func (s Status) IsActive() bool {
	return s == StatusThisWeek || s == StatusTopPriority || s == StatusOnDeck
}

// ActiveStatuses lists the statuses counted as active work.
func ActiveStatuses() []Status {
	return []Status{StatusThisWeek, StatusTopPriority, StatusOnDeck}
}

// Project groups tasks under a priority tier.
type Project struct {
	ID             string     `json:"id"`
	URL            string     `json:"url,omitempty"`
	Title          string     `json:"title"`
	Priority       Priority   `json:"priority,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CompletedDate  *time.Time `json:"completed_date,omitempty"`
	ThisWeek       bool       `json:"this_week,omitempty"`
	TaskIDs        []string   `json:"task_ids,omitempty"`
	ActionableTasks *int      `json:"actionable_tasks_count,omitempty"`
	WaitingTasks   *int       `json:"waiting_tasks_count,omitempty"`
	CreatedTime    time.Time  `json:"created_time"`
	LastEditedTime time.Time  `json:"last_edited_time"`
}

// IsActive reports whether the project is an active P1/P2/P3 project
// (not Done and not parked in Monitoring).
func (p *Project) IsActive() bool {
	if p.CompletedDate != nil {
		return false
	}
	switch p.Priority {
	case PriorityP1, PriorityP2, PriorityP3:
		return true
	}
	return false
}

// Priority represents a project's priority tier. P1 is highest.
type Priority string

// Project priority constants
const (
	PriorityP1         Priority = "P1"
	PriorityP2         Priority = "P2"
	PriorityP3         Priority = "P3"
	PriorityMonitoring Priority = "Monitoring"
	PriorityDone       Priority = "Done"
)

// IsValid checks if the priority value is valid.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityP1, PriorityP2, PriorityP3, PriorityMonitoring, PriorityDone:
		return true
	}
	return false
}

// ParsePriority maps a store-side priority string onto the closed enum.
// Exact names match first; decorated names ("P2 - Growth", "🔥 P1") fall back
// to a word-boundary scan so "P10" can never alias to P1.
func ParsePriority(s string) Priority {
	trimmed := strings.TrimSpace(s)
	switch Priority(trimmed) {
	case PriorityP1, PriorityP2, PriorityP3, PriorityMonitoring, PriorityDone:
		return Priority(trimmed)
	}
	for _, field := range strings.Fields(trimmed) {
		word := strings.Trim(field, ".,;:-()")
		switch Priority(word) {
		case PriorityP1, PriorityP2, PriorityP3, PriorityMonitoring, PriorityDone:
			return Priority(word)
		}
	}
	return ""
}

// ActionItem is an ephemeral record extracted from a meeting-note block.
// It is either promoted to a Task or parked in a review bucket; it has no
// persistence of its own.
type ActionItem struct {
	Person      string `json:"person,omitempty"`
	Action      string `json:"action"`
	RawText     string `json:"raw_text"`
	HasDueDate  bool   `json:"has_due_date"`
	DueDateText string `json:"due_date_text,omitempty"`

	// Meeting context, attached when the item is collected from a transcript.
	Meeting     string     `json:"meeting,omitempty"`
	MeetingDate *time.Time `json:"meeting_date,omitempty"`

	// Duplicate candidates against the existing task population.
	ObviousDuplicates   []Task `json:"obvious_duplicates,omitempty"`
	PotentialDuplicates []Task `json:"potential_duplicates,omitempty"`

	// Suggested names for the review flow.
	SuggestedTaskName    string `json:"suggested_task_name,omitempty"`
	SuggestedWaitingTask string `json:"suggested_waiting_task,omitempty"`

	// Set when an auto-create attempt failed and the item was demoted to review.
	CreationError string `json:"creation_error,omitempty"`
}

// DateOf truncates a timestamp to its calendar date (midnight, same location).
// Business logic compares plain dates; times of day are store artifacts.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the whole days from a to b (negative if b is earlier),
// comparing calendar dates only.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}
