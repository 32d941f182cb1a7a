// Package reconcile turns meeting action items into tasks.
//
// Items assigned to the configured self names with no duplicate
// candidates are created immediately; everything else lands in review
// buckets keyed by how suspicious the duplicate match is.
package reconcile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rchopra/chief/internal/dedupe"
	"github.com/rchopra/chief/internal/debug"
	"github.com/rchopra/chief/internal/notion"
	"github.com/rchopra/chief/internal/timeparsing"
	"github.com/rchopra/chief/internal/transcripts"
	"github.com/rchopra/chief/internal/types"
)

// Processor wires the transcript source to the task store.
type Processor struct {
	Store             notion.Client
	TasksDataSourceID string
	Source            transcripts.Source

	// SelfNames mark an action item as self-assigned. Matching is
	// substring-based so "Rajiv (follow up)" still counts.
	SelfNames []string

	// Now is overridable in tests.
	Now func() time.Time
}

// CreatedTask pairs a created task with the action item it came from.
type CreatedTask struct {
	Task       types.Task       `json:"task"`
	ActionItem types.ActionItem `json:"action_item"`
}

// Buckets holds items parked for review.
type Buckets struct {
	ObviousDuplicates   []types.ActionItem `json:"obvious_duplicates"`
	PotentialDuplicates []types.ActionItem `json:"potential_duplicates"`
	Others              []types.ActionItem `json:"others"`
}

// Summary counts the outcome of one processing run.
type Summary struct {
	TotalActionItems    int `json:"total_action_items"`
	AutoCreated         int `json:"auto_created"`
	NeedsReview         int `json:"needs_review"`
	ObviousDuplicates   int `json:"obvious_duplicates"`
	PotentialDuplicates int `json:"potential_duplicates"`
	Others              int `json:"others"`
}

// DateRange is the processed window, calendar dates inclusive.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Report is the full result of Process.
type Report struct {
	Summary     Summary       `json:"summary"`
	DateRange   DateRange     `json:"date_range"`
	AutoCreated []CreatedTask `json:"auto_created_tasks"`
	Review      Buckets       `json:"review_items"`
}

// IsSelf reports whether the action item's person refers to the
// configured owner.
func (p *Processor) IsSelf(person string) bool {
	person = strings.ToLower(strings.TrimSpace(person))
	if person == "" {
		return false
	}
	for _, name := range p.SelfNames {
		if strings.Contains(person, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// selfExact reports an exact self-name match, the stricter test used
// for task naming and the waiting field.
func (p *Processor) selfExact(person string) bool {
	person = strings.ToLower(strings.TrimSpace(person))
	for _, name := range p.SelfNames {
		if person == strings.ToLower(name) {
			return true
		}
	}
	return false
}

// Process collects action items from meetings dated on or after since,
// checks each against the open task population, auto-creates the clean
// self-assigned ones, and buckets the rest for review. A creation
// failure demotes the item to the others bucket instead of failing the
// run.
func (p *Processor) Process(ctx context.Context, since time.Time) (*Report, error) {
	summaries, err := p.Source.Recent(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("fetch transcripts: %w", err)
	}

	var items []types.ActionItem
	for _, sum := range summaries {
		items = append(items, sum.ActionItems...)
	}
	debug.Logf("reconcile: %d action items from %d meetings", len(items), len(summaries))

	// One snapshot of the open tasks backs every duplicate check in the
	// run, so all items are judged against the same population.
	notDone := notion.StatusNot("Done")
	pages, err := p.Store.QueryAll(ctx, p.TasksDataSourceID, &notDone, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch open tasks: %w", err)
	}
	tasks := make([]types.Task, 0, len(pages))
	for _, page := range pages {
		tasks = append(tasks, notion.ExtractTask(page))
	}

	report := &Report{
		DateRange: DateRange{
			From: types.DateOf(since).Format("2006-01-02"),
			To:   types.DateOf(p.now()).Format("2006-01-02"),
		},
	}
	for _, item := range items {
		matches := dedupe.Categorize(item.Action, tasks)
		item.ObviousDuplicates = matches.Obvious
		item.PotentialDuplicates = matches.Potential

		self := p.IsSelf(item.Person)
		switch {
		case self:
			item.SuggestedTaskName = item.Action
		case item.Person != "":
			item.SuggestedWaitingTask = fmt.Sprintf("Follow up with %s on: %s", item.Person, item.Action)
		default:
			item.SuggestedTaskName = item.Action
		}

		switch {
		case self && len(matches.Obvious) == 0 && len(matches.Potential) == 0:
			task, err := p.createTask(ctx, item, types.StatusInbox, "")
			if err != nil {
				debug.Logf("reconcile: auto-create failed: %v", err)
				item.CreationError = err.Error()
				report.Review.Others = append(report.Review.Others, item)
				continue
			}
			report.AutoCreated = append(report.AutoCreated, CreatedTask{Task: task, ActionItem: item})
		case self && len(matches.Obvious) > 0:
			report.Review.ObviousDuplicates = append(report.Review.ObviousDuplicates, item)
		case self && len(matches.Potential) > 0:
			report.Review.PotentialDuplicates = append(report.Review.PotentialDuplicates, item)
		default:
			report.Review.Others = append(report.Review.Others, item)
		}
	}

	report.Summary = Summary{
		TotalActionItems:    len(items),
		AutoCreated:         len(report.AutoCreated),
		ObviousDuplicates:   len(report.Review.ObviousDuplicates),
		PotentialDuplicates: len(report.Review.PotentialDuplicates),
		Others:              len(report.Review.Others),
	}
	report.Summary.NeedsReview = report.Summary.ObviousDuplicates +
		report.Summary.PotentialDuplicates + report.Summary.Others
	return report, nil
}

// ApprovalResult is the outcome of one approved review item. Error is
// set instead of Task when creation failed.
type ApprovalResult struct {
	Task       *types.Task      `json:"task,omitempty"`
	Error      string           `json:"error,omitempty"`
	ActionItem types.ActionItem `json:"action_item"`
}

// Approve creates tasks for the review items at the approved indices.
// Out-of-range indices are skipped; per-item failures are recorded, not
// fatal.
func (p *Processor) Approve(ctx context.Context, items []types.ActionItem, indices []int, projectID string, status types.Status) []ApprovalResult {
	if status == "" {
		status = types.StatusInbox
	}
	var results []ApprovalResult
	for _, idx := range indices {
		if idx < 0 || idx >= len(items) {
			continue
		}
		item := items[idx]
		task, err := p.createTask(ctx, item, status, projectID)
		if err != nil {
			results = append(results, ApprovalResult{Error: err.Error(), ActionItem: item})
			continue
		}
		results = append(results, ApprovalResult{Task: &task, ActionItem: item})
	}
	return results
}

// createTask writes one task page for an action item. Items assigned to
// someone else become follow-up tasks with the person on the waiting
// field; "team" and "unassigned" never go on waiting.
func (p *Processor) createTask(ctx context.Context, item types.ActionItem, status types.Status, projectID string) (types.Task, error) {
	name := item.Action
	person := strings.ToLower(strings.TrimSpace(item.Person))
	if person != "" && !p.selfExact(person) {
		name = fmt.Sprintf("Follow up with %s on: %s", item.Person, item.Action)
	}

	var due *time.Time
	if item.DueDateText != "" {
		if t, ok := timeparsing.ParseDueDate(item.DueDateText, p.now()); ok {
			due = &t
		}
	}

	var waiting []string
	if person != "" && !p.selfExact(person) && person != "team" && person != "unassigned" {
		waiting = []string{item.Person}
	}

	props, err := notion.TaskProperties{
		Title:     name,
		Status:    status,
		DueDate:   due,
		ProjectID: projectID,
		Waiting:   waiting,
	}.JSON()
	if err != nil {
		return types.Task{}, fmt.Errorf("build task properties: %w", err)
	}
	page, err := p.Store.CreatePage(ctx, p.TasksDataSourceID, props)
	if err != nil {
		return types.Task{}, fmt.Errorf("create task: %w", err)
	}
	return notion.ExtractTask(page), nil
}

func (p *Processor) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
