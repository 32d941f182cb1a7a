package notion

import (
	"time"

	"github.com/tidwall/gjson"

	"github.com/rchopra/chief/internal/types"
)

// ExtractTask reads a task record out of a raw task page. Missing or
// malformed properties yield zero values, never errors: page shape varies
// with the store schema and extraction must stay total.
func ExtractTask(p Page) types.Task {
	props := []byte(p.Properties)
	return types.Task{
		ID:             p.ID,
		URL:            p.URL,
		Title:          pageTitle(props, "Task", "Name"),
		Status:         types.Status(gjson.GetBytes(props, "Status.status.name").String()),
		DueDate:        dateField(props, "Due.date.start"),
		CompletedDate:  dateField(props, "Completed.date.start"),
		ProjectIDs:     relationIDs(props, "Project.relation"),
		Waiting:        optionNames(props, "Waiting.multi_select"),
		CreatedTime:    timestamp(p.CreatedTime),
		LastEditedTime: timestamp(p.LastEditedTime),
	}
}

// ExtractProject reads a project record out of a raw project page.
func ExtractProject(p Page) types.Project {
	props := []byte(p.Properties)
	return types.Project{
		ID:              p.ID,
		URL:             p.URL,
		Title:           pageTitle(props, "Name"),
		Priority:        types.ParsePriority(gjson.GetBytes(props, "Priority.select.name").String()),
		DueDate:         dateField(props, "Due.date.start"),
		CompletedDate:   dateField(props, "Completed.date.start"),
		ThisWeek:        gjson.GetBytes(props, "This Week.checkbox").Bool(),
		TaskIDs:         relationIDs(props, "Tasks.relation"),
		ActionableTasks: formulaNumber(props, "Actionable Tasks.formula.number"),
		WaitingTasks:    formulaNumber(props, "Waiting Tasks.formula.number"),
		CreatedTime:     timestamp(p.CreatedTime),
		LastEditedTime:  timestamp(p.LastEditedTime),
	}
}

// pageTitle concatenates the plain-text runs of the first title property
// found under the given keys.
func pageTitle(props []byte, keys ...string) string {
	for _, key := range keys {
		runs := gjson.GetBytes(props, key+".title")
		if !runs.Exists() {
			continue
		}
		var title string
		runs.ForEach(func(_, run gjson.Result) bool {
			title += run.Get("plain_text").String()
			return true
		})
		if title != "" {
			return title
		}
	}
	return ""
}

// dateField parses a date property value. Notion sends either a plain
// date or a full timestamp; only the calendar date is kept.
func dateField(props []byte, path string) *time.Time {
	raw := gjson.GetBytes(props, path).String()
	if len(raw) < 10 {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw[:10])
	if err != nil {
		return nil
	}
	return &t
}

// richText concatenates the plain-text runs of a rich_text property.
func richText(props []byte, key string) string {
	var text string
	gjson.GetBytes(props, key+".rich_text").ForEach(func(_, run gjson.Result) bool {
		text += run.Get("plain_text").String()
		return true
	})
	return text
}

func relationIDs(props []byte, path string) []string {
	var ids []string
	gjson.GetBytes(props, path).ForEach(func(_, rel gjson.Result) bool {
		if id := rel.Get("id").String(); id != "" {
			ids = append(ids, id)
		}
		return true
	})
	return ids
}

func optionNames(props []byte, path string) []string {
	var names []string
	gjson.GetBytes(props, path).ForEach(func(_, opt gjson.Result) bool {
		if name := opt.Get("name").String(); name != "" {
			names = append(names, name)
		}
		return true
	})
	return names
}

func formulaNumber(props []byte, path string) *int {
	res := gjson.GetBytes(props, path)
	if !res.Exists() || res.Type == gjson.Null {
		return nil
	}
	n := int(res.Int())
	return &n
}

func timestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
