package notion

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/sjson"

	"github.com/rchopra/chief/internal/types"
)

// TaskProperties builds the properties payload for creating or updating
// a task page. Zero-valued fields are omitted from the payload, so a
// partial update only touches the properties it names.
type TaskProperties struct {
	Title     string
	Status    types.Status
	DueDate   *time.Time
	Completed *time.Time
	ProjectID string
	Waiting   []string
}

// JSON renders the payload in the Notion properties wire shape.
func (p TaskProperties) JSON() (json.RawMessage, error) {
	out := "{}"
	var err error
	if p.Title != "" {
		// Both forms are written so the payload round-trips through
		// extraction: the API reads text.content, readers use plain_text.
		if out, err = sjson.Set(out, "Task.title.0.text.content", p.Title); err != nil {
			return nil, fmt.Errorf("set title: %w", err)
		}
		if out, err = sjson.Set(out, "Task.title.0.plain_text", p.Title); err != nil {
			return nil, fmt.Errorf("set title: %w", err)
		}
	}
	if p.Status != "" {
		if !p.Status.IsValid() {
			return nil, fmt.Errorf("invalid status: %s", p.Status)
		}
		if out, err = sjson.Set(out, "Status.status.name", string(p.Status)); err != nil {
			return nil, fmt.Errorf("set status: %w", err)
		}
	}
	if p.DueDate != nil {
		if out, err = sjson.Set(out, "Due.date.start", p.DueDate.Format("2006-01-02")); err != nil {
			return nil, fmt.Errorf("set due date: %w", err)
		}
	}
	if p.Completed != nil {
		if out, err = sjson.Set(out, "Completed.date.start", p.Completed.Format("2006-01-02")); err != nil {
			return nil, fmt.Errorf("set completed date: %w", err)
		}
	}
	if p.ProjectID != "" {
		if out, err = sjson.Set(out, "Project.relation.0.id", p.ProjectID); err != nil {
			return nil, fmt.Errorf("set project: %w", err)
		}
	}
	for i, w := range p.Waiting {
		if out, err = sjson.Set(out, fmt.Sprintf("Waiting.multi_select.%d.name", i), w); err != nil {
			return nil, fmt.Errorf("set waiting: %w", err)
		}
	}
	return json.RawMessage(out), nil
}
