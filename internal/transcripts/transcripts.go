// Package transcripts reads meeting summaries out of the transcript
// store and extracts their action items.
package transcripts

import (
	"context"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/rchopra/chief/internal/actionitem"
	"github.com/rchopra/chief/internal/notion"
	"github.com/rchopra/chief/internal/types"
)

// Summary is one meeting record with its extracted action items. The
// action items carry the meeting name and date so they stay traceable
// after they leave the transcript.
type Summary struct {
	PageID      string             `json:"page_id"`
	Name        string             `json:"name"`
	Date        *time.Time         `json:"date,omitempty"`
	Attendees   string             `json:"attendees,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	URL         string             `json:"url,omitempty"`
	ActionItems []types.ActionItem `json:"action_items,omitempty"`
}

// Query selects transcripts. Zero fields are ignored.
type Query struct {
	// Keywords matches against the meeting name or the notes body.
	Keywords string
	// Attendee matches against the attendees field.
	Attendee string
	// MeetingName matches against the meeting name only.
	MeetingName string
	// Since keeps meetings dated on or after this day.
	Since *time.Time
	// Before keeps meetings dated strictly before this day.
	Before *time.Time
	// Limit caps the result count. Zero means 20; the ceiling is 100.
	Limit int
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Source yields recent meeting summaries. The reconcile flow depends on
// this rather than on the store so tests can feed canned meetings.
type Source interface {
	Recent(ctx context.Context, since time.Time) ([]Summary, error)
}

// NotionSource reads summaries from a transcript data source.
type NotionSource struct {
	Store        notion.Client
	DataSourceID string
}

var _ Source = (*NotionSource)(nil)

// Recent returns meetings dated on or after since, newest first.
func (s *NotionSource) Recent(ctx context.Context, since time.Time) ([]Summary, error) {
	return s.Search(ctx, Query{Since: &since, Limit: 50})
}

// Search returns meetings matching the query, newest first.
func (s *NotionSource) Search(ctx context.Context, q Query) ([]Summary, error) {
	var filters []notion.Filter
	if q.Keywords != "" {
		filters = append(filters, notion.Or(
			notion.TitleContains("Name", q.Keywords),
			notion.RichTextContains("Notes", q.Keywords),
		))
	}
	if q.Attendee != "" {
		filters = append(filters, notion.RichTextContains("Attendees", q.Attendee))
	}
	if q.Since != nil {
		filters = append(filters, notion.DateOnOrAfter("Date", q.Since.Format("2006-01-02")))
	}
	if q.Before != nil {
		filters = append(filters, notion.DateBefore("Date", q.Before.Format("2006-01-02")))
	}
	if q.MeetingName != "" {
		filters = append(filters, notion.TitleContains("Name", q.MeetingName))
	}

	var filter *notion.Filter
	switch len(filters) {
	case 0:
	case 1:
		filter = &filters[0]
	default:
		and := notion.And(filters...)
		filter = &and
	}

	pages, err := s.Store.QueryAll(ctx, s.DataSourceID, filter, []notion.Sort{notion.Descending("Date")})
	if err != nil {
		return nil, fmt.Errorf("query transcripts: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if len(pages) > limit {
		pages = pages[:limit]
	}

	summaries := make([]Summary, 0, len(pages))
	for _, p := range pages {
		summaries = append(summaries, extractSummary(p))
	}
	return summaries, nil
}

// extractSummary pulls the fields a review needs out of a transcript
// page and parses action items from the notes body. Missing properties
// yield zero values.
func extractSummary(p notion.Page) Summary {
	props := []byte(p.Properties)

	sum := Summary{
		PageID:    p.ID,
		Name:      plainText(props, "Name.title"),
		Attendees: plainText(props, "Attendees.rich_text"),
		Notes:     plainText(props, "Notes.rich_text"),
		URL:       gjson.GetBytes(props, "URL.url").String(),
	}
	if raw := gjson.GetBytes(props, "Date.date.start").String(); len(raw) >= 10 {
		if t, err := time.Parse("2006-01-02", raw[:10]); err == nil {
			sum.Date = &t
		}
	}

	items := actionitem.Parse(sum.Notes)
	for i := range items {
		items[i].Meeting = sum.Name
		items[i].MeetingDate = sum.Date
	}
	sum.ActionItems = items
	return sum
}

// plainText concatenates the plain-text runs of a title or rich_text
// property value.
func plainText(props []byte, path string) string {
	var text string
	gjson.GetBytes(props, path).ForEach(func(_, run gjson.Result) bool {
		text += run.Get("plain_text").String()
		return true
	})
	return text
}
