package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MemoryStore is an in-memory Client used by tests and dry runs. It
// evaluates the same filter trees the HTTP client sends over the wire.
type MemoryStore struct {
	mu     sync.Mutex
	pages  map[string][]Page
	nextID int

	// Now stamps created and edited times; overridable in tests.
	Now func() time.Time
}

var _ Client = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pages: make(map[string][]Page),
		Now:   time.Now,
	}
}

// Seed adds pages to a data source, assigning ids to any page without one.
func (s *MemoryStore) Seed(dataSourceID string, pages ...Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range pages {
		if p.ID == "" {
			s.nextID++
			p.ID = fmt.Sprintf("mem-%d", s.nextID)
		}
		s.pages[dataSourceID] = append(s.pages[dataSourceID], p)
	}
}

// QueryAll returns pages matching the filter, in seed order unless sorted.
func (s *MemoryStore) QueryAll(_ context.Context, dataSourceID string, filter *Filter, sorts []Sort) ([]Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Page
	for _, p := range s.pages[dataSourceID] {
		if filter == nil || matches(*filter, p) {
			out = append(out, p)
		}
	}
	for i := len(sorts) - 1; i >= 0; i-- {
		srt := sorts[i]
		sort.SliceStable(out, func(a, b int) bool {
			va, vb := sortKey(out[a], srt), sortKey(out[b], srt)
			if srt.Direction == "descending" {
				return va > vb
			}
			return va < vb
		})
	}
	return out, nil
}

// CreatePage adds a page with a generated id and current timestamps.
func (s *MemoryStore) CreatePage(_ context.Context, dataSourceID string, properties json.RawMessage) (Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !gjson.ValidBytes(properties) {
		return Page{}, fmt.Errorf("invalid properties payload")
	}
	s.nextID++
	now := s.Now().UTC().Format(time.RFC3339)
	p := Page{
		ID:             fmt.Sprintf("mem-%d", s.nextID),
		URL:            fmt.Sprintf("https://notion.example/mem-%d", s.nextID),
		CreatedTime:    now,
		LastEditedTime: now,
		Properties:     append(json.RawMessage(nil), properties...),
	}
	s.pages[dataSourceID] = append(s.pages[dataSourceID], p)
	return p, nil
}

// UpdatePage merges the payload's top-level properties onto the page.
func (s *MemoryStore) UpdatePage(_ context.Context, pageID string, properties json.RawMessage) (Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for dsID, pages := range s.pages {
		for i, p := range pages {
			if p.ID != pageID {
				continue
			}
			merged := p.Properties
			if len(merged) == 0 {
				merged = json.RawMessage("{}")
			}
			var err error
			gjson.ParseBytes(properties).ForEach(func(key, value gjson.Result) bool {
				merged, err = sjson.SetRawBytes(merged, key.String(), []byte(value.Raw))
				return err == nil
			})
			if err != nil {
				return Page{}, fmt.Errorf("merge properties: %w", err)
			}
			p.Properties = merged
			p.LastEditedTime = s.Now().UTC().Format(time.RFC3339)
			s.pages[dsID][i] = p
			return p, nil
		}
	}
	return Page{}, fmt.Errorf("page %s not found", pageID)
}

// matches evaluates a filter tree against a page.
func matches(f Filter, p Page) bool {
	switch {
	case len(f.And) > 0:
		for _, sub := range f.And {
			if !matches(sub, p) {
				return false
			}
		}
		return true
	case len(f.Or) > 0:
		for _, sub := range f.Or {
			if matches(sub, p) {
				return true
			}
		}
		return false
	case f.Cond != nil:
		return matchCond(*f.Cond, p)
	}
	return true
}

func matchCond(c Condition, p Page) bool {
	props := []byte(p.Properties)
	switch c.Kind {
	case "status":
		name := gjson.GetBytes(props, c.Property+".status.name").String()
		return compareString(c.Op, name, c.Value)
	case "select":
		name := gjson.GetBytes(props, c.Property+".select.name").String()
		return compareString(c.Op, name, c.Value)
	case "date":
		start := gjson.GetBytes(props, c.Property+".date.start").String()
		switch c.Op {
		case "is_not_empty":
			return start != ""
		case "before":
			return start != "" && datePart(start) < fmt.Sprint(c.Value)
		case "on_or_after":
			return start != "" && datePart(start) >= fmt.Sprint(c.Value)
		case "on_or_before":
			return start != "" && datePart(start) <= fmt.Sprint(c.Value)
		}
		return false
	case "title":
		title := pageTitle(props, c.Property)
		switch c.Op {
		case "contains":
			return strings.Contains(title, fmt.Sprint(c.Value))
		case "is_not_empty":
			return title != ""
		}
		return false
	case "rich_text":
		text := richText(props, c.Property)
		switch c.Op {
		case "contains":
			return strings.Contains(text, fmt.Sprint(c.Value))
		case "is_not_empty":
			return text != ""
		}
		return false
	case "relation":
		for _, id := range relationIDs(props, c.Property+".relation") {
			if id == fmt.Sprint(c.Value) {
				return true
			}
		}
		return false
	case "multi_select":
		for _, name := range optionNames(props, c.Property+".multi_select") {
			if name == fmt.Sprint(c.Value) {
				return true
			}
		}
		return false
	case "checkbox":
		v, _ := c.Value.(bool)
		return gjson.GetBytes(props, c.Property+".checkbox").Bool() == v
	}
	return false
}

func compareString(op, got string, want interface{}) bool {
	switch op {
	case "equals":
		return got == fmt.Sprint(want)
	case "does_not_equal":
		return got != fmt.Sprint(want)
	}
	return false
}

func datePart(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// sortKey extracts a comparable string for a Sort. Date properties
// and page timestamps compare correctly as ISO strings; title properties
// compare lexically.
func sortKey(p Page, s Sort) string {
	if s.Timestamp != "" {
		switch s.Timestamp {
		case "created_time":
			return p.CreatedTime
		case "last_edited_time":
			return p.LastEditedTime
		}
		return ""
	}
	props := []byte(p.Properties)
	if start := gjson.GetBytes(props, s.Property+".date.start").String(); start != "" {
		return start
	}
	if title := pageTitle(props, s.Property); title != "" {
		return title
	}
	return gjson.GetBytes(props, s.Property+".status.name").String()
}
