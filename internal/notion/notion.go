// Package notion provides a typed client for the Notion data-source API:
// query with filter trees and pagination, page creation and update, and
// extraction of domain records from raw page property JSON.
package notion

import (
	"context"
	"encoding/json"
)

// Page is a raw Notion page. Properties stays unparsed; extraction into
// domain records happens in one place, via ExtractTask and ExtractProject.
type Page struct {
	ID             string          `json:"id"`
	URL            string          `json:"url"`
	CreatedTime    string          `json:"created_time"`
	LastEditedTime string          `json:"last_edited_time"`
	Properties     json.RawMessage `json:"properties"`
}

// Client is the store surface the rest of the program depends on.
// HTTPClient talks to the real API; MemoryStore backs tests.
type Client interface {
	// QueryAll returns every page matching the filter, following
	// pagination to the end. A nil filter matches all pages.
	QueryAll(ctx context.Context, dataSourceID string, filter *Filter, sorts []Sort) ([]Page, error)

	// CreatePage creates a page in the data source with the given
	// properties payload and returns the created page.
	CreatePage(ctx context.Context, dataSourceID string, properties json.RawMessage) (Page, error)

	// UpdatePage patches the given properties onto an existing page.
	// Properties not named in the payload are left untouched.
	UpdatePage(ctx context.Context, pageID string, properties json.RawMessage) (Page, error)
}
