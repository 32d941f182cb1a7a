package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rchopra/chief/internal/debug"
)

const notionVersion = "2025-09-03"

// HTTPClient talks to the Notion REST API. Rate-limited and transient
// server errors are retried with exponential backoff; other API errors
// surface immediately.
type HTTPClient struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the given API base URL and token.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

type queryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// QueryAll queries a data source and follows pagination to the end.
func (c *HTTPClient) QueryAll(ctx context.Context, dataSourceID string, filter *Filter, sorts []Sort) ([]Page, error) {
	dataSourceID = strings.TrimPrefix(dataSourceID, "collection://")
	apiURL := fmt.Sprintf("%s/v1/data_sources/%s/query", c.BaseURL, dataSourceID)

	var all []Page
	cursor := ""
	for {
		req := map[string]interface{}{}
		if filter != nil {
			req["filter"] = filter
		}
		if len(sorts) > 0 {
			req["sorts"] = sorts
		}
		if cursor != "" {
			req["start_cursor"] = cursor
		}
		data, err := json.Marshal(req)
		if err != nil {
			return nil, fmt.Errorf("marshal query: %w", err)
		}

		body, err := c.doRequest(ctx, http.MethodPost, apiURL, data)
		if err != nil {
			return nil, fmt.Errorf("query data source %s: %w", dataSourceID, err)
		}

		var resp queryResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("parse query response: %w", err)
		}
		all = append(all, resp.Results...)

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}
	debug.Logf("notion: query %s returned %d pages", dataSourceID, len(all))
	return all, nil
}

// CreatePage creates a page parented to the given data source.
func (c *HTTPClient) CreatePage(ctx context.Context, dataSourceID string, properties json.RawMessage) (Page, error) {
	dataSourceID = strings.TrimPrefix(dataSourceID, "collection://")
	payload := map[string]interface{}{
		"parent": map[string]interface{}{
			"type":           "data_source_id",
			"data_source_id": dataSourceID,
		},
		"properties": properties,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Page{}, fmt.Errorf("marshal create request: %w", err)
	}

	body, err := c.doRequest(ctx, http.MethodPost, c.BaseURL+"/v1/pages", data)
	if err != nil {
		return Page{}, fmt.Errorf("create page: %w", err)
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return Page{}, fmt.Errorf("parse create response: %w", err)
	}
	return page, nil
}

// UpdatePage patches properties onto an existing page.
func (c *HTTPClient) UpdatePage(ctx context.Context, pageID string, properties json.RawMessage) (Page, error) {
	payload := map[string]interface{}{"properties": properties}
	data, err := json.Marshal(payload)
	if err != nil {
		return Page{}, fmt.Errorf("marshal update request: %w", err)
	}

	body, err := c.doRequest(ctx, http.MethodPatch, c.BaseURL+"/v1/pages/"+pageID, data)
	if err != nil {
		return Page{}, fmt.Errorf("update page %s: %w", pageID, err)
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return Page{}, fmt.Errorf("parse update response: %w", err)
	}
	return page, nil
}

// doRequest performs one API call with retries. 429 and 5xx responses
// are retried; other non-2xx responses fail permanently.
func (c *HTTPClient) doRequest(ctx context.Context, method, apiURL string, reqBody []byte) ([]byte, error) {
	var respBody []byte

	operation := func() error {
		var reader io.Reader
		if reqBody != nil {
			reader = bytes.NewReader(reqBody)
		}
		req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+c.Token)
		req.Header.Set("Notion-Version", notionVersion)
		if reqBody != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.HTTP.Do(req)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, apiURL, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			respBody = body
			return nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			debug.Logf("notion: %s %s returned %d, retrying", method, apiURL, resp.StatusCode)
			return fmt.Errorf("API returned %d: %s", resp.StatusCode, truncate(body, 200))
		default:
			return backoff.Permanent(fmt.Errorf("API returned %d: %s", resp.StatusCode, truncate(body, 200)))
		}
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return respBody, nil
}

func truncate(b []byte, n int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
