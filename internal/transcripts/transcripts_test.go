package transcripts

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rchopra/chief/internal/notion"
)

func transcriptPage(id, name, date, notes string) notion.Page {
	props := fmt.Sprintf(`{
		"Name": {"title": [{"plain_text": %q}]},
		"Date": {"date": {"start": %q}},
		"Attendees": {"rich_text": [{"plain_text": "Rajiv, Sarah"}]},
		"Notes": {"rich_text": [{"plain_text": %q}]},
		"URL": {"url": "https://example.com/%s"}
	}`, name, date, notes, id)
	return notion.Page{ID: id, Properties: json.RawMessage(props)}
}

const planningNotes = "Discussed roadmap.\n\n### Next Steps\n- Rajiv: send the deck by Friday\n- Sarah: review budget numbers"

func seededSource(t *testing.T) *NotionSource {
	t.Helper()
	store := notion.NewMemoryStore()
	store.Seed("transcripts",
		transcriptPage("t1", "Planning Sync", "2025-01-10", planningNotes),
		transcriptPage("t2", "Budget Review", "2025-01-05", "No decisions."),
		transcriptPage("t3", "Design Crit", "2025-01-12", "### Action Items\n- Derek to share mockups"),
	)
	return &NotionSource{Store: store, DataSourceID: "transcripts"}
}

func TestRecentFiltersAndSorts(t *testing.T) {
	src := seededSource(t)
	since := time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

	got, err := src.Recent(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first.
	require.Equal(t, "Design Crit", got[0].Name)
	require.Equal(t, "Planning Sync", got[1].Name)
}

func TestRecentEnrichesActionItems(t *testing.T) {
	src := seededSource(t)
	since := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	got, err := src.Recent(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, got, 2)

	planning := got[1]
	require.Equal(t, "Planning Sync", planning.Name)
	require.NotNil(t, planning.Date)
	require.Len(t, planning.ActionItems, 2)

	first := planning.ActionItems[0]
	require.Equal(t, "Rajiv", first.Person)
	require.Equal(t, "send the deck by Friday", first.Action)
	require.True(t, first.HasDueDate)
	require.Equal(t, "Planning Sync", first.Meeting)
	require.NotNil(t, first.MeetingDate)
	require.Equal(t, planning.Date.Format("2006-01-02"), first.MeetingDate.Format("2006-01-02"))
}

func TestSearchByKeywordAndName(t *testing.T) {
	src := seededSource(t)

	// Keyword hits the notes body of the planning sync.
	got, err := src.Search(context.Background(), Query{Keywords: "roadmap"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Planning Sync", got[0].Name)

	// Meeting name match.
	got, err = src.Search(context.Background(), Query{MeetingName: "Budget"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "t2", got[0].PageID)
	require.Empty(t, got[0].ActionItems)
}

func TestSearchLimit(t *testing.T) {
	src := seededSource(t)

	got, err := src.Search(context.Background(), Query{Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Design Crit", got[0].Name)
}

func TestSearchDateWindow(t *testing.T) {
	src := seededSource(t)
	since := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	before := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	got, err := src.Search(context.Background(), Query{Since: &since, Before: &before})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Budget Review", got[0].Name)
}

func TestExtractSummaryMissingProperties(t *testing.T) {
	sum := extractSummary(notion.Page{ID: "bare", Properties: json.RawMessage(`{}`)})
	require.Equal(t, "bare", sum.PageID)
	require.Empty(t, sum.Name)
	require.Nil(t, sum.Date)
	require.Empty(t, sum.ActionItems)
}
