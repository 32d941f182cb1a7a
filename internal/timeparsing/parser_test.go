package timeparsing

import (
	"testing"
	"time"
)

// Reference: Wednesday, January 15, 2025.
var ref = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // YYYY-MM-DD, empty means no parse
	}{
		{"today", "today", "2025-01-15"},
		{"bare weekday ahead", "Friday", "2025-01-17"},
		{"bare weekday same day rolls a week", "Wednesday", "2025-01-22"},
		{"bare weekday behind rolls forward", "Monday", "2025-01-20"},
		{"next weekday", "next Monday", "2025-01-27"},
		{"by friday phrasing", "by Friday", "2025-01-17"},
		{"slash date future", "1/20", "2025-01-20"},
		{"slash date past rolls to next year", "1/10", "2026-01-10"},
		{"slash date explicit year stays", "1/10/2025", "2025-01-10"},
		{"slash date invalid month", "13/5", ""},
		{"slash date normalization rejected", "2/30", ""},
		{"natural language tomorrow", "tomorrow", "2025-01-16"},
		{"end of month", "end of month", "2025-01-31"},
		{"garbage", "whenever feels right", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDueDate(tt.input, ref)
			if tt.want == "" {
				if ok {
					t.Fatalf("ParseDueDate(%q) = %v, want no parse", tt.input, got)
				}
				return
			}
			if !ok {
				t.Fatalf("ParseDueDate(%q) found nothing, want %s", tt.input, tt.want)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseDueDate(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestParseCompactDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"7d", ref.AddDate(0, 0, 7), true},
		{"+2w", ref.AddDate(0, 0, 14), true},
		{"-1d", ref.AddDate(0, 0, -1), true},
		{"+6h", ref.Add(6 * time.Hour), true},
		{"3m", ref.AddDate(0, 3, 0), true},
		{"1y", ref.AddDate(1, 0, 0), true},
		{"tomorrow", time.Time{}, false},
		{"d7", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseCompactDuration(tt.input, ref)
		if ok != tt.ok {
			t.Errorf("ParseCompactDuration(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ParseCompactDuration(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsCompactDuration(t *testing.T) {
	for s, want := range map[string]bool{"7d": true, "+2w": true, "next week": false, "7": false} {
		if got := IsCompactDuration(s); got != want {
			t.Errorf("IsCompactDuration(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestParseNaturalLanguage(t *testing.T) {
	tests := []struct {
		input    string
		wantDay  int
		wantMon  time.Month
		wantYear int
	}{
		{"tomorrow", 16, time.January, 2025},
		{"yesterday", 14, time.January, 2025},
		{"next friday", 17, time.January, 2025},
		{"end of month", 31, time.January, 2025},
	}
	for _, tt := range tests {
		got, err := ParseNaturalLanguage(tt.input, ref)
		if err != nil {
			t.Errorf("ParseNaturalLanguage(%q) error: %v", tt.input, err)
			continue
		}
		if got.Year() != tt.wantYear || got.Month() != tt.wantMon || got.Day() != tt.wantDay {
			t.Errorf("ParseNaturalLanguage(%q) = %v, want %d-%02d-%02d",
				tt.input, got, tt.wantYear, tt.wantMon, tt.wantDay)
		}
	}

	if _, err := ParseNaturalLanguage("nothing datelike here", ref); err == nil {
		t.Error("expected error for unrecognized expression")
	}
}
