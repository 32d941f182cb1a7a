// Package actionitem extracts structured action items from meeting notes.
//
// The only text contract: notes may contain one "### Next Steps" (or
// "### Action Items") section whose bullets are action items, optionally
// prefixed with a responsible person ("Rajiv: send the report").
package actionitem

import (
	"regexp"
	"strings"

	"github.com/rchopra/chief/internal/types"
)

// sectionRe isolates the Next Steps / Action Items section: everything after
// the heading up to the next "###" heading or end of text.
var sectionRe = regexp.MustCompile(`(?is)###\s*(?:Next Steps|Action Items)[ \t]*\n(.*?)(?:\n###|\z)`)

// Person prefixes: "Person: action" or "Person - action", where Person is one
// or two words, optionally several people joined by "and". Multiple people
// sharing one action stay a single combined person string; downstream
// assignment logic expects that shape.
var (
	personColonRe = regexp.MustCompile(`(?i)^([A-Za-z][A-Za-z]+(?:\s+[A-Za-z][A-Za-z]+)?(?:\s+and\s+[A-Za-z][A-Za-z]+(?:\s+[A-Za-z][A-Za-z]+)?)*):\s*(.+)$`)
	personDashRe  = regexp.MustCompile(`(?i)^([A-Za-z][A-Za-z]+(?:\s+[A-Za-z][A-Za-z]+)?(?:\s+and\s+[A-Za-z][A-Za-z]+(?:\s+[A-Za-z][A-Za-z]+)?)*)\s+-\s+(.+)$`)
)

// Due-date phrases, most specific first. The first matching pattern wins,
// except that "today"/"yesterday" are never treated as weekday-like tokens.
var dueDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)by\s+(\w+day\s+\d+/\d+)`), // "by Friday 1/15"
	regexp.MustCompile(`(?i)by\s+(\w+day)`),           // "by Friday"
	regexp.MustCompile(`(?i)next\s+(\w+day)`),         // "next Monday"
	regexp.MustCompile(`(?i)(\w+day)\s+\d+/\d+`),      // "Monday 1/15"
	regexp.MustCompile(`(\d+/\d+/\d+)`),               // "1/15/2026"
	regexp.MustCompile(`(\d+/\d+)`),                   // "1/15"
	regexp.MustCompile(`(?i)(\w+day)`),                // bare "Friday"
}

// Parse extracts action items from meeting notes. It is a pure function:
// the same notes text always yields the same items, and notes without a
// recognizable section yield an empty list.
func Parse(notes string) []types.ActionItem {
	if notes == "" {
		return nil
	}
	section := findSection(notes)
	if section == "" {
		return nil
	}

	var items []types.ActionItem
	for _, bullet := range extractBullets(section) {
		if strings.TrimSpace(bullet) == "" {
			continue
		}
		items = append(items, parseBullet(bullet))
	}
	return items
}

func findSection(notes string) string {
	m := sectionRe.FindStringSubmatch(notes)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// extractBullets collects "- " and "* " lines, marker stripped. Indented
// child bullets trim down to the same markers and are collected flat.
func extractBullets(section string) []string {
	var bullets []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			bullets = append(bullets, strings.TrimSpace(line[2:]))
		}
	}
	return bullets
}

func parseBullet(bullet string) types.ActionItem {
	item := types.ActionItem{
		Action:  bullet,
		RawText: bullet,
	}

	for _, re := range []*regexp.Regexp{personColonRe, personDashRe} {
		if m := re.FindStringSubmatch(bullet); m != nil {
			item.Person = m[1]
			item.Action = m[2]
			break
		}
	}

	if text, ok := findDueDateText(item.Action); ok {
		item.HasDueDate = true
		item.DueDateText = text
	}
	return item
}

func findDueDateText(action string) (string, bool) {
	for _, re := range dueDatePatterns {
		m := re.FindStringSubmatch(action)
		if m == nil {
			continue
		}
		text := m[1]
		// \w+day also matches "today" and "yesterday"; those are not due
		// dates, so fall through to the next pattern.
		switch strings.ToLower(text) {
		case "today", "yesterday":
			continue
		}
		return text, true
	}
	return "", false
}
