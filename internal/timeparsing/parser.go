// Package timeparsing provides layered date parsing for the due-date phrases
// that show up in action items and CLI flags.
//
// Layers, tried in order by ParseDueDate:
//  1. Literal "today"
//  2. Weekday names ("Wednesday", "next Monday")
//  3. Slash dates ("1/15", "1/15/2026")
//  4. Natural language fallback ("tomorrow", "end of month") via olebedev/when
//
// Parse failure is a value, not an error: callers get (zero, false) and carry
// on, per the no-fatal-errors rule for text heuristics.
package timeparsing

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// compactDurationRe matches compact duration syntax: [+-]?(\d+)([hdwmy])
// Examples: 7d, +2w, -1d
var compactDurationRe = regexp.MustCompile(`^([+-]?)(\d+)([hdwmy])$`)

// weekdays in the order the original triage rules check them.
var weekdays = []struct {
	name string
	day  time.Weekday
}{
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
	{"sunday", time.Sunday},
}

// ParseDueDate resolves a due-date phrase from an action item against a
// reference time. It returns the calendar date (midnight in now's location)
// and whether anything parseable was found.
//
// Weekday names resolve to the next occurrence after now; "next <weekday>"
// pushes one week further. Slash dates without a year that have already
// passed roll over to next year.
func ParseDueDate(text string, now time.Time) (time.Time, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return time.Time{}, false
	}

	if strings.Contains(text, "today") {
		return dateOf(now), true
	}

	for _, wd := range weekdays {
		if !strings.Contains(text, wd.name) {
			continue
		}
		daysAhead := int(wd.day-now.Weekday()+7) % 7
		if daysAhead == 0 {
			daysAhead = 7
		}
		if strings.Contains(text, "next") {
			daysAhead += 7
		}
		return dateOf(now.AddDate(0, 0, daysAhead)), true
	}

	if strings.Contains(text, "/") {
		if d, ok := parseSlashDate(text, now); ok {
			return d, true
		}
	}

	if d, err := ParseNaturalLanguage(text, now); err == nil {
		return dateOf(d), true
	}

	return time.Time{}, false
}

// parseSlashDate handles "M/D" and "M/D/YYYY". A two-part date already in the
// past is assumed to mean next year; an explicit year is taken as-is.
func parseSlashDate(text string, now time.Time) (time.Time, bool) {
	parts := strings.Split(text, "/")
	if len(parts) < 2 {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, false
	}
	year := now.Year()
	if len(parts) > 2 {
		year, err = strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return time.Time{}, false
		}
	} else if month < int(now.Month()) || (month == int(now.Month()) && day < now.Day()) {
		year = now.Year() + 1
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
	// time.Date normalizes out-of-range days (2/30 -> 3/2); reject those.
	if int(d.Month()) != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// ParseCompactDuration parses compact duration syntax relative to now.
//
// Units: h=hours, d=days, w=weeks, m=months, y=years. A leading sign is
// optional and defaults to positive: "7d" == "+7d".
func ParseCompactDuration(s string, now time.Time) (time.Time, bool) {
	matches := compactDurationRe.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return time.Time{}, false
	}
	amount, err := strconv.Atoi(matches[2])
	if err != nil {
		return time.Time{}, false
	}
	if matches[1] == "-" {
		amount = -amount
	}
	switch matches[3] {
	case "h":
		return now.Add(time.Duration(amount) * time.Hour), true
	case "d":
		return now.AddDate(0, 0, amount), true
	case "w":
		return now.AddDate(0, 0, amount*7), true
	case "m":
		return now.AddDate(0, amount, 0), true
	case "y":
		return now.AddDate(amount, 0, 0), true
	}
	return time.Time{}, false
}

// IsCompactDuration reports whether s matches compact duration syntax.
func IsCompactDuration(s string) bool {
	return compactDurationRe.MatchString(strings.TrimSpace(s))
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
