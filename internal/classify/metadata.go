package classify

import (
	"strings"
	"time"
)

// Metadata is the structured context pulled out of captured text alongside
// its classification: a due date, known project and people mentions, URLs.
type Metadata struct {
	DueDate         *time.Time `json:"due_date,omitempty"`
	ProjectMentions []string   `json:"project_mentions"`
	PeopleMentions  []string   `json:"people_mentions"`
	URLs            []string   `json:"urls"`
}

// knownProjects maps lowercase match text to display names.
// Fixed vocabulary: capture works against a known project portfolio, so a
// closed list beats trying to NER free text.
var knownProjects = map[string]string{
	"reporting pod":          "Reporting Pod",
	"agency enablement pod":  "Agency Enablement Pod",
	"ai transformation":      "Ai Transformation",
	"pm hiring":              "Pm Hiring",
	"epd":                    "Epd",
}

var knownProjectOrder = []string{
	"reporting pod", "agency enablement pod", "ai transformation", "pm hiring", "epd",
}

var knownPeople = map[string]string{
	"reid": "Reid", "paolo": "Paolo", "aaron": "Aaron", "megan": "Megan",
	"melissa": "Melissa", "cassidy": "Cassidy", "jd": "Jd", "jason": "Jason",
	"ricardo": "Ricardo", "devik": "Devik", "randa": "Randa", "lauren": "Lauren",
}

var knownPeopleOrder = []string{
	"reid", "paolo", "aaron", "megan", "melissa", "cassidy",
	"jd", "jason", "ricardo", "devik", "randa", "lauren",
}

// ExtractMetadata parses the input for a due date, project mentions, people
// mentions, and URLs. now anchors the relative date phrases. Absent patterns
// leave fields nil/empty; there are no error conditions.
func ExtractMetadata(input string, now time.Time) Metadata {
	md := Metadata{
		ProjectMentions: []string{},
		PeopleMentions:  []string{},
		URLs:            urlRe.FindAllString(input, -1),
	}
	if md.URLs == nil {
		md.URLs = []string{}
	}

	lower := strings.ToLower(input)

	switch {
	case strings.Contains(lower, "next friday"):
		md.DueDate = nextWeekdayDate(now, time.Friday)
	case strings.Contains(lower, "monday"):
		md.DueDate = nextWeekdayDate(now, time.Monday)
	case strings.Contains(lower, "end of month"):
		firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
		last := firstOfNext.AddDate(0, 0, -1)
		md.DueDate = &last
	}

	for _, key := range knownProjectOrder {
		if strings.Contains(lower, key) {
			md.ProjectMentions = append(md.ProjectMentions, knownProjects[key])
		}
	}
	for _, key := range knownPeopleOrder {
		if strings.Contains(lower, key) {
			md.PeopleMentions = append(md.PeopleMentions, knownPeople[key])
		}
	}

	return md
}

// nextWeekdayDate returns the next occurrence of day strictly after today.
func nextWeekdayDate(now time.Time, day time.Weekday) *time.Time {
	ahead := int(day-now.Weekday()+7) % 7
	if ahead == 0 {
		ahead = 7
	}
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, ahead)
	return &d
}
