package dedupe

import (
	"strings"

	"github.com/rchopra/chief/internal/types"
)

// Matches holds the duplicate candidates for one action item, split by
// confidence. A given task appears in at most one of the two lists.
type Matches struct {
	Obvious   []types.Task
	Potential []types.Task
}

// Categorize compares an action item's text against a snapshot of
// existing tasks. A task is an obvious duplicate when at least two of
// the action's top three keywords appear in its title and the title's
// similarity to the action text exceeds 0.8. A task matching at least
// one keyword is a potential duplicate.
func Categorize(actionText string, tasks []types.Task) Matches {
	var m Matches
	if actionText == "" {
		return m
	}
	keywords := ExtractKeywords(actionText)
	if len(keywords) == 0 {
		return m
	}
	top := keywords
	if len(top) > 3 {
		top = top[:3]
	}

	actionLower := strings.ToLower(actionText)
	seen := make(map[string]struct{})
	for _, task := range tasks {
		if task.ID == "" {
			continue
		}
		if _, dup := seen[task.ID]; dup {
			continue
		}
		title := strings.ToLower(task.Title)
		if title == "" {
			continue
		}

		matching := 0
		for _, kw := range top {
			if strings.Contains(title, kw) {
				matching++
			}
		}

		switch {
		case matching >= 2 && Similarity(actionLower, title) > 0.8:
			m.Obvious = append(m.Obvious, task)
			seen[task.ID] = struct{}{}
		case matching >= 1:
			m.Potential = append(m.Potential, task)
			seen[task.ID] = struct{}{}
		}
	}
	return m
}
