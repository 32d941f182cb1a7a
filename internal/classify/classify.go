// Package classify labels free-text inbox captures as TASK, RESOURCE,
// INSIGHT, or MULTIPLE.
//
// The classifier is a fixed keyword heuristic, not a model. The signal sets,
// decision order, and confidence constants are a contract: downstream capture
// flows and their tests assert on exact categories and exact confidences.
package classify

import (
	"regexp"
	"strings"
)

// Category is the classification label for a piece of captured text.
type Category string

// Classification categories. INSIGHT is the idea/observation bucket.
const (
	CategoryTask     Category = "TASK"
	CategoryResource Category = "RESOURCE"
	CategoryInsight  Category = "INSIGHT"
	CategoryMultiple Category = "MULTIPLE"
)

// Result describes how a piece of input text was classified.
type Result struct {
	Classification Category `json:"classification"`
	Confidence     float64  `json:"confidence"`
	URLs           []string `json:"urls"`
	HasTask        bool     `json:"has_task,omitempty"`
	HasResource    bool     `json:"has_resource,omitempty"`
}

var urlRe = regexp.MustCompile(`https?://\S+`)

// Signal phrase sets. Matching is case-insensitive substring containment.
var (
	taskKeywords     = []string{"add task", "remind me", "schedule", "todo", "to do", "task to", "need to"}
	actionVerbs      = []string{"email", "send", "review", "schedule", "meet", "call"}
	resourceKeywords = []string{"save this", "check out", "read this", "watch this", "found this"}
	insightKeywords  = []string{"customer said", "just realized", "idea:", "observation", "pattern", "screenshot"}
)

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// Classify labels the input text. First matching rule wins:
//
//	URL+task signal (or "remind me to"+URL)  -> MULTIPLE  0.85
//	URL or resource signal                   -> RESOURCE  0.90 (URL) / 0.70
//	task signal or action verb               -> TASK      0.85 (signal) / 0.70
//	insight signal                           -> INSIGHT   0.80
//	anything else                            -> INSIGHT   0.60
func Classify(input string) Result {
	lower := strings.ToLower(input)

	urls := urlRe.FindAllString(input, -1)
	hasURL := len(urls) > 0

	hasTaskSignal := containsAny(lower, taskKeywords)
	hasActionVerb := containsAny(lower, actionVerbs)
	hasResourceSignal := containsAny(lower, resourceKeywords)
	hasInsightSignal := containsAny(lower, insightKeywords)

	hasMultiple := (hasURL && hasTaskSignal) || (strings.Contains(lower, "remind me to") && hasURL)

	switch {
	case hasMultiple:
		return Result{
			Classification: CategoryMultiple,
			Confidence:     0.85,
			URLs:           urls,
			HasTask:        true,
			HasResource:    true,
		}
	case hasURL || hasResourceSignal:
		confidence := 0.70
		if hasURL {
			confidence = 0.90
		}
		return Result{Classification: CategoryResource, Confidence: confidence, URLs: urls}
	case hasTaskSignal || hasActionVerb:
		confidence := 0.70
		if hasTaskSignal {
			confidence = 0.85
		}
		return Result{Classification: CategoryTask, Confidence: confidence, URLs: []string{}}
	case hasInsightSignal:
		return Result{Classification: CategoryInsight, Confidence: 0.80, URLs: []string{}}
	default:
		// Observations with no signals land in the insight bucket.
		return Result{Classification: CategoryInsight, Confidence: 0.60, URLs: []string{}}
	}
}
