// Package lno classifies tasks into Leverage, Neutral, and Overhead
// effort tiers from title signals plus project and strategic context.
package lno

import (
	"math"
	"strings"

	"github.com/rchopra/chief/internal/types"
)

// Class is an effort tier. Leverage work deserves perfectionism,
// Neutral work a strictly good job, Overhead work the bare minimum.
type Class string

// Effort tier constants
const (
	Leverage Class = "L"
	Neutral  Class = "N"
	Overhead Class = "O"
)

// Scores holds the raw signal tallies behind a classification.
type Scores struct {
	L int `json:"L"`
	N int `json:"N"`
	O int `json:"O"`
}

// Result is one task's classification with its supporting evidence.
type Result struct {
	Classification Class    `json:"classification"`
	Confidence     float64  `json:"confidence"`
	Reasoning      string   `json:"reasoning"`
	Signals        []string `json:"signals"`
	Scores         Scores   `json:"scores"`
}

// Options carries the optional context that sharpens a classification.
type Options struct {
	// Project the task belongs to, if resolved.
	ProjectName     string
	ProjectPriority types.Priority

	// Strategic vocabulary from the priorities document, and the raw
	// document text for alignment checks.
	StrategicTerms   []string
	StrategicContent string
}

var leverageKeywords = []string{
	"strategy", "strategic", "decision", "decide", "direction",
	"stakeholder", "executive", "leadership", "vision", "roadmap",
	"framework", "system", "process", "architecture", "design",
	"unlock", "enable", "foundation", "critical", "high-stakes",
	"presentation", "pitch", "proposal", "planning", "alignment",
}

// Repeated entries weight their keyword double.
var overheadKeywords = []string{
	"admin", "administrative", "compliance", "submit", "submit",
	"form", "form", "approve", "sign", "acknowledge", "confirm",
	"update", "status update", "check", "verify", "log", "track",
	"report", "reporting", "document", "documentation", "file",
	"organize", "clean", "archive", "backup", "sync",
}

var planningKeywords = []string{"strategy", "decision", "plan", "design", "framework"}

var strategicProjectTerms = []string{"fiona", "digible", "marketing intelligence", "ai disruption"}

// Classify scores a task title against leverage and overhead signal
// lists, folds in project and strategic context, and picks the tier
// with the highest tally. Ties break toward Leverage, then Overhead.
func Classify(title string, opts Options) Result {
	title = strings.ToLower(title)
	var signals []string
	var l, n, o int

	for _, kw := range leverageKeywords {
		if strings.Contains(title, kw) {
			l += 2
			signals = append(signals, "Contains '"+kw+"' (strategic/leverage indicator)")
		}
	}
	for _, kw := range overheadKeywords {
		if strings.Contains(title, kw) {
			o += 2
			signals = append(signals, "Contains '"+kw+"' (administrative/overhead indicator)")
		}
	}

	if len(opts.StrategicTerms) > 0 || opts.StrategicContent != "" {
		content := strings.ToLower(opts.StrategicContent)
		for _, term := range opts.StrategicTerms {
			term = strings.ToLower(term)
			if term == "" {
				continue
			}
			if strings.Contains(title, term) || strings.Contains(content, term) {
				// Alignment alone is not leverage; the task itself must
				// be decision or planning work.
				if containsAny(title, planningKeywords) {
					l += 3
					signals = append(signals, "Strategic priority alignment with decision/planning work")
				}
				break
			}
		}
	}

	if opts.ProjectName != "" || opts.ProjectPriority != "" {
		projectName := strings.ToLower(opts.ProjectName)
		if containsAny(projectName, strategicProjectTerms) {
			if containsAny(title, []string{"strategy", "decision", "plan", "design", "framework", "stakeholder"}) {
				l += 2
				signals = append(signals, "Strategic project with decision/planning work")
			}
		}
		if opts.ProjectPriority == types.PriorityP1 && containsAny(title, planningKeywords) {
			l++
			signals = append(signals, "P1 project with strategic work type")
		}
	}

	if containsAny(title, []string{
		"create strategy", "design system", "make decision",
		"define framework", "set direction", "plan approach",
		"stakeholder meeting", "executive presentation",
	}) {
		l += 3
		signals = append(signals, "Strategic planning/decision work type")
	}

	if containsAny(title, []string{
		"review", "update", "prep", "prepare", "follow up",
		"schedule", "coordinate", "sync",
	}) {
		if containsAny(title, []string{"admin", "status", "compliance", "form"}) {
			o += 2
			signals = append(signals, "Routine administrative work")
		} else {
			n += 2
			signals = append(signals, "Routine execution work")
		}
	}

	if containsAny(title, []string{
		"fill out", "submit form", "approve request",
		"acknowledge", "confirm receipt", "log time",
	}) {
		o += 3
		signals = append(signals, "Administrative/compliance work")
	}

	if strings.Contains(title, "meeting") {
		switch {
		case containsAny(title, []string{"prep", "prepare", "agenda"}):
			if containsAny(title, []string{"stakeholder", "executive", "strategy", "planning"}) {
				l += 2
				signals = append(signals, "Strategic meeting preparation")
			} else {
				n++
				signals = append(signals, "Routine meeting preparation")
			}
		case containsAny(title, []string{"schedule", "book", "coordinate"}):
			o += 2
			signals = append(signals, "Meeting scheduling (administrative)")
		}
	}

	if strings.Contains(title, "document") || strings.Contains(title, "doc") {
		if containsAny(title, []string{"strategy", "framework", "design", "architecture", "system"}) {
			l += 2
			signals = append(signals, "Strategic documentation")
		} else {
			n++
			signals = append(signals, "Routine documentation")
		}
	}

	if l == 0 && n == 0 && o == 0 {
		n++
		signals = append(signals, "No strong indicators - defaulting to Neutral")
	}

	maxScore := maxInt(l, maxInt(n, o))
	var class Class
	var confidence float64
	var reasoning string
	switch {
	case maxScore == l && l > 0:
		class = Leverage
		confidence = math.Min(0.9, 0.5+float64(l-maxInt(n, o))*0.1)
		reasoning = "High leverage work requiring deep focus and quality. Strategic decisions, unique expertise, or work that unlocks other high-value initiatives."
	case maxScore == o && o > 0:
		class = Overhead
		confidence = math.Min(0.9, 0.5+float64(o-maxInt(l, n))*0.1)
		reasoning = "Overhead work - administrative, compliance, or low-value tasks. Minimize time investment, just get it done."
	default:
		class = Neutral
		confidence = math.Min(0.9, 0.5+float64(n-maxInt(l, o))*0.1)
		reasoning = "Neutral work - routine execution that needs to happen. Good enough quality is sufficient, no need to over-invest."
	}

	// Close top-two scores mean the classification is uncertain.
	first, second := topTwo(l, n, o)
	if first-second < 2 {
		confidence = math.Max(0.3, confidence-0.2)
		signals = append(signals, "Close scores - classification uncertain")
	}

	return Result{
		Classification: class,
		Confidence:     math.Round(confidence*100) / 100,
		Reasoning:      reasoning,
		Signals:        signals,
		Scores:         Scores{L: l, N: n, O: o},
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func topTwo(a, b, c int) (int, int) {
	first, second := a, b
	if second > first {
		first, second = second, first
	}
	if c > first {
		first, second = c, first
	} else if c > second {
		second = c
	}
	return first, second
}
