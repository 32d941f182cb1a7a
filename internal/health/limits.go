package health

import (
	"fmt"

	"github.com/rchopra/chief/internal/types"
)

// Priority tier caps
const (
	P1Limit = 1
	P2Limit = 3
	P3Limit = 5
)

// Violation records a priority tier over its cap.
type Violation struct {
	Priority types.Priority  `json:"priority"`
	Count    int             `json:"current_count"`
	Limit    int             `json:"limit"`
	Excess   int             `json:"excess"`
	Severity string          `json:"severity"`
	Message  string          `json:"message"`
	Projects []types.Project `json:"projects"`
}

// Suggestion names the demotion that would clear a violation. The
// suggestion is advisory; nothing moves a project automatically.
type Suggestion struct {
	Priority   types.Priority  `json:"priority"`
	Action     string          `json:"action"`
	Message    string          `json:"message"`
	Candidates []types.Project `json:"candidates"`
}

// LimitReport is the result of a priority-limit check.
type LimitReport struct {
	P1Count int `json:"p1_count"`
	P1Limit int `json:"p1_limit"`
	P2Count int `json:"p2_count"`
	P2Limit int `json:"p2_limit"`
	P3Count int `json:"p3_count"`
	P3Limit int `json:"p3_limit"`

	Violations  []Violation  `json:"violations"`
	Suggestions []Suggestion `json:"suggestions"`

	P1Projects []types.Project `json:"p1_projects"`
	P2Projects []types.Project `json:"p2_projects"`
	P3Projects []types.Project `json:"p3_projects"`
}

// CheckPriorityLimits buckets live projects by tier and reports tiers
// over their caps (P1: 1, P2: 3, P3: 5) with demotion candidates drawn
// from beyond each cap. Completed projects are skipped.
func CheckPriorityLimits(projects []types.Project) LimitReport {
	var p1, p2, p3 []types.Project
	for _, p := range projects {
		if p.CompletedDate != nil || p.Priority == types.PriorityDone {
			continue
		}
		switch p.Priority {
		case types.PriorityP1:
			p1 = append(p1, p)
		case types.PriorityP2:
			p2 = append(p2, p)
		case types.PriorityP3:
			p3 = append(p3, p)
		}
	}

	report := LimitReport{
		P1Count: len(p1), P1Limit: P1Limit,
		P2Count: len(p2), P2Limit: P2Limit,
		P3Count: len(p3), P3Limit: P3Limit,
		P1Projects: p1, P2Projects: p2, P3Projects: p3,
	}

	type tier struct {
		priority   types.Priority
		projects   []types.Project
		limit      int
		severity   string
		action     string
		candidates func([]types.Project) []types.Project
	}
	tiers := []tier{
		{types.PriorityP1, p1, P1Limit, "high", "move_to_p2",
			func(ps []types.Project) []types.Project { return ps[1:] }},
		{types.PriorityP2, p2, P2Limit, "high", "move_to_p3",
			func(ps []types.Project) []types.Project { return ps[P2Limit:] }},
		{types.PriorityP3, p3, P3Limit, "medium", "move_to_monitoring",
			func(ps []types.Project) []types.Project { return ps[P3Limit:] }},
	}

	actionTargets := map[string]string{
		"move_to_p2":         "P2",
		"move_to_p3":         "P3",
		"move_to_monitoring": "Monitoring",
	}
	for _, tr := range tiers {
		count := len(tr.projects)
		if count <= tr.limit {
			continue
		}
		excess := count - tr.limit
		report.Violations = append(report.Violations, Violation{
			Priority: tr.priority,
			Count:    count,
			Limit:    tr.limit,
			Excess:   excess,
			Severity: tr.severity,
			Message:  fmt.Sprintf("%s limit exceeded: %d projects (max %d)", tr.priority, count, tr.limit),
			Projects: tr.projects,
		})
		report.Suggestions = append(report.Suggestions, Suggestion{
			Priority:   tr.priority,
			Action:     tr.action,
			Message:    fmt.Sprintf("Consider moving %d %s project(s) to %s", excess, tr.priority, actionTargets[tr.action]),
			Candidates: tr.candidates(tr.projects),
		})
	}
	return report
}
