package main

import (
	"fmt"
	"strings"

	"github.com/rchopra/chief/internal/lno"
	"github.com/rchopra/chief/internal/reconcile"
	"github.com/rchopra/chief/internal/types"
	"github.com/rchopra/chief/internal/ui"
)

func renderPassIcon() string { return ui.RenderPass(ui.IconPass) }
func renderWarnIcon() string { return ui.RenderWarn(ui.IconWarn) }
func renderFailIcon() string { return ui.RenderFail(ui.IconFail) }

func renderSeverityIcon(severity string) string {
	switch severity {
	case "high", "critical":
		return renderFailIcon()
	case "medium", "warning":
		return renderWarnIcon()
	}
	return ui.RenderMuted(ui.IconSkip)
}

func renderHealthStatus(status string) string {
	switch status {
	case "healthy":
		return ui.RenderPass(status)
	case "needs_attention":
		return ui.RenderWarn(status)
	case "critical":
		return ui.RenderFail(status)
	}
	return status
}

func renderAssessment(assessment string) string {
	switch assessment {
	case "manageable":
		return ui.RenderPass(assessment)
	case "heavy":
		return ui.RenderWarn(assessment)
	case "overloaded":
		return ui.RenderFail(assessment)
	}
	return assessment
}

func renderLNO(class lno.Class) string {
	switch class {
	case lno.Leverage:
		return ui.RenderPass(string(class))
	case lno.Overhead:
		return ui.RenderFail(string(class))
	}
	return ui.RenderAccent(string(class))
}

func renderStatus(status string) string {
	switch status {
	case "on_track":
		return ui.RenderPass(status)
	case "at_risk":
		return ui.RenderWarn(status)
	case "blocked":
		return ui.RenderFail(status)
	}
	return status
}

// renderReviewItem prints one review item as an indexed block with its
// assignment, meeting, due text, what would be created, and duplicate
// warnings.
func renderReviewItem(item types.ActionItem, index int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s\n", index, item.Action)
	if item.Person != "" {
		fmt.Fprintf(&b, "   %s Assigned to: %s\n", arrow(), item.Person)
	}
	if item.MeetingDate != nil {
		fmt.Fprintf(&b, "   %s From: %q (%s)\n", arrow(), item.Meeting, item.MeetingDate.Format("2006-01-02"))
	} else if item.Meeting != "" {
		fmt.Fprintf(&b, "   %s From: %q\n", arrow(), item.Meeting)
	}
	if item.DueDateText != "" {
		fmt.Fprintf(&b, "   %s Due: %s\n", arrow(), item.DueDateText)
	}
	suggested := item.SuggestedTaskName
	if suggested == "" {
		suggested = item.SuggestedWaitingTask
	}
	if suggested != "" {
		fmt.Fprintf(&b, "   %s Would create: %q\n", arrow(), suggested)
	}
	if item.CreationError != "" {
		fmt.Fprintf(&b, "   %s %s\n", renderFailIcon(), item.CreationError)
	}
	if len(item.ObviousDuplicates) > 0 {
		fmt.Fprintf(&b, "   %s %s\n", renderWarnIcon(), "Matches existing task(s):")
		for _, dup := range item.ObviousDuplicates {
			fmt.Fprintf(&b, "      - %q\n", dup.Title)
		}
	} else if len(item.PotentialDuplicates) > 0 {
		fmt.Fprintf(&b, "   %s %s\n", renderWarnIcon(), "Possible match(es):")
		shown := item.PotentialDuplicates
		if len(shown) > 2 {
			shown = shown[:2]
		}
		for _, dup := range shown {
			fmt.Fprintf(&b, "      - %q\n", dup.Title)
		}
	}
	return b.String()
}

func arrow() string { return ui.RenderMuted("→") }

func renderProcessReport(report *reconcile.Report) {
	s := report.Summary
	fmt.Printf("Processed %d action item(s) from %s to %s\n",
		s.TotalActionItems, report.DateRange.From, report.DateRange.To)
	fmt.Printf("  auto-created %d, needs review %d (obvious %d, potential %d, other %d)\n",
		s.AutoCreated, s.NeedsReview, s.ObviousDuplicates, s.PotentialDuplicates, s.Others)

	if len(report.AutoCreated) > 0 {
		fmt.Println(ui.RenderHeader("Auto-created"))
		for _, ct := range report.AutoCreated {
			fmt.Printf("%s  %q (%s)\n", renderPassIcon(), ct.Task.Title, ct.Task.ID)
		}
	}
	printBucket := func(header string, items []types.ActionItem) {
		if len(items) == 0 {
			return
		}
		fmt.Println(ui.RenderHeader(header))
		for i, item := range items {
			fmt.Print(renderReviewItem(item, i+1))
		}
	}
	printBucket("Obvious duplicates", report.Review.ObviousDuplicates)
	printBucket("Potential duplicates", report.Review.PotentialDuplicates)
	printBucket("Needs review", report.Review.Others)
}

func renderExecReport(report execReport) {
	s := report.Summary
	fmt.Printf("Week ending %s: %d completed, %d blocker(s)\n",
		s.WeekEnding, s.TotalTasksCompleted, s.TotalBlockers)
	fmt.Printf("  priorities: %d on track, %d at risk, %d blocked\n",
		s.PrioritiesOnTrack, s.PrioritiesAtRisk, s.PrioritiesBlocked)

	all := append([]execPriority{}, report.StrategicPriorities...)
	all = append(all, report.Other)
	for _, p := range all {
		if len(p.Projects) == 0 && len(p.TasksCompleted) == 0 && len(p.Blockers) == 0 {
			continue
		}
		fmt.Printf("\n%s [%s]\n", ui.RenderHeader(p.DisplayName), renderStatus(p.Status))
		for _, proj := range p.Projects {
			fmt.Printf("  %s %3d  %s [%s]\n",
				renderHealthStatus(proj.HealthStatus), proj.HealthScore, proj.Title, proj.Priority)
		}
		for _, t := range p.TasksCompleted {
			fmt.Printf("  %s %s\n", renderPassIcon(), t.Title)
		}
		for _, bl := range p.Blockers {
			line := fmt.Sprintf("waiting %d day(s): %s", bl.DaysWaiting, bl.Title)
			if len(bl.WaitingOn) > 0 {
				line += " (on " + strings.Join(bl.WaitingOn, ", ") + ")"
			}
			fmt.Printf("  %s %s\n", renderWarnIcon(), line)
		}
	}
}
