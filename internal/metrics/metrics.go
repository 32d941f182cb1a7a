// Package metrics computes completion analytics over task and project
// history: per-period throughput, cycle times, stalled work, and
// waiting-time buckets. All functions are pure over pre-fetched records.
package metrics

import (
	"fmt"
	"sort"
	"time"

	"github.com/rchopra/chief/internal/types"
)

// Period is an aggregation bucket size.
type Period string

// Aggregation periods
const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// IsValid checks if the period value is valid.
func (p Period) IsValid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

// PeriodMetrics is one bucket's throughput.
type PeriodMetrics struct {
	Period            string   `json:"period"`
	TotalTasks        int      `json:"total_tasks"`
	CompletedTasks    int      `json:"completed_tasks"`
	CompletionRate    float64  `json:"completion_rate"`
	AvgTimeToComplete *float64 `json:"avg_time_to_complete_days,omitempty"`
}

// OverallMetrics summarizes the whole input set.
type OverallMetrics struct {
	TotalTasks        int      `json:"total_tasks"`
	CompletedTasks    int      `json:"completed_tasks"`
	ActiveTasks       int      `json:"active_tasks"`
	CompletionRate    float64  `json:"completion_rate"`
	AvgTimeToComplete *float64 `json:"avg_time_to_complete_days,omitempty"`
	MinTimeToComplete *int     `json:"min_time_to_complete_days,omitempty"`
	MaxTimeToComplete *int     `json:"max_time_to_complete_days,omitempty"`
}

// Trends compares the last two periods.
type Trends struct {
	CompletionRateTrend  string  `json:"completion_rate_trend"`
	CompletionRateChange float64 `json:"completion_rate_change"`
	CompletedTasksTrend  string  `json:"completed_tasks_trend"`
	CompletedTasksChange int     `json:"completed_tasks_change"`
}

// Report is the full productivity calculation.
type Report struct {
	Period   Period          `json:"period"`
	ByPeriod []PeriodMetrics `json:"metrics_by_period"`
	Overall  OverallMetrics  `json:"overall_metrics"`
	Trends   *Trends         `json:"trends,omitempty"`
}

// Calculate aggregates tasks into period buckets keyed by completion
// date (falling back to creation date), and derives completion rates
// and cycle times. Weeks anchor on Monday. Tasks with neither date are
// skipped; negative cycle times are store noise and are discarded.
func Calculate(tasks []types.Task, period Period) Report {
	report := Report{Period: period}
	if len(tasks) == 0 {
		return report
	}

	buckets := make(map[string][]types.Task)
	for _, task := range tasks {
		var anchor time.Time
		switch {
		case task.CompletedDate != nil:
			anchor = *task.CompletedDate
		case !task.CreatedTime.IsZero():
			anchor = task.CreatedTime
		default:
			continue
		}
		key := periodKey(anchor, period)
		buckets[key] = append(buckets[key], task)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		bucket := buckets[key]
		var completed int
		var cycles []int
		for _, task := range bucket {
			if task.Status != types.StatusDone {
				continue
			}
			completed++
			if days, ok := cycleDays(task); ok {
				cycles = append(cycles, days)
			}
		}
		report.ByPeriod = append(report.ByPeriod, PeriodMetrics{
			Period:            key,
			TotalTasks:        len(bucket),
			CompletedTasks:    completed,
			CompletionRate:    rate(completed, len(bucket)),
			AvgTimeToComplete: avg(cycles),
		})
	}

	var completed int
	var cycles []int
	for _, task := range tasks {
		if task.Status != types.StatusDone {
			continue
		}
		completed++
		if days, ok := cycleDays(task); ok {
			cycles = append(cycles, days)
		}
	}
	report.Overall = OverallMetrics{
		TotalTasks:        len(tasks),
		CompletedTasks:    completed,
		ActiveTasks:       len(tasks) - completed,
		CompletionRate:    rate(completed, len(tasks)),
		AvgTimeToComplete: avg(cycles),
	}
	if len(cycles) > 0 {
		minDays, maxDays := cycles[0], cycles[0]
		for _, d := range cycles[1:] {
			if d < minDays {
				minDays = d
			}
			if d > maxDays {
				maxDays = d
			}
		}
		report.Overall.MinTimeToComplete = &minDays
		report.Overall.MaxTimeToComplete = &maxDays
	}

	if len(report.ByPeriod) >= 2 {
		last := report.ByPeriod[len(report.ByPeriod)-1]
		prev := report.ByPeriod[len(report.ByPeriod)-2]
		report.Trends = &Trends{
			CompletionRateTrend:  direction(last.CompletionRate - prev.CompletionRate),
			CompletionRateChange: last.CompletionRate - prev.CompletionRate,
			CompletedTasksTrend:  direction(float64(last.CompletedTasks - prev.CompletedTasks)),
			CompletedTasksChange: last.CompletedTasks - prev.CompletedTasks,
		}
	}
	return report
}

func periodKey(t time.Time, period Period) string {
	d := types.DateOf(t)
	switch period {
	case PeriodWeek:
		// Monday of the week.
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset).Format("2006-01-02")
	case PeriodMonth:
		return d.Format("2006-01")
	default:
		return d.Format("2006-01-02")
	}
}

// cycleDays is the calendar days from creation to completion.
func cycleDays(task types.Task) (int, bool) {
	if task.CompletedDate == nil || task.CreatedTime.IsZero() {
		return 0, false
	}
	days := types.DaysBetween(task.CreatedTime, *task.CompletedDate)
	if days < 0 {
		return 0, false
	}
	return days, true
}

func rate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

func avg(values []int) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	a := float64(sum) / float64(len(values))
	return &a
}

func direction(change float64) string {
	switch {
	case change > 0:
		return "improving"
	case change < 0:
		return "declining"
	}
	return "stable"
}

// ParsePeriod validates a period flag value.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid period %q (want day, week, or month)", s)
	}
	return p, nil
}
