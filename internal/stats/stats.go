// Package stats contains attempt analytics and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/prepdesk/internal/model"
)

const sparkChars = " .:-=+*#%@"

// AttemptScore returns the percentage of questions answered correctly.
func AttemptScore(a model.Attempt) float64 {
	if a.TotalQuestions <= 0 {
		return 0
	}
	return float64(a.Score) / float64(a.TotalQuestions) * 100
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		n := i + 1
		if i >= window {
			sum -= values[i-window]
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[clampInt(idx, 0, len(sparkChars)-1)])
	}
	return b.String()
}

// RenderSummary prints headline numbers for the attempts.
func RenderSummary(w io.Writer, list []model.Attempt) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No attempts found.")
		return err
	}
	var totalScore float64
	best := 0.0
	questions, seconds := 0, 0
	scores := make([]float64, 0, len(list))
	for _, a := range list {
		score := AttemptScore(a)
		totalScore += score
		best = math.Max(best, score)
		questions += a.TotalQuestions
		seconds += a.TimeTaken
		scores = append(scores, score)
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Attempts: %d", len(list)),
		fmt.Sprintf("Questions: %d", questions),
		fmt.Sprintf("Practice time: %d min", seconds/60),
		fmt.Sprintf("Avg score: %.1f%%", totalScore/float64(len(list))),
		fmt.Sprintf("Best score: %.1f%%", best),
		fmt.Sprintf("Trend: %s", Sparkline(scores)),
		"",
	}
	return writeLines(w, lines)
}

const maxSubjectWidth = 28

// RenderSubjectTable prints per-subject aggregates, most practised first.
func RenderSubjectTable(w io.Writer, aggs []model.SubjectAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No subject stats found.")
		return err
	}
	rows := make([][]string, 0, len(aggs))
	for _, agg := range SortByVolume(aggs) {
		rows = append(rows, []string{
			agg.Subject,
			fmt.Sprintf("%d%%", agg.Accuracy),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Total),
			fmt.Sprintf("%d", agg.AttemptCount),
		})
	}
	lines := append([]string{"Subjects"}, renderTable([]column{
		{Title: "Subject", Max: maxSubjectWidth},
		{Title: "Accuracy", Right: true},
		{Title: "Correct", Right: true},
		{Title: "Total", Right: true},
		{Title: "Attempts", Right: true},
	}, rows)...)
	return writeLines(w, append(lines, ""))
}

// RenderDifficultyTable prints per-difficulty aggregates.
func RenderDifficultyTable(w io.Writer, aggs []model.DifficultyAggregate) error {
	if len(aggs) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(aggs))
	for _, agg := range aggs {
		rows = append(rows, []string{
			agg.Level,
			fmt.Sprintf("%d%%", agg.Accuracy),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Total),
		})
	}
	lines := append([]string{"Difficulty"}, renderTable([]column{
		{Title: "Level"},
		{Title: "Accuracy", Right: true},
		{Title: "Correct", Right: true},
		{Title: "Total", Right: true},
	}, rows)...)
	return writeLines(w, append(lines, ""))
}

// RenderClassification prints the strength buckets.
func RenderClassification(w io.Writer, c model.Classification, minSample int) error {
	lines := []string{
		fmt.Sprintf("Strengths & weaknesses (min %d questions)", minSample),
		"Weak:     " + joinSubjects(c.Weak),
		"Moderate: " + joinSubjects(c.Moderate),
		"Strong:   " + joinSubjects(c.Strong),
		"",
	}
	return writeLines(w, lines)
}

// RenderPlan prints the study plan and its total time.
func RenderPlan(w io.Writer, plan []model.PlanItem) error {
	if len(plan) == 0 {
		_, err := fmt.Fprintln(w, "No study plan yet: answer a few more questions per subject.")
		return err
	}
	lines := []string{fmt.Sprintf("Study plan (%d min/day)", TotalDailyMinutes(plan))}
	for _, item := range plan {
		lines = append(lines, fmt.Sprintf("- [%s] %s: %d min (accuracy %d%%)", item.Priority, item.Subject, item.Minutes, item.Accuracy))
		if len(item.Topics) > 0 {
			lines = append(lines, "    topics: "+strings.Join(item.Topics, ", "))
		}
		if len(item.Resources) > 0 {
			lines = append(lines, "    resources: "+strings.Join(item.Resources, ", "))
		}
		for _, tip := range item.Tips {
			lines = append(lines, "    tip: "+tip)
		}
	}
	return writeLines(w, append(lines, ""))
}

// RenderTrend plots attempt score and accuracy over time.
func RenderTrend(w io.Writer, list []model.Attempt, window, totalWidth, height int, useColor bool) error {
	if len(list) == 0 {
		return nil
	}
	width := 0
	if totalWidth > 0 {
		width = PlotWidthFor(totalWidth)
	}
	return PlotPercentWithColor(w, "Score Trend", ScoreSeries(list, window), width, height, useColor)
}

// ScoreSeries returns smoothed score and subject-accuracy series per attempt.
func ScoreSeries(list []model.Attempt, window int) []Series {
	scores := make([]float64, len(list))
	accs := make([]float64, len(list))
	for i, a := range list {
		scores[i] = AttemptScore(a)
		correct, total := 0, 0
		for _, b := range a.SubjectWise {
			correct += b.Correct
			total += b.Total
		}
		accs[i] = float64(Accuracy(correct, total))
	}
	return []Series{
		{Name: "Score", Values: MovingAverage(scores, window)},
		{Name: "Subject accuracy", Values: MovingAverage(accs, window)},
	}
}

func joinSubjects(aggs []model.SubjectAggregate) string {
	if len(aggs) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(aggs))
	for _, agg := range aggs {
		parts = append(parts, fmt.Sprintf("%s (%d%%)", agg.Subject, agg.Accuracy))
	}
	return strings.Join(parts, ", ")
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
