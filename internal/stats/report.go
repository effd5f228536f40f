package stats

import (
	"github.com/verte-zerg/prepdesk/internal/attempts"
	"github.com/verte-zerg/prepdesk/internal/model"
)

// DefaultMinSample is the number of questions a subject needs before it is
// classified.
const DefaultMinSample = 3

// Report contains precomputed data for analytics rendering.
type Report struct {
	Attempts       []model.Attempt
	Subjects       []model.SubjectAggregate
	Difficulties   []model.DifficultyAggregate
	Classification model.Classification
	Plan           []model.PlanItem
	Unmatched      []string
	MinSample      int
}

// BuildReport filters the attempt history and derives every aggregate.
func BuildReport(list []model.Attempt, cfg model.AnalyticsConfig, table StrategyTable) Report {
	minSample := cfg.MinSample
	if minSample <= 0 {
		minSample = DefaultMinSample
	}
	filtered := attempts.Filter(list, cfg.Since, cfg.Last)
	subjects := AggregateBySubject(filtered)
	classification := Classify(subjects, minSample)
	return Report{
		Attempts:       filtered,
		Subjects:       subjects,
		Difficulties:   AggregateByDifficulty(filtered),
		Classification: classification,
		Plan:           BuildStudyPlan(classification, table),
		Unmatched:      UnmatchedSubjects(subjects, table),
		MinSample:      minSample,
	}
}
